package usecase

import (
	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
	"reporting-srv/pkg/log"
)

// Config holds evaluation settings.
type Config struct {
	EmptyQuestions dataset.EmptyQuestionsPolicy
}

type implUseCase struct {
	repo       repository.ObsRepository
	l          log.Logger
	config     Config
	evaluators map[string]dataset.Evaluator
}

// New creates the dataset UseCase with the obs evaluator registered.
func New(repo repository.ObsRepository, l log.Logger, cfg Config) dataset.UseCase {
	if !cfg.EmptyQuestions.IsValid() {
		cfg.EmptyQuestions = dataset.EmptyQuestionsMatchAll
	}

	uc := &implUseCase{
		repo:       repo,
		l:          l,
		config:     cfg,
		evaluators: map[string]dataset.Evaluator{},
	}
	uc.evaluators[dataset.DefinitionTypeObs] = &obsEvaluator{uc: uc}
	return uc
}
