package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/render"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
	"reporting-srv/pkg/log"
)

const (
	defaultWorkers        = 1
	defaultPollInterval   = 5 * time.Second
	defaultSessionTTL     = 30 * time.Minute
	defaultArtifactPrefix = "reports"
	defaultFinishAttempts = 5
	defaultFinishBackoff  = 200 * time.Millisecond
)

// Config holds configuration for report processing.
type Config struct {
	Workers        int
	PollInterval   time.Duration
	SessionTTL     time.Duration
	ArtifactPrefix string
	// FinishAttempts bounds the retries of the final status update of a request.
	FinishAttempts int
	// FinishBackoff is the first delay between those retries; it doubles per attempt.
	FinishBackoff time.Duration
	// Registerer receives the worker metrics. Nil disables them.
	Registerer prometheus.Registerer
}

// Dependencies are the stores and collaborators of the use case. Publisher is optional.
type Dependencies struct {
	Requests  repository.RequestRepository
	Reports   repository.ReportRepository
	Artifacts repository.ArtifactRepository
	Sessions  repository.SessionRepository
	Evaluator dataset.Evaluator
	Renderers *render.Registry
	Publisher report.Publisher
}

type implUseCase struct {
	requests  repository.RequestRepository
	reports   repository.ReportRepository
	artifacts repository.ArtifactRepository
	sessions  repository.SessionRepository
	evaluator dataset.Evaluator
	renderers *render.Registry
	publisher report.Publisher
	metrics   *metrics
	l         log.Logger
	config    Config

	wake chan struct{}

	mu     sync.Mutex
	staged map[uuid.UUID][]string
}

// New creates a new report UseCase implementation.
func New(deps Dependencies, l log.Logger, cfg Config) report.UseCase {
	return newUseCase(deps, l, cfg)
}

func newUseCase(deps Dependencies, l log.Logger, cfg Config) *implUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.ArtifactPrefix == "" {
		cfg.ArtifactPrefix = defaultArtifactPrefix
	}
	if cfg.FinishAttempts <= 0 {
		cfg.FinishAttempts = defaultFinishAttempts
	}
	if cfg.FinishBackoff <= 0 {
		cfg.FinishBackoff = defaultFinishBackoff
	}
	if deps.Renderers == nil {
		deps.Renderers = render.NewDefaultRegistry(render.DefaultInlineBaseURL)
	}

	return &implUseCase{
		requests:  deps.Requests,
		reports:   deps.Reports,
		artifacts: deps.Artifacts,
		sessions:  deps.Sessions,
		evaluator: deps.Evaluator,
		renderers: deps.Renderers,
		publisher: deps.Publisher,
		metrics:   newMetrics(cfg.Registerer),
		l:         l,
		config:    cfg,
		wake:      make(chan struct{}, 1),
		staged:    make(map[uuid.UUID][]string),
	}
}
