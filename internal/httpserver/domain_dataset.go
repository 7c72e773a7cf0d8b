package httpserver

import (
	"context"
	"fmt"

	"reporting-srv/config"
	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
	datasetMemory "reporting-srv/internal/dataset/repository/memory"
	datasetPostgre "reporting-srv/internal/dataset/repository/postgre"
	datasetUsecase "reporting-srv/internal/dataset/usecase"
)

// setupDatasetDomain builds the evaluator over the configured observation source.
func (srv *HTTPServer) setupDatasetDomain(ctx context.Context) (dataset.UseCase, error) {
	var repo repository.ObsRepository

	switch srv.config.Report.ObsSource {
	case config.BackendPostgres:
		repo = datasetPostgre.New(srv.postgresDB, srv.l)
	default:
		var obs []dataset.Obs
		if path := srv.config.Report.SeedFile; path != "" {
			seed, err := datasetMemory.LoadSeedFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load observation seed %s: %w", path, err)
			}
			obs = seed
		}
		repo = datasetMemory.New(obs)
		srv.l.Infof(ctx, "Observation source: memory (%d observations)", len(obs))
	}

	uc := datasetUsecase.New(repo, srv.l, datasetUsecase.Config{
		EmptyQuestions: dataset.EmptyQuestionsPolicy(srv.config.Report.EmptyQuestions),
	})

	srv.l.Infof(ctx, "Dataset domain initialized (obs source: %s)", srv.config.Report.ObsSource)
	return uc, nil
}
