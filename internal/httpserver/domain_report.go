package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"reporting-srv/config"
	"reporting-srv/internal/middleware"
	"reporting-srv/internal/render"
	"reporting-srv/internal/report"
	reportHTTP "reporting-srv/internal/report/delivery/http"
	reportProducer "reporting-srv/internal/report/delivery/kafka/producer"
	"reporting-srv/internal/report/repository"
	reportMemory "reporting-srv/internal/report/repository/memory"
	reportMinio "reporting-srv/internal/report/repository/minio"
	reportPostgre "reporting-srv/internal/report/repository/postgre"
	reportRedis "reporting-srv/internal/report/repository/redis"
	reportUsecase "reporting-srv/internal/report/usecase"
)

func (srv *HTTPServer) setupReportDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) (report.UseCase, error) {
	evaluator, err := srv.setupDatasetDomain(ctx)
	if err != nil {
		return nil, err
	}

	cfg := srv.config.Report

	var requests repository.RequestReportRepository
	switch cfg.RequestStore {
	case config.BackendPostgres:
		requests = reportPostgre.New(srv.postgresDB, srv.l)
	default:
		requests = reportMemory.New()
	}

	var artifacts repository.ArtifactRepository
	switch cfg.ArtifactStore {
	case config.BackendMinIO:
		artifacts = reportMinio.New(srv.minioClient, srv.config.MinIO.Bucket, srv.l)
	default:
		artifacts = reportMemory.NewArtifacts()
	}

	var sessions repository.SessionRepository
	switch cfg.SessionStore {
	case config.BackendRedis:
		sessions = reportRedis.New(srv.redisClient, srv.l)
	default:
		sessions = reportMemory.NewSessions()
	}

	var publisher report.Publisher
	if srv.kafkaProducer != nil {
		publisher = reportProducer.New(srv.l, srv.kafkaProducer)
	}

	uc := reportUsecase.New(reportUsecase.Dependencies{
		Requests:  requests,
		Reports:   requests,
		Artifacts: artifacts,
		Sessions:  sessions,
		Evaluator: evaluator,
		Renderers: render.NewDefaultRegistry(cfg.InlineBaseURL),
		Publisher: publisher,
	}, srv.l, reportUsecase.Config{
		Workers:        cfg.Workers,
		PollInterval:   cfg.PollInterval,
		FinishAttempts: cfg.FinishAttempts,
		FinishBackoff:  cfg.FinishBackoff,
		SessionTTL:     cfg.SessionTTL,
		ArtifactPrefix: cfg.ArtifactPrefix,
		Registerer:     srv.registry,
	})

	handler := reportHTTP.New(srv.l, uc)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Report domain registered (requests: %s, artifacts: %s, sessions: %s)",
		cfg.RequestStore, cfg.ArtifactStore, cfg.SessionStore)
	return uc, nil
}
