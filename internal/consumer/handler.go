package consumer

import (
	"context"
	"fmt"

	"reporting-srv/internal/render"
	"reporting-srv/internal/report"
	reportConsumer "reporting-srv/internal/report/delivery/kafka/consumer"
	reportProducer "reporting-srv/internal/report/delivery/kafka/producer"
	reportPostgre "reporting-srv/internal/report/repository/postgre"
	reportUsecase "reporting-srv/internal/report/usecase"
)

// domainConsumers holds references to all domain consumers for cleanup
type domainConsumers struct {
	reportConsumer *reportConsumer.Consumer
}

// setupDomains initializes all domain layers (repositories, usecases, consumers)
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	requests := reportPostgre.New(srv.postgresDB, srv.l)

	var publisher report.Publisher
	if srv.kafkaProducer != nil {
		publisher = reportProducer.New(srv.l, srv.kafkaProducer)
	}

	// Submit only needs the request store and the renderer names; evaluation
	// and artifact storage belong to the API workers.
	reportUC := reportUsecase.New(reportUsecase.Dependencies{
		Requests:  requests,
		Reports:   requests,
		Renderers: render.NewDefaultRegistry(srv.config.Report.InlineBaseURL),
		Publisher: publisher,
	}, srv.l, reportUsecase.Config{})

	cons, err := reportConsumer.New(reportConsumer.Config{
		Logger:      srv.l,
		KafkaConfig: srv.config.Kafka,
		UseCase:     reportUC,
		Group:       srv.kafkaConsumer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report consumer: %w", err)
	}

	srv.l.Infof(ctx, "Report domain initialized")

	return &domainConsumers{
		reportConsumer: cons,
	}, nil
}

// startConsumers starts all domain consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.reportConsumer.ConsumeReportRequests(ctx); err != nil {
		return fmt.Errorf("failed to start report consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.reportConsumer != nil {
		if err := consumers.reportConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing report consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}
