package consumer

import (
	"context"
	"database/sql"

	"reporting-srv/config"
	pkgKafka "reporting-srv/pkg/kafka"
	"reporting-srv/pkg/log"
)

// ConsumerServer is the Kafka consumer orchestrator. It only queues requests;
// the API process runs the workers that evaluate them.
type ConsumerServer struct {
	// Core Configuration
	l      log.Logger
	config *config.Config

	// Infrastructure clients
	postgresDB    *sql.DB
	kafkaProducer pkgKafka.IProducer
	kafkaConsumer pkgKafka.IConsumer
}

// Config holds all dependencies for the consumer server
type Config struct {
	// Core Configuration
	Logger log.Logger
	Config *config.Config

	// Infrastructure clients
	PostgresDB    *sql.DB
	KafkaProducer pkgKafka.IProducer
	KafkaConsumer pkgKafka.IConsumer
}

// Run starts the consumer server and blocks until context is cancelled.
// It initializes all domain layers, starts consumers, and handles graceful shutdown.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	consumers, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	if err := srv.startConsumers(ctx, consumers); err != nil {
		srv.l.Errorf(ctx, "Failed to start consumers: %v", err)
		return err
	}

	srv.l.Info(ctx, "Consumer Server is running")

	<-ctx.Done()
	srv.l.Info(ctx, "Shutdown signal received, stopping consumers...")

	srv.stopConsumers(context.Background(), consumers)

	srv.l.Info(context.Background(), "Consumer Server stopped gracefully")
	return nil
}
