package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"reporting-srv/config"
	"reporting-srv/config/kafka"
	"reporting-srv/config/postgre"
	"reporting-srv/internal/consumer"
	pkgKafka "reporting-srv/pkg/kafka"
	"reporting-srv/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Reporting Consumer Service...")

	// Kafka Producer (lifecycle events for queued requests)
	var kafkaProducer pkgKafka.IProducer
	if cfg.Kafka.Enabled {
		kafkaProducer, err = kafka.ConnectProducer(cfg.Kafka)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
			return
		}
		defer kafka.DisconnectProducer()
		logger.Info(ctx, "Kafka producer initialized")
	}

	// Kafka Consumer Group (report requests topic)
	kafkaConsumer, err := kafka.ConnectConsumer(cfg.Kafka)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Kafka consumer: %v", err)
		return
	}
	defer kafka.DisconnectConsumer()
	logger.Infof(ctx, "Kafka consumer group %s initialized", cfg.Kafka.GroupID)

	// PostgreSQL
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer postgre.Disconnect()
	logger.Info(ctx, "PostgreSQL client initialized")

	// Consumer server
	srv, err := consumer.New(consumer.Config{
		Logger:        logger,
		Config:        cfg,
		PostgresDB:    postgresDB,
		KafkaProducer: kafkaProducer,
		KafkaConsumer: kafkaConsumer,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create consumer server: %v", err)
		return
	}

	// Run consumer server
	logger.Info(ctx, "Consumer server starting...")
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Consumer server error: %v", err)
		return
	}

	logger.Info(context.Background(), "Consumer server stopped gracefully")
}
