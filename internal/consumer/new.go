package consumer

import (
	"fmt"

	"reporting-srv/config"
)

// New creates a new consumer server with dependency validation
func New(cfg Config) (*ConsumerServer, error) {
	srv := &ConsumerServer{
		l:             cfg.Logger,
		config:        cfg.Config,
		postgresDB:    cfg.PostgresDB,
		kafkaProducer: cfg.KafkaProducer,
		kafkaConsumer: cfg.KafkaConsumer,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided
func (srv *ConsumerServer) validate() error {
	// Core Configuration
	if srv.l == nil {
		return fmt.Errorf("logger is required")
	}
	if srv.config == nil {
		return fmt.Errorf("config is required")
	}
	if len(srv.config.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}

	// Requests queued here must be visible to the API workers.
	if srv.config.Report.RequestStore != config.BackendPostgres {
		return fmt.Errorf("report.request_store must be %s for the consumer", config.BackendPostgres)
	}

	// Infrastructure clients
	if srv.postgresDB == nil {
		return fmt.Errorf("postgres db is required")
	}
	if srv.kafkaConsumer == nil {
		return fmt.Errorf("kafka consumer is required")
	}

	return nil
}
