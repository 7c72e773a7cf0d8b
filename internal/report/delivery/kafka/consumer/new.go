package consumer

import (
	"fmt"

	"reporting-srv/config"
	"reporting-srv/internal/report"
	pkgKafka "reporting-srv/pkg/kafka"
	"reporting-srv/pkg/log"
)

// Config holds the configuration for the report consumer
type Config struct {
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	UseCase     report.UseCase
	// Group is an already connected consumer group. When nil one is created from KafkaConfig.
	Group pkgKafka.IConsumer
}

// Consumer turns messages on the requests topic into report submissions.
type Consumer struct {
	l           log.Logger
	kafkaConfig config.KafkaConfig
	uc          report.UseCase

	requestsGroup pkgKafka.IConsumer
}

// New creates a new report consumer
func New(cfg Config) (*Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	return &Consumer{
		l:           cfg.Logger,
		kafkaConfig: cfg.KafkaConfig,
		uc:          cfg.UseCase,

		requestsGroup: cfg.Group,
	}, nil
}

// Close closes all consumer groups
func (c *Consumer) Close() error {
	if c.requestsGroup != nil {
		if err := c.requestsGroup.Close(); err != nil {
			return fmt.Errorf("failed to close requests group: %w", err)
		}
	}
	return nil
}

func (c *Consumer) createConsumerGroup(groupID string) (pkgKafka.IConsumer, error) {
	group, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers: c.kafkaConfig.Brokers,
		GroupID: groupID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group %s: %w", groupID, err)
	}
	return group, nil
}
