package kafka

import (
	"fmt"
	"sync"

	"reporting-srv/config"
	"reporting-srv/pkg/kafka"
)

var (
	consumerMu       sync.RWMutex
	consumerInstance kafka.IConsumer
)

// ConnectConsumer joins the report-request consumer group, or returns the existing member.
func ConnectConsumer(cfg config.KafkaConfig) (kafka.IConsumer, error) {
	consumerMu.Lock()
	defer consumerMu.Unlock()

	if consumerInstance != nil {
		return consumerInstance, nil
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("GroupID is required for Kafka consumer")
	}

	client, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kafka consumer: %w", err)
	}

	consumerInstance = client
	return consumerInstance, nil
}

// DisconnectConsumer leaves the consumer group.
func DisconnectConsumer() error {
	consumerMu.Lock()
	defer consumerMu.Unlock()

	if consumerInstance == nil {
		return nil
	}
	err := consumerInstance.Close()
	consumerInstance = nil
	return err
}
