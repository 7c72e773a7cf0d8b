package kafka

import (
	"fmt"
	"sync"

	"reporting-srv/config"
	"reporting-srv/pkg/kafka"
)

var (
	producerMu       sync.RWMutex
	producerInstance kafka.IProducer
)

// ConnectProducer creates the shared lifecycle-event producer, or returns it when already created.
func ConnectProducer(cfg config.KafkaConfig) (kafka.IProducer, error) {
	producerMu.Lock()
	defer producerMu.Unlock()

	if producerInstance != nil {
		return producerInstance, nil
	}

	client, err := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Brokers,
		Topic:   cfg.LifecycleTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kafka producer: %w", err)
	}

	producerInstance = client
	return producerInstance, nil
}

// ProducerHealthCheck reports whether the shared producer is usable.
func ProducerHealthCheck() error {
	producerMu.RLock()
	defer producerMu.RUnlock()

	if producerInstance == nil {
		return fmt.Errorf("Kafka producer not initialized")
	}
	return producerInstance.HealthCheck()
}

// DisconnectProducer closes the shared producer.
func DisconnectProducer() error {
	producerMu.Lock()
	defer producerMu.Unlock()

	if producerInstance == nil {
		return nil
	}
	err := producerInstance.Close()
	producerInstance = nil
	return err
}
