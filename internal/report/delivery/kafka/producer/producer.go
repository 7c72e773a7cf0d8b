package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"reporting-srv/internal/report"
	kafkaDelivery "reporting-srv/internal/report/delivery/kafka"
)

// PublishLifecycle publishes event keyed by request id, so one request's events stay ordered.
func (p *implProducer) PublishLifecycle(ctx context.Context, event report.LifecycleEvent) error {
	msg := kafkaDelivery.LifecycleMessage{
		Type:       event.Type,
		RequestID:  event.RequestID.String(),
		Status:     string(event.Status),
		Renderer:   event.Renderer,
		OccurredAt: event.OccurredAt,
	}
	if event.Failure != nil {
		msg.FailureKind = string(event.Failure.Kind)
		msg.FailureMessage = event.Failure.Message
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal lifecycle event: %w", err)
	}

	if err := p.producer.Publish([]byte(msg.RequestID), body); err != nil {
		return fmt.Errorf("failed to publish lifecycle event: %w", err)
	}

	p.l.Debugf(ctx, "report.delivery.kafka.producer.PublishLifecycle: Published %s for request %s", event.Type, msg.RequestID)
	return nil
}
