package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/report"
	kafkaDelivery "reporting-srv/internal/report/delivery/kafka"
)

// handleSubmitRequestMessage decodes a submission and queues it. Malformed or
// rejected messages are logged and skipped; only infrastructure failures are returned.
func (c *Consumer) handleSubmitRequestMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	c.l.Infof(ctx, "report.delivery.kafka.consumer.handleSubmitRequestMessage: Processing message from partition %d, offset %d",
		msg.Partition, msg.Offset)

	var message kafkaDelivery.SubmitRequestMessage
	if err := json.Unmarshal(msg.Value, &message); err != nil {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleSubmitRequestMessage: Invalid message format (skipping): %v", err)
		return nil
	}

	if len(message.Definition) == 0 || message.Renderer == "" {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleSubmitRequestMessage: %v: missing definition or renderer (skipping)", ErrInvalidMessage)
		return nil
	}

	def, err := dataset.UnmarshalDefinition(message.Definition)
	if err != nil {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleSubmitRequestMessage: Invalid definition (skipping): %v", err)
		return nil
	}

	out, err := c.uc.Submit(ctx, toSubmitInput(message, def))
	if err != nil {
		if errors.Is(err, report.ErrUnknownRenderer) || errors.Is(err, report.ErrDefinitionRequired) {
			c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleSubmitRequestMessage: Rejected submission (skipping): %v", err)
			return nil
		}
		c.l.Errorf(ctx, "report.delivery.kafka.consumer.handleSubmitRequestMessage: usecase Submit failed: %v", err)
		return fmt.Errorf("usecase error: %w", err)
	}

	c.l.Infof(ctx, "report.delivery.kafka.consumer.handleSubmitRequestMessage: Queued report request %s (%s)", out.ID, def.Name())
	return nil
}
