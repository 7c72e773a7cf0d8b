package consumer

import (
	"context"

	"github.com/IBM/sarama"
)

type submitRequestHandler struct {
	consumer *Consumer
}

func (h *submitRequestHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *submitRequestHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim leaves a message unmarked when submission fails, so it is redelivered after a rebalance.
func (h *submitRequestHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.handleSubmitRequestMessage(session.Context(), msg); err != nil {
			h.consumer.l.Errorf(context.Background(), "report.delivery.kafka.consumer.ConsumeClaim: Failed to process submit request: %v", err)
			continue
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
