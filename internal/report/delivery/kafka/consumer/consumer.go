package consumer

import (
	"context"

	kafkaDelivery "reporting-srv/internal/report/delivery/kafka"
)

// ConsumeReportRequests joins the requests consumer group and keeps consuming until ctx is cancelled.
func (c *Consumer) ConsumeReportRequests(ctx context.Context) error {
	groupID := c.kafkaConfig.GroupID
	if groupID == "" {
		groupID = kafkaDelivery.ConsumerGroupReportRequests
	}
	topic := c.kafkaConfig.RequestsTopic
	if topic == "" {
		topic = kafkaDelivery.TopicReportRequests
	}

	group := c.requestsGroup
	if group == nil {
		var err error
		if group, err = c.createConsumerGroup(groupID); err != nil {
			return err
		}
		c.requestsGroup = group
	}

	handler := &submitRequestHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, []string{topic}, handler); err != nil {
					c.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumeReportRequests: Consumer error: %v", err)
				}
			}
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumeReportRequests: Consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "report.delivery.kafka.consumer.ConsumeReportRequests: Consuming %s as %s", topic, groupID)
	return nil
}
