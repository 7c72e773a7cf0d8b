package producer

import (
	"reporting-srv/internal/report"
	pkgKafka "reporting-srv/pkg/kafka"
	"reporting-srv/pkg/log"
)

// Producer publishes report lifecycle events.
type Producer interface {
	report.Publisher
}

type implProducer struct {
	l        log.Logger
	producer pkgKafka.IProducer
}

// New creates a lifecycle producer. producer must be bound to the lifecycle topic.
func New(l log.Logger, producer pkgKafka.IProducer) Producer {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}
