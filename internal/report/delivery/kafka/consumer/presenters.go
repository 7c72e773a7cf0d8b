package consumer

import (
	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
	"reporting-srv/internal/report"
	kafkaDelivery "reporting-srv/internal/report/delivery/kafka"
)

func toSubmitInput(m kafkaDelivery.SubmitRequestMessage, def dataset.Definition) report.SubmitInput {
	return report.SubmitInput{
		Definition: def,
		Mode:       model.RenderingMode{Renderer: m.Renderer, Argument: m.Argument},
		Labels:     m.Labels,
		BaseCohort: m.BaseCohort,
		Parameters: m.Parameters,
	}
}
