package postgre

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

type requestRow struct {
	id                  uuid.UUID
	seq                 int64
	definition          []byte
	baseCohort          pq.Int64Array
	parameters          []byte
	renderer            string
	argument            string
	labels              pq.StringArray
	status              string
	archived            bool
	failureKind         sql.NullString
	failureMessage      sql.NullString
	requestedAt         time.Time
	evaluateStartedAt   sql.NullTime
	evaluateCompletedAt sql.NullTime
}

func (r *requestRow) dest() []any {
	return []any{
		&r.id, &r.seq, &r.definition, &r.baseCohort, &r.parameters, &r.renderer, &r.argument, &r.labels,
		&r.status, &r.archived, &r.failureKind, &r.failureMessage, &r.requestedAt, &r.evaluateStartedAt,
		&r.evaluateCompletedAt,
	}
}

func (r *requestRow) toModel() (*model.ReportRequest, error) {
	def, err := dataset.UnmarshalDefinition(r.definition)
	if err != nil {
		return nil, fmt.Errorf("%w: request %s: %v", repository.ErrCorruptRecord, r.id, err)
	}

	req := &model.ReportRequest{
		ID:          r.id,
		Sequence:    r.seq,
		Definition:  def,
		Mode:        model.RenderingMode{Renderer: r.renderer, Argument: r.argument},
		Labels:      []string(r.labels),
		Status:      model.ReportStatus(r.status),
		Archived:    r.archived,
		RequestedAt: r.requestedAt,
	}
	if req.Labels == nil {
		req.Labels = []string{}
	}
	if r.baseCohort != nil {
		req.BaseCohort = make([]int, len(r.baseCohort))
		for i, id := range r.baseCohort {
			req.BaseCohort[i] = int(id)
		}
	}
	if len(r.parameters) > 0 {
		if err := json.Unmarshal(r.parameters, &req.Parameters); err != nil {
			return nil, fmt.Errorf("%w: request %s parameters: %v", repository.ErrCorruptRecord, r.id, err)
		}
	}
	if r.failureKind.Valid {
		req.Failure = &model.Failure{
			Kind:    model.FailureKind(r.failureKind.String),
			Message: r.failureMessage.String,
		}
	}
	if r.evaluateStartedAt.Valid {
		t := r.evaluateStartedAt.Time
		req.EvaluateStartedAt = &t
	}
	if r.evaluateCompletedAt.Valid {
		t := r.evaluateCompletedAt.Time
		req.EvaluateCompletedAt = &t
	}
	return req, nil
}

// buildInsertArgs - Encode a request for insertRequestQuery.
func buildInsertArgs(req *model.ReportRequest) ([]any, error) {
	def, err := dataset.MarshalDefinition(req.Definition)
	if err != nil {
		return nil, err
	}

	var params []byte
	if req.Parameters != nil {
		if params, err = json.Marshal(req.Parameters); err != nil {
			return nil, err
		}
	}

	var cohort pq.Int64Array
	if req.BaseCohort != nil {
		cohort = make(pq.Int64Array, len(req.BaseCohort))
		for i, id := range req.BaseCohort {
			cohort[i] = int64(id)
		}
	}

	labels := pq.StringArray(req.Labels)
	if labels == nil {
		labels = pq.StringArray{}
	}

	return []any{
		req.ID, def, cohort, params, req.Mode.Renderer, req.Mode.Argument, labels,
		string(model.ReportStatusRequested), req.RequestedAt,
	}, nil
}
