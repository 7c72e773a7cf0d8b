package memory

import (
	"context"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

func (r *implRepository) Save(ctx context.Context, rpt *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *rpt
	r.reports[rpt.RequestID] = &c
	return nil
}

func (r *implRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rpt, ok := r.reports[requestID]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	c := *rpt
	return &c, nil
}

func (r *implRepository) DeleteByRequestID(ctx context.Context, requestID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reports, requestID)
	return nil
}
