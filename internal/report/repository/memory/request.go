package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

func (r *implRepository) Create(ctx context.Context, req *model.ReportRequest) (*model.ReportRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID]; ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateRequest, req.ID)
	}

	r.seq++
	stored := req.Clone()
	stored.Sequence = r.seq
	stored.Status = model.ReportStatusRequested
	r.requests[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *implRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*model.ReportRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	return req.Clone(), nil
}

func (r *implRepository) NextRequested(ctx context.Context) (*model.ReportRequest, error) {
	queued := r.list(func(req *model.ReportRequest) bool {
		return req.Status == model.ReportStatusRequested
	})
	if len(queued) == 0 {
		return nil, nil
	}
	return queued[0], nil
}

func (r *implRepository) ListProcessing(ctx context.Context) ([]*model.ReportRequest, error) {
	return r.list(func(req *model.ReportRequest) bool {
		return req.Status == model.ReportStatusProcessing
	}), nil
}

func (r *implRepository) ListQueued(ctx context.Context) ([]*model.ReportRequest, error) {
	return r.list(func(req *model.ReportRequest) bool {
		return !req.Status.IsTerminal()
	}), nil
}

func (r *implRepository) ListCompleted(ctx context.Context) ([]*model.ReportRequest, error) {
	return r.list(func(req *model.ReportRequest) bool {
		return req.Status.IsTerminal() && !req.Archived
	}), nil
}

func (r *implRepository) ListArchived(ctx context.Context) ([]*model.ReportRequest, error) {
	return r.list(func(req *model.ReportRequest) bool {
		return req.Archived
	}), nil
}

func (r *implRepository) CountQueued(ctx context.Context) (int, error) {
	return len(r.list(func(req *model.ReportRequest) bool {
		return req.Status == model.ReportStatusRequested
	})), nil
}

func (r *implRepository) TransitionStatus(ctx context.Context, opts repository.TransitionOptions) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[opts.ID]
	if !ok {
		return false, repository.ErrRequestNotFound
	}
	if req.Status != opts.From {
		return false, nil
	}

	req.Status = opts.To
	at := opts.At
	switch {
	case opts.To == model.ReportStatusProcessing:
		req.EvaluateStartedAt = &at
	case opts.From == model.ReportStatusProcessing && opts.To.IsTerminal():
		req.EvaluateCompletedAt = &at
	}
	if opts.Failure != nil {
		f := *opts.Failure
		req.Failure = &f
	}
	return true, nil
}

func (r *implRepository) UpdateLabels(ctx context.Context, id uuid.UUID, labels []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	req.Labels = slices.Clone(labels)
	return nil
}

func (r *implRepository) SetArchived(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	req.Archived = true
	return nil
}

func (r *implRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.requests, id)
	return nil
}

// list returns clones of matching requests ordered by sequence.
func (r *implRepository) list(match func(*model.ReportRequest) bool) []*model.ReportRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.ReportRequest, 0)
	for _, req := range r.requests {
		if match(req) {
			out = append(out, req.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *model.ReportRequest) int {
		switch {
		case a.Sequence < b.Sequence:
			return -1
		case a.Sequence > b.Sequence:
			return 1
		}
		return a.RequestedAt.Compare(b.RequestedAt)
	})
	return out
}
