package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

const uniqueViolation = "23505"

// Create - Insert a REQUESTED request; the database assigns the sequence.
func (r *implRepository) Create(ctx context.Context, req *model.ReportRequest) (*model.ReportRequest, error) {
	args, err := buildInsertArgs(req)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Create: Failed to encode request: %v", err)
		return nil, err
	}

	var seq int64
	if err := r.db.QueryRowContext(ctx, insertRequestQuery, args...).Scan(&seq); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateRequest, req.ID)
		}
		r.l.Errorf(ctx, "report.repository.postgre.Create: Failed to insert request: %v", err)
		return nil, err
	}

	stored := req.Clone()
	stored.Sequence = seq
	stored.Status = model.ReportStatusRequested
	stored.Archived = false
	return stored, nil
}

func (r *implRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*model.ReportRequest, error) {
	req, err := r.scanOne(ctx, selectRequestByIDQuery, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, repository.ErrRequestNotFound
	}
	return req, nil
}

// NextRequested - Oldest REQUESTED request by sequence, nil when the queue is empty.
func (r *implRepository) NextRequested(ctx context.Context) (*model.ReportRequest, error) {
	return r.scanOne(ctx, selectNextRequestedQuery, string(model.ReportStatusRequested))
}

func (r *implRepository) ListProcessing(ctx context.Context) ([]*model.ReportRequest, error) {
	query, args := r.buildListQuery([]model.ReportStatus{model.ReportStatusProcessing}, nil)
	return r.scanAll(ctx, query, args...)
}

func (r *implRepository) ListQueued(ctx context.Context) ([]*model.ReportRequest, error) {
	query, args := r.buildListQuery([]model.ReportStatus{model.ReportStatusRequested, model.ReportStatusProcessing}, nil)
	return r.scanAll(ctx, query, args...)
}

func (r *implRepository) ListCompleted(ctx context.Context) ([]*model.ReportRequest, error) {
	archived := false
	query, args := r.buildListQuery([]model.ReportStatus{
		model.ReportStatusCompleted, model.ReportStatusFailed, model.ReportStatusCancelled,
	}, &archived)
	return r.scanAll(ctx, query, args...)
}

func (r *implRepository) ListArchived(ctx context.Context) ([]*model.ReportRequest, error) {
	archived := true
	query, args := r.buildListQuery(nil, &archived)
	return r.scanAll(ctx, query, args...)
}

func (r *implRepository) CountQueued(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countByStatusQuery, string(model.ReportStatusRequested)).Scan(&n); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CountQueued: Failed to count: %v", err)
		return 0, err
	}
	return n, nil
}

// TransitionStatus - Returns false when the stored status no longer equals opts.From.
func (r *implRepository) TransitionStatus(ctx context.Context, opts repository.TransitionOptions) (bool, error) {
	query, args := r.buildTransitionQuery(opts)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.TransitionStatus: Failed to update %s: %v", opts.ID, err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, existsRequestQuery, opts.ID).Scan(&exists); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.TransitionStatus: Failed to check %s: %v", opts.ID, err)
		return false, err
	}
	if !exists {
		return false, repository.ErrRequestNotFound
	}
	return false, nil
}

func (r *implRepository) UpdateLabels(ctx context.Context, id uuid.UUID, labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	return r.execOne(ctx, "UpdateLabels", updateLabelsQuery, id, pq.StringArray(labels))
}

func (r *implRepository) SetArchived(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, "SetArchived", setArchivedQuery, id)
}

func (r *implRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, deleteRequestQuery, id); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Delete: Failed to delete %s: %v", id, err)
		return err
	}
	return nil
}

// execOne runs an update that must touch exactly the row identified by the first argument.
func (r *implRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.%s: Failed to update: %v", op, err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrRequestNotFound
	}
	return nil
}

func (r *implRepository) scanOne(ctx context.Context, query string, args ...any) (*model.ReportRequest, error) {
	var row requestRow
	err := r.db.QueryRowContext(ctx, query, args...).Scan(row.dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.scanOne: Failed to query request: %v", err)
		return nil, err
	}
	return row.toModel()
}

func (r *implRepository) scanAll(ctx context.Context, query string, args ...any) ([]*model.ReportRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.scanAll: Failed to query requests: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.ReportRequest, 0)
	for rows.Next() {
		var row requestRow
		if err := rows.Scan(row.dest()...); err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.scanAll: Failed to scan request: %v", err)
			return nil, err
		}
		req, err := row.toModel()
		if err != nil {
			r.l.Warnf(ctx, "report.repository.postgre.scanAll: Skipping record: %v", err)
			continue
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
