package postgre

import (
	"context"
	"fmt"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
)

// ListObs - Select non-voided observations matching the filters.
func (r *implRepository) ListObs(ctx context.Context, opts repository.ListObsOptions) ([]dataset.Obs, error) {
	query, args := r.buildListObsQuery(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "dataset.repository.postgre.ListObs: Failed to query obs: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrObsQueryFailed, err)
	}
	defer rows.Close()

	var out []dataset.Obs
	for rows.Next() {
		var row obsRow
		if err := rows.Scan(row.dest()...); err != nil {
			r.l.Errorf(ctx, "dataset.repository.postgre.ListObs: Failed to scan obs: %v", err)
			return nil, fmt.Errorf("%w: %v", repository.ErrObsQueryFailed, err)
		}
		out = append(out, row.toObs())
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "dataset.repository.postgre.ListObs: Rows error: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrObsQueryFailed, err)
	}

	return out, nil
}

// ListPatientIDs - Select distinct patients having a matching observation.
func (r *implRepository) ListPatientIDs(ctx context.Context, opts repository.ListPatientIDsOptions) ([]int, error) {
	query, args := r.buildListPatientIDsQuery(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "dataset.repository.postgre.ListPatientIDs: Failed to query patients: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrObsQueryFailed, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			r.l.Errorf(ctx, "dataset.repository.postgre.ListPatientIDs: Failed to scan patient id: %v", err)
			return nil, fmt.Errorf("%w: %v", repository.ErrObsQueryFailed, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrObsQueryFailed, err)
	}

	return ids, nil
}
