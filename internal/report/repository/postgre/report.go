package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

const reportColumns = "id, request_id, raw_data, content_type, filename, artifact_key, size, created_at"

const (
	upsertReportQuery = `INSERT INTO reports (` + reportColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (request_id) DO UPDATE SET
		id = EXCLUDED.id, raw_data = EXCLUDED.raw_data, content_type = EXCLUDED.content_type,
		filename = EXCLUDED.filename, artifact_key = EXCLUDED.artifact_key, size = EXCLUDED.size,
		created_at = EXCLUDED.created_at`
	selectReportQuery = "SELECT " + reportColumns + " FROM reports WHERE request_id = $1"
	deleteReportQuery = "DELETE FROM reports WHERE request_id = $1"
)

// Save - Upsert the report of a request. One report per request.
func (r *implRepository) Save(ctx context.Context, rpt *model.Report) error {
	var raw []byte
	if rpt.RawData != nil {
		b, err := json.Marshal(rpt.RawData)
		if err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.Save: Failed to encode data set: %v", err)
			return err
		}
		raw = b
	}

	_, err := r.db.ExecContext(ctx, upsertReportQuery,
		rpt.ID, rpt.RequestID, raw, rpt.ContentType, rpt.Filename, rpt.ArtifactKey, rpt.Size, rpt.CreatedAt)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Save: Failed to save report for %s: %v", rpt.RequestID, err)
		return err
	}
	return nil
}

func (r *implRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*model.Report, error) {
	var (
		rpt model.Report
		raw []byte
	)
	err := r.db.QueryRowContext(ctx, selectReportQuery, requestID).Scan(
		&rpt.ID, &rpt.RequestID, &raw, &rpt.ContentType, &rpt.Filename, &rpt.ArtifactKey, &rpt.Size, &rpt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrReportNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetByRequestID: Failed to query report for %s: %v", requestID, err)
		return nil, err
	}

	if len(raw) > 0 {
		var ds dataset.DataSet
		if err := json.Unmarshal(raw, &ds); err != nil {
			return nil, fmt.Errorf("%w: report for %s: %v", repository.ErrCorruptRecord, requestID, err)
		}
		rpt.RawData = &ds
	}
	return &rpt, nil
}

func (r *implRepository) DeleteByRequestID(ctx context.Context, requestID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, deleteReportQuery, requestID); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.DeleteByRequestID: Failed to delete report for %s: %v", requestID, err)
		return err
	}
	return nil
}
