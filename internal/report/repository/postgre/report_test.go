package postgre

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

var reportRowColumns = []string{
	"id", "request_id", "raw_data", "content_type", "filename", "artifact_key", "size", "created_at",
}

func TestReport_SaveAndGet(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	rpt := &model.Report{
		ID:        uuid.New(),
		RequestID: uuid.New(),
		RawData: &dataset.DataSet{
			Definition: "weights",
			Columns:    dataset.ObsColumns(),
			Rows:       []dataset.Row{{dataset.ColumnPatientID: 7}},
		},
		ContentType: "text/csv",
		Filename:    "weights.csv",
		ArtifactKey: "reports/x/weights.csv",
		Size:        12,
		CreatedAt:   at,
	}
	raw, err := json.Marshal(rpt.RawData)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO reports (.+) ON CONFLICT \(request_id\) DO UPDATE`).
		WithArgs(rpt.ID, rpt.RequestID, raw, "text/csv", "weights.csv", "reports/x/weights.csv", int64(12), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Save(context.Background(), rpt))

	mock.ExpectQuery(`SELECT (.+) FROM reports WHERE request_id = \$1`).
		WithArgs(rpt.RequestID).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).
			AddRow(rpt.ID.String(), rpt.RequestID.String(), raw, "text/csv", "weights.csv", "reports/x/weights.csv", 12, at))

	got, err := repo.GetByRequestID(context.Background(), rpt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "weights.csv", got.Filename)
	assert.True(t, got.HasArtifact())
	require.NotNil(t, got.RawData)
	assert.Equal(t, 7, got.RawData.Rows[0][dataset.ColumnPatientID])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReport_GetNotFound(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM reports WHERE request_id = \$1`).
		WillReturnRows(sqlmock.NewRows(reportRowColumns))

	_, err := repo.GetByRequestID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
}
