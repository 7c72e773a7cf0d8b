package postgre

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
	"reporting-srv/pkg/log"
)

func setupMockReportDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, repository.RequestReportRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, New(db, log.NewNop())
}

var requestRowColumns = []string{
	"id", "seq", "definition", "base_cohort", "parameters", "renderer", "argument", "labels", "status", "archived",
	"failure_kind", "failure_message", "requested_at", "evaluate_started_at", "evaluate_completed_at",
}

func weightsDefinitionJSON(t *testing.T) []byte {
	def := dataset.NewObsDefinition("weights")
	def.Questions().Add(dataset.Concept{ID: 5089, Name: "WEIGHT (KG)"})
	b, err := dataset.MarshalDefinition(def)
	require.NoError(t, err)
	return b
}

func TestCreate_AssignsSequence(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	id := uuid.New()
	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO report_requests (.+) RETURNING seq`).
		WithArgs(id, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "csv", "", sqlmock.AnyArg(), "REQUESTED", at).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(42))

	got, err := repo.Create(context.Background(), &model.ReportRequest{
		ID:          id,
		Definition:  dataset.NewObsDefinition("weights"),
		BaseCohort:  []int{1, 2},
		Mode:        model.RenderingMode{Renderer: "csv"},
		Labels:      []string{"weekly"},
		RequestedAt: at,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Sequence)
	assert.Equal(t, model.ReportStatusRequested, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO report_requests`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &model.ReportRequest{
		ID:         uuid.New(),
		Definition: dataset.NewObsDefinition("weights"),
		Mode:       model.RenderingMode{Renderer: "csv"},
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateRequest)
}

func TestGetByUUID(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	id := uuid.New()
	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	started := at.Add(time.Second)
	done := at.Add(2 * time.Second)

	rows := sqlmock.NewRows(requestRowColumns).AddRow(
		id.String(), 3, weightsDefinitionJSON(t), "{7,9}", []byte(`{"site":"north"}`), "xlsx", "Weekly",
		"{urgent,weekly}", "FAILED", false, "evaluation", "boom", at, started, done)

	mock.ExpectQuery(`SELECT (.+) FROM report_requests WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(rows)

	req, err := repo.GetByUUID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, req.ID)
	assert.Equal(t, int64(3), req.Sequence)
	assert.Equal(t, "weights", req.Definition.Name())
	assert.Equal(t, []int{7, 9}, req.BaseCohort)
	assert.Equal(t, "north", req.Parameters["site"])
	assert.Equal(t, model.RenderingMode{Renderer: "xlsx", Argument: "Weekly"}, req.Mode)
	assert.Equal(t, []string{"urgent", "weekly"}, req.Labels)
	assert.Equal(t, model.ReportStatusFailed, req.Status)
	require.NotNil(t, req.Failure)
	assert.Equal(t, model.Failure{Kind: model.FailureKindEvaluation, Message: "boom"}, *req.Failure)
	require.NotNil(t, req.EvaluateStartedAt)
	assert.True(t, started.Equal(*req.EvaluateStartedAt))
	require.NotNil(t, req.EvaluateCompletedAt)
	assert.True(t, done.Equal(*req.EvaluateCompletedAt))
}

func TestGetByUUID_NotFound(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM report_requests WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(requestRowColumns))

	_, err := repo.GetByUUID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrRequestNotFound)
}

func TestNextRequested_Empty(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM report_requests WHERE status = \$1 ORDER BY seq LIMIT 1`).
		WithArgs("REQUESTED").
		WillReturnRows(sqlmock.NewRows(requestRowColumns))

	req, err := repo.NextRequested(context.Background())
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestListCompleted_SkipsCorruptRows(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	good := uuid.New()
	rows := sqlmock.NewRows(requestRowColumns).
		AddRow(uuid.New().String(), 1, []byte(`{"type":"sql"}`), nil, nil, "csv", "", "{}", "COMPLETED", false, nil, nil, at, nil, nil).
		AddRow(good.String(), 2, weightsDefinitionJSON(t), nil, nil, "csv", "", "{}", "COMPLETED", false, nil, nil, at, nil, nil)

	mock.ExpectQuery(`SELECT (.+) FROM report_requests WHERE status = ANY\(\$1\) AND archived = \$2 ORDER BY seq`).
		WithArgs(sqlmock.AnyArg(), false).
		WillReturnRows(rows)

	reqs, err := repo.ListCompleted(context.Background())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, good, reqs[0].ID)
	assert.Nil(t, reqs[0].BaseCohort)
	assert.Equal(t, []string{}, reqs[0].Labels)
}

func TestListArchived(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM report_requests WHERE archived = \$1 ORDER BY seq`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(requestRowColumns))

	reqs, err := repo.ListArchived(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestListProcessing(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM report_requests WHERE status = ANY\(\$1\) ORDER BY seq`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(requestRowColumns).
			AddRow(id.String(), 4, weightsDefinitionJSON(t), nil, nil, "csv", "", "{}", "PROCESSING", false, nil, nil, at, at, nil))

	reqs, err := repo.ListProcessing(context.Background())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, id, reqs[0].ID)
	assert.Equal(t, model.ReportStatusProcessing, reqs[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus(t *testing.T) {
	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	t.Run("start processing", func(t *testing.T) {
		db, mock, repo := setupMockReportDB(t)
		defer db.Close()

		id := uuid.New()
		mock.ExpectExec(`UPDATE report_requests SET status = \$3, evaluate_started_at = \$4 WHERE id = \$1 AND status = \$2`).
			WithArgs(id, "REQUESTED", "PROCESSING", at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.TransitionStatus(context.Background(), repository.TransitionOptions{
			ID: id, From: model.ReportStatusRequested, To: model.ReportStatusProcessing, At: at,
		})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("fail with reason", func(t *testing.T) {
		db, mock, repo := setupMockReportDB(t)
		defer db.Close()

		id := uuid.New()
		mock.ExpectExec(`UPDATE report_requests SET status = \$3, evaluate_completed_at = \$4, failure_kind = \$5, failure_message = \$6 WHERE id = \$1 AND status = \$2`).
			WithArgs(id, "PROCESSING", "FAILED", at, "rendering", "bad sheet").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.TransitionStatus(context.Background(), repository.TransitionOptions{
			ID: id, From: model.ReportStatusProcessing, To: model.ReportStatusFailed, At: at,
			Failure: &model.Failure{Kind: model.FailureKindRendering, Message: "bad sheet"},
		})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("lost race", func(t *testing.T) {
		db, mock, repo := setupMockReportDB(t)
		defer db.Close()

		id := uuid.New()
		mock.ExpectExec(`UPDATE report_requests SET status = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := repo.TransitionStatus(context.Background(), repository.TransitionOptions{
			ID: id, From: model.ReportStatusRequested, To: model.ReportStatusCancelled, At: at,
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown request", func(t *testing.T) {
		db, mock, repo := setupMockReportDB(t)
		defer db.Close()

		mock.ExpectExec(`UPDATE report_requests SET status = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.TransitionStatus(context.Background(), repository.TransitionOptions{
			ID: uuid.New(), From: model.ReportStatusRequested, To: model.ReportStatusCancelled, At: at,
		})
		assert.ErrorIs(t, err, repository.ErrRequestNotFound)
	})
}

func TestUpdateLabelsAndArchive_NotFound(t *testing.T) {
	db, mock, repo := setupMockReportDB(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE report_requests SET labels = \$2 WHERE id = \$1`).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE report_requests SET archived = true WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, repo.UpdateLabels(context.Background(), id, nil), repository.ErrRequestNotFound)
	assert.NoError(t, repo.SetArchived(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
