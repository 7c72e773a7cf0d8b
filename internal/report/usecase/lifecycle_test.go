package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
)

func TestArchive_RoundTrip(t *testing.T) {
	uc, _ := setupReportUseCase(t, nil, Config{})
	ctx := context.Background()

	out := submit(t, uc, weightsDefinition("weights"), "csv")
	assert.ErrorIs(t, uc.Archive(ctx, out.ID), report.ErrRequestNotCompleted)

	processAll(t, uc)
	require.NoError(t, uc.Archive(ctx, out.ID))
	require.NoError(t, uc.Archive(ctx, out.ID))

	completed, err := uc.ListCompleted(ctx)
	require.NoError(t, err)
	assert.Empty(t, completed)

	archived, err := uc.ListArchived(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, out.ID, archived[0].ID)
	assert.Equal(t, model.ReportStatusCompleted, archived[0].Status)

	hist, err := uc.History(ctx, report.HistoryInput{Archived: true})
	require.NoError(t, err)
	require.Len(t, hist.Archived, 1)
	assert.Empty(t, hist.Completed)

	dl, err := uc.Download(ctx, out.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, dl.Data)

	assert.ErrorIs(t, uc.Archive(ctx, uuid.New()), report.ErrReportRequestNotFound)
}

func TestArchive_FailedRequestRefused(t *testing.T) {
	uc, _ := setupReportUseCase(t, nil, Config{})
	ctx := context.Background()

	out := submit(t, uc, weightsDefinition(""), "csv")
	processAll(t, uc)

	assert.ErrorIs(t, uc.Archive(ctx, out.ID), report.ErrRequestNotCompleted)
}

func TestDeleteFromHistory(t *testing.T) {
	uc, stores := setupReportUseCase(t, nil, Config{})
	ctx := context.Background()

	t.Run("unknown id is fine", func(t *testing.T) {
		assert.NoError(t, uc.DeleteFromHistory(ctx, uuid.New()))
	})

	t.Run("queued request is refused", func(t *testing.T) {
		out := submit(t, uc, weightsDefinition("weights"), "csv")
		assert.ErrorIs(t, uc.DeleteFromHistory(ctx, out.ID), report.ErrRequestNotTerminal)
		require.NoError(t, uc.Cancel(ctx, out.ID))
		assert.NoError(t, uc.DeleteFromHistory(ctx, out.ID))
	})

	t.Run("completed request is removed with its artifact", func(t *testing.T) {
		out := submit(t, uc, weightsDefinition("weights"), "csv")
		processAll(t, uc)

		rpt, err := uc.GetReport(ctx, out.ID)
		require.NoError(t, err)

		require.NoError(t, uc.DeleteFromHistory(ctx, out.ID))
		require.NoError(t, uc.DeleteFromHistory(ctx, out.ID))

		_, err = uc.GetReportRequest(ctx, out.ID)
		assert.ErrorIs(t, err, report.ErrReportRequestNotFound)
		_, err = uc.GetReport(ctx, out.ID)
		assert.ErrorIs(t, err, report.ErrReportNotFound)
		_, err = stores.artifacts.Get(ctx, rpt.ArtifactKey)
		assert.ErrorIs(t, err, repository.ErrArtifactNotFound)

		assert.Contains(t, stores.events.types(), report.EventDeleted)
	})
}

func TestCancel(t *testing.T) {
	uc, stores := setupReportUseCase(t, nil, Config{})
	ctx := context.Background()

	out := submit(t, uc, weightsDefinition("weights"), "csv")
	require.NoError(t, uc.Cancel(ctx, out.ID))
	assert.ErrorIs(t, uc.Cancel(ctx, out.ID), report.ErrNotCancellable)
	assert.ErrorIs(t, uc.Cancel(ctx, uuid.New()), report.ErrReportRequestNotFound)

	processed, err := uc.processNext(ctx)
	require.NoError(t, err)
	assert.False(t, processed)

	req, err := uc.GetReportRequest(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusCancelled, req.Status)
	assert.Nil(t, req.EvaluateStartedAt)

	_, err = uc.Download(ctx, out.ID)
	assert.ErrorIs(t, err, report.ErrRequestNotCompleted)

	completed, err := uc.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)

	assert.Equal(t, []string{report.EventSubmitted, report.EventCancelled}, stores.events.types())
}
