package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report"
)

func TestLabels_AddThenRemoveRestoresSet(t *testing.T) {
	uc, stores := setupReportUseCase(t, nil, Config{})
	ctx := context.Background()

	out, err := uc.Submit(ctx, report.SubmitInput{
		Definition: weightsDefinition("weights"),
		Mode:       model.RenderingMode{Renderer: "csv"},
		Labels:     []string{"weekly"},
	})
	require.NoError(t, err)

	require.NoError(t, uc.AddLabel(ctx, out.ID, "urgent"))
	require.NoError(t, uc.AddLabel(ctx, out.ID, "urgent"))

	req, err := uc.GetReportRequest(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "weekly"}, req.Labels)

	stored, err := stores.requests.GetByUUID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"weekly"}, stored.Labels, "staged labels are not persisted before save")

	require.NoError(t, uc.RemoveLabel(ctx, out.ID, "urgent"))
	require.NoError(t, uc.RemoveLabel(ctx, out.ID, "absent"))
	require.NoError(t, uc.SaveReportRequest(ctx, out.ID))

	stored, err = stores.requests.GetByUUID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"weekly"}, stored.Labels)
}

func TestLabels_SavePersists(t *testing.T) {
	uc, stores := setupReportUseCase(t, nil, Config{})
	ctx := context.Background()
	out := submit(t, uc, weightsDefinition("weights"), "csv")

	require.NoError(t, uc.AddLabel(ctx, out.ID, "quarterly"))
	require.NoError(t, uc.SaveReportRequest(ctx, out.ID))

	stored, err := stores.requests.GetByUUID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"quarterly"}, stored.Labels)

	require.NoError(t, uc.SaveReportRequest(ctx, out.ID))
}

func TestLabels_Errors(t *testing.T) {
	uc, _ := setupReportUseCase(t, nil, Config{})
	ctx := context.Background()
	out := submit(t, uc, weightsDefinition("weights"), "csv")

	assert.ErrorIs(t, uc.AddLabel(ctx, out.ID, "  "), report.ErrInvalidLabel)
	assert.ErrorIs(t, uc.AddLabel(ctx, uuid.New(), "x"), report.ErrReportRequestNotFound)
	assert.ErrorIs(t, uc.RemoveLabel(ctx, uuid.New(), "x"), report.ErrReportRequestNotFound)
	assert.ErrorIs(t, uc.SaveReportRequest(ctx, uuid.New()), report.ErrReportRequestNotFound)
}
