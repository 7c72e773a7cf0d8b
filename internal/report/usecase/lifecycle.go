package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
)

// Archive moves a completed request to the archived history. Archiving twice is a no-op.
func (uc *implUseCase) Archive(ctx context.Context, id uuid.UUID) error {
	req, err := uc.getRequest(ctx, id)
	if err != nil {
		return err
	}
	if req.Status != model.ReportStatusCompleted {
		return report.ErrRequestNotCompleted
	}
	if req.Archived {
		return nil
	}

	if err := uc.requests.SetArchived(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return report.ErrReportRequestNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.Archive: Failed to archive %s: %v", id, err)
		return err
	}

	req.Archived = true
	uc.publish(ctx, report.EventArchived, req)
	return nil
}

// DeleteFromHistory removes a finished request with its report and artifact.
// Unknown ids are ignored.
func (uc *implUseCase) DeleteFromHistory(ctx context.Context, id uuid.UUID) error {
	req, err := uc.getRequest(ctx, id)
	if errors.Is(err, report.ErrReportRequestNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !req.Status.IsTerminal() {
		return report.ErrRequestNotTerminal
	}

	rpt, err := uc.reports.GetByRequestID(ctx, id)
	switch {
	case err == nil:
		if rpt.HasArtifact() {
			if err := uc.artifacts.Delete(ctx, rpt.ArtifactKey); err != nil {
				uc.l.Errorf(ctx, "report.usecase.DeleteFromHistory: Failed to delete artifact of %s: %v", id, err)
				return err
			}
		}
		if err := uc.reports.DeleteByRequestID(ctx, id); err != nil {
			uc.l.Errorf(ctx, "report.usecase.DeleteFromHistory: Failed to delete report of %s: %v", id, err)
			return err
		}
	case !errors.Is(err, repository.ErrReportNotFound):
		uc.l.Errorf(ctx, "report.usecase.DeleteFromHistory: Failed to get report of %s: %v", id, err)
		return err
	}

	if err := uc.requests.Delete(ctx, id); err != nil {
		uc.l.Errorf(ctx, "report.usecase.DeleteFromHistory: Failed to delete request %s: %v", id, err)
		return err
	}

	uc.dropStaged(id)
	uc.publish(ctx, report.EventDeleted, req)
	return nil
}

// Cancel withdraws a request that no worker has claimed yet.
func (uc *implUseCase) Cancel(ctx context.Context, id uuid.UUID) error {
	ok, err := uc.requests.TransitionStatus(ctx, repository.TransitionOptions{
		ID:   id,
		From: model.ReportStatusRequested,
		To:   model.ReportStatusCancelled,
		At:   time.Now(),
	})
	if errors.Is(err, repository.ErrRequestNotFound) {
		return report.ErrReportRequestNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Cancel: Failed to cancel %s: %v", id, err)
		return err
	}
	if !ok {
		return report.ErrNotCancellable
	}

	uc.metrics.observeFinished(model.ReportStatusCancelled, 0)
	uc.refreshQueueDepth(ctx)

	if req, err := uc.getRequest(ctx, id); err == nil {
		uc.publish(ctx, report.EventCancelled, req)
	}
	return nil
}
