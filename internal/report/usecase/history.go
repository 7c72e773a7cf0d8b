package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/render"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
)

func (uc *implUseCase) ListQueued(ctx context.Context) ([]*model.ReportRequest, error) {
	reqs, err := uc.requests.ListQueued(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListQueued: Failed to list queued requests: %v", err)
		return nil, err
	}
	return uc.overlayAll(reqs), nil
}

func (uc *implUseCase) ListCompleted(ctx context.Context) ([]*model.ReportRequest, error) {
	reqs, err := uc.requests.ListCompleted(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListCompleted: Failed to list completed requests: %v", err)
		return nil, err
	}
	return uc.overlayAll(reqs), nil
}

func (uc *implUseCase) ListArchived(ctx context.Context) ([]*model.ReportRequest, error) {
	reqs, err := uc.requests.ListArchived(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListArchived: Failed to list archived requests: %v", err)
		return nil, err
	}
	return uc.overlayAll(reqs), nil
}

// History builds the listing view models, newest first.
func (uc *implUseCase) History(ctx context.Context, input report.HistoryInput) (report.HistoryOutput, error) {
	var out report.HistoryOutput

	if input.Archived {
		archived, err := uc.ListArchived(ctx)
		if err != nil {
			return report.HistoryOutput{}, err
		}
		out.Archived = uc.entries(ctx, archived)
		return out, nil
	}

	queued, err := uc.ListQueued(ctx)
	if err != nil {
		return report.HistoryOutput{}, err
	}
	completed, err := uc.ListCompleted(ctx)
	if err != nil {
		return report.HistoryOutput{}, err
	}
	out.Queued = uc.entries(ctx, queued)
	out.Completed = uc.entries(ctx, completed)
	return out, nil
}

func (uc *implUseCase) entries(ctx context.Context, reqs []*model.ReportRequest) []report.HistoryEntry {
	out := make([]report.HistoryEntry, 0, len(reqs))
	for i := len(reqs) - 1; i >= 0; i-- {
		out = append(out, report.HistoryEntry{
			Request: reqs[i],
			Display: uc.display(ctx, reqs[i]),
		})
	}
	return out
}

// display returns nil when the entry cannot be presented; the listing goes on without it.
func (uc *implUseCase) display(ctx context.Context, req *model.ReportRequest) *report.Display {
	r, err := uc.renderers.Get(req.Mode.Renderer)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.display: Request %s: %v", req.ID, err)
		return nil
	}
	code, err := render.DisplayCode(r, req.Definition, req.Mode.Argument)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.display: Request %s: %v", req.ID, err)
		return nil
	}
	return &report.Display{
		Code:   code,
		Label:  r.Label(),
		Inline: r.Kind() == render.KindInline,
	}
}

func (uc *implUseCase) GetReportRequest(ctx context.Context, id uuid.UUID) (*model.ReportRequest, error) {
	req, err := uc.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.overlay(req), nil
}

func (uc *implUseCase) GetReport(ctx context.Context, requestID uuid.UUID) (*model.Report, error) {
	rpt, err := uc.reports.GetByRequestID(ctx, requestID)
	if errors.Is(err, repository.ErrReportNotFound) {
		return nil, report.ErrReportNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GetReport: Failed to get report for %s: %v", requestID, err)
		return nil, err
	}
	return rpt, nil
}

// getRequest reads the stored request without staged labels.
func (uc *implUseCase) getRequest(ctx context.Context, id uuid.UUID) (*model.ReportRequest, error) {
	req, err := uc.requests.GetByUUID(ctx, id)
	if errors.Is(err, repository.ErrRequestNotFound) {
		return nil, report.ErrReportRequestNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.getRequest: Failed to get request %s: %v", id, err)
		return nil, err
	}
	return req, nil
}
