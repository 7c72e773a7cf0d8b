package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/render"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
)

// Open prepares a finished report for viewing. Inline reports are stashed in the
// caller's session and answered with a redirect; file reports return a summary.
func (uc *implUseCase) Open(ctx context.Context, input report.OpenInput) (report.OpenOutput, error) {
	req, rpt, err := uc.readyReport(ctx, input.ID)
	if err != nil {
		return report.OpenOutput{}, err
	}

	r, err := uc.renderers.Get(req.Mode.Renderer)
	if err != nil {
		return report.OpenOutput{}, fmt.Errorf("%w: %q", report.ErrUnknownRenderer, req.Mode.Renderer)
	}

	if ir, ok := render.AsInline(r); ok {
		if input.SessionID == "" {
			return report.OpenOutput{}, report.ErrSessionNotFound
		}
		err := uc.sessions.Stash(ctx, input.SessionID, model.InlineSession{
			RequestID: req.ID,
			Renderer:  r.Name(),
			Argument:  req.Mode.Argument,
			Data:      rpt.RawData,
		}, uc.config.SessionTTL)
		if err != nil {
			uc.l.Errorf(ctx, "report.usecase.Open: Failed to stash session for %s: %v", req.ID, err)
			return report.OpenOutput{}, err
		}
		return report.OpenOutput{
			Inline:      true,
			RedirectURL: redirectURL(ir.LinkURL()),
		}, nil
	}

	return report.OpenOutput{
		Summary: &report.ReportSummary{
			RequestID:   req.ID,
			Filename:    rpt.Filename,
			ContentType: rpt.ContentType,
			Size:        rpt.Size,
			Rows:        rpt.RawData.Len(),
			CreatedAt:   rpt.CreatedAt,
		},
	}, nil
}

// Download returns the stored bytes of a file report.
func (uc *implUseCase) Download(ctx context.Context, id uuid.UUID) (report.DownloadOutput, error) {
	_, rpt, err := uc.readyReport(ctx, id)
	if err != nil {
		return report.DownloadOutput{}, err
	}
	if !rpt.HasArtifact() {
		return report.DownloadOutput{}, report.ErrNotDownloadable
	}

	art, err := uc.artifacts.Get(ctx, rpt.ArtifactKey)
	if errors.Is(err, repository.ErrArtifactNotFound) {
		uc.l.Warnf(ctx, "report.usecase.Download: Artifact %s of %s is gone", rpt.ArtifactKey, id)
		return report.DownloadOutput{}, report.ErrArtifactMissing
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Download: Failed to read artifact of %s: %v", id, err)
		return report.DownloadOutput{}, err
	}

	return report.DownloadOutput{
		Filename:    rpt.Filename,
		ContentType: rpt.ContentType,
		Data:        art.Data,
	}, nil
}

// RenderInline renders the data stashed in the session by Open.
func (uc *implUseCase) RenderInline(ctx context.Context, input report.RenderInlineInput) (report.RenderInlineOutput, error) {
	s, err := uc.sessions.Load(ctx, input.SessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return report.RenderInlineOutput{}, report.ErrSessionNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.RenderInline: Failed to load session: %v", err)
		return report.RenderInlineOutput{}, err
	}
	if s.Data == nil {
		return report.RenderInlineOutput{}, report.ErrSessionNotFound
	}
	if s.Renderer != input.Renderer {
		return report.RenderInlineOutput{}, report.ErrSessionMismatch
	}

	r, err := uc.renderers.Get(input.Renderer)
	if err != nil {
		return report.RenderInlineOutput{}, fmt.Errorf("%w: %q", report.ErrUnknownRenderer, input.Renderer)
	}
	ir, ok := render.AsInline(r)
	if !ok {
		return report.RenderInlineOutput{}, fmt.Errorf("%w: %q is not an inline renderer", report.ErrUnknownRenderer, input.Renderer)
	}

	var buf bytes.Buffer
	if err := ir.RenderInline(&buf, s.Data, s.Argument); err != nil {
		uc.l.Errorf(ctx, "report.usecase.RenderInline: Failed to render %s: %v", s.RequestID, err)
		return report.RenderInlineOutput{}, err
	}

	return report.RenderInlineOutput{
		ContentType: ir.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// readyReport returns the request and its report, or the reason they cannot be served yet.
func (uc *implUseCase) readyReport(ctx context.Context, id uuid.UUID) (*model.ReportRequest, *model.Report, error) {
	req, err := uc.getRequest(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	switch req.Status {
	case model.ReportStatusRequested, model.ReportStatusProcessing:
		return nil, nil, report.ErrArtifactNotReady
	case model.ReportStatusFailed:
		if req.Failure != nil {
			return nil, nil, fmt.Errorf("%w: %s", report.ErrReportFailed, req.Failure.Message)
		}
		return nil, nil, report.ErrReportFailed
	case model.ReportStatusCancelled:
		return nil, nil, report.ErrRequestNotCompleted
	}

	rpt, err := uc.reports.GetByRequestID(ctx, id)
	if errors.Is(err, repository.ErrReportNotFound) {
		uc.l.Warnf(ctx, "report.usecase.readyReport: Completed request %s has no report", id)
		return nil, nil, report.ErrArtifactMissing
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.readyReport: Failed to get report of %s: %v", id, err)
		return nil, nil, err
	}
	return req, rpt, nil
}

func redirectURL(link string) string {
	if strings.Contains(link, "://") || strings.HasPrefix(link, "/") {
		return link
	}
	return "/" + link
}
