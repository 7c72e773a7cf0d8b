package report

import (
	"context"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Submit(ctx context.Context, input SubmitInput) (SubmitOutput, error)

	// RunWorkers processes queued requests until ctx is cancelled.
	RunWorkers(ctx context.Context)

	ListQueued(ctx context.Context) ([]*model.ReportRequest, error)
	ListCompleted(ctx context.Context) ([]*model.ReportRequest, error)
	ListArchived(ctx context.Context) ([]*model.ReportRequest, error)
	History(ctx context.Context, input HistoryInput) (HistoryOutput, error)

	GetReportRequest(ctx context.Context, id uuid.UUID) (*model.ReportRequest, error)
	GetReport(ctx context.Context, requestID uuid.UUID) (*model.Report, error)

	Archive(ctx context.Context, id uuid.UUID) error
	DeleteFromHistory(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error

	// AddLabel and RemoveLabel stage changes; SaveReportRequest persists them.
	AddLabel(ctx context.Context, id uuid.UUID, label string) error
	RemoveLabel(ctx context.Context, id uuid.UUID, label string) error
	SaveReportRequest(ctx context.Context, id uuid.UUID) error

	Open(ctx context.Context, input OpenInput) (OpenOutput, error)
	Download(ctx context.Context, id uuid.UUID) (DownloadOutput, error)
	RenderInline(ctx context.Context, input RenderInlineInput) (RenderInlineOutput, error)
}

// Publisher receives lifecycle events. Publishing is best effort.
//
//go:generate mockery --name Publisher
type Publisher interface {
	PublishLifecycle(ctx context.Context, event LifecycleEvent) error
}
