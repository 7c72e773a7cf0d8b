package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
)

// RequestRepository stores report requests. Lists are ordered oldest first.
//
//go:generate mockery --name RequestRepository
type RequestRepository interface {
	// Create stores req in REQUESTED state and assigns its sequence number.
	Create(ctx context.Context, req *model.ReportRequest) (*model.ReportRequest, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.ReportRequest, error)
	// NextRequested returns the oldest REQUESTED request, or nil when none is queued.
	NextRequested(ctx context.Context) (*model.ReportRequest, error)
	// ListProcessing returns requests a worker has claimed but not finished.
	ListProcessing(ctx context.Context) ([]*model.ReportRequest, error)
	// ListQueued returns REQUESTED and PROCESSING requests.
	ListQueued(ctx context.Context) ([]*model.ReportRequest, error)
	// ListCompleted returns terminal, non-archived requests.
	ListCompleted(ctx context.Context) ([]*model.ReportRequest, error)
	ListArchived(ctx context.Context) ([]*model.ReportRequest, error)
	CountQueued(ctx context.Context) (int, error)
	// TransitionStatus changes the status only when it currently equals opts.From.
	TransitionStatus(ctx context.Context, opts TransitionOptions) (bool, error)
	UpdateLabels(ctx context.Context, id uuid.UUID, labels []string) error
	SetArchived(ctx context.Context, id uuid.UUID) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name ReportRepository
type ReportRepository interface {
	Save(ctx context.Context, rpt *model.Report) error
	GetByRequestID(ctx context.Context, requestID uuid.UUID) (*model.Report, error)
	DeleteByRequestID(ctx context.Context, requestID uuid.UUID) error
}

// ArtifactRepository holds rendered bytes.
//
//go:generate mockery --name ArtifactRepository
type ArtifactRepository interface {
	Put(ctx context.Context, opts PutArtifactOptions) error
	Get(ctx context.Context, key string) (*Artifact, error)
	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key string) error
}

// SessionRepository holds inline rendering state per client session.
//
//go:generate mockery --name SessionRepository
type SessionRepository interface {
	Stash(ctx context.Context, sessionID string, s model.InlineSession, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (model.InlineSession, error)
}

// RequestReportRepository is a store holding both requests and their reports.
//
//go:generate mockery --name RequestReportRepository
type RequestReportRepository interface {
	RequestRepository
	ReportRepository
}
