package report

import (
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
)

// SubmitInput is a new report request.
type SubmitInput struct {
	Definition dataset.Definition
	Mode       model.RenderingMode
	Labels     []string
	// BaseCohort restricts evaluation to these patients. Nil means all patients.
	BaseCohort []int
	Parameters map[string]any
}

type SubmitOutput struct {
	ID     uuid.UUID
	Status model.ReportStatus
}

type HistoryInput struct {
	Archived bool
}

// Display is how a history entry is presented in listings.
type Display struct {
	Code   string
	Label  string
	Inline bool
}

// HistoryEntry is the view model of one request. Display is nil when it
// could not be derived.
type HistoryEntry struct {
	Request *model.ReportRequest
	Display *Display
}

// HistoryOutput lists entries newest first.
type HistoryOutput struct {
	Queued    []HistoryEntry
	Completed []HistoryEntry
	Archived  []HistoryEntry
}

type OpenInput struct {
	ID        uuid.UUID
	SessionID string
}

// ReportSummary describes a stored file artifact.
type ReportSummary struct {
	RequestID   uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	Rows        int
	CreatedAt   time.Time
}

// OpenOutput is either a redirect to an inline rendering or a file summary.
type OpenOutput struct {
	Inline      bool
	RedirectURL string
	Summary     *ReportSummary
}

type DownloadOutput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type RenderInlineInput struct {
	SessionID string
	Renderer  string
}

type RenderInlineOutput struct {
	ContentType string
	Body        []byte
}

// Lifecycle event types.
const (
	EventSubmitted = "report.submitted"
	EventStarted   = "report.started"
	EventCompleted = "report.completed"
	EventFailed    = "report.failed"
	EventCancelled = "report.cancelled"
	EventArchived  = "report.archived"
	EventDeleted   = "report.deleted"
)

// LifecycleEvent is published on every request state change.
type LifecycleEvent struct {
	Type       string
	RequestID  uuid.UUID
	Status     model.ReportStatus
	Renderer   string
	Failure    *model.Failure
	OccurredAt time.Time
}
