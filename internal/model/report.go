package model

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/dataset"
)

// ReportStatus is the lifecycle state of a report request.
type ReportStatus string

const (
	ReportStatusRequested  ReportStatus = "REQUESTED"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusCompleted  ReportStatus = "COMPLETED"
	ReportStatusFailed     ReportStatus = "FAILED"
	ReportStatusCancelled  ReportStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition can happen from s.
func (s ReportStatus) IsTerminal() bool {
	switch s {
	case ReportStatusCompleted, ReportStatusFailed, ReportStatusCancelled:
		return true
	}
	return false
}

func (s ReportStatus) IsValid() bool {
	return s == ReportStatusRequested || s == ReportStatusProcessing || s.IsTerminal()
}

// RenderingMode is the renderer name and its argument, fixed at submission.
type RenderingMode struct {
	Renderer string `json:"renderer"`
	Argument string `json:"argument,omitempty"`
}

// FailureKind classifies why a request ended FAILED.
type FailureKind string

const (
	FailureKindDefinition FailureKind = "definition"
	FailureKindEvaluation FailureKind = "evaluation"
	FailureKindRendering  FailureKind = "rendering"
	FailureKindStorage    FailureKind = "storage"
	FailureKindInternal   FailureKind = "internal"
)

// Failure is the structured error attached to a FAILED request.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// ReportRequest is one unit of queued reporting work.
type ReportRequest struct {
	ID         uuid.UUID
	Sequence   int64
	Definition dataset.Definition
	// BaseCohort restricts evaluation to these patients. Nil means all patients.
	BaseCohort []int
	Parameters map[string]any
	Mode       RenderingMode
	Labels     []string
	Status     ReportStatus
	Archived   bool
	Failure    *Failure

	RequestedAt         time.Time
	EvaluateStartedAt   *time.Time
	EvaluateCompletedAt *time.Time
}

// Clone returns a copy that shares no mutable state with r. The definition is
// shared and must be treated as read-only once submitted.
func (r *ReportRequest) Clone() *ReportRequest {
	if r == nil {
		return nil
	}
	c := *r
	c.BaseCohort = slices.Clone(r.BaseCohort)
	c.Labels = slices.Clone(r.Labels)
	if r.Parameters != nil {
		c.Parameters = make(map[string]any, len(r.Parameters))
		for k, v := range r.Parameters {
			c.Parameters[k] = v
		}
	}
	if r.Failure != nil {
		f := *r.Failure
		c.Failure = &f
	}
	if r.EvaluateStartedAt != nil {
		t := *r.EvaluateStartedAt
		c.EvaluateStartedAt = &t
	}
	if r.EvaluateCompletedAt != nil {
		t := *r.EvaluateCompletedAt
		c.EvaluateCompletedAt = &t
	}
	return &c
}

// HasLabel reports whether label is in the request's label set.
func (r *ReportRequest) HasLabel(label string) bool {
	return slices.Contains(r.Labels, label)
}

// Report is the published result of a completed request. Rendered bytes live in the
// artifact store under ArtifactKey; inline renderings have no artifact.
type Report struct {
	ID          uuid.UUID
	RequestID   uuid.UUID
	RawData     *dataset.DataSet
	ContentType string
	Filename    string
	ArtifactKey string
	Size        int64
	CreatedAt   time.Time
}

// HasArtifact reports whether rendered bytes were stored for the report.
func (r *Report) HasArtifact() bool {
	return r != nil && r.ArtifactKey != ""
}

// InlineSession is what an inline rendering reads back from session state.
type InlineSession struct {
	RequestID uuid.UUID        `json:"request_id"`
	Renderer  string           `json:"renderer"`
	Argument  string           `json:"argument,omitempty"`
	Data      *dataset.DataSet `json:"data"`
}
