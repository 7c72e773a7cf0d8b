package repository

import (
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
)

// TransitionOptions describes a compare-and-swap status change.
type TransitionOptions struct {
	ID   uuid.UUID
	From model.ReportStatus
	To   model.ReportStatus
	At   time.Time
	// Failure is recorded when To is FAILED.
	Failure *model.Failure
}

type PutArtifactOptions struct {
	Key         string
	Filename    string
	ContentType string
	Data        []byte
}

type Artifact struct {
	Key         string
	Filename    string
	ContentType string
	Data        []byte
}
