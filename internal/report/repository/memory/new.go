package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

type implRepository struct {
	mu       sync.RWMutex
	seq      int64
	requests map[uuid.UUID]*model.ReportRequest
	reports  map[uuid.UUID]*model.Report
}

// New creates an in-process request and report store.
func New() repository.RequestReportRepository {
	return &implRepository{
		requests: map[uuid.UUID]*model.ReportRequest{},
		reports:  map[uuid.UUID]*model.Report{},
	}
}

type implArtifacts struct {
	mu    sync.RWMutex
	items map[string]repository.Artifact
}

// NewArtifacts creates an in-process artifact store.
func NewArtifacts() repository.ArtifactRepository {
	return &implArtifacts{items: map[string]repository.Artifact{}}
}

type sessionEntry struct {
	session   model.InlineSession
	expiresAt time.Time
}

type implSessions struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]sessionEntry
}

// NewSessions creates an in-process session store.
func NewSessions() repository.SessionRepository {
	return &implSessions{now: time.Now, items: map[string]sessionEntry{}}
}
