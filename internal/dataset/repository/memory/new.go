package memory

import (
	"slices"
	"sync"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
)

type implRepository struct {
	mu  sync.RWMutex
	obs []dataset.Obs
}

// New creates an in-memory observation source seeded with obs.
func New(obs []dataset.Obs) repository.ObsRepository {
	return &implRepository{obs: slices.Clone(obs)}
}
