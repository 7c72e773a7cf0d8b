package memory

import (
	"context"
	"slices"

	"reporting-srv/internal/report/repository"
)

func (a *implArtifacts) Put(ctx context.Context, opts repository.PutArtifactOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items[opts.Key] = repository.Artifact{
		Key:         opts.Key,
		Filename:    opts.Filename,
		ContentType: opts.ContentType,
		Data:        slices.Clone(opts.Data),
	}
	return nil
}

func (a *implArtifacts) Get(ctx context.Context, key string) (*repository.Artifact, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	art, ok := a.items[key]
	if !ok {
		return nil, repository.ErrArtifactNotFound
	}
	art.Data = slices.Clone(art.Data)
	return &art, nil
}

func (a *implArtifacts) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.items, key)
	return nil
}
