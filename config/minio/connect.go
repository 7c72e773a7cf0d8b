package minio

import (
	"context"
	"fmt"
	"sync"

	"reporting-srv/config"
	"reporting-srv/pkg/minio"
)

var (
	mu       sync.RWMutex
	instance minio.MinIO
)

// Connect creates the shared artifact-store client and makes sure the report bucket exists.
func Connect(ctx context.Context, cfg *config.MinIOConfig) (minio.MinIO, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := minio.NewMinIO(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	if err := client.EnsureBucket(ctx, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("failed to ensure MinIO bucket %s: %w", cfg.Bucket, err)
	}

	instance = client
	return instance, nil
}

// HealthCheck lists buckets through the shared client.
func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return fmt.Errorf("MinIO client not initialized")
	}
	return instance.HealthCheck(ctx)
}

// Disconnect drops the shared client.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}
