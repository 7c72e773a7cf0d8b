package redis

import (
	"context"
	"fmt"
	"sync"

	"reporting-srv/config"
	"reporting-srv/pkg/redis"
)

var (
	mu       sync.RWMutex
	instance redis.IRedis
)

// Connect opens the shared session-store client, or returns it when already open.
func Connect(ctx context.Context, cfg config.RedisConfig) (redis.IRedis, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := redis.NewRedis(redis.RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	instance = client
	return instance, nil
}

// HealthCheck pings the shared client.
func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	if err := instance.Ping(ctx); err != nil {
		return fmt.Errorf("Redis health check failed: %w", err)
	}
	return nil
}

// Disconnect closes the shared client.
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
