package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"reporting-srv/config"
)

// Pool settings shared by the request store and the observation source.
const (
	connectTimeout  = 5 * time.Second
	maxIdleConns    = 10
	maxOpenConns    = 50
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute

	defaultSSLMode = "disable"
	defaultSchema  = "reporting"
)

var (
	mu       sync.RWMutex
	instance *sql.DB
)

// DSN builds the lib/pq connection string. The schema becomes the search path, so the
// repositories can use unqualified table names.
func DSN(cfg config.PostgresConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}
	schema := cfg.Schema
	if schema == "" {
		schema = defaultSchema
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode, schema)
}

// Connect opens the shared pool, or returns it when already open.
// A failed attempt leaves nothing behind and may be retried.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}
	db.SetMaxIdleConns(maxIdleConns)
	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	instance = db
	return instance, nil
}

// HealthCheck pings the shared pool.
func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return fmt.Errorf("PostgreSQL client not initialized")
	}
	if err := instance.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL health check failed: %w", err)
	}
	return nil
}

// Disconnect closes the shared pool. The next Connect opens a new one.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	if err != nil {
		return fmt.Errorf("failed to close PostgreSQL connection: %w", err)
	}
	return nil
}
