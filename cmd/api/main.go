package main

import (
	"context"
	"database/sql"
	"fmt"

	"reporting-srv/config"
	configKafka "reporting-srv/config/kafka"
	configMinio "reporting-srv/config/minio"
	configPostgre "reporting-srv/config/postgre"
	configRedis "reporting-srv/config/redis"
	"reporting-srv/internal/httpserver"
	pkgKafka "reporting-srv/pkg/kafka"
	"reporting-srv/pkg/log"
	pkgMinio "reporting-srv/pkg/minio"
	pkgRedis "reporting-srv/pkg/redis"
)

// @title       Reporting Service API
// @description Queued clinical data set reports: submit, track, open and download.
// @version     1
// @BasePath    /api/v1
func main() {
	// 1. Load configuration
	// Reads config from YAML file and environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// 3. Initialize PostgreSQL (request store, observation source)
	var postgresDB *sql.DB
	if cfg.UsesPostgres() {
		postgresDB, err = configPostgre.Connect(ctx, cfg.Postgres)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
			return
		}
		defer configPostgre.Disconnect()
		logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	}

	// 4. Initialize Redis (inline rendering sessions)
	var redisClient pkgRedis.IRedis
	if cfg.Report.SessionStore == config.BackendRedis {
		redisClient, err = configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
			return
		}
		defer configRedis.Disconnect()
		logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
	}

	// 5. Initialize MinIO (rendered artifacts)
	var minioClient pkgMinio.MinIO
	if cfg.Report.ArtifactStore == config.BackendMinIO {
		minioClient, err = configMinio.Connect(ctx, &cfg.MinIO)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
			return
		}
		defer configMinio.Disconnect()
		logger.Infof(ctx, "MinIO connected successfully to %s (bucket %s)", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
	}

	// 6. Initialize Kafka producer (lifecycle events, optional)
	var kafkaProducer pkgKafka.IProducer
	if cfg.Kafka.Enabled {
		kafkaProducer, err = configKafka.ConnectProducer(cfg.Kafka)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
			return
		}
		defer configKafka.DisconnectProducer()
		logger.Infof(ctx, "Kafka producer publishing to %s", cfg.Kafka.LifecycleTopic)
	}

	// 7. Initialize HTTP server
	// Main application server that handles all HTTP requests and runs the report workers
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Config:      cfg,

		// Database Configuration
		PostgresDB: postgresDB,

		// Storage Configuration
		RedisClient: redisClient,
		MinIOClient: minioClient,

		// Messaging Configuration
		KafkaProducer: kafkaProducer,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}
}
