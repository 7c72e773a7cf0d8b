package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"reporting-srv/config"
	pkgKafka "reporting-srv/pkg/kafka"
	"reporting-srv/pkg/log"
	pkgMinio "reporting-srv/pkg/minio"
	pkgRedis "reporting-srv/pkg/redis"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string
	config      *config.Config

	// Database Configuration
	postgresDB *sql.DB

	// Storage Configuration
	redisClient pkgRedis.IRedis
	minioClient pkgMinio.MinIO

	// Messaging Configuration
	kafkaProducer pkgKafka.IProducer

	// Monitoring Configuration
	registry *prometheus.Registry
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string
	Config      *config.Config

	// Database Configuration (required when any store is postgres)
	PostgresDB *sql.DB

	// Storage Configuration (required by the redis and minio backends)
	RedisClient pkgRedis.IRedis
	MinIOClient pkgMinio.MinIO

	// Messaging Configuration (optional)
	KafkaProducer pkgKafka.IProducer
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &HTTPServer{
		// Server Configuration
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		config:      cfg.Config,

		// Database Configuration
		postgresDB: cfg.PostgresDB,

		// Storage Configuration
		redisClient: cfg.RedisClient,
		minioClient: cfg.MinIOClient,

		// Messaging Configuration
		kafkaProducer: cfg.KafkaProducer,

		// Monitoring Configuration
		registry: registry,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate checks that every configured backend has its client.
func (srv *HTTPServer) validate() error {
	// Server Configuration
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}

	// Backends
	if srv.config.UsesPostgres() && srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.config.Report.SessionStore == config.BackendRedis && srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.config.Report.ArtifactStore == config.BackendMinIO && srv.minioClient == nil {
		return errors.New("minioClient is required")
	}

	// Messaging Configuration (optional)
	if srv.config.Kafka.Enabled && srv.kafkaProducer == nil {
		return errors.New("kafkaProducer is required when kafka is enabled")
	}

	return nil
}
