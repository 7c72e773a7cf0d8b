package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable per store.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMinIO    = "minio"
	BackendRedis    = "redis"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// PostgreSQL - Report requests, reports, observations
	Postgres PostgresConfig

	// Redis - Inline rendering sessions
	Redis RedisConfig

	// MinIO - Rendered artifacts
	MinIO MinIOConfig

	// Kafka - Lifecycle events, remote submissions
	Kafka KafkaConfig

	// Reporting - Queue, workers, stores
	Report ReportConfig

	// Inline rendering session cookie
	Cookie CookieConfig

	// Monitoring
	Metrics MetricsConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// KafkaConfig is the configuration for Kafka
type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	LifecycleTopic string
	RequestsTopic  string
	GroupID        string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MinIOConfig is the configuration for MinIO
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for Postgres
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Schema   string
}

// ReportConfig configures the report queue and its stores.
type ReportConfig struct {
	Workers      int
	PollInterval time.Duration

	// FinishAttempts and FinishBackoff bound the retries of a request's final status update.
	FinishAttempts int
	FinishBackoff  time.Duration

	// Backends: memory | postgres for requests, memory | minio for artifacts,
	// memory | redis for sessions, memory | postgres for observations.
	RequestStore  string
	ArtifactStore string
	SessionStore  string
	ObsSource     string

	// SeedFile is a YAML observation file loaded when ObsSource is memory.
	SeedFile       string
	SessionTTL     time.Duration
	EmptyQuestions string
	InlineBaseURL  string
	ArtifactPrefix string
}

// CookieConfig configures the session cookie that ties inline renderings to a browser.
type CookieConfig struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite string
	MaxAge   int
}

// MetricsConfig is the configuration for the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	viper.SetConfigName("reporting-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/reporting/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// PostgreSQL
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.Schema = viper.GetString("postgres.schema")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// MinIO
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")

	// Kafka
	cfg.Kafka.Enabled = viper.GetBool("kafka.enabled")
	cfg.Kafka.Brokers = viper.GetStringSlice("kafka.brokers")
	cfg.Kafka.LifecycleTopic = viper.GetString("kafka.lifecycle_topic")
	cfg.Kafka.RequestsTopic = viper.GetString("kafka.requests_topic")
	cfg.Kafka.GroupID = viper.GetString("kafka.group_id")

	// Report
	cfg.Report.Workers = viper.GetInt("report.workers")
	cfg.Report.PollInterval = viper.GetDuration("report.poll_interval")
	cfg.Report.FinishAttempts = viper.GetInt("report.finish_attempts")
	cfg.Report.FinishBackoff = viper.GetDuration("report.finish_backoff")
	cfg.Report.RequestStore = viper.GetString("report.request_store")
	cfg.Report.ArtifactStore = viper.GetString("report.artifact_store")
	cfg.Report.SessionStore = viper.GetString("report.session_store")
	cfg.Report.ObsSource = viper.GetString("report.obs_source")
	cfg.Report.SeedFile = viper.GetString("report.seed_file")
	cfg.Report.SessionTTL = viper.GetDuration("report.session_ttl")
	cfg.Report.EmptyQuestions = viper.GetString("report.empty_questions")
	cfg.Report.InlineBaseURL = viper.GetString("report.inline_base_url")
	cfg.Report.ArtifactPrefix = viper.GetString("report.artifact_prefix")

	// Cookie
	cfg.Cookie.Name = viper.GetString("cookie.name")
	cfg.Cookie.Domain = viper.GetString("cookie.domain")
	cfg.Cookie.Secure = viper.GetBool("cookie.secure")
	cfg.Cookie.SameSite = viper.GetString("cookie.samesite")
	cfg.Cookie.MaxAge = viper.GetInt("cookie.max_age")

	// Metrics
	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")
	cfg.Metrics.Path = viper.GetString("metrics.path")

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// HTTP Server
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")

	// Logger
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// 1. PostgreSQL
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "postgres")
	viper.SetDefault("postgres.sslmode", "prefer")
	viper.SetDefault("postgres.schema", "reporting")

	// 2. Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// 3. MinIO
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "minioadmin")
	viper.SetDefault("minio.secret_key", "minioadmin")
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("minio.bucket", "report-artifacts")

	// 4. Kafka
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.lifecycle_topic", "reporting.report.lifecycle")
	viper.SetDefault("kafka.requests_topic", "reporting.report.requests")
	viper.SetDefault("kafka.group_id", "reporting-consumer-requests")

	// 5. Report
	viper.SetDefault("report.workers", 1)
	viper.SetDefault("report.poll_interval", 5*time.Second)
	viper.SetDefault("report.finish_attempts", 5)
	viper.SetDefault("report.finish_backoff", 200*time.Millisecond)
	viper.SetDefault("report.request_store", BackendPostgres)
	viper.SetDefault("report.artifact_store", BackendMinIO)
	viper.SetDefault("report.session_store", BackendRedis)
	viper.SetDefault("report.obs_source", BackendPostgres)
	viper.SetDefault("report.seed_file", "")
	viper.SetDefault("report.session_ttl", 30*time.Minute)
	viper.SetDefault("report.empty_questions", "match_all")
	viper.SetDefault("report.inline_base_url", "/api/v1/reports/render")
	viper.SetDefault("report.artifact_prefix", "reports")

	// 6. Cookie
	viper.SetDefault("cookie.name", "report_session")
	viper.SetDefault("cookie.domain", "")
	viper.SetDefault("cookie.secure", false)
	viper.SetDefault("cookie.samesite", "Lax")
	viper.SetDefault("cookie.max_age", 28800) // 8 hours

	// 7. Metrics
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
}

func validate(cfg *Config) error {
	if cfg.HTTPServer.Port <= 0 {
		return fmt.Errorf("http_server.port is required")
	}

	r := cfg.Report
	if r.Workers <= 0 {
		return fmt.Errorf("report.workers must be greater than 0")
	}
	if r.PollInterval <= 0 {
		return fmt.Errorf("report.poll_interval must be greater than 0")
	}
	if err := oneOf("report.request_store", r.RequestStore, BackendMemory, BackendPostgres); err != nil {
		return err
	}
	if err := oneOf("report.artifact_store", r.ArtifactStore, BackendMemory, BackendMinIO); err != nil {
		return err
	}
	if err := oneOf("report.session_store", r.SessionStore, BackendMemory, BackendRedis); err != nil {
		return err
	}
	if err := oneOf("report.obs_source", r.ObsSource, BackendMemory, BackendPostgres); err != nil {
		return err
	}
	if err := oneOf("report.empty_questions", r.EmptyQuestions, "match_all", "match_none"); err != nil {
		return err
	}

	if cfg.Cookie.Name == "" {
		return fmt.Errorf("cookie.name is required")
	}

	if cfg.UsesPostgres() {
		if cfg.Postgres.Host == "" {
			return fmt.Errorf("postgres.host is required")
		}
		if cfg.Postgres.Port == 0 {
			return fmt.Errorf("postgres.port is required")
		}
		if cfg.Postgres.DBName == "" {
			return fmt.Errorf("postgres.dbname is required")
		}
		if cfg.Postgres.User == "" {
			return fmt.Errorf("postgres.user is required")
		}
	}

	if r.SessionStore == BackendRedis {
		if cfg.Redis.Host == "" {
			return fmt.Errorf("redis.host is required")
		}
		if cfg.Redis.Port == 0 {
			return fmt.Errorf("redis.port is required")
		}
	}

	if r.ArtifactStore == BackendMinIO {
		if cfg.MinIO.Endpoint == "" {
			return fmt.Errorf("minio.endpoint is required")
		}
		if cfg.MinIO.AccessKey == "" {
			return fmt.Errorf("minio.access_key is required")
		}
		if cfg.MinIO.SecretKey == "" {
			return fmt.Errorf("minio.secret_key is required")
		}
		if cfg.MinIO.Bucket == "" {
			return fmt.Errorf("minio.bucket is required")
		}
	}

	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required")
		}
		if cfg.Kafka.LifecycleTopic == "" {
			return fmt.Errorf("kafka.lifecycle_topic is required")
		}
	}

	return nil
}

// UsesPostgres reports whether any store is backed by PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.Report.RequestStore == BackendPostgres || c.Report.ObsSource == BackendPostgres
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value)
}
