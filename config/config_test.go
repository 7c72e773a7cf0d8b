package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		HTTPServer: HTTPServerConfig{Port: 8080},
		Postgres:   PostgresConfig{Host: "localhost", Port: 5432, User: "postgres", DBName: "reporting"},
		Cookie:     CookieConfig{Name: "report_session"},
		Report: ReportConfig{
			Workers:        1,
			PollInterval:   time.Second,
			RequestStore:   BackendMemory,
			ArtifactStore:  BackendMemory,
			SessionStore:   BackendMemory,
			ObsSource:      BackendMemory,
			EmptyQuestions: "match_all",
		},
	}
}

func TestValidate(t *testing.T) {
	tcs := map[string]struct {
		mutate  func(c *Config)
		wantErr string
	}{
		"memory only": {mutate: func(c *Config) {}},
		"no workers": {
			mutate:  func(c *Config) { c.Report.Workers = 0 },
			wantErr: "report.workers",
		},
		"unknown request store": {
			mutate:  func(c *Config) { c.Report.RequestStore = "sqlite" },
			wantErr: "report.request_store",
		},
		"no cookie name": {
			mutate:  func(c *Config) { c.Cookie.Name = "" },
			wantErr: "cookie.name",
		},
		"bad empty questions policy": {
			mutate:  func(c *Config) { c.Report.EmptyQuestions = "ignore" },
			wantErr: "report.empty_questions",
		},
		"postgres without host": {
			mutate: func(c *Config) {
				c.Report.RequestStore = BackendPostgres
				c.Postgres.Host = ""
			},
			wantErr: "postgres.host",
		},
		"minio without bucket": {
			mutate:  func(c *Config) { c.Report.ArtifactStore = BackendMinIO },
			wantErr: "minio.endpoint",
		},
		"kafka without brokers": {
			mutate: func(c *Config) {
				c.Kafka.Enabled = true
				c.Kafka.LifecycleTopic = "t"
			},
			wantErr: "kafka.brokers",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := validate(c)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REPORT_REQUEST_STORE", BackendMemory)
	t.Setenv("REPORT_WORKERS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Report.RequestStore)
	assert.Equal(t, 3, cfg.Report.Workers)
	assert.Equal(t, 5*time.Second, cfg.Report.PollInterval)
	assert.Equal(t, 5, cfg.Report.FinishAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Report.FinishBackoff)
	assert.Equal(t, "reporting.report.lifecycle", cfg.Kafka.LifecycleTopic)
}
