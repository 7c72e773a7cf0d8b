package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/config"
	configRedis "reporting-srv/config/redis"
	"reporting-srv/pkg/log"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Report: config.ReportConfig{
			Workers:        1,
			PollInterval:   10 * time.Millisecond,
			RequestStore:   config.BackendMemory,
			ArtifactStore:  config.BackendMemory,
			SessionStore:   config.BackendMemory,
			ObsSource:      config.BackendMemory,
			SessionTTL:     time.Minute,
			EmptyQuestions: "match_all",
			InlineBaseURL:  "/api/v1/reports/render",
			ArtifactPrefix: "reports",
		},
		Cookie:  config.CookieConfig{Name: "report_session", SameSite: "Lax"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func setupServer(t *testing.T, cfg *config.Config) *HTTPServer {
	t.Helper()
	srv, err := New(log.NewNop(), Config{
		Logger: log.NewNop(),
		Port:   8080,
		Mode:   gin.TestMode,
		Config: cfg,
	})
	require.NoError(t, err)
	return srv
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func do(t *testing.T, srv *HTTPServer, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, req)
	return w
}

func TestNew_Validate(t *testing.T) {
	tcs := map[string]func(cfg *config.Config) Config{
		"missing port": func(cfg *config.Config) Config {
			return Config{Mode: gin.TestMode, Config: cfg}
		},
		"postgres store without db": func(cfg *config.Config) Config {
			cfg.Report.RequestStore = config.BackendPostgres
			return Config{Mode: gin.TestMode, Port: 8080, Config: cfg}
		},
		"redis sessions without client": func(cfg *config.Config) Config {
			cfg.Report.SessionStore = config.BackendRedis
			return Config{Mode: gin.TestMode, Port: 8080, Config: cfg}
		},
		"minio artifacts without client": func(cfg *config.Config) Config {
			cfg.Report.ArtifactStore = config.BackendMinIO
			return Config{Mode: gin.TestMode, Port: 8080, Config: cfg}
		},
		"kafka enabled without producer": func(cfg *config.Config) Config {
			cfg.Kafka.Enabled = true
			return Config{Mode: gin.TestMode, Port: 8080, Config: cfg}
		},
	}

	for name, build := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := New(log.NewNop(), build(memoryConfig()))
			assert.Error(t, err)
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := setupServer(t, memoryConfig())
	_, err := srv.mapHandlers(context.Background())
	require.NoError(t, err)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reporting_requests_submitted_total")
	assert.Contains(t, w.Body.String(), "reporting_queue_depth")
}

func TestReadyCheck_UsesConnectorHealth(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := configRedis.Connect(ctx, config.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = configRedis.Disconnect() })

	cfg := memoryConfig()
	cfg.Report.SessionStore = config.BackendRedis
	srv, err := New(log.NewNop(), Config{
		Logger:      log.NewNop(),
		Port:        8080,
		Mode:        gin.TestMode,
		Config:      cfg,
		RedisClient: client,
	})
	require.NoError(t, err)
	_, err = srv.mapHandlers(ctx)
	require.NoError(t, err)

	w := do(t, srv, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"connected"`)

	mr.Close()
	w = do(t, srv, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis connection failed")
}

func TestReportFlow_MemoryBackends(t *testing.T) {
	srv := setupServer(t, memoryConfig())
	uc, err := srv.mapHandlers(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		uc.RunWorkers(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	w := do(t, srv, http.MethodPost, "/api/v1/reports/requests",
		`{"definition":{"type":"obs","name":"weights"},"renderer":"csv"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var submitted envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(submitted.Data, &out))
	require.NotEmpty(t, out.ID)

	base := "/api/v1/reports/requests/" + out.ID
	require.Eventually(t, func() bool {
		w := do(t, srv, http.MethodGet, base, "")
		if w.Code != http.StatusOK {
			return false
		}
		var env envelope
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			return false
		}
		var req struct {
			Status string `json:"status"`
		}
		return json.Unmarshal(env.Data, &req) == nil && req.Status == "COMPLETED"
	}, 5*time.Second, 10*time.Millisecond)

	w = do(t, srv, http.MethodGet, base+"/open", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodGet, base+"/download", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=")
	assert.Contains(t, w.Body.String(), "patientId")

	w = do(t, srv, http.MethodPost, base+"/delete", "")
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = do(t, srv, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
