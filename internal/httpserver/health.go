package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	configKafka "reporting-srv/config/kafka"
	configMinio "reporting-srv/config/minio"
	configPostgre "reporting-srv/config/postgre"
	configRedis "reporting-srv/config/redis"
	"reporting-srv/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Reporting API V1"
	HealthVersion = "1.0.0"
	ServiceName   = "reporting-srv"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck pings every backend the configuration selected.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "A backend is unreachable"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	backends := gin.H{}
	for _, check := range srv.readinessChecks() {
		if err := check.ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not ready",
				"message": check.name + " connection failed",
				"error":   err.Error(),
			})
			return
		}
		backends[check.name] = "connected"
	}

	response.OK(c, gin.H{
		"status":   "ready",
		"message":  HealthMessage,
		"version":  HealthVersion,
		"service":  ServiceName,
		"backends": backends,
	})
}

type readinessCheck struct {
	name string
	ping func(ctx context.Context) error
}

// readinessChecks lists the connector health checks of the backends this server was given.
func (srv *HTTPServer) readinessChecks() []readinessCheck {
	var checks []readinessCheck
	if srv.postgresDB != nil {
		checks = append(checks, readinessCheck{name: "database", ping: configPostgre.HealthCheck})
	}
	if srv.redisClient != nil {
		checks = append(checks, readinessCheck{name: "redis", ping: configRedis.HealthCheck})
	}
	if srv.minioClient != nil {
		checks = append(checks, readinessCheck{name: "minio", ping: configMinio.HealthCheck})
	}
	if srv.kafkaProducer != nil {
		checks = append(checks, readinessCheck{name: "kafka", ping: func(context.Context) error {
			return configKafka.ProducerHealthCheck()
		}})
	}
	return checks
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
