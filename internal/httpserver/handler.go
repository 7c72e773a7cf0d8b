package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reporting-srv/internal/middleware"
	"reporting-srv/internal/report"
)

// mapHandlers wires the report domain and returns its use case so Run can start the workers.
func (srv *HTTPServer) mapHandlers(ctx context.Context) (report.UseCase, error) {
	mw := middleware.New(srv.l, srv.config.Cookie)

	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	api := srv.gin.Group("/api/v1")

	uc, err := srv.setupReportDomain(ctx, api, mw)
	if err != nil {
		return nil, fmt.Errorf("failed to setup report domain: %w", err)
	}

	return uc, nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Logger())
	srv.gin.Use(middleware.Recovery(srv.l))
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.config.Metrics.Enabled {
		path := srv.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		srv.gin.GET(path, gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})))
	}
}
