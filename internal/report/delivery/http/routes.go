package http

import (
	"reporting-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// historyPath is where form actions redirect to.
const historyPath = "/api/v1/reports/history"

// RegisterRoutes mounts the report endpoints under r (expected: /api/v1).
func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	reports := r.Group("/reports", mw.Session())
	{
		reports.POST("/requests", h.Submit)
		reports.GET("/history", h.History)
		reports.GET("/requests/:id", h.GetRequest)
		reports.POST("/requests/:id/delete", h.Delete)
		reports.POST("/requests/:id/archive", h.Archive)
		reports.POST("/requests/:id/cancel", h.Cancel)
		reports.POST("/requests/:id/labels", h.AddLabel)
		reports.POST("/requests/:id/labels/delete", h.RemoveLabel)
		reports.GET("/requests/:id/open", h.Open)
		reports.GET("/requests/:id/download", h.Download)
		reports.GET("/render/:renderer", h.Render)
	}
}
