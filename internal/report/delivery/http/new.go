package http

import (
	"reporting-srv/internal/middleware"
	"reporting-srv/internal/report"
	"reporting-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l  log.Logger
	uc report.UseCase
}

func New(l log.Logger, uc report.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
