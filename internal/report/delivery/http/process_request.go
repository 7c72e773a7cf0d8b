package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/middleware"
	pkgErrors "reporting-srv/pkg/errors"
)

func (h *handler) processSubmitRequest(c *gin.Context) (submitReq, dataset.Definition, error) {
	var req submitReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processSubmitRequest: ShouldBindJSON failed: %v", err)
		return req, nil, errInvalidDefinition
	}

	def, err := dataset.UnmarshalDefinition(req.Definition)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processSubmitRequest: UnmarshalDefinition failed: %v", err)
		return req, nil, errInvalidDefinition
	}

	return req, def, nil
}

func (h *handler) processHistoryRequest(c *gin.Context) (historyReq, error) {
	var req historyReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(c.Request.Context(), "report.delivery.http.processHistoryRequest: ShouldBindQuery failed: %v", err)
		return req, pkgErrors.NewBadRequestError("Invalid history query")
	}
	return req, nil
}

func (h *handler) processIDRequest(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.l.Errorf(c.Request.Context(), "report.delivery.http.processIDRequest: invalid id %q: %v", c.Param("id"), err)
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

func (h *handler) processLabelRequest(c *gin.Context) (uuid.UUID, labelReq, error) {
	var req labelReq

	id, err := h.processIDRequest(c)
	if err != nil {
		return uuid.Nil, req, err
	}
	if err := c.ShouldBind(&req); err != nil {
		h.l.Errorf(c.Request.Context(), "report.delivery.http.processLabelRequest: ShouldBind failed: %v", err)
		return uuid.Nil, req, errInvalidLabel
	}
	return id, req, nil
}

func sessionID(c *gin.Context) string {
	return middleware.GetSessionID(c.Request.Context())
}
