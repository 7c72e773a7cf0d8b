package http

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"reporting-srv/internal/report"
	"reporting-srv/pkg/response"
)

// @Summary Submit a report request
// @Description Queue a data set definition for evaluation and rendering
// @Tags Report
// @Accept json
// @Produce json
// @Param body body submitReq true "Report request"
// @Success 200 {object} submitResp
// @Failure 400 {object} response.Resp
// @Router /api/v1/reports/requests [post]
func (h *handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	req, def, err := h.processSubmitRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.Submit(ctx, req.toInput(def))
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Submit: usecase Submit failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSubmitResp(o))
}

// @Summary Report history
// @Description Queued and completed requests, newest first. archived=true lists the archive instead
// @Tags Report
// @Produce json
// @Param archived query bool false "Archived view"
// @Param message query string false "Flash message"
// @Param page query int false "Archive page"
// @Param limit query int false "Archive page size"
// @Success 200 {object} historyResp
// @Router /api/v1/reports/history [get]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.History(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.History: usecase History failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newHistoryResp(o, req))
}

func (h *handler) GetRequest(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	req, err := h.uc.GetReportRequest(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetRequest: usecase GetReportRequest failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newRequestResp(req))
}

func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.DeleteFromHistory(ctx, id); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Delete: usecase DeleteFromHistory failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}

	h.redirectToHistory(c, "")
}

// Archive archives the request if it exists; unknown ids just go back to the history.
func (h *handler) Archive(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.Archive(ctx, id); err != nil && !errors.Is(err, report.ErrReportRequestNotFound) {
		h.l.Errorf(ctx, "report.delivery.http.Archive: usecase Archive failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}

	h.redirectToHistory(c, "")
}

func (h *handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.Cancel(ctx, id); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Cancel: usecase Cancel failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}

	h.redirectToHistory(c, "")
}

func (h *handler) AddLabel(c *gin.Context) {
	ctx := c.Request.Context()

	id, req, err := h.processLabelRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.AddLabel(ctx, id, req.Label); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.AddLabel: usecase AddLabel failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}
	if err := h.uc.SaveReportRequest(ctx, id); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.AddLabel: usecase SaveReportRequest failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}

	h.redirectToHistory(c, "")
}

func (h *handler) RemoveLabel(c *gin.Context) {
	ctx := c.Request.Context()

	id, req, err := h.processLabelRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.RemoveLabel(ctx, id, req.Label); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.RemoveLabel: usecase RemoveLabel failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}
	if err := h.uc.SaveReportRequest(ctx, id); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.RemoveLabel: usecase SaveReportRequest failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}

	h.redirectToHistory(c, "")
}

// @Summary Open a finished report
// @Description Inline reports redirect to the live rendering; file reports return a summary.
// @Description Failures redirect back to the history with a message
// @Tags Report
// @Produce json
// @Param id path string true "Report request ID"
// @Success 200 {object} summaryResp
// @Success 303
// @Router /api/v1/reports/requests/{id}/open [get]
func (h *handler) Open(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.Open(ctx, report.OpenInput{ID: id, SessionID: sessionID(c)})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Open: usecase Open failed: %v", err)
		h.redirectToHistory(c, flashMessage(err))
		return
	}

	if o.Inline {
		c.Redirect(http.StatusSeeOther, o.RedirectURL)
		return
	}

	response.OK(c, h.newSummaryResp(o.Summary))
}

// @Summary Download a report file
// @Tags Report
// @Produce octet-stream
// @Param id path string true "Report request ID"
// @Success 200 {file} file
// @Failure 409 {object} response.Resp
// @Router /api/v1/reports/requests/{id}/download [get]
func (h *handler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.Download(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Download: usecase Download failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	c.Header("Content-Disposition", contentDisposition(o.Filename))
	c.Header("Cache-Control", "no-cache")
	c.Header("Pragma", "no-cache")
	c.Data(http.StatusOK, o.ContentType, o.Data)
}

// Render writes the inline report stashed in the caller's session.
func (h *handler) Render(c *gin.Context) {
	ctx := c.Request.Context()

	o, err := h.uc.RenderInline(ctx, report.RenderInlineInput{
		SessionID: sessionID(c),
		Renderer:  c.Param("renderer"),
	})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Render: usecase RenderInline failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, o.ContentType, o.Body)
}

func (h *handler) redirectToHistory(c *gin.Context, message string) {
	target := historyPath
	if message != "" {
		target += "?" + url.Values{"message": {message}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

// contentDisposition marks the response as a download. Spaces in the name become underscores;
// quoting and non-ASCII encoding follow RFC 2183 and RFC 2231.
func contentDisposition(filename string) string {
	v := mime.FormatMediaType("attachment", map[string]string{
		"filename": strings.ReplaceAll(filename, " ", "_"),
	})
	if v == "" {
		return "attachment"
	}
	return v
}
