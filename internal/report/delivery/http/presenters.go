package http

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
	"reporting-srv/internal/report"
	"reporting-srv/pkg/paginator"
	"reporting-srv/pkg/response"
)

type submitReq struct {
	Definition json.RawMessage `json:"definition" binding:"required"`
	Renderer   string          `json:"renderer" binding:"required"`
	Argument   string          `json:"argument"`
	Labels     []string        `json:"labels"`
	BaseCohort []int           `json:"base_cohort"`
	Parameters map[string]any  `json:"parameters"`
}

func (r submitReq) toInput(def dataset.Definition) report.SubmitInput {
	return report.SubmitInput{
		Definition: def,
		Mode:       model.RenderingMode{Renderer: r.Renderer, Argument: r.Argument},
		Labels:     r.Labels,
		BaseCohort: r.BaseCohort,
		Parameters: r.Parameters,
	}
}

type historyReq struct {
	Archived bool   `form:"archived"`
	Message  string `form:"message"`
	// Page selects a page of the archive; the live history is never paged.
	paginator.PaginateQuery
}

func (r historyReq) toInput() report.HistoryInput {
	return report.HistoryInput{Archived: r.Archived}
}

type labelReq struct {
	Label string `form:"label" json:"label" binding:"required"`
}

type submitResp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type failureResp struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type displayResp struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Inline bool   `json:"inline"`
}

type requestResp struct {
	ID                  string             `json:"id"`
	Definition          string             `json:"definition"`
	Renderer            string             `json:"renderer"`
	Argument            string             `json:"argument,omitempty"`
	Labels              []string           `json:"labels"`
	Status              string             `json:"status"`
	Archived            bool               `json:"archived"`
	Failure             *failureResp       `json:"failure,omitempty"`
	RequestedAt         response.DateTime  `json:"requested_at"`
	EvaluateStartedAt   *response.DateTime `json:"evaluate_started_at,omitempty"`
	EvaluateCompletedAt *response.DateTime `json:"evaluate_completed_at,omitempty"`
}

type historyEntryResp struct {
	requestResp
	Display *displayResp `json:"display,omitempty"`
}

type historyResp struct {
	Message   string             `json:"message,omitempty"`
	Queued    []historyEntryResp `json:"queued,omitempty"`
	Completed []historyEntryResp `json:"completed,omitempty"`
	Archived  []historyEntryResp `json:"archived,omitempty"`

	Paginator *paginator.PaginatorResponse `json:"paginator,omitempty"`
}

type summaryResp struct {
	RequestID   string            `json:"request_id"`
	Filename    string            `json:"filename"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Rows        int               `json:"rows"`
	CreatedAt   response.DateTime `json:"created_at"`
	DownloadURL string            `json:"download_url"`
}

func (h *handler) newSubmitResp(o report.SubmitOutput) submitResp {
	return submitResp{
		ID:     o.ID.String(),
		Status: string(o.Status),
	}
}

func (h *handler) newRequestResp(req *model.ReportRequest) requestResp {
	resp := requestResp{
		ID:          req.ID.String(),
		Renderer:    req.Mode.Renderer,
		Argument:    req.Mode.Argument,
		Labels:      req.Labels,
		Status:      string(req.Status),
		Archived:    req.Archived,
		RequestedAt: response.DateTime(req.RequestedAt),
	}
	if req.Definition != nil {
		resp.Definition = req.Definition.Name()
	}
	if resp.Labels == nil {
		resp.Labels = []string{}
	}
	if req.Failure != nil {
		resp.Failure = &failureResp{Kind: string(req.Failure.Kind), Message: req.Failure.Message}
	}
	resp.EvaluateStartedAt = dateTimePtr(req.EvaluateStartedAt)
	resp.EvaluateCompletedAt = dateTimePtr(req.EvaluateCompletedAt)
	return resp
}

func (h *handler) newHistoryResp(o report.HistoryOutput, req historyReq) historyResp {
	resp := historyResp{
		Message:   req.Message,
		Queued:    h.newHistoryEntries(o.Queued),
		Completed: h.newHistoryEntries(o.Completed),
	}
	if req.Archived {
		page, p := paginator.Slice(o.Archived, req.PaginateQuery)
		pr := p.ToResponse()
		resp.Archived = h.newHistoryEntries(page)
		resp.Paginator = &pr
	}
	return resp
}

func (h *handler) newHistoryEntries(entries []report.HistoryEntry) []historyEntryResp {
	out := make([]historyEntryResp, 0, len(entries))
	for _, e := range entries {
		item := historyEntryResp{requestResp: h.newRequestResp(e.Request)}
		if e.Display != nil {
			item.Display = &displayResp{Code: e.Display.Code, Label: e.Display.Label, Inline: e.Display.Inline}
		}
		out = append(out, item)
	}
	return out
}

func (h *handler) newSummaryResp(s *report.ReportSummary) summaryResp {
	return summaryResp{
		RequestID:   s.RequestID.String(),
		Filename:    s.Filename,
		ContentType: s.ContentType,
		Size:        s.Size,
		Rows:        s.Rows,
		CreatedAt:   response.DateTime(s.CreatedAt),
		DownloadURL: downloadURL(s.RequestID),
	}
}

func downloadURL(id uuid.UUID) string {
	return "/api/v1/reports/requests/" + id.String() + "/download"
}

func dateTimePtr(t *time.Time) *response.DateTime {
	if t == nil {
		return nil
	}
	d := response.DateTime(*t)
	return &d
}
