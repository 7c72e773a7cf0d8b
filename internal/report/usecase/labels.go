package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
)

// AddLabel stages label on the request. Adding an existing label changes nothing.
func (uc *implUseCase) AddLabel(ctx context.Context, id uuid.UUID, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return report.ErrInvalidLabel
	}
	return uc.stage(ctx, id, func(labels []string) []string {
		return append(labels, label)
	})
}

// RemoveLabel stages the removal of label. Removing an absent label changes nothing.
func (uc *implUseCase) RemoveLabel(ctx context.Context, id uuid.UUID, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return report.ErrInvalidLabel
	}
	return uc.stage(ctx, id, func(labels []string) []string {
		return slices.DeleteFunc(labels, func(l string) bool { return l == label })
	})
}

// SaveReportRequest persists the staged labels of the request.
func (uc *implUseCase) SaveReportRequest(ctx context.Context, id uuid.UUID) error {
	uc.mu.Lock()
	labels, ok := uc.staged[id]
	uc.mu.Unlock()

	if !ok {
		_, err := uc.getRequest(ctx, id)
		return err
	}

	if err := uc.requests.UpdateLabels(ctx, id, labels); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			uc.dropStaged(id)
			return report.ErrReportRequestNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.SaveReportRequest: Failed to save labels of %s: %v", id, err)
		return err
	}

	uc.mu.Lock()
	if slices.Equal(uc.staged[id], labels) {
		delete(uc.staged, id)
	}
	uc.mu.Unlock()
	return nil
}

func (uc *implUseCase) stage(ctx context.Context, id uuid.UUID, edit func([]string) []string) error {
	req, err := uc.getRequest(ctx, id)
	if err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, ok := uc.staged[id]
	if !ok {
		current = req.Labels
	}
	uc.staged[id] = model.NormalizeLabels(edit(slices.Clone(current)))
	return nil
}

func (uc *implUseCase) dropStaged(id uuid.UUID) {
	uc.mu.Lock()
	delete(uc.staged, id)
	uc.mu.Unlock()
}

// overlay replaces the stored labels of req with staged ones, if any.
func (uc *implUseCase) overlay(req *model.ReportRequest) *model.ReportRequest {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if labels, ok := uc.staged[req.ID]; ok {
		req.Labels = slices.Clone(labels)
	}
	return req
}

func (uc *implUseCase) overlayAll(reqs []*model.ReportRequest) []*model.ReportRequest {
	for _, req := range reqs {
		uc.overlay(req)
	}
	return reqs
}
