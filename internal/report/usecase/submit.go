package usecase

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report"
)

// Submit persists a REQUESTED request and wakes the workers. Evaluation happens later.
func (uc *implUseCase) Submit(ctx context.Context, input report.SubmitInput) (report.SubmitOutput, error) {
	if input.Definition == nil {
		return report.SubmitOutput{}, report.ErrDefinitionRequired
	}
	if _, err := uc.renderers.Get(input.Mode.Renderer); err != nil {
		return report.SubmitOutput{}, fmt.Errorf("%w: %q", report.ErrUnknownRenderer, input.Mode.Renderer)
	}

	req := &model.ReportRequest{
		ID:          uuid.New(),
		Definition:  input.Definition,
		BaseCohort:  slices.Clone(input.BaseCohort),
		Parameters:  maps.Clone(input.Parameters),
		Mode:        input.Mode,
		Labels:      model.NormalizeLabels(input.Labels),
		RequestedAt: time.Now(),
	}

	stored, err := uc.requests.Create(ctx, req)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Submit: Failed to create request: %v", err)
		return report.SubmitOutput{}, err
	}

	uc.notify()
	uc.metrics.observeSubmitted()
	uc.refreshQueueDepth(ctx)
	uc.publish(ctx, report.EventSubmitted, stored)

	uc.l.Infof(ctx, "report.usecase.Submit: Queued request %s (definition=%s, renderer=%s)",
		stored.ID, stored.Definition.Name(), stored.Mode.Renderer)

	return report.SubmitOutput{
		ID:     stored.ID,
		Status: stored.Status,
	}, nil
}

// notify wakes one idle worker without blocking.
func (uc *implUseCase) notify() {
	select {
	case uc.wake <- struct{}{}:
	default:
	}
}

func (uc *implUseCase) refreshQueueDepth(ctx context.Context) {
	if uc.metrics == nil {
		return
	}
	n, err := uc.requests.CountQueued(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.refreshQueueDepth: Failed to count queued requests: %v", err)
		return
	}
	uc.metrics.setQueueDepth(n)
}

// publish sends a lifecycle event. Failures are logged and otherwise ignored.
func (uc *implUseCase) publish(ctx context.Context, eventType string, req *model.ReportRequest) {
	if uc.publisher == nil || req == nil {
		return
	}
	event := report.LifecycleEvent{
		Type:       eventType,
		RequestID:  req.ID,
		Status:     req.Status,
		Renderer:   req.Mode.Renderer,
		Failure:    req.Failure,
		OccurredAt: time.Now(),
	}
	if err := uc.publisher.PublishLifecycle(ctx, event); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publish: Failed to publish %s for %s: %v", eventType, req.ID, err)
	}
}
