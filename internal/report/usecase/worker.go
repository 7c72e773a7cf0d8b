package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/model"
	"reporting-srv/internal/render"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
)

const msgInterrupted = "interrupted: the service stopped while the request was processing"

// RunWorkers fails requests left PROCESSING by an earlier run, then starts the configured
// number of workers and blocks until ctx is done and every in-flight request has finished.
func (uc *implUseCase) RunWorkers(ctx context.Context) {
	uc.recoverInterrupted(context.WithoutCancel(ctx))

	uc.l.Infof(ctx, "report.usecase.RunWorkers: Starting %d worker(s)", uc.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < uc.config.Workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			uc.workerLoop(ctx, n)
		}(i)
	}
	wg.Wait()

	uc.l.Infof(context.Background(), "report.usecase.RunWorkers: All workers stopped")
}

// recoverInterrupted moves PROCESSING requests to FAILED. It runs before any worker of this
// process has claimed a request, so every PROCESSING row belongs to a run that died.
func (uc *implUseCase) recoverInterrupted(ctx context.Context) {
	reqs, err := uc.requests.ListProcessing(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.recoverInterrupted: ListProcessing failed: %v", err)
		return
	}

	for _, req := range reqs {
		failedAt := time.Now()
		failure := &model.Failure{Kind: model.FailureKindInternal, Message: msgInterrupted}
		ok, err := uc.requests.TransitionStatus(ctx, repository.TransitionOptions{
			ID:      req.ID,
			From:    model.ReportStatusProcessing,
			To:      model.ReportStatusFailed,
			At:      failedAt,
			Failure: failure,
		})
		if err != nil {
			uc.l.Errorf(ctx, "report.usecase.recoverInterrupted: Failed to fail request %s: %v", req.ID, err)
			continue
		}
		if !ok {
			continue
		}

		req.Status = model.ReportStatusFailed
		req.Failure = failure
		req.EvaluateCompletedAt = &failedAt
		uc.l.Warnf(ctx, "report.usecase.recoverInterrupted: Request %s was interrupted, marked FAILED", req.ID)
		uc.publish(ctx, report.EventFailed, req)
	}
}

func (uc *implUseCase) workerLoop(ctx context.Context, n int) {
	ticker := time.NewTicker(uc.config.PollInterval)
	defer ticker.Stop()

	for {
		uc.drain(ctx, n)

		select {
		case <-ctx.Done():
			return
		case <-uc.wake:
		case <-ticker.C:
		}
	}
}

// drain processes requests until the queue is empty or ctx is done.
func (uc *implUseCase) drain(ctx context.Context, n int) {
	for ctx.Err() == nil {
		processed, err := uc.processNext(ctx)
		if err != nil {
			uc.l.Errorf(ctx, "report.usecase.drain: Worker %d failed to dequeue: %v", n, err)
			return
		}
		if !processed {
			return
		}
	}
}

// processNext claims the oldest REQUESTED request and runs it to a terminal status.
// It returns false when nothing was queued.
func (uc *implUseCase) processNext(ctx context.Context) (bool, error) {
	for {
		req, err := uc.requests.NextRequested(ctx)
		if err != nil {
			return false, err
		}
		if req == nil {
			return false, nil
		}

		startedAt := time.Now()
		claimed, err := uc.requests.TransitionStatus(ctx, repository.TransitionOptions{
			ID:   req.ID,
			From: model.ReportStatusRequested,
			To:   model.ReportStatusProcessing,
			At:   startedAt,
		})
		if err != nil {
			return false, err
		}
		if !claimed {
			// Another worker or a cancellation got there first.
			continue
		}

		req.Status = model.ReportStatusProcessing
		req.EvaluateStartedAt = &startedAt

		// Let an idle worker look at the rest of the queue.
		uc.notify()
		uc.refreshQueueDepth(ctx)
		uc.publish(ctx, report.EventStarted, req)

		// A claimed request always runs to completion, even during shutdown.
		uc.process(context.WithoutCancel(ctx), req)
		return true, nil
	}
}

func (uc *implUseCase) process(ctx context.Context, req *model.ReportRequest) {
	failure := uc.execute(ctx, req)

	finishedAt := time.Now()
	opts := repository.TransitionOptions{
		ID:   req.ID,
		From: model.ReportStatusProcessing,
		To:   model.ReportStatusCompleted,
		At:   finishedAt,
	}
	if failure != nil {
		opts.To = model.ReportStatusFailed
		opts.Failure = failure
		uc.l.Warnf(ctx, "report.usecase.process: Request %s failed (%s): %s", req.ID, failure.Kind, failure.Message)
	}

	ok, err := uc.finish(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.process: Failed to finish request %s, left for recovery on restart: %v", req.ID, err)
		return
	}
	if !ok {
		uc.l.Warnf(ctx, "report.usecase.process: Request %s left PROCESSING unexpectedly", req.ID)
		return
	}

	req.Status = opts.To
	req.Failure = failure
	req.EvaluateCompletedAt = &finishedAt

	uc.metrics.observeFinished(req.Status, finishedAt.Sub(*req.EvaluateStartedAt))
	if failure != nil {
		uc.publish(ctx, report.EventFailed, req)
		return
	}
	uc.publish(ctx, report.EventCompleted, req)
	uc.l.Infof(ctx, "report.usecase.process: Request %s completed", req.ID)
}

// finish applies the terminal transition, retrying store errors with exponential backoff.
func (uc *implUseCase) finish(ctx context.Context, opts repository.TransitionOptions) (bool, error) {
	backoff := uc.config.FinishBackoff
	for attempt := 1; ; attempt++ {
		ok, err := uc.requests.TransitionStatus(ctx, opts)
		if err == nil {
			return ok, nil
		}
		if errors.Is(err, repository.ErrRequestNotFound) || attempt >= uc.config.FinishAttempts {
			return false, err
		}

		uc.l.Warnf(ctx, "report.usecase.finish: Attempt %d for request %s failed: %v", attempt, opts.ID, err)
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// execute evaluates, renders and stores a request. A nil result means success.
func (uc *implUseCase) execute(ctx context.Context, req *model.ReportRequest) (failure *model.Failure) {
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "report.usecase.execute: Panic while processing %s: %v", req.ID, r)
			failure = newFailure(model.FailureKindInternal, fmt.Errorf("panic: %v", r))
		}
	}()

	renderer, err := uc.renderers.Get(req.Mode.Renderer)
	if err != nil {
		return newFailure(model.FailureKindRendering, err)
	}

	ds, err := uc.evaluator.Evaluate(ctx, req.Definition, evaluationContext(req))
	if err != nil {
		return newFailure(evaluationFailureKind(err), err)
	}

	rpt, failure := uc.renderReport(ctx, req, renderer, ds)
	if failure != nil {
		return failure
	}

	if err := uc.reports.Save(ctx, rpt); err != nil {
		if rpt.HasArtifact() {
			if derr := uc.artifacts.Delete(ctx, rpt.ArtifactKey); derr != nil {
				uc.l.Errorf(ctx, "report.usecase.execute: Failed to remove orphaned artifact %s: %v", rpt.ArtifactKey, derr)
			}
		}
		return newFailure(model.FailureKindStorage, err)
	}
	return nil
}

// renderReport produces the report of req. File renderings are written to the artifact store.
func (uc *implUseCase) renderReport(ctx context.Context, req *model.ReportRequest, r render.Renderer, ds *dataset.DataSet) (*model.Report, *model.Failure) {
	rpt := &model.Report{
		ID:        uuid.New(),
		RequestID: req.ID,
		RawData:   ds,
		CreatedAt: time.Now(),
	}

	if ir, ok := render.AsInline(r); ok {
		rpt.ContentType = ir.ContentType()
		return rpt, nil
	}

	fr, ok := render.AsFile(r)
	if !ok {
		return nil, newFailure(model.FailureKindRendering, fmt.Errorf("%w: %s", render.ErrInvalidRenderer, r.Name()))
	}

	filename, err := fr.Filename(req.Definition, req.Mode.Argument)
	if err != nil {
		return nil, newFailure(model.FailureKindRendering, err)
	}

	var buf bytes.Buffer
	if err := fr.Render(&buf, ds, req.Mode.Argument); err != nil {
		return nil, newFailure(model.FailureKindRendering, err)
	}

	key := artifactKey(uc.config.ArtifactPrefix, req.ID, filename)
	contentType := fr.ContentType(req.Mode.Argument)
	if err := uc.artifacts.Put(ctx, repository.PutArtifactOptions{
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		Data:        buf.Bytes(),
	}); err != nil {
		return nil, newFailure(model.FailureKindStorage, err)
	}

	rpt.Filename = filename
	rpt.ContentType = contentType
	rpt.ArtifactKey = key
	rpt.Size = int64(buf.Len())
	return rpt, nil
}

// artifactKey places the artifact under the request id. Only the base name of filename is
// kept, so no filename can reach outside its request's directory.
func artifactKey(prefix string, id uuid.UUID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		name = "report"
	}
	return path.Join(prefix, id.String(), name)
}

func evaluationContext(req *model.ReportRequest) dataset.EvaluationContext {
	var base *dataset.Cohort
	if req.BaseCohort != nil {
		c := dataset.NewCohort(req.BaseCohort...)
		base = &c
	}
	return dataset.NewEvaluationContext(base, req.Parameters)
}

func evaluationFailureKind(err error) model.FailureKind {
	switch {
	case errors.Is(err, dataset.ErrInvalidDefinition),
		errors.Is(err, dataset.ErrUnsupportedDefinition),
		errors.Is(err, dataset.ErrUnsupportedCohort):
		return model.FailureKindDefinition
	}
	return model.FailureKindEvaluation
}

func newFailure(kind model.FailureKind, err error) *model.Failure {
	return &model.Failure{Kind: kind, Message: err.Error()}
}
