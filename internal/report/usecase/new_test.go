package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reporting-srv/internal/dataset"
	dsmemory "reporting-srv/internal/dataset/repository/memory"
	dsusecase "reporting-srv/internal/dataset/usecase"
	"reporting-srv/internal/model"
	"reporting-srv/internal/render"
	"reporting-srv/internal/report"
	"reporting-srv/internal/report/repository"
	"reporting-srv/internal/report/repository/memory"
	"reporting-srv/pkg/log"
)

var weight = dataset.Concept{ID: 5089, Name: "WEIGHT (KG)"}

func weightObs() []dataset.Obs {
	v := 70.0
	return []dataset.Obs{{
		ID:           1,
		PatientID:    7,
		Concept:      weight,
		EncounterID:  11,
		ObsDatetime:  time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		ValueKind:    dataset.ValueKindNumeric,
		ValueNumeric: &v,
	}}
}

func weightsDefinition(name string) *dataset.ObsDefinition {
	d := dataset.NewObsDefinition(name)
	d.Questions().Add(weight)
	return d
}

type testStores struct {
	requests  repository.RequestReportRepository
	artifacts repository.ArtifactRepository
	sessions  repository.SessionRepository
	events    *recordingPublisher
}

func setupReportUseCase(t *testing.T, ev dataset.Evaluator, cfg Config) (*implUseCase, testStores) {
	t.Helper()
	if ev == nil {
		ev = dsusecase.New(dsmemory.New(weightObs()), log.NewNop(), dsusecase.Config{})
	}
	stores := testStores{
		requests:  memory.New(),
		artifacts: memory.NewArtifacts(),
		sessions:  memory.NewSessions(),
		events:    &recordingPublisher{},
	}
	uc := newUseCase(Dependencies{
		Requests:  stores.requests,
		Reports:   stores.requests,
		Artifacts: stores.artifacts,
		Sessions:  stores.sessions,
		Evaluator: ev,
		Renderers: render.NewDefaultRegistry(render.DefaultInlineBaseURL),
		Publisher: stores.events,
	}, log.NewNop(), cfg)
	return uc, stores
}

func submit(t *testing.T, uc *implUseCase, def dataset.Definition, renderer string) report.SubmitOutput {
	t.Helper()
	out, err := uc.Submit(context.Background(), report.SubmitInput{
		Definition: def,
		Mode:       model.RenderingMode{Renderer: renderer},
	})
	require.NoError(t, err)
	return out
}

func processAll(t *testing.T, uc *implUseCase) {
	t.Helper()
	for {
		ok, err := uc.processNext(context.Background())
		require.NoError(t, err)
		if !ok {
			return
		}
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []report.LifecycleEvent
}

func (p *recordingPublisher) PublishLifecycle(_ context.Context, e report.LifecycleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// gatedEvaluator blocks inside Evaluate until released.
type gatedEvaluator struct {
	inner   dataset.Evaluator
	entered chan struct{}
	release chan struct{}
}

func newGatedEvaluator(inner dataset.Evaluator) *gatedEvaluator {
	return &gatedEvaluator{
		inner:   inner,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (g *gatedEvaluator) Evaluate(ctx context.Context, def dataset.Definition, ec dataset.EvaluationContext) (*dataset.DataSet, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.inner.Evaluate(ctx, def, ec)
}

type evaluatorFunc func(ctx context.Context, def dataset.Definition, ec dataset.EvaluationContext) (*dataset.DataSet, error)

func (f evaluatorFunc) Evaluate(ctx context.Context, def dataset.Definition, ec dataset.EvaluationContext) (*dataset.DataSet, error) {
	return f(ctx, def, ec)
}

type failingArtifacts struct {
	repository.ArtifactRepository
}

func (failingArtifacts) Put(context.Context, repository.PutArtifactOptions) error {
	return errors.New("bucket unavailable")
}

// flakyRequests fails the next finishing transitions (from PROCESSING) with a store error.
type flakyRequests struct {
	repository.RequestReportRepository

	mu           sync.Mutex
	failFinishes int
}

func (f *flakyRequests) TransitionStatus(ctx context.Context, opts repository.TransitionOptions) (bool, error) {
	f.mu.Lock()
	if opts.From == model.ReportStatusProcessing && f.failFinishes > 0 {
		f.failFinishes--
		f.mu.Unlock()
		return false, errors.New("connection reset by peer")
	}
	f.mu.Unlock()
	return f.RequestReportRepository.TransitionStatus(ctx, opts)
}

type failingReports struct {
	repository.ReportRepository
}

func (failingReports) Save(context.Context, *model.Report) error {
	return errors.New("reports table locked")
}

type undeletableArtifacts struct {
	repository.ArtifactRepository
}

func (undeletableArtifacts) Delete(context.Context, string) error {
	return errors.New("bucket read-only")
}

// recordingLogger keeps formatted error lines.
type recordingLogger struct {
	log.Logger

	mu     sync.Mutex
	errors []string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{Logger: log.NewNop()}
}

func (r *recordingLogger) Errorf(_ context.Context, template string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(template, args...))
}

func (r *recordingLogger) errorLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}
