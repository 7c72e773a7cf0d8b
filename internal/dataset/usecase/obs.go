package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
)

type obsEvaluator struct {
	uc *implUseCase
}

// Evaluate produces one row per matching observation, ordered by patient, obs datetime and obs id.
func (e *obsEvaluator) Evaluate(ctx context.Context, def dataset.Definition, ec dataset.EvaluationContext) (*dataset.DataSet, error) {
	od, ok := def.(*dataset.ObsDefinition)
	if !ok {
		return nil, fmt.Errorf("%w: obs evaluator cannot handle %T", dataset.ErrUnsupportedDefinition, def)
	}
	if err := od.Validate(); err != nil {
		return nil, err
	}

	ds := &dataset.DataSet{
		Definition:  od.Name(),
		Columns:     od.Columns(),
		Rows:        []dataset.Row{},
		EvaluatedAt: time.Now(),
	}

	cohort, restricted, err := e.uc.effectiveCohort(ctx, od.Filter(), ec)
	if err != nil {
		e.uc.l.Errorf(ctx, "dataset.usecase.obsEvaluator.Evaluate: Failed to resolve cohort: %v", err)
		return nil, err
	}
	if restricted && cohort.Size() == 0 {
		return ds, nil
	}

	opts := repository.ListObsOptions{
		FromDate: od.FromDate(),
		ToDate:   od.ToDate(),
	}
	if restricted {
		opts.PatientIDs = cohort.IDs()
	}
	if questions := od.Questions(); questions.Len() > 0 {
		opts.ConceptIDs = questions.IDs()
	} else if e.uc.config.EmptyQuestions == dataset.EmptyQuestionsMatchNone {
		return ds, nil
	}

	obs, err := e.uc.repo.ListObs(ctx, opts)
	if err != nil {
		e.uc.l.Errorf(ctx, "dataset.usecase.obsEvaluator.Evaluate: Failed to list obs: %v", err)
		return nil, fmt.Errorf("%w: %w", dataset.ErrEvaluationFailed, err)
	}

	sort.SliceStable(obs, func(i, j int) bool {
		a, b := obs[i], obs[j]
		if a.PatientID != b.PatientID {
			return a.PatientID < b.PatientID
		}
		if !a.ObsDatetime.Equal(b.ObsDatetime) {
			return a.ObsDatetime.Before(b.ObsDatetime)
		}
		return a.ID < b.ID
	})

	for _, o := range obs {
		row, err := toRow(o)
		if err != nil {
			e.uc.l.Errorf(ctx, "dataset.usecase.obsEvaluator.Evaluate: Obs %d: %v", o.ID, err)
			return nil, err
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func toRow(o dataset.Obs) (dataset.Row, error) {
	row := dataset.Row{
		dataset.ColumnPatientID:         o.PatientID,
		dataset.ColumnQuestion:          o.Concept.Name,
		dataset.ColumnQuestionConceptID: o.Concept.ID,
		dataset.ColumnAnswer:            nil,
		dataset.ColumnAnswerConceptID:   nil,
		dataset.ColumnObsDatetime:       o.ObsDatetime,
		dataset.ColumnEncounterID:       o.EncounterID,
		dataset.ColumnObsGroupID:        nil,
	}
	if o.ObsGroupID != nil {
		row[dataset.ColumnObsGroupID] = *o.ObsGroupID
	}

	missing := func() error {
		return fmt.Errorf("%w: obs %d has kind %q without a value", dataset.ErrEvaluationFailed, o.ID, o.ValueKind)
	}

	switch o.ValueKind {
	case dataset.ValueKindCoded:
		if o.ValueCoded == nil {
			return nil, missing()
		}
		row[dataset.ColumnAnswer] = o.ValueCoded.Name
		row[dataset.ColumnAnswerConceptID] = o.ValueCoded.ID
	case dataset.ValueKindNumeric:
		if o.ValueNumeric == nil {
			return nil, missing()
		}
		row[dataset.ColumnAnswer] = *o.ValueNumeric
	case dataset.ValueKindText:
		if o.ValueText == nil {
			return nil, missing()
		}
		row[dataset.ColumnAnswer] = *o.ValueText
	case dataset.ValueKindDatetime:
		if o.ValueDatetime == nil {
			return nil, missing()
		}
		row[dataset.ColumnAnswer] = *o.ValueDatetime
	default:
		return nil, fmt.Errorf("%w: %w: obs %d kind %q", dataset.ErrEvaluationFailed, dataset.ErrUnknownValueKind, o.ID, o.ValueKind)
	}

	return row, nil
}
