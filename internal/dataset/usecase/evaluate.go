package usecase

import (
	"context"
	"fmt"

	"reporting-srv/internal/dataset"
)

// Evaluate dispatches def to the evaluator registered for its type.
func (uc *implUseCase) Evaluate(ctx context.Context, def dataset.Definition, ec dataset.EvaluationContext) (*dataset.DataSet, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", dataset.ErrInvalidDefinition)
	}

	ev, ok := uc.evaluators[def.DefinitionType()]
	if !ok {
		uc.l.Warnf(ctx, "dataset.usecase.Evaluate: No evaluator for definition type %q", def.DefinitionType())
		return nil, fmt.Errorf("%w: %q", dataset.ErrUnsupportedDefinition, def.DefinitionType())
	}

	return ev.Evaluate(ctx, def, ec)
}

// effectiveCohort intersects the context's base cohort with the evaluated filter.
// restricted is false when neither side restricts the patient set.
func (uc *implUseCase) effectiveCohort(ctx context.Context, filter dataset.CohortDefinition, ec dataset.EvaluationContext) (cohort dataset.Cohort, restricted bool, err error) {
	base, hasBase := ec.BaseCohort()
	if filter == nil {
		return base, hasBase, nil
	}

	filtered, err := uc.EvaluateCohort(ctx, filter, ec)
	if err != nil {
		return dataset.Cohort{}, false, err
	}
	if !hasBase {
		return filtered, true, nil
	}
	return base.Intersect(filtered), true, nil
}
