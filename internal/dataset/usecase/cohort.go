package usecase

import (
	"context"
	"fmt"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
)

// EvaluateCohort resolves a cohort definition tree to a concrete patient set.
func (uc *implUseCase) EvaluateCohort(ctx context.Context, def dataset.CohortDefinition, ec dataset.EvaluationContext) (dataset.Cohort, error) {
	switch d := def.(type) {
	case dataset.StaticCohortDefinition:
		return dataset.NewCohort(d.PatientIDs...), nil

	case dataset.HasObsCohortDefinition:
		if d.FromDate != nil && d.ToDate != nil && d.FromDate.After(*d.ToDate) {
			return dataset.Cohort{}, fmt.Errorf("%w: cohort date range is inverted", dataset.ErrInvalidDefinition)
		}
		ids, err := uc.repo.ListPatientIDs(ctx, repository.ListPatientIDsOptions{
			ConceptIDs: d.ConceptIDs,
			FromDate:   d.FromDate,
			ToDate:     d.ToDate,
		})
		if err != nil {
			uc.l.Errorf(ctx, "dataset.usecase.EvaluateCohort: Failed to list patients: %v", err)
			return dataset.Cohort{}, fmt.Errorf("%w: %w", dataset.ErrEvaluationFailed, err)
		}
		return dataset.NewCohort(ids...), nil

	case dataset.IntersectionCohortDefinition:
		if len(d.Members) == 0 {
			return dataset.Cohort{}, fmt.Errorf("%w: intersection without members", dataset.ErrInvalidDefinition)
		}
		result, err := uc.EvaluateCohort(ctx, d.Members[0], ec)
		if err != nil {
			return dataset.Cohort{}, err
		}
		for _, m := range d.Members[1:] {
			c, err := uc.EvaluateCohort(ctx, m, ec)
			if err != nil {
				return dataset.Cohort{}, err
			}
			result = result.Intersect(c)
		}
		return result, nil

	case dataset.UnionCohortDefinition:
		result := dataset.NewCohort()
		for _, m := range d.Members {
			c, err := uc.EvaluateCohort(ctx, m, ec)
			if err != nil {
				return dataset.Cohort{}, err
			}
			result = result.Union(c)
		}
		return result, nil

	default:
		return dataset.Cohort{}, fmt.Errorf("%w: %w: %T", dataset.ErrEvaluationFailed, dataset.ErrUnsupportedCohort, def)
	}
}
