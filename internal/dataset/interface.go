package dataset

import "context"

// Evaluator turns a definition and context into a data set. Implementations must not
// mutate the definition or the context.
type Evaluator interface {
	Evaluate(ctx context.Context, def Definition, ec EvaluationContext) (*DataSet, error)
}

//go:generate mockery --name UseCase
type UseCase interface {
	Evaluator
	EvaluateCohort(ctx context.Context, def CohortDefinition, ec EvaluationContext) (Cohort, error)
}
