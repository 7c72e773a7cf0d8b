package dataset

import (
	"maps"
	"time"
)

// EvaluationContext carries the base cohort and parameter bindings of one evaluation.
// It is immutable after construction.
type EvaluationContext struct {
	base           *Cohort
	params         map[string]any
	evaluationDate time.Time
}

// NewEvaluationContext creates a context. A nil base means every patient is in scope.
func NewEvaluationContext(base *Cohort, params map[string]any) EvaluationContext {
	ec := EvaluationContext{
		params:         maps.Clone(params),
		evaluationDate: time.Now(),
	}
	if base != nil {
		c := NewCohort(base.IDs()...)
		ec.base = &c
	}
	if ec.params == nil {
		ec.params = map[string]any{}
	}
	return ec
}

// BaseCohort returns the base cohort. ok is false when the context is unrestricted.
func (c EvaluationContext) BaseCohort() (cohort Cohort, ok bool) {
	if c.base == nil {
		return Cohort{}, false
	}
	return *c.base, true
}

// Parameter returns the value bound to name.
func (c EvaluationContext) Parameter(name string) (any, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Parameters returns a copy of all bindings.
func (c EvaluationContext) Parameters() map[string]any {
	return maps.Clone(c.params)
}

func (c EvaluationContext) EvaluationDate() time.Time { return c.evaluationDate }
