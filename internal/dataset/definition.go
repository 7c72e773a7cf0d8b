package dataset

import (
	"fmt"
	"time"
)

// Definition types.
const (
	DefinitionTypeObs = "obs"
)

// Definition is declarative metadata describing a data set. It holds no evaluation logic.
type Definition interface {
	DefinitionType() string
	Name() string
	Columns() []Column
	Validate() error
}

// ObsDefinition selects one row per observation of the given questions.
type ObsDefinition struct {
	name        string
	description string
	questions   ConceptSet
	filter      CohortDefinition
	fromDate    *time.Time
	toDate      *time.Time
}

// NewObsDefinition creates an empty obs definition named name.
func NewObsDefinition(name string) *ObsDefinition {
	return &ObsDefinition{name: name}
}

func (d *ObsDefinition) DefinitionType() string { return DefinitionTypeObs }

func (d *ObsDefinition) Name() string { return d.name }

func (d *ObsDefinition) SetName(name string) { d.name = name }

func (d *ObsDefinition) Description() string { return d.description }

func (d *ObsDefinition) SetDescription(description string) { d.description = description }

// Columns returns the fixed obs schema.
func (d *ObsDefinition) Columns() []Column {
	return ObsColumns()
}

// Questions returns the concept filter. It is never nil; an empty set is created on first access.
func (d *ObsDefinition) Questions() ConceptSet {
	if d.questions == nil {
		d.questions = ConceptSet{}
	}
	return d.questions
}

func (d *ObsDefinition) SetQuestions(questions ConceptSet) {
	d.questions = questions
}

// Filter returns the secondary cohort filter, or nil when unset.
func (d *ObsDefinition) Filter() CohortDefinition { return d.filter }

func (d *ObsDefinition) SetFilter(filter CohortDefinition) { d.filter = filter }

func (d *ObsDefinition) FromDate() *time.Time { return d.fromDate }

func (d *ObsDefinition) SetFromDate(t *time.Time) { d.fromDate = t }

func (d *ObsDefinition) ToDate() *time.Time { return d.toDate }

func (d *ObsDefinition) SetToDate(t *time.Time) { d.toDate = t }

// Validate rejects an inverted date range.
func (d *ObsDefinition) Validate() error {
	if d.fromDate != nil && d.toDate != nil && d.fromDate.After(*d.toDate) {
		return fmt.Errorf("%w: fromDate %s is after toDate %s", ErrInvalidDefinition,
			d.fromDate.Format(time.RFC3339), d.toDate.Format(time.RFC3339))
	}
	return nil
}
