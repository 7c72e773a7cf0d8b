package dataset

import (
	"sort"
	"time"
)

// Cohort is an immutable set of patient ids.
type Cohort struct {
	ids map[int]struct{}
}

// NewCohort builds a cohort from patient ids. Duplicates collapse.
func NewCohort(ids ...int) Cohort {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Cohort{ids: m}
}

func (c Cohort) Contains(id int) bool {
	_, ok := c.ids[id]
	return ok
}

func (c Cohort) Size() int { return len(c.ids) }

// IDs returns the member ids in ascending order.
func (c Cohort) IDs() []int {
	out := make([]int, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Intersect returns the patients present in both cohorts.
func (c Cohort) Intersect(o Cohort) Cohort {
	small, large := c, o
	if large.Size() < small.Size() {
		small, large = large, small
	}
	m := make(map[int]struct{})
	for id := range small.ids {
		if large.Contains(id) {
			m[id] = struct{}{}
		}
	}
	return Cohort{ids: m}
}

// Union returns the patients present in either cohort.
func (c Cohort) Union(o Cohort) Cohort {
	m := make(map[int]struct{}, c.Size()+o.Size())
	for id := range c.ids {
		m[id] = struct{}{}
	}
	for id := range o.ids {
		m[id] = struct{}{}
	}
	return Cohort{ids: m}
}

// Cohort definition types.
const (
	CohortTypeStatic       = "static"
	CohortTypeIntersection = "intersection"
	CohortTypeUnion        = "union"
	CohortTypeHasObs       = "has_obs"
)

// CohortDefinition is a composable, evaluable description of a patient set.
type CohortDefinition interface {
	CohortType() string
}

// StaticCohortDefinition is an explicit list of patient ids.
type StaticCohortDefinition struct {
	PatientIDs []int
}

func (StaticCohortDefinition) CohortType() string { return CohortTypeStatic }

// IntersectionCohortDefinition matches patients in every member.
type IntersectionCohortDefinition struct {
	Members []CohortDefinition
}

func (IntersectionCohortDefinition) CohortType() string { return CohortTypeIntersection }

// UnionCohortDefinition matches patients in any member.
type UnionCohortDefinition struct {
	Members []CohortDefinition
}

func (UnionCohortDefinition) CohortType() string { return CohortTypeUnion }

// HasObsCohortDefinition matches patients with at least one observation of the given
// concepts inside the optional inclusive date range.
type HasObsCohortDefinition struct {
	ConceptIDs []int
	FromDate   *time.Time
	ToDate     *time.Time
}

func (HasObsCohortDefinition) CohortType() string { return CohortTypeHasObs }
