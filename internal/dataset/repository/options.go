package repository

import "time"

// ListObsOptions filters observations. A nil slice means no restriction on that field.
// Date bounds are inclusive; nil means unbounded.
type ListObsOptions struct {
	PatientIDs []int
	ConceptIDs []int
	FromDate   *time.Time
	ToDate     *time.Time
}

type ListPatientIDsOptions struct {
	ConceptIDs []int
	FromDate   *time.Time
	ToDate     *time.Time
}
