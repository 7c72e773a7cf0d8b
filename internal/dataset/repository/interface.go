package repository

import (
	"context"

	"reporting-srv/internal/dataset"
)

//go:generate mockery --name ObsRepository
type ObsRepository interface {
	// ListObs returns observations matching opts, ordered by patient, obs datetime and obs id.
	ListObs(ctx context.Context, opts ListObsOptions) ([]dataset.Obs, error)
	// ListPatientIDs returns the distinct patients having at least one observation matching opts.
	ListPatientIDs(ctx context.Context, opts ListPatientIDsOptions) ([]int, error)
}
