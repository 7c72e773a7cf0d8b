package repository

import "errors"

var (
	ErrObsQueryFailed  = errors.New("failed to query observations")
	ErrSeedFileInvalid = errors.New("invalid observation seed file")
)
