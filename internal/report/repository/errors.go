package repository

import "errors"

var (
	ErrRequestNotFound  = errors.New("repository: report request not found")
	ErrReportNotFound   = errors.New("repository: report not found")
	ErrArtifactNotFound = errors.New("repository: artifact not found")
	ErrSessionNotFound  = errors.New("repository: session not found")
	ErrDuplicateRequest = errors.New("repository: report request already exists")
	ErrCorruptRecord    = errors.New("repository: stored record cannot be decoded")
)
