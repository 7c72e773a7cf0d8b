package report

import (
	"errors"
)

var (
	ErrReportRequestNotFound = errors.New("report request not found")
	ErrReportNotFound        = errors.New("report not found")
	ErrArtifactNotReady      = errors.New("the report file is still being written")
	ErrArtifactMissing       = errors.New("the persisted report file is missing")
	ErrReportFailed          = errors.New("report generation failed")
	ErrRequestNotTerminal    = errors.New("report request is still queued or processing")
	ErrRequestNotCompleted   = errors.New("report request is not completed")
	ErrNotCancellable        = errors.New("only queued report requests can be cancelled")
	ErrNotDownloadable       = errors.New("report is rendered inline and has no file")
	ErrDefinitionRequired    = errors.New("definition is required")
	ErrUnknownRenderer       = errors.New("unknown renderer")
	ErrInvalidLabel          = errors.New("label must not be empty")
	ErrSessionNotFound       = errors.New("no inline report in session")
	ErrSessionMismatch       = errors.New("session holds a report for another renderer")
)

// ErrorKind separates "try again later" failures from everything else.
type ErrorKind int

const (
	ErrorKindGeneric ErrorKind = iota
	ErrorKindArtifactNotReady
)

// ErrorKindOf classifies err for presentation.
func ErrorKindOf(err error) ErrorKind {
	if errors.Is(err, ErrArtifactNotReady) {
		return ErrorKindArtifactNotReady
	}
	return ErrorKindGeneric
}
