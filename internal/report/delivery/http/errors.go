package http

import (
	"errors"

	"reporting-srv/internal/report"
	pkgErrors "reporting-srv/pkg/errors"
)

const msgArtifactNotReady = "The saved file is still being written. Try again in a few minutes"

var (
	errInvalidID           = pkgErrors.NewHTTPError(400, "Invalid report request id")
	errInvalidDefinition   = pkgErrors.NewHTTPError(400, "Invalid data set definition")
	errDefinitionRequired  = pkgErrors.NewHTTPError(400, "Definition is required")
	errUnknownRenderer     = pkgErrors.NewHTTPError(400, "Unknown renderer")
	errInvalidLabel        = pkgErrors.NewHTTPError(400, "Label must not be empty")
	errRequestNotFound     = pkgErrors.NewHTTPError(404, "Report request not found")
	errReportNotFound      = pkgErrors.NewHTTPError(404, "Report not found")
	errArtifactNotReady    = pkgErrors.NewHTTPError(409, msgArtifactNotReady)
	errArtifactMissing     = pkgErrors.NewHTTPError(410, "The persisted report file is missing")
	errReportFailed        = pkgErrors.NewHTTPError(422, "Report generation failed")
	errRequestNotTerminal  = pkgErrors.NewHTTPError(409, "Report request is still queued or processing")
	errRequestNotCompleted = pkgErrors.NewHTTPError(409, "Report request is not completed")
	errNotCancellable      = pkgErrors.NewHTTPError(409, "Only queued report requests can be cancelled")
	errNotDownloadable     = pkgErrors.NewHTTPError(400, "Report is rendered inline and has no file")
	errSessionNotFound     = pkgErrors.NewHTTPError(404, "No inline report in session")
	errSessionMismatch     = pkgErrors.NewHTTPError(409, "Session holds a report for another renderer")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, report.ErrReportRequestNotFound):
		return errRequestNotFound
	case errors.Is(err, report.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, report.ErrArtifactNotReady):
		return errArtifactNotReady
	case errors.Is(err, report.ErrArtifactMissing):
		return errArtifactMissing
	case errors.Is(err, report.ErrReportFailed):
		return errReportFailed
	case errors.Is(err, report.ErrRequestNotTerminal):
		return errRequestNotTerminal
	case errors.Is(err, report.ErrRequestNotCompleted):
		return errRequestNotCompleted
	case errors.Is(err, report.ErrNotCancellable):
		return errNotCancellable
	case errors.Is(err, report.ErrNotDownloadable):
		return errNotDownloadable
	case errors.Is(err, report.ErrDefinitionRequired):
		return errDefinitionRequired
	case errors.Is(err, report.ErrUnknownRenderer):
		return errUnknownRenderer
	case errors.Is(err, report.ErrInvalidLabel):
		return errInvalidLabel
	case errors.Is(err, report.ErrSessionNotFound):
		return errSessionNotFound
	case errors.Is(err, report.ErrSessionMismatch):
		return errSessionMismatch
	default:
		return err
	}
}

// flashMessage is the text shown on the history page after a failed form action.
func flashMessage(err error) string {
	if report.ErrorKindOf(err) == report.ErrorKindArtifactNotReady {
		return msgArtifactNotReady
	}
	return err.Error()
}
