package errors

import "net/http"

// NewBadRequestError wraps a binding or validation failure.
func NewBadRequestError(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}
