package errors

import "fmt"

// HTTPError is an error that carries the HTTP status and the message shown to clients.
type HTTPError struct {
	Code    int
	Message string
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status of the error.
func (e *HTTPError) StatusCode() int {
	return e.Code
}
