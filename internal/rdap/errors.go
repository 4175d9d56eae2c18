package rdap

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from an RDAP registry. Callers
// should prefer the predicate functions (IsNotFound, IsRateLimited) over
// asserting on this type directly.
type APIError struct {
	operation  string
	statusCode int
	message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.operation, e.statusCode, e.message)
}

func newAPIError(operation string, statusCode int, message string) *APIError {
	return &APIError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
	}
}

// StatusCode returns the HTTP status code from the registry response.
func (e *APIError) StatusCode() int { return e.statusCode }

// Message returns the human-readable error message.
func (e *APIError) Message() string { return e.message }

// Operation returns a short description of the RDAP call that failed.
func (e *APIError) Operation() string { return e.operation }

// IsNotFound reports whether err is an RDAP error with HTTP 404 status.
// For domain lookups this means "not registered", not a failure.
func IsNotFound(err error) bool { return HasStatusCode(err, http.StatusNotFound) }

// IsRateLimited reports whether err is an RDAP error with HTTP 429 status.
func IsRateLimited(err error) bool { return HasStatusCode(err, http.StatusTooManyRequests) }

// HasStatusCode reports whether err is an RDAP error whose status matches.
func HasStatusCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.statusCode == code
}
