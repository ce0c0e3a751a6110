package opencode

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionRequired is returned when an operation scoped to an existing
	// session is invoked without a session id.
	ErrSessionRequired = errors.New("session id is required")

	// ErrRequestTimeout is returned when a client-side deadline aborts a call.
	ErrRequestTimeout = errors.New("request timed out")
)

// RequestError covers any transport failure or non-2xx response from the
// OpenCode server. Callers are not expected to distinguish further.
type RequestError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("opencode request failed: %s", e.Message)
	}

	return fmt.Sprintf("opencode request failed (%d): %s", e.StatusCode, e.Message)
}

// IsRequestError reports whether err wraps a *RequestError.
func IsRequestError(err error) bool {
	var requestErr *RequestError
	return errors.As(err, &requestErr)
}
