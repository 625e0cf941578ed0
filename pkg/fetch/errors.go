package fetch

import (
	"errors"
	"fmt"
)

// ErrTooLarge indicates the response body exceeded the configured limit
var ErrTooLarge = errors.New("response body too large")

// NetworkError indicates a network/transport error when fetching a theme
type NetworkError struct {
	URL     string // URL that failed
	Wrapped error  // Underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Wrapped)
}

func (e *NetworkError) Unwrap() error {
	return e.Wrapped
}

// StatusError indicates the server answered with a non-success status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsNotFound reports whether err is a 404 status error
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}
