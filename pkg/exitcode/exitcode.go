// Package exitcode provides the exit codes for themekit
package exitcode

import "errors"

// Exit codes for the themekit CLI. Every fatal error during a theme or
// scaffold operation maps to Failure; ConfigError is reserved for bootstrap
// problems before any command runs.
const (
	Success     = 0
	Failure     = 1
	ConfigError = 2
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	case ConfigError:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}

// Error attaches an exit code to an error.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// WithCode wraps err so that ForError reports code for it.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// ForError maps an error returned by a command to an exit code.
func ForError(err error) int {
	if err == nil {
		return Success
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return Failure
}
