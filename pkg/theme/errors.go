package theme

import (
	"errors"
	"fmt"
)

// InputError reports a theme source that could not be loaded or does not
// describe a usable theme.
type InputError struct {
	Source  string
	Reason  string
	Wrapped error
}

func (e *InputError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("invalid theme source %s: %s: %v", e.Source, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("invalid theme source %s: %s", e.Source, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}

// IsInputError checks if an error is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// ErrEmptyName is returned when no theme identifier can be derived.
var ErrEmptyName = errors.New("theme name produces an empty identifier")
