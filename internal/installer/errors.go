package installer

import (
	"errors"
	"fmt"
	"strings"
)

// ProtectedResourceError is returned when removing a theme that must always
// exist. Nothing is modified.
type ProtectedResourceError struct {
	ID string
}

func (e *ProtectedResourceError) Error() string {
	return fmt.Sprintf("theme %q is protected and cannot be removed", e.ID)
}

// IsProtectedResourceError checks if an error is a ProtectedResourceError.
func IsProtectedResourceError(err error) bool {
	var pe *ProtectedResourceError
	return errors.As(err, &pe)
}

// FileFailure pairs a file with the error that stopped its update.
type FileFailure struct {
	Path string
	Err  error
}

// PartialApplyError reports an operation that changed some files and failed
// on others. Files are not rolled back.
type PartialApplyError struct {
	Updated []string
	Failed  []FileFailure
}

func (e *PartialApplyError) Error() string {
	failed := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		failed = append(failed, fmt.Sprintf("%s (%v)", f.Path, f.Err))
	}
	updated := "nothing"
	if len(e.Updated) > 0 {
		updated = strings.Join(e.Updated, ", ")
	}
	return fmt.Sprintf("partially applied: updated %s; failed %s", updated, strings.Join(failed, ", "))
}

// Unwrap exposes the per-file errors to errors.Is and errors.As.
func (e *PartialApplyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// IsPartialApplyError checks if an error is a PartialApplyError.
func IsPartialApplyError(err error) bool {
	var pe *PartialApplyError
	return errors.As(err, &pe)
}
