/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package exitcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	if Success != 0 {
		t.Errorf("Success = %v, expected 0", Success)
	}
	if Failure != 1 {
		t.Errorf("Failure = %v, expected 1", Failure)
	}
	if ConfigError != 2 {
		t.Errorf("ConfigError = %v, expected 2", ConfigError)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{Failure, "Failure"},
		{ConfigError, "Configuration error"},
		{42, "Unknown error"},
	}

	for _, test := range tests {
		if result := String(test.code); result != test.expected {
			t.Errorf("String(%d) = %q, expected %q", test.code, result, test.expected)
		}
	}
}

func TestForError(t *testing.T) {
	if code := ForError(nil); code != Success {
		t.Errorf("ForError(nil) = %d, expected %d", code, Success)
	}
	if code := ForError(errors.New("boom")); code != Failure {
		t.Errorf("ForError(err) = %d, expected %d", code, Failure)
	}
}

func TestWithCode(t *testing.T) {
	if WithCode(ConfigError, nil) != nil {
		t.Error("WithCode(nil) should be nil")
	}
	base := errors.New("bad config")
	err := fmt.Errorf("loading: %w", WithCode(ConfigError, base))
	if code := ForError(err); code != ConfigError {
		t.Errorf("ForError(wrapped) = %d, expected %d", code, ConfigError)
	}
	if !errors.Is(err, base) {
		t.Error("coded error should unwrap to its cause")
	}
}
