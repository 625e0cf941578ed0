/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package finalizer

import (
	"bytes"
	"testing"
)

func TestCollapseBlankRuns(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedOutput  string
		expectedChanged bool
	}{
		{
			name:            "no blank runs",
			input:           "a\nb\n",
			expectedOutput:  "a\nb\n",
			expectedChanged: false,
		},
		{
			name:            "single blank line kept",
			input:           "a\n\nb\n",
			expectedOutput:  "a\n\nb\n",
			expectedChanged: false,
		},
		{
			name:            "three newlines collapsed",
			input:           "a\n\n\nb\n",
			expectedOutput:  "a\n\nb\n",
			expectedChanged: true,
		},
		{
			name:            "long run collapsed",
			input:           "a\n\n\n\n\n\nb",
			expectedOutput:  "a\n\nb",
			expectedChanged: true,
		},
		{
			name:            "crlf run collapsed",
			input:           "a\r\n\r\n\r\n\r\nb",
			expectedOutput:  "a\r\n\r\nb",
			expectedChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed := CollapseBlankRuns(tt.input)
			if out != tt.expectedOutput {
				t.Errorf("CollapseBlankRuns() = %q, expected %q", out, tt.expectedOutput)
			}
			if changed != tt.expectedChanged {
				t.Errorf("CollapseBlankRuns() changed = %v, expected %v", changed, tt.expectedChanged)
			}
		})
	}
}

func TestDetectLineEnding(t *testing.T) {
	if got := DetectLineEnding("a\nb\n"); got != "\n" {
		t.Errorf("expected LF, got %q", got)
	}
	if got := DetectLineEnding("a\r\nb\r\nc\n"); got != "\r\n" {
		t.Errorf("expected CRLF, got %q", got)
	}
	if got := DetectLineEnding(""); got != "\n" {
		t.Errorf("expected LF default, got %q", got)
	}
}

func TestToLineEnding(t *testing.T) {
	if got := ToLineEnding("a\nb", "\n"); got != "a\nb" {
		t.Errorf("LF passthrough changed content: %q", got)
	}
	if got := ToLineEnding("a\nb\r\nc", "\r\n"); got != "a\r\nb\r\nc" {
		t.Errorf("CRLF conversion = %q", got)
	}
}

func TestUTF8BOM(t *testing.T) {
	content := []byte("body {}")
	withBOM := AddUTF8BOM(content)
	stripped, found := StripUTF8BOM(withBOM)
	if !found {
		t.Fatal("expected BOM to be detected")
	}
	if !bytes.Equal(stripped, content) {
		t.Errorf("StripUTF8BOM() = %q, expected %q", stripped, content)
	}
	if _, found := StripUTF8BOM(content); found {
		t.Error("did not expect BOM on plain content")
	}
}

func TestIsTextFile(t *testing.T) {
	if !IsTextFile([]byte("@import 'x';")) {
		t.Error("css should be text")
	}
	if IsTextFile([]byte{0x00, 0x01}) {
		t.Error("NUL bytes should be treated as binary")
	}
}
