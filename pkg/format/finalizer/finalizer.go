/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package finalizer

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	blankRunLF   = regexp.MustCompile(`\n{3,}`)
	blankRunCRLF = regexp.MustCompile(`(?:\r\n){3,}`)
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectLineEnding detects the primary line ending style used in the content
func DetectLineEnding(content string) string {
	lfCount := strings.Count(content, "\n") - strings.Count(content, "\r\n")
	crlfCount := strings.Count(content, "\r\n")

	// Use the more common line ending, default to LF
	if crlfCount > lfCount {
		return "\r\n"
	}
	return "\n"
}

// ToLineEnding rewrites LF line breaks in s to the given line ending.
// Text produced by the patcher always uses LF internally.
func ToLineEnding(s, lineEnding string) string {
	if lineEnding != "\r\n" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// CollapseBlankRuns collapses runs of three or more line breaks into a single
// blank line. Both LF and CRLF documents are handled.
func CollapseBlankRuns(content string) (string, bool) {
	out := blankRunCRLF.ReplaceAllString(content, "\r\n\r\n")
	out = blankRunLF.ReplaceAllString(out, "\n\n")
	return out, out != content
}

// StripUTF8BOM removes a leading UTF-8 byte order mark.
func StripUTF8BOM(input []byte) (out []byte, found bool) {
	if bytes.HasPrefix(input, utf8BOM) {
		return input[len(utf8BOM):], true
	}
	return input, false
}

// AddUTF8BOM prefixes the content with a UTF-8 byte order mark.
func AddUTF8BOM(input []byte) []byte {
	out := make([]byte, 0, len(input)+len(utf8BOM))
	out = append(out, utf8BOM...)
	return append(out, input...)
}

// IsTextFile performs a heuristic check to determine if content is likely text
func IsTextFile(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	return !bytes.Contains(content, []byte{0})
}
