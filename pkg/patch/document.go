// Package patch applies idempotent, anchor-based edits to small text documents.
//
// Every operation takes a Document and returns a new Document together with a
// Result describing what happened. Nothing in this package touches the
// filesystem; reading and writing documents is the caller's job.
package patch

import (
	"errors"
	"fmt"
)

// Document is a named text document being patched.
type Document struct {
	Name string
	Text string
}

// NewDocument creates a document.
func NewDocument(name, text string) Document {
	return Document{Name: name, Text: text}
}

// WithText returns a copy of the document holding text.
func (d Document) WithText(text string) Document {
	d.Text = text
	return d
}

// Outcome describes the effect of a patch operation.
type Outcome int

const (
	Unchanged Outcome = iota
	Inserted
	AlreadyPresent
	Replaced
	Removed
	NotFound
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already present"
	case Replaced:
		return "replaced"
	case Removed:
		return "removed"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome modified the document.
func (o Outcome) Changed() bool {
	return o == Inserted || o == Replaced || o == Removed
}

// Result reports what a patch operation did.
type Result struct {
	Outcome Outcome
	// Anchor is the name of the anchor that located the insertion point.
	Anchor string
	// Count is the number of regions removed.
	Count int
}

// StructureError indicates that a document does not have any of the shapes a
// patch operation knows how to edit. The document is always returned unchanged
// alongside this error.
type StructureError struct {
	Document string
	Reason   string
}

func (e *StructureError) Error() string {
	if e.Document == "" {
		return fmt.Sprintf("unable to parse document structure: %s", e.Reason)
	}
	return fmt.Sprintf("unable to parse %s structure: %s", e.Document, e.Reason)
}

// IsStructureError checks if an error is a structure error
func IsStructureError(err error) bool {
	var structErr *StructureError
	return errors.As(err, &structErr)
}

// Splice replaces text[start:end] with replacement.
func Splice(text string, start, end int, replacement string) string {
	return text[:start] + replacement + text[end:]
}
