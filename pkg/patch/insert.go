package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fulmenhq/themekit/pkg/format/finalizer"
)

// Placement says where a directive goes relative to an anchor match.
type Placement int

const (
	// AfterLast inserts immediately after the last match so that directives of
	// the same family accumulate in encounter order.
	AfterLast Placement = iota
	// AfterFirst inserts immediately after the first match.
	AfterFirst
	// BeforeFirst inserts immediately before the first match.
	BeforeFirst
	// Prepend inserts at the top of the document. It always matches.
	Prepend
	// Append inserts at the end of the document. It always matches.
	Append
)

// Anchor is one predicate/insertion-point pair of a rule.
type Anchor struct {
	Name      string
	Pattern   *regexp.Regexp
	Placement Placement
	// Separator goes between the anchor and the directive. Defaults to a
	// single line break.
	Separator string
}

// Rule describes one directive that must appear exactly once in a document.
type Rule struct {
	Directive string
	// Equivalent patterns detect the same logical directive written differently
	// (for example with another quote character).
	Equivalent []*regexp.Regexp
	// Anchors are evaluated in order until one matches.
	Anchors []Anchor
}

// Present reports whether the directive, or an equivalent, is already in text.
func (r Rule) Present(text string) bool {
	if r.Directive != "" && strings.Contains(text, r.Directive) {
		return true
	}
	for _, re := range r.Equivalent {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// InsertOnce inserts rule.Directive at the first matching anchor unless the
// document already contains it. When no anchor matches the document is returned
// unchanged together with a *StructureError.
func InsertOnce(doc Document, rule Rule) (Document, Result, error) {
	if rule.Present(doc.Text) {
		return doc, Result{Outcome: AlreadyPresent}, nil
	}

	lineEnding := finalizer.DetectLineEnding(doc.Text)
	directive := finalizer.ToLineEnding(rule.Directive, lineEnding)

	for _, anchor := range rule.Anchors {
		pos, insertion, ok := anchor.locate(doc.Text, directive, lineEnding)
		if !ok {
			continue
		}
		text := Splice(doc.Text, pos, pos, insertion)
		return doc.WithText(text), Result{Outcome: Inserted, Anchor: anchor.Name}, nil
	}

	return doc, Result{Outcome: Unchanged}, &StructureError{
		Document: doc.Name,
		Reason:   fmt.Sprintf("no anchor found for %q", rule.Directive),
	}
}

// locate returns the insertion offset and the exact text to insert.
func (a Anchor) locate(text, directive, lineEnding string) (int, string, bool) {
	sep := a.Separator
	if sep == "" {
		sep = "\n"
	}
	sep = finalizer.ToLineEnding(sep, lineEnding)

	switch a.Placement {
	case Prepend:
		return 0, directive + sep, true
	case Append:
		if text == "" {
			return 0, directive + lineEnding, true
		}
		prefix := ""
		if !strings.HasSuffix(text, "\n") {
			prefix = lineEnding
		}
		return len(text), prefix + directive + lineEnding, true
	}

	if a.Pattern == nil {
		return 0, "", false
	}

	switch a.Placement {
	case AfterLast:
		matches := a.Pattern.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			return 0, "", false
		}
		return matches[len(matches)-1][1], sep + directive, true
	case AfterFirst:
		loc := a.Pattern.FindStringIndex(text)
		if loc == nil {
			return 0, "", false
		}
		return loc[1], sep + directive, true
	case BeforeFirst:
		loc := a.Pattern.FindStringIndex(text)
		if loc == nil {
			return 0, "", false
		}
		return loc[0], directive + sep, true
	}
	return 0, "", false
}
