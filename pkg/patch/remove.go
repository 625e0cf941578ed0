package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fulmenhq/themekit/pkg/format/finalizer"
)

// Remove deletes every match of pattern together with the line break that
// follows it, then collapses runs of blank lines left behind. A match at the
// start of the document also takes the blank lines after it. A document with
// no match is returned untouched with outcome NotFound.
func Remove(doc Document, pattern *regexp.Regexp) (Document, Result) {
	matches := pattern.FindAllStringIndex(doc.Text, -1)
	if len(matches) == 0 {
		return doc, Result{Outcome: NotFound}
	}

	text := doc.Text
	for i := len(matches) - 1; i >= 0; i-- {
		start, end := matches[i][0], extendLineBreak(text, matches[i][1])
		if start == 0 {
			end = len(text) - len(strings.TrimLeft(text[end:], "\r\n"))
		}
		text = Splice(text, start, end, "")
	}
	text, _ = finalizer.CollapseBlankRuns(text)

	return doc.WithText(text), Result{Outcome: Removed, Count: len(matches)}
}

// BlockSpec identifies a delimited block such as `@layer utilities { ... }`.
type BlockSpec struct {
	// Header matches the text that introduces the block, up to but not
	// including the opening delimiter.
	Header *regexp.Regexp
	Open   byte
	Syntax Syntax
	// Match must match the block body for the block to be removed. A nil
	// Match removes every block introduced by Header.
	Match *regexp.Regexp
}

// RemoveBlock deletes every balanced block described by spec. If any candidate
// block is unbalanced nothing is deleted and a *StructureError is returned.
func RemoveBlock(doc Document, spec BlockSpec) (Document, Result, error) {
	var spans []Span
	for _, loc := range spec.Header.FindAllStringIndex(doc.Text, -1) {
		open := skipSpace(doc.Text, loc[1])
		if open >= len(doc.Text) || doc.Text[open] != spec.Open {
			continue
		}
		end, ok := MatchDelimiter(doc.Text, open, spec.Syntax)
		if !ok {
			return doc, Result{Outcome: Unchanged}, &StructureError{
				Document: doc.Name,
				Reason:   fmt.Sprintf("unbalanced block at offset %d", loc[0]),
			}
		}
		if spec.Match != nil && !spec.Match.MatchString(doc.Text[open:end]) {
			continue
		}
		spans = append(spans, Span{Start: loc[0], End: end})
	}
	if len(spans) == 0 {
		return doc, Result{Outcome: NotFound}, nil
	}

	text := doc.Text
	for i := len(spans) - 1; i >= 0; i-- {
		text = Splice(text, spans[i].Start, extendLineBreak(text, spans[i].End), "")
	}
	text, _ = finalizer.CollapseBlankRuns(text)

	return doc.WithText(text), Result{Outcome: Removed, Count: len(spans)}, nil
}

// extendLineBreak moves end past a single line break directly after it.
func extendLineBreak(text string, end int) int {
	if end > 0 && text[end-1] == '\n' {
		return end
	}
	switch {
	case strings.HasPrefix(text[end:], "\r\n"):
		return end + 2
	case strings.HasPrefix(text[end:], "\n"):
		return end + 1
	}
	return end
}

func skipSpace(text string, i int) int {
	for i < len(text) && strings.IndexByte(" \t\r\n", text[i]) >= 0 {
		i++
	}
	return i
}
