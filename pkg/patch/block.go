package patch

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/themekit/pkg/format/finalizer"
)

// Replace substitutes every occurrence of old with replacement.
func Replace(doc Document, old, replacement string) (Document, Result) {
	n := strings.Count(doc.Text, old)
	if old == "" || n == 0 {
		return doc, Result{Outcome: NotFound}
	}
	return doc.WithText(strings.ReplaceAll(doc.Text, old, replacement)), Result{Outcome: Replaced, Count: n}
}

// AppendToBlock inserts body on its own lines just before the closing
// delimiter of the first block described by spec.
func AppendToBlock(doc Document, spec BlockSpec, body string) (Document, Result, error) {
	text := doc.Text
	for _, loc := range spec.Header.FindAllStringIndex(text, -1) {
		open := skipSpace(text, loc[1])
		if open >= len(text) || text[open] != spec.Open {
			continue
		}
		end, ok := MatchDelimiter(text, open, spec.Syntax)
		if !ok {
			return doc, Result{Outcome: Unchanged}, &StructureError{
				Document: doc.Name,
				Reason:   fmt.Sprintf("unbalanced block at offset %d", loc[0]),
			}
		}
		if spec.Match != nil && !spec.Match.MatchString(text[open:end]) {
			continue
		}

		insertion := finalizer.ToLineEnding("\n"+body+"\n", finalizer.DetectLineEnding(text))
		return doc.WithText(Splice(text, end-1, end-1, insertion)), Result{Outcome: Inserted}, nil
	}
	return doc, Result{Outcome: NotFound}, nil
}
