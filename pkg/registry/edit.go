package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/fulmenhq/themekit/pkg/format/finalizer"
	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/theme"
)

const entrySource = `{
  id: {{{id}}},
  name: {{{name}}},
  description: {{{description}}},
  font: {{{font}}},
  colors: {
    primary: {{{primary}}},
    secondary: {{{secondary}}},
    accent: {{{accent}}},
  },
}`

var entryTemplate = raymond.MustParse(entrySource)

// RenderEntry renders rec as an array entry. Lines after the first are
// prefixed with indent, and each nesting level inside the entry adds step.
func RenderEntry(rec theme.Record, q byte, indent, step string) (string, error) {
	out, err := entryTemplate.Exec(map[string]interface{}{
		"id":          quote(rec.ID, q),
		"name":        quote(rec.Name, q),
		"description": quote(rec.Description, q),
		"font":        quote(rec.Font, q),
		"primary":     quote(rec.Colors.Primary, q),
		"secondary":   quote(rec.Colors.Secondary, q),
		"accent":      quote(rec.Colors.Accent, q),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render registry entry: %w", err)
	}
	lines := strings.Split(out, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " ")
		depth := (len(lines[i]) - len(trimmed)) / 2
		lines[i] = indent + strings.Repeat(step, depth) + trimmed
	}
	return strings.Join(lines, "\n"), nil
}

// AddMember adds id to the union. A document without a union is returned
// unchanged with outcome NotFound.
func (s Shape) AddMember(doc patch.Document, id string) (patch.Document, patch.Result, error) {
	st, err := s.Parse(doc)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	u := st.Union
	if u == nil {
		return doc, patch.Result{Outcome: patch.NotFound}, nil
	}
	if u.Has(id) {
		return doc, patch.Result{Outcome: patch.AlreadyPresent}, nil
	}

	q := st.List.Quote
	if n := len(u.Members); n > 0 {
		q = u.Members[n-1].Quote
	}
	literal := quote(id, q)

	var text string
	switch {
	case u.Never || len(u.Members) == 0:
		text = patch.Splice(doc.Text, u.Start, u.End, literal)
	case u.Multiline:
		last := u.Members[len(u.Members)-1]
		insertion := "\n" + lineIndent(doc.Text, last.Span.Start) + "| " + literal
		text = patch.Splice(doc.Text, u.End, u.End, toDocLineEnding(doc, insertion))
	default:
		text = patch.Splice(doc.Text, u.End, u.End, " | "+literal)
	}
	return doc.WithText(text), patch.Result{Outcome: patch.Inserted, Count: 1}, nil
}

// RemoveMember drops id from the union. Removing the last member leaves
// `never`.
func (s Shape) RemoveMember(doc patch.Document, id string) (patch.Document, patch.Result, error) {
	st, err := s.Parse(doc)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	u := st.Union
	if u == nil {
		return doc, patch.Result{Outcome: patch.NotFound}, nil
	}
	i := u.index(id)
	if i < 0 {
		return doc, patch.Result{Outcome: patch.NotFound}, nil
	}

	var text string
	switch {
	case len(u.Members) == 1:
		text = patch.Splice(doc.Text, u.Start, u.End, "never")
	case i > 0:
		text = patch.Splice(doc.Text, u.Members[i-1].Span.End, u.Members[i].Span.End, "")
	default:
		first, next := u.Members[0], u.Members[1]
		end := next.LitStart
		if doc.Text[first.Span.Start] == '|' {
			end = next.Span.Start
		}
		text = patch.Splice(doc.Text, first.Span.Start, end, "")
	}
	return doc.WithText(text), patch.Result{Outcome: patch.Removed, Count: 1}, nil
}

// AddEntry appends rec to the array. An entry with the same id is left alone
// unless replace is set, in which case it is rewritten in place.
func (s Shape) AddEntry(doc patch.Document, rec theme.Record, replace bool) (patch.Document, patch.Result, error) {
	st, err := s.Parse(doc)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	l := st.List

	if i := l.index(rec.ID); i >= 0 {
		if !replace {
			return doc, patch.Result{Outcome: patch.AlreadyPresent}, nil
		}
		e := l.Entries[i]
		block, err := RenderEntry(rec, l.Quote, lineIndent(doc.Text, e.Span.Start), l.Step)
		if err != nil {
			return doc, patch.Result{Outcome: patch.Unchanged}, err
		}
		text := patch.Splice(doc.Text, e.Span.Start, e.Span.End, toDocLineEnding(doc, block))
		return doc.WithText(text), patch.Result{Outcome: patch.Replaced, Count: 1}, nil
	}

	block, err := RenderEntry(rec, l.Quote, l.Indent, l.Step)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}

	var text string
	switch n := len(l.Entries); {
	case n == 0:
		insertion := "\n" + l.Indent + block + ",\n" + l.BaseIndent
		start, end := l.Open+1, l.Close
		if strings.TrimSpace(doc.Text[start:end]) != "" {
			end = start
		}
		text = patch.Splice(doc.Text, start, end, toDocLineEnding(doc, insertion))
	case l.TrailingComma:
		last := l.Entries[n-1]
		text = patch.Splice(doc.Text, last.SepEnd, last.SepEnd, toDocLineEnding(doc, "\n"+l.Indent+block+","))
	default:
		last := l.Entries[n-1]
		text = patch.Splice(doc.Text, last.Span.End, last.Span.End, toDocLineEnding(doc, ",\n"+l.Indent+block))
	}
	return doc.WithText(text), patch.Result{Outcome: patch.Inserted, Count: 1}, nil
}

// RemoveEntry deletes every entry whose id matches, then tidies separators
// between the remaining entries.
func (s Shape) RemoveEntry(doc patch.Document, id string) (patch.Document, patch.Result, error) {
	removed := 0
	for {
		st, err := s.Parse(doc)
		if err != nil {
			return doc, patch.Result{Outcome: patch.Unchanged}, err
		}
		l := st.List
		i := l.index(id)
		if i < 0 {
			break
		}
		doc = doc.WithText(removeEntryAt(doc.Text, l, i))
		removed++
	}
	if removed == 0 {
		return doc, patch.Result{Outcome: patch.NotFound}, nil
	}

	doc, err := s.normalizeSeparators(doc)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	return doc, patch.Result{Outcome: patch.Removed, Count: removed}, nil
}

func removeEntryAt(text string, l *List, i int) string {
	e := l.Entries[i]
	switch {
	case len(l.Entries) == 1:
		return patch.Splice(text, l.Open+1, l.Close, "")
	case i == 0:
		return patch.Splice(text, e.Span.Start, l.Entries[1].Span.Start, "")
	case e.SepEnd > e.Span.End:
		return patch.Splice(text, l.Entries[i-1].SepEnd, e.SepEnd, "")
	default:
		return patch.Splice(text, l.Entries[i-1].Span.End, e.Span.End, "")
	}
}

var (
	doubleComma  = regexp.MustCompile(`,\s*,`)
	leadingComma = regexp.MustCompile(`^\s*,`)
)

// normalizeSeparators collapses doubled commas between entries and drops a
// comma directly after the opening bracket. Entry bodies are not touched.
func (s Shape) normalizeSeparators(doc patch.Document) (patch.Document, error) {
	st, err := s.Parse(doc)
	if err != nil {
		return doc, err
	}
	l := st.List

	gaps := make([]patch.Span, 0, len(l.Entries)+1)
	start := l.Open + 1
	for _, e := range l.Entries {
		gaps = append(gaps, patch.Span{Start: start, End: e.Span.Start})
		start = e.Span.End
	}
	gaps = append(gaps, patch.Span{Start: start, End: l.Close})

	text := doc.Text
	for i := len(gaps) - 1; i >= 0; i-- {
		gap := gaps[i]
		cleaned := doubleComma.ReplaceAllString(gap.Text(text), ",")
		if i == 0 {
			cleaned = leadingComma.ReplaceAllString(cleaned, "")
		}
		text = patch.Splice(text, gap.Start, gap.End, cleaned)
	}
	return doc.WithText(text), nil
}

// Add registers rec in both the union and the array.
func (s Shape) Add(doc patch.Document, rec theme.Record, replace bool) (patch.Document, patch.Result, error) {
	withMember, unionRes, err := s.AddMember(doc, rec.ID)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	out, listRes, err := s.AddEntry(withMember, rec, replace)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	return out, combine(unionRes, listRes), nil
}

// Remove deletes id from both the union and the array.
func (s Shape) Remove(doc patch.Document, id string) (patch.Document, patch.Result, error) {
	withoutMember, unionRes, err := s.RemoveMember(doc, id)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	out, listRes, err := s.RemoveEntry(withoutMember, id)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	return out, combine(unionRes, listRes), nil
}

// Entries lists the records in the array.
func (s Shape) Entries(doc patch.Document) ([]Entry, error) {
	st, err := s.Parse(doc)
	if err != nil {
		return nil, err
	}
	return st.List.Entries, nil
}

// combine reports the array outcome unless only the union changed.
func combine(union, list patch.Result) patch.Result {
	count := 0
	for _, r := range []patch.Result{union, list} {
		if r.Outcome.Changed() {
			count += r.Count
		}
	}
	out := list
	if !list.Outcome.Changed() && union.Outcome.Changed() {
		out = union
	}
	out.Count = count
	return out
}

func toDocLineEnding(doc patch.Document, s string) string {
	return finalizer.ToLineEnding(s, finalizer.DetectLineEnding(doc.Text))
}
