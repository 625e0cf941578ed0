// Package registry edits the theme registry module: a TypeScript file holding a
// string-literal union of theme ids and an array of theme records. Edits are
// computed on parsed spans so that text outside the touched member or entry is
// preserved byte for byte.
package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fulmenhq/themekit/pkg/patch"
)

// Shape names the declarations the editor looks for.
type Shape struct {
	// TypeName is the union type listing theme ids.
	TypeName string
	// ListName is the exported array of theme records.
	ListName string
}

// DefaultShape matches the scaffolded themes.ts.
var DefaultShape = Shape{TypeName: "ColorTheme", ListName: "themes"}

// Member is one literal of the union.
type Member struct {
	ID    string
	Quote byte
	// Span covers the literal and, for all but an unpiped first member, the
	// pipe in front of it.
	Span     patch.Span
	LitStart int
}

// Union is the parsed `export type ColorTheme = ...` declaration.
type Union struct {
	Start     int
	End       int
	Never     bool
	Multiline bool
	Members   []Member
}

// Has reports whether id is a member.
func (u *Union) Has(id string) bool {
	return u.index(id) >= 0
}

func (u *Union) index(id string) int {
	for i, m := range u.Members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Entry is one record block of the theme array.
type Entry struct {
	ID          string
	Name        string
	Description string
	Span        patch.Span
	// SepEnd is the offset after the comma following the entry, or Span.End
	// when no comma follows.
	SepEnd int
}

// List is the parsed `export const themes = [...]` array.
type List struct {
	Open          int
	Close         int
	Entries       []Entry
	TrailingComma bool
	Indent        string
	BaseIndent    string
	// Step is one level of indentation inside an entry.
	Step  string
	Quote byte
}

func (l *List) index(id string) int {
	for i, e := range l.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Structure is the parsed view of a registry document. Union is nil when the
// document declares no id union.
type Structure struct {
	Union *Union
	List  *List
}

var (
	idField          = fieldPattern("id")
	nameField        = fieldPattern("name")
	descriptionField = fieldPattern("description")
)

func fieldPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + name + `\s*:\s*(?:"((?:\\.|[^"\\\n])*)"|'((?:\\.|[^'\\\n])*)')`)
}

// fieldValue returns the first string value of the field matched by re.
func fieldValue(re *regexp.Regexp, body string) (string, byte, bool) {
	m := re.FindStringSubmatchIndex(body)
	if m == nil {
		return "", 0, false
	}
	if m[2] >= 0 {
		return unquote(body[m[2]:m[3]], '"'), '"', true
	}
	return unquote(body[m[4]:m[5]], '\''), '\'', true
}

// Parse locates the union and the array in doc.
func (s Shape) Parse(doc patch.Document) (*Structure, error) {
	union, err := s.parseUnion(doc)
	if err != nil {
		return nil, err
	}
	list, err := s.parseList(doc)
	if err != nil {
		return nil, err
	}
	if union != nil && len(union.Members) > 0 && list.Quote == 0 {
		list.Quote = union.Members[len(union.Members)-1].Quote
	}
	if list.Quote == 0 {
		list.Quote = documentQuote(doc.Text)
	}
	return &Structure{Union: union, List: list}, nil
}

func (s Shape) parseUnion(doc patch.Document) (*Union, error) {
	decl := regexp.MustCompile(`export\s+type\s+` + regexp.QuoteMeta(s.TypeName) + `\s*=`)
	text := doc.Text
	loc := decl.FindStringIndex(text)
	if loc == nil {
		return nil, nil
	}

	u := &Union{Start: skipSpace(text, loc[1])}
	u.Multiline = strings.Contains(text[loc[1]:u.Start], "\n")
	if strings.HasPrefix(text[u.Start:], "never") {
		u.Never = true
		u.End = u.Start + len("never")
		return u, nil
	}

	for i := u.Start; ; {
		lit := i
		if lit < len(text) && text[lit] == '|' {
			lit = skipSpace(text, lit+1)
		}
		if lit >= len(text) || (text[lit] != '"' && text[lit] != '\'') {
			if len(u.Members) == 0 {
				return nil, &patch.StructureError{Document: doc.Name, Reason: fmt.Sprintf("%s is not a union of string literals", s.TypeName)}
			}
			break
		}
		end, ok := literalEnd(text, lit)
		if !ok {
			return nil, &patch.StructureError{Document: doc.Name, Reason: fmt.Sprintf("unterminated literal in %s", s.TypeName)}
		}
		u.Members = append(u.Members, Member{
			ID:       unquote(text[lit+1:end-1], text[lit]),
			Quote:    text[lit],
			Span:     patch.Span{Start: i, End: end},
			LitStart: lit,
		})
		u.End = end

		next := skipSpace(text, end)
		if next >= len(text) || text[next] != '|' {
			break
		}
		if strings.Contains(text[end:next], "\n") {
			u.Multiline = true
		}
		i = next
	}
	return u, nil
}

func (s Shape) parseList(doc patch.Document) (*List, error) {
	decl := regexp.MustCompile(`export\s+const\s+` + regexp.QuoteMeta(s.ListName) + `\b[^=;]*=`)
	text := doc.Text
	loc := decl.FindStringIndex(text)
	if loc == nil {
		return nil, &patch.StructureError{Document: doc.Name, Reason: fmt.Sprintf("no exported %s array", s.ListName)}
	}
	open := skipSpace(text, loc[1])
	if open >= len(text) || text[open] != '[' {
		return nil, &patch.StructureError{Document: doc.Name, Reason: fmt.Sprintf("%s is not an array literal", s.ListName)}
	}
	closeEnd, ok := patch.MatchDelimiter(text, open, patch.SyntaxScript)
	if !ok {
		return nil, &patch.StructureError{Document: doc.Name, Reason: fmt.Sprintf("unbalanced %s array", s.ListName)}
	}

	l := &List{Open: open, Close: closeEnd - 1, BaseIndent: lineIndent(text, loc[0]), TrailingComma: true}
	l.Step = indentUnit(text)
	l.Indent = l.BaseIndent + l.Step

	spans, err := patch.ScanBlocks(text, open+1, l.Close, '{', patch.SyntaxScript)
	if err != nil {
		return nil, &patch.StructureError{Document: doc.Name, Reason: fmt.Sprintf("%s array: %v", s.ListName, err)}
	}
	for _, span := range spans {
		body := span.Text(text)
		entry := Entry{Span: span, SepEnd: span.End}
		if id, q, ok := fieldValue(idField, body); ok {
			entry.ID = id
			if l.Quote == 0 {
				l.Quote = q
			}
		}
		entry.Name, _, _ = fieldValue(nameField, body)
		entry.Description, _, _ = fieldValue(descriptionField, body)
		if next := skipSpace(text, span.End); next < l.Close && text[next] == ',' {
			entry.SepEnd = next + 1
		}
		l.Entries = append(l.Entries, entry)
	}

	if n := len(l.Entries); n > 0 {
		l.Indent = lineIndent(text, l.Entries[0].Span.Start)
		if step := entryStep(text, l.Entries[0].Span); step != "" {
			l.Step = step
		}
		l.TrailingComma = l.Entries[n-1].SepEnd > l.Entries[n-1].Span.End
	}
	return l, nil
}

// literalEnd returns the offset after the quote closing the literal at open.
func literalEnd(text string, open int) (int, bool) {
	q := text[open]
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case q:
			return i + 1, true
		case '\n':
			return 0, false
		}
	}
	return 0, false
}

func quote(s string, q byte) string {
	escaped := strings.NewReplacer(`\`, `\\`, string(q), `\`+string(q)).Replace(s)
	return string(q) + escaped + string(q)
}

func unquote(s string, q byte) string {
	return strings.NewReplacer(`\`+string(q), string(q), `\\`, `\`).Replace(s)
}

// lineIndent returns the leading whitespace of the line containing pos.
func lineIndent(text string, pos int) string {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := start
	for end < pos && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[start:end]
}

// indentUnit returns the leading whitespace of the first indented line, or
// two spaces.
func indentUnit(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != line && strings.TrimSpace(trimmed) != "" {
			return line[:len(line)-len(trimmed)]
		}
	}
	return "  "
}

// entryStep returns the extra indentation of the first field inside the
// entry at span, or "" for a single-line entry.
func entryStep(text string, span patch.Span) string {
	outer := lineIndent(text, span.Start)
	body := span.Text(text)
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return ""
	}
	for _, line := range strings.Split(body[nl+1:], "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		inner := line[:len(line)-len(trimmed)]
		if len(inner) > len(outer) && strings.HasPrefix(inner, outer) {
			return inner[len(outer):]
		}
		return ""
	}
	return ""
}

// documentQuote returns the quote character of the first string literal in
// text outside comments, or a double quote.
func documentQuote(text string) byte {
	for i := 0; i < len(text); i++ {
		switch {
		case strings.HasPrefix(text[i:], "//"):
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				return '"'
			}
			i += nl
		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return '"'
			}
			i += end + 3
		case text[i] == '"' || text[i] == '\'':
			if _, ok := literalEnd(text, i); ok {
				return text[i]
			}
		}
	}
	return '"'
}

func skipSpace(text string, i int) int {
	for i < len(text) && strings.IndexByte(" \t\r\n", text[i]) >= 0 {
		i++
	}
	return i
}
