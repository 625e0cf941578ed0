package patch

import "fmt"

// Syntax selects which comment forms the block scanner skips.
type Syntax int

const (
	// SyntaxCSS skips quoted strings and /* */ comments.
	SyntaxCSS Syntax = iota
	// SyntaxScript additionally skips // line comments and template literals.
	SyntaxScript
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Text returns the spanned text.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

var closers = map[byte]byte{'{': '}', '[': ']', '(': ')'}

// MatchDelimiter returns the offset just past the delimiter that closes the one
// at text[open]. Delimiters inside strings and comments are ignored.
func MatchDelimiter(text string, open int, syntax Syntax) (int, bool) {
	if open < 0 || open >= len(text) {
		return 0, false
	}
	opener := text[open]
	closer, ok := closers[opener]
	if !ok {
		return 0, false
	}

	depth := 0
	for i := open; i < len(text); {
		if next, skipped := skipNonCode(text, i, syntax); skipped {
			i = next
			continue
		}
		switch text[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// ScanBlocks returns the top-level balanced blocks opened by opener inside
// text[from:to]. An unbalanced block is an error; nothing partial is returned.
func ScanBlocks(text string, from, to int, opener byte, syntax Syntax) ([]Span, error) {
	if _, ok := closers[opener]; !ok {
		return nil, fmt.Errorf("unsupported block delimiter %q", opener)
	}
	if to > len(text) {
		to = len(text)
	}

	var spans []Span
	for i := from; i < to; {
		if next, skipped := skipNonCode(text, i, syntax); skipped {
			i = next
			continue
		}
		if text[i] != opener {
			i++
			continue
		}
		end, ok := MatchDelimiter(text, i, syntax)
		if !ok || end > to {
			return nil, &StructureError{Reason: fmt.Sprintf("unbalanced %q block at offset %d", opener, i)}
		}
		spans = append(spans, Span{Start: i, End: end})
		i = end
	}
	return spans, nil
}

// skipNonCode reports whether a string literal or comment starts at i and, if
// so, the offset just past it. An unterminated literal runs to the end of text.
func skipNonCode(text string, i int, syntax Syntax) (int, bool) {
	c := text[i]
	switch {
	case c == '"' || c == '\'' || (c == '`' && syntax == SyntaxScript):
		for j := i + 1; j < len(text); j++ {
			switch text[j] {
			case '\\':
				j++
			case c:
				return j + 1, true
			case '\n':
				if c != '`' {
					return j, true
				}
			}
		}
		return len(text), true
	case c == '/' && i+1 < len(text) && text[i+1] == '*':
		for j := i + 2; j+1 < len(text); j++ {
			if text[j] == '*' && text[j+1] == '/' {
				return j + 2, true
			}
		}
		return len(text), true
	case c == '/' && i+1 < len(text) && text[i+1] == '/' && syntax == SyntaxScript:
		for j := i + 2; j < len(text); j++ {
			if text[j] == '\n' {
				return j, true
			}
		}
		return len(text), true
	}
	return i, false
}
