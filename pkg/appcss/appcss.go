// Package appcss maintains the application stylesheet: theme imports, font
// imports, and the variable mappings theme files rely on.
package appcss

import (
	"regexp"

	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/theme"
)

var (
	themeImportPattern = regexp.MustCompile(`@import\s+["']\./themes/[^"']+\.css["'];?`)
	animatePattern     = regexp.MustCompile(`@import\s+["']tw-animate-css["'];?`)
	tailwindPattern    = regexp.MustCompile(`@import\s+["']tailwindcss["'];?`)
	sourcePattern      = regexp.MustCompile(`@source\b`)
)

// ThemeImport returns the import directive for a theme stylesheet.
func ThemeImport(id string) string {
	return "@import './themes/" + id + ".css';"
}

func themeImportMatcher(id string) *regexp.Regexp {
	return regexp.MustCompile(`@import\s+["'](?:\./themes/|\.\./css/themes/)` + regexp.QuoteMeta(id) + `\.css["'];?`)
}

// ThemeImportRule places a theme import after the last theme import, else
// after the tw-animate-css import, else before @source, else at the top.
func ThemeImportRule(id string) patch.Rule {
	return patch.Rule{
		Directive:  ThemeImport(id),
		Equivalent: []*regexp.Regexp{themeImportMatcher(id)},
		Anchors: []patch.Anchor{
			{Name: "theme imports", Pattern: themeImportPattern, Placement: patch.AfterLast},
			{Name: "tw-animate-css", Pattern: animatePattern, Placement: patch.AfterFirst, Separator: "\n\n"},
			{Name: "@source", Pattern: sourcePattern, Placement: patch.BeforeFirst, Separator: "\n\n"},
			{Name: "top", Placement: patch.Prepend},
		},
	}
}

// AddThemeImport imports the stylesheet of theme id once.
func AddThemeImport(doc patch.Document, id string) (patch.Document, patch.Result, error) {
	return patch.InsertOnce(doc, ThemeImportRule(id))
}

// RemoveThemeImport drops every import of theme id, in either path form.
func RemoveThemeImport(doc patch.Document, id string) (patch.Document, patch.Result) {
	return patch.Remove(doc, regexp.MustCompile(themeImportMatcher(id).String()+`[ \t]*`))
}

// FontImportRule places a font import before the tailwindcss import, else
// before the tw-animate-css import, else at the top.
func FontImportRule(fi theme.FontImport) patch.Rule {
	return patch.Rule{
		Directive: fi.Directive,
		Anchors: []patch.Anchor{
			{Name: "tailwindcss", Pattern: tailwindPattern, Placement: patch.BeforeFirst},
			{Name: "tw-animate-css", Pattern: animatePattern, Placement: patch.BeforeFirst},
			{Name: "top", Placement: patch.Prepend},
		},
	}
}

// AddFontImports adds each font import once. The result reports how many were
// inserted.
func AddFontImports(doc patch.Document, imports []theme.FontImport) (patch.Document, patch.Result, error) {
	inserted := 0
	for _, fi := range imports {
		next, res, err := patch.InsertOnce(doc, FontImportRule(fi))
		if err != nil {
			return doc, patch.Result{Outcome: patch.Unchanged}, err
		}
		if res.Outcome == patch.Inserted {
			inserted++
		}
		doc = next
	}
	if inserted == 0 {
		return doc, patch.Result{Outcome: patch.AlreadyPresent}, nil
	}
	return doc, patch.Result{Outcome: patch.Inserted, Count: inserted}, nil
}
