package theme

import (
	"net/url"
	"strings"
)

// DefaultFontProvider is the stylesheet URL template; {family} is replaced with
// the query-escaped family name.
const DefaultFontProvider = "https://fonts.googleapis.com/css2?family={family}&display=swap"

// DefaultFontKeys are the variables inspected for web fonts.
var DefaultFontKeys = []string{"font-sans", "font-serif", "font-mono"}

var genericFamilies = map[string]bool{
	"serif":         true,
	"sans-serif":    true,
	"monospace":     true,
	"cursive":       true,
	"fantasy":       true,
	"system-ui":     true,
	"ui-sans-serif": true,
	"ui-serif":      true,
	"ui-monospace":  true,
	"inherit":       true,
}

// FontImport is one remote stylesheet import for a font family.
type FontImport struct {
	Family    string
	Directive string
}

// FontOptions controls which variables are scanned and where imports point.
type FontOptions struct {
	Keys     []string
	Sections []Section
	Provider string
}

// PrimaryFamily returns the first entry of a font-family list with quotes and
// surrounding whitespace removed.
func PrimaryFamily(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

// IsGenericFamily reports whether name is a CSS generic or system family that
// no font provider serves.
func IsGenericFamily(name string) bool {
	return genericFamilies[strings.ToLower(strings.TrimSpace(name))]
}

// FontImportDirective renders the import directive for family.
func FontImportDirective(family, provider string) string {
	if provider == "" {
		provider = DefaultFontProvider
	}
	href := strings.ReplaceAll(provider, "{family}", url.QueryEscape(family))
	return "@import url('" + href + "');"
}

// DeriveFontImports returns one import per distinct web font family named by
// the configured variables, in key order. For each key the first non-empty value
// across the sections (in priority order) decides; generic families and var()
// references yield nothing.
func DeriveFontImports(vars CSSVars, opts FontOptions) []FontImport {
	keys := opts.Keys
	if len(keys) == 0 {
		keys = DefaultFontKeys
	}
	sections := opts.Sections
	if len(sections) == 0 {
		sections = []Section{SectionTheme, SectionLight, SectionDark}
	}

	var imports []FontImport
	seen := make(map[string]bool)
	for _, key := range keys {
		family := PrimaryFamily(firstValue(vars, sections, key))
		if family == "" || strings.HasPrefix(family, "var(") || IsGenericFamily(family) {
			continue
		}
		if seen[family] {
			continue
		}
		seen[family] = true
		imports = append(imports, FontImport{
			Family:    family,
			Directive: FontImportDirective(family, opts.Provider),
		})
	}
	return imports
}

func firstValue(vars CSSVars, sections []Section, key string) string {
	for _, section := range sections {
		if value, ok := vars.Section(section).Get(key); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
