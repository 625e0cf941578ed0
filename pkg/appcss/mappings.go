package appcss

import (
	"regexp"
	"strings"

	"github.com/fulmenhq/themekit/pkg/patch"
)

const (
	legacySidebarMapping = "--color-sidebar: var(--sidebar-background);"
	sidebarMapping       = "--color-sidebar: var(--sidebar);"
	bodyApply            = "@apply bg-background text-foreground;"
	bodyApplyWithFont    = "@apply bg-background text-foreground font-sans;"
	themeMappingMarker   = "--shadow-2xs: var(--shadow-2xs);"
	rootDefaultsMarker   = "--shadow-2xs: 0 1px rgb(0 0 0 / 0.05);"
)

const themeMappings = `    /* Shadow mappings for theme support */
    --shadow-2xs: var(--shadow-2xs);
    --shadow-xs: var(--shadow-xs);
    --shadow-sm: var(--shadow-sm);
    --shadow: var(--shadow);
    --shadow-md: var(--shadow-md);
    --shadow-lg: var(--shadow-lg);
    --shadow-xl: var(--shadow-xl);
    --shadow-2xl: var(--shadow-2xl);

    /* Font mappings for theme support */
    --font-sans: var(--font-sans);
    --font-mono: var(--font-mono);
    --font-serif: var(--font-serif);`

const rootDefaults = `    /* Default fonts */
    --font-sans: 'Instrument Sans', ui-sans-serif, system-ui, sans-serif, 'Apple Color Emoji', 'Segoe UI Emoji', 'Segoe UI Symbol', 'Noto Color Emoji';
    --font-mono: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, 'Liberation Mono', 'Courier New', monospace;
    --font-serif: ui-serif, Georgia, Cambria, 'Times New Roman', Times, serif;

    /* Default shadows */
    --shadow-2xs: 0 1px rgb(0 0 0 / 0.05);
    --shadow-xs: 0 1px 2px 0 rgb(0 0 0 / 0.05);
    --shadow-sm: 0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1);
    --shadow: 0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1);
    --shadow-md: 0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1);
    --shadow-lg: 0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1);
    --shadow-xl: 0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1);
    --shadow-2xl: 0 25px 50px -12px rgb(0 0 0 / 0.25);`

var (
	fontOverrideBlock = patch.BlockSpec{
		Header: regexp.MustCompile(`@layer\s+utilities\s*`),
		Open:   '{',
		Match:  regexp.MustCompile(`(?s)body\s*,\s*html\s*\{[^}]*--font-sans:`),
	}
	themeBlock = patch.BlockSpec{Header: regexp.MustCompile(`@theme(?:\s+inline)?\s*`), Open: '{'}
	rootBlock  = patch.BlockSpec{Header: regexp.MustCompile(`:root\s*`), Open: '{'}
)

// Step is the outcome of one mapping adjustment.
type Step struct {
	Name   string
	Result patch.Result
}

// EnsureThemeMappings prepares a starter-kit stylesheet for theme files: it
// points the sidebar colour at --sidebar, drops utility blocks that pin the
// body font, applies font-sans to the body, and adds shadow and font mappings
// plus their defaults. Each adjustment is skipped when already in place.
func EnsureThemeMappings(doc patch.Document) (patch.Document, []Step, error) {
	var steps []Step
	record := func(name string, res patch.Result) {
		steps = append(steps, Step{Name: name, Result: res})
	}

	doc, res := patch.Replace(doc, legacySidebarMapping, sidebarMapping)
	record("sidebar mapping", res)

	doc, res, err := patch.RemoveBlock(doc, fontOverrideBlock)
	if err != nil {
		return doc, steps, err
	}
	record("font override", res)

	if strings.Contains(doc.Text, bodyApply) && !strings.Contains(doc.Text, "font-sans") {
		doc, res = patch.Replace(doc, bodyApply, bodyApplyWithFont)
	} else {
		res = patch.Result{Outcome: patch.AlreadyPresent}
	}
	record("body font", res)

	res = patch.Result{Outcome: patch.AlreadyPresent}
	if !strings.Contains(doc.Text, themeMappingMarker) {
		doc, res, err = patch.AppendToBlock(doc, themeBlock, themeMappings)
		if err != nil {
			return doc, steps, err
		}
	}
	record("theme mappings", res)

	res = patch.Result{Outcome: patch.AlreadyPresent}
	if !strings.Contains(doc.Text, rootDefaultsMarker) {
		doc, res, err = patch.AppendToBlock(doc, rootBlock, rootDefaults)
		if err != nil {
			return doc, steps, err
		}
	}
	record("root defaults", res)

	return doc, steps, nil
}
