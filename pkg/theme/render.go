package theme

import (
	"fmt"
	"strings"
)

// Mode is a colour-scheme variant.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// DefaultMergeSensitive are common variables dropped when the mode section
// declares them too.
var DefaultMergeSensitive = []string{"radius"}

// RenderOptions tunes RenderCSS.
type RenderOptions struct {
	// FontImports are written at the top of the stylesheet.
	FontImports []FontImport
	// MergeSensitive names common variables omitted from the light block when
	// the light section also declares them. Nil means DefaultMergeSensitive.
	MergeSensitive []string
	// SuppressEmpty skips a mode block whose variables are all empty.
	SuppressEmpty bool
}

// Selectors returns the selector list scoping a theme in the given mode.
func Selectors(id string, mode Mode) []string {
	if mode == ModeDark {
		return []string{":root.dark.theme-" + id, ".dark.theme-" + id}
	}
	return []string{":root.theme-" + id, ".theme-" + id}
}

// RenderBlock renders one rule block. Common variables come first, minus any
// merge-sensitive name that specific also declares; specific variables follow
// so that a repeated name resolves to the mode value.
func RenderBlock(id string, mode Mode, common, specific Vars, mergeSensitive []string) string {
	skip := make(map[string]bool, len(mergeSensitive))
	for _, name := range mergeSensitive {
		if specific.Has(name) {
			skip[name] = true
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(Selectors(id, mode), ",\n"))
	b.WriteString(" {\n")
	common.Each(func(name, value string) {
		if !skip[name] {
			writeDeclaration(&b, "  ", "--"+name, value)
		}
	})
	specific.Each(func(name, value string) {
		writeDeclaration(&b, "  ", "--"+name, value)
	})
	b.WriteString("}\n")
	return b.String()
}

// RenderCSS renders the complete stylesheet for a theme: font imports, the light
// block (common plus light variables), the dark block, and any base-layer rules
// scoped to the theme class.
func RenderCSS(id string, def *Definition, opts RenderOptions) string {
	sensitive := opts.MergeSensitive
	if sensitive == nil {
		sensitive = DefaultMergeSensitive
	}

	var parts []string
	if len(opts.FontImports) > 0 {
		lines := make([]string, 0, len(opts.FontImports))
		for _, fi := range opts.FontImports {
			lines = append(lines, fi.Directive)
		}
		parts = append(parts, strings.Join(lines, "\n")+"\n")
	}

	vars := def.CSSVars
	if !opts.SuppressEmpty || vars.Theme.Len()+vars.Light.Len() > 0 {
		parts = append(parts, RenderBlock(id, ModeLight, vars.Theme, vars.Light, sensitive))
	}
	if !opts.SuppressEmpty || vars.Dark.Len() > 0 {
		parts = append(parts, RenderBlock(id, ModeDark, Vars{}, vars.Dark, sensitive))
	}
	if base := def.CSS.Get("@layer base"); len(base) > 0 {
		parts = append(parts, RenderBaseLayer(id, base))
	}
	return strings.Join(parts, "\n")
}

// RenderBaseLayer wraps rules in "@layer base" with every selector prefixed by
// the theme class.
func RenderBaseLayer(id string, rules []StyleRule) string {
	var b strings.Builder
	b.WriteString("@layer base {\n")
	for i, rule := range rules {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  .theme-%s %s {\n", id, rule.Selector)
		rule.Declarations.Each(func(prop, value string) {
			writeDeclaration(&b, "    ", prop, value)
		})
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func writeDeclaration(b *strings.Builder, indent, prop, value string) {
	b.WriteString(indent)
	b.WriteString(prop)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString(";\n")
}
