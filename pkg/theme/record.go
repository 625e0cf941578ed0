package theme

import "strings"

// DefaultFont is used when a theme names no primary font.
const DefaultFont = "System Sans"

// DefaultDescription is used when the caller supplies none.
const DefaultDescription = "Imported from a shadcn theme registry."

// Palette holds the preview colours shown in the theme switcher.
type Palette struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Accent    string `json:"accent" yaml:"accent"`
}

// DefaultPalette fills colours a theme does not define.
var DefaultPalette = Palette{
	Primary:   "oklch(0.5 0.2 250)",
	Secondary: "oklch(0.9 0.05 250)",
	Accent:    "oklch(0.9 0.05 250)",
}

// Record is the metadata entry kept in the project's theme list.
type Record struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Font        string  `json:"font" yaml:"font"`
	Colors      Palette `json:"colors" yaml:"colors"`
}

// NewRecord builds a record from theme variables, falling back to defaults for
// anything the theme leaves out.
func NewRecord(id, name, description string, vars CSSVars) Record {
	if description == "" {
		description = DefaultDescription
	}
	return Record{
		ID:          id,
		Name:        name,
		Description: description,
		Font:        recordFont(vars),
		Colors: Palette{
			Primary:   pick(vars.Light, "primary", DefaultPalette.Primary),
			Secondary: pick(vars.Light, "secondary", DefaultPalette.Secondary),
			Accent:    pick(vars.Light, "accent", DefaultPalette.Accent),
		},
	}
}

func recordFont(vars CSSVars) string {
	for _, section := range []Vars{vars.Theme, vars.Light} {
		value, ok := section.Get("font-sans")
		if !ok {
			continue
		}
		family := PrimaryFamily(value)
		if family != "" && !strings.HasPrefix(family, "var(") {
			return family
		}
	}
	return DefaultFont
}

func pick(vars Vars, key, fallback string) string {
	if value, ok := vars.Get(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
