package appcss

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/theme"
)

const starterCSS = `@import 'tailwindcss';

@import 'tw-animate-css';

@source '../views';

@custom-variant dark (&:is(.dark *));

@theme inline {
    --font-sans: 'Instrument Sans', ui-sans-serif, system-ui, sans-serif;
    --color-sidebar: var(--sidebar-background);
}

:root {
    --background: oklch(1 0 0);
}

@layer base {
    body {
        @apply bg-background text-foreground;
    }
}

@layer utilities {
    body,
    html {
        --font-sans: 'Instrument Sans', ui-sans-serif, system-ui, sans-serif;
    }
}
`

func TestAddThemeImport_Twice(t *testing.T) {
	doc := patch.NewDocument("app.css", starterCSS)

	once, res, err := AddThemeImport(doc, "vintage")
	require.NoError(t, err)
	assert.Equal(t, patch.Inserted, res.Outcome)
	assert.Equal(t, "tw-animate-css", res.Anchor)
	assert.Contains(t, once.Text, "@import 'tw-animate-css';\n\n@import './themes/vintage.css';\n\n@source")

	twice, res, err := AddThemeImport(once, "vintage")
	require.NoError(t, err)
	assert.Equal(t, patch.AlreadyPresent, res.Outcome)
	assert.Equal(t, 1, strings.Count(twice.Text, "@import './themes/vintage.css';"))
}

func TestAddThemeImport_Accumulates(t *testing.T) {
	doc := patch.NewDocument("app.css", starterCSS)
	for _, id := range []string{"rose", "ocean", "vintage"} {
		var err error
		doc, _, err = AddThemeImport(doc, id)
		require.NoError(t, err)
	}
	assert.Contains(t, doc.Text, "@import './themes/rose.css';\n@import './themes/ocean.css';\n@import './themes/vintage.css';\n\n@source")
}

func TestAddThemeImport_EquivalentForms(t *testing.T) {
	for _, input := range []string{
		"@import \"./themes/vintage.css\";\n",
		"@import '../css/themes/vintage.css';\n",
	} {
		doc, res, err := AddThemeImport(patch.NewDocument("app.css", input), "vintage")
		require.NoError(t, err)
		assert.Equal(t, patch.AlreadyPresent, res.Outcome)
		assert.Equal(t, input, doc.Text)
	}
}

func TestRemoveThemeImport_RoundTrip(t *testing.T) {
	doc := patch.NewDocument("app.css", starterCSS)
	added, _, err := AddThemeImport(doc, "vintage")
	require.NoError(t, err)

	removed, res := RemoveThemeImport(added, "vintage")
	assert.Equal(t, patch.Removed, res.Outcome)
	assert.Equal(t, starterCSS, removed.Text)

	_, res = RemoveThemeImport(removed, "vintage")
	assert.Equal(t, patch.NotFound, res.Outcome)
}

func TestRemoveThemeImport_SourceFirstLine(t *testing.T) {
	input := "@source '../views';\n"
	added, res, err := AddThemeImport(patch.NewDocument("app.css", input), "vintage")
	require.NoError(t, err)
	assert.Equal(t, "@source", res.Anchor)
	assert.Equal(t, "@import './themes/vintage.css';\n\n@source '../views';\n", added.Text)

	removed, _ := RemoveThemeImport(added, "vintage")
	assert.Equal(t, input, removed.Text)
}

func TestRemoveThemeImport_LegacyPath(t *testing.T) {
	input := "@import 'tailwindcss';\n@import \"../css/themes/vintage.css\";\n@import './themes/rose.css';\n"
	doc, res := RemoveThemeImport(patch.NewDocument("app.css", input), "vintage")
	assert.Equal(t, patch.Removed, res.Outcome)
	assert.Equal(t, "@import 'tailwindcss';\n@import './themes/rose.css';\n", doc.Text)
}

func TestAddFontImports(t *testing.T) {
	imports := []theme.FontImport{
		{Family: "Lora", Directive: theme.FontImportDirective("Lora", "")},
		{Family: "Fira Code", Directive: theme.FontImportDirective("Fira Code", "")},
	}
	doc, res, err := AddFontImports(patch.NewDocument("app.css", starterCSS), imports)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.True(t, strings.HasPrefix(doc.Text,
		"@import url('https://fonts.googleapis.com/css2?family=Lora&display=swap');\n"+
			"@import url('https://fonts.googleapis.com/css2?family=Fira+Code&display=swap');\n"+
			"@import 'tailwindcss';"))

	again, res, err := AddFontImports(doc, imports)
	require.NoError(t, err)
	assert.Equal(t, patch.AlreadyPresent, res.Outcome)
	assert.Equal(t, doc.Text, again.Text)
}

func TestEnsureThemeMappings(t *testing.T) {
	doc, steps, err := EnsureThemeMappings(patch.NewDocument("app.css", starterCSS))
	require.NoError(t, err)
	require.Len(t, steps, 5)

	assert.Contains(t, doc.Text, sidebarMapping)
	assert.NotContains(t, doc.Text, legacySidebarMapping)
	assert.NotContains(t, doc.Text, "@layer utilities")
	assert.Contains(t, doc.Text, "--font-serif: var(--font-serif);\n}\n\n:root {")
	assert.Contains(t, doc.Text, "--background: oklch(1 0 0);\n\n    /* Default fonts */")
	assert.Contains(t, doc.Text, "--shadow-2xl: 0 25px 50px -12px rgb(0 0 0 / 0.25);\n}\n")
	// The theme block already names font-sans, so the body rule stays as is.
	assert.Contains(t, doc.Text, bodyApply)

	again, steps, err := EnsureThemeMappings(doc)
	require.NoError(t, err)
	assert.Equal(t, doc.Text, again.Text)
	for _, step := range steps {
		assert.False(t, step.Result.Outcome.Changed(), step.Name)
	}
}

func TestEnsureThemeMappings_BodyFont(t *testing.T) {
	input := "@layer base {\n    body {\n        @apply bg-background text-foreground;\n    }\n}\n"
	doc, _, err := EnsureThemeMappings(patch.NewDocument("app.css", input))
	require.NoError(t, err)
	assert.Contains(t, doc.Text, bodyApplyWithFont)
}
