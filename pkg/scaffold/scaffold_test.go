package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/workspace"
)

const reactEntry = `import '../css/app.css';

import { createInertiaApp } from '@inertiajs/react';
import { createRoot } from 'react-dom/client';
import { initializeTheme } from './hooks/use-appearance';

createInertiaApp({
    title: (title) => title,
});

// This will set light / dark mode on load...
initializeTheme();
`

const vueEntry = `import '../css/app.css';

import { createInertiaApp } from '@inertiajs/vue3';
import { createApp, h } from 'vue';

createInertiaApp({
    title: (title) => title,
});
`

const appCSS = `@import 'tailwindcss';

@import 'tw-animate-css';

@source '../views';

@theme inline {
    --color-sidebar: var(--sidebar-background);
}

:root {
    --background: oklch(1 0 0);
}
`

func newProject(t *testing.T, files map[string]string) (*workspace.Workspace, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "resources")
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	layout := workspace.DefaultLayout
	layout.Root = root
	return workspace.New(layout), root
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestPatchEntry_React(t *testing.T) {
	doc, res, err := PatchEntry(patch.NewDocument("js/app.tsx", reactEntry), StackReact)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Contains(t, doc.Text, "import { initializeTheme } from './hooks/use-appearance';\nimport { initializeColorTheme } from './hooks/use-color-theme';\n")
	assert.True(t, strings.HasSuffix(doc.Text, "initializeTheme();\ninitializeColorTheme();\n"))

	again, res, err := PatchEntry(doc, StackReact)
	require.NoError(t, err)
	assert.Equal(t, patch.AlreadyPresent, res.Outcome)
	assert.Equal(t, doc.Text, again.Text)
}

func TestPatchEntry_VueFallbacks(t *testing.T) {
	doc, _, err := PatchEntry(patch.NewDocument("js/app.ts", vueEntry), StackVue)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "import { createApp, h } from 'vue';\nimport { initializeColorTheme } from './composables/useColorTheme';\n")
	assert.Contains(t, doc.Text, "initializeColorTheme();\n\ncreateInertiaApp({")
}

func TestPatchEntry_VueSibling(t *testing.T) {
	input := "import { initializeTheme } from './composables/useAppearance';\n\ninitializeTheme();\n"
	doc, _, err := PatchEntry(patch.NewDocument("js/app.ts", input), StackVue)
	require.NoError(t, err)
	assert.Equal(t,
		"import { initializeColorTheme } from './composables/useColorTheme';\nimport { initializeTheme } from './composables/useAppearance';\n\ninitializeTheme();\ninitializeColorTheme();\n",
		doc.Text)
}

func TestParseStackAndMode(t *testing.T) {
	stack, err := ParseStack("React")
	require.NoError(t, err)
	assert.Equal(t, StackReact, stack)
	stack, err = ParseStack("auto")
	require.NoError(t, err)
	assert.Equal(t, StackAuto, stack)
	_, err = ParseStack("svelte")
	assert.Error(t, err)

	mode, err := ParseMode("standalone")
	require.NoError(t, err)
	assert.Equal(t, ModeStandalone, mode)
	_, err = ParseMode("full")
	assert.Error(t, err)
}

func TestSetup_ReactStarter(t *testing.T) {
	ws, root := newProject(t, map[string]string{
		"css/app.css": appCSS,
		"js/app.tsx":  reactEntry,
	})
	s := New(ws)

	report, err := s.Setup(ModeStarter, StackAuto)
	require.NoError(t, err)
	assert.Equal(t, StackReact, report.Stack)
	assert.ElementsMatch(t, []string{
		"js/conf/themes.ts",
		"css/themes/rose.css",
		"css/themes/ocean.css",
		"js/hooks/use-color-theme.tsx",
		"js/components/theme-switcher.tsx",
	}, report.Written)
	assert.ElementsMatch(t, []string{"css/app.css", "js/app.tsx"}, report.Patched)
	assert.Empty(t, report.Notices)

	css := readFile(t, root, "css/app.css")
	assert.Contains(t, css, "@import 'tw-animate-css';\n\n@import './themes/rose.css';\n@import './themes/ocean.css';\n\n@source")
	assert.Contains(t, css, "--color-sidebar: var(--sidebar);")
	assert.Contains(t, css, "--shadow-2xs: var(--shadow-2xs);")
	assert.Contains(t, readFile(t, root, "js/app.tsx"), "initializeColorTheme();")
	assert.Contains(t, readFile(t, root, "js/conf/themes.ts"), "export const themes: ThemeConfig[] = [")

	again, err := s.Setup(ModeStarter, StackReact)
	require.NoError(t, err)
	assert.Empty(t, again.Patched)
	assert.Equal(t, css, readFile(t, root, "css/app.css"))
}

func TestSetup_VueStandaloneWithoutAppFiles(t *testing.T) {
	ws, root := newProject(t, nil)
	report, err := New(ws).Setup(ModeStandalone, StackVue)
	require.NoError(t, err)

	assert.NotContains(t, report.Written, "js/components/ThemeSwitcher.vue")
	assert.Contains(t, report.Written, "js/composables/useColorTheme.ts")
	assert.Len(t, report.Notices, 2)
	assert.NoFileExists(t, filepath.Join(root, "js", "components", "ThemeSwitcher.vue"))
}

func TestDetectStack(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  Stack
	}{
		{"react switcher", map[string]string{"js/components/theme-switcher.tsx": "x", "js/app.ts": "x"}, StackReact},
		{"vue switcher", map[string]string{"js/components/ThemeSwitcher.vue": "x", "js/app.tsx": "x"}, StackVue},
		{"react entry", map[string]string{"js/app.tsx": "x"}, StackReact},
		{"default", nil, StackVue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, _ := newProject(t, tt.files)
			assert.Equal(t, tt.want, New(ws).DetectStack())
		})
	}
}

func TestUpdate(t *testing.T) {
	ws, root := newProject(t, map[string]string{"js/components/ThemeSwitcher.vue": "<template>old</template>"})
	report, err := New(ws).Update(StackAuto)
	require.NoError(t, err)
	assert.Equal(t, StackVue, report.Stack)
	assert.Equal(t, []string{"js/components/ThemeSwitcher.vue"}, report.Written)
	assert.Contains(t, readFile(t, root, "js/components/ThemeSwitcher.vue"), "useColorTheme")
}
