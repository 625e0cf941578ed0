package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/themekit/pkg/patch"
)

func newTestWorkspace(t *testing.T, opts ...Option) (*Workspace, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "resources")
	layout := DefaultLayout
	layout.Root = root
	return New(layout, opts...), root
}

func TestWriteRead(t *testing.T) {
	ws, root := newTestWorkspace(t)

	require.NoError(t, ws.Write(patch.NewDocument(ws.Layout().ThemeCSS("vintage"), ":root {}\n")))
	assert.FileExists(t, filepath.Join(root, "css", "themes", "vintage.css"))
	assert.True(t, ws.Exists("css/themes/vintage.css"))

	doc, err := ws.Read("css/themes/vintage.css")
	require.NoError(t, err)
	assert.Equal(t, ":root {}\n", doc.Text)
	assert.Equal(t, "css/themes/vintage.css", doc.Name)
}

func TestReadPreservesBOM(t *testing.T) {
	ws, root := newTestWorkspace(t)
	path := filepath.Join(root, "css", "app.css")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBF@import 'tailwindcss';\n"), 0o600))

	doc, err := ws.Read("css/app.css")
	require.NoError(t, err)
	assert.Equal(t, "@import 'tailwindcss';\n", doc.Text)

	require.NoError(t, ws.Write(doc.WithText(doc.Text+"@source '../views';\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBF@import 'tailwindcss';\n@source '../views';\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestReadRejectsBinary(t *testing.T) {
	ws, root := newTestWorkspace(t)
	path := filepath.Join(root, "css", "app.css")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}, 0o600))

	_, err := ws.Read("css/app.css")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a text file")

	_, err = ws.Read("css/missing.css")
	assert.Error(t, err)
}

func TestPathRejectsTraversal(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	_, err := ws.Path("../secrets.txt")
	assert.Error(t, err)
	_, err = ws.Path("/etc/passwd")
	assert.Error(t, err)
}

func TestDryRun(t *testing.T) {
	ws, root := newTestWorkspace(t, WithDryRun(true))
	require.NoError(t, ws.WriteFile("css/themes/vintage.css", []byte("x")))
	assert.NoFileExists(t, filepath.Join(root, "css", "themes", "vintage.css"))
	assert.Equal(t, []string{"css/themes/vintage.css"}, ws.Planned)
	assert.True(t, ws.DryRun())
}

func TestRemove(t *testing.T) {
	ws, root := newTestWorkspace(t)
	require.NoError(t, ws.WriteFile("css/themes/rose.css", []byte("x")))

	removed, err := ws.Remove("css/themes/rose.css")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, filepath.Join(root, "css", "themes", "rose.css"))

	removed, err = ws.Remove("css/themes/rose.css")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestThemeFiles(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ids, err := ws.ThemeFiles()
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"ocean", "rose", "default"} {
		require.NoError(t, ws.WriteFile(ws.Layout().ThemeCSS(id), []byte("x")))
	}
	require.NoError(t, ws.WriteFile("css/themes/notes.txt", []byte("x")))

	ids, err = ws.ThemeFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "ocean", "rose"}, ids)
}
