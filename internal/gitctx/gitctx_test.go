package gitctx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		_, err := wt.Add(name)
		require.NoError(t, err)
	}
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestDirtyPaths(t *testing.T) {
	dir := initRepo(t, map[string]string{
		"resources/css/app.css":       "@import 'tailwindcss';\n",
		"resources/js/conf/themes.ts": "export const themes = [];\n",
	})
	appCSS := filepath.Join(dir, "resources", "css", "app.css")
	registry := filepath.Join(dir, "resources", "js", "conf", "themes.ts")
	untracked := filepath.Join(dir, "resources", "css", "themes", "new.css")

	dirty, err := DirtyPaths(dir, []string{appCSS, registry})
	require.NoError(t, err)
	assert.Empty(t, dirty)

	require.NoError(t, os.WriteFile(appCSS, []byte("@import 'tailwindcss';\n/* edit */\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Dir(untracked), 0o750))
	require.NoError(t, os.WriteFile(untracked, []byte("x"), 0o600))

	dirty, err = DirtyPaths(filepath.Join(dir, "resources"), []string{registry, appCSS, untracked})
	require.NoError(t, err)
	assert.Equal(t, []string{appCSS}, dirty)
}

func TestDirtyPaths_NotARepo(t *testing.T) {
	dir := t.TempDir()
	dirty, err := DirtyPaths(dir, []string{filepath.Join(dir, "app.css")})
	assert.NoError(t, err)
	assert.Nil(t, dirty)

	r, err := Open(dir)
	assert.NoError(t, err)
	assert.Nil(t, r)
}
