package safeio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanUserPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hasError bool
	}{
		{name: "simple path", input: "file.txt", expected: "file.txt"},
		{name: "relative path", input: "./css/themes/rose.css", expected: "css/themes/rose.css"},
		{name: "dots in name", input: "themes..backup.css", expected: "themes..backup.css"},
		{name: "resolved inside", input: "css/../js/app.ts", expected: "js/app.ts"},
		{name: "empty path", input: "", expected: "."},
		{name: "traversal", input: "../../etc/passwd", hasError: true},
		{name: "traversal in middle", input: "css/../../etc/passwd", hasError: true},
		{name: "parent directory", input: "..", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CleanUserPath(tt.input)
			if tt.hasError {
				assert.ErrorIs(t, err, ErrTraversal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReadFileContained(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "app.css")
	require.NoError(t, os.WriteFile(inside, []byte("body {}"), 0o600))

	data, err := ReadFileContained(base, inside)
	require.NoError(t, err)
	assert.Equal(t, "body {}", string(data))

	outside := filepath.Join(t.TempDir(), "other.css")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
	_, err = ReadFileContained(base, outside)
	assert.Error(t, err)
}

func TestWriteFilePreservePerms(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.css")
	require.NoError(t, WriteFilePreservePerms(fresh, []byte("a")))
	st, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), st.Mode().Perm())

	existing := filepath.Join(dir, "themes.ts")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o600))
	require.NoError(t, os.Chmod(existing, 0o600))
	require.NoError(t, WriteFilePreservePerms(existing, []byte("new")))

	st, err = os.Stat(existing)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must not be left behind")
}

func TestWriteFilePreservePerms_MissingDir(t *testing.T) {
	err := WriteFilePreservePerms(filepath.Join(t.TempDir(), "missing", "x.css"), []byte("a"))
	assert.Error(t, err)
}
