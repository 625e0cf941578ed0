// Package workspace is the file-system boundary for theme edits: it turns
// project files into patch documents and writes them back.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/themekit/pkg/format/finalizer"
	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/safeio"
)

// Layout locates the theme resources inside a project. Paths other than Root
// are relative to Root and use forward slashes.
type Layout struct {
	Root      string
	ThemesDir string
	AppCSS    string
	Registry  string
}

// DefaultLayout matches a Laravel starter kit.
var DefaultLayout = Layout{
	Root:      "resources",
	ThemesDir: "css/themes",
	AppCSS:    "css/app.css",
	Registry:  "js/conf/themes.ts",
}

// ThemeCSS returns the relative path of a theme stylesheet.
func (l Layout) ThemeCSS(id string) string {
	return path.Join(l.ThemesDir, id+".css")
}

// Workspace reads and writes files below a layout root.
type Workspace struct {
	layout Layout
	dryRun bool
	boms   map[string]bool

	// Planned lists the relative paths that would have been written or
	// removed in dry-run mode.
	Planned []string
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithDryRun makes Write and Remove record their targets instead of touching
// the disk.
func WithDryRun(dryRun bool) Option {
	return func(w *Workspace) { w.dryRun = dryRun }
}

// New creates a workspace for layout.
func New(layout Layout, opts ...Option) *Workspace {
	w := &Workspace{layout: layout, boms: make(map[string]bool)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Layout returns the workspace layout.
func (w *Workspace) Layout() Layout { return w.layout }

// DryRun reports whether writes are suppressed.
func (w *Workspace) DryRun() bool { return w.dryRun }

// Path resolves rel below the root, rejecting traversal.
func (w *Workspace) Path(rel string) (string, error) {
	clean, err := safeio.CleanUserPath(rel)
	if err != nil {
		return "", fmt.Errorf("invalid resource path %q: %w", rel, err)
	}
	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("resource path %q must be relative", rel)
	}
	return filepath.Join(w.layout.Root, filepath.FromSlash(clean)), nil
}

// Exists reports whether rel exists.
func (w *Workspace) Exists(rel string) bool {
	p, err := w.Path(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Read loads rel as a document named rel. A UTF-8 byte order mark is stripped
// and restored on Write. Binary files are refused.
func (w *Workspace) Read(rel string) (patch.Document, error) {
	p, err := w.Path(rel)
	if err != nil {
		return patch.Document{}, err
	}
	data, err := safeio.ReadFileContained(w.layout.Root, p)
	if err != nil {
		return patch.Document{}, fmt.Errorf("failed to read %s: %w", p, err)
	}
	if !finalizer.IsTextFile(data) {
		return patch.Document{}, fmt.Errorf("%s is not a text file", p)
	}
	data, hadBOM := finalizer.StripUTF8BOM(data)
	w.boms[rel] = hadBOM
	return patch.NewDocument(rel, string(data)), nil
}

// Write stores doc at its name, creating parent directories.
func (w *Workspace) Write(doc patch.Document) error {
	p, err := w.Path(doc.Name)
	if err != nil {
		return err
	}
	if w.dryRun {
		w.Planned = append(w.Planned, doc.Name)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", p, err)
	}
	data := []byte(doc.Text)
	if w.boms[doc.Name] {
		data = finalizer.AddUTF8BOM(data)
	}
	if err := safeio.WriteFilePreservePerms(p, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}

// WriteFile stores raw bytes at rel, creating parent directories.
func (w *Workspace) WriteFile(rel string, data []byte) error {
	return w.Write(patch.NewDocument(rel, string(data)))
}

// Remove deletes rel. A missing file is not an error.
func (w *Workspace) Remove(rel string) (bool, error) {
	p, err := w.Path(rel)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if w.dryRun {
		w.Planned = append(w.Planned, rel)
		return true, nil
	}
	if err := os.Remove(p); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", p, err)
	}
	return true, nil
}

// ThemeFiles returns the ids of the theme stylesheets present on disk, sorted.
func (w *Workspace) ThemeFiles() ([]string, error) {
	if _, err := os.Stat(w.layout.Root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(w.layout.Root), path.Join(w.layout.ThemesDir, "*.css"))
	if err != nil {
		return nil, fmt.Errorf("failed to list theme stylesheets: %w", err)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(path.Base(m), ".css"))
	}
	sort.Strings(ids)
	return ids, nil
}
