// Package installer applies theme operations across the three files a theme
// lives in: its stylesheet, the application stylesheet and the registry.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fulmenhq/themekit/internal/gitctx"
	"github.com/fulmenhq/themekit/pkg/appcss"
	"github.com/fulmenhq/themekit/pkg/logger"
	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/registry"
	"github.com/fulmenhq/themekit/pkg/theme"
	"github.com/fulmenhq/themekit/pkg/workspace"
)

// Font import placements.
const (
	FontsInTheme = "theme"
	FontsInApp   = "app"
)

// Options tune how themes are rendered and protected.
type Options struct {
	Protected          []string
	DefaultDescription string
	FontProvider       string
	FontPlacement      string
	MergeSensitive     []string
}

// DefaultOptions mirror the built-in configuration.
var DefaultOptions = Options{
	Protected:          []string{"default"},
	DefaultDescription: theme.DefaultDescription,
	FontProvider:       theme.DefaultFontProvider,
	FontPlacement:      FontsInTheme,
	MergeSensitive:     theme.DefaultMergeSensitive,
}

// Installer runs add, remove and list against a workspace.
type Installer struct {
	ws     *workspace.Workspace
	loader *theme.Loader
	opts   Options
	shape  registry.Shape

	// dirty reports uncommitted edits; swapped out in tests.
	dirty func(dir string, paths []string) ([]string, error)
}

// New creates an installer. A nil loader only supports Remove and List.
func New(ws *workspace.Workspace, loader *theme.Loader, opts Options) *Installer {
	return &Installer{
		ws:     ws,
		loader: loader,
		opts:   opts,
		shape:  registry.DefaultShape,
		dirty:  gitctx.DirtyPaths,
	}
}

// Request describes one theme installation.
type Request struct {
	// Source is an http(s) URL or a local definition file.
	Source string
	// Name overrides the theme name from the definition.
	Name        string
	Description string
	// Force overwrites an installed theme instead of skipping it.
	Force bool
	// Loaded is a definition already returned by Probe. When set, Source is
	// not fetched again.
	Loaded *theme.Source
}

// FileChange is the outcome for one file.
type FileChange struct {
	Path    string
	Outcome patch.Outcome
}

// Report summarizes an Install or Remove.
type Report struct {
	ThemeID     string
	DisplayName string
	// Existed is set when the theme was already installed.
	Existed bool
	// Skipped is set when an existing theme was left untouched.
	Skipped bool
	DryRun  bool
	Changes []FileChange
	Notices []string
}

// Updated lists the files that changed.
func (r *Report) Updated() []string {
	var out []string
	for _, c := range r.Changes {
		if c.Outcome.Changed() {
			out = append(out, c.Path)
		}
	}
	return out
}

func (r *Report) notice(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Notices = append(r.Notices, msg)
	logger.Info(msg)
}

// Resolve derives the theme id and display name for a loaded source.
func Resolve(src *theme.Source, nameOverride string) (id, display string, err error) {
	raw := strings.TrimSpace(nameOverride)
	if raw == "" && src.Definition != nil {
		raw = strings.TrimSpace(src.Definition.Name)
	}
	if raw == "" {
		raw = theme.NameFromSource(src.Location)
	}
	id = theme.Slugify(raw)
	if id == "" {
		return "", "", &theme.InputError{Source: src.Location, Reason: "cannot derive a theme id", Wrapped: theme.ErrEmptyName}
	}
	return id, theme.DisplayName(raw), nil
}

// Probe loads a source and reports the id it resolves to and whether that
// theme is already installed. Nothing is written. The returned source can be
// passed back through Request.Loaded.
func (in *Installer) Probe(ctx context.Context, req Request) (src *theme.Source, id string, exists bool, err error) {
	src, err = in.source(ctx, req)
	if err != nil {
		return nil, "", false, err
	}
	id, _, err = Resolve(src, req.Name)
	if err != nil {
		return nil, "", false, err
	}
	return src, id, in.Exists(id), nil
}

// Exists reports whether id has a stylesheet or a registry entry.
func (in *Installer) Exists(id string) bool {
	if in.ws.Exists(in.ws.Layout().ThemeCSS(id)) {
		return true
	}
	return in.inRegistry(id)
}

func (in *Installer) inRegistry(id string) bool {
	doc, err := in.ws.Read(in.ws.Layout().Registry)
	if err != nil {
		return false
	}
	entries, err := in.shape.Entries(doc)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (in *Installer) load(ctx context.Context, source string) (*theme.Source, error) {
	if in.loader == nil {
		return nil, &theme.InputError{Source: source, Reason: "no theme loader configured"}
	}
	logger.Info("Loading theme definition", logger.String("source", source))
	return in.loader.Load(ctx, source)
}

func (in *Installer) source(ctx context.Context, req Request) (*theme.Source, error) {
	if req.Loaded != nil {
		return req.Loaded, nil
	}
	return in.load(ctx, req.Source)
}

// Install loads the source and writes the theme stylesheet, the app.css
// import and the registry entry, in that order. The source is fully loaded
// and validated before anything is written.
func (in *Installer) Install(ctx context.Context, req Request) (*Report, error) {
	src, err := in.source(ctx, req)
	if err != nil {
		return nil, err
	}
	id, display, err := Resolve(src, req.Name)
	if err != nil {
		return nil, err
	}

	report := &Report{ThemeID: id, DisplayName: display, DryRun: in.ws.DryRun()}
	logger.Info("Processing theme", logger.String("id", id), logger.String("name", display), logger.Bool("force", req.Force))

	if in.Exists(id) {
		report.Existed = true
		if !req.Force {
			report.Skipped = true
			report.notice("Theme '%s' is already installed; use --force to overwrite it", id)
			return report, nil
		}
	}
	in.warnDirty(report)

	def := src.Definition
	if def.CSSVars.Empty() {
		report.notice("Theme '%s' defines no CSS variables; its stylesheet has empty rule blocks", id)
	}
	fonts := theme.DeriveFontImports(def.CSSVars, theme.FontOptions{Provider: in.opts.FontProvider})
	layout := in.ws.Layout()
	var failed []FileFailure

	// The stylesheet goes first; nothing has changed if it cannot be written.
	renderOpts := theme.RenderOptions{MergeSensitive: in.opts.MergeSensitive}
	if in.opts.FontPlacement != FontsInApp {
		renderOpts.FontImports = fonts
	}
	cssPath := layout.ThemeCSS(id)
	outcome, err := in.writeThemeCSS(cssPath, theme.RenderCSS(id, def, renderOpts))
	if err != nil {
		return nil, err
	}
	report.Changes = append(report.Changes, FileChange{Path: cssPath, Outcome: outcome})

	appFonts := fonts
	if in.opts.FontPlacement != FontsInApp {
		appFonts = nil
	}
	if change, err := in.patchFile(layout.AppCSS, func(doc patch.Document) (patch.Document, patch.Result, error) {
		return addToAppCSS(doc, id, appFonts)
	}); err != nil {
		failed = append(failed, FileFailure{Path: layout.AppCSS, Err: err})
	} else {
		report.Changes = append(report.Changes, change)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = in.opts.DefaultDescription
	}
	rec := theme.NewRecord(id, display, description, def.CSSVars)
	if change, err := in.patchFile(layout.Registry, func(doc patch.Document) (patch.Document, patch.Result, error) {
		return in.shape.Add(doc, rec, req.Force)
	}); err != nil {
		failed = append(failed, FileFailure{Path: layout.Registry, Err: err})
	} else {
		report.Changes = append(report.Changes, change)
	}

	if len(failed) > 0 {
		return report, &PartialApplyError{Updated: report.Updated(), Failed: failed}
	}
	logger.Info("Theme installed", logger.String("id", id), logger.Int("files", len(report.Updated())))
	return report, nil
}

func (in *Installer) writeThemeCSS(rel, css string) (patch.Outcome, error) {
	outcome := patch.Inserted
	if in.ws.Exists(rel) {
		current, err := in.ws.Read(rel)
		if err != nil {
			return patch.Unchanged, err
		}
		if current.Text == css {
			return patch.Unchanged, nil
		}
		outcome = patch.Replaced
	}
	if err := in.ws.WriteFile(rel, []byte(css)); err != nil {
		return patch.Unchanged, err
	}
	logger.Debug("Wrote theme stylesheet", logger.String("path", rel))
	return outcome, nil
}

// patchFile reads rel, applies edit and writes the result when it changed.
// A file that cannot be parsed is left untouched.
func (in *Installer) patchFile(rel string, edit func(patch.Document) (patch.Document, patch.Result, error)) (FileChange, error) {
	doc, err := in.ws.Read(rel)
	if errors.Is(err, fs.ErrNotExist) {
		return FileChange{}, fmt.Errorf("%s does not exist; run 'themekit setup' first: %w", rel, err)
	}
	if err != nil {
		return FileChange{}, err
	}
	out, res, err := edit(doc)
	if err != nil {
		logger.Warn("File left unchanged", logger.String("path", rel), logger.Err(err))
		return FileChange{}, err
	}
	if res.Outcome.Changed() {
		if err := in.ws.Write(out); err != nil {
			return FileChange{}, err
		}
		logger.Debug("Patched file", logger.String("path", rel), logger.String("outcome", res.Outcome.String()))
	}
	return FileChange{Path: rel, Outcome: res.Outcome}, nil
}

func addToAppCSS(doc patch.Document, id string, fonts []theme.FontImport) (patch.Document, patch.Result, error) {
	out, res, err := appcss.AddThemeImport(doc, id)
	if err != nil || len(fonts) == 0 {
		return out, res, err
	}
	out, fontRes, err := appcss.AddFontImports(out, fonts)
	if err != nil {
		return doc, patch.Result{Outcome: patch.Unchanged}, err
	}
	if !res.Outcome.Changed() && fontRes.Outcome.Changed() {
		return out, fontRes, nil
	}
	return out, res, nil
}

// Remove deletes the theme stylesheet, its app.css import and its registry
// entries. Protected themes are refused before anything is read.
func (in *Installer) Remove(name string) (*Report, error) {
	id := theme.Slugify(name)
	if id == "" {
		return nil, &theme.InputError{Source: name, Reason: "no theme id given", Wrapped: theme.ErrEmptyName}
	}
	if in.IsProtected(id) {
		return nil, &ProtectedResourceError{ID: id}
	}
	if !in.Exists(id) {
		return nil, &theme.InputError{Source: id, Reason: "theme is not installed"}
	}

	report := &Report{ThemeID: id, Existed: true, DryRun: in.ws.DryRun()}
	in.warnDirty(report)
	layout := in.ws.Layout()
	var failed []FileFailure

	cssPath := layout.ThemeCSS(id)
	removed, err := in.ws.Remove(cssPath)
	switch {
	case err != nil:
		failed = append(failed, FileFailure{Path: cssPath, Err: err})
	case removed:
		report.Changes = append(report.Changes, FileChange{Path: cssPath, Outcome: patch.Removed})
	default:
		report.Changes = append(report.Changes, FileChange{Path: cssPath, Outcome: patch.NotFound})
	}

	if change, err := in.patchFile(layout.AppCSS, func(doc patch.Document) (patch.Document, patch.Result, error) {
		out, res := appcss.RemoveThemeImport(doc, id)
		return out, res, nil
	}); err != nil {
		failed = append(failed, FileFailure{Path: layout.AppCSS, Err: err})
	} else {
		report.Changes = append(report.Changes, change)
	}

	if change, err := in.patchFile(layout.Registry, func(doc patch.Document) (patch.Document, patch.Result, error) {
		return in.shape.Remove(doc, id)
	}); err != nil {
		failed = append(failed, FileFailure{Path: layout.Registry, Err: err})
	} else {
		report.Changes = append(report.Changes, change)
	}

	for _, c := range report.Changes {
		if c.Outcome == patch.NotFound {
			report.notice("%s had nothing to remove for '%s'", c.Path, id)
		}
	}
	if len(failed) > 0 {
		return report, &PartialApplyError{Updated: report.Updated(), Failed: failed}
	}
	logger.Info("Theme removed", logger.String("id", id))
	return report, nil
}

// IsProtected reports whether id may not be removed.
func (in *Installer) IsProtected(id string) bool {
	for _, p := range in.opts.Protected {
		if theme.Slugify(p) == id {
			return true
		}
	}
	return false
}

// Installed is one row of List.
type Installed struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Stylesheet  bool   `json:"stylesheet" yaml:"stylesheet"`
	Registered  bool   `json:"registered" yaml:"registered"`
	Protected   bool   `json:"protected" yaml:"protected"`
}

// List merges theme stylesheets, registry entries and protected ids into one
// sorted list.
func (in *Installer) List() ([]Installed, error) {
	byID := make(map[string]*Installed)
	get := func(id string) *Installed {
		if t, ok := byID[id]; ok {
			return t
		}
		t := &Installed{ID: id, Protected: in.IsProtected(id)}
		byID[id] = t
		return t
	}

	files, err := in.ws.ThemeFiles()
	if err != nil {
		return nil, err
	}
	for _, id := range files {
		get(id).Stylesheet = true
	}

	doc, err := in.ws.Read(in.ws.Layout().Registry)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		entries, err := in.shape.Entries(doc)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			t := get(e.ID)
			t.Registered = true
			t.Name = e.Name
			t.Description = e.Description
		}
	}

	for _, p := range in.opts.Protected {
		if id := theme.Slugify(p); id != "" {
			get(id)
		}
	}

	out := make([]Installed, 0, len(byID))
	for _, t := range byID {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// warnDirty logs a warning when shared files carry uncommitted edits.
func (in *Installer) warnDirty(report *Report) {
	if in.dirty == nil || in.ws.DryRun() {
		return
	}
	layout := in.ws.Layout()
	var paths []string
	for _, rel := range []string{layout.AppCSS, layout.Registry} {
		if p, err := in.ws.Path(rel); err == nil {
			paths = append(paths, p)
		}
	}
	dirty, err := in.dirty(layout.Root, paths)
	if err != nil {
		logger.Debug("Git status unavailable", logger.Err(err))
		return
	}
	for _, p := range dirty {
		rel, err := filepath.Rel(layout.Root, p)
		if err != nil {
			rel = p
		}
		report.Notices = append(report.Notices, fmt.Sprintf("%s has uncommitted changes", filepath.ToSlash(rel)))
		logger.Warn("File has uncommitted changes", logger.String("path", p))
	}
}
