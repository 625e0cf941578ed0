// Package scaffold installs the front-end pieces that make themes switchable:
// the registry module, starter themes, the state hook or composable, the
// switcher component, and the app entry and stylesheet patches.
package scaffold

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/fulmenhq/themekit/internal/assets"
	"github.com/fulmenhq/themekit/pkg/appcss"
	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/workspace"
)

// Stack is the front-end flavour of the host application.
type Stack string

const (
	StackAuto  Stack = ""
	StackReact Stack = "react"
	StackVue   Stack = "vue"
)

// ParseStack accepts "react", "vue", or "auto"/"" for detection.
func ParseStack(s string) (Stack, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StackAuto, nil
	case "react":
		return StackReact, nil
	case "vue":
		return StackVue, nil
	}
	return StackAuto, fmt.Errorf("unknown stack %q (expected react, vue, or auto)", s)
}

// Label is the human name of the stack.
func (s Stack) Label() string {
	switch s {
	case StackReact:
		return "Inertia React"
	case StackVue:
		return "Inertia Vue"
	}
	return "auto"
}

// Mode selects how much is installed.
type Mode string

const (
	// ModeStarter installs everything including the switcher component.
	ModeStarter Mode = "starter"
	// ModeStandalone installs the hook or composable without UI.
	ModeStandalone Mode = "standalone"
)

// ParseMode accepts "starter" or "standalone".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "starter":
		return ModeStarter, nil
	case "standalone":
		return ModeStandalone, nil
	}
	return ModeStarter, fmt.Errorf("unknown setup mode %q (expected starter or standalone)", s)
}

// StarterThemes are the theme ids shipped with setup.
var StarterThemes = []string{"rose", "ocean"}

// Report lists what a scaffold run touched.
type Report struct {
	Stack   Stack
	Written []string
	Patched []string
	Notices []string
}

func (r *Report) notice(format string, args ...any) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}

// Scaffolder writes stubs and patches into a workspace.
type Scaffolder struct {
	ws *workspace.Workspace
}

// New creates a Scaffolder.
func New(ws *workspace.Workspace) *Scaffolder {
	return &Scaffolder{ws: ws}
}

// DetectStack guesses the stack from files already in the project: an
// installed switcher wins, then a React entry file; otherwise Vue.
func (s *Scaffolder) DetectStack() Stack {
	if info, ok := assets.Lookup(string(StackReact), assets.RoleSwitcher); ok && s.ws.Exists(info.Path) {
		return StackReact
	}
	if info, ok := assets.Lookup(string(StackVue), assets.RoleSwitcher); ok && s.ws.Exists(info.Path) {
		return StackVue
	}
	if s.ws.Exists("js/app.tsx") {
		return StackReact
	}
	return StackVue
}

func (s *Scaffolder) resolve(stack Stack) Stack {
	if stack == StackAuto {
		return s.DetectStack()
	}
	return stack
}

// target maps a stub path onto the configured layout.
func (s *Scaffolder) target(info assets.AssetInfo) string {
	layout := s.ws.Layout()
	switch info.Role {
	case assets.RoleRegistry:
		return layout.Registry
	case assets.RoleTheme:
		return layout.ThemeCSS(strings.TrimSuffix(path.Base(info.Path), ".css"))
	}
	return info.Path
}

// Setup installs the stubs for mode and stack, then patches the stylesheet and
// the app entry file. Stub files are overwritten.
func (s *Scaffolder) Setup(mode Mode, stack Stack) (*Report, error) {
	stack = s.resolve(stack)
	report := &Report{Stack: stack}

	for _, info := range assets.ForStack(string(stack)) {
		if mode == ModeStandalone && info.Role == assets.RoleSwitcher {
			continue
		}
		if err := s.publish(stack, info, report); err != nil {
			return report, err
		}
	}

	if err := s.patchAppCSS(report); err != nil {
		return report, err
	}
	if err := s.patchEntry(stack, report); err != nil {
		return report, err
	}
	return report, nil
}

// Update overwrites the switcher component with the bundled version.
func (s *Scaffolder) Update(stack Stack) (*Report, error) {
	stack = s.resolve(stack)
	report := &Report{Stack: stack}

	info, ok := assets.Lookup(string(stack), assets.RoleSwitcher)
	if !ok {
		return report, fmt.Errorf("no switcher component for stack %q", stack)
	}
	return report, s.publish(stack, info, report)
}

func (s *Scaffolder) publish(stack Stack, info assets.AssetInfo, report *Report) error {
	data, err := assets.GetStub(string(stack), info.Path)
	if err != nil {
		return fmt.Errorf("missing stub %s for %s: %w", info.Path, stack, err)
	}
	dest := s.target(info)
	if err := s.ws.WriteFile(dest, data); err != nil {
		return err
	}
	report.Written = append(report.Written, dest)
	return nil
}

func (s *Scaffolder) patchAppCSS(report *Report) error {
	rel := s.ws.Layout().AppCSS
	if !s.ws.Exists(rel) {
		report.notice("%s not found, skipping stylesheet imports", rel)
		return nil
	}
	doc, err := s.ws.Read(rel)
	if err != nil {
		return err
	}
	original := doc.Text

	for _, id := range StarterThemes {
		if doc, _, err = appcss.AddThemeImport(doc, id); err != nil {
			return err
		}
	}
	if doc, _, err = appcss.EnsureThemeMappings(doc); err != nil {
		return err
	}

	if doc.Text == original {
		return nil
	}
	if err := s.ws.Write(doc); err != nil {
		return err
	}
	report.Patched = append(report.Patched, rel)
	return nil
}

func (s *Scaffolder) patchEntry(stack Stack, report *Report) error {
	for _, rel := range EntryCandidates(stack) {
		if !s.ws.Exists(rel) {
			continue
		}
		doc, err := s.ws.Read(rel)
		if err != nil {
			return err
		}
		doc, res, err := PatchEntry(doc, stack)
		if err != nil {
			var se *patch.StructureError
			if errors.As(err, &se) {
				report.notice("could not patch %s: %s", rel, se.Reason)
				return nil
			}
			return err
		}
		if res.Outcome.Changed() {
			if err := s.ws.Write(doc); err != nil {
				return err
			}
			report.Patched = append(report.Patched, rel)
		}
		return nil
	}
	report.notice("no app entry file found (%s), call initializeColorTheme() yourself", strings.Join(EntryCandidates(stack), ", "))
	return nil
}
