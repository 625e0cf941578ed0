package installer

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fulmenhq/themekit/pkg/appcss"
	"github.com/fulmenhq/themekit/pkg/patch"
)

// Severity grades a diagnostic finding.
type Severity string

const (
	SeverityOK    Severity = "ok"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Finding is one diagnostic result.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Path     string   `json:"path" yaml:"path"`
	Message  string   `json:"message" yaml:"message"`
}

// Diagnose checks that app.css and the registry can be patched and that every
// installed stylesheet is imported and registered. Nothing is written.
func (in *Installer) Diagnose() ([]Finding, error) {
	layout := in.ws.Layout()
	var findings []Finding
	add := func(sev Severity, path, format string, args ...any) {
		findings = append(findings, Finding{Severity: sev, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	ids, err := in.ws.ThemeFiles()
	if err != nil {
		return nil, err
	}

	appDoc, err := in.ws.Read(layout.AppCSS)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		add(SeverityError, layout.AppCSS, "file not found; run 'themekit setup'")
	case err != nil:
		return nil, err
	default:
		missing := 0
		for _, id := range ids {
			_, res, err := appcss.AddThemeImport(appDoc, id)
			if err != nil {
				add(SeverityError, layout.AppCSS, "cannot be patched: %v", err)
				break
			}
			if res.Outcome != patch.AlreadyPresent {
				missing++
				add(SeverityWarn, layout.AppCSS, "stylesheet for '%s' is not imported", id)
			}
		}
		if missing == 0 {
			add(SeverityOK, layout.AppCSS, "imports %d theme stylesheet(s)", len(ids))
		}
	}

	regDoc, err := in.ws.Read(layout.Registry)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		add(SeverityError, layout.Registry, "file not found; run 'themekit setup'")
		return findings, nil
	case err != nil:
		return nil, err
	}
	entries, err := in.shape.Entries(regDoc)
	if err != nil {
		add(SeverityError, layout.Registry, "cannot be parsed: %v", err)
		return findings, nil
	}

	registered := make(map[string]bool, len(entries))
	for _, e := range entries {
		registered[e.ID] = true
	}
	hasCSS := make(map[string]bool, len(ids))
	problems := 0
	for _, id := range ids {
		hasCSS[id] = true
		if !registered[id] {
			problems++
			add(SeverityWarn, layout.Registry, "stylesheet '%s' has no registry entry", id)
		}
	}
	for _, e := range entries {
		if !hasCSS[e.ID] && !in.IsProtected(e.ID) {
			problems++
			add(SeverityWarn, layout.ThemeCSS(e.ID), "registry entry '%s' has no stylesheet", e.ID)
		}
	}
	if problems == 0 {
		add(SeverityOK, layout.Registry, "lists %d theme(s)", len(entries))
	}
	return findings, nil
}
