package theme

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Fetcher retrieves a remote theme definition.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Source is a loaded theme definition together with where it came from.
type Source struct {
	Location   string
	Remote     bool
	Format     Format
	Definition *Definition
}

// Loader resolves a source argument (URL or local path) to a Definition.
type Loader struct {
	fetcher  Fetcher
	readFile func(string) ([]byte, error)
}

// NewLoader creates a loader. A nil fetcher disables remote sources.
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher, readFile: os.ReadFile}
}

// IsRemote reports whether src looks like a URL rather than a file path.
func IsRemote(src string) bool {
	return strings.Contains(src, "://")
}

// ValidateURL checks that raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &InputError{Source: raw, Reason: "invalid URL", Wrapped: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InputError{Source: raw, Reason: fmt.Sprintf("unsupported URL scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &InputError{Source: raw, Reason: "URL has no host"}
	}
	return nil
}

// Load fetches or reads src and parses it.
func (l *Loader) Load(ctx context.Context, src string) (*Source, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, &InputError{Source: src, Reason: "no theme source given"}
	}

	var (
		data   []byte
		err    error
		remote = IsRemote(src)
	)
	if remote {
		if err := ValidateURL(src); err != nil {
			return nil, err
		}
		if l.fetcher == nil {
			return nil, &InputError{Source: src, Reason: "remote sources are not available"}
		}
		data, err = l.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, &InputError{Source: src, Reason: "failed to fetch theme", Wrapped: err}
		}
	} else {
		data, err = l.readFile(src)
		if err != nil {
			return nil, &InputError{Source: src, Reason: "failed to read theme file", Wrapped: err}
		}
	}

	format := DetectFormat(src)
	if remote {
		if u, perr := url.Parse(src); perr == nil {
			format = DetectFormat(u.Path)
		}
	}
	def, err := ParseDefinition(data, format, src)
	if err != nil {
		return nil, err
	}
	return &Source{Location: src, Remote: remote, Format: format, Definition: def}, nil
}
