package assets

import (
	"embed"
	"io/fs"
	"path"
)

// Front-end files installed by setup and update (embedded)

//go:embed embedded_stubs
var Stubs embed.FS

// GetStubsFS returns the stub tree rooted at embedded_stubs.
func GetStubsFS() fs.FS {
	if sub, err := fs.Sub(Stubs, "embedded_stubs"); err == nil {
		return sub
	}
	return Stubs
}

// GetStub returns the stub for a stack, falling back to the shared tree.
// rel is relative to the resources root (e.g. "js/conf/themes.ts").
func GetStub(stack, rel string) ([]byte, error) {
	fsys := GetStubsFS()
	if stack != "" {
		if data, err := fs.ReadFile(fsys, path.Join(stack, rel)); err == nil {
			return data, nil
		}
	}
	if data, err := fs.ReadFile(fsys, path.Join("shared", rel)); err == nil {
		return data, nil
	}
	return nil, fs.ErrNotExist
}
