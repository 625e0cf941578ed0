// Package gitctx reports uncommitted edits to the files themekit is about to
// patch, so the user can be warned before their work is mixed with ours.
package gitctx

import (
	"errors"
	"path/filepath"
	"sort"

	git "github.com/go-git/go-git/v5"
)

// Repo is an opened worktree.
type Repo struct {
	root string
	repo *git.Repository
}

// Open finds the repository containing dir. It returns nil without error when
// dir is not inside a git worktree.
func Open(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Repo{root: wt.Filesystem.Root(), repo: repo}, nil
}

// DirtyPaths returns the subset of paths that are tracked and carry staged or
// unstaged changes. Untracked and missing paths are not reported. Results keep
// the caller's spelling and are sorted.
func (r *Repo) DirtyPaths(paths []string) ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return nil, err
	}

	var dirty []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(r.root, abs)
		if err != nil {
			continue
		}
		fs, ok := st[filepath.ToSlash(rel)]
		if !ok || fs.Worktree == git.Untracked {
			continue
		}
		if fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified {
			dirty = append(dirty, p)
		}
	}
	sort.Strings(dirty)
	return dirty, nil
}

// DirtyPaths opens the repository around dir and reports which of paths have
// uncommitted changes. Outside a repository it reports nothing.
func DirtyPaths(dir string, paths []string) ([]string, error) {
	r, err := Open(dir)
	if err != nil || r == nil {
		return nil, err
	}
	return r.DirtyPaths(paths)
}
