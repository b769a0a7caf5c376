// Package fs provides file system adapters for walking and fingerprinting files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":      true,
	".jj":       true,
	".retarget": true,
}

// Walker enumerates files below a directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root in lexical order, as paths that
// start with root. Directories matching one of the ignore patterns are skipped, as
// are VCS and state directories. Unreadable directories end the walk silently; use
// Files when read errors matter.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path, err := range w.Files(root, ignores) {
			if err != nil || !yield(path) {
				return
			}
		}
	}
}

// Files is like WalkFiles but yields the error that stopped the walk, together
// with the path it occurred at, as its last element.
func (w *Walker) Files(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield(path, err)
				return filepath.SkipAll
			}

			if d.IsDir() {
				if path != root && w.skip(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}
			if w.skip(d.Name(), ignores) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) skip(name string, ignores []string) bool {
	if skippedDirs[name] {
		return true
	}
	for _, pattern := range ignores {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
