// Package fs provides file system adapters for hashing, walking, and resolving archive inputs.
package fs

import (
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Walker provides file walking functionality.
type Walker struct {
	fs billy.Filesystem
}

// NewWalker creates a new Walker.
func NewWalker(fsys billy.Filesystem) *Walker {
	return &Walker{fs: fsys}
}

// WalkFiles yields all files below root in lexical order, skipping VCS metadata and
// any entry whose base name matches one of the ignore patterns.
// Unreadable directories are skipped.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		w.walk(root, ignores, yield)
	}
}

func (w *Walker) walk(dir string, ignores []string, yield func(string) bool) bool {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return true
	}
	slices.SortFunc(entries, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, entry := range entries {
		name := entry.Name()
		if w.shouldSkip(name, entry.IsDir(), ignores) {
			continue
		}

		path := w.fs.Join(dir, name)
		if entry.IsDir() {
			if !w.walk(path, ignores, yield) {
				return false
			}
			continue
		}

		if !yield(path) {
			return false
		}
	}
	return true
}

func (w *Walker) shouldSkip(name string, isDir bool, ignores []string) bool {
	if isDir && (name == ".git" || name == ".jj") {
		return true
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
