package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface. Patterns follow filepath.Match
// per path segment, and a "**" segment matches any number of directories.
type Resolver struct {
	fs     billy.Filesystem
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(fsys billy.Filesystem, walker *Walker) *Resolver {
	return &Resolver{fs: fsys, walker: walker}
}

// ResolveInputs resolves the given patterns to a sorted list of concrete file paths.
// A pattern that matches nothing is an error.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		path = filepath.Clean(path)

		matches, err := r.resolve(path)
		if err != nil {
			return nil, zerr.With(err, "pattern", pattern)
		}
		if len(matches) == 0 {
			return nil, zerr.With(domain.ErrInputNotFound, "path", path)
		}

		for _, match := range matches {
			unique[match] = struct{}{}
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}

func (r *Resolver) resolve(path string) ([]string, error) {
	if !hasMeta(path) {
		info, err := r.fs.Stat(path)
		if err != nil || info.IsDir() {
			return nil, nil //nolint:nilerr // Missing inputs are reported by the caller
		}
		return []string{path}, nil
	}

	if _, err := filepath.Match(path, ""); err != nil {
		return nil, zerr.Wrap(err, "failed to glob path")
	}

	base := staticPrefix(path)
	var matches []string
	for file := range r.walker.WalkFiles(base, nil) {
		if matchSegments(splitPath(path), splitPath(file)) {
			matches = append(matches, file)
		}
	}
	return matches, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[\`)
}

// staticPrefix returns the longest leading directory of path without glob metacharacters.
func staticPrefix(path string) string {
	parts := splitPath(path)
	static := make([]string, 0, len(parts))
	for _, part := range parts {
		if hasMeta(part) {
			break
		}
		static = append(static, part)
	}
	prefix := filepath.Join(static...)
	if filepath.IsAbs(path) {
		prefix = string(filepath.Separator) + prefix
	}
	return prefix
}

func splitPath(path string) []string {
	return strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' })
}

func matchSegments(pattern, name []string) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}

	if pattern[0] == "**" {
		for i := 0; i <= len(name); i++ {
			if matchSegments(pattern[1:], name[i:]) {
				return true
			}
		}
		return false
	}

	if len(name) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], name[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], name[1:])
}
