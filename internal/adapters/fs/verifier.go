package fs

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier provides functionality to verify the existence of files.
type Verifier struct {
	fs billy.Filesystem
}

// NewVerifier creates a new Verifier.
func NewVerifier(fsys billy.Filesystem) *Verifier {
	return &Verifier{fs: fsys}
}

// DirExists reports whether path exists and is a directory.
func (v *Verifier) DirExists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	info, err := v.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
	}
	return info.IsDir(), nil
}

// FilesExist checks that every path exists.
func (v *Verifier) FilesExist(paths []string) (bool, error) {
	for _, path := range paths {
		if _, err := v.fs.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
		}
	}
	return true, nil
}
