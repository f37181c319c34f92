package cas

import (
	"github.com/go-git/go-billy/v5"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StoreOpener = (*Opener)(nil)

// Opener opens cache files on a fixed filesystem.
type Opener struct {
	fs     billy.Filesystem
	logger ports.Logger
}

// NewOpener creates a new Opener.
func NewOpener(fsys billy.Filesystem, logger ports.Logger) *Opener {
	return &Opener{fs: fsys, logger: logger}
}

// Open loads the store at path.
func (o *Opener) Open(path string) (ports.KeyValueStore, error) {
	if path == "" {
		return nil, zerr.New("cache path is empty")
	}
	return NewStore(o.fs, path, o.logger), nil
}
