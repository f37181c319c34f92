package aar

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"github.com/grindlemire/graft"
	"go.trai.ch/aarcache/internal/adapters/fs"
)

// NodeID is the unique identifier for the builtin archive extractor Graft node.
const NodeID graft.ID = "adapter.aar.extractor"

func init() {
	graft.Register(graft.Node[*Extractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FilesystemNodeID},
		Run: func(ctx context.Context) (*Extractor, error) {
			fsys, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(fsys), nil
		},
	})
}
