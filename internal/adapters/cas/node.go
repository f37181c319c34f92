package cas

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"github.com/grindlemire/graft"
	"go.trai.ch/aarcache/internal/adapters/fs"
	"go.trai.ch/aarcache/internal/adapters/logger"
	"go.trai.ch/aarcache/internal/core/ports"
)

// NodeID is the unique identifier for the cache store opener node.
const NodeID graft.ID = "adapter.store_opener"

func init() {
	graft.Register(graft.Node[ports.StoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FilesystemNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.StoreOpener, error) {
			fsys, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(fsys, log), nil
		},
	})
}
