package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/aarcache/internal/adapters/aar"
	"go.trai.ch/aarcache/internal/adapters/logger"
	"go.trai.ch/aarcache/internal/core/ports"
)

// NodeID is the unique identifier for the transformer provider Graft node.
const NodeID graft.ID = "adapter.transformer_provider"

func init() {
	graft.Register(graft.Node[ports.TransformerProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, aar.NodeID},
		Run: func(ctx context.Context) (ports.TransformerProvider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			extractor, err := graft.Dep[*aar.Extractor](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(extractor, log), nil
		},
	})
}
