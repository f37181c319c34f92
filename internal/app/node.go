package app

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"github.com/grindlemire/graft"
	"go.trai.ch/aarcache/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/aarcache/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/aarcache/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/aarcache/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/aarcache/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/aarcache/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/aarcache/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			fs.FilesystemNodeID,
			cas.NodeID,
			shell.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.InputResolver](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[billy.Filesystem](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.StoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	transformers, err := graft.Dep[ports.TransformerProvider](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, hasher, verifier, opener, transformers, log, telemetry, fsys), nil
}
