package fs

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/grindlemire/graft"
	"go.trai.ch/aarcache/internal/core/ports"
)

const (
	FilesystemNodeID graft.ID = "adapter.fs.filesystem"
	WalkerNodeID     graft.ID = "adapter.fs.walker"
	ResolverNodeID   graft.ID = "adapter.fs.resolver"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
	VerifierNodeID   graft.ID = "adapter.fs.verifier"
)

func init() {
	// Filesystem Node (host filesystem rooted at /, callers pass absolute paths)
	graft.Register(graft.Node[billy.Filesystem]{
		ID:        FilesystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (billy.Filesystem, error) {
			return osfs.New("/"), nil
		},
	})

	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FilesystemNodeID},
		Run: func(ctx context.Context) (*Walker, error) {
			fsys, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewWalker(fsys), nil
		},
	})

	graft.Register(graft.Node[ports.InputResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FilesystemNodeID, WalkerNodeID},
		Run: func(ctx context.Context) (ports.InputResolver, error) {
			fsys, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(fsys, walker), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FilesystemNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			fsys, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(fsys), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FilesystemNodeID},
		Run: func(ctx context.Context) (ports.Verifier, error) {
			fsys, err := graft.Dep[billy.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewVerifier(fsys), nil
		},
	})
}
