package repository

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/retarget/internal/adapters/fs"
	"go.trai.ch/retarget/internal/core/ports"
)

// NodeID is the unique identifier for the repository opener Graft node.
const NodeID graft.ID = "adapter.repository"

func init() {
	graft.Register(graft.Node[ports.RepositoryOpener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.RepositoryOpener, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(walker, DefaultCacheSize), nil
		},
	})
}
