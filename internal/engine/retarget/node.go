package retarget

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the decider Graft node.
const NodeID graft.ID = "engine.retarget"

func init() {
	graft.Register(graft.Node[*Decider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Decider, error) {
			return NewDecider(), nil
		},
	})
}
