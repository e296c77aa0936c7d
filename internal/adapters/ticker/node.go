package ticker

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the tick loop Graft node.
const NodeID graft.ID = "adapter.ticker"

func init() {
	graft.Register(graft.Node[*Loop]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Loop, error) {
			return New(), nil
		},
	})
}
