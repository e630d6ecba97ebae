package checksum

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the checksum store factory Graft node.
const NodeID graft.ID = "adapter.checksum"

func init() {
	graft.Register(graft.Node[ports.ChecksumStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ChecksumStoreFactory, error) {
			return NewFactory(), nil
		},
	})
}
