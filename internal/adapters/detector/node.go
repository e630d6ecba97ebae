package detector

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the output mode detector Graft node.
const NodeID graft.ID = "adapter.detector"

// Detector resolves the output mode of a command invocation.
type Detector struct {
	detect func() OutputMode
}

// New creates a Detector probing the process environment.
func New() *Detector {
	return &Detector{detect: DetectEnvironment}
}

// Resolve returns the output mode for userFlag.
func (d *Detector) Resolve(userFlag string) OutputMode {
	return ResolveMode(d.detect(), userFlag)
}

func init() {
	graft.Register(graft.Node[*Detector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (*Detector, error) {
			return New(), nil
		},
	})
}
