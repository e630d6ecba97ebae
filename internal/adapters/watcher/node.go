package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/fs"     //nolint:depguard // Fingerprints come from the fs adapter
	"go.trai.ch/forge/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the file watcher Graft node.
	NodeID graft.ID = "adapter.watcher"
	// FilterNodeID is the unique identifier for the change filter Graft node.
	FilterNodeID graft.ID = "adapter.watcher.filter"
)

func init() {
	// A watcher holds OS resources and is started once, so every resolution
	// gets a new one.
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})

	graft.Register(graft.Node[*ChangeFilter]{
		ID:        FilterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FingerprinterNodeID},
		Run: func(ctx context.Context) (*ChangeFilter, error) {
			fp, err := graft.Dep[*fs.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			return NewChangeFilter(fp), nil
		},
	})
}
