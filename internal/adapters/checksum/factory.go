package checksum

import "go.trai.ch/forge/internal/core/ports"

var _ ports.ChecksumStoreFactory = (*Factory)(nil)

// Factory opens one Store per build session.
type Factory struct {
	opts []Option
}

// NewFactory creates a Factory whose stores are built with opts.
func NewFactory(opts ...Option) *Factory {
	return &Factory{opts: opts}
}

// Open returns an unloaded store for the project rooted at root.
func (f *Factory) Open(root, path string) ports.ChecksumStore {
	return NewStore(root, path, f.opts...)
}
