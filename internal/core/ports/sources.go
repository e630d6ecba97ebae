package ports

import "go.trai.ch/forge/internal/core/domain"

//go:generate mockgen -source=sources.go -destination=mocks/mock_sources.go -package=mocks

// SourceCollector enumerates the compilable sources of a module.
type SourceCollector interface {
	// Collect returns absolute source paths below the module's source root that
	// have one of extensions and belong to platform, sorted lexically.
	Collect(module *domain.Module, platform domain.Platform, extensions []string) ([]string, error)
}

// DependencyReader reads compiler-emitted dependency records.
type DependencyReader interface {
	// Read returns the headers recorded for a source. A missing record yields
	// no headers and no error.
	Read(path string) ([]string, error)
}
