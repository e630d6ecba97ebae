package domain

import (
	"slices"
	"strings"
)

// BinaryType is the kind of artifact a module links into.
type BinaryType string

// Binary types.
const (
	BinaryApplication    BinaryType = "application"
	BinaryStaticLibrary  BinaryType = "static_library"
	BinaryDynamicLibrary BinaryType = "dynamic_library"
	BinaryShaderLibrary  BinaryType = "shader_library"
)

// ParseBinaryType resolves a binary type name. Dashes and underscores are interchangeable.
func ParseBinaryType(name string) (BinaryType, error) {
	normalized := BinaryType(strings.ReplaceAll(strings.ToLower(name), "-", "_"))
	switch normalized {
	case BinaryApplication, BinaryStaticLibrary, BinaryDynamicLibrary, BinaryShaderLibrary:
		return normalized, nil
	default:
		return "", Annotate(ErrUnknownBinaryType, "binary_type", name)
	}
}

// IsLibrary reports whether other modules can link against the artifact.
func (b BinaryType) IsLibrary() bool {
	return b == BinaryStaticLibrary || b == BinaryDynamicLibrary
}

// Scoped holds values keyed by platform scope.
type Scoped[T any] map[Platform][]T

// For returns the PlatformAny values followed by the values of p.
func (s Scoped[T]) For(p Platform) []T {
	out := slices.Clone(s[PlatformAny])
	if p != PlatformAny {
		out = append(out, s[p]...)
	}
	return out
}

// Module is a compilable unit. It is immutable once the project is loaded.
type Module struct {
	Name       InternedString
	Dir        string
	SourceRoot string
	BinaryType BinaryType
	OutputName string
	// Platforms restricts the targets the module is built for. Empty means all.
	Platforms []Platform

	Dependencies  Scoped[InternedString]
	HeaderPaths   Scoped[string]
	LibraryPaths  Scoped[string]
	LinkLibraries Scoped[string]
	Definitions   Scoped[string]
	Frameworks    Scoped[string]
	Resources     []string
}

// Output returns the artifact base name, defaulting to the module name.
func (m *Module) Output() string {
	if m.OutputName != "" {
		return m.OutputName
	}
	return m.Name.String()
}

// AvailableOn reports whether the module is built for p.
func (m *Module) AvailableOn(p Platform) bool {
	return len(m.Platforms) == 0 || slices.Contains(m.Platforms, p)
}

// DependenciesFor returns the any-platform and p-specific dependencies, without duplicates.
func (m *Module) DependenciesFor(p Platform) []InternedString {
	all := m.Dependencies.For(p)
	out := all[:0]
	seen := make(map[InternedString]struct{}, len(all))
	for _, d := range all {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
