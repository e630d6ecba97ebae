package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Project is the validated set of modules loaded from configuration.
type Project struct {
	Name string
	Root string
	// IntermediateRoot holds objects, dependency records and checksums.
	IntermediateRoot string
	// BinariesRoot holds linked artifacts and copied resources.
	BinariesRoot string
	// Toolchains overrides compiler selection per platform, e.g. "Linux": "gcc".
	Toolchains map[Platform]string

	modules map[InternedString]*Module
}

// NewProject creates an empty project rooted at root.
func NewProject(name, root string) *Project {
	return &Project{
		Name:       name,
		Root:       root,
		Toolchains: make(map[Platform]string),
		modules:    make(map[InternedString]*Module),
	}
}

// AddModule registers m. Names must be unique.
func (p *Project) AddModule(m *Module) error {
	if _, exists := p.modules[m.Name]; exists {
		return Annotate(ErrModuleAlreadyExists, "module", m.Name.String())
	}
	p.modules[m.Name] = m
	return nil
}

// Module looks up a module by name.
func (p *Project) Module(name InternedString) (*Module, bool) {
	m, ok := p.modules[name]
	return m, ok
}

// Len returns the number of modules.
func (p *Project) Len() int {
	return len(p.modules)
}

// Modules yields every module sorted by name.
func (p *Project) Modules() iter.Seq[*Module] {
	return func(yield func(*Module) bool) {
		for _, name := range p.sortedNames() {
			if !yield(p.modules[name]) {
				return
			}
		}
	}
}

func (p *Project) sortedNames() []InternedString {
	names := slices.Collect(maps.Keys(p.modules))
	SortInterned(names)
	return names
}

// Validate checks that every dependency exists and that no platform scope
// contains a cycle.
func (p *Project) Validate() error {
	for _, name := range p.sortedNames() {
		m := p.modules[name]
		for _, scope := range sortedScopes(m.Dependencies) {
			for _, dep := range m.Dependencies[scope] {
				if _, ok := p.modules[dep]; !ok {
					err := Annotate(ErrMissingDependency, "module", name.String())
					err = zerr.With(err, "dependency", dep.String())
					return zerr.With(err, "platform", scope.String())
				}
			}
		}
	}

	for _, platform := range AllPlatforms {
		if _, err := p.order(platform, p.sortedNames()); err != nil {
			return zerr.With(err, "platform", platform.String())
		}
	}
	return nil
}

// Select resolves the modules to build for platform. With no names every
// module available on the platform is selected. Otherwise the named modules
// and their transitive dependencies are selected. The result is in dependency
// order: a module always comes after the modules it depends on.
func (p *Project) Select(platform Platform, names []string) ([]*Module, error) {
	var roots []InternedString
	if len(names) == 0 {
		for _, name := range p.sortedNames() {
			if p.modules[name].AvailableOn(platform) {
				roots = append(roots, name)
			}
		}
	} else {
		for _, n := range names {
			name := NewInternedString(n)
			m, ok := p.modules[name]
			if !ok {
				return nil, Annotate(ErrModuleNotFound, "module", n)
			}
			if !m.AvailableOn(platform) {
				err := Annotate(ErrModuleNotAvailable, "module", n)
				return nil, zerr.With(err, "platform", platform.String())
			}
			roots = append(roots, name)
		}
	}

	ordered, err := p.order(platform, roots)
	if err != nil {
		return nil, err
	}

	for _, m := range ordered {
		if !m.AvailableOn(platform) {
			err := Annotate(ErrModuleNotAvailable, "module", m.Name.String())
			return nil, zerr.With(err, "platform", platform.String())
		}
	}
	return ordered, nil
}

// order runs a depth-first topological sort from roots over the dependency
// edges of platform.
func (p *Project) order(platform Platform, roots []InternedString) ([]*Module, error) {
	const (
		unvisited = iota
		visiting
		visited
	)

	state := make(map[InternedString]int, len(p.modules))
	ordered := make([]*Module, 0, len(p.modules))
	var path []InternedString

	var visit func(name InternedString) error
	visit = func(name InternedString) error {
		m, ok := p.modules[name]
		if !ok {
			return Annotate(ErrMissingDependency, "dependency", name.String())
		}

		state[name] = visiting
		path = append(path, name)

		for _, dep := range m.DependenciesFor(platform) {
			switch state[dep] {
			case visiting:
				return buildCycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[name] = visited
		path = path[:len(path)-1]
		ordered = append(ordered, m)
		return nil
	}

	for _, name := range roots {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}
	return ordered, nil
}

// buildCycleError renders the cycle as "A -> B -> A".
func buildCycleError(path []InternedString, dep InternedString) error {
	start := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-start+1)
	for _, n := range path[start:] {
		parts = append(parts, n.String())
	}
	parts = append(parts, dep.String())
	return Annotate(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

func sortedScopes[T any](s Scoped[T]) []Platform {
	scopes := slices.Collect(maps.Keys(s))
	slices.Sort(scopes)
	return scopes
}
