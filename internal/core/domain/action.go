package domain

import (
	"path/filepath"
	"strings"
)

// CompileAction compiles one source file into one object file.
// Object and dependency-record paths are a pure function of the source path,
// so they are stable across runs.
type CompileAction struct {
	Module         *Module
	Source         string
	Object         string
	DependencyFile string
	NeedsCompile   bool
}

// NewCompileAction derives the output paths of source. The object path mirrors
// the source's location below the module source root so that equally named
// files in different directories do not collide.
func NewCompileAction(l Layout, m *Module, source, objectExtension string) CompileAction {
	rel, err := filepath.Rel(m.SourceRoot, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(source)
	}
	object := filepath.Join(l.ObjectsDir(m), rel+objectExtension)
	return CompileAction{
		Module:         m,
		Source:         source,
		Object:         object,
		DependencyFile: object + DependencyFileExtension,
	}
}

// LinkAction links a module's objects into its artifact.
type LinkAction struct {
	Module   *Module
	Artifact string
}
