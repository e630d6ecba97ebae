package domain

import "path/filepath"

const (
	// ForgeDirName is the name of the internal workspace directory.
	ForgeDirName = ".forge"

	// IntermediateDirName holds objects, dependency records and checksums.
	IntermediateDirName = "Intermediate"

	// BinariesDirName holds linked artifacts.
	BinariesDirName = "Binaries"

	// ObjectsDirName is the per-module directory for object files.
	ObjectsDirName = "Objects"

	// ChecksumFileName is the name of the persisted checksum cache.
	ChecksumFileName = "checksums.json"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "forge.yaml"

	// ModuleFileYAML is the YAML module definition file.
	ModuleFileYAML = "module.yaml"

	// ModuleFileHCL is the HCL module definition file.
	ModuleFileHCL = "module.hcl"

	// DependencyFileExtension is appended to object paths for dependency records.
	DependencyFileExtension = ".d"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultIntermediateRoot returns the intermediate root for a project rooted at root.
func DefaultIntermediateRoot(root string) string {
	return filepath.Join(root, ForgeDirName, IntermediateDirName)
}

// DefaultBinariesRoot returns the binaries root for a project rooted at root.
func DefaultBinariesRoot(root string) string {
	return filepath.Join(root, BinariesDirName)
}

// Layout resolves output paths for one platform and configuration.
type Layout struct {
	IntermediateRoot string
	BinariesRoot     string
	Platform         Platform
	Configuration    Configuration
}

// NewLayout returns the layout of p for the given target.
func NewLayout(p *Project, platform Platform, configuration Configuration) Layout {
	return Layout{
		IntermediateRoot: p.IntermediateRoot,
		BinariesRoot:     p.BinariesRoot,
		Platform:         platform,
		Configuration:    configuration,
	}
}

// PlatformIntermediateDir is <intermediate>/<platform>.
func (l Layout) PlatformIntermediateDir() string {
	return filepath.Join(l.IntermediateRoot, l.Platform.String())
}

// IntermediateDir is <intermediate>/<platform>/<configuration>.
func (l Layout) IntermediateDir() string {
	return filepath.Join(l.PlatformIntermediateDir(), l.Configuration.String())
}

// ModuleIntermediateDir holds everything compiled for module m.
func (l Layout) ModuleIntermediateDir(m *Module) string {
	return filepath.Join(l.IntermediateDir(), m.Name.String())
}

// ObjectsDir is the object directory of module m.
func (l Layout) ObjectsDir(m *Module) string {
	return filepath.Join(l.ModuleIntermediateDir(m), ObjectsDirName)
}

// ChecksumFile is the checksum cache of this platform and configuration.
func (l Layout) ChecksumFile() string {
	return filepath.Join(l.IntermediateDir(), ChecksumFileName)
}

// BinariesDir is <binaries>/<platform>/<configuration>.
func (l Layout) BinariesDir() string {
	return filepath.Join(l.BinariesRoot, l.Platform.String(), l.Configuration.String())
}
