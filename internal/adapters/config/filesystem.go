package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view of the disk the loader needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	// Glob returns the paths matching pattern.
	Glob(pattern string) ([]string, error)
}

// OSFS reads the real file system.
type OSFS struct{}

// Stat implements FileSystem.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // Config paths come from discovery
}

// Glob implements FileSystem.
func (OSFS) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// MountedFS serves an fs.FS, such as fstest.MapFS, as if it were mounted at
// Root.
type MountedFS struct {
	FS   fs.FS
	Root string
}

// NewMountedFS mounts fsys at root.
func NewMountedFS(root string, fsys fs.FS) *MountedFS {
	return &MountedFS{FS: fsys, Root: filepath.Clean(root)}
}

// Stat implements FileSystem.
func (m *MountedFS) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.rel(path))
}

// ReadFile implements FileSystem.
func (m *MountedFS) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.rel(path))
}

// Glob implements FileSystem.
func (m *MountedFS) Glob(pattern string) ([]string, error) {
	matches, err := fs.Glob(m.FS, filepath.ToSlash(m.rel(pattern)))
	if err != nil {
		return nil, err
	}
	for i, match := range matches {
		matches[i] = filepath.Join(m.Root, filepath.FromSlash(match))
	}
	return matches, nil
}

// rel maps an absolute path below Root into the mounted file system. Paths
// outside Root are returned unchanged and fail to resolve.
func (m *MountedFS) rel(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	path = filepath.Clean(path)
	if path == m.Root {
		return "."
	}
	if m.Root == string(filepath.Separator) {
		return filepath.ToSlash(strings.TrimPrefix(path, m.Root))
	}
	if !strings.HasPrefix(path, m.Root+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(strings.TrimPrefix(path, m.Root+string(filepath.Separator)))
}
