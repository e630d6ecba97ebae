package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const root = "/work"

func newLoader(t *testing.T, files fstest.MapFS) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	l := config.NewLoader(log,
		config.WithFileSystem(config.NewMountedFS(root, files)),
		config.WithEnviron(func() []string { return []string{"SDK_ROOT=/opt/sdk", "1BAD=x"} }),
	)
	return l, log
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

const coreYAML = `
name: Core
type: static_library
output: CoreLib
sources: Source
header_paths:
  Any: [Include]
  Linux: [Include/Linux]
link_libraries:
  Linux: [pthread]
resources: [Assets]
`

const appHCL = `
name      = "App"
type      = "application"
platforms = [platform.Linux, platform.macOS]

dependencies = {
  Any = ["Core"]
}

header_paths = {
  Any = ["Include", env.SDK_ROOT]
}

definitions = {
  Linux = ["APP_LINUX=1"]
}

frameworks = {
  macOS = ["Metal"]
}
`

func TestLoad_Project(t *testing.T) {
	l, _ := newLoader(t, fstest.MapFS{
		"forge.yaml": file(`
project: Demo
modules: ["Modules/*"]
binaries: Out
toolchains:
  linux: gcc
`),
		"Modules/Core/module.yaml":      file(coreYAML),
		"Modules/Core/Source/core.cpp":  file(""),
		"Modules/App/module.hcl":        file(appHCL),
		"Modules/App/main.cpp":          file(""),
		"Modules/README.md":             file(""),
		"Modules/Core/Include/core.hpp": file(""),
	})

	project, err := l.Load(filepath.Join(root, "Modules", "App"))
	require.NoError(t, err)

	assert.Equal(t, "Demo", project.Name)
	assert.Equal(t, root, project.Root)
	assert.Equal(t, filepath.Join(root, ".forge", "Intermediate"), project.IntermediateRoot)
	assert.Equal(t, filepath.Join(root, "Out"), project.BinariesRoot)
	assert.Equal(t, map[domain.Platform]string{domain.PlatformLinux: "gcc"}, project.Toolchains)
	assert.Equal(t, 2, project.Len())

	coreDir := filepath.Join(root, "Modules", "Core")
	core, ok := project.Module(domain.NewInternedString("Core"))
	require.True(t, ok)

	wantCore := &domain.Module{
		Name:         domain.NewInternedString("Core"),
		Dir:          coreDir,
		SourceRoot:   filepath.Join(coreDir, "Source"),
		BinaryType:   domain.BinaryStaticLibrary,
		OutputName:   "CoreLib",
		Dependencies: domain.Scoped[domain.InternedString]{},
		HeaderPaths: domain.Scoped[string]{
			domain.PlatformAny:   {filepath.Join(coreDir, "Include")},
			domain.PlatformLinux: {filepath.Join(coreDir, "Include", "Linux")},
		},
		LibraryPaths:  domain.Scoped[string]{},
		LinkLibraries: domain.Scoped[string]{domain.PlatformLinux: {"pthread"}},
		Definitions:   domain.Scoped[string]{},
		Frameworks:    domain.Scoped[string]{},
		Resources:     []string{filepath.Join(coreDir, "Assets")},
	}
	if diff := cmp.Diff(wantCore, core, cmp.Comparer(func(a, b domain.InternedString) bool {
		return a.String() == b.String()
	})); diff != "" {
		t.Errorf("Core module mismatch (-want +got):\n%s", diff)
	}

	appDir := filepath.Join(root, "Modules", "App")
	app, ok := project.Module(domain.NewInternedString("App"))
	require.True(t, ok)
	assert.Equal(t, domain.BinaryApplication, app.BinaryType)
	assert.Equal(t, appDir, app.SourceRoot)
	assert.Equal(t, []domain.Platform{domain.PlatformLinux, domain.PlatformMacOS}, app.Platforms)
	assert.Equal(t, []string{"Core"}, namesOf(app.DependenciesFor(domain.PlatformLinux)))
	assert.Equal(t, []string{filepath.Join(appDir, "Include"), "/opt/sdk"}, app.HeaderPaths.For(domain.PlatformLinux))
	assert.Equal(t, []string{"APP_LINUX=1"}, app.Definitions.For(domain.PlatformLinux))
	assert.Equal(t, []string{"Metal"}, app.Frameworks.For(domain.PlatformMacOS))
	assert.Empty(t, app.Frameworks.For(domain.PlatformLinux))
}

func namesOf(names []domain.InternedString) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

func TestLoad_DefaultGlobSkipsOutputAndHiddenDirs(t *testing.T) {
	l, log := newLoader(t, fstest.MapFS{
		"forge.yaml":                           file("project: Demo\n"),
		"Core/module.yaml":                     file("name: Core\ntype: static_library\n"),
		"Docs/index.md":                        file(""),
		".git/HEAD":                            file(""),
		".forge/Intermediate/Linux/x.o":        file(""),
		"Binaries/Linux/Debug/libCore.a":       file(""),
		"Binaries/Linux/Debug/module.yaml.bak": file(""),
	})

	log.EXPECT().Warn("no module.yaml or module.hcl in Docs, skipping")

	project, err := l.Load(root)
	require.NoError(t, err)
	assert.Equal(t, 1, project.Len())
}

func TestLoad_RootOverride(t *testing.T) {
	l, _ := newLoader(t, fstest.MapFS{
		"config/forge.yaml":    file("project: Demo\nroot: ..\nmodules: [src/*]\nintermediate: build/tmp\n"),
		"src/Core/module.yaml": file("name: Core\ntype: dynamic_library\n"),
	})

	project, err := l.Load(filepath.Join(root, "config"))
	require.NoError(t, err)
	assert.Equal(t, root, project.Root)
	assert.Equal(t, filepath.Join(root, "build", "tmp"), project.IntermediateRoot)
	assert.Equal(t, 1, project.Len())
}

func TestDiscoverRoot(t *testing.T) {
	l, _ := newLoader(t, fstest.MapFS{
		"forge.yaml":             file("project: Demo\n"),
		"Modules/Core/Source/a.c": file(""),
	})

	dir, err := l.DiscoverRoot(filepath.Join(root, "Modules", "Core", "Source"))
	require.NoError(t, err)
	assert.Equal(t, root, dir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    fstest.MapFS
		sentinel error
		contains string
	}{
		{
			name:     "no project file",
			files:    fstest.MapFS{"Core/module.yaml": file("name: Core\ntype: application\n")},
			sentinel: domain.ErrConfigNotFound,
		},
		{
			name:     "missing project name",
			files:    fstest.MapFS{"forge.yaml": file("modules: ['*']\n")},
			sentinel: domain.ErrMissingProjectName,
		},
		{
			name:     "invalid project yaml",
			files:    fstest.MapFS{"forge.yaml": file("project: [unclosed\n")},
			contains: domain.ErrConfigParseFailed.Error(),
		},
		{
			name: "unknown toolchain platform",
			files: fstest.MapFS{
				"forge.yaml": file("project: Demo\ntoolchains:\n  Amiga: gcc\n"),
			},
			sentinel: domain.ErrUnknownPlatform,
		},
		{
			name: "invalid module name",
			files: fstest.MapFS{
				"forge.yaml":       file("project: Demo\n"),
				"Core/module.yaml": file("name: core lib\ntype: static_library\n"),
			},
			sentinel: domain.ErrInvalidModuleName,
		},
		{
			name: "unknown binary type",
			files: fstest.MapFS{
				"forge.yaml":       file("project: Demo\n"),
				"Core/module.yaml": file("name: Core\ntype: plugin\n"),
			},
			sentinel: domain.ErrUnknownBinaryType,
		},
		{
			name: "unknown dependency scope",
			files: fstest.MapFS{
				"forge.yaml":       file("project: Demo\n"),
				"Core/module.yaml": file("name: Core\ntype: static_library\ndependencies:\n  Amiga: [Base]\n"),
			},
			sentinel: domain.ErrUnknownPlatform,
		},
		{
			name: "duplicate module",
			files: fstest.MapFS{
				"forge.yaml":       file("project: Demo\n"),
				"A/module.yaml":    file("name: Core\ntype: static_library\n"),
				"B/module.yaml":    file("name: Core\ntype: static_library\n"),
			},
			sentinel: domain.ErrModuleAlreadyExists,
		},
		{
			name: "missing dependency",
			files: fstest.MapFS{
				"forge.yaml":      file("project: Demo\n"),
				"App/module.yaml": file("name: App\ntype: application\ndependencies:\n  Any: [Core]\n"),
			},
			sentinel: domain.ErrMissingDependency,
		},
		{
			name: "cycle",
			files: fstest.MapFS{
				"forge.yaml":    file("project: Demo\n"),
				"A/module.yaml": file("name: A\ntype: static_library\ndependencies:\n  Any: [B]\n"),
				"B/module.yaml": file("name: B\ntype: static_library\ndependencies:\n  Linux: [A]\n"),
			},
			sentinel: domain.ErrCycleDetected,
		},
		{
			name: "invalid hcl",
			files: fstest.MapFS{
				"forge.yaml":     file("project: Demo\n"),
				"A/module.hcl":   file("name = \n"),
			},
			contains: domain.ErrConfigParseFailed.Error(),
		},
		{
			name: "hcl missing required attribute",
			files: fstest.MapFS{
				"forge.yaml":   file("project: Demo\n"),
				"A/module.hcl": file("name = \"A\"\n"),
			},
			contains: domain.ErrConfigParseFailed.Error(),
		},
		{
			name: "hcl unknown variable",
			files: fstest.MapFS{
				"forge.yaml":   file("project: Demo\n"),
				"A/module.hcl": file("name = \"A\"\ntype = \"application\"\nsources = env.NOT_SET\n"),
			},
			contains: domain.ErrConfigParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLoader(t, tt.files)

			_, err := l.Load(root)
			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestLoad_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forge.yaml"), []byte("project: Demo\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Core"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Core", "module.yaml"),
		[]byte("name: Core\ntype: static_library\n"), 0o600))

	ctrl := gomock.NewController(t)
	l := config.NewLoader(mocks.NewMockLogger(ctrl))

	project, err := l.Load(filepath.Join(dir, "Core"))
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(project.Root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
	assert.Equal(t, 1, project.Len())
}
