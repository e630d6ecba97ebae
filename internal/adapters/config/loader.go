// Package config loads the project file and its module files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var validNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// defaultModuleGlobs are searched when forge.yaml lists no modules.
var defaultModuleGlobs = []string{"*"}

// Loader implements ports.ConfigLoader.
type Loader struct {
	logger  ports.Logger
	fs      FileSystem
	environ func() []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem reads configuration from fsys instead of the disk.
func WithFileSystem(fsys FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithEnviron sets the variables visible as env.<NAME> in module.hcl.
func WithEnviron(environ func() []string) Option {
	return func(l *Loader) {
		l.environ = environ
	}
}

// NewLoader creates a Loader reporting skipped module directories to logger.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		logger:  logger,
		fs:      OSFS{},
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DiscoverRoot implements ports.ConfigLoader.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "cwd", cwd)
	}

	for {
		if info, err := l.fs.Stat(filepath.Join(dir, domain.ProjectFileName)); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", domain.Annotate(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

// Load implements ports.ConfigLoader.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	dir, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, domain.ProjectFileName)
	var pf ProjectFile
	if err := l.readYAML(configPath, &pf); err != nil {
		return nil, err
	}

	project, err := newProject(&pf, configPath)
	if err != nil {
		return nil, err
	}

	moduleDirs, err := l.moduleDirs(project, pf.Modules)
	if err != nil {
		return nil, err
	}

	for _, moduleDir := range moduleDirs {
		if err := l.loadModule(project, moduleDir); err != nil {
			return nil, err
		}
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func newProject(pf *ProjectFile, configPath string) (*domain.Project, error) {
	if pf.Project == "" {
		return nil, domain.Annotate(domain.ErrMissingProjectName, "file", configPath)
	}
	if !validNameRegex.MatchString(pf.Project) {
		err := domain.Annotate(domain.ErrInvalidModuleName, "project", pf.Project)
		return nil, zerr.With(err, "file", configPath)
	}

	root := resolvePath(filepath.Dir(configPath), pf.Root)
	project := domain.NewProject(pf.Project, root)

	project.IntermediateRoot = domain.DefaultIntermediateRoot(root)
	if pf.Intermediate != "" {
		project.IntermediateRoot = resolvePath(root, pf.Intermediate)
	}
	project.BinariesRoot = domain.DefaultBinariesRoot(root)
	if pf.Binaries != "" {
		project.BinariesRoot = resolvePath(root, pf.Binaries)
	}

	for name, compiler := range pf.Toolchains {
		platform, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, zerr.With(err, "file", configPath)
		}
		project.Toolchains[platform] = compiler
	}
	return project, nil
}

// moduleDirs expands the module globs into sorted, unique directories.
// Hidden directories and the output roots are never module directories.
func (l *Loader) moduleDirs(project *domain.Project, globs []string) ([]string, error) {
	if len(globs) == 0 {
		globs = defaultModuleGlobs
	}

	dirs := make(map[string]struct{})
	for _, pattern := range globs {
		matches, err := l.fs.Glob(filepath.Join(project.Root, pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "glob", pattern)
		}
		for _, match := range matches {
			info, err := l.fs.Stat(match)
			if err != nil || !info.IsDir() || l.ignored(project, match) {
				continue
			}
			dirs[filepath.Clean(match)] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(dirs)), nil
}

func (l *Loader) ignored(project *domain.Project, dir string) bool {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return true
	}
	for _, out := range []string{project.IntermediateRoot, project.BinariesRoot} {
		if dir == out || strings.HasPrefix(dir, out+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (l *Loader) loadModule(project *domain.Project, dir string) error {
	mf, file, err := l.readModuleFile(dir)
	if err != nil {
		return err
	}
	if mf == nil {
		rel, _ := filepath.Rel(project.Root, dir)
		l.logger.Warn(fmt.Sprintf("no %s or %s in %s, skipping", domain.ModuleFileYAML, domain.ModuleFileHCL, rel))
		return nil
	}

	m, err := buildModule(mf, dir)
	if err != nil {
		return zerr.With(err, "file", file)
	}
	if err := project.AddModule(m); err != nil {
		return zerr.With(err, "file", file)
	}
	return nil
}

// readModuleFile returns the decoded module file of dir, or nil when dir has
// none. module.yaml wins over module.hcl.
func (l *Loader) readModuleFile(dir string) (*ModuleFile, string, error) {
	yamlPath := filepath.Join(dir, domain.ModuleFileYAML)
	if l.exists(yamlPath) {
		var mf ModuleFile
		if err := l.readYAML(yamlPath, &mf); err != nil {
			return nil, yamlPath, err
		}
		return &mf, yamlPath, nil
	}

	hclPath := filepath.Join(dir, domain.ModuleFileHCL)
	if l.exists(hclPath) {
		src, err := l.fs.ReadFile(hclPath)
		if err != nil {
			return nil, hclPath, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", hclPath)
		}
		mf, err := decodeHCL(src, hclPath, l.environ())
		return mf, hclPath, err
	}

	return nil, "", nil
}

func (l *Loader) exists(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (l *Loader) readYAML(path string, target any) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Annotate(domain.ErrConfigNotFound, "file", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}
	return nil
}

func buildModule(mf *ModuleFile, dir string) (*domain.Module, error) {
	if !validNameRegex.MatchString(mf.Name) {
		return nil, domain.Annotate(domain.ErrInvalidModuleName, "module", mf.Name)
	}

	binaryType, err := domain.ParseBinaryType(mf.Type)
	if err != nil {
		return nil, zerr.With(err, "module", mf.Name)
	}

	m := &domain.Module{
		Name:       domain.NewInternedString(mf.Name),
		Dir:        dir,
		SourceRoot: resolvePath(dir, mf.Sources),
		BinaryType: binaryType,
		OutputName: mf.Output,
	}

	for _, name := range mf.Platforms {
		p, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, zerr.With(err, "module", mf.Name)
		}
		if !slices.Contains(m.Platforms, p) {
			m.Platforms = append(m.Platforms, p)
		}
	}

	deps, err := scopedValues(mf.Dependencies, domain.NewInternedString)
	if err != nil {
		return nil, zerr.With(err, "module", mf.Name)
	}
	m.Dependencies = deps

	resolve := func(p string) string { return resolvePath(dir, p) }
	identity := func(s string) string { return s }

	fields := []struct {
		target *domain.Scoped[string]
		values scoped
		conv   func(string) string
	}{
		{&m.HeaderPaths, mf.HeaderPaths, resolve},
		{&m.LibraryPaths, mf.LibraryPaths, resolve},
		{&m.LinkLibraries, mf.LinkLibraries, identity},
		{&m.Definitions, mf.Definitions, identity},
		{&m.Frameworks, mf.Frameworks, identity},
	}
	for _, f := range fields {
		values, err := scopedValues(f.values, f.conv)
		if err != nil {
			return nil, zerr.With(err, "module", mf.Name)
		}
		*f.target = values
	}

	for _, r := range mf.Resources {
		m.Resources = append(m.Resources, resolve(r))
	}
	return m, nil
}

// scopedValues parses the platform keys of values and converts each entry.
func scopedValues[T any](values scoped, conv func(string) T) (domain.Scoped[T], error) {
	out := make(domain.Scoped[T], len(values))
	for key, list := range values {
		platform, err := domain.ParsePlatform(key)
		if err != nil {
			return nil, err
		}
		for _, v := range list {
			out[platform] = append(out[platform], conv(v))
		}
	}
	return out, nil
}

// resolvePath joins a relative p onto base. An empty p yields base.
func resolvePath(base, p string) string {
	switch {
	case p == "":
		return filepath.Clean(base)
	case filepath.IsAbs(p):
		return filepath.Clean(p)
	default:
		return filepath.Join(base, p)
	}
}
