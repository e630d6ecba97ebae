// Package app implements the application layer for forge.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/forge/internal/adapters/detector"
	"go.trai.ch/forge/internal/adapters/shell"
	"go.trai.ch/forge/internal/adapters/watcher"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/forge/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader       ports.ConfigLoader
	toolchains   ports.ToolchainProvider
	checksums    ports.ChecksumStoreFactory
	orchestrator *orchestrator.Orchestrator
	tracer       ports.Tracer
	renderer     ports.Renderer
	logger       ports.Logger
	metrics      ports.Metrics
	detector     *detector.Detector

	watcher  ports.Watcher
	filter   *watcher.ChangeFilter
	sources  ports.SourceCollector
	debounce time.Duration

	host  string
	getwd func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	toolchains ports.ToolchainProvider,
	checksums ports.ChecksumStoreFactory,
	orch *orchestrator.Orchestrator,
	tracer ports.Tracer,
	renderer ports.Renderer,
	log ports.Logger,
	metrics ports.Metrics,
) *App {
	return &App{
		loader:       loader,
		toolchains:   toolchains,
		checksums:    checksums,
		orchestrator: orch,
		tracer:       tracer,
		renderer:     renderer,
		logger:       log,
		metrics:      metrics,
		detector:     detector.New(),
		debounce:     watcher.DefaultDebounceWindow,
		host:         runtime.GOOS,
		getwd:        os.Getwd,
	}
}

// WithWatcher enables compile --watch. Changes are filtered by content and
// the filter is primed with the sources of the selected modules.
func (a *App) WithWatcher(w ports.Watcher, filter *watcher.ChangeFilter, sources ports.SourceCollector) *App {
	a.watcher = w
	a.filter = filter
	a.sources = sources
	return a
}

// WithDetector replaces the output mode detector.
func (a *App) WithDetector(d *detector.Detector) *App {
	a.detector = d
	return a
}

// WithDebounce sets the quiet period before a watch-mode rebuild.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// WithHost sets the GOOS the default platform is derived from.
func (a *App) WithHost(goos string) *App {
	a.host = goos
	return a
}

// WithWorkingDir makes configuration discovery start at dir.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	// Dir is where project discovery starts. Empty means the working directory.
	Dir                  string
	Platform             string
	Configuration        string
	Modules              []string
	Recompile            bool
	PrintCompileCommands bool
	PrintLinkCommands    bool
	Watch                bool
	MetricsFile          string
	OutputMode           string
	// Jobs overrides the number of compile workers. Zero keeps the default.
	Jobs int
	// SingleThreaded runs every compile and link on one goroutine, in order.
	SingleThreaded bool
}

// target is a resolved compile request.
type target struct {
	project       *domain.Project
	platform      domain.Platform
	configuration domain.Configuration
	toolchain     ports.Toolchain
	modules       []*domain.Module
}

// Compile builds the selected modules. A build with failed modules returns
// domain.ErrBuildFailed after the summary was printed.
func (a *App) Compile(ctx context.Context, opts CompileOptions) error {
	t, err := a.resolve(opts)
	if err != nil {
		return err
	}

	if opts.Recompile {
		if err := a.clean(t.project, t.platform, t.configuration, opts.Modules); err != nil {
			return err
		}
	}

	if a.detector.Resolve(opts.OutputMode) == detector.ModeInteractive {
		ctx = shell.WithTerminal(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.renderer.Start(ctx); err != nil {
			return err
		}
		return a.renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = a.renderer.Stop()
		}()

		if opts.Watch {
			return a.watch(ctx, t, opts)
		}
		return a.buildOnce(ctx, t, opts)
	})

	return g.Wait()
}

func (a *App) resolve(opts CompileOptions) (*target, error) {
	project, err := a.load(opts.Dir)
	if err != nil {
		return nil, err
	}

	platform, err := a.platform(opts.Platform)
	if err != nil {
		return nil, err
	}

	configuration := domain.ConfigurationDebug
	if opts.Configuration != "" {
		if configuration, err = domain.ParseConfiguration(opts.Configuration); err != nil {
			return nil, err
		}
	}

	toolchain, err := a.toolchains.For(project, platform)
	if err != nil {
		return nil, err
	}

	modules, err := project.Select(platform, opts.Modules)
	if err != nil {
		return nil, zerr.With(err, "project", project.Name)
	}

	if len(opts.Modules) == 0 {
		a.logger.Warn(fmt.Sprintf("No module specified, compiling all: %s", moduleNames(modules)))
	} else {
		a.logger.Info(fmt.Sprintf("Compiling specified modules: %s", strings.Join(opts.Modules, ", ")))
	}
	a.logger.Info(fmt.Sprintf("Compiling on %s targeting %s (%s) with %s",
		a.host, platform, configuration, toolchain.Name()))

	return &target{
		project:       project,
		platform:      platform,
		configuration: configuration,
		toolchain:     toolchain,
		modules:       modules,
	}, nil
}

func (a *App) load(dir string) (*domain.Project, error) {
	if dir == "" {
		cwd, err := a.getwd()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
		}
		dir = cwd
	}

	project, err := a.loader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// platform parses name, defaulting to the desktop platform of the host.
func (a *App) platform(name string) (domain.Platform, error) {
	if name != "" {
		return domain.ParsePlatform(name)
	}
	p, ok := domain.HostPlatform(a.host)
	if !ok {
		return "", domain.Annotate(domain.ErrUnsupportedPlatform, "host", a.host)
	}
	return p, nil
}

func (a *App) buildOnce(ctx context.Context, t *target, opts CompileOptions) error {
	report, err := a.build(ctx, t, opts)
	if err != nil {
		return err
	}

	if err := a.writeMetrics(opts.MetricsFile); err != nil {
		return err
	}

	if !report.Succeeded() {
		return domain.Annotate(domain.ErrBuildFailed, "project", report.Project)
	}
	return nil
}

// build runs one session under a root span. The summary is written to the
// root span so it is rendered after the output of every action.
func (a *App) build(ctx context.Context, t *target, opts CompileOptions) (*orchestrator.Report, error) {
	sessionID := uuid.NewString()
	a.logger.Info(fmt.Sprintf("Starting build session %s", sessionID))

	ctx, span := a.tracer.Start(ctx, "forge compile",
		ports.WithAttribute("forge.session", sessionID),
		ports.WithAttribute("forge.project", t.project.Name),
		ports.WithAttribute("forge.platform", t.platform.String()),
		ports.WithAttribute("forge.configuration", t.configuration.String()),
	)
	defer span.End()

	layout := domain.NewLayout(t.project, t.platform, t.configuration)
	store := a.checksums.Open(t.project.Root, layout.ChecksumFile())

	sessionOpts, closePool := poolOptions(opts)
	defer closePool()

	session := a.orchestrator.NewSession(t.project, t.toolchain, store, orchestrator.Options{
		Platform:             t.platform,
		Configuration:        t.configuration,
		PrintCompileCommands: opts.PrintCompileCommands,
		PrintLinkCommands:    opts.PrintLinkCommands,
	}, sessionOpts...)

	report, err := session.Run(ctx, t.modules)
	if err != nil {
		span.RecordError(err)
		return report, err
	}

	writeSummary(span, report)
	if !report.Succeeded() {
		span.RecordError(domain.ErrBuildFailed)
	}
	return report, nil
}

// poolOptions gives the session a private pool when the worker count is
// overridden. The returned func releases it.
func poolOptions(opts CompileOptions) ([]orchestrator.SessionOption, func()) {
	var poolOpts []scheduler.Option
	switch {
	case opts.SingleThreaded:
		poolOpts = append(poolOpts, scheduler.WithSingleThreaded())
	case opts.Jobs > 0:
		poolOpts = append(poolOpts, scheduler.WithWorkers(opts.Jobs))
	default:
		return nil, func() {}
	}

	pool := scheduler.NewPool(poolOpts...)
	return []orchestrator.SessionOption{orchestrator.WithPool(pool)}, pool.Close
}

func writeSummary(span ports.Span, report *orchestrator.Report) {
	for _, m := range report.Failures() {
		_, _ = fmt.Fprintf(span, "Module %s failed to %s\n", m.Name, m.Phase())
	}
	if report.Succeeded() {
		_, _ = fmt.Fprintf(span, "Project %s compiled successfully\n", report.Project)
	} else {
		_, _ = fmt.Fprintf(span, "Project %s generated compile errors\n", report.Project)
	}
}

func (a *App) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	return a.metrics.WriteTextfile(path)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Dir      string
	Platform string
	// Configuration limits the clean to one configuration. Empty cleans all.
	Configuration string
	// Modules limits the clean to the named modules. Empty cleans all.
	Modules []string
}

// Clean removes intermediate artifacts of one platform.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	project, err := a.load(opts.Dir)
	if err != nil {
		return err
	}

	platform, err := a.platform(opts.Platform)
	if err != nil {
		return err
	}

	var configuration domain.Configuration
	if opts.Configuration != "" {
		if configuration, err = domain.ParseConfiguration(opts.Configuration); err != nil {
			return err
		}
	}

	return a.clean(project, platform, configuration, opts.Modules)
}

// clean removes the intermediate directory of platform. An empty
// configuration covers every configuration; named modules narrow it to their
// own directories.
func (a *App) clean(
	project *domain.Project,
	platform domain.Platform,
	configuration domain.Configuration,
	modules []string,
) error {
	configurations := domain.AllConfigurations
	if configuration != "" {
		configurations = []domain.Configuration{configuration}
	}

	var paths []string
	switch {
	case len(modules) > 0:
		for _, name := range modules {
			m, ok := project.Module(domain.NewInternedString(name))
			if !ok {
				return domain.Annotate(domain.ErrModuleNotFound, "module", name)
			}
			for _, c := range configurations {
				paths = append(paths, domain.NewLayout(project, platform, c).ModuleIntermediateDir(m))
			}
		}
		a.logger.Info(fmt.Sprintf("Cleaning specified modules: %s", strings.Join(modules, ", ")))
	case configuration != "":
		paths = append(paths, domain.NewLayout(project, platform, configuration).IntermediateDir())
	default:
		paths = append(paths, domain.NewLayout(project, platform, domain.ConfigurationDebug).PlatformIntermediateDir())
	}

	a.logger.Info(fmt.Sprintf("Cleaning intermediate for platform %s", platform))

	var errs error
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
		}
	}
	return errs
}

func moduleNames(modules []*domain.Module) string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name.String()
	}
	return strings.Join(names, ", ")
}
