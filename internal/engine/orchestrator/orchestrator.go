// Package orchestrator drives the compile and link phases of a build session.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Options select what a session builds and how much it prints.
type Options struct {
	Platform             domain.Platform
	Configuration        domain.Configuration
	PrintCompileCommands bool
	PrintLinkCommands    bool
}

// Orchestrator holds the collaborators shared by every build session.
type Orchestrator struct {
	pool      *scheduler.Pool
	collector ports.SourceCollector
	depReader ports.DependencyReader
	copier    ports.ResourceCopier
	tracer    ports.Tracer
	logger    ports.Logger
	metrics   ports.Metrics
}

// New creates an Orchestrator.
func New(
	pool *scheduler.Pool,
	collector ports.SourceCollector,
	depReader ports.DependencyReader,
	copier ports.ResourceCopier,
	tracer ports.Tracer,
	logger ports.Logger,
	metrics ports.Metrics,
) *Orchestrator {
	return &Orchestrator{
		pool:      pool,
		collector: collector,
		depReader: depReader,
		copier:    copier,
		tracer:    tracer,
		logger:    logger,
		metrics:   metrics,
	}
}

// Session is one build of a set of modules for one platform and configuration.
type Session struct {
	*Orchestrator

	pool      *scheduler.Pool
	project   *domain.Project
	toolchain ports.Toolchain
	store     ports.ChecksumStore
	layout    domain.Layout
	opts      Options

	results map[domain.InternedString]*domain.ModuleResult
}

// SessionOption customizes a single session.
type SessionOption func(*Session)

// WithPool runs the session on p instead of the orchestrator's shared pool.
func WithPool(p *scheduler.Pool) SessionOption {
	return func(s *Session) {
		s.pool = p
	}
}

// NewSession prepares a build of project with toolchain. The checksum store is
// owned by the session: it is loaded when Run starts and saved when it ends.
func (o *Orchestrator) NewSession(
	project *domain.Project,
	toolchain ports.Toolchain,
	store ports.ChecksumStore,
	opts Options,
	sessionOpts ...SessionOption,
) *Session {
	s := &Session{
		Orchestrator: o,
		pool:         o.pool,
		project:      project,
		toolchain:    toolchain,
		store:        store,
		layout:       domain.NewLayout(project, opts.Platform, opts.Configuration),
		opts:         opts,
	}
	for _, opt := range sessionOpts {
		opt(s)
	}
	return s
}

// Layout returns the output locations of the session.
func (s *Session) Layout() domain.Layout {
	return s.layout
}

// Run compiles and links modules, which must be in dependency order as
// returned by domain.Project.Select. Module failures are reported through the
// Report; the returned error is reserved for failures of the session itself.
func (s *Session) Run(ctx context.Context, modules []*domain.Module) (*Report, error) {
	if err := s.store.Load(); err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring checksum file, every source will compile: %v", err))
	}

	s.results = make(map[domain.InternedString]*domain.ModuleResult, len(modules))
	names := make([]string, len(modules))
	deps := make(map[string][]string, len(modules))
	for i, m := range modules {
		s.results[m.Name] = domain.NewModuleResult(m.Name)
		names[i] = m.Name.String()
		for _, d := range m.DependenciesFor(s.opts.Platform) {
			deps[names[i]] = append(deps[names[i]], d.String())
		}
	}
	s.tracer.EmitPlan(ctx, names, deps)

	runErr := scheduler.ParallelForEach(ctx, s.pool, modules, s.buildModule)

	if err := s.store.Save(); err != nil {
		runErr = errors.Join(runErr, err)
	}

	report := s.report(modules)
	if runErr != nil {
		return report, zerr.Wrap(runErr, "build session failed")
	}
	return report, nil
}

// buildModule runs both phases of m. Every path ends with the cell in a
// terminal state so that dependents waiting on it are released.
func (s *Session) buildModule(ctx context.Context, m *domain.Module) (err error) {
	cell := s.results[m.Name]
	defer func() {
		r := recover()
		if !cell.State().IsTerminal() {
			reason := "build of module aborted"
			switch {
			case r != nil:
				reason = fmt.Sprintf("build of module panicked: %v", r)
			case err != nil:
				reason = err.Error()
			}
			_ = cell.CompleteLink(domain.StateLinkFailed, reason)
			s.metrics.ObserveModule(m.Name.String(), domain.StateLinkFailed.String())
		}
		if r != nil {
			panic(r)
		}
	}()

	out := s.compileModule(ctx, m)
	if err := cell.CompleteCompile(out.state); err != nil {
		return err
	}

	if out.state != domain.StateCompilationFailed {
		if err := s.copyResources(m); err != nil {
			out.state = domain.StateCompilationFailed
			out.diagnostics = err.Error()
		}
	}

	state, diagnostics := s.linkModule(ctx, m, out)
	s.metrics.ObserveModule(m.Name.String(), state.String())
	return cell.CompleteLink(state, diagnostics)
}

func (s *Session) dependencies(m *domain.Module) []*domain.Module {
	names := m.DependenciesFor(s.opts.Platform)
	deps := make([]*domain.Module, 0, len(names))
	for _, name := range names {
		if dep, ok := s.project.Module(name); ok {
			deps = append(deps, dep)
		}
	}
	return deps
}
