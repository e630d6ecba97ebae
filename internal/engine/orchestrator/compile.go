package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// compileOutcome is the result of the compile phase of one module.
type compileOutcome struct {
	state       domain.ModuleState
	objects     []string
	diagnostics string
}

// compileJob is an action together with the headers its last dependency
// record listed.
type compileJob struct {
	action      domain.CompileAction
	headers     []string
	diagnostics string
}

func (s *Session) compileModule(ctx context.Context, m *domain.Module) compileOutcome {
	failed := func(err error) compileOutcome {
		return compileOutcome{state: domain.StateCompilationFailed, diagnostics: err.Error()}
	}

	sources, err := s.collector.Collect(m, s.opts.Platform, s.toolchain.SourceExtensions(m.BinaryType))
	if err != nil {
		return failed(err)
	}

	ext := s.toolchain.ObjectExtension(m.BinaryType)
	jobs := make([]*compileJob, 0, len(sources))
	objects := make([]string, 0, len(sources))
	for _, src := range sources {
		job := s.prepare(m, domain.NewCompileAction(s.layout, m, src, ext))
		objects = append(objects, job.action.Object)
		if job.action.NeedsCompile {
			jobs = append(jobs, job)
		} else {
			s.metrics.ObserveCacheHit(m.Name.String())
		}
	}

	if len(jobs) == 0 {
		return compileOutcome{state: domain.StateNothingToCompile, objects: objects}
	}

	headerPaths := s.headerPaths(m)
	definitions := domain.CompileDefinitions(m, s.dependencies(m), s.opts.Platform, s.opts.Configuration)

	err = scheduler.ParallelForEach(ctx, s.pool, jobs, func(ctx context.Context, job *compileJob) error {
		return s.compileSource(ctx, job, headerPaths, definitions)
	})
	if err != nil {
		diagnostics := make([]string, 0, len(jobs))
		for _, job := range jobs {
			if job.diagnostics != "" {
				diagnostics = append(diagnostics, job.diagnostics)
			}
		}
		return compileOutcome{
			state:       domain.StateCompilationFailed,
			objects:     objects,
			diagnostics: strings.Join(diagnostics, "\n"),
		}
	}

	return compileOutcome{state: domain.StateCompilationSuccess, objects: objects}
}

// prepare decides whether the action needs to run. Sources without an object
// or whose state cannot be determined always compile.
func (s *Session) prepare(m *domain.Module, action domain.CompileAction) *compileJob {
	job := &compileJob{action: action}

	headers, err := s.depReader.Read(action.DependencyFile)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s: %v", m.Name, err))
	} else {
		job.headers = withoutSource(headers, action.Source)
	}

	needs, err := s.store.ShouldRecompile(action.Source, job.headers)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s: %v, compiling %s", m.Name, err, filepath.Base(action.Source)))
		needs = true
	}

	if !needs {
		if _, statErr := os.Stat(action.Object); statErr != nil {
			needs = true
		}
	}

	job.action.NeedsCompile = needs
	return job
}

// compileSource compiles one source and records the outcome in the checksum
// store. Toolchain output is kept on the job.
func (s *Session) compileSource(
	ctx context.Context,
	job *compileJob,
	headerPaths, definitions []string,
) error {
	action := job.action
	name := action.Module.Name.String()

	ctx, span := s.tracer.Start(ctx,
		fmt.Sprintf("Compile [%s]: %s", name, s.relative(action.Source)),
		ports.WithAttribute("forge.module", name),
		ports.WithAttribute("forge.source", action.Source),
	)
	defer span.End()

	info := domain.CompileInfo{
		Module:         action.Module,
		Platform:       s.opts.Platform,
		Configuration:  s.opts.Configuration,
		Source:         action.Source,
		Object:         action.Object,
		DependencyFile: action.DependencyFile,
		HeaderPaths:    headerPaths,
		Definitions:    definitions,
	}

	if s.opts.PrintCompileCommands {
		if cmd, err := s.toolchain.CompileCommand(info); err == nil {
			_, _ = fmt.Fprintf(span, "    INFO: %s\n", cmd)
		}
	}

	if err := os.MkdirAll(filepath.Dir(action.Object), domain.DirPerm); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "module", name)
		span.RecordError(err)
		s.store.RecordFailure(action.Source, job.headers)
		job.diagnostics = err.Error()
		return err
	}

	start := time.Now()
	res, err := s.toolchain.Compile(ctx, info)
	s.metrics.ObserveCompile(name, err == nil && res.Success, time.Since(start))

	if err != nil {
		span.RecordError(err)
		s.store.RecordFailure(action.Source, job.headers)
		job.diagnostics = err.Error()
		return err
	}

	job.diagnostics = res.Diagnostics()
	if job.diagnostics != "" {
		_, _ = fmt.Fprintln(span, job.diagnostics)
	}

	if !res.Success {
		err := domain.Annotate(domain.ErrCompileFailed, "source", action.Source)
		err = zerr.With(err, "exit_code", res.ExitCode)
		span.RecordError(err)
		s.store.RecordFailure(action.Source, job.headers)
		return err
	}

	headers, err := s.depReader.Read(action.DependencyFile)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s: %v", name, err))
		headers = nil
	}
	if err := s.store.RecordSuccess(action.Source, withoutSource(headers, action.Source)); err != nil {
		s.logger.Warn(fmt.Sprintf("%s: %v", name, err))
	}
	return nil
}

// headerPaths returns the module's own include directories followed by the
// source root of every dependency.
func (s *Session) headerPaths(m *domain.Module) []string {
	paths := m.HeaderPaths.For(s.opts.Platform)
	for _, dep := range s.dependencies(m) {
		paths = append(paths, dep.SourceRoot)
	}
	return dedupe(paths)
}

func (s *Session) copyResources(m *domain.Module) error {
	for _, res := range m.Resources {
		dst := filepath.Join(s.layout.BinariesDir(), filepath.Base(res))
		if _, err := s.copier.Copy(res, dst); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrResourceCopyFailed.Error()), "module", m.Name.String())
		}
	}
	return nil
}

func (s *Session) relative(path string) string {
	if rel, err := filepath.Rel(s.project.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

func withoutSource(headers []string, source string) []string {
	return slices.DeleteFunc(headers, func(h string) bool {
		return filepath.Clean(h) == filepath.Clean(source)
	})
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
