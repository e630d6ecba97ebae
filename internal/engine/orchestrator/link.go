package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Artifact returns the path m links into.
func (s *Session) Artifact(m *domain.Module) string {
	bt := m.BinaryType
	name := s.toolchain.BinaryPrefix(bt) + m.Output() + s.toolchain.BinaryExtension(bt)
	return filepath.Join(s.layout.BinariesDir(), name)
}

func (s *Session) linkModule(ctx context.Context, m *domain.Module, compiled compileOutcome) (domain.ModuleState, string) {
	if compiled.state == domain.StateCompilationFailed {
		return domain.StateLinkFailed, compiled.diagnostics
	}

	action := domain.LinkAction{Module: m, Artifact: s.Artifact(m)}

	if compiled.state == domain.StateNothingToCompile {
		if _, err := os.Stat(action.Artifact); err == nil {
			return domain.StateLinkUpToDate, ""
		}
	}

	deps := s.dependencies(m)
	cells := make([]*domain.ModuleResult, 0, len(deps))
	for _, dep := range deps {
		if cell, ok := s.results[dep.Name]; ok {
			cells = append(cells, cell)
		}
	}

	failed, err := domain.AwaitDependencies(ctx, cells)
	if err != nil {
		return domain.StateLinkFailed, err.Error()
	}
	if failed != nil {
		return domain.StateLinkFailed, fmt.Sprintf("%v: %s", domain.ErrDependencyFailed, failed.Name)
	}

	return s.link(ctx, action, compiled.objects)
}

func (s *Session) link(
	ctx context.Context,
	action domain.LinkAction,
	objects []string,
) (domain.ModuleState, string) {
	m := action.Module
	name := m.Name.String()

	ctx, span := s.tracer.Start(ctx,
		fmt.Sprintf("Link [%s]: %s", name, filepath.Base(action.Artifact)),
		ports.WithAttribute("forge.module", name),
		ports.WithAttribute("forge.artifact", action.Artifact),
	)
	defer span.End()

	if err := os.MkdirAll(filepath.Dir(action.Artifact), domain.DirPerm); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "module", name)
		span.RecordError(err)
		return domain.StateLinkFailed, err.Error()
	}

	searchPaths := append(m.LibraryPaths.For(s.opts.Platform), s.layout.BinariesDir())
	var libraries, system []string
	system = append(system, m.LinkLibraries.For(s.opts.Platform)...)
	for _, dep := range s.libraryClosure(m) {
		libraries = append(libraries, dep.Output())
		// Archives are never linked, so whatever they need is linked here.
		if dep.BinaryType == domain.BinaryStaticLibrary {
			searchPaths = append(searchPaths, dep.LibraryPaths.For(s.opts.Platform)...)
			system = append(system, dep.LinkLibraries.For(s.opts.Platform)...)
		}
	}

	info := domain.LinkInfo{
		Module:             m,
		Platform:           s.opts.Platform,
		Configuration:      s.opts.Configuration,
		Objects:            objects,
		Artifact:           action.Artifact,
		LibrarySearchPaths: dedupe(searchPaths),
		LinkLibraries:      dedupe(append(libraries, system...)),
		Frameworks:         m.Frameworks.For(s.opts.Platform),
	}

	if s.opts.PrintLinkCommands {
		if cmd, err := s.toolchain.LinkCommand(info); err == nil {
			_, _ = fmt.Fprintf(span, "    INFO: %s\n", cmd)
		}
	}

	start := time.Now()
	res, err := s.toolchain.Link(ctx, info)
	s.metrics.ObserveLink(name, err == nil && res.Success, time.Since(start))

	if err != nil {
		span.RecordError(err)
		return domain.StateLinkFailed, err.Error()
	}

	diagnostics := res.Diagnostics()
	if diagnostics != "" {
		_, _ = fmt.Fprintln(span, diagnostics)
	}

	if !res.Success {
		err := domain.Annotate(domain.ErrLinkFailed, "module", name)
		span.RecordError(zerr.With(err, "exit_code", res.ExitCode))
		return domain.StateLinkFailed, diagnostics
	}
	return domain.StateLinkSuccess, diagnostics
}

// libraryClosure returns the library modules m depends on, directly or not.
// Every module comes before the modules it depends on, which is the order
// single-pass linkers resolve archives in.
func (s *Session) libraryClosure(m *domain.Module) []*domain.Module {
	visited := make(map[domain.InternedString]bool)
	var postorder []*domain.Module

	var visit func(*domain.Module)
	visit = func(mod *domain.Module) {
		for _, dep := range s.dependencies(mod) {
			if visited[dep.Name] {
				continue
			}
			visited[dep.Name] = true
			visit(dep)
			postorder = append(postorder, dep)
		}
	}
	visit(m)
	slices.Reverse(postorder)

	libraries := postorder[:0]
	for _, dep := range postorder {
		if dep.BinaryType.IsLibrary() {
			libraries = append(libraries, dep)
		}
	}
	return libraries
}
