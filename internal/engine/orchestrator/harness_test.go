package orchestrator_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/checksum"
	"go.trai.ch/forge/internal/adapters/depfile"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/forge/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

// fakeToolchain writes objects, dependency records and artifacts to disk and
// records every invocation.
type fakeToolchain struct {
	mu          sync.Mutex
	compiled    []string
	linked      []string
	linkInfos   map[string]domain.LinkInfo
	compileInfo map[string]domain.CompileInfo
	failCompile map[string]bool
	failLink    map[string]bool
	panicLink   map[string]bool
	includes    map[string][]string
}

func newFakeToolchain() *fakeToolchain {
	return &fakeToolchain{
		linkInfos:   make(map[string]domain.LinkInfo),
		compileInfo: make(map[string]domain.CompileInfo),
		failCompile: make(map[string]bool),
		failLink:    make(map[string]bool),
		panicLink:   make(map[string]bool),
		includes:    make(map[string][]string),
	}
}

func (f *fakeToolchain) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compiled = nil
	f.linked = nil
}

func (f *fakeToolchain) compiledSorted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.compiled)
	slices.Sort(out)
	return out
}

func (f *fakeToolchain) linkedInOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.linked)
}

func (f *fakeToolchain) Name() string { return "fake" }

func (f *fakeToolchain) Compile(_ context.Context, info domain.CompileInfo) (domain.ProcessResult, error) {
	base := filepath.Base(info.Source)

	f.mu.Lock()
	f.compiled = append(f.compiled, base)
	f.compileInfo[base] = info
	fail := f.failCompile[base]
	headers := f.includes[base]
	f.mu.Unlock()

	if fail {
		return domain.ProcessResult{ExitCode: 1, Stderr: base + ": error: boom\n"}, nil
	}

	if err := os.WriteFile(info.Object, []byte("object of "+base), domain.FilePerm); err != nil {
		return domain.ProcessResult{}, err
	}
	if err := depfile.Write(info.DependencyFile, info.Object, append([]string{info.Source}, headers...)); err != nil {
		return domain.ProcessResult{}, err
	}
	return domain.ProcessResult{Success: true}, nil
}

func (f *fakeToolchain) Link(_ context.Context, info domain.LinkInfo) (domain.ProcessResult, error) {
	name := info.Module.Name.String()

	f.mu.Lock()
	f.linked = append(f.linked, name)
	f.linkInfos[name] = info
	fail := f.failLink[name]
	explode := f.panicLink[name]
	f.mu.Unlock()

	if explode {
		panic("linker crashed on " + name)
	}
	if fail {
		return domain.ProcessResult{ExitCode: 1, Stderr: "undefined reference to `missing'\n"}, nil
	}
	if err := os.WriteFile(info.Artifact, []byte("artifact"), domain.FilePerm); err != nil {
		return domain.ProcessResult{}, err
	}
	return domain.ProcessResult{Success: true}, nil
}

func (f *fakeToolchain) CompileCommand(info domain.CompileInfo) (domain.Command, error) {
	return domain.Command{Args: []string{"fakecc", "-c", info.Source, "-o", info.Object}}, nil
}

func (f *fakeToolchain) LinkCommand(info domain.LinkInfo) (domain.Command, error) {
	return domain.Command{Args: []string{"fakeld", "-o", info.Artifact}}, nil
}

func (f *fakeToolchain) ObjectExtension(domain.BinaryType) string { return ".o" }

func (f *fakeToolchain) BinaryPrefix(bt domain.BinaryType) string {
	if bt.IsLibrary() {
		return "lib"
	}
	return ""
}

func (f *fakeToolchain) BinaryExtension(bt domain.BinaryType) string {
	if bt.IsLibrary() {
		return ".a"
	}
	return ""
}

func (f *fakeToolchain) SourceExtensions(domain.BinaryType) []string { return []string{".cpp"} }

// moduleSpec describes a test module below <root>/<name>/Source.
type moduleSpec struct {
	name    string
	bt      domain.BinaryType
	deps    []string
	sources map[string]string
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func newProject(t *testing.T, specs ...moduleSpec) *domain.Project {
	t.Helper()
	root := t.TempDir()
	p := domain.NewProject("Demo", root)
	p.IntermediateRoot = domain.DefaultIntermediateRoot(root)
	p.BinariesRoot = domain.DefaultBinariesRoot(root)

	for _, s := range specs {
		dir := filepath.Join(root, s.name)
		m := &domain.Module{
			Name:       domain.NewInternedString(s.name),
			Dir:        dir,
			SourceRoot: filepath.Join(dir, "Source"),
			BinaryType: s.bt,
			Dependencies: domain.Scoped[domain.InternedString]{
				domain.PlatformAny: domain.NewInternedStrings(s.deps),
			},
		}
		for rel, content := range s.sources {
			writeFile(t, filepath.Join(m.SourceRoot, rel), content)
		}
		require.NoError(t, p.AddModule(m))
	}
	require.NoError(t, p.Validate())
	return p
}

func sourcePath(p *domain.Project, module, rel string) string {
	return filepath.Join(p.Root, module, "Source", rel)
}

// harness builds sessions over real file system adapters.
type harness struct {
	project   *domain.Project
	toolchain ports.Toolchain
	pool      *scheduler.Pool
	opts      orchestrator.Options
	orch      *orchestrator.Orchestrator
	tracer    ports.Tracer
	logger    ports.Logger
	metrics   ports.Metrics

	logMu  sync.Mutex
	output bytes.Buffer
}

func newHarness(t *testing.T, project *domain.Project, tc ports.Toolchain, poolOpts ...scheduler.Option) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		project:   project,
		toolchain: tc,
		pool:      scheduler.NewPool(poolOpts...),
		opts: orchestrator.Options{
			Platform:      domain.PlatformLinux,
			Configuration: domain.ConfigurationDebug,
		},
	}
	t.Cleanup(h.pool.Close)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		h.logMu.Lock()
		defer h.logMu.Unlock()
		return h.output.Write(p)
	}).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().ObserveCompile(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().ObserveLink(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().ObserveModule(gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().ObserveCacheHit(gomock.Any()).AnyTimes()

	h.tracer, h.logger, h.metrics = tracer, logger, metrics
	h.useCollector(fs.NewCollector(fs.NewWalker()))
	return h
}

// useCollector rebuilds the orchestrator around c.
func (h *harness) useCollector(c ports.SourceCollector) {
	walker := fs.NewWalker()
	h.orch = orchestrator.New(
		h.pool,
		c,
		depfile.NewReader(),
		fs.NewCopier(walker, fs.NewFingerprinter()),
		h.tracer,
		h.logger,
		h.metrics,
	)
}

func (h *harness) layout() domain.Layout {
	return domain.NewLayout(h.project, h.opts.Platform, h.opts.Configuration)
}

func (h *harness) outputText() string {
	h.logMu.Lock()
	defer h.logMu.Unlock()
	return h.output.String()
}

// run builds every module and returns the report and the session's store.
func (h *harness) run(t *testing.T, sessionOpts ...orchestrator.SessionOption) (*orchestrator.Report, *checksum.Store) {
	t.Helper()

	modules, err := h.project.Select(h.opts.Platform, nil)
	require.NoError(t, err)

	store := checksum.NewStore(h.project.Root, h.layout().ChecksumFile())
	session := h.orch.NewSession(h.project, h.toolchain, store, h.opts, sessionOpts...)

	report, err := session.Run(t.Context(), modules)
	require.NoError(t, err)
	return report, store
}
