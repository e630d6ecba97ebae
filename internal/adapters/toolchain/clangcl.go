package toolchain

import (
	"bufio"
	"context"
	"strings"

	"go.trai.ch/forge/internal/adapters/depfile"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// includeNote prefixes every header line clang-cl prints for /showIncludes.
const includeNote = "Note: including file:"

var _ ports.Toolchain = (*ClangCL)(nil)

// ClangCL drives clang-cl with the LLVM librarian and linker for Windows.
// clang-cl has no depfile output compatible with MSVC flags, so the
// dependency record is written from the /showIncludes notes.
type ClangCL struct {
	runner ports.CommandRunner
	cl     string
	lib    string
	link   string
}

// NewClangCL returns the Windows toolchain. An empty compiler selects clang-cl.
func NewClangCL(runner ports.CommandRunner, compiler string) *ClangCL {
	if compiler == "" {
		compiler = "clang-cl"
	}
	return &ClangCL{runner: runner, cl: compiler, lib: "llvm-lib", link: "lld-link"}
}

// Name implements ports.Toolchain.
func (c *ClangCL) Name() string {
	return "clang-cl"
}

// CompileCommand implements ports.Toolchain.
func (c *ClangCL) CompileCommand(info domain.CompileInfo) (domain.Command, error) {
	if err := c.supports(info.Module); err != nil {
		return domain.Command{}, err
	}

	args := []string{c.cl, "/nologo", "/c", info.Source, "/Fo" + info.Object, "/showIncludes"}
	if languageOf(info.Source).isCXX() {
		args = append(args, "/std:c++20", "/EHsc")
	}
	if info.Configuration == domain.ConfigurationRelease {
		args = append(args, "/O2", "/MD", "/DNDEBUG")
	} else {
		args = append(args, "/Zi", "/Od", "/MDd")
	}
	for _, p := range info.HeaderPaths {
		args = append(args, "/I"+p)
	}
	for _, d := range info.Definitions {
		args = append(args, "/D"+d)
	}
	return domain.Command{Args: args, Dir: info.Module.Dir}, nil
}

// Compile implements ports.Toolchain. On success the include notes are
// turned into the dependency record and removed from the output.
func (c *ClangCL) Compile(ctx context.Context, info domain.CompileInfo) (domain.ProcessResult, error) {
	cmd, err := c.CompileCommand(info)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return res, err
	}

	headers, stdout := splitIncludes(res.Stdout)
	res.Stdout = stdout
	if !res.Success {
		return res, nil
	}

	if err := depfile.Write(info.DependencyFile, info.Object, append([]string{info.Source}, headers...)); err != nil {
		return res, zerr.With(err, "source", info.Source)
	}
	return res, nil
}

// LinkCommand implements ports.Toolchain.
func (c *ClangCL) LinkCommand(info domain.LinkInfo) (domain.Command, error) {
	if err := c.supports(info.Module); err != nil {
		return domain.Command{}, err
	}

	if info.Module.BinaryType == domain.BinaryStaticLibrary {
		args := []string{c.lib, "/nologo", "/out:" + info.Artifact}
		args = append(args, info.Objects...)
		return domain.Command{Args: args, Dir: info.Module.Dir}, nil
	}

	args := []string{c.link, "/nologo"}
	if info.Module.BinaryType == domain.BinaryDynamicLibrary {
		args = append(args, "/DLL")
	}
	if info.Configuration == domain.ConfigurationDebug {
		args = append(args, "/DEBUG")
	}
	args = append(args, "/out:"+info.Artifact)
	args = append(args, info.Objects...)
	for _, p := range info.LibrarySearchPaths {
		args = append(args, "/LIBPATH:"+p)
	}
	for _, l := range info.LinkLibraries {
		if !strings.HasSuffix(strings.ToLower(l), ".lib") {
			l += ".lib"
		}
		args = append(args, l)
	}
	return domain.Command{Args: args, Dir: info.Module.Dir}, nil
}

// Link implements ports.Toolchain.
func (c *ClangCL) Link(ctx context.Context, info domain.LinkInfo) (domain.ProcessResult, error) {
	cmd, err := c.LinkCommand(info)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	return c.runner.Run(ctx, cmd)
}

// ObjectExtension implements ports.Toolchain.
func (c *ClangCL) ObjectExtension(domain.BinaryType) string {
	return windowsNaming.object
}

// BinaryPrefix implements ports.Toolchain.
func (c *ClangCL) BinaryPrefix(bt domain.BinaryType) string {
	return windowsNaming.prefix(bt)
}

// BinaryExtension implements ports.Toolchain.
func (c *ClangCL) BinaryExtension(bt domain.BinaryType) string {
	return windowsNaming.extension(bt)
}

// SourceExtensions implements ports.Toolchain.
func (c *ClangCL) SourceExtensions(domain.BinaryType) []string {
	return append(append([]string{}, cExtensions...), cxxExtensions...)
}

func (c *ClangCL) supports(m *domain.Module) error {
	if m.BinaryType == domain.BinaryShaderLibrary {
		return zerr.With(
			domain.Annotate(domain.ErrUnsupportedBinaryType, "binary_type", string(m.BinaryType)),
			"toolchain", c.Name(),
		)
	}
	return nil
}

// splitIncludes separates the /showIncludes notes from the rest of stdout.
// clang-cl also echoes the source file name, which is dropped.
func splitIncludes(stdout string) (headers []string, rest string) {
	var b strings.Builder
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(strings.NewReader(stdout))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if header, ok := strings.CutPrefix(line, includeNote); ok {
			header = strings.TrimSpace(header)
			if _, dup := seen[header]; !dup && header != "" {
				seen[header] = struct{}{}
				headers = append(headers, header)
			}
			continue
		}
		if first && isSourceEcho(line) {
			first = false
			continue
		}
		first = false
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return headers, b.String()
}

func isSourceEcho(line string) bool {
	if strings.ContainsAny(line, " :\t") {
		return false
	}
	lower := strings.ToLower(line)
	for _, ext := range append(append([]string{}, cExtensions...), cxxExtensions...) {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
