package toolchain

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Clang)(nil)

// Clang drives a GCC-compatible compiler driver. It builds Linux with the
// host clang, Apple platforms through xcrun and Android with the NDK clang.
type Clang struct {
	runner ports.CommandRunner
	name   string

	// launcher prefixes every command, e.g. xcrun --sdk iphoneos.
	launcher []string
	cc       string
	cxx      string
	ar       string

	targetFlags []string
	appFlags    []string
	naming      naming

	apple        bool
	applications bool
	shaders      *metal
}

// NewLinux returns the clang toolchain of a Linux host. An empty compiler
// selects clang. The toolchain is named after the C driver in use.
func NewLinux(runner ports.CommandRunner, compiler string) *Clang {
	if compiler == "" {
		compiler = "clang"
	}
	cc, cxx := compilerPair(compiler)
	return &Clang{
		runner:       runner,
		name:         filepath.Base(cc),
		cc:           cc,
		cxx:          cxx,
		ar:           "ar",
		appFlags:     []string{"-Wl,-rpath,$ORIGIN"},
		naming:       unixNaming,
		applications: true,
	}
}

// appleSDKs maps Apple platforms to their xcrun SDK names.
var appleSDKs = map[domain.Platform]string{
	domain.PlatformMacOS:    "macosx",
	domain.PlatformIOS:      "iphoneos",
	domain.PlatformTVOS:     "appletvos",
	domain.PlatformVisionOS: "xros",
}

// NewApple returns the xcrun toolchain of an Apple platform. An empty compiler
// selects the SDK clang.
func NewApple(runner ports.CommandRunner, platform domain.Platform, compiler string) (*Clang, error) {
	sdk, ok := appleSDKs[platform]
	if !ok {
		return nil, domain.Annotate(domain.ErrUnsupportedPlatform, "platform", platform.String())
	}
	if compiler == "" {
		compiler = "clang"
	}
	cc, cxx := compilerPair(compiler)

	var target []string
	if platform != domain.PlatformMacOS {
		target = []string{"-arch", "arm64"}
	}

	launcher := []string{"xcrun", "--sdk", sdk}
	return &Clang{
		runner:       runner,
		name:         "xcrun-" + filepath.Base(cc),
		launcher:     launcher,
		cc:           cc,
		cxx:          cxx,
		ar:           "ar",
		targetFlags:  target,
		appFlags:     []string{"-Wl,-rpath,@executable_path"},
		naming:       appleNaming,
		apple:        true,
		applications: true,
		shaders:      &metal{launcher: launcher},
	}, nil
}

// AndroidAPILevel is the minimum API level Android binaries target.
const AndroidAPILevel = "24"

// NewAndroid returns the NDK clang of ndkRoot. hostTag names the prebuilt
// directory of the host, e.g. linux-x86_64.
func NewAndroid(runner ports.CommandRunner, ndkRoot, hostTag, compiler string) *Clang {
	bin := filepath.Join(ndkRoot, "toolchains", "llvm", "prebuilt", hostTag, "bin")
	cc, cxx := filepath.Join(bin, "clang"), filepath.Join(bin, "clang++")
	name := "ndk-clang"
	if compiler != "" {
		cc, cxx = compilerPair(compiler)
		name = filepath.Base(cc)
	}
	return &Clang{
		runner:      runner,
		name:        name,
		cc:          cc,
		cxx:         cxx,
		ar:          filepath.Join(bin, "llvm-ar"),
		targetFlags: []string{"--target=aarch64-linux-android" + AndroidAPILevel},
		naming:      unixNaming,
	}
}

// Name implements ports.Toolchain.
func (c *Clang) Name() string {
	return c.name
}

// CompileCommand implements ports.Toolchain.
func (c *Clang) CompileCommand(info domain.CompileInfo) (domain.Command, error) {
	if err := c.supports(info.Module); err != nil {
		return domain.Command{}, err
	}
	if info.Module.BinaryType == domain.BinaryShaderLibrary {
		return c.shaders.compileCommand(info), nil
	}

	lang := languageOf(info.Source)
	driver := c.cxx
	if lang == langC || lang == langObjC {
		driver = c.cc
	}

	args := c.command(driver)
	args = append(args, c.targetFlags...)
	args = append(args, "-c", info.Source, "-o", info.Object, "-MMD", "-MF", info.DependencyFile)
	if lang.isCXX() {
		args = append(args, "-std=c++20")
	}
	if lang.isObjC() {
		args = append(args, "-fobjc-arc")
	}
	args = append(args, configurationFlags(info.Configuration)...)
	if info.Module.BinaryType == domain.BinaryDynamicLibrary {
		args = append(args, "-fPIC")
	}
	for _, p := range info.HeaderPaths {
		args = append(args, "-I"+p)
	}
	for _, d := range info.Definitions {
		args = append(args, "-D"+d)
	}
	return domain.Command{Args: args, Dir: info.Module.Dir}, nil
}

// Compile implements ports.Toolchain.
func (c *Clang) Compile(ctx context.Context, info domain.CompileInfo) (domain.ProcessResult, error) {
	cmd, err := c.CompileCommand(info)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	return c.runner.Run(ctx, cmd)
}

// LinkCommand implements ports.Toolchain.
func (c *Clang) LinkCommand(info domain.LinkInfo) (domain.Command, error) {
	if err := c.supports(info.Module); err != nil {
		return domain.Command{}, err
	}

	var args []string
	switch info.Module.BinaryType {
	case domain.BinaryShaderLibrary:
		return c.shaders.linkCommand(info), nil

	case domain.BinaryStaticLibrary:
		args = c.command(c.ar)
		args = append(args, "rcs", info.Artifact)
		args = append(args, info.Objects...)

	case domain.BinaryDynamicLibrary:
		args = c.command(c.cxx)
		args = append(args, c.targetFlags...)
		if c.apple {
			args = append(args, "-dynamiclib", "-install_name", "@rpath/"+filepath.Base(info.Artifact))
		} else {
			args = append(args, "-shared")
		}
		args = append(args, c.linkInputs(info)...)

	default:
		args = c.command(c.cxx)
		args = append(args, c.targetFlags...)
		args = append(args, c.appFlags...)
		args = append(args, c.linkInputs(info)...)
	}
	return domain.Command{Args: args, Dir: info.Module.Dir}, nil
}

// Link implements ports.Toolchain.
func (c *Clang) Link(ctx context.Context, info domain.LinkInfo) (domain.ProcessResult, error) {
	cmd, err := c.LinkCommand(info)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	// ar only adds members, so stale objects would survive in an old archive.
	if info.Module.BinaryType == domain.BinaryStaticLibrary {
		if err := os.Remove(info.Artifact); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domain.ProcessResult{}, zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "artifact", info.Artifact)
		}
	}
	return c.runner.Run(ctx, cmd)
}

// ObjectExtension implements ports.Toolchain.
func (c *Clang) ObjectExtension(bt domain.BinaryType) string {
	if bt == domain.BinaryShaderLibrary {
		return ".air"
	}
	return c.naming.object
}

// BinaryPrefix implements ports.Toolchain.
func (c *Clang) BinaryPrefix(bt domain.BinaryType) string {
	return c.naming.prefix(bt)
}

// BinaryExtension implements ports.Toolchain.
func (c *Clang) BinaryExtension(bt domain.BinaryType) string {
	if bt == domain.BinaryShaderLibrary {
		return ".metallib"
	}
	return c.naming.extension(bt)
}

// SourceExtensions implements ports.Toolchain.
func (c *Clang) SourceExtensions(bt domain.BinaryType) []string {
	if bt == domain.BinaryShaderLibrary {
		return shaderExts
	}
	exts := append(append([]string{}, cExtensions...), cxxExtensions...)
	if c.apple {
		exts = append(append(exts, objcExtensions...), objcxxExts...)
	}
	return exts
}

func (c *Clang) supports(m *domain.Module) error {
	switch {
	case m.BinaryType == domain.BinaryApplication && !c.applications,
		m.BinaryType == domain.BinaryShaderLibrary && c.shaders == nil:
		return zerr.With(
			domain.Annotate(domain.ErrUnsupportedBinaryType, "binary_type", string(m.BinaryType)),
			"toolchain", c.name,
		)
	default:
		return nil
	}
}

func (c *Clang) command(tool string) []string {
	args := make([]string, 0, len(c.launcher)+16)
	args = append(args, c.launcher...)
	return append(args, tool)
}

func (c *Clang) linkInputs(info domain.LinkInfo) []string {
	args := []string{"-o", info.Artifact}
	args = append(args, info.Objects...)
	for _, p := range info.LibrarySearchPaths {
		args = append(args, "-L"+p)
	}
	for _, l := range info.LinkLibraries {
		args = append(args, "-l"+l)
	}
	if c.apple {
		for _, f := range info.Frameworks {
			args = append(args, "-framework", f)
		}
	}
	return args
}

func configurationFlags(cfg domain.Configuration) []string {
	if cfg == domain.ConfigurationRelease {
		return []string{"-O2", "-DNDEBUG"}
	}
	return []string{"-g", "-O0"}
}

// metal compiles Metal shaders into .air objects and links them into a
// .metallib.
type metal struct {
	launcher []string
}

func (m *metal) compileCommand(info domain.CompileInfo) domain.Command {
	args := append(append([]string{}, m.launcher...), "metal",
		"-c", info.Source, "-o", info.Object, "-MMD", "-MF", info.DependencyFile)
	if info.Configuration == domain.ConfigurationDebug {
		args = append(args, "-gline-tables-only", "-frecord-sources")
	}
	for _, p := range info.HeaderPaths {
		args = append(args, "-I"+p)
	}
	for _, d := range info.Definitions {
		args = append(args, "-D"+d)
	}
	return domain.Command{Args: args, Dir: info.Module.Dir}
}

func (m *metal) linkCommand(info domain.LinkInfo) domain.Command {
	args := append(append([]string{}, m.launcher...), "metallib")
	args = append(args, info.Objects...)
	args = append(args, "-o", info.Artifact)
	return domain.Command{Args: args, Dir: info.Module.Dir}
}
