package toolchain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/toolchain"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func module(bt domain.BinaryType) *domain.Module {
	return &domain.Module{
		Name:       domain.NewInternedString("Core"),
		Dir:        "/p/Core",
		SourceRoot: "/p/Core/Source",
		BinaryType: bt,
	}
}

func compileInfo(bt domain.BinaryType, source string, cfg domain.Configuration) domain.CompileInfo {
	return domain.CompileInfo{
		Module:         module(bt),
		Platform:       domain.PlatformLinux,
		Configuration:  cfg,
		Source:         source,
		Object:         "/p/obj/a.o",
		DependencyFile: "/p/obj/a.o.d",
		HeaderPaths:    []string{"/p/Core/Source"},
		Definitions:    []string{"CORE_API=", "WITH_DEBUG=1"},
	}
}

func TestLinux_CompileCommand(t *testing.T) {
	tc := toolchain.NewLinux(nil, "")

	tests := []struct {
		name string
		info domain.CompileInfo
		want []string
	}{
		{
			name: "C++ debug",
			info: compileInfo(domain.BinaryStaticLibrary, "/p/Core/Source/a.cpp", domain.ConfigurationDebug),
			want: []string{
				"clang++", "-c", "/p/Core/Source/a.cpp", "-o", "/p/obj/a.o", "-MMD", "-MF", "/p/obj/a.o.d",
				"-std=c++20", "-g", "-O0", "-I/p/Core/Source", "-DCORE_API=", "-DWITH_DEBUG=1",
			},
		},
		{
			name: "C release dynamic",
			info: compileInfo(domain.BinaryDynamicLibrary, "/p/Core/Source/a.c", domain.ConfigurationRelease),
			want: []string{
				"clang", "-c", "/p/Core/Source/a.c", "-o", "/p/obj/a.o", "-MMD", "-MF", "/p/obj/a.o.d",
				"-O2", "-DNDEBUG", "-fPIC", "-I/p/Core/Source", "-DCORE_API=", "-DWITH_DEBUG=1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tc.CompileCommand(tt.info)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, cmd.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, "/p/Core", cmd.Dir)
		})
	}
}

func TestLinux_CompilerOverride(t *testing.T) {
	tc := toolchain.NewLinux(nil, "/usr/bin/gcc")

	cmd, err := tc.CompileCommand(compileInfo(domain.BinaryApplication, "/p/a.cc", domain.ConfigurationDebug))
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/g++", cmd.Args[0])

	cmd, err = tc.CompileCommand(compileInfo(domain.BinaryApplication, "/p/a.c", domain.ConfigurationDebug))
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/gcc", cmd.Args[0])
}

func linkInfo(bt domain.BinaryType) domain.LinkInfo {
	return domain.LinkInfo{
		Module:             module(bt),
		Configuration:      domain.ConfigurationDebug,
		Objects:            []string{"/p/obj/a.o", "/p/obj/b.o"},
		Artifact:           "/p/bin/out",
		LibrarySearchPaths: []string{"/p/bin"},
		LinkLibraries:      []string{"Base", "m"},
		Frameworks:         []string{"Metal"},
	}
}

func TestLinux_LinkCommand(t *testing.T) {
	tc := toolchain.NewLinux(nil, "")

	tests := []struct {
		name string
		bt   domain.BinaryType
		want []string
	}{
		{
			name: "static library",
			bt:   domain.BinaryStaticLibrary,
			want: []string{"ar", "rcs", "/p/bin/out", "/p/obj/a.o", "/p/obj/b.o"},
		},
		{
			name: "dynamic library",
			bt:   domain.BinaryDynamicLibrary,
			want: []string{
				"clang++", "-shared", "-o", "/p/bin/out", "/p/obj/a.o", "/p/obj/b.o",
				"-L/p/bin", "-lBase", "-lm",
			},
		},
		{
			name: "application",
			bt:   domain.BinaryApplication,
			want: []string{
				"clang++", "-Wl,-rpath,$ORIGIN", "-o", "/p/bin/out", "/p/obj/a.o", "/p/obj/b.o",
				"-L/p/bin", "-lBase", "-lm",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tc.LinkCommand(linkInfo(tt.bt))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, cmd.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinux_RejectsShaderLibraries(t *testing.T) {
	tc := toolchain.NewLinux(nil, "")

	_, err := tc.CompileCommand(compileInfo(domain.BinaryShaderLibrary, "/p/a.metal", domain.ConfigurationDebug))
	require.ErrorIs(t, err, domain.ErrUnsupportedBinaryType)
}

func TestLinux_Naming(t *testing.T) {
	tc := toolchain.NewLinux(nil, "")

	assert.Equal(t, ".o", tc.ObjectExtension(domain.BinaryApplication))
	assert.Equal(t, "lib", tc.BinaryPrefix(domain.BinaryStaticLibrary))
	assert.Equal(t, ".a", tc.BinaryExtension(domain.BinaryStaticLibrary))
	assert.Equal(t, "lib", tc.BinaryPrefix(domain.BinaryDynamicLibrary))
	assert.Equal(t, ".so", tc.BinaryExtension(domain.BinaryDynamicLibrary))
	assert.Empty(t, tc.BinaryPrefix(domain.BinaryApplication))
	assert.Empty(t, tc.BinaryExtension(domain.BinaryApplication))

	exts := tc.SourceExtensions(domain.BinaryApplication)
	assert.Contains(t, exts, ".cpp")
	assert.Contains(t, exts, ".c")
	assert.NotContains(t, exts, ".mm")
}

func TestLinux_CompileRunsCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	tc := toolchain.NewLinux(runner, "")

	info := compileInfo(domain.BinaryApplication, "/p/Core/Source/a.cpp", domain.ConfigurationDebug)
	want, err := tc.CompileCommand(info)
	require.NoError(t, err)

	runner.EXPECT().Run(gomock.Any(), want).Return(domain.ProcessResult{ExitCode: 1, Stderr: "error"}, nil)

	res, err := tc.Compile(t.Context(), info)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "error", res.Stderr)
}

func TestLinux_StaticLinkRemovesOldArchive(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	tc := toolchain.NewLinux(runner, "")

	artifact := filepath.Join(t.TempDir(), "libCore.a")
	require.NoError(t, os.WriteFile(artifact, []byte("stale"), domain.FilePerm))

	info := linkInfo(domain.BinaryStaticLibrary)
	info.Artifact = artifact

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, cmd domain.Command) (domain.ProcessResult, error) {
			_, err := os.Stat(artifact)
			assert.True(t, os.IsNotExist(err))
			assert.Equal(t, "ar", cmd.Args[0])
			return domain.ProcessResult{Success: true}, nil
		},
	)

	res, err := tc.Link(t.Context(), info)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestApple_Commands(t *testing.T) {
	tc, err := toolchain.NewApple(nil, domain.PlatformIOS, "")
	require.NoError(t, err)

	info := compileInfo(domain.BinaryDynamicLibrary, "/p/Core/Source/View.mm", domain.ConfigurationDebug)
	cmd, err := tc.CompileCommand(info)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{
		"xcrun", "--sdk", "iphoneos", "clang++", "-arch", "arm64",
		"-c", "/p/Core/Source/View.mm", "-o", "/p/obj/a.o", "-MMD", "-MF", "/p/obj/a.o.d",
		"-std=c++20", "-fobjc-arc", "-g", "-O0", "-fPIC", "-I/p/Core/Source", "-DCORE_API=", "-DWITH_DEBUG=1",
	}, cmd.Args); diff != "" {
		t.Errorf("compile args mismatch (-want +got):\n%s", diff)
	}

	link := linkInfo(domain.BinaryDynamicLibrary)
	link.Artifact = "/p/bin/libCore.dylib"
	cmd, err = tc.LinkCommand(link)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{
		"xcrun", "--sdk", "iphoneos", "clang++", "-arch", "arm64",
		"-dynamiclib", "-install_name", "@rpath/libCore.dylib",
		"-o", "/p/bin/libCore.dylib", "/p/obj/a.o", "/p/obj/b.o",
		"-L/p/bin", "-lBase", "-lm", "-framework", "Metal",
	}, cmd.Args); diff != "" {
		t.Errorf("link args mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, ".dylib", tc.BinaryExtension(domain.BinaryDynamicLibrary))
	assert.Contains(t, tc.SourceExtensions(domain.BinaryApplication), ".mm")
}

func TestApple_ShaderLibrary(t *testing.T) {
	tc, err := toolchain.NewApple(nil, domain.PlatformMacOS, "")
	require.NoError(t, err)

	assert.Equal(t, ".air", tc.ObjectExtension(domain.BinaryShaderLibrary))
	assert.Equal(t, ".metallib", tc.BinaryExtension(domain.BinaryShaderLibrary))
	assert.Equal(t, []string{".metal"}, tc.SourceExtensions(domain.BinaryShaderLibrary))

	info := compileInfo(domain.BinaryShaderLibrary, "/p/Core/Source/Blit.metal", domain.ConfigurationRelease)
	info.Object = "/p/obj/Blit.metal.air"
	info.DependencyFile = "/p/obj/Blit.metal.air.d"
	info.Definitions = nil
	info.HeaderPaths = nil

	cmd, err := tc.CompileCommand(info)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{
		"xcrun", "--sdk", "macosx", "metal", "-c", "/p/Core/Source/Blit.metal",
		"-o", "/p/obj/Blit.metal.air", "-MMD", "-MF", "/p/obj/Blit.metal.air.d",
	}, cmd.Args); diff != "" {
		t.Errorf("compile args mismatch (-want +got):\n%s", diff)
	}

	link := linkInfo(domain.BinaryShaderLibrary)
	link.Objects = []string{"/p/obj/Blit.metal.air"}
	link.Artifact = "/p/bin/Core.metallib"
	cmd, err = tc.LinkCommand(link)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{
		"xcrun", "--sdk", "macosx", "metallib", "/p/obj/Blit.metal.air", "-o", "/p/bin/Core.metallib",
	}, cmd.Args); diff != "" {
		t.Errorf("link args mismatch (-want +got):\n%s", diff)
	}
}

func TestApple_RejectsNonApplePlatforms(t *testing.T) {
	_, err := toolchain.NewApple(nil, domain.PlatformLinux, "")
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestAndroid_Commands(t *testing.T) {
	tc := toolchain.NewAndroid(nil, "/ndk", "linux-x86_64", "")
	bin := filepath.Join("/ndk", "toolchains", "llvm", "prebuilt", "linux-x86_64", "bin")

	cmd, err := tc.CompileCommand(compileInfo(domain.BinaryStaticLibrary, "/p/a.cpp", domain.ConfigurationDebug))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(bin, "clang++"), cmd.Args[0])
	assert.Equal(t, "--target=aarch64-linux-android"+toolchain.AndroidAPILevel, cmd.Args[1])

	cmd, err = tc.LinkCommand(linkInfo(domain.BinaryStaticLibrary))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(bin, "llvm-ar"), cmd.Args[0])

	_, err = tc.LinkCommand(linkInfo(domain.BinaryApplication))
	require.ErrorIs(t, err, domain.ErrUnsupportedBinaryType)

	_, err = tc.Link(t.Context(), linkInfo(domain.BinaryApplication))
	require.ErrorIs(t, err, domain.ErrUnsupportedBinaryType)
}
