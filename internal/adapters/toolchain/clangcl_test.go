package toolchain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/depfile"
	"go.trai.ch/forge/internal/adapters/toolchain"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestClangCL_CompileCommand(t *testing.T) {
	tc := toolchain.NewClangCL(nil, "")

	cmd, err := tc.CompileCommand(compileInfo(domain.BinaryApplication, `C:\p\a.cpp`, domain.ConfigurationDebug))
	require.NoError(t, err)
	if diff := cmp.Diff([]string{
		"clang-cl", "/nologo", "/c", `C:\p\a.cpp`, "/Fo/p/obj/a.o", "/showIncludes",
		"/std:c++20", "/EHsc", "/Zi", "/Od", "/MDd", "/I/p/Core/Source", "/DCORE_API=", "/DWITH_DEBUG=1",
	}, cmd.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	cmd, err = tc.CompileCommand(compileInfo(domain.BinaryApplication, `C:\p\a.c`, domain.ConfigurationRelease))
	require.NoError(t, err)
	assert.NotContains(t, cmd.Args, "/std:c++20")
	assert.Contains(t, cmd.Args, "/O2")
	assert.Contains(t, cmd.Args, "/MD")
}

func TestClangCL_LinkCommand(t *testing.T) {
	tc := toolchain.NewClangCL(nil, "")

	tests := []struct {
		name string
		bt   domain.BinaryType
		want []string
	}{
		{
			name: "static library",
			bt:   domain.BinaryStaticLibrary,
			want: []string{"llvm-lib", "/nologo", "/out:/p/bin/out", "/p/obj/a.o", "/p/obj/b.o"},
		},
		{
			name: "dynamic library",
			bt:   domain.BinaryDynamicLibrary,
			want: []string{
				"lld-link", "/nologo", "/DLL", "/DEBUG", "/out:/p/bin/out", "/p/obj/a.o", "/p/obj/b.o",
				"/LIBPATH:/p/bin", "Base.lib", "m.lib",
			},
		},
		{
			name: "application",
			bt:   domain.BinaryApplication,
			want: []string{
				"lld-link", "/nologo", "/DEBUG", "/out:/p/bin/out", "/p/obj/a.o", "/p/obj/b.o",
				"/LIBPATH:/p/bin", "Base.lib", "m.lib",
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

func TestClangCL_Naming(t *testing.T) {
	tc := toolchain.NewClangCL(nil, "")

	assert.Equal(t, ".obj", tc.ObjectExtension(domain.BinaryApplication))
	assert.Empty(t, tc.BinaryPrefix(domain.BinaryStaticLibrary))
	assert.Equal(t, ".lib", tc.BinaryExtension(domain.BinaryStaticLibrary))
	assert.Equal(t, ".dll", tc.BinaryExtension(domain.BinaryDynamicLibrary))
	assert.Equal(t, ".exe", tc.BinaryExtension(domain.BinaryApplication))
}

func TestClangCL_CompileWritesDependencyRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	tc := toolchain.NewClangCL(runner, "")

	dir := t.TempDir()
	info := compileInfo(domain.BinaryApplication, filepath.Join(dir, "main.cpp"), domain.ConfigurationDebug)
	info.Object = filepath.Join(dir, "main.cpp.obj")
	info.DependencyFile = info.Object + domain.DependencyFileExtension

	header := filepath.Join(dir, "Include", "core.h")
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{
		Success: true,
		Stdout: "Note: including file: " + header + "\r\n" +
			"Note: including file:  " + header + "\r\n" +
			"main.cpp(3,1): warning: unused variable\r\n",
	}, nil)

	res, err := tc.Compile(t.Context(), info)
	require.NoError(t, err)
	assert.Equal(t, "main.cpp(3,1): warning: unused variable\n", res.Stdout)

	headers, err := depfile.NewReader().Read(info.DependencyFile)
	require.NoError(t, err)
	assert.Equal(t, []string{info.Source, header}, headers)
}

func TestClangCL_FailedCompileWritesNoRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	tc := toolchain.NewClangCL(runner, "")

	dir := t.TempDir()
	info := compileInfo(domain.BinaryApplication, filepath.Join(dir, "main.cpp"), domain.ConfigurationDebug)
	info.DependencyFile = filepath.Join(dir, "main.cpp.obj.d")

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{
		ExitCode: 1,
		Stdout:   "main.cpp\nmain.cpp(1,1): error: expected ';'\n",
	}, nil)

	res, err := tc.Compile(t.Context(), info)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "main.cpp(1,1): error: expected ';'\n", res.Stdout)

	_, statErr := os.Stat(info.DependencyFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestClangCL_RejectsShaderLibraries(t *testing.T) {
	tc := toolchain.NewClangCL(nil, "")

	_, err := tc.LinkCommand(linkInfo(domain.BinaryShaderLibrary))
	require.ErrorIs(t, err, domain.ErrUnsupportedBinaryType)
}
