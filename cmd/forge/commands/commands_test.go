package commands_test

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/cmd/forge/commands"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/build"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	compileFunc func(ctx context.Context, opts app.CompileOptions) error
	cleanFunc   func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Compile(ctx context.Context, opts app.CompileOptions) error {
	if m.compileFunc != nil {
		return m.compileFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

// jsonLogger records SetJSON calls on top of a mock logger.
type jsonLogger struct {
	*mocks.MockLogger
	json bool
}

func (l *jsonLogger) SetJSON(enable bool) {
	l.json = enable
}

func TestCommands_Compile(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.CompileOptions
		called := false

		mock := &mockApp{
			compileFunc: func(_ context.Context, opts app.CompileOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{
			"compile", "Game",
			"--platform", "iOS",
			"-c", "Release",
			"--modules", "Core,Render",
			"--recompile",
			"--print-compile-commands",
			"--print-link-commands",
			"--metrics-file", "forge.prom",
			"-C", "/work/game",
			"--ci",
			"-j", "3",
			"--single-threaded",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
		assert.Equal(t, app.CompileOptions{
			Dir:                  "/work/game",
			Platform:             "iOS",
			Configuration:        "Release",
			Modules:              []string{"Core", "Render", "Game"},
			Recompile:            true,
			PrintCompileCommands: true,
			PrintLinkCommands:    true,
			MetricsFile:          "forge.prom",
			OutputMode:           "plain",
			Jobs:                 3,
			SingleThreaded:       true,
		}, captured)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.CompileOptions
		mock := &mockApp{
			compileFunc: func(_ context.Context, opts app.CompileOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"compile", "--watch"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, captured.Platform)
		assert.Equal(t, "Debug", captured.Configuration)
		assert.Empty(t, captured.Modules)
		assert.True(t, captured.Watch)
		assert.Equal(t, "auto", captured.OutputMode)
		assert.Zero(t, captured.Jobs)
		assert.False(t, captured.SingleThreaded)
	})

	t.Run("returns error on compile failure", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(_ context.Context, _ app.CompileOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"compile"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Clean(t *testing.T) {
	var captured app.CleanOptions
	mock := &mockApp{
		cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock, nil)
	cli.SetArgs([]string{"clean", "Core", "-p", "Android", "--configuration", "Debug"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, app.CleanOptions{
		Platform:      "Android",
		Configuration: "Debug",
		Modules:       []string{"Core"},
	}, captured)
}

func TestCommands_JSONLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := &jsonLogger{MockLogger: mocks.NewMockLogger(ctrl)}

	cli := commands.New(&mockApp{}, log)
	cli.SetArgs([]string{"--json-log", "clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, log.json)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "forge version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "forge version "+build.Version)
}

func TestCommands_VersionVerbose(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version", "--verbose"})

	require.NoError(t, cli.Execute(context.Background()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "forge version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")", lines[0])
	assert.Equal(t, "go: "+runtime.Version(), lines[1])
	assert.Equal(t, "host: "+runtime.GOOS+"/"+runtime.GOARCH, lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "default platform: "))
}

func TestWriteHostInfo(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{goos: "linux", want: "default platform: Linux"},
		{goos: "darwin", want: "default platform: macOS"},
		{goos: "windows", want: "default platform: Windows"},
		{goos: "plan9", want: "default platform: none"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			buf := new(bytes.Buffer)
			commands.WriteHostInfoExported(buf, tt.goos, "arm64")

			assert.Contains(t, buf.String(), "host: "+tt.goos+"/arm64\n")
			assert.Contains(t, buf.String(), tt.want+"\n")
		})
	}
}
