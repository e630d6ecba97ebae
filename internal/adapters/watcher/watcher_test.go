package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/watcher"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string, skip []string) <-chan ports.WatchEvent {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, root, skip))

	out := make(chan ports.WatchEvent, 64)
	go func() {
		defer close(out)
		for ev := range w.Events() {
			out <- ev
		}
	}()

	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return out
}

func waitFor(t *testing.T, events <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream ended")
			if ev.Path == path {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcher_ReportsSourceChanges(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "Core", "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o750))

	events := startWatcher(t, root, nil)

	src := filepath.Join(srcDir, "a.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int a;\n"), 0o600))

	ev := waitFor(t, events, src)
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	events := startWatcher(t, root, nil)

	dir := filepath.Join(root, "NewModule")
	require.NoError(t, os.Mkdir(dir, 0o750))
	waitFor(t, events, dir)

	src := filepath.Join(dir, "main.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int main() {}\n"), 0o600))
	waitFor(t, events, src)
}

func TestWatcher_SkipsOutputDirectories(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build")
	require.NoError(t, os.MkdirAll(filepath.Join(out, "obj"), 0o750))

	events := startWatcher(t, root, []string{out})

	require.NoError(t, os.WriteFile(filepath.Join(out, "obj", "a.o"), []byte("obj"), 0o600))
	marker := filepath.Join(root, "marker.cpp")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o600))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			assert.NotContains(t, ev.Path, out)
			if ev.Path == marker {
				return
			}
		case <-timeout:
			t.Fatal("no event for marker")
		}
	}
}
