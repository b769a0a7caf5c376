package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/retarget/internal/adapters/watcher"
	"go.trai.ch/retarget/internal/core/ports"
)

func waitFor(t *testing.T, events <-chan ports.WatchEvent, want ports.WatchEvent) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed")
			if ev == want {
				return
			}
		case <-timeout:
			t.Fatalf("no %v event for %s", want.Operation, want.Path)
		}
	}
}

func stream(w *watcher.Watcher) <-chan ports.WatchEvent {
	ch := make(chan ports.WatchEvent)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return ch
}

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "retarget.yaml")
	require.NoError(t, os.WriteFile(config, []byte("a"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(ctx, dir))
	defer func() { _ = w.Stop() }()

	events := stream(w)

	require.NoError(t, os.WriteFile(config, []byte("b"), 0o600))
	waitFor(t, events, ports.WatchEvent{Path: config, Operation: ports.OpWrite})

	created := filepath.Join(dir, "new.yaml")
	require.NoError(t, os.WriteFile(created, nil, 0o600))
	waitFor(t, events, ports.WatchEvent{Path: created, Operation: ports.OpCreate})

	require.NoError(t, os.Remove(created))
	waitFor(t, events, ports.WatchEvent{Path: created, Operation: ports.OpRemove})
}

func TestWatcher_AddSecondDirectory(t *testing.T) {
	dir := t.TempDir()
	packages := filepath.Join(dir, "packages")
	require.NoError(t, os.Mkdir(packages, 0o750))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(ctx, dir))
	require.NoError(t, w.Add(packages))
	defer func() { _ = w.Stop() }()

	events := stream(w)

	pkg := filepath.Join(packages, "A.1.0")
	require.NoError(t, os.Mkdir(pkg, 0o750))
	waitFor(t, events, ports.WatchEvent{Path: pkg, Operation: ports.OpCreate})
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(context.Background(), t.TempDir()))

	events := stream(w)
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events did not end after Stop")
	}
}

func TestWatcher_Errors(t *testing.T) {
	w := watcher.NewWatcher(nil)

	err := w.Add(t.TempDir())
	assert.ErrorContains(t, err, "watcher not started")

	err = w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "failed to watch project file")
	require.NoError(t, w.Stop())

	assert.NoError(t, watcher.NewWatcher(nil).Stop())
}

func TestWatcher_WatchesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	net40 := filepath.Join(root, "A.1.0.0", "lib", "net40")
	require.NoError(t, os.MkdirAll(net40, 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o750))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(ctx, root))
	defer func() { _ = w.Stop() }()

	events := stream(w)

	dll := filepath.Join(net40, "a.dll")
	require.NoError(t, os.WriteFile(dll, []byte("a"), 0o600))
	waitFor(t, events, ports.WatchEvent{Path: dll, Operation: ports.OpCreate})
}

func TestWatcher_WatchesCreatedDirectories(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(ctx, root))
	defer func() { _ = w.Stop() }()

	events := stream(w)

	pkg := filepath.Join(root, "B.2.0.0")
	require.NoError(t, os.Mkdir(pkg, 0o750))
	waitFor(t, events, ports.WatchEvent{Path: pkg, Operation: ports.OpCreate})

	lib := filepath.Join(pkg, "lib")
	require.NoError(t, os.Mkdir(lib, 0o750))
	waitFor(t, events, ports.WatchEvent{Path: lib, Operation: ports.OpCreate})

	dll := filepath.Join(lib, "b.dll")
	require.NoError(t, os.WriteFile(dll, []byte("b"), 0o600))
	waitFor(t, events, ports.WatchEvent{Path: dll, Operation: ports.OpCreate})
}
