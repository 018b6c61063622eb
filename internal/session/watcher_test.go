package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	path string
	kind ChangeKind
}

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.phoebe")
	require.NoError(t, os.WriteFile(path, []byte("phoebe_name = a\n"), 0644))

	changes := make(chan change, 8)
	w := NewWatcher(path, 20*time.Millisecond, func(p string, k ChangeKind) {
		changes <- change{path: p, kind: k}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.phoebe"), []byte("x = 1\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("phoebe_name = b\n"), 0644))

	select {
	case c := <-changes:
		assert.Equal(t, path, c.path)
		assert.Equal(t, ChangeModified, c.kind)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}

	require.NoError(t, os.Remove(path))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.kind == ChangeRemoved {
				return
			}
		case <-deadline:
			t.Fatal("expected a removal notification")
		}
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "gone", "model.phoebe"), 0, func(string, ChangeKind) {})
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.phoebe")
	require.NoError(t, os.WriteFile(path, []byte("phoebe_name = a\n"), 0644))

	w := NewWatcher(path, 0, func(string, ChangeKind) {})
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "modified", ChangeModified.String())
	assert.Equal(t, "removed", ChangeRemoved.String())
	assert.Equal(t, "unknown", ChangeKind(7).String())
}

func TestWatcher_StopWaitsForRunningNotification(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	w := NewWatcher(filepath.Join(t.TempDir(), "model.phoebe"), 0, func(string, ChangeKind) {
		calls++
		close(entered)
		<-release
	})

	go w.notify(ChangeModified)
	<-entered

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a notification was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after the notification finished")
	}

	w.notify(ChangeRemoved)
	assert.Equal(t, 1, calls, "no notification is delivered after Stop")
}
