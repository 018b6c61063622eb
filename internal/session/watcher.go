package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"phoebe/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind tells what happened to a watched file.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota
	ChangeRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Watcher reports on-disk changes to the session's parameter file while the
// host loop runs. It watches the containing directory, since editors often
// replace files by rename.
type Watcher struct {
	// notifyMu is held while onChange runs so Stop can wait for it.
	notifyMu sync.Mutex
	mu       sync.Mutex
	path     string
	debounce time.Duration
	onChange func(path string, kind ChangeKind)

	watcher *fsnotify.Watcher
	pending *time.Timer
	done    chan struct{}
	stopped bool
}

// NewWatcher creates a watcher for path. onChange is called from the
// watcher's goroutine and must be safe for concurrent use.
func NewWatcher(path string, debounce time.Duration, onChange func(path string, kind ChangeKind)) *Watcher {
	if debounce == 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// Start begins watching. It returns once the watch is in place.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.mu.Lock()
	w.watcher = fw
	w.mu.Unlock()

	go w.loop(ctx, fw)
	logging.Debug("Session", "Watching %s for changes", w.path)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logging.Error("Session", err, "File watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var kind ChangeKind
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		kind = ChangeModified
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		kind = ChangeRemoved
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() { w.notify(kind) })
}

func (w *Watcher) notify(kind ChangeKind) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}
	w.onChange(w.path, kind)
}

// Stop ends the watch and drops any pending notification. A notification
// already running completes before Stop returns, and none is delivered
// after, so onChange must not call Stop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.pending != nil {
		w.pending.Stop()
	}
	fw := w.watcher
	w.mu.Unlock()

	if fw != nil {
		fw.Close()
		<-w.done
	}

	w.notifyMu.Lock()
	//nolint:staticcheck // SA2001: waits for a running notify to finish
	w.notifyMu.Unlock()
}
