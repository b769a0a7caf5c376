// Package watcher reports changes to a project file and its package folder.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skipDirectories are directories that are never watched.
var skipDirectories = map[string]bool{
	".git":      true,
	".jj":       true,
	".retarget": true,
}

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify. Directories are watched
// recursively, including directories created after they were added.
// The underlying fsnotify watcher is created by Start.
type Watcher struct {
	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher. Watch errors are reported to log.
func NewWatcher(log ports.Logger) *Watcher {
	return &Watcher{
		logger: log,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start watches dir and begins delivering events until ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context, dir string) error {
	w.mu.Lock()
	if w.fsWatcher == nil {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			w.mu.Unlock()
			return zerr.Wrap(err, domain.ErrWatchFailed.Error())
		}
		w.fsWatcher = fsw
		go w.processEvents(ctx, fsw)
	}
	w.mu.Unlock()

	return w.Add(dir)
}

// Add watches another directory and its subdirectories. Start must have been called.
func (w *Watcher) Add(dir string) error {
	w.mu.Lock()
	fsw := w.fsWatcher
	w.mu.Unlock()

	if fsw == nil {
		return zerr.With(zerr.Wrap(domain.ErrWatchFailed, "watcher not started"), "path", dir)
	}

	root := filepath.Clean(dir)
	if err := fsw.Add(root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
	}
	w.addSubdirectories(fsw, root)
	return nil
}

// addSubdirectories watches every directory below root. Failures are logged.
func (w *Watcher) addSubdirectories(fsw *fsnotify.Watcher, root string) {
	for dir := range watchRecursively(root) {
		if dir == root {
			continue
		}
		if err := fsw.Add(dir); err != nil && w.logger != nil {
			w.logger.Warn("watcher: failed to watch " + dir + ": " + err.Error())
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped, the rest of the tree is still watched.
				return nil //nolint:nilerr // Intentional
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDirectories[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}

			// New directories are watched before the event is delivered, so
			// anything written into them after the event is observed.
			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirectories[info.Name()] {
					if err := fsw.Add(event.Name); err == nil {
						w.addSubdirectories(fsw, event.Name)
					}
				}
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watcher: " + err.Error())
			}
		}
	}
}

func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}
