// Package watch keeps a sync root under observation and marks matching
// directories as they appear, so freshly created dependency directories are
// excluded before the sync client picks them up.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/prettymuchbryce/dropfix/internal/marker"
	"github.com/prettymuchbryce/dropfix/internal/scan"
)

// DefaultDebounce is how long to wait after a create event before marking.
// Package managers create the directory first and populate it afterwards;
// waiting avoids racing the creation burst.
const DefaultDebounce = 500 * time.Millisecond

// Watcher marks matching directories as they are created under a root.
type Watcher struct {
	fsys     afero.Fs
	fsw      *fsnotify.Watcher
	marker   marker.Marker
	root     string
	patterns []string
	debounce time.Duration

	// pending debounce timers by path
	mu     sync.Mutex
	timers map[string]*time.Timer

	// fired timers deliver paths here; the run loop marks sequentially
	ready chan string

	// closed when Run returns, to unblock timer goroutines
	done chan struct{}
}

// New creates a Watcher over root for the given target patterns.
func New(fsys afero.Fs, root string, patterns []string, m marker.Marker, debounce time.Duration) (*Watcher, error) {
	if err := scan.ValidatePatterns(patterns); err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsys:     fsys,
		fsw:      fsw,
		marker:   m,
		root:     filepath.Clean(root),
		patterns: patterns,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		ready:    make(chan string),
		done:     make(chan struct{}),
	}, nil
}

// Run watches until ctx is cancelled. Existing subdirectories are added to
// the watch set up front; directories created later are added as their
// events arrive. Marking failures are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	defer close(w.done)

	if err := w.addTree(w.root); err != nil {
		return err
	}
	slog.Info("watching for new directories", "root", w.root, "patterns", w.patterns)

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return ctx.Err()

		case path := <-w.ready:
			w.mark(path)

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

// handleEvent reacts to a single fsnotify event. Only directory creation is
// interesting: new directories join the watch set, and matching ones get a
// debounce timer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}

	path := filepath.Clean(event.Name)
	info, err := w.fsys.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	// A directory moved in can already contain matches.
	if err := w.addTree(path); err != nil {
		slog.Warn("cannot watch new directory", "path", path, "error", err)
	}
}

// addTree watches dir and its subdirectories, scheduling any matching
// directory for marking.
func (w *Watcher) addTree(dir string) error {
	return afero.Walk(w.fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			slog.Warn("cannot add watch", "path", path, "error", err)
		}
		if path != w.root {
			if _, ok := scan.MatchName(w.patterns, filepath.Base(path)); ok {
				w.schedule(path)
			}
		}
		return nil
	})
}

// schedule arms (or re-arms) the debounce timer for a matching path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

// mark sets the ignore attribute on a debounced path, re-checking that it
// still exists first.
func (w *Watcher) mark(path string) {
	info, err := w.fsys.Stat(path)
	if err != nil || !info.IsDir() {
		slog.Debug("directory vanished before marking", "path", path)
		return
	}
	if err := w.marker.Set(path); err != nil {
		slog.Warn("failed to mark directory", "path", path, "error", err)
		return
	}
	slog.Info("marked new directory", "path", path)
}
