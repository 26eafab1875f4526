package filesystem

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/recruitr/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is reported.
const DefaultSettle = 500 * time.Millisecond

// Watcher reports résumé files created or rewritten in a directory.
// Editors and copy tools emit bursts of events per file; each burst is
// collapsed into a single callback once the file settles.
type Watcher struct {
	dir    string
	settle time.Duration

	mu       sync.Mutex
	pending  map[string]*pendingFile
	stopped  bool
	inflight sync.WaitGroup
}

// pendingFile is one scheduled callback. A newer event for the same path
// replaces it, and a replaced callback does nothing when it fires.
type pendingFile struct {
	timer *time.Timer
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string) *Watcher {
	return &Watcher{
		dir:     dir,
		settle:  DefaultSettle,
		pending: make(map[string]*pendingFile),
	}
}

// SetSettle overrides the quiet period.
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Watch blocks until ctx is cancelled, calling fn with the path of every
// settled résumé file. It returns once no callback is running.
func (w *Watcher) Watch(ctx context.Context, fn func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.mu.Lock()
	w.stopped = false
	w.mu.Unlock()
	defer w.drain()

	logger.Debug("watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.schedule(path, fn)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.dir, err)
		}
	}
}

// handleFsEvent returns the path to ingest for an event, if any.
// Only creates and writes of visible regular files with a supported
// extension qualify.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !IsCandidate(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

func (w *Watcher) schedule(path string, fn func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.pending[path]; ok && prev.timer.Stop() {
		w.inflight.Done()
	}

	p := &pendingFile{}
	w.pending[path] = p
	w.inflight.Add(1)
	p.timer = time.AfterFunc(w.settle, func() { w.fire(path, p, fn) })
}

// fire runs fn for path unless p was superseded or the watcher stopped.
func (w *Watcher) fire(path string, p *pendingFile, fn func(string)) {
	defer w.inflight.Done()

	w.mu.Lock()
	current := w.pending[path] == p
	if current {
		delete(w.pending, path)
	}
	stopped := w.stopped
	w.mu.Unlock()

	if current && !stopped {
		fn(path)
	}
}

// drain cancels pending callbacks and waits for running ones.
func (w *Watcher) drain() {
	w.mu.Lock()
	w.stopped = true
	for path, p := range w.pending {
		if p.timer.Stop() {
			w.inflight.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.inflight.Wait()
}
