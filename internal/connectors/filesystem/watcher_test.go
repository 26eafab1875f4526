package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_HandleFsEvent(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		setupFile bool
		setupDir  bool
		operation fsnotify.Op
		expected  bool
	}{
		{"create file", "cv.txt", true, false, fsnotify.Create, true},
		{"write file", "cv.pdf", true, false, fsnotify.Write, true},
		{"remove file", "cv.txt", false, false, fsnotify.Remove, false},
		{"rename file", "cv.txt", false, false, fsnotify.Rename, false},
		{"chmod file", "cv.txt", true, false, fsnotify.Chmod, false},
		{"unsupported extension", "notes.rtf", true, false, fsnotify.Create, false},
		{"hidden file", ".cv.txt", true, false, fsnotify.Create, false},
		{"directory with résumé suffix", "archive.txt", false, true, fsnotify.Create, false},
		{"vanished before stat", "gone.txt", false, false, fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if tt.setupFile {
				writeFile(t, path, "content")
			}
			if tt.setupDir {
				require.NoError(t, os.Mkdir(path, 0755))
			}

			w := NewWatcher(dir)
			got, ok := w.handleFsEvent(fsnotify.Event{Name: path, Op: tt.operation})
			assert.Equal(t, tt.expected, ok)
			if tt.expected {
				assert.Equal(t, path, got)
			}
		})
	}
}

func TestWatcher_ScheduleCollapsesBursts(t *testing.T) {
	w := NewWatcher(t.TempDir())
	w.SetSettle(20 * time.Millisecond)

	var mu sync.Mutex
	var calls []string
	fn := func(p string) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, p)
	}

	for i := 0; i < 5; i++ {
		w.schedule("a.txt", fn)
	}
	w.schedule("b.txt", fn)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, calls)
	mu.Unlock()
}

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir)
	w.SetSettle(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	found := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(p string) {
			select {
			case found <- p:
			default:
			}
		})
	}()

	target := filepath.Join(dir, "new.txt")
	assert.Eventually(t, func() bool {
		// Rewrite until the watcher is registered and reports the file.
		_ = os.WriteFile(target, []byte("Go developer"), 0644)
		select {
		case p := <-found:
			return p == target
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_SupersededCallbackKeepsNewerPending(t *testing.T) {
	w := NewWatcher(t.TempDir())
	stale, current := &pendingFile{}, &pendingFile{}
	w.pending["cv.pdf"] = current

	calls := 0
	w.inflight.Add(1)
	w.fire("cv.pdf", stale, func(string) { calls++ })

	assert.Zero(t, calls)
	assert.Same(t, current, w.pending["cv.pdf"])

	w.inflight.Add(1)
	w.fire("cv.pdf", current, func(string) { calls++ })

	assert.Equal(t, 1, calls)
	assert.Empty(t, w.pending)
}

func TestWatcher_DrainWaitsForRunningCallback(t *testing.T) {
	w := NewWatcher(t.TempDir())
	w.SetSettle(time.Millisecond)

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	w.schedule("cv.pdf", func(string) {
		close(started)
		<-release
		finished.Store(true)
	})
	<-started

	w.SetSettle(time.Hour)
	w.schedule("later.pdf", func(string) { t.Error("callback ran after drain") })

	drained := make(chan struct{})
	go func() {
		w.drain()
		close(drained)
	}()

	select {
	case <-drained:
		t.Fatal("drain returned while a callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("drain did not return")
	}
	assert.True(t, finished.Load())
	assert.Empty(t, w.pending)
}

func TestWatcher_MissingDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	err := w.Watch(context.Background(), func(string) {})
	assert.Error(t, err)
}
