// Package watch reruns a build whenever files in the watched directories change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/nieomylnieja/refdoc/internal/logfields"
)

// DefaultDebounce is the quiet period awaited after the last change before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// Watcher triggers rebuilds on file changes.
type Watcher struct {
	// Dirs are watched recursively. Directories which do not exist are skipped.
	Dirs     []string
	Debounce time.Duration
	// Ignore lists paths whose changes never trigger a rebuild,
	// typically the output directory.
	Ignore []string
	Logger *slog.Logger
}

// Run watches the directories until ctx is done.
// Rebuilds never overlap: changes observed during a rebuild schedule another one.
func (w Watcher) Run(ctx context.Context, rebuild func(ctx context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = watcher.Close() }()

	watched := 0
	for _, dir := range w.Dirs {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			w.logger().Warn("Skipping missing watch directory", logfields.File(dir))
			continue
		}
		w.addDirsRecursive(watcher, dir)
		watched++
	}
	if watched == 0 {
		return errors.New("none of the watched directories exist")
	}

	rebuildReq, trigger := w.setupRebuildDebouncer()
	done := w.startRebuildWorker(ctx, rebuildReq, rebuild)
	defer func() { <-done }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("Watcher error", logfields.Error(err))
		}
	}
}

// setupRebuildDebouncer creates rebuild channel and trigger function with debouncing.
func (w Watcher) setupRebuildDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// startRebuildWorker processes rebuild requests one at a time until ctx is done.
func (w Watcher) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}, rebuild func(ctx context.Context)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				w.logger().Info("Change detected; rebuilding documentation")
				rebuild(ctx)
			}
		}
	}()
	return done
}

func (w Watcher) handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(watcher, ev.Name)
		}
	}
	w.logger().Debug("File change detected", logfields.File(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w Watcher) addDirsRecursive(watcher *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				w.logger().Warn("Failed to watch directory", logfields.File(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func (w Watcher) shouldIgnoreEvent(path string) bool {
	for _, ignored := range w.Ignore {
		if ignored == "" {
			continue
		}
		if rel, err := filepath.Rel(ignored, path); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	base := filepath.Base(path)
	// Hidden files and editor temp/swap files.
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")
}

func (w Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}
