package vault

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before signalling a change.
const DefaultDebounce = 250 * time.Millisecond

// Watcher signals when notes under a set of directories change. Bursts of
// events collapse into a single signal.
type Watcher struct {
	fw       *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	changes  chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithWatchLogger sets where watch errors are logged.
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(w *Watcher) { w.logger = logger }
}

// NewWatcher watches every directory under dirs, recursively. Directories
// created later are picked up as they appear.
func NewWatcher(dirs []string, opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		fw:       fw,
		logger:   slog.New(slog.DiscardHandler),
		debounce: DefaultDebounce,
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Changes delivers one value per settled burst of note changes. It is closed
// when Run returns.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Run forwards file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.DebugContext(ctx, "vault_change", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "vault_watch_error", "error", err)
		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// Close stops the underlying watcher; Run returns shortly after.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if isHidden(filepath.Base(ev.Name)) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("vault_watch_error", "path", ev.Name, "error", err)
			}
			return true
		}
	}
	return isNote(ev.Name) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}
