// Package watch regenerates the wiki whenever the snapshot file changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/logfields"
)

// DefaultDebounce coalesces the burst of events an editor or exporter emits for one save.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one complete generation run.
type RebuildFunc func(ctx context.Context) error

// Watcher reruns a RebuildFunc when a single file changes.
type Watcher struct {
	path     string
	rebuild  RebuildFunc
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New returns a watcher for the file at path.
func New(path string, rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "resolve watched path").
			WithContext("path", path).
			Build()
	}
	w := &Watcher{
		path:     abs,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run builds once, then rebuilds after every change to the watched file until
// ctx is canceled. Rebuilds run one at a time; changes arriving during a
// rebuild are folded into one follow-up run. Rebuild failures are logged and
// do not stop watching.
func (w *Watcher) Run(ctx context.Context) error {
	// The parent directory is watched so that replace-by-rename saves are seen.
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "create file watcher").Build()
	}
	defer func() { _ = fsw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "watch directory").
			WithContext("path", dir).
			Build()
	}

	w.runRebuild(ctx)

	deb := newDebouncer(w.debounce)
	defer deb.stop()

	w.logger.Info("Watching snapshot for changes", logfields.Snapshot(w.path))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching", logfields.Snapshot(w.path))
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.logger.Debug("Snapshot change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				deb.trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-deb.C:
			w.runRebuild(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) runRebuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := w.rebuild(ctx); err != nil {
		w.logger.Warn("Rebuild failed", logfields.Snapshot(w.path), logfields.Error(err))
		return
	}
	w.logger.Info("Rebuild complete",
		logfields.Snapshot(w.path),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}

// debouncer delivers one signal on C after triggers stop arriving for delay.
type debouncer struct {
	C     chan struct{}
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{C: make(chan struct{}, 1), delay: delay}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.C <- struct{}{}:
		default:
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
