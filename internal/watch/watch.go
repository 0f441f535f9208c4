// Package watch reruns a build whenever the snippet or documentation trees change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/snippetdocs/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc performs one full build.
type BuildFunc func(ctx context.Context) error

// Watcher triggers BuildFunc on filesystem changes, never running two builds at once.
type Watcher struct {
	roots    []string
	excludes []string
	build    BuildFunc
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExclude ignores events under dir, typically the output tree the build writes.
func WithExclude(dir string) Option {
	return func(w *Watcher) {
		if dir != "" {
			w.excludes = append(w.excludes, absPath(dir))
		}
	}
}

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

// New creates a Watcher over roots.
func New(build BuildFunc, roots []string, opts ...Option) *Watcher {
	w := &Watcher{
		build:    build,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, r := range roots {
		w.roots = append(w.roots, absPath(r))
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run builds once, then rebuilds on every relevant change until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, root := range w.roots {
		if _, err := os.Stat(root); err != nil {
			w.logger.Warn("Watch root not found; skipping", logfields.Path(root))
			continue
		}
		w.addDirsRecursive(fsw, root)
	}

	rebuildReq, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	return w.loop(ctx, fsw.Events, fsw.Errors, rebuildReq, func(ev fsnotify.Event) {
		w.handleEvent(fsw, ev, trigger)
	})
}

// loop runs the rebuild worker and dispatches events until ctx is done or the
// event channels close. The worker has exited by the time loop returns.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, rebuildReq <-chan struct{}, handle func(fsnotify.Event)) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx, rebuildReq)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	w.rebuild(ctx, "initial")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watch stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			handle(ev)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// worker drains rebuild requests one at a time. The request channel holds at most
// one pending request, so changes during a build collapse into a single rebuild.
func (w *Watcher) worker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			w.rebuild(ctx, "change")
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	w.logger.Info("Rebuilding", logfields.Reason(reason))
	if err := w.build(ctx); err != nil {
		w.logger.Warn("Rebuild failed", logfields.Error(err))
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || w.excluded(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(fsw, ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) excluded(path string) bool {
	abs := absPath(path)
	for _, dir := range w.excludes {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if w.excluded(path) || (path != root && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// newDebouncer returns a request channel, a trigger that fires it after d of
// quiet, and a stop func that cancels any pending timer.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// shouldIgnoreEvent reports editor droppings and hidden files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
