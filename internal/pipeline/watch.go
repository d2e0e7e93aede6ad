package pipeline

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceTick is how often pending events are checked for having settled.
const debounceTick = 100 * time.Millisecond

// Watcher re-runs the pipeline whenever one of its input files changes.
// It watches the parent directories (editors often replace files rather
// than writing in place, which a file-level watch would miss). Events are
// debounced on the trailing edge: each one is recorded, and a re-run fires
// only once a path has settled past the debounce window, so the last save
// in a burst always triggers a run.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	opts        Options
	logger      *zap.Logger
	inputs      map[string]bool // cleaned absolute input paths
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher creates a watcher for the given pipeline options. debounce <= 0
// falls back to 500ms.
func NewWatcher(opts Options, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	inputs := make(map[string]bool, len(opts.Inputs))
	for _, in := range opts.Inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			fw.Close()
			return nil, err
		}
		inputs[filepath.Clean(abs)] = true
	}

	return &Watcher{
		watcher:     fw,
		opts:        opts,
		logger:      logger,
		inputs:      inputs,
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or ctx is cancelled. An initial run happens
// immediately so watch mode never sits on stale output.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs := make(map[string]bool)
	for in := range w.inputs {
		dirs[filepath.Dir(in)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("watch failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.logger.Info("watching", zap.String("dir", dir))
	}

	if err := Run(ctx, w.opts, w.logger); err != nil {
		w.logger.Error("run failed", zap.Error(err))
	}

	go w.loop(ctx)
	return nil
}

// Stop ends the event loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(debounceTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			w.processSettled(ctx)
		}
	}
}

// handleEvent records a matching event for later processing. Every event
// refreshes the path's timestamp, so a burst of saves collapses into one
// run once the burst ends.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path := filepath.Clean(event.Name)
	if !w.inputs[path] {
		return
	}

	w.mu.Lock()
	w.debounceMap[path] = time.Now()
	w.mu.Unlock()
}

// processSettled re-runs the pipeline once any recorded path has gone quiet
// for the debounce window. Multiple settled paths still mean one run; the
// pipeline reads all inputs anyway.
func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	if len(settled) == 0 {
		return
	}

	for _, path := range settled {
		w.logger.Info("input changed", zap.String("path", path))
	}
	// Run errors are logged, not fatal: a half-saved file should not kill
	// the watch session.
	if err := Run(ctx, w.opts, w.logger); err != nil {
		w.logger.Error("run failed", zap.Error(err))
	}
}
