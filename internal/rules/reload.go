package rules

import (
	"context"
	"log/slog"
	"sync"
)

// Reloader holds the active compiled rule set and swaps in a fresh
// snapshot whenever the watched file settles. A snapshot that fails to
// compile is rejected and the previous one stays active.
type Reloader struct {
	mu      sync.RWMutex
	active  *CompiledSet
	watcher *Watcher
	path    string
	onSwap  func(version int64)
}

// NewReloader compiles the file at path and begins watching it. onSwap,
// if non-nil, runs after each successful swap with the new version,
// typically to evict cache entries built under the old one.
func NewReloader(path string, onSwap func(version int64)) (*Reloader, error) {
	compiled, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	watcher, err := NewWatcher(path)
	if err != nil {
		return nil, err
	}
	return &Reloader{
		active:  compiled,
		watcher: watcher,
		path:    path,
		onSwap:  onSwap,
	}, nil
}

// Active returns the current compiled snapshot.
func (r *Reloader) Active() *CompiledSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Version reports the active snapshot's version. Its method value
// satisfies the version source the cache coordinator takes.
func (r *Reloader) Version() int64 {
	return r.Active().Version()
}

// Run consumes change notifications until the context ends. It must be
// called exactly once, typically in its own goroutine.
func (r *Reloader) Run(ctx context.Context) {
	go r.watcher.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-r.watcher.Changes:
			if !ok {
				return
			}
			r.reload()
		}
	}
}

// Close stops the underlying file watcher.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}

func (r *Reloader) reload() {
	compiled, err := LoadFile(r.path)
	if err != nil {
		slog.Error("rule set reload rejected, keeping active snapshot",
			"path", r.path, "active_version", r.Version(), "error", err)
		return
	}

	r.mu.Lock()
	previous := r.active.Version()
	r.active = compiled
	r.mu.Unlock()

	slog.Info("rule set reloaded",
		"path", r.path, "previous_version", previous, "version", compiled.Version())
	if r.onSwap != nil {
		r.onSwap(compiled.Version())
	}
}
