package rules

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one rule set file for changes using fsnotify. Burst
// writes from editors and atomic renames coalesce into a single change
// notification.
type Watcher struct {
	// Changes delivers one signal per settled change to the file.
	Changes <-chan struct{}

	changes chan struct{}
	watcher *fsnotify.Watcher
	path    string
}

// NewWatcher watches the rule set file at path. The parent directory is
// watched rather than the file itself so replace-by-rename still
// delivers events.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve rules path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan struct{}, 1)
	return &Watcher{
		Changes: ch,
		changes: ch,
		watcher: fw,
		path:    abs,
	}, nil
}

// Run processes filesystem events until the context ends. It must be
// called exactly once, typically in its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	const debounce = 100 * time.Millisecond

	var pending *time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				now := time.Now()
				pending = &now
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("rules watcher error", "error", err)

		case <-ticker.C:
			if pending == nil || time.Since(*pending) < debounce {
				continue
			}
			pending = nil
			select {
			case w.changes <- struct{}{}:
			default: // a change is already queued
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
