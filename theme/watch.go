package theme

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store when its preference file changes on disk, so edits
// made by another process show up without a restart.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	onChange func(Theme)
	debounce time.Duration

	mu      sync.Mutex
	running bool
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for store's preference file. onChange runs on
// the watcher goroutine after each reload.
func NewWatcher(store *Store, debounce time.Duration, onChange func(Theme)) (*Watcher, error) {
	if store.Path() == "" {
		return nil, fmt.Errorf("theme store has no preference file")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	return &Watcher{
		store:    store,
		watcher:  w,
		onChange: onChange,
		debounce: debounce,
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. The directory is watched rather than the file because
// saves replace the file by rename. Start returns immediately; the watcher runs
// until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.store.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create preference dir: %w", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go w.run(ctx)
	return nil
}

// Stop closes the underlying watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		w.store.logger.Error("closing theme watcher", "error", err)
	}
	if running {
		<-w.doneCh
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	target := filepath.Clean(w.store.Path())
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.store.logger.Error("theme watcher error", "error", err)

		case <-fire:
			fire = nil
			theme := w.store.Load()
			w.store.logger.Info("theme preference reloaded", "path", target)
			if w.onChange != nil {
				w.onChange(theme)
			}
		}
	}
}
