package canon

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the canonicalizer when its rule file changes on
// disk, so rule edits take effect without a process restart.
type Watcher struct {
	canon     *Canonicalizer
	fsWatcher *fsnotify.Watcher

	debounceDelay time.Duration
	debounceMu    sync.Mutex
	debounceTimer *time.Timer

	onReload func()
	onError  func(error)

	done chan struct{}
}

// WatcherOption configures the watcher
type WatcherOption func(*Watcher)

// WithDebounceDelay sets the debounce delay
func WithDebounceDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounceDelay = d
	}
}

// WithOnReload sets the callback invoked after a successful reload
func WithOnReload(fn func()) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithOnError sets the callback for watch and reload errors
func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a watcher for the canonicalizer's rule file.
// The parent directory is watched because editors typically replace
// the file rather than write it in place.
func NewWatcher(c *Canonicalizer, opts ...WatcherOption) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		canon:         c,
		fsWatcher:     fsWatcher,
		debounceDelay: 500 * time.Millisecond,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsWatcher.Add(filepath.Dir(c.path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}
	return w, nil
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.eventLoop()
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.canon.path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.triggerReload)
}

func (w *Watcher) triggerReload() {
	if err := w.canon.Reload(); err != nil {
		// keep serving the previous rules
		if w.onError != nil {
			w.onError(fmt.Errorf("config reload failed: %w", err))
		}
		return
	}
	if w.onReload != nil {
		w.onReload()
	}
}
