package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change
// before reloading.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the reloaded configuration, or the error that
// prevented it from loading.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a settings file when it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename keep triggering reloads.
type Watcher struct {
	path     string
	opts     []Option
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher starts watching the settings file at path. opts are passed to
// Load on every reload.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	if path == "" {
		return nil, ErrNoFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrWatch, filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		opts:     opts,
		debounce: DefaultDebounce,
		fsw:      fsw,
	}, nil
}

// SetDebounce changes the quiet period before a reload. Call it before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers reloads to fn until ctx is done or the watcher is closed.
// Bursts of changes are coalesced into one reload.
func (w *Watcher) Run(ctx context.Context, fn ReloadFunc) error {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			fn(Load(w.path, w.opts...))

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("%w: %w", ErrWatch, err))
		}
	}
}

// Close stops watching. A running Run returns nil.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
