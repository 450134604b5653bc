package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Next after Close.
var ErrWatcherClosed = errors.New("config watcher closed")

// Watcher reloads the config file when it changes on disk.
// The parent directory is watched because editors often replace the file
// instead of writing it in place.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long to wait for further events before reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher starts watching the directory holding path.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: 100 * time.Millisecond,
		fw:       fw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Next blocks until the config file changes, then returns the reloaded
// config. A file that fails to parse is reported as an error; the caller
// keeps its previous config and may call Next again.
func (w *Watcher) Next(ctx context.Context) (Config, error) {
	for {
		select {
		case <-ctx.Done():
			return Config{}, ctx.Err()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return Config{}, ErrWatcherClosed
			}
			return Config{}, fmt.Errorf("watching %s: %w", w.path, err)
		case ev, ok := <-w.fw.Events:
			if !ok {
				return Config{}, ErrWatcherClosed
			}
			if !w.relevant(ev) {
				continue
			}
			if err := w.settle(ctx); err != nil {
				return Config{}, err
			}
			return Load(w.path)
		}
	}
}

// settle swallows follow-up events until the debounce window passes quietly.
func (w *Watcher) settle(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case _, ok := <-w.fw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			timer.Reset(w.debounce)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

// Close stops the watcher. Pending and future Next calls return
// ErrWatcherClosed.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
