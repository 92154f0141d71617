// Package watcher reloads the model when its file changes on disk.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before a reload is posted.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one file and posts its reload callback after the file settles.
type Watcher interface {
	// Path returns the absolute path being watched.
	//
	// Returns:
	//   - string: the watched file
	Path() string

	// Close stops watching. Pending reloads are dropped.
	//
	// Returns:
	//   - error: the error closing the underlying watcher
	Close() error
}

// watcher is the implementation of the Watcher interface.
type watcher struct {
	path     string
	reload   func()
	post     func(fn func())
	debounce time.Duration
	logger   *slog.Logger

	fsw       *fsnotify.Watcher
	mu        sync.Mutex
	timer     *time.Timer
	done      chan struct{}
	closeOnce sync.Once
}

var _ Watcher = &watcher{}

// NewWatcher starts watching path. The file's directory is watched so editors that replace the file
// by rename are seen. reload is handed to the poster once writes have been quiet for the debounce time.
//
// Parameters:
//   - path: the file to watch
//   - reload: the reload callback
//   - options: functional options to configure the watcher
//
// Returns:
//   - Watcher: the running watcher
//   - error: an error when the directory cannot be watched
func NewWatcher(path string, reload func(), options ...WatcherBuilderOption) (Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w := &watcher{
		path:     abs,
		reload:   reload,
		post:     func(fn func()) { fn() },
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}

	w.fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		w.fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go w.loop()
	w.logger.Info("watching model", "path", abs)
	return w, nil
}

func (w *watcher) Path() string {
	return w.path
}

func (w *watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "path", w.path, "err", err)
		}
	}
}

// schedule restarts the debounce timer.
func (w *watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.logger.Info("model changed, reloading", "path", w.path)
		w.post(w.reload)
	})
}

func (w *watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}
