package watcher

import (
	"log/slog"
	"time"
)

// WatcherBuilderOption is a functional option for configuring a Watcher.
type WatcherBuilderOption func(*watcher)

// WithDebounce sets the quiet period before a reload.
//
// Parameters:
//   - d: the debounce duration
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithDebounce(d time.Duration) WatcherBuilderOption {
	return func(w *watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithPoster hands reloads to the loop instead of running them on the timer goroutine.
//
// Parameters:
//   - post: the loop's post function
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithPoster(post func(fn func())) WatcherBuilderOption {
	return func(w *watcher) {
		w.post = post
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) WatcherBuilderOption {
	return func(w *watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}
