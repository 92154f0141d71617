// Package engine runs the preview's single-threaded event loop. Decoder completions, file watcher
// reloads and console commands are posted to the loop so scene and classification state is only ever
// touched by the goroutine that called Run.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fabric/engine/profiler"
)

// EventSource is polled once per tick for platform input, typically a window.
type EventSource interface {
	// PollEvents dispatches pending input callbacks on the calling goroutine.
	PollEvents()

	// ShouldClose reports whether the user asked to close the source.
	//
	// Returns:
	//   - bool: true once closing was requested
	ShouldClose() bool
}

// engine implements the Engine interface.
type engine struct {
	mu     sync.Mutex
	queue  []func()
	wakeup chan struct{}

	quitChannel chan struct{}
	quitOnce    sync.Once

	events EventSource

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate     time.Duration
	tickCallback func(deltaTime float32)

	logger *slog.Logger
}

// Engine is the event loop of the preview.
type Engine interface {
	// Post queues fn to run on the loop goroutine. Safe to call from any goroutine, including the loop.
	// Closures run in the order they were posted.
	//
	// Parameters:
	//   - fn: the closure to run
	Post(fn func())

	// Run executes posted closures and tick callbacks on the calling goroutine until Quit is called, the
	// event source asks to close, or ctx is cancelled. Closures still queued when the loop stops are
	// dropped.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, nil otherwise
	Run(ctx context.Context) error

	// Quit stops the loop. Safe to call multiple times and from any goroutine.
	Quit()

	// SetTickRate sets how often the tick callback runs and the event source is polled.
	//
	// Parameters:
	//   - fps: ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each tick.
	//
	// Parameters:
	//   - callback: receives the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// EnableProfiler enables periodic loop statistics in the log.
	EnableProfiler()

	// DisableProfiler disables loop statistics.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine ticking at 60 Hz.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		wakeup:      make(chan struct{}, 1),
		quitChannel: make(chan struct{}),
		tickRate:    time.Second / 60,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	return e
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	e.mu.Unlock()

	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		case <-e.wakeup:
			e.drain()
		case now := <-ticker.C:
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.events != nil {
				e.events.PollEvents()
				if e.events.ShouldClose() {
					e.Quit()
					return nil
				}
			}
			e.drain()
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
			if e.profilingEnabled {
				e.profiler.Tick()
			}
		}
	}
}

// drain runs every queued closure, including ones posted while draining.
func (e *engine) drain() {
	for {
		e.mu.Lock()
		batch := e.queue
		e.queue = nil
		e.mu.Unlock()
		if len(batch) == 0 {
			return
		}

		for _, fn := range batch {
			e.run(fn)
		}
		e.profiler.Count(len(batch))
	}
}

// run executes one closure, logging a panic instead of taking the loop down.
func (e *engine) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("posted task panicked", "panic", r)
		}
	}()
	fn()
}

// Quit stops the loop. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.tickRate = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}
