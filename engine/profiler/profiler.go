// Package profiler reports event loop statistics through slog.
package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Profiler tracks tick rate, posted task throughput and memory statistics of the event loop.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	tickCount      int
	taskCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
	logger         *slog.Logger
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces the wall clock.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithLogger sets the logger receiving the statistics at debug level.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProfiler creates a new Profiler reporting once per second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Count records n posted tasks executed by the loop.
//
// Parameters:
//   - n: the number of tasks
func (p *Profiler) Count(n int) {
	p.taskCount += n
}

// Tick should be called once per loop tick.
// Logs tick rate, task rate, heap usage, allocation rate and GC pauses when the interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.tickCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	seconds := elapsed.Seconds()
	p.logger.Debug("loop stats",
		"tps", float64(p.tickCount)/seconds,
		"tasks_per_sec", float64(p.taskCount)/seconds,
		"heap_mb", float64(p.memStats.Alloc)/1024/1024,
		"alloc_mb_per_sec", float64(allocDelta)/1024/1024/seconds,
		"gc", gcCount,
		"gc_last_us", lastPauseUs,
		"gc_max_us", maxPauseUs,
	)

	p.tickCount = 0
	p.taskCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
