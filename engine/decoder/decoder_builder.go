package decoder

import (
	"log/slog"
)

// DecoderBuilderOption is a functional option for configuring a Decoder.
type DecoderBuilderOption func(*decoder)

// WithWorkers sets the number of decode goroutines. Values below 1 are raised to 1.
//
// Parameters:
//   - n: the number of workers
//
// Returns:
//   - DecoderBuilderOption: option function to apply
func WithWorkers(n int) DecoderBuilderOption {
	return func(d *decoder) {
		d.workers = max(n, 1)
	}
}

// WithQueueSize sets the number of requests that can wait for a worker.
//
// Parameters:
//   - n: the queue capacity
//
// Returns:
//   - DecoderBuilderOption: option function to apply
func WithQueueSize(n int) DecoderBuilderOption {
	return func(d *decoder) {
		d.queue = max(n, 1)
	}
}

// WithMaxSize caps the longest edge of decoded images. 0 keeps the backend default.
//
// Parameters:
//   - px: maximum edge length in pixels
//
// Returns:
//   - DecoderBuilderOption: option function to apply
func WithMaxSize(px int) DecoderBuilderOption {
	return func(d *decoder) {
		if px > 0 {
			d.maxSize = px
		}
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - DecoderBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) DecoderBuilderOption {
	return func(d *decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}
