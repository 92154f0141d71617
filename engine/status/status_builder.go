package status

import (
	"io"
	"time"

	"github.com/muesli/termenv"
)

// BoardBuilderOption is a functional option for configuring a Board.
type BoardBuilderOption func(*board)

// WithTimeout sets how long a message stays visible.
//
// Parameters:
//   - d: the display duration
//
// Returns:
//   - BoardBuilderOption: option function to apply
func WithTimeout(d time.Duration) BoardBuilderOption {
	return func(b *board) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithClock replaces the wall clock, mostly for tests.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - BoardBuilderOption: option function to apply
func WithClock(now func() time.Time) BoardBuilderOption {
	return func(b *board) {
		b.now = now
	}
}

// WithTerminal echoes every shown message to w, colored for the terminal behind it.
//
// Parameters:
//   - w: the terminal writer
//
// Returns:
//   - BoardBuilderOption: option function to apply
func WithTerminal(w io.Writer) BoardBuilderOption {
	return func(b *board) {
		b.out = termenv.NewOutput(w)
		b.echo = w
	}
}
