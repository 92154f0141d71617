// Package status is the transient message surface of the preview: the last message stays visible until
// it times out or a newer message replaces it.
package status

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
)

// DefaultTimeout is how long a message stays visible.
const DefaultTimeout = 2200 * time.Millisecond

// Level is the severity of a message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Message is one status line.
type Message struct {
	Level Level
	Text  string
	// Expires is when the message stops being visible.
	Expires time.Time
}

// Board holds the current status message. It is owned by the preview loop.
type Board interface {
	// Show replaces the current message and restarts the dismissal timer.
	//
	// Parameters:
	//   - level: the severity
	//   - text: the message
	Show(level Level, text string)

	// Current retrieves the visible message.
	//
	// Returns:
	//   - Message: the message
	//   - bool: false when nothing is visible
	Current() (Message, bool)

	// Dismiss hides the current message immediately.
	Dismiss()

	// Render formats the visible message for a terminal, colored by level. Empty when nothing is visible.
	//
	// Returns:
	//   - string: the formatted line
	Render() string
}

// board is the implementation of the Board interface.
type board struct {
	timeout time.Duration
	now     func() time.Time
	out     *termenv.Output
	echo    io.Writer

	current Message
	visible bool
}

var _ Board = &board{}

// NewBoard creates a Board with the default timeout and wall clock.
//
// Parameters:
//   - options: functional options to configure the board
//
// Returns:
//   - Board: the board
func NewBoard(options ...BoardBuilderOption) Board {
	b := &board{
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(b)
	}
	if b.out == nil {
		b.out = termenv.NewOutput(io.Discard)
	}
	return b
}

func (b *board) Show(level Level, text string) {
	b.current = Message{Level: level, Text: text, Expires: b.now().Add(b.timeout)}
	b.visible = true
	if b.echo != nil {
		fmt.Fprintln(b.echo, b.Render())
	}
}

func (b *board) Current() (Message, bool) {
	if !b.visible {
		return Message{}, false
	}
	if !b.now().Before(b.current.Expires) {
		b.visible = false
		return Message{}, false
	}
	return b.current, true
}

func (b *board) Dismiss() {
	b.visible = false
}

func (b *board) Render() string {
	msg, ok := b.Current()
	if !ok {
		return ""
	}

	style := b.out.String(msg.Text)
	switch msg.Level {
	case LevelWarn:
		style = style.Foreground(b.out.Color("3"))
	case LevelError:
		style = style.Foreground(b.out.Color("1")).Bold()
	}
	return style.String()
}
