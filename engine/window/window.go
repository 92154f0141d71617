// Package window is the GLFW input surface of the preview: key presses, dropped files and the title
// bar used as the status line. It does not render.
package window

import (
	"fmt"
)

// Window is the preview window.
type Window interface {
	// SetKeyDownCallback registers the callback for key presses and repeats.
	//
	// Parameters:
	//   - callback: receives the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetDropCallback registers the callback for files dropped on the window.
	//
	// Parameters:
	//   - callback: receives the dropped paths
	SetDropCallback(callback func(paths []string))

	// SetScrollCallback registers the callback for vertical scrolling.
	//
	// Parameters:
	//   - callback: receives the scroll delta
	SetScrollCallback(callback func(delta float32))

	// SetResizeCallback registers the callback for framebuffer size changes.
	//
	// Parameters:
	//   - callback: receives the new size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetTitle replaces the title bar text.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Title returns the current title bar text.
	//
	// Returns:
	//   - string: the title
	Title() string

	// PollEvents dispatches pending input callbacks. Must be called from the goroutine that created
	// the window.
	PollEvents()

	// ShouldClose reports whether the window was asked to close.
	//
	// Returns:
	//   - bool: true once closing was requested
	ShouldClose() bool

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window is not initialized
	Close() error

	// Width returns the framebuffer width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the framebuffer height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int
}

// engineWindow holds the platform independent window state.
type engineWindow struct {
	title     string
	minWidth  int
	minHeight int
	width     int
	height    int

	internalWindow any

	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onDrop    func(paths []string)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows the window. It locks the calling goroutine to its OS thread, which
// must then run the event loop.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy-fabric",
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetDropCallback(callback func(paths []string)) {
	w.onDrop = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) PollEvents() {
	platformPollEvents(w)
}

func (w *engineWindow) ShouldClose() bool {
	return !platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
