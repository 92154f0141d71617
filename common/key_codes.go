package common

// Virtual key codes for the preview window.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyR            = 82  // R key (ASCII)
	KeyD            = 68  // D key (ASCII)
	KeyL            = 76  // L key (ASCII)
	KeyComma        = 44  // , key (ASCII)
	KeyPeriod       = 46  // . key (ASCII)
	KeyLeftBracket  = 91  // [ key (ASCII)
	KeyRightBracket = 93  // ] key (ASCII)
	KeyEsc          = 256 // Escape key (GLFW)
	KeyRight        = 262 // Right arrow (GLFW)
	KeyLeft         = 263 // Left arrow (GLFW)
	KeyDown         = 264 // Down arrow (GLFW)
	KeyUp           = 265 // Up arrow (GLFW)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)
