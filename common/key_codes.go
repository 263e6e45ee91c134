package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyQ     = 81  // Q key (ASCII)
	KeyE     = 69  // E key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// Arrow keys
const (
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
)

// Additional non-printable keys
const (
	KeyLeftShift = 340 // Left Shift (GLFW)
)
