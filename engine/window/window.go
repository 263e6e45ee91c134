package window

import (
	"runtime"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size or the content scale
	// changes. Zero sizes (a minimized window) are reported too; receivers decide what to ignore.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll delta (positive = away from the user)
	SetScrollCallback(callback func(delta float64))

	// SetKeyCallback sets the callback for key press and release events. Escape never reaches it;
	// it closes the window instead.
	//
	// Parameters:
	//   - callback: function receiving the key code and whether the key is now held
	SetKeyCallback(callback func(keyCode int, pressed bool))

	// SetMouseDragCallback sets the callback for cursor motion while the left button is held.
	//
	// Parameters:
	//   - callback: function receiving the cursor delta in pixels since the previous event
	SetMouseDragCallback(callback func(dx, dy float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose ends the message loop after the current iteration, as if Escape had been pressed.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// closeRequested is set by Escape and observed by IsRunning.
	closeRequested bool

	// dragging is true while the left mouse button is held.
	dragging bool
	// lastX and lastY are the previous cursor position during a drag.
	lastX, lastY float64

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float64)
	onKey       func(keyCode int, pressed bool)
	onMouseDrag func(dx, dy float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "oxy-view",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyCallback(callback func(keyCode int, pressed bool)) {
	w.onKey = callback
}

func (w *engineWindow) SetMouseDragCallback(callback func(dx, dy float64)) {
	w.onMouseDrag = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return !w.closeRequested && platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	w.closeRequested = true
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleKey routes a key transition. Escape requests close on press; repeats count as held.
func (w *engineWindow) handleKey(keyCode int, pressed bool) {
	if keyCode == common.KeyEsc {
		if pressed {
			w.closeRequested = true
		}
		return
	}
	if w.onKey != nil {
		w.onKey(keyCode, pressed)
	}
}

// handleLeftButton starts or ends a drag at the given cursor position.
func (w *engineWindow) handleLeftButton(pressed bool, x, y float64) {
	w.dragging = pressed
	w.lastX, w.lastY = x, y
}

// handleCursor reports the motion since the previous cursor event while dragging.
func (w *engineWindow) handleCursor(x, y float64) {
	if !w.dragging {
		return
	}
	dx, dy := x-w.lastX, y-w.lastY
	w.lastX, w.lastY = x, y
	if w.onMouseDrag != nil && (dx != 0 || dy != 0) {
		w.onMouseDrag(dx, dy)
	}
}

// handleScroll forwards a vertical wheel delta.
func (w *engineWindow) handleScroll(yoff float64) {
	if w.onScroll != nil {
		w.onScroll(yoff)
	}
}

// handleResize records the framebuffer size and forwards it.
func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
