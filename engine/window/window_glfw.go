package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window *glfw.Window
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
// The calling goroutine stays locked to its OS thread for the life of the window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	w.internalWindow = &glfwWindow{window: win}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			w.handleKey(int(key), true)
		case glfw.Release:
			w.handleKey(int(key), false)
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.handleScroll(yoff)
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := win.GetCursorPos()
		w.handleLeftButton(action == glfw.Press, x, y)
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.handleCursor(x, y)
	})

	// On high-DPI displays the framebuffer size differs from the window size; the renderer
	// needs pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.handleResize(width, height)
	})

	// Moving between monitors with different scales changes the framebuffer without always
	// firing a framebuffer size event, so re-read it here.
	win.SetContentScaleCallback(func(win *glfw.Window, _, _ float32) {
		w.handleResize(win.GetFramebufferSize())
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window exists and has not been asked to close.
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	w.internalWindow = nil
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return w.IsRunning()
}
