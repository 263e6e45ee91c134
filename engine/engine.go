package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// Input, update and render run serially on the window's thread.
type engine struct {
	window   window.Window
	scene    scene.Scene
	renderer renderer.Renderer

	logger *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	now       func() time.Time
	lastFrame time.Time

	frames       int
	skipped      int
	fatal        error
	shutdownOnce bool
}

// Engine is the main entry point for the viewer.
// It wires window input into the scene and drives one update and render per message loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene being rendered.
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Frames returns how many frames were presented.
	Frames() int

	// Run blocks in the window message loop until the window closes or a fatal error occurs,
	// then releases the scene, the renderer and the window in that order.
	//
	// Returns:
	//   - error: the fatal frame error, or nil on a normal close
	Run() error
}

// NewEngine creates a new Engine from a window and a scene.
//
// Parameters:
//   - options: functional options for engine configuration (window, scene, renderer, profiling)
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the window or the scene is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger: zap.NewNop(),
		now:    time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, errors.New("engine: a window is required")
	}
	if e.scene == nil {
		return nil, errors.New("engine: a scene is required")
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))

	e.window.SetKeyCallback(func(keyCode int, pressed bool) {
		e.scene.HandleKey(keyCode, pressed)
	})
	e.window.SetMouseDragCallback(e.scene.HandleMouseDrag)
	e.window.SetScrollCallback(e.scene.HandleScroll)
	e.window.SetResizeCallback(func(width, height int) {
		if err := e.scene.Resize(width, height); err != nil {
			e.logger.Warn("resize failed", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
		}
	})
	e.window.SetUpdateCallback(e.frame)

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Frames() int {
	return e.frames
}

func (e *engine) Run() error {
	e.lastFrame = e.now()
	e.window.ProcessMessages()
	e.shutdown()

	e.logger.Info("viewer closed", zap.Int("frames", e.frames), zap.Int("skipped", e.skipped))
	if e.fatal != nil {
		return fmt.Errorf("fatal render error: %w", e.fatal)
	}
	return nil
}

// frame runs one update and render. Surface loss reconfigures at the window size and the next
// frame retries; out of memory ends the loop; anything else skips the frame.
func (e *engine) frame() {
	if e.fatal != nil {
		return
	}

	now := e.now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.scene.Update(dt)

	err := e.scene.Render()
	switch {
	case err == nil:
		e.frames++
	case errors.Is(err, renderer.ErrSurfaceLost):
		e.skipped++
		e.logger.Debug("surface lost, reconfiguring", zap.Error(err))
		if rerr := e.scene.Resize(e.window.Width(), e.window.Height()); rerr != nil {
			e.logger.Warn("surface reconfigure failed", zap.Error(rerr))
		}
	case errors.Is(err, renderer.ErrSurfaceOutOfMemory):
		e.logger.Error("out of GPU memory", zap.Error(err))
		e.fatal = err
		e.window.RequestClose()
		return
	default:
		e.skipped++
		e.logger.Warn("frame skipped", zap.Error(err))
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
}

// shutdown releases GPU resources before the window that owns the surface.
func (e *engine) shutdown() {
	if e.shutdownOnce {
		return
	}
	e.shutdownOnce = true

	e.scene.Release()
	if e.renderer != nil {
		e.renderer.Release()
	}
	if err := e.window.Close(); err != nil {
		e.logger.Debug("window close", zap.Error(err))
	}
}
