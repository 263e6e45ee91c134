package engine

import (
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the scene updated and rendered every frame.
//
// Parameters:
//   - s: the Scene to render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRenderer hands the renderer to the engine so it is released after the scene on shutdown.
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithLogger sets the logger for frame diagnostics. A nil logger is ignored.
func WithLogger(l *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}
