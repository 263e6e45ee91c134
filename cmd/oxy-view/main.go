// oxy-view is an interactive viewer for generated meshes and Wavefront OBJ files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/config"
	"github.com/Carmen-Shannon/oxy-view/engine/logger"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand(launch).Execute(); err != nil {
		os.Exit(1)
	}
}

// launch opens the window, uploads the selected models and blocks in the frame loop.
func launch(cfg *config.Config, sel selection) error {
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	err := runViewer(cfg, sel)
	if errors.Is(err, errNoPath) {
		logger.Info("no model file selected, exiting")
		return nil
	}
	if err != nil {
		logger.Error("viewer failed", zap.Error(err))
	}
	return err
}

func runViewer(cfg *config.Config, sel selection) error {
	// The dialog must run before the window locks the thread for GLFW.
	if sel.File && sel.Path == "" && cfg.Scene.OBJPath == "" {
		path, err := dialogPrompt()
		if err != nil {
			return err
		}
		sel.Path = path
	}

	w, err := window.NewWindow(
		window.WithTitle(common.Coalesce(cfg.Window.Title, config.Default().Window.Title)),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w, rendererOptions(cfg)...)
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	models, err := buildModels(cfg, sel, r, dialogPrompt)
	if err != nil {
		r.Release()
		_ = w.Close()
		return err
	}

	s, err := scene.NewScene(r,
		scene.WithModels(models...),
		scene.WithCamera(camera.NewCamera(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{},
			camera.WithDistanceBounds(cfg.Camera.MinDistance, cfg.Camera.MaxDistance),
		)),
		scene.WithController(camera.NewCameraController(
			camera.WithSpeed(cfg.Camera.Speed),
			camera.WithSensitivity(cfg.Camera.Sensitivity),
			camera.WithZoomSpeed(cfg.Camera.ZoomSpeed),
		)),
		scene.WithInstancesPerRow(cfg.Scene.PerRow),
		scene.WithLogger(logger.Named("scene")),
	)
	if err != nil {
		for _, m := range models {
			m.Release()
		}
		r.Release()
		_ = w.Close()
		return fmt.Errorf("failed to create scene: %w", err)
	}

	e, err := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithScene(s),
		engine.WithRenderer(r),
		engine.WithProfiling(cfg.Profiler.Enabled),
		engine.WithLogger(logger.Named("engine")),
	)
	if err != nil {
		s.Release()
		r.Release()
		_ = w.Close()
		return err
	}
	return e.Run()
}

// rendererOptions maps the renderer config section onto builder options.
func rendererOptions(cfg *config.Config) []renderer.RendererBuilderOption {
	present := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		present = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAAOff
	if cfg.Renderer.MSAA {
		msaa = renderer.MSAA4x
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(present),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
	}
}
