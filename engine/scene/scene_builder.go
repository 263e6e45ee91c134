package scene

import (
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithModels adds models to the scene in draw order.
//
// Parameters:
//   - models: the models to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithModels(models ...model.Model) SceneBuilderOption {
	return func(s *scene) {
		s.models = append(s.models, models...)
	}
}

// WithCamera replaces the initial camera, which otherwise looks at the origin from (0, 5, 10).
//
// Parameters:
//   - cam: the initial camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithController sets the controller that turns input into camera motion.
func WithController(c camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = c
	}
}

// WithLight sets the scene light.
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lgt = l
	}
}

// WithInstancesPerRow sets the side of the square instance grid. Values below 1 keep a single instance.
//
// Parameters:
//   - n: instances per row
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInstancesPerRow(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.instancesPerRow = n
	}
}

// WithLogger sets the logger used for scene diagnostics.
func WithLogger(l *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if l != nil {
			s.logger = l
		}
	}
}
