package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSpeed sets the target translation speed.
//
// Parameters:
//   - speed: world units per second while a movement key is held
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Speed = speed
	}
}

// WithSensitivity sets the multiplier applied to mouse rotation and zoom.
//
// Parameters:
//   - sensitivity: radians per pixel per second of mouse motion
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Sensitivity = sensitivity
	}
}

// WithZoomSpeed sets the multiplier applied to scroll before sensitivity.
//
// Parameters:
//   - zoomSpeed: zoom multiplier
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom speed
func WithZoomSpeed(zoomSpeed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.ZoomSpeed = zoomSpeed
	}
}
