package camera

// CameraBuilderOption configures a Camera in NewCamera.
type CameraBuilderOption func(*Camera)

// WithDistanceBounds sets the zoom range of the camera.
//
// Parameters:
//   - minDistance: the closest the eye may get to the target, must be positive
//   - maxDistance: the farthest the eye may get from the target
//
// Returns:
//   - CameraBuilderOption: a function that sets the distance bounds
func WithDistanceBounds(minDistance, maxDistance float32) CameraBuilderOption {
	return func(c *Camera) {
		if minDistance > 0 && maxDistance >= minDistance {
			c.MinDistance = minDistance
			c.MaxDistance = maxDistance
		}
	}
}
