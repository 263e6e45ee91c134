package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the starting world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r: the red component
//   - g: the green component
//   - b: the blue component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = mgl32.Vec3{r, g, b}
	}
}

// WithOrbitSpeed is an option builder that sets how fast the light circles the Y axis.
//
// Parameters:
//   - degreesPerSecond: the rotation rate; zero keeps the light still
//
// Returns:
//   - LightBuilderOption: a function that applies the orbit speed option to a lightImpl
func WithOrbitSpeed(degreesPerSecond float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.orbitSpeed = mgl32.DegToRad(degreesPerSecond)
	}
}
