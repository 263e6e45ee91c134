package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection holds the perspective parameters of the viewport.
type Projection struct {
	Aspect float32
	FovY   float32 // radians
	Near   float32
	Far    float32
}

// NewProjection creates a Projection for a width x height viewport. A zero dimension leaves the
// aspect at 1 until the first valid Resize.
//
// Parameters:
//   - width, height: the viewport size in pixels
//   - fovY: the vertical field of view in radians
//   - near, far: the clip plane distances
//
// Returns:
//   - Projection: the projection
func NewProjection(width, height int, fovY, near, far float32) Projection {
	p := Projection{Aspect: 1, FovY: fovY, Near: near, Far: far}
	p.Resize(width, height)
	return p
}

// DefaultProjection creates a 45 degree projection with clip planes at 0.1 and 100.
func DefaultProjection(width, height int) Projection {
	return NewProjection(width, height, mgl32.DegToRad(45), 0.1, 100)
}

// Resize sets the aspect ratio to width/height. It does nothing when either dimension is zero.
func (p *Projection) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Aspect = float32(width) / float32(height)
}

// Matrix returns the perspective matrix in WebGPU clip space (depth in [0, 1]).
func (p Projection) Matrix() mgl32.Mat4 {
	return common.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
}
