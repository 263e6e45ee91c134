package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch is the largest pitch magnitude in radians (89 degrees). Keeping the eye off the poles
// keeps the look-at basis well defined.
var MaxPitch = mgl32.DegToRad(89)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is an orbit camera: the eye sits on a sphere of radius Distance around Target, at
// horizontal angle Yaw (0 looks down -Z from +Z) and vertical angle Pitch above the X-Z plane.
// Camera is a value; Apply returns an updated copy.
type Camera struct {
	// Target is the world-space point the camera orbits and looks at.
	Target mgl32.Vec3

	// Distance is the orbit radius, kept within [MinDistance, MaxDistance].
	Distance float32

	// Yaw is the horizontal angle around +Y in radians.
	Yaw float32

	// Pitch is the elevation in radians, kept within [-MaxPitch, MaxPitch].
	Pitch float32

	MinDistance float32
	MaxDistance float32
}

// NewCamera creates a Camera whose eye starts at eye and looks at target.
//
// Parameters:
//   - eye: the initial world-space eye position
//   - target: the orbit target
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the camera with yaw, pitch and distance derived from eye
func NewCamera(eye, target mgl32.Vec3, options ...CameraBuilderOption) Camera {
	c := Camera{
		Target:      target,
		MinDistance: 0.5,
		MaxDistance: 50,
	}
	for _, option := range options {
		option(&c)
	}

	offset := eye.Sub(target)
	c.Distance = offset.Len()
	if c.Distance > 0 {
		c.Yaw = math32.Atan2(offset.X(), offset.Z())
		c.Pitch = math32.Asin(common.Clamp(offset.Y()/c.Distance, -1, 1))
	}
	c.Pitch = common.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.Distance = common.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
	return c
}

// Eye returns the world-space eye position.
func (c Camera) Eye() mgl32.Vec3 {
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	sinPitch, cosPitch := math32.Sincos(c.Pitch)
	return c.Target.Add(mgl32.Vec3{
		cosPitch * sinYaw,
		sinPitch,
		cosPitch * cosYaw,
	}.Mul(c.Distance))
}

// ViewMatrix returns the right-handed look-at matrix from the eye to the target with +Y up.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, worldUp)
}

// horizontalAxes returns the unit forward and right directions of the camera projected onto the
// X-Z plane. Forward points from the eye toward the target.
func (c Camera) horizontalAxes() (forward, right mgl32.Vec3) {
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	forward = mgl32.Vec3{-sinYaw, 0, -cosYaw}
	right = mgl32.Vec3{cosYaw, 0, -sinYaw}
	return forward, right
}
