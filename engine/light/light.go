package light

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	color    mgl32.Vec3
	// orbitSpeed is the rotation rate about +Y in radians per second.
	orbitSpeed float32
}

// Light is the single point light of the scene. It orbits the world Y axis and is uploaded as a
// uniform at bind group 1, visible to both shader stages.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Update rotates the light about +Y by the orbit speed times dt.
	//
	// Parameters:
	//   - dt: the frame time in seconds
	Update(dt float32)

	// Uniform returns the light in its GPU form.
	//
	// Returns:
	//   - GPULightUniform: the uniform ready for Marshal
	Uniform() GPULightUniform
}

var _ Light = &lightImpl{}

// NewLight creates a white light at (2, 2, 2) orbiting at 60 degrees per second.
//
// Parameters:
//   - options: a variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the configured light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:         &sync.Mutex{},
		position:   mgl32.Vec3{2, 2, 2},
		color:      mgl32.Vec3{1, 1, 1},
		orbitSpeed: mgl32.DegToRad(60),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Update(dt float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = mgl32.HomogRotate3DY(l.orbitSpeed * dt).Mul4x1(l.position.Vec4(1)).Vec3()
}

func (l *lightImpl) Uniform() GPULightUniform {
	l.mu.Lock()
	defer l.mu.Unlock()
	return GPULightUniform{Position: l.position, Color: l.color}
}
