package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// instanceTilt is the rotation applied to every instance away from the origin.
const instanceTilt = 45.0

// Instance places one copy of every model in the world. Many instances share the same mesh
// buffers; only their transforms differ.
type Instance struct {
	// Position is the world-space translation.
	Position mgl32.Vec3

	// Rotation is the orientation as a unit quaternion.
	Rotation mgl32.Quat
}

// Raw returns the instance transform in its GPU form, translation applied after rotation.
//
// Returns:
//   - GPUInstance: the column-major model matrix
func (i Instance) Raw() GPUInstance {
	m := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z()).Mul4(i.Rotation.Mat4())
	return GPUInstance{Model: m}
}

// NewInstanceGrid lays out perRow x perRow instances one unit apart on the X-Z plane, starting at
// the origin. The origin instance is unrotated; every other instance is tilted 45 degrees about
// its own normalized position.
//
// Parameters:
//   - perRow: the number of instances along each axis; values below 1 are treated as 1
//
// Returns:
//   - []Instance: the instances in row-major order (z outer, x inner)
func NewInstanceGrid(perRow int) []Instance {
	perRow = max(perRow, 1)
	instances := make([]Instance, 0, perRow*perRow)
	for z := range perRow {
		for x := range perRow {
			position := mgl32.Vec3{float32(x), 0, float32(z)}
			rotation := mgl32.QuatIdent()
			if position.Len() > 0 {
				rotation = mgl32.QuatRotate(mgl32.DegToRad(instanceTilt), position.Normalize())
			}
			instances = append(instances, Instance{Position: position, Rotation: rotation})
		}
	}
	return instances
}
