package mesh

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches Vertex layout exactly (40 bytes, tightly packed vertex attributes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// VertexSize is the stride in bytes of one marshalled Vertex.
const VertexSize = 40

// Vertex is a single mesh vertex as uploaded to the GPU.
// Normal is unit length, or zero for a grid point that no face touches.
type Vertex struct {
	Position mgl32.Vec3 // offset  0: model-space position (12 bytes)
	Normal   mgl32.Vec3 // offset 12: shading normal (12 bytes)
	Color    mgl32.Vec4 // offset 24: RGBA color (16 bytes)
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the Vertex into a 40-byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 40-byte buffer ready for GPU upload.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexSize)
	v.marshalInto(buf)
	return buf
}

func (v *Vertex) marshalInto(buf []byte) {
	off := common.PutFloat32s(buf, 0, v.Position[:]...)
	off = common.PutFloat32s(buf, off, v.Normal[:]...)
	common.PutFloat32s(buf, off, v.Color[:]...)
}

// marshalVertices packs vertices back to back into one upload buffer.
func marshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexSize)
	for i := range vertices {
		vertices[i].marshalInto(buf[i*VertexSize:])
	}
	return buf
}
