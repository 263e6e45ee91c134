package model

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct.
// Matches GPUInstance layout exactly (64 bytes, four vec4 columns at locations 5-8).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstance is the GPU-aligned representation of a single per-instance model matrix.
// Matches the WGSL InstanceInput struct layout exactly (see GPUInstanceSource).
// Size: 64 bytes (mat4x4<f32> as four column vectors, no padding required).
type GPUInstance struct {
	Model [16]float32 // offset 0: 4×4 model-to-world transform matrix, column-major (64 bytes)
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 64)
	common.PutFloat32s(buf, 0, g.Model[:]...)
	return buf
}

// MarshalInstances packs the raw form of every instance back to back, in order.
//
// Parameters:
//   - instances: the instances to pack
//
// Returns:
//   - []byte: len(instances)*64 bytes ready for the instance vertex buffer
func MarshalInstances(instances []Instance) []byte {
	buf := make([]byte, 0, len(instances)*64)
	for _, inst := range instances {
		raw := inst.Raw()
		buf = append(buf, raw.Marshal()...)
	}
	return buf
}
