package light

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform struct.
// Matches GPULightUniform layout exactly (32 bytes, WGSL uniform aligned).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform is the GPU-aligned representation of the point light uniform.
// Matches the WGSL LightUniform struct layout exactly (see GPULightUniformSource).
// Size: 32 bytes (vec3 members padded to 16 bytes).
type GPULightUniform struct {
	Position [3]float32 // offset  0: world-space position
	_pad0    float32    // offset 12: padding
	Color    [3]float32 // offset 16: RGB color
	_pad1    float32    // offset 28: padding to 32 bytes
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 32)
	common.PutFloat32s(buf, 0, g.Position[:]...)
	common.PutFloat32s(buf, 16, g.Color[:]...)
	return buf
}
