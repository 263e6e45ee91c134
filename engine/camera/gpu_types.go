package camera

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes, std430 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 80 bytes (std430 / WGSL aligned).
type GPUCameraUniform struct {
	ViewProj     [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	ViewPosition [3]float32  // offset 64: world-space eye position (vec3<f32>)
	_pad         float32     // offset 76: padding to 80 bytes
}

// NewCameraUniform combines the camera and projection into the per-frame uniform:
// ViewProj = Projection * View.
//
// Parameters:
//   - cam: the camera
//   - projection: the viewport projection
//
// Returns:
//   - GPUCameraUniform: the uniform ready for Marshal
func NewCameraUniform(cam Camera, projection Projection) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj:     projection.Matrix().Mul4(cam.ViewMatrix()),
		ViewPosition: cam.Eye(),
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.ViewProj[:]...)
	common.PutFloat32s(buf, off, g.ViewPosition[:]...)
	return buf
}
