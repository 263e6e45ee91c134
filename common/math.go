package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OpenGLToWGPU remaps OpenGL clip-space depth [-1, 1] into the WebGPU depth range [0, 1].
// The matrix is stored in column-major order, matching mgl32.
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Perspective builds a right-handed perspective projection that maps depth into the WebGPU [0, 1] range.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport width divided by height
//   - near: distance to the near clip plane
//   - far: distance to the far clip plane
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return OpenGLToWGPU.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// PutFloat32s writes the given values into dst as little-endian IEEE 754 floats, starting at offset.
// dst must have room for len(values)*4 bytes past offset.
//
// Parameters:
//   - dst: the destination byte slice
//   - offset: the byte offset at which writing begins
//   - values: the float32 values to write
//
// Returns:
//   - int: the offset immediately after the last written value
func PutFloat32s(dst []byte, offset int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(dst[offset:], math.Float32bits(v))
		offset += 4
	}
	return offset
}

// Mat4Bytes serializes a column-major matrix into 64 little-endian bytes.
func Mat4Bytes(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	PutFloat32s(buf, 0, m[:]...)
	return buf
}

// ApproxEqualVec3 reports whether every component of a and b differs by at most epsilon.
// The tolerance is absolute at every magnitude, including zero.
func ApproxEqualVec3(a, b mgl32.Vec3, epsilon float32) bool {
	for i := range 3 {
		if math32.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}
