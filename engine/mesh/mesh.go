package mesh

import (
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// Uploader receives the packed vertex and index streams of a finished mesh. The Renderer
// implements it; tests supply a recorder.
type Uploader interface {
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name     string
	vertices []Vertex
	indices  []uint32
	provider bind_group_provider.BindGroupProvider
}

// Mesh is an immutable triangle list produced by a Builder. Its CPU-side streams are kept for
// inspection and must not be modified; the GPU copies live on Provider.
type Mesh interface {
	// Name returns the mesh name, used in GPU labels and logs.
	Name() string

	// Vertices returns the vertex stream. Callers must not modify it.
	Vertices() []Vertex

	// Indices returns the triangle-list index stream, three indices per triangle.
	Indices() []uint32

	// TriangleCount returns len(Indices())/3.
	TriangleCount() int

	// Bounds returns the component-wise minimum and maximum vertex positions.
	// An empty mesh returns two zero vectors.
	Bounds() (mgl32.Vec3, mgl32.Vec3)

	// Provider returns the bind group provider holding the GPU vertex and index buffers.
	Provider() bind_group_provider.BindGroupProvider

	// Release frees the GPU buffers.
	Release()
}

var _ Mesh = &mesh{}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []Vertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) TriangleCount() int {
	return len(m.indices) / 3
}

func (m *mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := m.vertices[0].Position, m.vertices[0].Position
	for _, v := range m.vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}

func (m *mesh) Provider() bind_group_provider.BindGroupProvider {
	return m.provider
}

func (m *mesh) Release() {
	m.provider.Release()
}
