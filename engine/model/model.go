package model

import (
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
)

// model is the implementation of the Model interface.
type model struct {
	name   string
	meshes []mesh.Mesh
}

// Model defines the interface for a renderable 3D model.
// A Model is an ordered collection of GPU-ready meshes produced by exactly one generator or by the
// Loader. It lives for the whole run and releases its meshes' GPU buffers on Release.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Meshes retrieves the meshes in draw order.
	//
	// Returns:
	//   - []mesh.Mesh: the meshes
	Meshes() []mesh.Mesh

	// TriangleCount returns the total number of triangles across every mesh.
	//
	// Returns:
	//   - int: the triangle count
	TriangleCount() int

	// Release releases the GPU buffers of every mesh.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []mesh.Mesh {
	return m.meshes
}

func (m *model) TriangleCount() int {
	total := 0
	for _, msh := range m.meshes {
		total += msh.TriangleCount()
	}
	return total
}

func (m *model) Release() {
	for _, msh := range m.meshes {
		msh.Release()
	}
}
