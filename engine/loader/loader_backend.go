package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
)

// ImportedMesh is the CPU-side result of importing one named object: a triangle list whose
// vertices carry positions and normals. Colors are assigned later by the mesh builder.
type ImportedMesh struct {
	Name     string
	Vertices []mesh.Vertex
	Indices  []uint32
}

// ImportedModel is the CPU-side result of importing a model file.
type ImportedModel struct {
	Name     string
	Meshes   []ImportedMesh
	Warnings []string
}

// loaderBackend defines the generic interface for loading models from files or streams.
// Concrete implementations (e.g., objLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full model import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*ImportedModel, error)

	// LoadReader imports a model from reader streams.
	//
	// Parameters:
	//   - name: the model name
	//   - r: the reader providing the model data
	//   - materials: the reader providing the material library, or nil
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, materials io.Reader) (*ImportedModel, error)

	// Close stops the backend's workers. Later imports fail with ErrLoaderClosed.
	Close()
}
