package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

var (
	// ErrUnsupportedFormat is returned for a path whose extension no backend handles.
	ErrUnsupportedFormat = errors.New("unsupported model format")
	// ErrMissingMaterial is returned when a face uses a material the material library does not define.
	ErrMissingMaterial = errors.New("material not defined")
	// ErrNoObjects is returned when a file contains no faces.
	ErrNoObjects = errors.New("file contains no objects")
	// ErrLoaderClosed is returned when a model that is not cached is loaded after Close.
	ErrLoaderClosed = errors.New("loader is closed")
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	uploader mesh.Uploader
	color    mgl32.Vec4
	workers  int

	modelCache map[string]model.Model

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching 3D models.
// It abstracts the file format behind a generic backend and manages a cache of
// previously loaded models.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.obj → OBJ backend).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from reader streams and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - materials: the reader providing the material library, or nil
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, materials io.Reader) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model

	// Close stops the loader's extraction workers. Cached models stay available; loading
	// anything else afterwards returns ErrLoaderClosed. Calling Close more than once is safe.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeOBJ)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		color:      mesh.ModelColor,
		workers:    runtime.NumCPU(),
		modelCache: make(map[string]model.Model),
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newOBJLoaderBackend(l.workers)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m, err := l.importedToModel(imported)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader, materials io.Reader) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	imported, err := l.backend.LoadReader(name, r, materials)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	m, err := l.importedToModel(imported)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Close() {
	if l.backend != nil {
		l.backend.Close()
	}
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		if l.backend == nil {
			break
		}
		return l.backend, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// importedToModel converts an ImportedModel (CPU data) into a Model with one uploaded mesh per
// imported object. Meshes built before a failing upload are released.
//
// Parameters:
//   - imported: the CPU-side ImportedModel
//
// Returns:
//   - model.Model: the engine-ready Model
//   - error: error if a mesh fails to build
func (l *loader) importedToModel(imported *ImportedModel) (model.Model, error) {
	if l.uploader == nil {
		return nil, errors.New("loader has no mesh uploader")
	}

	meshes := make([]mesh.Mesh, 0, len(imported.Meshes))
	for _, im := range imported.Meshes {
		b := mesh.NewBuilder(im.Name, mesh.WithColor(l.color))
		b.AddVertices(im.Vertices, im.Indices)
		m, err := b.Build(l.uploader)
		if err != nil {
			for _, built := range meshes {
				built.Release()
			}
			return nil, err
		}
		meshes = append(meshes, m)
	}

	return model.NewModel(
		model.WithName(imported.Name),
		model.WithMeshes(meshes...),
	), nil
}
