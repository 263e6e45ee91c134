package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// facesPerTask is the number of faces one extraction task converts.
const facesPerTask = 1024

// defaultMaterialName is the name the OBJ decoder gives faces that precede any usemtl statement.
const defaultMaterialName = "internal default"

// objLoaderBackendImpl is the implementation of objLoaderBackend.
type objLoaderBackendImpl struct {
	mu      sync.RWMutex
	workers int
	pool    worker.DynamicWorkerPool // started by the first extraction
	closed  bool
}

// objLoaderBackend is a loaderBackend implementation for Wavefront OBJ files. Decoding is
// delegated to the g3n OBJ decoder; vertex extraction is spread over a worker pool and
// reassembled in face order.
type objLoaderBackend interface {
	loaderBackend

	// extract converts a decoded OBJ file into an ImportedModel. Faces may only reference
	// materials named in defined.
	extract(name string, dec *obj.Decoder, defined map[string]bool) (*ImportedModel, error)
}

var _ objLoaderBackend = &objLoaderBackendImpl{}

// newOBJLoaderBackend creates a new OBJ loader backend.
//
// Parameters:
//   - workers: the maximum number of concurrent extraction workers
//
// Returns:
//   - objLoaderBackend: the loader backend for OBJ files
func newOBJLoaderBackend(workers int) objLoaderBackend {
	return &objLoaderBackendImpl{
		workers: max(workers, 1),
	}
}

func (b *objLoaderBackendImpl) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if b.pool != nil {
		b.pool.Stop()
		b.pool = nil
	}
}

// startPool creates the worker pool unless it already runs or the backend is closed.
func (b *objLoaderBackendImpl) startPool() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pool == nil && !b.closed {
		b.pool = worker.NewDynamicWorkerPool(b.workers, 256, 1*time.Second)
	}
}

func (b *objLoaderBackendImpl) Load(path string) (*ImportedModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var materials io.Reader
	if lib := materialLibrary(data); lib != "" {
		// An unreadable library leaves every usemtl undefined, which extract reports.
		if mtl, err := os.ReadFile(filepath.Join(filepath.Dir(path), lib)); err == nil {
			materials = bytes.NewReader(mtl)
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.LoadReader(name, bytes.NewReader(data), materials)
}

func (b *objLoaderBackendImpl) LoadReader(name string, r io.Reader, materials io.Reader) (*ImportedModel, error) {
	var mtl []byte
	if materials != nil {
		var err error
		if mtl, err = io.ReadAll(materials); err != nil {
			return nil, fmt.Errorf("failed to read material library: %w", err)
		}
	}

	dec, err := obj.DecodeReader(r, bytes.NewReader(mtl))
	if err != nil {
		return nil, err
	}
	return b.extract(name, dec, definedMaterials(mtl))
}

// faceRange is the result slot of one extraction task.
type faceRange struct {
	vertices []mesh.Vertex
	err      error
}

func (b *objLoaderBackendImpl) extract(name string, dec *obj.Decoder, defined map[string]bool) (*ImportedModel, error) {
	b.startPool()
	// Close waits for the write lock, so the pool cannot stop while tasks are pending.
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrLoaderClosed
	}

	imported := &ImportedModel{Name: name, Warnings: dec.Warnings}

	for oi := range dec.Objects {
		object := &dec.Objects[oi]
		if len(object.Faces) == 0 {
			continue
		}
		for fi := range object.Faces {
			if err := checkMaterial(defined, &object.Faces[fi]); err != nil {
				return nil, fmt.Errorf("object %q: %w", object.Name, err)
			}
		}

		// Each task owns one slot, so concatenating the slots in order preserves face order.
		chunks := (len(object.Faces) + facesPerTask - 1) / facesPerTask
		results := make([]faceRange, chunks)
		var wg sync.WaitGroup
		for c := range chunks {
			start := c * facesPerTask
			end := min(start+facesPerTask, len(object.Faces))
			slot := &results[c]
			faces := object.Faces[start:end]

			wg.Add(1)
			b.pool.SubmitTask(worker.Task{
				ID: c,
				Do: func() (any, error) {
					defer wg.Done()
					slot.vertices, slot.err = triangulate(dec, faces)
					return nil, slot.err
				},
			})
		}
		wg.Wait()

		var vertices []mesh.Vertex
		for c := range results {
			if results[c].err != nil {
				return nil, fmt.Errorf("object %q: %w", object.Name, results[c].err)
			}
			vertices = append(vertices, results[c].vertices...)
		}

		indices := make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
		imported.Meshes = append(imported.Meshes, ImportedMesh{
			Name:     object.Name,
			Vertices: vertices,
			Indices:  indices,
		})
	}

	if len(imported.Meshes) == 0 {
		return nil, ErrNoObjects
	}
	return imported, nil
}

// checkMaterial rejects a face whose usemtl names a material the library does not define.
func checkMaterial(defined map[string]bool, face *obj.Face) error {
	if face.Material == "" || face.Material == defaultMaterialName {
		return nil
	}
	if !defined[face.Material] {
		return fmt.Errorf("%w: %s", ErrMissingMaterial, face.Material)
	}
	return nil
}

// triangulate fans every polygon around its first corner and returns three vertices per triangle.
// Corners without a usable normal get the normal of their triangle.
func triangulate(dec *obj.Decoder, faces []obj.Face) ([]mesh.Vertex, error) {
	out := make([]mesh.Vertex, 0, len(faces)*3)
	for fi := range faces {
		face := &faces[fi]
		if len(face.Vertices) < 3 {
			return nil, fmt.Errorf("face with %d vertices", len(face.Vertices))
		}
		for k := 1; k+1 < len(face.Vertices); k++ {
			corners := [3]int{0, k, k + 1}
			var tri [3]mesh.Vertex
			for j, c := range corners {
				p, err := vec3At(dec.Vertices, face.Vertices[c])
				if err != nil {
					return nil, fmt.Errorf("position: %w", err)
				}
				tri[j].Position = p
			}

			flat := tri[1].Position.Sub(tri[0].Position).Cross(tri[2].Position.Sub(tri[0].Position))
			if flat.Len() > 0 {
				flat = flat.Normalize()
			}
			for j, c := range corners {
				tri[j].Normal = flat
				if c < len(face.Normals) {
					if n, err := vec3At(dec.Normals, face.Normals[c]); err == nil && n.Len() > 0 {
						tri[j].Normal = n.Normalize()
					}
				}
			}
			out = append(out, tri[:]...)
		}
	}
	return out, nil
}

// vec3At reads the index-th vec3 of a flat float array.
func vec3At(values []float32, index int) (mgl32.Vec3, error) {
	if index < 0 || index == math.MaxUint32 || 3*index+2 >= len(values) {
		return mgl32.Vec3{}, fmt.Errorf("index %d out of range for %d entries", index, len(values)/3)
	}
	return mgl32.Vec3{values[3*index], values[3*index+1], values[3*index+2]}, nil
}

// materialLibrary returns the first mtllib file named by an OBJ source, or "".
func materialLibrary(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "mtllib" {
			return strings.Join(fields[1:], " ")
		}
	}
	return ""
}

// definedMaterials returns the names declared by newmtl statements in a material library.
func definedMaterials(mtl []byte) map[string]bool {
	defined := map[string]bool{}
	sc := bufio.NewScanner(bytes.NewReader(mtl))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "newmtl" {
			defined[fields[1]] = true
		}
	}
	return defined
}
