package mesh

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrBuilderConsumed is returned by Build on a builder that has already been built.
var ErrBuilderConsumed = errors.New("mesh builder already consumed")

// ModelColor is the color applied to every vertex unless WithColor overrides it.
var ModelColor = mgl32.Vec4{1.0, 0.1, 0.1, 1.0}

// BuilderOption configures a Builder at construction.
type BuilderOption func(*builder)

// WithColor sets the color applied to every vertex the builder emits.
//
// Parameters:
//   - color: the RGBA vertex color
//
// Returns:
//   - BuilderOption: a function that applies the color to a builder
func WithColor(color mgl32.Vec4) BuilderOption {
	return func(b *builder) {
		b.color = color
	}
}

// builder is the implementation of the Builder interface.
type builder struct {
	mu *sync.Mutex

	name     string
	color    mgl32.Vec4
	vertices []Vertex
	indices  []uint32

	// smooth is set once a linked quad has been added, so Build normalizes the accumulated normals.
	smooth   bool
	err      error
	consumed bool
}

// Builder accumulates the vertex and index streams of a single mesh. Quads and triangles are
// flat shaded; linked quads share vertices with their grid neighbours and are smooth shaded.
// A Builder is single-use: Build hands its streams to the Mesh it returns.
type Builder interface {
	// AddTriangle appends one flat-shaded triangle. The face normal is normalize((b-a) x (c-a)).
	//
	// Parameters:
	//   - a, b, c: the corners in counter-clockwise order when seen from the front
	AddTriangle(a, b, c mgl32.Vec3)

	// AddQuad appends a flat-shaded quad with corners origin, origin+edge1, origin+edge1+edge2 and
	// origin+edge2. The face normal is normalize(edge1 x edge2).
	//
	// Parameters:
	//   - origin: the first corner
	//   - edge1: the first edge from origin
	//   - edge2: the second edge from origin
	AddQuad(origin, edge1, edge2 mgl32.Vec3)

	// AddLinkedQuad appends one grid vertex. When link is true the vertex closes the grid cell to
	// its south-west, emitting two triangles that reuse the west, south and south-west vertices.
	//
	// Parameters:
	//   - position: the grid vertex position
	//   - link: whether to emit the cell triangles
	//   - rowStride: the number of vertices per grid row
	AddLinkedQuad(position mgl32.Vec3, link bool, rowStride int)

	// AddVertices appends pre-shaded vertices with their own triangle-list indices. Indices are
	// relative to the first appended vertex. Positions and normals are kept; the color is replaced
	// by the builder color. An index outside vertices records an error that Build returns.
	//
	// Parameters:
	//   - vertices: the vertices to append
	//   - indices: three indices per triangle into vertices
	AddVertices(vertices []Vertex, indices []uint32)

	// VertexCount returns the number of vertices appended so far.
	VertexCount() int

	// Build uploads the accumulated streams and returns the finished Mesh. An empty builder
	// returns an empty Mesh without uploading anything.
	//
	// Parameters:
	//   - uploader: the receiver of the packed GPU buffers
	//
	// Returns:
	//   - Mesh: the immutable mesh
	//   - error: ErrBuilderConsumed, a linked quad error, or an upload error
	Build(uploader Uploader) (Mesh, error)
}

var _ Builder = &builder{}

// NewBuilder creates a new Builder for a mesh with the given name.
//
// Parameters:
//   - name: the mesh name
//   - options: variadic list of BuilderOption
//
// Returns:
//   - Builder: an empty builder
func NewBuilder(name string, options ...BuilderOption) Builder {
	b := &builder{
		mu:    &sync.Mutex{},
		name:  name,
		color: ModelColor,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *builder) AddTriangle(p0, p1, p2 mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()

	normal := safeNormalize(p1.Sub(p0).Cross(p2.Sub(p0)))
	base := uint32(len(b.vertices))
	for _, p := range [3]mgl32.Vec3{p0, p1, p2} {
		b.vertices = append(b.vertices, Vertex{Position: p, Normal: normal, Color: b.color})
	}
	b.indices = append(b.indices, base, base+1, base+2)
}

func (b *builder) AddQuad(origin, edge1, edge2 mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()

	normal := safeNormalize(edge1.Cross(edge2))
	corners := [4]mgl32.Vec3{
		origin,
		origin.Add(edge1),
		origin.Add(edge1).Add(edge2),
		origin.Add(edge2),
	}
	base := uint32(len(b.vertices))
	for _, p := range corners {
		b.vertices = append(b.vertices, Vertex{Position: p, Normal: normal, Color: b.color})
	}
	b.indices = append(b.indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

func (b *builder) AddLinkedQuad(position mgl32.Vec3, link bool, rowStride int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()

	c := len(b.vertices)
	b.vertices = append(b.vertices, Vertex{Position: position, Color: b.color})
	b.smooth = true
	if !link {
		return
	}

	w, s, sw := c-1, c-rowStride, c-rowStride-1
	if rowStride <= 0 || w < 0 || s < 0 || sw < 0 {
		if b.err == nil {
			b.err = fmt.Errorf("linked quad at vertex %d with row stride %d references a vertex before the start of the mesh", c, rowStride)
		}
		return
	}

	b.addSmoothTriangle(sw, w, c)
	b.addSmoothTriangle(sw, c, s)
}

// addSmoothTriangle indexes three existing vertices and accumulates the unnormalized face normal
// into each of them, so larger faces weigh more in the final vertex normal.
func (b *builder) addSmoothTriangle(i0, i1, i2 int) {
	p0, p1, p2 := b.vertices[i0].Position, b.vertices[i1].Position, b.vertices[i2].Position
	face := p1.Sub(p0).Cross(p2.Sub(p0))
	for _, i := range [3]int{i0, i1, i2} {
		b.vertices[i].Normal = b.vertices[i].Normal.Add(face)
	}
	b.indices = append(b.indices, uint32(i0), uint32(i1), uint32(i2))
}

func (b *builder) AddVertices(vertices []Vertex, indices []uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()

	for _, i := range indices {
		if int(i) >= len(vertices) {
			if b.err == nil {
				b.err = fmt.Errorf("index %d out of range for %d vertices", i, len(vertices))
			}
			return
		}
	}

	base := uint32(len(b.vertices))
	for _, v := range vertices {
		v.Color = b.color
		b.vertices = append(b.vertices, v)
	}
	for _, i := range indices {
		b.indices = append(b.indices, base+i)
	}
}

func (b *builder) VertexCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.vertices)
}

func (b *builder) Build(uploader Uploader) (Mesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if b.err != nil {
		return nil, fmt.Errorf("failed to build mesh %s: %w", b.name, b.err)
	}

	if b.smooth {
		for i := range b.vertices {
			b.vertices[i].Normal = safeNormalize(b.vertices[i].Normal)
		}
	}

	m := &mesh{
		name:     b.name,
		vertices: b.vertices,
		indices:  b.indices,
		provider: bind_group_provider.NewBindGroupProvider(b.name),
	}
	b.vertices, b.indices = nil, nil

	if len(m.indices) == 0 {
		return m, nil
	}

	if err := uploader.InitMeshBuffers(m.provider, marshalVertices(m.vertices), common.SliceToBytes(m.indices), len(m.indices)); err != nil {
		return nil, fmt.Errorf("failed to upload mesh %s: %w", b.name, err)
	}
	return m, nil
}

// mustBeOpen panics when geometry is added to a builder that has already been built.
func (b *builder) mustBeOpen() {
	if b.consumed {
		panic(fmt.Sprintf("mesh builder %q: geometry added after Build", b.name))
	}
}

// safeNormalize returns v scaled to unit length, or the zero vector when v has no length.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
