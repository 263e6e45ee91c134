package mesh

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	calls      int
	vertexData []byte
	indexData  []byte
	indexCount int
	err        error
}

func (u *recordingUploader) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	u.calls++
	u.vertexData = vertexData
	u.indexData = indexData
	u.indexCount = indexCount
	if u.err != nil {
		return u.err
	}
	provider.SetIndexCount(indexCount)
	return nil
}

func TestVertexMarshalLayout(t *testing.T) {
	v := Vertex{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{0, 1, 0},
		Color:    mgl32.Vec4{0.5, 0.25, 0.125, 1},
	}
	buf := v.Marshal()
	require.Len(t, buf, VertexSize)
	assert.Equal(t, VertexSize, v.Size())

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(3), f(8))
	assert.Equal(t, float32(1), f(16))
	assert.Equal(t, float32(0.125), f(32))
	assert.Equal(t, float32(1), f(36))
}

func TestAddTriangleFlatNormal(t *testing.T) {
	b := NewBuilder("tri")
	b.AddTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})

	up := &recordingUploader{}
	m, err := b.Build(up)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2}, m.Indices())
	for _, v := range m.Vertices() {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
		assert.Equal(t, ModelColor, v.Color)
	}
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, 3, up.indexCount)
	assert.Len(t, up.vertexData, 3*VertexSize)
	assert.Len(t, up.indexData, 3*4)
	assert.Equal(t, 3, m.Provider().IndexCount())
}

func TestAddTriangleDegenerateHasZeroNormal(t *testing.T) {
	b := NewBuilder("degenerate")
	p := mgl32.Vec3{1, 1, 1}
	b.AddTriangle(p, p, p)

	m, err := b.Build(&recordingUploader{})
	require.NoError(t, err)
	for _, v := range m.Vertices() {
		assert.Equal(t, mgl32.Vec3{}, v.Normal)
	}
}

func TestAddQuadSharesDiagonal(t *testing.T) {
	b := NewBuilder("quad")
	b.AddQuad(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})

	m, err := b.Build(&recordingUploader{})
	require.NoError(t, err)

	require.Len(t, m.Vertices(), 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices())
	assert.Equal(t, 2, m.TriangleCount())

	positions := map[mgl32.Vec3]bool{}
	for _, v := range m.Vertices() {
		positions[v.Position] = true
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
	}
	assert.Len(t, positions, 4)

	first := map[uint32]bool{0: true, 1: true, 2: true}
	shared := 0
	for _, i := range m.Indices()[3:] {
		if first[i] {
			shared++
		}
	}
	assert.Equal(t, 2, shared, "the two triangles share exactly one edge")
}

func TestWithColor(t *testing.T) {
	color := mgl32.Vec4{0, 1, 0, 1}
	b := NewBuilder("green", WithColor(color))
	b.AddQuad(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1})

	m, err := b.Build(&recordingUploader{})
	require.NoError(t, err)
	for _, v := range m.Vertices() {
		assert.Equal(t, color, v.Color)
	}
}

func TestLinkedQuadGrid(t *testing.T) {
	const n = 2
	stride := n + 1
	b := NewBuilder("grid")
	for z := range stride {
		for x := range stride {
			b.AddLinkedQuad(mgl32.Vec3{float32(x), 0, float32(z)}, x > 0 && z > 0, stride)
		}
	}

	m, err := b.Build(&recordingUploader{})
	require.NoError(t, err)

	assert.Len(t, m.Vertices(), stride*stride)
	assert.Equal(t, 2*n*n, m.TriangleCount())
	for _, v := range m.Vertices() {
		assert.True(t, common.ApproxEqualVec3(mgl32.Vec3{0, 1, 0}, v.Normal, 1e-6), "normal %v", v.Normal)
	}
	// The first linked vertex (index 4) closes the cell to its south-west.
	assert.Equal(t, []uint32{0, 3, 4, 0, 4, 1}, m.Indices()[:6])
}

func TestLinkedQuadSmoothNormals(t *testing.T) {
	// A ridge along the middle column: the ridge vertices average both slopes.
	heights := [3][3]float32{
		{0, 1, 0},
		{0, 1, 0},
		{0, 1, 0},
	}
	b := NewBuilder("ridge")
	for z := range 3 {
		for x := range 3 {
			b.AddLinkedQuad(mgl32.Vec3{float32(x), heights[z][x], float32(z)}, x > 0 && z > 0, 3)
		}
	}
	m, err := b.Build(&recordingUploader{})
	require.NoError(t, err)

	ridge := m.Vertices()[4].Normal
	assert.InDelta(t, 0, ridge.X(), 1e-6)
	assert.InDelta(t, 1, ridge.Len(), 1e-6)
	assert.Greater(t, ridge.Y(), float32(0.99))
}

func TestLinkedQuadIsolatedVertexUnlit(t *testing.T) {
	b := NewBuilder("single")
	b.AddLinkedQuad(mgl32.Vec3{1, 2, 3}, false, 1)

	up := &recordingUploader{}
	m, err := b.Build(up)
	require.NoError(t, err)
	require.Len(t, m.Vertices(), 1)
	assert.Equal(t, mgl32.Vec3{}, m.Vertices()[0].Normal)
	assert.Zero(t, up.calls)
}

func TestLinkedQuadNegativeNeighbour(t *testing.T) {
	b := NewBuilder("bad")
	b.AddLinkedQuad(mgl32.Vec3{}, false, 3)
	b.AddLinkedQuad(mgl32.Vec3{1, 0, 0}, true, 3)

	up := &recordingUploader{}
	_, err := b.Build(up)
	assert.Error(t, err)
	assert.Zero(t, up.calls)
}

func TestEmptyBuilder(t *testing.T) {
	up := &recordingUploader{}
	m, err := NewBuilder("empty").Build(up)
	require.NoError(t, err)

	assert.Empty(t, m.Vertices())
	assert.Zero(t, m.TriangleCount())
	assert.Zero(t, up.calls)
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}

func TestBuildConsumesBuilder(t *testing.T) {
	b := NewBuilder("once")
	b.AddTriangle(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})

	_, err := b.Build(&recordingUploader{})
	require.NoError(t, err)

	_, err = b.Build(&recordingUploader{})
	assert.ErrorIs(t, err, ErrBuilderConsumed)

	assert.Panics(t, func() { b.AddQuad(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}) })
	assert.Panics(t, func() { b.AddLinkedQuad(mgl32.Vec3{}, false, 1) })
}

func TestBuildUploadError(t *testing.T) {
	b := NewBuilder("fails")
	b.AddTriangle(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})

	boom := errors.New("device lost")
	_, err := b.Build(&recordingUploader{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestBounds(t *testing.T) {
	b := NewBuilder("bounds")
	b.AddQuad(mgl32.Vec3{-1, -2, -3}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 4, 6})

	m, err := b.Build(&recordingUploader{})
	require.NoError(t, err)
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, hi)
}

func TestAddVertices(t *testing.T) {
	b := NewBuilder("soup")
	b.AddTriangle(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	b.AddVertices([]Vertex{
		{Position: mgl32.Vec3{0, 0, 1}, Normal: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec4{0, 0, 0, 1}},
		{Position: mgl32.Vec3{1, 0, 1}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{1, 0, 2}, Normal: mgl32.Vec3{0, 1, 0}},
	}, []uint32{0, 2, 1})

	m, err := b.Build(&recordingUploader{})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3, 5, 4}, m.Indices())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Vertices()[3].Normal)
	assert.Equal(t, ModelColor, m.Vertices()[3].Color)
}

func TestAddVerticesIndexOutOfRange(t *testing.T) {
	b := NewBuilder("bad soup")
	b.AddVertices([]Vertex{{}, {}}, []uint32{0, 1, 2})

	_, err := b.Build(&recordingUploader{})
	assert.Error(t, err)
}
