package model

import (
	"fmt"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// roofOverhang is how far the roof slopes and ridge extend past the walls.
	roofOverhang float32 = 0.2
	// roofBias lifts the roof peak to keep it from z-fighting with the gables.
	roofBias float32 = 0.001
)

var (
	unitX = mgl32.Vec3{1, 0, 0}
	unitY = mgl32.Vec3{0, 1, 0}
	unitZ = mgl32.Vec3{0, 0, 1}
)

// Cube builds an axis-aligned cube of edge length size centered at the origin: six quads,
// twelve triangles, every normal pointing outward.
//
// Parameters:
//   - uploader: the receiver of the GPU buffers
//   - size: the edge length, must be positive
//   - options: optional generator options
//
// Returns:
//   - Model: a model with a single "Cube" mesh
//   - error: an error if size is not positive or the upload failed
func Cube(uploader mesh.Uploader, size float32, options ...GeneratorOption) (Model, error) {
	if err := requirePositive("cube", "size", size); err != nil {
		return nil, err
	}
	cfg := newGeneratorConfig(options)
	b := mesh.NewBuilder("Cube", mesh.WithColor(cfg.color))

	up := unitY.Mul(size)
	right := unitX.Mul(size)
	forward := unitZ.Mul(size)
	half := size / 2
	near := mgl32.Vec3{-half, -half, -half}
	far := mgl32.Vec3{half, half, half}

	b.AddQuad(near, right, forward)
	b.AddQuad(near, up, right)
	b.AddQuad(near, forward, up)

	b.AddQuad(far, forward.Mul(-1), right.Mul(-1))
	b.AddQuad(far, right.Mul(-1), up.Mul(-1))
	b.AddQuad(far, up.Mul(-1), forward.Mul(-1))

	return buildModel("Cube", uploader, b)
}

// Plane builds a single upward-facing square of edge length size on the X-Z plane, centered at
// the origin.
//
// Parameters:
//   - uploader: the receiver of the GPU buffers
//   - size: the edge length, must be positive
//   - options: optional generator options
//
// Returns:
//   - Model: a model with a single "Plane" mesh
//   - error: an error if size is not positive or the upload failed
func Plane(uploader mesh.Uploader, size float32, options ...GeneratorOption) (Model, error) {
	if err := requirePositive("plane", "size", size); err != nil {
		return nil, err
	}
	cfg := newGeneratorConfig(options)
	b := mesh.NewBuilder("Plane", mesh.WithColor(cfg.color))

	half := size / 2
	b.AddQuad(mgl32.Vec3{-half, 0, -half}, unitZ.Mul(size), unitX.Mul(size))

	return buildModel("Plane", uploader, b)
}

// House builds four walls standing on y=0, two gables and a double-sided peaked roof whose
// slopes and ridge overhang the walls.
//
// Parameters:
//   - uploader: the receiver of the GPU buffers
//   - width: the extent along X, must be positive
//   - length: the extent along Z, must be positive
//   - height: the wall height along Y, must be positive; the peak rises a further height/2
//   - options: optional generator options
//
// Returns:
//   - Model: a model with a single "House" mesh
//   - error: an error if a dimension is not positive or the upload failed
func House(uploader mesh.Uploader, width, length, height float32, options ...GeneratorOption) (Model, error) {
	for _, dim := range []struct {
		name  string
		value float32
	}{{"width", width}, {"length", length}, {"height", height}} {
		if err := requirePositive("house", dim.name, dim.value); err != nil {
			return nil, err
		}
	}
	cfg := newGeneratorConfig(options)
	b := mesh.NewBuilder("House", mesh.WithColor(cfg.color))

	up := unitY.Mul(height)
	right := unitX.Mul(width)
	forward := unitZ.Mul(length)
	near := mgl32.Vec3{-width / 2, 0, -length / 2}
	far := mgl32.Vec3{width / 2, height, length / 2}

	b.AddQuad(near, up, right)
	b.AddQuad(near, forward, up)
	b.AddQuad(far, right.Mul(-1), up.Mul(-1))
	b.AddQuad(far, up.Mul(-1), forward.Mul(-1))

	wallTopLeft := near.Add(up)
	wallTopRight := wallTopLeft.Add(right)
	peak := wallTopLeft.Add(up.Mul(0.5)).Add(unitX.Mul(width / 2))

	b.AddTriangle(wallTopLeft, peak, wallTopRight)
	b.AddTriangle(wallTopLeft.Add(forward), wallTopRight.Add(forward), peak.Add(forward))

	fromPeakLeft := wallTopLeft.Sub(peak)
	fromPeakRight := wallTopRight.Sub(peak)
	fromPeakLeft = fromPeakLeft.Add(fromPeakLeft.Normalize().Mul(roofOverhang))
	fromPeakRight = fromPeakRight.Add(fromPeakRight.Normalize().Mul(roofOverhang))

	peak = peak.Sub(unitZ.Mul(roofOverhang)).Add(unitY.Mul(roofBias))
	ridge := forward.Add(unitZ.Mul(2 * roofOverhang))

	b.AddQuad(peak, ridge, fromPeakLeft)
	b.AddQuad(peak, fromPeakLeft, ridge)
	b.AddQuad(peak, fromPeakRight, ridge)
	b.AddQuad(peak, ridge, fromPeakRight)

	return buildModel("House", uploader, b)
}

// Surface builds a (count+1) x (count+1) height field centered at the origin with grid spacing
// 2*size on X and Z. Heights are uniform in [0, heightMax) and vertices are shared between
// neighbouring cells, giving smooth normals. A heightMax of 0 yields a flat surface at y = 0.
//
// Parameters:
//   - uploader: the receiver of the GPU buffers
//   - count: the number of cells per side, must be positive
//   - size: half the grid spacing, must be positive
//   - heightMax: the exclusive upper bound of the heights, must not be negative; 0 makes every height 0
//   - options: optional generator options; WithSeed makes the heights reproducible
//
// Returns:
//   - Model: a model with a single "Surface" mesh of 2*count^2 triangles
//   - error: an error if an input is out of range or the upload failed
func Surface(uploader mesh.Uploader, count int, size, heightMax float32, options ...GeneratorOption) (Model, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid surface count %d: must be positive", count)
	}
	if err := requirePositive("surface", "size", size); err != nil {
		return nil, err
	}
	if heightMax < 0 || math32.IsNaN(heightMax) {
		return nil, fmt.Errorf("invalid surface max height %g: must not be negative", heightMax)
	}
	cfg := newGeneratorConfig(options)
	if !cfg.seedSet {
		cfg.seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))

	b := mesh.NewBuilder("Surface", mesh.WithColor(cfg.color))
	stride := count + 1
	half := float32(count) / 2
	for row := range stride {
		z := 2 * size * (float32(row) - half)
		for col := range stride {
			x := 2 * size * (float32(col) - half)
			b.AddLinkedQuad(mgl32.Vec3{x, randomHeight(rng, heightMax), z}, row > 0 && col > 0, stride)
		}
	}

	return buildModel("Surface", uploader, b)
}

// randomHeight draws a height in [0, heightMax). A zero heightMax yields a flat surface.
func randomHeight(rng *rand.Rand, heightMax float32) float32 {
	if heightMax == 0 {
		return 0
	}
	y := rng.Float32() * heightMax
	if y >= heightMax {
		y = math32.Nextafter(heightMax, 0)
	}
	return y
}

func requirePositive(generator, name string, value float32) error {
	if !(value > 0) || math32.IsInf(value, 1) {
		return fmt.Errorf("invalid %s %s %g: must be positive", generator, name, value)
	}
	return nil
}

func buildModel(name string, uploader mesh.Uploader, b mesh.Builder) (Model, error) {
	m, err := b.Build(uploader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}
	return NewModel(WithName(name), WithMeshes(m)), nil
}
