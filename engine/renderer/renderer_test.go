package renderer_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uniformSource = `
struct CameraUniform {
    view_proj: mat4x4<f32>,
    view_pos: vec3<f32>,
    _pad: f32,
}
@group(0) @binding(0) var<uniform> camera: CameraUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
}

@vertex
fn vs_main(v: VertexInput) -> @builtin(position) vec4<f32> {
    return camera.view_proj * vec4<f32>(v.position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(camera.view_pos, 1.0);
}
`

func newTestRenderer(t *testing.T) (renderer.Renderer, *renderertest.Backend) {
	t.Helper()
	backend := &renderertest.Backend{}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, renderertest.Surface{W: 800, H: 600}, renderer.WithBackend(backend))
	require.NoError(t, err)
	return r, backend
}

func testPipeline(key string) pipeline.Pipeline {
	return pipeline.NewPipeline(key,
		pipeline.WithVertexShader(shader.NewShader(key+"_vs", shader.ShaderTypeVertex, uniformSource)),
		pipeline.WithFragmentShader(shader.NewShader(key+"_fs", shader.ShaderTypeFragment, uniformSource)),
	)
}

func TestNewRendererConfiguresInitialSize(t *testing.T) {
	r, backend := newTestRenderer(t)

	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, [][2]int{{800, 600}}, backend.Configured)
}

func TestResizeIgnoresZero(t *testing.T) {
	r, backend := newTestRenderer(t)

	require.NoError(t, r.Resize(0, 300))
	require.NoError(t, r.Resize(300, 0))
	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Len(t, backend.Configured, 1)

	require.NoError(t, r.Resize(1024, 768))
	w, h = r.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
}

func TestRegisterPipelinesSkipsDuplicates(t *testing.T) {
	r, backend := newTestRenderer(t)

	p := testPipeline("model")
	require.NoError(t, r.RegisterPipelines(p, p))
	require.NoError(t, r.RegisterPipelines(testPipeline("model")))

	assert.Equal(t, []string{"model"}, backend.Pipelines)
	assert.Same(t, p, r.Pipeline("model"))
}

func TestInitBindGroupNeedsDeclaredGroup(t *testing.T) {
	r, backend := newTestRenderer(t)
	require.NoError(t, r.RegisterPipelines(testPipeline("model")))

	camera := bind_group_provider.NewBindGroupProvider("Camera")
	require.NoError(t, r.InitBindGroup(camera, "model", 0))
	assert.Equal(t, []string{"Camera"}, backend.BindGroups)

	assert.Error(t, r.InitBindGroup(camera, "model", 1))
	assert.Error(t, r.InitBindGroup(camera, "missing", 0))
}

func TestDrawCallUnknownPipeline(t *testing.T) {
	r, _ := newTestRenderer(t)
	mesh := bind_group_provider.NewBindGroupProvider("Mesh")

	err := r.DrawCall("missing", mesh, nil, 1, nil)
	assert.Error(t, err)
}

func TestBeginFrameClassifiesSurfaceErrors(t *testing.T) {
	r, backend := newTestRenderer(t)

	backend.SetBeginFrameErr(errors.New("wgpu: surface texture status Lost"))
	assert.ErrorIs(t, r.BeginFrame(), renderer.ErrSurfaceLost)

	backend.SetBeginFrameErr(errors.New("get current texture: Outdated"))
	assert.ErrorIs(t, r.BeginFrame(), renderer.ErrSurfaceLost)

	backend.SetBeginFrameErr(errors.New("status: OutOfMemory"))
	assert.ErrorIs(t, r.BeginFrame(), renderer.ErrSurfaceOutOfMemory)

	other := errors.New("timeout")
	backend.SetBeginFrameErr(other)
	err := r.BeginFrame()
	assert.Same(t, other, err)
	assert.NotErrorIs(t, err, renderer.ErrSurfaceLost)

	backend.SetBeginFrameErr(nil)
	assert.NoError(t, r.BeginFrame())
}
