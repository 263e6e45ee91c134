package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/renderertest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, *renderertest.Backend, renderer.Renderer) {
	t.Helper()
	backend := &renderertest.Backend{}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, renderertest.Surface{W: 800, H: 600}, renderer.WithBackend(backend))
	require.NoError(t, err)

	cube, err := model.Cube(r, 2)
	require.NoError(t, err)

	s, err := NewScene(r, append([]SceneBuilderOption{WithModels(cube)}, options...)...)
	require.NoError(t, err)
	return s, backend, r
}

func TestNewSceneWiresPipelinesAndBindGroups(t *testing.T) {
	s, backend, _ := newTestScene(t)

	assert.Equal(t, []string{ModelPipelineKey, LightPipelineKey}, backend.Pipelines)
	assert.Equal(t, []string{"camera", "light"}, backend.BindGroups)
	assert.Equal(t, 2, backend.MeshUploads, "the cube and the light marker")
	assert.Len(t, backend.InstanceBytes, 64)
	assert.Equal(t, 1, s.InstanceCount())

	require.Len(t, backend.Writes, 2, "uniforms are written once at startup")
	assert.Len(t, backend.Writes[0].Data, 80)
	assert.Len(t, backend.Writes[1].Data, 32)
}

func TestComposedShadersDeclareVertexAndInstanceInputs(t *testing.T) {
	assert.Contains(t, ModelShaderSource, "struct CameraUniform")
	assert.Contains(t, ModelShaderSource, "struct InstanceInput")
	assert.NotContains(t, LightShaderSource, "struct InstanceInput")

	_, backend, r := newTestScene(t)
	require.NotEmpty(t, backend.Pipelines)

	layouts := r.Pipeline(ModelPipelineKey).BindGroupLayoutDescriptors()
	assert.Len(t, layouts, 2)
	cameraGroup, err := findGroup(r.Pipeline(ModelPipelineKey), "camera")
	require.NoError(t, err)
	assert.Equal(t, 0, cameraGroup)
	lightGroup, err := findGroup(r.Pipeline(LightPipelineKey), "light")
	require.NoError(t, err)
	assert.Equal(t, 1, lightGroup)
}

func TestRenderDrawsEveryMeshThenLightMarker(t *testing.T) {
	s, backend, _ := newTestScene(t, WithInstancesPerRow(3))
	assert.Equal(t, 9, s.InstanceCount())

	require.NoError(t, s.Render())

	require.Len(t, backend.Draws, 2)
	assert.Equal(t, ModelPipelineKey, backend.Draws[0].PipelineKey)
	assert.Equal(t, uint32(9), backend.Draws[0].InstanceCount)
	assert.Equal(t, 2, backend.Draws[0].BindGroups)
	assert.NotNil(t, backend.Draws[0].Instances)

	assert.Equal(t, LightPipelineKey, backend.Draws[1].PipelineKey)
	assert.Equal(t, uint32(1), backend.Draws[1].InstanceCount)
	assert.Nil(t, backend.Draws[1].Instances)

	assert.Equal(t, 1, backend.Frames)
	assert.Equal(t, 1, backend.Ended)
	assert.Equal(t, 1, backend.Presented)
}

func TestRenderClassifiesSurfaceErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  error
		want error
	}{
		{"lost", errors.New("surface texture status: Lost"), renderer.ErrSurfaceLost},
		{"outdated", errors.New("surface texture status: Outdated"), renderer.ErrSurfaceLost},
		{"out of memory", errors.New("surface texture status: OutOfMemory"), renderer.ErrSurfaceOutOfMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend, _ := newTestScene(t)
			backend.SetBeginFrameErr(tt.raw)

			err := s.Render()
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, backend.Draws)
			assert.Zero(t, backend.Presented)
		})
	}
}

func TestRenderPassesThroughOtherErrors(t *testing.T) {
	s, backend, _ := newTestScene(t)
	backend.SetBeginFrameErr(errors.New("timeout"))

	err := s.Render()
	require.Error(t, err)
	assert.False(t, errors.Is(err, renderer.ErrSurfaceLost))
	assert.False(t, errors.Is(err, renderer.ErrSurfaceOutOfMemory))

	backend.SetBeginFrameErr(nil)
	assert.NoError(t, s.Render(), "the next frame renders normally")
}

func TestResize(t *testing.T) {
	s, backend, r := newTestScene(t)
	configured := len(backend.Configured)

	require.NoError(t, s.Resize(0, 300))
	require.NoError(t, s.Resize(300, 0))
	assert.Len(t, backend.Configured, configured, "zero sizes are ignored")
	assert.Equal(t, float32(800)/600, s.Projection().Aspect)

	require.NoError(t, s.Resize(1000, 500))
	assert.Equal(t, float32(2), s.Projection().Aspect)
	w, h := r.Size()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
	assert.Len(t, backend.Configured, configured+1)
}

func TestUpdateMovesCameraAndLight(t *testing.T) {
	s, backend, _ := newTestScene(t)
	writes := len(backend.Writes)
	startLight := s.Light().Position()

	assert.True(t, s.HandleKey(common.KeyW, true))
	s.Update(0.5)

	cam := s.Camera()
	assert.True(t, common.ApproxEqualVec3(mgl32.Vec3{0, 0, -2}, cam.Target, 1e-5), "target %v", cam.Target)
	assert.NotEqual(t, startLight, s.Light().Position())
	assert.Len(t, backend.Writes, writes+2)

	want := camera.NewCameraUniform(cam, s.Projection())
	assert.Equal(t, want.Marshal(), backend.Writes[writes].Data)
}

func TestMouseAndScrollAreOneShot(t *testing.T) {
	s, _, _ := newTestScene(t)
	start := s.Camera()

	s.HandleMouseDrag(10, 0)
	s.HandleScroll(1)
	s.Update(0.1)
	moved := s.Camera()
	assert.NotEqual(t, start.Yaw, moved.Yaw)
	assert.Less(t, moved.Distance, start.Distance)

	s.Update(0.1)
	assert.Equal(t, moved.Yaw, s.Camera().Yaw)
	assert.Equal(t, moved.Distance, s.Camera().Distance)
}

func TestWithLightAndCamera(t *testing.T) {
	l := light.NewLight(light.WithPosition(0, 4, 0), light.WithOrbitSpeed(0))
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	s, _, _ := newTestScene(t, WithLight(l), WithCamera(cam))

	assert.Equal(t, mgl32.Vec3{0, 4, 0}, s.Light().Position())
	assert.Equal(t, cam, s.Camera())
	assert.Len(t, s.Models(), 1)
}

func TestReleaseIsIdempotent(t *testing.T) {
	s, _, _ := newTestScene(t)
	assert.NotPanics(t, func() {
		s.Release()
		s.Release()
	})
}
