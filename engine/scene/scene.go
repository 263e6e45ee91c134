package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	// ModelPipelineKey is the pipeline that shades every model instance.
	ModelPipelineKey = "model"
	// LightPipelineKey is the pipeline that draws the light marker.
	LightPipelineKey = "light"
)

//go:embed assets/model.wgsl
var modelShaderBody string

//go:embed assets/light.wgsl
var lightShaderBody string

// ModelShaderSource is the complete WGSL module of the model pipeline.
var ModelShaderSource = composeShader(
	camera.GPUCameraUniformSource,
	light.GPULightUniformSource,
	mesh.GPUVertexSource,
	model.GPUInstanceSource,
	modelShaderBody,
)

// LightShaderSource is the complete WGSL module of the light marker pipeline.
var LightShaderSource = composeShader(
	camera.GPUCameraUniformSource,
	light.GPULightUniformSource,
	mesh.GPUVertexSource,
	lightShaderBody,
)

// composeShader joins WGSL snippets. Struct definitions must precede their use.
func composeShader(parts ...string) string {
	return strings.Join(parts, "\n")
}

// Scene owns everything drawn each frame: the models, the shared instance buffer, the camera
// and its controller, the projection, and the animated light with its marker.
type Scene interface {
	// Models returns the models in draw order.
	Models() []model.Model

	// Camera returns the current camera state.
	Camera() camera.Camera

	// Projection returns the current projection.
	Projection() camera.Projection

	// Controller returns the camera controller fed by input events.
	Controller() camera.CameraController

	// Light returns the scene light.
	Light() light.Light

	// InstanceCount returns the number of instances drawn per mesh.
	InstanceCount() int

	// UpdateCameraUniform writes the view-projection and eye position for the current camera
	// and projection to the GPU.
	UpdateCameraUniform()

	// Update applies the controller to the camera, animates the light, and writes both uniforms.
	//
	// Parameters:
	//   - dt: the frame time in seconds
	Update(dt float32)

	// Render draws one frame: every mesh of every model with the instance buffer, then the
	// light marker. Surface errors from frame acquisition are returned unchanged so the caller
	// can classify them with errors.Is.
	//
	// Returns:
	//   - error: renderer.ErrSurfaceLost, renderer.ErrSurfaceOutOfMemory, or another frame error
	Render() error

	// Resize reconfigures the renderer and the projection. Zero sizes are ignored.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// HandleKey forwards a key transition to the controller.
	//
	// Returns:
	//   - bool: true if the key is bound to a camera movement
	HandleKey(keyCode int, pressed bool) bool

	// HandleMouseDrag forwards a cursor drag delta to the controller.
	HandleMouseDrag(dx, dy float64)

	// HandleScroll forwards a scroll delta to the controller.
	HandleScroll(delta float64)

	// Release frees the GPU resources owned by the scene. The renderer is not released.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	r      renderer.Renderer
	logger *zap.Logger

	models      []model.Model
	lightMarker model.Model

	cam        camera.Camera
	projection camera.Projection
	controller camera.CameraController
	lgt        light.Light

	instances       []model.Instance
	instancesPerRow int

	cameraBGP    bind_group_provider.BindGroupProvider
	lightBGP     bind_group_provider.BindGroupProvider
	instancesBGP bind_group_provider.BindGroupProvider

	// Reused each frame.
	writePool      []bind_group_provider.BufferWrite
	drawBindGroups []bind_group_provider.BindGroupProvider

	released bool
}

var _ Scene = &scene{}

// NewScene registers the model and light pipelines, creates the camera and light bind groups,
// uploads the instance buffer once, and builds the light marker.
//
// Parameters:
//   - r: the renderer to draw with
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the ready scene
//   - error: error if a pipeline, bind group or buffer could not be created
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	width, height := r.Size()
	s := &scene{
		mu:              &sync.Mutex{},
		r:               r,
		logger:          zap.NewNop(),
		cam:             camera.NewCamera(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{}),
		projection:      camera.DefaultProjection(width, height),
		instancesPerRow: 1,
	}
	for _, option := range options {
		option(s)
	}
	if s.controller == nil {
		s.controller = camera.NewCameraController()
	}
	if s.lgt == nil {
		s.lgt = light.NewLight()
	}

	if err := s.initPipelines(); err != nil {
		return nil, err
	}
	if err := s.initBindGroups(); err != nil {
		return nil, err
	}
	if err := s.initInstances(); err != nil {
		return nil, err
	}

	marker, err := model.Cube(r, 1, model.WithColor(mgl32.Vec4{1, 1, 1, 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to build light marker: %w", err)
	}
	s.lightMarker = marker

	s.drawBindGroups = []bind_group_provider.BindGroupProvider{s.cameraBGP, s.lightBGP}
	s.writeUniforms()

	s.logger.Info("scene ready",
		zap.Int("models", len(s.models)),
		zap.Int("instances", len(s.instances)),
		zap.Int("triangles", s.triangleCount()),
	)
	return s, nil
}

// initPipelines registers the model and light marker pipelines.
func (s *scene) initPipelines() error {
	modelPipeline := pipeline.NewPipeline(ModelPipelineKey,
		pipeline.WithVertexShader(shader.NewShader("model_vs", shader.ShaderTypeVertex, ModelShaderSource)),
		pipeline.WithFragmentShader(shader.NewShader("model_fs", shader.ShaderTypeFragment, ModelShaderSource)),
	)
	lightPipeline := pipeline.NewPipeline(LightPipelineKey,
		pipeline.WithVertexShader(shader.NewShader("light_vs", shader.ShaderTypeVertex, LightShaderSource)),
		pipeline.WithFragmentShader(shader.NewShader("light_fs", shader.ShaderTypeFragment, LightShaderSource)),
	)
	return s.r.RegisterPipelines(modelPipeline, lightPipeline)
}

// initBindGroups creates the camera and light uniform bind groups from the model pipeline
// layout. The group indices are found by variable name.
func (s *scene) initBindGroups() error {
	p := s.r.Pipeline(ModelPipelineKey)
	cameraGroup, err := findGroup(p, "camera")
	if err != nil {
		return err
	}
	lightGroup, err := findGroup(p, "light")
	if err != nil {
		return err
	}

	s.cameraBGP = bind_group_provider.NewBindGroupProvider("camera")
	if err := s.r.InitBindGroup(s.cameraBGP, ModelPipelineKey, cameraGroup); err != nil {
		return err
	}
	s.lightBGP = bind_group_provider.NewBindGroupProvider("light")
	if err := s.r.InitBindGroup(s.lightBGP, ModelPipelineKey, lightGroup); err != nil {
		return err
	}
	return nil
}

// initInstances uploads the instance grid shared by every model.
func (s *scene) initInstances() error {
	s.instances = model.NewInstanceGrid(s.instancesPerRow)
	s.instancesBGP = bind_group_provider.NewBindGroupProvider("instances")
	if err := s.r.InitInstanceBuffer(s.instancesBGP, model.MarshalInstances(s.instances), len(s.instances)); err != nil {
		return fmt.Errorf("failed to upload instances: %w", err)
	}
	return nil
}

// findGroup returns the bind group index whose variables include one named like needle.
func findGroup(p pipeline.Pipeline, needle string) (int, error) {
	if p == nil {
		return 0, errors.New("scene: model pipeline is not registered")
	}
	vs := p.Shader(shader.ShaderTypeVertex)
	for group, desc := range p.BindGroupLayoutDescriptors() {
		for _, entry := range desc.Entries {
			if strings.Contains(strings.ToLower(vs.BindGroupVarName(group, int(entry.Binding))), needle) {
				return group, nil
			}
		}
	}
	return 0, fmt.Errorf("scene: pipeline %q declares no %s binding", p.PipelineKey(), needle)
}

func (s *scene) Models() []model.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Model(nil), s.models...)
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cam
}

func (s *scene) Projection() camera.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projection
}

func (s *scene) Controller() camera.CameraController {
	return s.controller
}

func (s *scene) Light() light.Light {
	return s.lgt
}

func (s *scene) InstanceCount() int {
	return len(s.instances)
}

func (s *scene) UpdateCameraUniform() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeUniforms()
}

func (s *scene) Update(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam = s.controller.UpdateCamera(s.cam, dt)
	s.lgt.Update(dt)
	s.writeUniforms()
}

// writeUniforms uploads the camera and light uniforms. Callers hold s.mu.
func (s *scene) writeUniforms() {
	cameraUniform := camera.NewCameraUniform(s.cam, s.projection)
	lightUniform := s.lgt.Uniform()

	s.writePool = append(s.writePool[:0],
		bind_group_provider.BufferWrite{Provider: s.cameraBGP, Binding: 0, Data: cameraUniform.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightBGP, Binding: 0, Data: lightUniform.Marshal()},
	)
	s.r.WriteBuffers(s.writePool)
}

func (s *scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.r.BeginFrame(); err != nil {
		return err
	}

	drawErr := s.drawCalls()

	// The frame is submitted even after a failed draw so the surface texture is returned.
	if err := s.r.EndFrame(); err != nil {
		return errors.Join(drawErr, err)
	}
	s.r.Present()
	return drawErr
}

// drawCalls issues one instanced draw per mesh, then the light marker. Callers hold s.mu.
func (s *scene) drawCalls() error {
	instanceCount := uint32(len(s.instances))
	for _, mdl := range s.models {
		for _, m := range mdl.Meshes() {
			if m.TriangleCount() == 0 {
				continue
			}
			if err := s.r.DrawCall(ModelPipelineKey, m.Provider(), s.instancesBGP, instanceCount, s.drawBindGroups); err != nil {
				return fmt.Errorf("draw call failed for %s/%s: %w", mdl.Name(), m.Name(), err)
			}
		}
	}

	for _, m := range s.lightMarker.Meshes() {
		if err := s.r.DrawCall(LightPipelineKey, m.Provider(), nil, 1, s.drawBindGroups); err != nil {
			return fmt.Errorf("draw call failed for light marker: %w", err)
		}
	}
	return nil
}

func (s *scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := s.r.Resize(width, height); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projection.Resize(width, height)
	s.writeUniforms()
	return nil
}

func (s *scene) HandleKey(keyCode int, pressed bool) bool {
	return s.controller.ProcessKeyboard(keyCode, pressed)
}

func (s *scene) HandleMouseDrag(dx, dy float64) {
	s.controller.ProcessMouse(dx, dy)
}

func (s *scene) HandleScroll(delta float64) {
	s.controller.ProcessScroll(delta)
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.released = true

	for _, mdl := range s.models {
		mdl.Release()
	}
	if s.lightMarker != nil {
		s.lightMarker.Release()
	}
	for _, bgp := range []bind_group_provider.BindGroupProvider{s.cameraBGP, s.lightBGP, s.instancesBGP} {
		if bgp != nil {
			bgp.Release()
		}
	}
}

// triangleCount sums the triangles of every model.
func (s *scene) triangleCount() int {
	n := 0
	for _, mdl := range s.models {
		n += mdl.TriangleCount()
	}
	return n
}
