package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is anything that can hand the renderer a platform surface and its size in pixels.
// The GLFW window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	width, height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	msaa                 MSAASampleCount
}

// Renderer is the high-level rendering API used by the scene. It caches registered pipelines,
// forwards GPU uploads to the backend, and classifies frame acquisition errors into
// ErrSurfaceLost and ErrSurfaceOutOfMemory.
type Renderer interface {
	// Pipeline retrieves the registered Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for one or more pipelines and caches them by
	// PipelineKey. Keys that are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface, depth and MSAA targets for a new size.
	// A zero width or height is ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the render targets could not be recreated
	Resize(width, height int) error

	// Size returns the currently configured surface size in pixels.
	Size() (width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface.
	SetPresentMode(mode PresentMode) error

	// InitMeshBuffers uploads the vertex and index data of one mesh.
	//
	// Parameters:
	//   - provider: the provider that will own the buffers
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if the upload failed
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer uploads the per-instance transforms shared by every model.
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error

	// InitBindGroup creates the bind group for a provider from the layout the given pipeline
	// declares at the given group index.
	//
	// Parameters:
	//   - provider: the provider that will own the bind group
	//   - pipelineKey: the registered pipeline whose layout is used
	//   - group: the bind group index
	//
	// Returns:
	//   - error: an error if the pipeline or group is unknown or the GPU objects could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error

	// WriteBuffers writes staged buffer data to the GPU.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next frame and begins the render pass.
	//
	// Returns:
	//   - error: ErrSurfaceLost or ErrSurfaceOutOfMemory (wrapped), ErrFrameInProgress, or any other acquisition error
	BeginFrame() error

	// DrawCall draws one mesh with the pipeline registered under pipelineKey.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline to draw with
	//   - meshProvider: the provider holding the mesh buffers
	//   - instanceProvider: the provider holding the instance buffer, or nil
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: the providers bound to groups 0..n-1
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	DrawCall(pipelineKey string, meshProvider, instanceProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame submits the recorded commands.
	EndFrame() error

	// Present displays the frame.
	Present()

	// Release frees all GPU resources owned by the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given surface and configures the surface at its
// current size.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the window, or any other SurfaceSource, to render into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured Renderer
//   - error: an error if the GPU adapter, device or surface could not be set up
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		msaa:          MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
			if err != nil {
				return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
			}
			r.backend = backend
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if err := r.Resize(surface.Width(), surface.Height()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface at %dx%d: %w", width, height, err)
	}

	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	return nil
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.backend.SetPresentMode(mode)
	width, height := r.Size()
	return r.Resize(width, height)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error {
	return r.backend.InitInstanceBuffer(provider, instanceData, instanceCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	descriptor, ok := p.BindGroupLayoutDescriptors()[group]
	if !ok {
		return fmt.Errorf("render pipeline %q declares no bind group %d", pipelineKey, group)
	}
	if err := r.backend.InitBindGroup(provider, descriptor); err != nil {
		return fmt.Errorf("failed to init bind group %d for %s: %w", group, provider.Label(), err)
	}
	return nil
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return classifySurfaceError(r.backend.BeginFrame())
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider, instanceProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, instanceProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
}
