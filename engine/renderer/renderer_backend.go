package renderer

import (
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU-facing half of the Renderer. Everything the viewer does to the GPU
// goes through it, which keeps scene orchestration testable with a mock backend.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and recreates the depth and MSAA targets.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if a render target could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader modules, pipeline layout and render pipeline
	// described by p and stores the GPU object back on p.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data and stores the buffers on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw uint32 index bytes
	//   - indexCount: the number of indices represented in indexData
	//
	// Returns:
	//   - error: an error if the buffers could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer uploads per-instance data as a vertex buffer stored on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the instance buffer on
	//   - instanceData: the raw instance bytes
	//   - instanceCount: the number of instances represented in instanceData
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error

	// InitBindGroup creates the uniform buffers and bind group described by descriptor and
	// stores them on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider receiving the GPU objects
	//   - descriptor: the merged layout descriptor of the group the provider binds to
	//
	// Returns:
	//   - error: an error if the bind group could not be initialized
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: the buffer writes to apply in order
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture and begins the main render pass, which
	// clears color and depth.
	//
	// Returns:
	//   - error: the raw surface error if the texture could not be acquired
	BeginFrame() error

	// DrawCall encodes one indexed, instanced draw within the current render pass.
	//
	// Parameters:
	//   - p: the registered pipeline to draw with
	//   - meshProvider: the provider holding vertex and index buffers
	//   - instanceProvider: the provider holding the instance buffer, or nil for pipelines without one
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: the providers bound to groups 0..n-1 in order
	DrawCall(p pipeline.Pipeline, meshProvider, instanceProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the render pass and submits the command buffer to the GPU.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees the device, surface and render targets.
	Release()
}
