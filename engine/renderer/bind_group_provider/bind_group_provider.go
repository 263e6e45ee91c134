package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer during initialization, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider, or nil if not initialized with the Renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the GPU buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// vertexBuffer holds per-vertex data for meshes, or per-instance data for instance providers.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer created for this provider, or nil if not initialized with the Renderer.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices for draw calls.
	indexCount int
	// instanceCount is the number of instances stored in vertexBuffer when the provider backs an instance stream.
	instanceCount int
}

// BindGroupProvider describes the GPU resources owned by one drawable or uniform source.
// Meshes hold one for their vertex and index buffers, the instance set holds one for its
// per-instance vertex stream, and the camera and light each hold one for their uniform
// bind group. The Renderer creates the GPU objects and stores them back on the provider.
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout for this provider.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform or storage buffer at the given binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	IndexCount() int

	// InstanceCount returns the number of instances held in the vertex buffer of an instance provider.
	InstanceCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
	SetInstanceCount(count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label used for every GPU object created on behalf of this provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) InstanceCount() int {
	return p.instanceCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) SetInstanceCount(count int) {
	p.instanceCount = count
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
	p.instanceCount = 0
}
