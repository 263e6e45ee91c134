package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// depthFormat is shared by the depth target and every pipeline's depth-stencil state.
const depthFormat = wgpu.TextureFormatDepth24Plus

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	limits := wgpu.DefaultLimits()
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		tex, view, err := b.createTarget("MSAA Texture", size, count, *b.surfaceFormat)
		if err != nil {
			return err
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	tex, view, err := b.createTarget("Depth Texture", size, count, depthFormat)
	if err != nil {
		return err
	}
	b.depthTexture, b.depthTextureView = tex, view

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
				ClearValue: wgpu.Color{
					R: 0.1, G: 0.2, B: 0.3, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) createTarget(label string, size wgpu.Extent3D, sampleCount uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("failed to create %s view: %w", label, err)
	}
	return tex, view, nil
}

// releaseTargets frees the size-dependent render targets. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	vs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: vertexShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: vertexShader.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", vertexShader.Key(), err)
	}
	fs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fragmentShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: fragmentShader.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", fragmentShader.Key(), err)
	}

	merged := p.BindGroupLayoutDescriptors()
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, len(merged))
	for g := range bindGroupLayouts {
		desc, ok := merged[g]
		if !ok {
			return fmt.Errorf("pipeline %s skips bind group %d", p.PipelineKey(), g)
		}
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}

	colorTarget := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		colorTarget.Blend = p.BlendState()
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{colorTarget},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) createFilledBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.createFilledBuffer(provider.Label()+" Vertex Buffer", wgpu.BufferUsageVertex, vertexData)
		if err != nil {
			return err
		}
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := b.createFilledBuffer(provider.Label()+" Index Buffer", wgpu.BufferUsageIndex, indexData)
		if err != nil {
			return err
		}
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(instanceData) == 0 {
		return errors.New("instance buffer must not be empty")
	}
	buf, err := b.createFilledBuffer(provider.Label()+" Instance Buffer", wgpu.BufferUsageVertex, instanceData)
	if err != nil {
		return err
	}
	provider.SetVertexBuffer(buf)
	provider.SetInstanceCount(instanceCount)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		var err error
		layout, err = b.device.CreateBindGroupLayout(&descriptor)
		if err != nil {
			return err
		}
		provider.SetBindGroupLayout(layout)
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		usage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
		if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
			usage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
		}

		buf := provider.Buffer(binding)
		if buf == nil {
			var err error
			buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: provider.Label() + " Buffer",
				Size:  entry.Buffer.MinBindingSize,
				Usage: usage,
			})
			if err != nil {
				return err
			}
			provider.SetBuffer(binding, buf)
		}
		entries[i] = wgpu.BindGroupEntry{
			Binding: entry.Binding,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return ErrFrameInProgress
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(
	p pipeline.Pipeline,
	meshProvider, instanceProvider bind_group_provider.BindGroupProvider,
	instanceCount uint32,
	bindGroups []bind_group_provider.BindGroupProvider,
) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || meshProvider.VertexBuffer() == nil || meshProvider.IndexCount() == 0 {
		return
	}

	b.framePass.SetPipeline(p.RenderPipeline())
	for i, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	if instanceProvider != nil && instanceProvider.VertexBuffer() != nil {
		b.framePass.SetVertexBuffer(1, instanceProvider.VertexBuffer(), 0, wgpu.WholeSize)
	}
	b.framePass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(meshProvider.IndexCount()), instanceCount, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return fmt.Errorf("failed to finish frame: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

// releaseFrameSurface drops the swapchain texture held for the current frame. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	b.releaseTargets()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
