// Package renderertest provides a GPU-free RendererBackend for tests.
package renderertest

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Draw records a single DrawCall.
type Draw struct {
	PipelineKey   string
	Mesh          bind_group_provider.BindGroupProvider
	Instances     bind_group_provider.BindGroupProvider
	InstanceCount uint32
	BindGroups    int
}

// Surface is a SurfaceSource of a fixed size with no platform surface.
type Surface struct {
	W, H int
}

func (s Surface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (s Surface) Width() int                                 { return s.W }
func (s Surface) Height() int                                { return s.H }

// Backend records every call made to it. BeginFrameErr, when set, is returned by BeginFrame
// until cleared.
type Backend struct {
	mu sync.Mutex

	BeginFrameErr error

	Configured    [][2]int
	Pipelines     []string
	MeshUploads   int
	InstanceBytes []byte
	BindGroups    []string
	Writes        []bind_group_provider.BufferWrite
	Frames        int
	Draws         []Draw
	Ended         int
	Presented     int
	Released      bool
}

var _ renderer.RendererBackend = &Backend{}

func (b *Backend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Configured = append(b.Configured, [2]int{width, height})
	return nil
}

func (b *Backend) SetPresentMode(renderer.PresentMode) {}

func (b *Backend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Pipelines = append(b.Pipelines, p.PipelineKey())
	return nil
}

func (b *Backend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.MeshUploads++
	provider.SetIndexCount(indexCount)
	return nil
}

func (b *Backend) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.InstanceBytes = append([]byte(nil), instanceData...)
	provider.SetInstanceCount(instanceCount)
	return nil
}

func (b *Backend) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.BindGroups = append(b.BindGroups, provider.Label())
	return nil
}

func (b *Backend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Writes = append(b.Writes, writes...)
}

func (b *Backend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.BeginFrameErr != nil {
		return b.BeginFrameErr
	}
	b.Frames++
	return nil
}

func (b *Backend) DrawCall(p pipeline.Pipeline, meshProvider, instanceProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Draws = append(b.Draws, Draw{
		PipelineKey:   p.PipelineKey(),
		Mesh:          meshProvider,
		Instances:     instanceProvider,
		InstanceCount: instanceCount,
		BindGroups:    len(bindGroups),
	})
}

func (b *Backend) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Ended++
	return nil
}

func (b *Backend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Presented++
}

func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Released = true
}

// SetBeginFrameErr changes the error returned by BeginFrame.
func (b *Backend) SetBeginFrameErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.BeginFrameErr = err
}
