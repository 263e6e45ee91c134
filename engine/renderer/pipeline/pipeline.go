package pipeline

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is set by the renderer once the GPU object exists
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a render pipeline: a vertex and fragment shader pair plus the fixed-function
// state used when the renderer creates the GPU object.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader for the given stage, nil if not set.
	//
	// Parameters:
	//   - shaderType: the stage to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for that stage, or nil
	Shader(shaderType shader.ShaderType) shader.Shader

	// BindGroupLayoutDescriptors merges the bind group layouts of the vertex and fragment shaders.
	// Bindings declared by both stages have their visibility ORed together.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// RenderPipeline returns the GPU pipeline object, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the GPU pipeline object created by the renderer.
	SetRenderPipeline(p *wgpu.RenderPipeline)

	DepthTestEnabled() bool
	DepthWriteEnabled() bool
	BlendEnabled() bool
	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace
	WriteMask() wgpu.ColorWriteMask
	BlendState() *wgpu.BlendState
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render Pipeline. Defaults are depth test and write on, back-face
// culling with counter-clockwise front faces, triangle lists and no blending.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	var vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor
	if p.vertexShader != nil {
		vertexLayouts = p.vertexShader.BindGroupLayoutDescriptors()
	}
	if p.fragmentShader != nil {
		fragmentLayouts = p.fragmentShader.BindGroupLayoutDescriptors()
	}
	return mergeBindGroupLayouts(vertexLayouts, fragmentLayouts)
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

// mergeBindGroupLayouts merges the bind group layout descriptors of a vertex and fragment shader.
//
// For each group index present in either shader:
//   - Entries with the same binding number have their Visibility flags ORed together
//   - Entries unique to one shader keep their original visibility
//
// Parameters:
//   - vertexLayouts: bind group layout descriptors from the vertex shader
//   - fragmentLayouts: bind group layout descriptors from the fragment shader
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
func mergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)

	for _, layouts := range []map[int]wgpu.BindGroupLayoutDescriptor{vertexLayouts, fragmentLayouts} {
		for g, desc := range layouts {
			existing, ok := merged[g]
			if !ok {
				merged[g] = wgpu.BindGroupLayoutDescriptor{
					Label:   desc.Label,
					Entries: append([]wgpu.BindGroupLayoutEntry(nil), desc.Entries...),
				}
				continue
			}

			byBinding := make(map[uint32]int, len(existing.Entries))
			for i, e := range existing.Entries {
				byBinding[e.Binding] = i
			}
			for _, e := range desc.Entries {
				if i, ok := byBinding[e.Binding]; ok {
					existing.Entries[i].Visibility |= e.Visibility
					continue
				}
				existing.Entries = append(existing.Entries, e)
			}
			sort.Slice(existing.Entries, func(i, j int) bool {
				return existing.Entries[i].Binding < existing.Entries[j].Binding
			})
			merged[g] = existing
		}
	}

	return merged
}
