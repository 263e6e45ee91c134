package shader

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which pipeline stage a shader entry point feeds.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the WGSL attribute name of the stage.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and bind group wiring.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
}

// Shader defines the interface for a parsed WGSL shader stage. It exposes the stage's key,
// source, entry point, bind group layout descriptors and, for vertex stages, the vertex
// buffer layouts in declaration order. A single WGSL module may back both a vertex and a
// fragment Shader; each one parses only what its stage needs.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the pipeline stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	// Every entry carries this shader's stage as its visibility.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name for a given group and binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not declared
	BindGroupVarName(group, binding int) string

	// VertexLayouts retrieves the vertex buffer layouts in slot order. Per-vertex structs
	// come first in source order, per-instance structs (named Instance*) use the instance step mode.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts indexed by vertex buffer slot
	VertexLayouts() []wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

// NewShader parses WGSL source for the given stage. An empty source or a source without an
// entry point for the stage is a programming error and panics.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage this shader feeds
//   - source: the WGSL source code, usually embedded with go:embed
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key string, shaderType ShaderType, source string) Shader {
	if strings.TrimSpace(source) == "" {
		panic(fmt.Sprintf("shader: %s has no source", key))
	}
	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
	}
	s.entryPoint = parseEntryPoint(source, shaderType)
	if s.entryPoint == "" {
		panic(fmt.Sprintf("shader: %s has no @%s entry point", key, shaderType))
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(source)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(source, visibility)
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}
