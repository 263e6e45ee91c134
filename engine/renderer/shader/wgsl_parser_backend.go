package shader

import (
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslPrimitiveLayoutMap maps WGSL scalar, vector and matrix type names to their byte size
// and alignment.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32":  {4, 4},
	"i32":  {4, 4},
	"u32":  {4, 4},
	"bool": {4, 4},

	"vec2<f32>": {8, 8},
	"vec2f":     {8, 8},
	"vec3<f32>": {12, 16},
	"vec3f":     {12, 16},
	"vec4<f32>": {16, 16},
	"vec4f":     {16, 16},
	"vec4<u32>": {16, 16},
	"vec4u":     {16, 16},

	"mat3x3<f32>": {48, 16},
	"mat3x3f":     {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

// roundUpAlign rounds value up to the next multiple of alignment, which must be a power of two.
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves a WGSL type name to its size and alignment using primitives
// and previously computed struct layouts. Fixed-size arrays are supported; runtime-sized
// arrays resolve to one element stride.
//
// Parameters:
//   - typeName: the WGSL type name to resolve, e.g. "f32", "CameraUniform", "array<vec4f, 4>"
//   - knownTypes: a map of already-resolved type names to their layouts
//
// Returns:
//   - wgslTypeLayout: the resolved layout
//   - bool: false for unknown types
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if layout, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return layout, true
	}
	if layout, ok := knownTypes[typeName]; ok {
		return layout, true
	}

	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return wgslTypeLayout{}, false
	}
	elemType, countStr, fixed := strings.Cut(strings.TrimSuffix(inner, ">"), ",")
	elem, ok := resolveTypeLayout(strings.TrimSpace(elemType), knownTypes)
	if !ok {
		return wgslTypeLayout{}, false
	}
	stride := roundUpAlign(elem.align, elem.size)
	if !fixed {
		return wgslTypeLayout{stride, elem.align}, true
	}
	count, err := strconv.ParseUint(strings.TrimSpace(countStr), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{count * stride, elem.align}, true
}

// computeStructLayout places each non-builtin field at its next aligned offset and rounds the
// total up to the struct's largest alignment.
//
// Returns:
//   - wgslTypeLayout: the computed layout
//   - bool: true if all fields could be resolved
func computeStructLayout(ps parsedStruct, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	offset := uint64(0)
	maxAlign := uint64(1)

	for _, field := range ps.fields {
		if field.isBuiltin {
			continue
		}
		fieldLayout, ok := resolveTypeLayout(field.typeName, knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = roundUpAlign(fieldLayout.align, offset) + fieldLayout.size
		maxAlign = max(maxAlign, fieldLayout.align)
	}

	return wgslTypeLayout{roundUpAlign(maxAlign, offset), maxAlign}, true
}

// computeStructSizes resolves the layout of every parsed struct, iterating until structs that
// embed other structs have all been resolved or no further progress can be made.
func computeStructSizes(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	remaining := append([]parsedStruct(nil), structs...)

	for len(remaining) > 0 {
		next := remaining[:0]
		for _, ps := range remaining {
			if layout, ok := computeStructLayout(ps, resolved); ok {
				resolved[ps.name] = layout
			} else {
				next = append(next, ps)
			}
		}
		if len(next) == len(remaining) {
			break
		}
		remaining = next
	}

	return resolved
}

// classifyResource builds a buffer layout entry from a var declaration's address space.
// Handle types (textures, samplers) are not used by the viewer and are reported as unsupported.
//
// Parameters:
//   - binding: the binding index from @binding(N)
//   - visibility: the shader stage visibility flag
//   - addressSpace: the address space qualifier, e.g. "uniform" or "storage, read"
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated layout entry
//   - bool: false if the declaration is not a buffer
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace string) (wgpu.BindGroupLayoutEntry, bool) {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(addressSpace, "storage") && strings.Contains(addressSpace, "read_write"):
		entry.Buffer.Type = wgpu.BufferBindingTypeStorage
	case strings.HasPrefix(addressSpace, "storage"):
		entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
	default:
		return entry, false
	}
	return entry, true
}

// stripComments removes both single-line (//) and block (/* */) comments from WGSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from WGSL source.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments from WGSL source. Block comments may nest.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch source[i : i+2] {
			case "/*":
				depth++
				i++
				continue
			case "*/":
				if depth > 0 {
					depth--
				}
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

// isVertexInputStruct reports whether the struct has at least one @location field and no
// @builtin fields, which separates vertex inputs from vertex outputs.
func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

// buildVertexBufferLayout converts a parsed vertex input struct into a tightly packed
// wgpu.VertexBufferLayout. Returns false if a field type has no vertex format.
func buildVertexBufferLayout(ps parsedStruct, stepMode wgpu.VertexStepMode) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
	var offset uint64

	for _, f := range ps.fields {
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    stepMode,
		Attributes:  attrs,
	}, true
}

// splitAtTopLevelCommas splits a struct body at commas outside angle brackets so that
// parameterized types like array<T, N> stay intact.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
