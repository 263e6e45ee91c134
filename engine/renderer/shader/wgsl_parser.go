package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// instanceStructPrefix marks vertex input structs that advance once per instance instead of once per vertex.
const instanceStructPrefix = "Instance"

// wgslVertexFormatMap maps WGSL type names to their corresponding wgpu vertex format and byte size
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec2u":     {wgpu.VertexFormatUint32x2, 8},
	"vec2<u32>": {wgpu.VertexFormatUint32x2, 8},
	"vec4u":     {wgpu.VertexFormatUint32x4, 16},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
	"vec4i":     {wgpu.VertexFormatSint32x4, 16},
	"vec4<i32>": {wgpu.VertexFormatSint32x4, 16},
}

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	entryRegexes = map[ShaderType]*regexp.Regexp{
		ShaderTypeVertex:   regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`),
		ShaderTypeFragment: regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`),
	}

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> camera: CameraUniform;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseVertexLayouts extracts vertex buffer layouts from WGSL source code in declaration order.
// Pure input structs (@location fields and no @builtin) become one layout each. Structs whose
// name starts with "Instance" step per instance. Structs with unrecognized field types are skipped.
//
// Parameters:
//   - source: the raw WGSL source code string
//
// Returns:
//   - []wgpu.VertexBufferLayout: the layouts indexed by vertex buffer slot
func parseVertexLayouts(source string) []wgpu.VertexBufferLayout {
	structs := parseStructBlocks(stripComments(source))

	layouts := make([]wgpu.VertexBufferLayout, 0, len(structs))
	for _, ps := range structs {
		if !isVertexInputStruct(ps) {
			continue
		}
		stepMode := wgpu.VertexStepModeVertex
		if strings.HasPrefix(ps.name, instanceStructPrefix) {
			stepMode = wgpu.VertexStepModeInstance
		}
		layout, ok := buildVertexBufferLayout(ps, stepMode)
		if !ok {
			continue
		}
		layouts = append(layouts, layout)
	}

	return layouts
}

// parseBindGroupLayouts extracts all @group(N) @binding(M) buffer declarations from WGSL
// source and returns them as wgpu.BindGroupLayoutDescriptor values grouped by group index.
// Entries are sorted by binding index and carry the given visibility. Buffer entries get
// their MinBindingSize from the bound struct's WGSL layout.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - visibility: the shader stage visibility flag to set on each entry
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding index
func parseBindGroupLayouts(source string, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	varNames := make(map[int]map[int]string)
	cleaned := stripComments(source)

	structSizes := computeStructSizes(parseStructBlocks(cleaned))

	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		addressSpace := strings.TrimSpace(match[3])
		varName := strings.TrimSpace(match[4])
		typeName := strings.TrimSpace(match[5])

		entry, ok := classifyResource(uint32(binding), visibility, addressSpace)
		if !ok {
			continue
		}
		if layout, ok := resolveTypeLayout(typeName, structSizes); ok && layout.size > 0 {
			entry.Buffer.MinBindingSize = layout.size
		}

		groups[group] = append(groups[group], entry)
		if varNames[group] == nil {
			varNames[group] = make(map[int]string)
		}
		varNames[group][binding] = varName
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{
			Label:   "group " + strconv.Itoa(g),
			Entries: entries,
		}
	}

	return result, varNames
}

// parseEntryPoint extracts the entry point function name for the given stage.
// Returns an empty string if the source has no entry point for that stage.
func parseEntryPoint(source string, shaderType ShaderType) string {
	re, ok := entryRegexes[shaderType]
	if !ok {
		return ""
	}
	if match := re.FindStringSubmatch(stripComments(source)); match != nil {
		return match[1]
	}
	return ""
}

// parseStructBlocks finds all struct { ... } blocks in comment-free WGSL source
// and parses their fields including @location and @builtin attributes.
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}

	return structs
}

// parseStructFields parses the body of a struct block into individual fields.
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field := parsedField{location: -1}
		field.isBuiltin = builtinRegex.MatchString(line)
		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			if loc, err := strconv.Atoi(locMatch[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])

		fields = append(fields, field)
	}

	return fields
}
