package model

import (
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshes is an option builder that appends meshes to the Model in draw order.
//
// Parameters:
//   - meshes: the meshes to append
//
// Returns:
//   - ModelBuilderOption: a function that applies the meshes option to a model
func WithMeshes(meshes ...mesh.Mesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = append(m.meshes, meshes...)
	}
}

// GeneratorOption configures a primitive generator.
type GeneratorOption func(*generatorConfig)

type generatorConfig struct {
	color   mgl32.Vec4
	seed    uint64
	seedSet bool
}

func newGeneratorConfig(options []GeneratorOption) *generatorConfig {
	cfg := &generatorConfig{color: mesh.ModelColor}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// WithColor overrides the vertex color of a generated model.
//
// Parameters:
//   - color: the RGBA vertex color
//
// Returns:
//   - GeneratorOption: a function that applies the color to the generator
func WithColor(color mgl32.Vec4) GeneratorOption {
	return func(c *generatorConfig) {
		c.color = color
	}
}

// WithSeed fixes the random seed used by Surface so the same inputs always produce the same
// heights. Without it every call draws a fresh seed.
//
// Parameters:
//   - seed: the PCG seed
//
// Returns:
//   - GeneratorOption: a function that applies the seed to the generator
func WithSeed(seed uint64) GeneratorOption {
	return func(c *generatorConfig) {
		c.seed = seed
		c.seedSet = true
	}
}
