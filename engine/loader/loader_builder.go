package loader

import (
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithUploader is an option builder that sets the receiver of loaded mesh buffers.
// Usually this is the Renderer.
//
// Parameters:
//   - u: the mesh uploader
//
// Returns:
//   - LoaderBuilderOption: a function that applies the uploader option to a loader
func WithUploader(u mesh.Uploader) LoaderBuilderOption {
	return func(l *loader) {
		l.uploader = u
	}
}

// WithColor sets the vertex color of loaded meshes.
func WithColor(color mgl32.Vec4) LoaderBuilderOption {
	return func(l *loader) {
		l.color = color
	}
}

// WithWorkers sets the maximum number of concurrent vertex extraction workers.
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
