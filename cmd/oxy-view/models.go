package main

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/engine/config"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/sqweek/dialog"
)

// errNoPath is returned when the file prompt is cancelled.
var errNoPath = errors.New("no model file selected")

// selection records which generators the command line asked for.
type selection struct {
	Cube    bool
	Plane   bool
	House   bool
	Surface bool
	File    bool
	Path    string
}

// empty reports whether no generator was selected.
func (s selection) empty() bool {
	return !s.Cube && !s.Plane && !s.House && !s.Surface && !s.File && s.Path == ""
}

// pathPrompt asks the user for a model file.
type pathPrompt func() (string, error)

// dialogPrompt opens the native file dialog filtered to Wavefront OBJ files.
func dialogPrompt() (string, error) {
	path, err := dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Open model").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", errNoPath
	}
	if err != nil {
		return "", fmt.Errorf("file dialog failed: %w", err)
	}
	return path, nil
}

// buildModels runs the selected generators in a fixed order: cube, file, house, plane, surface.
// Models built before a failure are released.
//
// Parameters:
//   - cfg: the effective configuration supplying generator sizes
//   - sel: the selected generators
//   - uploader: receives the mesh buffers
//   - prompt: asked for a path when a file is selected without one
//
// Returns:
//   - []model.Model: the models in draw order
//   - error: the first generator or load error
func buildModels(cfg *config.Config, sel selection, uploader mesh.Uploader, prompt pathPrompt) ([]model.Model, error) {
	sc := cfg.Scene
	var models []model.Model
	fail := func(err error) ([]model.Model, error) {
		for _, m := range models {
			m.Release()
		}
		return nil, err
	}

	if sel.Cube {
		m, err := model.Cube(uploader, sc.Size)
		if err != nil {
			return fail(err)
		}
		models = append(models, m)
	}

	if sel.File || sel.Path != "" {
		path := sel.Path
		if path == "" {
			path = sc.OBJPath
		}
		if path == "" {
			p, err := prompt()
			if err != nil {
				return fail(err)
			}
			path = p
		}
		l := loader.NewLoader(loader.BackendTypeOBJ,
			loader.WithUploader(uploader),
			loader.WithWorkers(cfg.Loader.Workers),
		)
		m, err := l.Load(path)
		l.Close()
		if err != nil {
			return fail(err)
		}
		models = append(models, m)
	}

	if sel.House {
		m, err := model.House(uploader, sc.Width, sc.Length, sc.Height)
		if err != nil {
			return fail(err)
		}
		models = append(models, m)
	}

	if sel.Plane {
		m, err := model.Plane(uploader, sc.Size)
		if err != nil {
			return fail(err)
		}
		models = append(models, m)
	}

	if sel.Surface {
		var opts []model.GeneratorOption
		if sc.Seed != 0 {
			opts = append(opts, model.WithSeed(sc.Seed))
		}
		m, err := model.Surface(uploader, sc.Count, sc.Size, sc.Max, opts...)
		if err != nil {
			return fail(err)
		}
		models = append(models, m)
	}

	return models, nil
}
