package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/config"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	uploads int
}

func (u *recordingUploader) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	u.uploads++
	provider.SetIndexCount(indexCount)
	return nil
}

// isolate keeps config discovery away from the developer's own files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func execute(t *testing.T, args ...string) (*config.Config, selection, error) {
	t.Helper()
	var gotCfg *config.Config
	var gotSel selection
	cmd := newRootCommand(func(cfg *config.Config, sel selection) error {
		gotCfg, gotSel = cfg, sel
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return gotCfg, gotSel, err
}

func TestCubeWithSize(t *testing.T) {
	isolate(t)
	cfg, sel, err := execute(t, "--cube", "--size", "2.0")
	require.NoError(t, err)
	assert.Equal(t, selection{Cube: true}, sel)
	assert.Equal(t, float32(2), cfg.Scene.Size)

	up := &recordingUploader{}
	models, err := buildModels(cfg, sel, up, nil)
	require.NoError(t, err)
	require.Len(t, models, 1)
	require.Len(t, models[0].Meshes(), 1)
	assert.Equal(t, 12, models[0].TriangleCount())
	assert.Equal(t, 1, up.uploads)

	lo := mgl32.Vec3{1, 1, 1}
	hi := mgl32.Vec3{-1, -1, -1}
	for _, v := range models[0].Meshes()[0].Vertices() {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, hi)
}

func TestNoSelectionShowsCube(t *testing.T) {
	isolate(t)
	cfg, sel, err := execute(t)
	require.NoError(t, err)
	assert.True(t, sel.Cube)
	assert.Equal(t, config.Default(), cfg)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene:\n  count: 3\n  max: 2\n  size: 4\n"), 0644))

	cfg, sel, err := execute(t, "--config", path, "--surface", "--count", "5", "--seed", "7", "--instances", "2")
	require.NoError(t, err)
	assert.True(t, sel.Surface)
	assert.Equal(t, 5, cfg.Scene.Count, "flag wins over file")
	assert.Equal(t, float32(2), cfg.Scene.Max, "file wins over default")
	assert.Equal(t, float32(4), cfg.Scene.Size)
	assert.Equal(t, uint64(7), cfg.Scene.Seed)
	assert.Equal(t, 2, cfg.Scene.PerRow)
}

func TestWriteConfig(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "out", "oxy-view.yaml")

	_, _, err := execute(t, "--write-config", out, "--width", "3", "--log-level", "debug")
	require.NoError(t, err)

	saved, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, float32(3), saved.Scene.Width)
	assert.Equal(t, "debug", saved.Logging.Level)
}

func TestRejectsArguments(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "model.obj")
	assert.Error(t, err)
}

func TestBuildModelsOrder(t *testing.T) {
	dir := isolate(t)
	objPath := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(objPath, []byte("o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644))

	cfg := config.Default()
	cfg.Scene.Count = 2
	cfg.Scene.Seed = 1
	sel := selection{Cube: true, Plane: true, House: true, Surface: true, File: true}

	prompted := 0
	prompt := func() (string, error) {
		prompted++
		return objPath, nil
	}
	models, err := buildModels(cfg, sel, &recordingUploader{}, prompt)
	require.NoError(t, err)
	assert.Equal(t, 1, prompted)

	var names []string
	for _, m := range models {
		names = append(names, m.Name())
	}
	require.Len(t, names, 5)
	assert.Equal(t, "tri", names[1])
	assert.Equal(t, 8, models[4].TriangleCount())
}

func TestBuildModelsPathSkipsPrompt(t *testing.T) {
	dir := isolate(t)
	objPath := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(objPath, []byte("o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644))

	prompt := func() (string, error) {
		t.Fatal("prompt should not run when a path is given")
		return "", nil
	}
	models, err := buildModels(config.Default(), selection{Path: objPath}, &recordingUploader{}, prompt)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, 1, models[0].TriangleCount())
}

func TestBuildModelsStopsOnError(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Scene.Height = -1

	_, err := buildModels(cfg, selection{Cube: true, House: true}, &recordingUploader{}, nil)
	assert.Error(t, err)

	_, err = buildModels(cfg, selection{File: true}, &recordingUploader{}, func() (string, error) {
		return "", errNoPath
	})
	assert.True(t, errors.Is(err, errNoPath))
}
