package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeWindow runs the update callback up to maxFrames times, calling beforeFrame first.
type fakeWindow struct {
	width, height int
	maxFrames     int
	beforeFrame   func(i int)

	closeRequested bool
	closed         bool

	onUpdate func()
	onResize func(int, int)
	onScroll func(float64)
	onKey    func(int, bool)
	onDrag   func(float64, float64)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func()) { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(int, int)) { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(float64)) { w.onScroll = cb }
func (w *fakeWindow) SetKeyCallback(cb func(int, bool)) { w.onKey = cb }
func (w *fakeWindow) SetMouseDragCallback(cb func(float64, float64)) { w.onDrag = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool { return !w.closeRequested && !w.closed }
func (w *fakeWindow) RequestClose() { w.closeRequested = true }
func (w *fakeWindow) Width() int { return w.width }
func (w *fakeWindow) Height() int { return w.height }
func (w *fakeWindow) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.maxFrames && w.IsRunning(); i++ {
		if w.beforeFrame != nil {
			w.beforeFrame(i)
		}
		w.onUpdate()
	}
}

type harness struct {
	backend *renderertest.Backend
	window  *fakeWindow
	scene   scene.Scene
	engine  Engine
	logs    *observer.ObservedLogs
}

func newHarness(t *testing.T, frames int) *harness {
	t.Helper()
	backend := &renderertest.Backend{}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, renderertest.Surface{W: 800, H: 600}, renderer.WithBackend(backend))
	require.NoError(t, err)

	cube, err := model.Cube(r, 2)
	require.NoError(t, err)
	s, err := scene.NewScene(r, scene.WithModels(cube))
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	w := &fakeWindow{width: 800, height: 600, maxFrames: frames}
	e, err := NewEngine(WithWindow(w), WithScene(s), WithRenderer(r), WithLogger(zap.New(core)))
	require.NoError(t, err)

	// Fixed 60 Hz clock.
	clock := time.Unix(0, 0)
	e.(*engine).now = func() time.Time {
		clock = clock.Add(time.Second / 60)
		return clock
	}
	return &harness{backend: backend, window: w, scene: s, engine: e, logs: logs}
}

func TestNewEngineRequiresWindowAndScene(t *testing.T) {
	_, err := NewEngine()
	assert.Error(t, err)
	_, err = NewEngine(WithWindow(&fakeWindow{}))
	assert.Error(t, err)
}

func TestRunRendersUntilWindowStops(t *testing.T) {
	h := newHarness(t, 5)

	require.NoError(t, h.engine.Run())

	assert.Equal(t, 5, h.engine.Frames())
	assert.Equal(t, 5, h.backend.Presented)
	assert.True(t, h.window.closed)
	assert.True(t, h.backend.Released)
}

func TestInputReachesScene(t *testing.T) {
	h := newHarness(t, 1)
	start := h.scene.Camera()

	h.window.onKey(common.KeyW, true)
	h.window.onDrag(25, 0)
	h.window.onScroll(1)
	require.NoError(t, h.engine.Run())

	moved := h.scene.Camera()
	assert.Less(t, moved.Target.Z(), start.Target.Z())
	assert.NotEqual(t, start.Yaw, moved.Yaw)
	assert.Less(t, moved.Distance, start.Distance)
}

func TestResizeCallbackUpdatesProjection(t *testing.T) {
	h := newHarness(t, 0)

	h.window.onResize(0, 0)
	assert.Equal(t, float32(800)/600, h.scene.Projection().Aspect)

	h.window.onResize(1200, 600)
	assert.Equal(t, float32(2), h.scene.Projection().Aspect)
}

func TestSurfaceLostReconfiguresAndRetries(t *testing.T) {
	h := newHarness(t, 3)
	h.window.beforeFrame = func(i int) {
		switch i {
		case 0:
			h.window.width, h.window.height = 1024, 512
			h.backend.SetBeginFrameErr(errors.New("surface texture status: Outdated"))
		case 1:
			h.backend.SetBeginFrameErr(nil)
		}
	}

	require.NoError(t, h.engine.Run())

	assert.Equal(t, 2, h.engine.Frames())
	assert.Equal(t, [2]int{1024, 512}, h.backend.Configured[len(h.backend.Configured)-1])
	assert.Equal(t, float32(2), h.scene.Projection().Aspect)
}

func TestOutOfMemoryIsFatal(t *testing.T) {
	h := newHarness(t, 10)
	h.window.beforeFrame = func(i int) {
		if i == 2 {
			h.backend.SetBeginFrameErr(errors.New("surface texture status: OutOfMemory"))
		}
	}

	err := h.engine.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, renderer.ErrSurfaceOutOfMemory)
	assert.Equal(t, 2, h.engine.Frames())
	assert.True(t, h.window.closeRequested)
	assert.True(t, h.backend.Released, "resources are released on the fatal path too")
}

func TestOtherFrameErrorsAreSkipped(t *testing.T) {
	h := newHarness(t, 3)
	h.window.beforeFrame = func(i int) {
		if i == 0 {
			h.backend.SetBeginFrameErr(errors.New("timeout"))
		} else {
			h.backend.SetBeginFrameErr(nil)
		}
	}

	require.NoError(t, h.engine.Run())
	assert.Equal(t, 2, h.engine.Frames())
	assert.Equal(t, 1, h.logs.FilterMessage("frame skipped").Len())
}

func TestProfilerToggle(t *testing.T) {
	h := newHarness(t, 0)
	h.engine.EnableProfiler()
	assert.True(t, h.engine.(*engine).profilingEnabled)
	h.engine.DisableProfiler()
	assert.False(t, h.engine.(*engine).profilingEnabled)
}
