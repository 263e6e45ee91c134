package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/stretchr/testify/assert"
)

func TestEscapeRequestsClose(t *testing.T) {
	w := &engineWindow{}
	var keys []int
	w.SetKeyCallback(func(k int, _ bool) { keys = append(keys, k) })

	w.handleKey(common.KeyEsc, false)
	assert.False(t, w.closeRequested)

	w.handleKey(common.KeyEsc, true)
	assert.True(t, w.closeRequested)
	assert.False(t, w.IsRunning())
	assert.Empty(t, keys, "escape is not forwarded")
}

func TestRequestClose(t *testing.T) {
	w := &engineWindow{}
	w.RequestClose()
	assert.True(t, w.closeRequested)
}

func TestKeysForwarded(t *testing.T) {
	w := &engineWindow{}
	type event struct {
		key     int
		pressed bool
	}
	var got []event
	w.SetKeyCallback(func(k int, p bool) { got = append(got, event{k, p}) })

	w.handleKey(common.KeyW, true)
	w.handleKey(common.KeyW, false)
	assert.Equal(t, []event{{common.KeyW, true}, {common.KeyW, false}}, got)
}

func TestDragOnlyWhileLeftButtonHeld(t *testing.T) {
	w := &engineWindow{}
	var deltas [][2]float64
	w.SetMouseDragCallback(func(dx, dy float64) { deltas = append(deltas, [2]float64{dx, dy}) })

	w.handleCursor(10, 10)
	assert.Empty(t, deltas, "motion without a pressed button is ignored")

	w.handleLeftButton(true, 10, 10)
	w.handleCursor(15, 8)
	w.handleCursor(15, 8)
	w.handleCursor(12, 9)
	w.handleLeftButton(false, 12, 9)
	w.handleCursor(40, 40)

	assert.Equal(t, [][2]float64{{5, -2}, {-3, 1}}, deltas)
}

func TestScrollAndResizeForwarded(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}
	var scroll float64
	var size [2]int
	w.SetScrollCallback(func(d float64) { scroll += d })
	w.SetResizeCallback(func(width, height int) { size = [2]int{width, height} })

	w.handleScroll(1.5)
	w.handleScroll(-0.5)
	w.handleResize(640, 480)

	assert.Equal(t, 1.0, scroll)
	assert.Equal(t, [2]int{640, 480}, size)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestWithSize(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}
	WithSize(800, 0)(w)
	WithTitle("viewer")(w)
	assert.Equal(t, 800, w.width)
	assert.Equal(t, 720, w.height)
	assert.Equal(t, "viewer", w.title)
}
