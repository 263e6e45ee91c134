package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialCamera() Camera {
	return NewCamera(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{})
}

func TestNewCameraFromEye(t *testing.T) {
	cam := initialCamera()

	assert.InDelta(t, 11.1803, cam.Distance, 1e-3)
	assert.InDelta(t, 0, cam.Yaw, 1e-6)
	assert.True(t, common.ApproxEqualVec3(mgl32.Vec3{0, 5, 10}, cam.Eye(), 1e-4), "eye %v", cam.Eye())
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	cam := initialCamera()
	view := cam.ViewMatrix()

	// The target lands on the view-space -Z axis at the orbit distance.
	target := view.Mul4x1(cam.Target.Vec4(1)).Vec3()
	assert.True(t, common.ApproxEqualVec3(mgl32.Vec3{0, 0, -cam.Distance}, target, 1e-4), "target %v", target)
}

func TestApplyTranslatesAlongHorizontalAxes(t *testing.T) {
	cam := initialCamera()
	s := ControllerState{Forward: 1, Speed: 2}

	moved := Apply(cam, s, 0.5)
	assert.True(t, common.ApproxEqualVec3(mgl32.Vec3{0, 0, -1}, moved.Target, 1e-6), "target %v", moved.Target)
	assert.Equal(t, cam.Distance, moved.Distance)

	s = ControllerState{Right: 1, Up: 1, Speed: 1}
	moved = Apply(cam, s, 1)
	assert.True(t, common.ApproxEqualVec3(mgl32.Vec3{1, 1, 0}, moved.Target, 1e-6), "target %v", moved.Target)

	s = ControllerState{Forward: 1, Backward: 1, Left: 1, Right: 1, Speed: 5}
	moved = Apply(cam, s, 1)
	assert.Equal(t, cam.Target, moved.Target)
}

func TestApplyIsPure(t *testing.T) {
	cam := initialCamera()
	before := cam
	_ = Apply(cam, ControllerState{Forward: 1, RotateHorizontal: 10, Scroll: 1, Speed: 1, Sensitivity: 1, ZoomSpeed: 1}, 1)
	assert.Equal(t, before, cam)
}

func TestPitchClampedUnderRepeatedInput(t *testing.T) {
	cam := initialCamera()
	up := ControllerState{RotateVertical: -1000, Sensitivity: 1}
	down := ControllerState{RotateVertical: 1000, Sensitivity: 1}

	for range 50 {
		cam = Apply(cam, up, 0.1)
		assert.LessOrEqual(t, cam.Pitch, MaxPitch)
	}
	assert.Equal(t, MaxPitch, cam.Pitch)

	for range 50 {
		cam = Apply(cam, down, 0.1)
		assert.GreaterOrEqual(t, cam.Pitch, -MaxPitch)
	}
	assert.Equal(t, -MaxPitch, cam.Pitch)
}

func TestZoomStaysWithinBounds(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, WithDistanceBounds(1, 10))

	cam = Apply(cam, ControllerState{Scroll: 100, ZoomSpeed: 10, Sensitivity: 1}, 1)
	assert.Equal(t, float32(1), cam.Distance)

	cam = Apply(cam, ControllerState{Scroll: -100, ZoomSpeed: 10, Sensitivity: 1}, 1)
	assert.Equal(t, float32(10), cam.Distance)
}

func TestControllerClearsOneShotDeltas(t *testing.T) {
	cc := NewCameraController(WithSpeed(1), WithSensitivity(1), WithZoomSpeed(1))

	assert.True(t, cc.ProcessKeyboard(common.KeyW, true))
	assert.True(t, cc.ProcessKeyboard(common.KeyLeftShift, true))
	assert.False(t, cc.ProcessKeyboard(common.KeyEsc, true))
	cc.ProcessMouse(3, 4)
	cc.ProcessMouse(1, 1)
	cc.ProcessScroll(2)

	s := cc.State()
	assert.Equal(t, float32(1), s.Forward)
	assert.Equal(t, float32(1), s.Down)
	assert.Equal(t, float32(4), s.RotateHorizontal)
	assert.Equal(t, float32(5), s.RotateVertical)
	assert.Equal(t, float32(2), s.Scroll)

	cam := cc.UpdateCamera(initialCamera(), 0.01)
	assert.NotEqual(t, initialCamera().Target, cam.Target)

	s = cc.State()
	assert.Zero(t, s.RotateHorizontal)
	assert.Zero(t, s.RotateVertical)
	assert.Zero(t, s.Scroll)
	assert.Equal(t, float32(1), s.Forward, "held keys persist")

	cc.ProcessKeyboard(common.KeyUp, false)
	assert.Zero(t, cc.State().Forward)
}

func TestProjectionResize(t *testing.T) {
	p := DefaultProjection(800, 600)
	assert.Equal(t, float32(800)/float32(600), p.Aspect)

	p.Resize(0, 600)
	p.Resize(800, 0)
	assert.Equal(t, float32(800)/float32(600), p.Aspect)

	p.Resize(1920, 1080)
	assert.Equal(t, float32(1920)/float32(1080), p.Aspect)

	zero := DefaultProjection(0, 0)
	assert.Equal(t, float32(1), zero.Aspect)
}

func TestCameraUniform(t *testing.T) {
	cam := initialCamera()
	proj := DefaultProjection(800, 600)

	u := NewCameraUniform(cam, proj)
	want := proj.Matrix().Mul4(cam.ViewMatrix())
	assert.Equal(t, [16]float32(want), u.ViewProj)
	assert.True(t, common.ApproxEqualVec3(cam.Eye(), mgl32.Vec3(u.ViewPosition), 1e-6))

	require.Equal(t, 80, u.Size())
	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, common.Mat4Bytes(want), buf[:64])

	// The target projects to the center of the viewport with depth in [0, 1].
	clip := mgl32.Mat4(u.ViewProj).Mul4x1(cam.Target.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.Greater(t, ndc.Z(), float32(0))
	assert.Less(t, ndc.Z(), float32(1))
}
