package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
)

// ControllerState is the input accumulated between two frames. Movement amounts are held key
// states (0 or 1) and persist across frames; rotation and scroll are one-shot deltas that the
// controller clears after applying them.
type ControllerState struct {
	Forward, Backward float32
	Left, Right       float32
	Up, Down          float32

	// RotateHorizontal and RotateVertical are the summed mouse motion in pixels.
	RotateHorizontal float32
	RotateVertical   float32

	// Scroll is the summed wheel motion; positive zooms in.
	Scroll float32

	// Speed is the target translation speed in world units per second.
	Speed float32
	// Sensitivity scales rotation and zoom.
	Sensitivity float32
	// ZoomSpeed scales scroll before Sensitivity.
	ZoomSpeed float32
}

// Apply advances cam by dt seconds of the given input and returns the new camera. The target moves
// along the camera's horizontal forward and right axes and along world up. Yaw and pitch follow
// the mouse with pitch clamped to MaxPitch; distance follows the scroll wheel and stays within
// the camera's bounds.
//
// Parameters:
//   - cam: the current camera
//   - s: the accumulated input
//   - dt: the frame time in seconds
//
// Returns:
//   - Camera: the updated camera
func Apply(cam Camera, s ControllerState, dt float32) Camera {
	forward, right := cam.horizontalAxes()
	step := s.Speed * dt
	cam.Target = cam.Target.
		Add(forward.Mul((s.Forward - s.Backward) * step)).
		Add(right.Mul((s.Right - s.Left) * step)).
		Add(worldUp.Mul((s.Up - s.Down) * step))

	cam.Yaw += s.RotateHorizontal * s.Sensitivity * dt
	cam.Pitch += -s.RotateVertical * s.Sensitivity * dt
	cam.Pitch = common.Clamp(cam.Pitch, -MaxPitch, MaxPitch)

	cam.Distance -= s.Scroll * s.ZoomSpeed * s.Sensitivity * dt
	cam.Distance = common.Clamp(cam.Distance, cam.MinDistance, cam.MaxDistance)
	return cam
}

// CameraController turns raw window input into ControllerState and applies it once per frame.
type CameraController interface {
	// ProcessKeyboard records a key press or release.
	//
	// Parameters:
	//   - key: the GLFW key code
	//   - pressed: true on press or repeat, false on release
	//
	// Returns:
	//   - bool: true if the key drives the camera
	ProcessKeyboard(key int, pressed bool) bool

	// ProcessMouse adds mouse motion to the pending rotation.
	//
	// Parameters:
	//   - dx, dy: the cursor motion in pixels
	ProcessMouse(dx, dy float64)

	// ProcessScroll adds wheel motion to the pending zoom.
	//
	// Parameters:
	//   - delta: the vertical wheel offset; positive zooms in
	ProcessScroll(delta float64)

	// UpdateCamera applies the pending input to cam with Apply, then clears the rotation and
	// scroll deltas. Held keys stay held.
	//
	// Parameters:
	//   - cam: the current camera
	//   - dt: the frame time in seconds
	//
	// Returns:
	//   - Camera: the updated camera
	UpdateCamera(cam Camera, dt float32) Camera

	// State returns a copy of the pending input.
	State() ControllerState
}
