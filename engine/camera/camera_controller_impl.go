package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	state ControllerState
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with default speeds.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},
		state: ControllerState{
			Speed:       4.0,
			Sensitivity: 0.4,
			ZoomSpeed:   100.0,
		},
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessKeyboard(key int, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var amount float32
	if pressed {
		amount = 1
	}

	switch key {
	case common.KeyW, common.KeyUp:
		cc.state.Forward = amount
	case common.KeyS, common.KeyDown:
		cc.state.Backward = amount
	case common.KeyA, common.KeyLeft:
		cc.state.Left = amount
	case common.KeyD, common.KeyRight:
		cc.state.Right = amount
	case common.KeySpace, common.KeyE:
		cc.state.Up = amount
	case common.KeyLeftShift, common.KeyQ:
		cc.state.Down = amount
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) ProcessMouse(dx, dy float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state.RotateHorizontal += float32(dx)
	cc.state.RotateVertical += float32(dy)
}

func (cc *cameraControllerImpl) ProcessScroll(delta float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state.Scroll += float32(delta)
}

func (cc *cameraControllerImpl) UpdateCamera(cam Camera, dt float32) Camera {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cam = Apply(cam, cc.state, dt)
	cc.state.RotateHorizontal = 0
	cc.state.RotateVertical = 0
	cc.state.Scroll = 0
	return cam
}

func (cc *cameraControllerImpl) State() ControllerState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}
