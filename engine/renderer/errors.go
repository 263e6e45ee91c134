package renderer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSurfaceLost reports that the swapchain no longer matches the window. The caller
	// should reconfigure the surface at the current size and try again next frame.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrSurfaceOutOfMemory reports that the GPU could not allocate the next frame. It is fatal.
	ErrSurfaceOutOfMemory = errors.New("surface out of memory")

	// ErrFrameInProgress reports that BeginFrame was called while a frame was still held.
	ErrFrameInProgress = errors.New("previous frame surface not yet presented")
)

// classifySurfaceError maps a raw surface acquisition error onto ErrSurfaceLost or
// ErrSurfaceOutOfMemory so callers can branch with errors.Is. Errors that match neither are
// returned unchanged and should be logged with the frame skipped.
//
// Parameters:
//   - err: the error returned by the surface, may be nil
//
// Returns:
//   - error: nil, a wrapped sentinel, or the original error
func classifySurfaceError(err error) error {
	if err == nil || errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutOfMemory) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "out of memory"), strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %v", ErrSurfaceOutOfMemory, err)
	case strings.Contains(msg, "lost"), strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	default:
		return err
	}
}
