package balance

import (
	"math"

	"github.com/vovakirdan/tui-balance/internal/core"
)

// MapPointer converts a horizontal pointer position over a surface of the
// given width into a steer angle. The surface centre is straight ahead and
// each edge is full lock; positions past an edge clamp to ±steerLimit.
// A degenerate surface or a NaN position maps to straight ahead.
func MapPointer(pointerX, surfaceWidth, steerLimit float64) float64 {
	if !finite(surfaceWidth) || surfaceWidth <= 0 || math.IsNaN(pointerX) {
		return 0
	}
	half := surfaceWidth / 2
	normalized := core.ClampF((pointerX-half)/half, -1, 1)
	return normalized * steerLimit
}

// OnPointerMove applies a pointer position to the steer angle immediately.
// There is no smoothing or queueing: the last call before a tick wins.
// Input is ignored while crashed, and so are positions that cannot be
// mapped (no surface width, NaN coordinates).
func (s *Simulator) OnPointerMove(pointerX, surfaceWidth float64) {
	if !s.state.Running || !finite(surfaceWidth) || surfaceWidth <= 0 || math.IsNaN(pointerX) {
		return
	}
	s.state.SteerAngle = MapPointer(pointerX, surfaceWidth, s.params.SteerLimit)
}

// SetSteer applies a steer angle from a non-pointer source (keyboard,
// autopilot), clamped to the steer limit. Ignored while crashed or when
// deg is NaN.
func (s *Simulator) SetSteer(deg float64) {
	if !s.state.Running || math.IsNaN(deg) {
		return
	}
	lim := s.params.SteerLimit
	s.state.SteerAngle = core.ClampF(deg, -lim, lim)
}
