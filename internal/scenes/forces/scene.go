// Package forces implements the scripted demonstration scenes. They replay
// a closed-form trajectory and never crash, so the player can watch how
// lean, steer and the two torques relate.
package forces

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-balance/internal/balance"
	"github.com/vovakirdan/tui-balance/internal/core"
	"github.com/vovakirdan/tui-balance/internal/registry"
	"github.com/vovakirdan/tui-balance/internal/scenes/view"
)

func init() {
	registry.Register(balance.ModeWobble.String(), func() registry.Scene { return New(balance.ModeWobble) })
	registry.Register(balance.ModeCornering.String(), func() registry.Scene { return New(balance.ModeCornering) })
}

// forceCellScale converts display force units to arrow cells.
const forceCellScale = 5.0

var captions = map[balance.Mode]string{
	balance.ModeWobble:    "Straight line: the rider steers into the lean, a beat behind it",
	balance.ModeCornering: "Steady turn: gravity and centrifugal torques cancel at 25° lean",
}

// Scene replays one scripted mode. The M key switches to the other mode
// and restarts its clock.
type Scene struct {
	initial  balance.Mode
	traj     *balance.Trajectory
	tickRate int
	paused   bool
	sample   balance.Sample
}

// New creates a scene that starts in mode.
func New(mode balance.Mode) *Scene {
	return &Scene{initial: mode}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return s.initial.String()
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	if s.initial == balance.ModeCornering {
		return "Cornering Demo"
	}
	return "Wobble Demo"
}

// Description returns a one-line summary.
func (s *Scene) Description() string {
	return captions[s.initial]
}

// Reset selects the starting mode with a fresh time origin.
func (s *Scene) Reset(runtime core.RuntimeConfig) {
	s.tickRate = runtime.TickRate
	if s.tickRate <= 0 {
		s.tickRate = 60
	}
	s.traj = balance.NewTrajectory(s.initial)
	s.paused = false
	s.sample = s.traj.Current()
}

// Mode returns the mode currently shown.
func (s *Scene) Mode() balance.Mode {
	if s.traj == nil {
		return s.initial
	}
	return s.traj.Mode()
}

// Sample returns the sample shown in the current frame.
func (s *Scene) Sample() balance.Sample {
	return s.sample
}

// Step advances the clock by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if s.traj == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionMode) {
		next := balance.ModeCornering
		if s.traj.Mode() == balance.ModeCornering {
			next = balance.ModeWobble
		}
		s.traj.Select(next)
	}

	if !s.paused {
		s.traj.Advance(1 / float64(s.tickRate))
	}
	s.sample = s.traj.Current()

	return core.StepResult{State: s.State()}
}

// Render draws the current state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()
	if s.traj == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	smp := s.sample

	groundY := h - 5
	length := core.Clamp(h-12, 4, 14)
	baseX := w / 2
	view.Ground(dst, groundY+1)
	view.Bike(dst, baseX, groundY, length, smp.LeanAngle, smp.SteerAngle, 0)

	// Lateral force arrow at half height
	mx, my := view.Tip(baseX, groundY, length/2, smp.LeanAngle)
	s.drawForce(dst, mx, my, smp.CentrifugalForce)

	mode := s.traj.Mode()
	hud := fmt.Sprintf(" %s  t=%.2fs  Lean: %+.1f°  Steer: %+.1f°  Force: %+.1f ",
		mode, s.traj.Elapsed(), smp.LeanAngle, smp.SteerAngle, smp.CentrifugalForce)
	dst.DrawText(2, 0, hud)
	dst.DrawTextColored(2, 1, " "+captions[mode], core.ColorGray)
	if w > 20 {
		dst.DrawTextColored(w-18, 0, "[M] switch mode", core.ColorYellow)
	}

	full := balance.DefaultCrashThreshold * balance.GravityTorqueScale
	view.TorqueBars(dst, 2, h-3, core.Clamp(w-20, 0, 40), smp.GravityTorque, smp.CentrifugalTorque, full)

	if s.paused {
		view.CenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (s *Scene) drawForce(dst *core.Screen, x, y int, force float64) {
	n := int(math.Round(math.Abs(force) / forceCellScale))
	if n == 0 {
		return
	}
	if force > 0 {
		dst.DrawHLine(x+1, y, n, '─', core.ColorGreen)
		dst.SetColored(x+n+1, y, '▶', core.ColorGreen)
	} else {
		dst.DrawHLine(x-n, y, n, '─', core.ColorGreen)
		dst.SetColored(x-n-1, y, '◀', core.ColorGreen)
	}
}

// State returns the current scene state. Scripted scenes have no score
// and never end.
func (s *Scene) State() core.GameState {
	return core.GameState{Paused: s.paused}
}
