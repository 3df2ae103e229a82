package balance

import (
	"fmt"
	"math"
)

// Mode selects a scripted demonstration.
type Mode int

const (
	// ModeWobble shows straight-line balance: a slow lean oscillation with
	// the rider steering into the fall slightly behind it.
	ModeWobble Mode = iota
	// ModeCornering shows a steady right turn where the gravity and
	// centrifugal torques cancel.
	ModeCornering
)

// String returns the mode identifier.
func (m Mode) String() string {
	switch m {
	case ModeWobble:
		return "wobble"
	case ModeCornering:
		return "cornering"
	default:
		return "unknown"
	}
}

// ParseMode resolves a mode identifier.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "wobble":
		return ModeWobble, nil
	case "cornering":
		return ModeCornering, nil
	}
	return 0, fmt.Errorf("balance: unknown mode %q", s)
}

// Wobble waveform constants.
const (
	wobbleFrequency  = 1.5  // rad/s
	wobbleLeanAmp    = 8.0  // degrees
	wobbleSteerAmp   = 15.0 // degrees
	wobbleSteerLag   = 0.2  // rad
	wobbleForceScale = 2.5
)

// Cornering equilibrium constants.
const (
	corneringLean   = 25.0
	corneringSteer  = 8.0
	corneringForce  = -55.0
	corneringTorque = 75.0
)

// Sample is one point of a scripted trajectory.
type Sample struct {
	LeanAngle         float64
	SteerAngle        float64
	CentrifugalForce  float64
	GravityTorque     float64
	CentrifugalTorque float64
}

// SampleAt evaluates the scripted trajectory for mode at t seconds after
// the mode was selected. It is a pure function of its arguments.
func SampleAt(mode Mode, t float64) Sample {
	if mode == ModeCornering {
		return Sample{
			LeanAngle:         corneringLean,
			SteerAngle:        corneringSteer,
			CentrifugalForce:  corneringForce,
			GravityTorque:     corneringTorque,
			CentrifugalTorque: corneringTorque,
		}
	}

	naturalWobble := math.Sin(wobbleFrequency*t) * wobbleLeanAmp
	reactionSteer := math.Sin(wobbleFrequency*t-wobbleSteerLag) * wobbleSteerAmp
	// Steering right pushes left.
	force := -reactionSteer * wobbleForceScale

	return Sample{
		LeanAngle:         naturalWobble,
		SteerAngle:        reactionSteer,
		CentrifugalForce:  force,
		GravityTorque:     math.Abs(naturalWobble) * GravityTorqueScale,
		CentrifugalTorque: math.Abs(force) * CentrifugalTorqueScale,
	}
}

// Trajectory tracks the selected mode and the time elapsed since it was
// selected. It never touches simulation state and never crashes.
type Trajectory struct {
	mode    Mode
	elapsed float64
}

// NewTrajectory returns a trajectory positioned at the start of mode.
func NewTrajectory(mode Mode) *Trajectory {
	return &Trajectory{mode: mode}
}

// Select switches mode and resets the time origin.
func (tr *Trajectory) Select(mode Mode) {
	tr.mode = mode
	tr.elapsed = 0
}

// Mode returns the selected mode.
func (tr *Trajectory) Mode() Mode {
	return tr.mode
}

// Advance moves the clock forward by dt seconds.
func (tr *Trajectory) Advance(dt float64) {
	if dt > 0 {
		tr.elapsed += dt
	}
}

// Elapsed returns seconds since the last Select.
func (tr *Trajectory) Elapsed() float64 {
	return tr.elapsed
}

// Sample evaluates the selected mode at t seconds.
func (tr *Trajectory) Sample(t float64) Sample {
	return SampleAt(tr.mode, t)
}

// Current evaluates the selected mode at the current elapsed time.
func (tr *Trajectory) Current() Sample {
	return SampleAt(tr.mode, tr.elapsed)
}
