package balance

import "math"

// CrashReason tells which side the vehicle fell to.
type CrashReason int

const (
	CrashNone CrashReason = iota
	FellLeft
	FellRight
)

// String returns the stable identifier used in storage and the feed.
func (r CrashReason) String() string {
	switch r {
	case FellLeft:
		return "fell_left"
	case FellRight:
		return "fell_right"
	default:
		return "none"
	}
}

// Label returns a display text for the reason.
func (r CrashReason) Label() string {
	switch r {
	case FellLeft:
		return "Fell to the left"
	case FellRight:
		return "Fell to the right"
	default:
		return ""
	}
}

// State is the kinematic and control condition of one running simulation.
//
// Each field has exactly one writer: the Simulator tick owns LeanAngle,
// Running, Score and CrashReason; the input mapper owns SteerAngle; the
// speed setting owns Speed.
type State struct {
	LeanAngle   float64     // Degrees, positive leans right
	SteerAngle  float64     // Degrees, always within ±SteerLimit
	Speed       float64     // Within the configured speed range
	Running     bool        // False once the vehicle has fallen
	Score       int         // Effective ticks since the last reset
	CrashReason CrashReason // Set when Running turns false
}

// Display scaling constants for the derived torque sample.
const (
	GravityTorqueScale     = 3.0
	CentrifugalTorqueScale = 0.8
	DisplayForceScale      = 0.05
)

// TorqueSample is a display-only decomposition of the moments acting on
// the vehicle. It is recomputed every tick and never feeds back into the
// simulation.
type TorqueSample struct {
	Gravity     float64
	Centrifugal float64
}

// CentrifugalForce returns the display lateral force. Steering right
// produces a force to the left, hence the sign flip.
func (s State) CentrifugalForce() float64 {
	return -s.SteerAngle * s.Speed * DisplayForceScale
}

// Torque returns the derived torque sample for this state.
func (s State) Torque() TorqueSample {
	return TorqueSample{
		Gravity:     math.Abs(s.LeanAngle) * GravityTorqueScale,
		Centrifugal: math.Abs(s.CentrifugalForce()) * CentrifugalTorqueScale,
	}
}

// Snapshot is the read-only view published to renderers once per tick.
type Snapshot struct {
	State
	Torque TorqueSample
}

func newSnapshot(s State) Snapshot {
	return Snapshot{State: s, Torque: s.Torque()}
}
