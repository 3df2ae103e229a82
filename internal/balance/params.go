// Package balance implements the lean-angle model of a self-balancing
// two-wheeled vehicle: the interactive per-tick simulator, the pointer to
// steering mapping, the scripted demonstration trajectories and the loop
// controller that schedules ticks.
//
// The package holds no rendering code. Renderers read Snapshots published
// by the Loop at the end of every tick.
package balance

import (
	"errors"
	"fmt"
)

// Default tunables, matching a playable feel at 60 ticks per second.
const (
	DefaultGravityFactor     = 0.08
	DefaultRightingFactor    = 0.004
	DefaultDampingFactor     = 0.98
	DefaultNoiseAmplitude    = 0.2
	DefaultCrashThreshold    = 45.0
	DefaultSteerLimit        = 30.0
	DefaultMinSpeed          = 5.0
	DefaultMaxSpeed          = 50.0
	DefaultInitialSpeed      = 20.0
	DefaultInitialLeanSpread = 5.0
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("balance: invalid scenario parameters")

// Params are the scenario tunables. A Params value is copied into the
// Simulator when it is created and never changes for the life of the
// scenario.
type Params struct {
	GravityFactor  float64 // Proportional lean growth per tick
	RightingFactor float64 // Converts steer*speed into a lean correction
	DampingFactor  float64 // Per-tick multiplicative attenuation
	NoiseAmplitude float64 // Full width of the road perturbation
	CrashThreshold float64 // Lean magnitude in degrees that ends a run
	SteerLimit     float64 // Maximum handlebar deflection in degrees

	MinSpeed float64 // Lower bound for SetSpeed
	MaxSpeed float64 // Upper bound for SetSpeed

	// InitialLeanSpread bounds the random start lean to [-spread, +spread].
	InitialLeanSpread float64
}

// DefaultParams returns the stock scenario.
func DefaultParams() Params {
	return Params{
		GravityFactor:     DefaultGravityFactor,
		RightingFactor:    DefaultRightingFactor,
		DampingFactor:     DefaultDampingFactor,
		NoiseAmplitude:    DefaultNoiseAmplitude,
		CrashThreshold:    DefaultCrashThreshold,
		SteerLimit:        DefaultSteerLimit,
		MinSpeed:          DefaultMinSpeed,
		MaxSpeed:          DefaultMaxSpeed,
		InitialLeanSpread: DefaultInitialLeanSpread,
	}
}

// Validate reports parameter sets that cannot produce a meaningful run.
func (p Params) Validate() error {
	switch {
	case p.CrashThreshold <= 0:
		return fmt.Errorf("%w: crash threshold must be positive, got %g", ErrInvalidParams, p.CrashThreshold)
	case p.SteerLimit <= 0:
		return fmt.Errorf("%w: steer limit must be positive, got %g", ErrInvalidParams, p.SteerLimit)
	case p.DampingFactor <= 0:
		return fmt.Errorf("%w: damping factor must be positive, got %g", ErrInvalidParams, p.DampingFactor)
	case p.NoiseAmplitude < 0:
		return fmt.Errorf("%w: noise amplitude must not be negative, got %g", ErrInvalidParams, p.NoiseAmplitude)
	case p.MinSpeed < 0 || p.MaxSpeed < p.MinSpeed:
		return fmt.Errorf("%w: speed range [%g, %g] is empty or negative", ErrInvalidParams, p.MinSpeed, p.MaxSpeed)
	case p.InitialLeanSpread < 0 || p.InitialLeanSpread >= p.CrashThreshold:
		return fmt.Errorf("%w: initial lean spread %g must be in [0, crash threshold)", ErrInvalidParams, p.InitialLeanSpread)
	}
	return nil
}
