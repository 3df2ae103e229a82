// Package config provides YAML-based scenario configuration loading and
// difficulty presets for the balance simulator.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-balance/internal/balance"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full contents of balance.yaml.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Speed     SpeedConfig     `yaml:"speed"`
	Start     StartConfig     `yaml:"start"`
	Loop      LoopConfig      `yaml:"loop"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
}

// PhysicsConfig holds the lean model tunables.
type PhysicsConfig struct {
	GravityFactor  float64 `yaml:"gravity_factor"`
	RightingFactor float64 `yaml:"righting_factor"`
	DampingFactor  float64 `yaml:"damping_factor"`
	NoiseAmplitude float64 `yaml:"noise_amplitude"`
	CrashThreshold float64 `yaml:"crash_threshold"`
	SteerLimit     float64 `yaml:"steer_limit"`
}

// SpeedConfig bounds the user-adjustable speed.
type SpeedConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Initial float64 `yaml:"initial"`
}

// StartConfig controls how a run begins.
type StartConfig struct {
	InitialLeanSpread float64 `yaml:"initial_lean_spread"`
}

// LoopConfig controls tick scheduling.
type LoopConfig struct {
	TickRate int    `yaml:"tick_rate"`
	StepMode string `yaml:"step_mode"` // "fixed" or "scaled"
}

// AutopilotConfig holds the PD gains used by the assist toggle and sim.
type AutopilotConfig struct {
	Kp float64 `yaml:"kp"`
	Kd float64 `yaml:"kd"`
}

// Params converts the physics, speed and start sections into the
// scenario parameters consumed by the simulator.
func (c Config) Params() balance.Params {
	return balance.Params{
		GravityFactor:     c.Physics.GravityFactor,
		RightingFactor:    c.Physics.RightingFactor,
		DampingFactor:     c.Physics.DampingFactor,
		NoiseAmplitude:    c.Physics.NoiseAmplitude,
		CrashThreshold:    c.Physics.CrashThreshold,
		SteerLimit:        c.Physics.SteerLimit,
		MinSpeed:          c.Speed.Min,
		MaxSpeed:          c.Speed.Max,
		InitialLeanSpread: c.Start.InitialLeanSpread,
	}
}

// StepMode parses the configured step mode.
func (c Config) StepMode() (balance.StepMode, error) {
	return balance.ParseStepMode(c.Loop.StepMode)
}

// Validate checks the configuration for values the simulator cannot run.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.Loop.TickRate)
	}
	if _, err := c.StepMode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Speed.Initial < c.Speed.Min || c.Speed.Initial > c.Speed.Max {
		return fmt.Errorf("%w: initial speed %g outside [%g, %g]", ErrInvalidConfig, c.Speed.Initial, c.Speed.Min, c.Speed.Max)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown preset %q (use easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset leaves the file values as-is.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
