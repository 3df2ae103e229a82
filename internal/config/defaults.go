package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-balance/internal/balance"
	"github.com/vovakirdan/tui-balance/internal/control"
)

//go:embed defaults/balance.yaml
var defaultBalanceYAML []byte

// DefaultConfig returns the hardcoded default configuration. It matches
// the embedded defaults/balance.yaml.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			GravityFactor:  balance.DefaultGravityFactor,
			RightingFactor: balance.DefaultRightingFactor,
			DampingFactor:  balance.DefaultDampingFactor,
			NoiseAmplitude: balance.DefaultNoiseAmplitude,
			CrashThreshold: balance.DefaultCrashThreshold,
			SteerLimit:     balance.DefaultSteerLimit,
		},
		Speed: SpeedConfig{
			Min:     balance.DefaultMinSpeed,
			Max:     balance.DefaultMaxSpeed,
			Initial: balance.DefaultInitialSpeed,
		},
		Start: StartConfig{
			InitialLeanSpread: balance.DefaultInitialLeanSpread,
		},
		Loop: LoopConfig{
			TickRate: 60,
			StepMode: "fixed",
		},
		Autopilot: AutopilotConfig{
			Kp: control.DefaultKp,
			Kd: control.DefaultKd,
		},
	}
}

// DefaultYAML returns the embedded default balance.yaml.
func DefaultYAML() []byte {
	return defaultBalanceYAML
}
