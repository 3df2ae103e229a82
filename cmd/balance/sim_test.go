package main

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-balance/internal/balance"
	"github.com/vovakirdan/tui-balance/internal/config"
)

func calmConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Physics.NoiseAmplitude = 0
	return cfg
}

func TestSimulateUnsteeredFalls(t *testing.T) {
	lean := 5.0
	res := simulate(calmConfig(), simOptions{Ticks: 600, TickRate: 60, Seed: 1, Lean: &lean}, log.New(io.Discard))

	if res.Final.Running {
		t.Fatal("Running = true, expected a crash")
	}
	if res.Final.CrashReason != balance.FellRight {
		t.Errorf("CrashReason = %v, expected FellRight", res.Final.CrashReason)
	}
	if res.Ticks != 39 || res.Final.Score != 39 {
		t.Errorf("crashed after %d ticks (score %d), expected 39", res.Ticks, res.Final.Score)
	}
	// Start snapshot plus one per tick.
	if len(res.Points) != 40 {
		t.Errorf("points = %d, expected 40", len(res.Points))
	}
}

func TestSimulateAutopilotStaysUp(t *testing.T) {
	cfg := config.DefaultConfig()
	lean := 10.0
	res := simulate(cfg, simOptions{Ticks: 900, TickRate: 60, Seed: 3, Autopilot: true, Lean: &lean}, nil)

	if !res.Final.Running {
		t.Fatalf("autopilot fell: %v at tick %d", res.Final.CrashReason, res.Final.Score)
	}
	if res.Ticks != 900 {
		t.Errorf("ticks = %d, expected 900", res.Ticks)
	}
	if res.Final.LeanAngle > 5 || res.Final.LeanAngle < -5 {
		t.Errorf("final lean = %.2f, expected near upright", res.Final.LeanAngle)
	}
}

func TestSimulateScaledJitterDeterministic(t *testing.T) {
	lean := -3.0
	opts := simOptions{Ticks: 300, TickRate: 60, Seed: 11, Autopilot: true, Lean: &lean, Scaled: true, Jitter: 0.5}

	a := simulate(calmConfig(), opts, nil)
	b := simulate(calmConfig(), opts, nil)
	if a.Final != b.Final {
		t.Errorf("same seed produced %+v and %+v", a.Final, b.Final)
	}
	if !a.Final.Running {
		t.Errorf("autopilot fell under jitter: %v", a.Final.CrashReason)
	}
}

func TestSimulateFixedSteerWithoutLean(t *testing.T) {
	cfg := calmConfig()
	cfg.Start.InitialLeanSpread = 0
	res := simulate(cfg, simOptions{Ticks: 200, TickRate: 60, Seed: 5, Steer: 30, Speed: 20}, nil)

	if res.Final.Running || res.Final.CrashReason != balance.FellLeft {
		t.Errorf("Final = %+v, expected a fall to the left", res.Final)
	}
	if res.Final.SteerAngle != 30 {
		t.Errorf("SteerAngle = %v, expected 30", res.Final.SteerAngle)
	}
}

func TestSampleMode(t *testing.T) {
	points := sampleMode(balance.ModeCornering, 10, 60)
	if len(points) != 10 {
		t.Fatalf("points = %d, expected 10", len(points))
	}
	for _, p := range points {
		if p.Lean != balance.SampleAt(balance.ModeCornering, 0).LeanAngle {
			t.Errorf("cornering lean = %v, expected constant", p.Lean)
		}
	}

	wobble := sampleMode(balance.ModeWobble, 60, 60)
	if wobble[0].Lean != 0 {
		t.Errorf("wobble starts at %v, expected 0", wobble[0].Lean)
	}
	if wobble[30].Tick != 30 {
		t.Errorf("Tick = %d, expected 30", wobble[30].Tick)
	}
}

func TestCheckFinite(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]float64
		wantErr string
	}{
		{"all finite", map[string]float64{"speed": 20, "steer": -30}, ""},
		{"nan speed", map[string]float64{"speed": math.NaN(), "steer": 0}, "--speed"},
		{"inf steer", map[string]float64{"speed": 20, "steer": math.Inf(1)}, "--steer"},
		{"first name wins", map[string]float64{"steer": math.NaN(), "lean": math.Inf(-1)}, "--lean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkFinite(tt.values)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("checkFinite() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("checkFinite() = %v, expected error naming %s", err, tt.wantErr)
			}
		})
	}
}

func TestSimulateNonFiniteSpeedStillFalls(t *testing.T) {
	lean := 5.0
	res := simulate(calmConfig(), simOptions{Ticks: 600, TickRate: 60, Seed: 1, Speed: math.NaN(), Lean: &lean}, nil)

	if res.Final.Running || res.Final.Score != 39 {
		t.Errorf("Final = %+v, expected a fall at 39 at the configured speed", res.Final)
	}
}
