package balance

import (
	"math"
	"testing"
)

func TestMapPointer(t *testing.T) {
	tests := []struct {
		name     string
		x, w     float64
		expected float64
	}{
		{"centre", 100, 200, 0},
		{"left edge", 0, 200, -30},
		{"right edge", 200, 200, 30},
		{"half right", 150, 200, 15},
		{"past left", -500, 200, -30},
		{"past right", 900, 200, 30},
		{"zero width", 50, 0, 0},
		{"negative width", 50, -10, 0},
		{"infinite width", 50, math.Inf(1), 0},
		{"nan position", math.NaN(), 200, 0},
		{"infinitely right", math.Inf(1), 200, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapPointer(tt.x, tt.w, 30); !near(got, tt.expected) {
				t.Errorf("MapPointer(%v, %v, 30) = %v, expected %v", tt.x, tt.w, got, tt.expected)
			}
		})
	}
}

func TestOnPointerMoveLastWins(t *testing.T) {
	sim := NewSimulator(quietParams(), constNoise(0.5))
	sim.ResetLean(0)

	sim.OnPointerMove(0, 100)
	sim.OnPointerMove(75, 100)

	if got := sim.State().SteerAngle; !near(got, 15) {
		t.Errorf("SteerAngle = %v, expected 15", got)
	}

	// A surface with no width cannot be mapped and leaves steer alone.
	sim.OnPointerMove(10, 0)
	sim.OnPointerMove(10, -5)
	if got := sim.State().SteerAngle; !near(got, 15) {
		t.Errorf("SteerAngle = %v after zero-width move, expected 15", got)
	}
}

func TestNonFiniteInputIgnored(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name  string
		apply func(s *Simulator)
	}{
		{"speed nan", func(s *Simulator) { s.SetSpeed(nan) }},
		{"speed +inf", func(s *Simulator) { s.SetSpeed(inf) }},
		{"speed -inf", func(s *Simulator) { s.SetSpeed(-inf) }},
		{"steer nan", func(s *Simulator) { s.SetSteer(nan) }},
		{"pointer nan x", func(s *Simulator) { s.OnPointerMove(nan, 100) }},
		{"pointer nan width", func(s *Simulator) { s.OnPointerMove(50, nan) }},
		{"pointer inf width", func(s *Simulator) { s.OnPointerMove(50, inf) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulator(quietParams(), constNoise(0.5))
			sim.SetSpeed(20)
			sim.ResetLean(5)
			tt.apply(sim)

			st := sim.State()
			if st.Speed != 20 || st.SteerAngle != 0 {
				t.Fatalf("state after input = speed %v steer %v, expected 20 and 0", st.Speed, st.SteerAngle)
			}
			for i := 0; i < 1000 && !sim.Tick(); i++ {
			}
			if st := sim.State(); st.Running || st.Score != 39 || st.CrashReason != FellRight {
				t.Errorf("run after input = %+v, expected FellRight at 39", st)
			}
		})
	}
}

func TestSetSteerInfiniteClamps(t *testing.T) {
	sim := NewSimulator(quietParams(), constNoise(0.5))
	sim.ResetLean(0)

	sim.SetSteer(math.Inf(-1))
	if got := sim.State().SteerAngle; got != -30 {
		t.Errorf("SetSteer(-Inf) -> %v, expected -30", got)
	}
}

func TestInputIgnoredWhileCrashed(t *testing.T) {
	sim := NewSimulator(quietParams(), constNoise(0.5))
	sim.SetSpeed(20)
	sim.ResetLean(44)
	sim.OnPointerMove(60, 100)
	for sim.State().Running {
		sim.Tick()
	}
	steer := sim.State().SteerAngle

	sim.OnPointerMove(0, 100)
	sim.SetSteer(-20)

	if got := sim.State().SteerAngle; got != steer {
		t.Errorf("SteerAngle = %v after crash, expected %v", got, steer)
	}
}

func TestSetSteerClamps(t *testing.T) {
	sim := NewSimulator(quietParams(), constNoise(0.5))
	sim.ResetLean(0)

	sim.SetSteer(90)
	if got := sim.State().SteerAngle; got != 30 {
		t.Errorf("SetSteer(90) -> %v, expected 30", got)
	}
	sim.SetSteer(-90)
	if got := sim.State().SteerAngle; got != -30 {
		t.Errorf("SetSteer(-90) -> %v, expected -30", got)
	}
}
