package balance

import (
	"math"

	"github.com/vovakirdan/tui-balance/internal/core"
)

// Simulator advances the interactive balance model one tick at a time.
// It is not safe for concurrent use; the Loop serializes all access.
type Simulator struct {
	params Params
	noise  Noise
	state  State
}

// NewSimulator creates a simulator for the given scenario. A nil noise
// source falls back to a time-seeded one. The returned simulator is idle
// (Running is false) until Start or Reset is called.
func NewSimulator(p Params, noise Noise) *Simulator {
	if noise == nil {
		noise = NewNoise(0)
	}
	return &Simulator{
		params: p,
		noise:  noise,
		state:  State{Speed: core.ClampF(DefaultInitialSpeed, p.MinSpeed, p.MaxSpeed)},
	}
}

// Params returns the scenario parameters.
func (s *Simulator) Params() Params {
	return s.params
}

// State returns a copy of the current state.
func (s *Simulator) State() State {
	return s.state
}

// Start sets the speed and begins a fresh run.
func (s *Simulator) Start(speed float64) {
	s.SetSpeed(speed)
	s.Reset()
}

// Reset begins a fresh run with a small random lean drawn uniformly from
// [-InitialLeanSpread, +InitialLeanSpread]. Speed is kept.
func (s *Simulator) Reset() {
	spread := s.params.InitialLeanSpread
	s.ResetLean(s.noise.Float64()*2*spread - spread)
}

// ResetLean begins a fresh run from an exact lean angle. A non-finite
// lean starts upright.
func (s *Simulator) ResetLean(lean float64) {
	if !finite(lean) {
		lean = 0
	}
	s.state = State{
		LeanAngle: lean,
		Speed:     s.state.Speed,
		Running:   true,
	}
}

// SetSpeed clamps v into the configured speed range. Speed belongs to the
// outer configuration, so it may change while crashed. Non-finite values
// are ignored.
func (s *Simulator) SetSpeed(v float64) {
	if !finite(v) {
		return
	}
	s.state.Speed = core.ClampF(v, s.params.MinSpeed, s.params.MaxSpeed)
}

// Tick advances the run by one fixed step. It reports true exactly on the
// tick that ends the run. Calling Tick after a crash changes nothing.
func (s *Simulator) Tick() bool {
	return s.step(1)
}

// TickScaled advances the run by ratio nominal steps, for hosts that scale
// by real elapsed time. Growth, correction and noise scale linearly with
// ratio and damping is applied as DampingFactor^ratio, so ratio 1 is
// identical to Tick. Score still increases by one.
func (s *Simulator) TickScaled(ratio float64) bool {
	if !finite(ratio) || ratio <= 0 {
		return false
	}
	return s.step(ratio)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s *Simulator) step(ratio float64) bool {
	if !s.state.Running {
		return false
	}
	p := s.params
	lean := s.state.LeanAngle

	deltaLean := lean * p.GravityFactor * ratio
	correction := s.state.SteerAngle * s.state.Speed * p.RightingFactor * ratio

	next := (lean + deltaLean - correction) * math.Pow(p.DampingFactor, ratio)

	// Road micro-disturbance. A stopped vehicle is fully deterministic.
	if s.state.Speed > 0 && p.NoiseAmplitude > 0 {
		next += perturbation(s.noise, p.NoiseAmplitude) * ratio
	}

	s.state.LeanAngle = next
	s.state.Score++

	if math.Abs(next) > p.CrashThreshold {
		s.state.Running = false
		if next > 0 {
			s.state.CrashReason = FellRight
		} else {
			s.state.CrashReason = FellLeft
		}
		return true
	}
	return false
}
