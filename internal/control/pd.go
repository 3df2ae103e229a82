// Package control provides the autopilot that can hold the bike upright.
//
// The controller works in lean space: it computes the lean correction it
// wants this tick and converts that into a handlebar angle using the
// scenario's righting factor and the current speed.
//
//	pilot := control.NewPD(control.DefaultKp, control.DefaultKd)
//	steer := pilot.Steer(lean, speed, params.RightingFactor, params.SteerLimit)
package control

import "github.com/vovakirdan/tui-balance/internal/core"

// Gains that settle the default scenario in well under a second at 60 Hz.
const (
	DefaultKp = 0.16
	DefaultKd = 0.32
)

// PD is a proportional-derivative lean controller. The derivative term uses
// the lean change between consecutive calls, so it must be called once per
// simulation tick.
type PD struct {
	Kp float64
	Kd float64

	prevLean float64
	primed   bool
}

func NewPD(kp, kd float64) *PD {
	return &PD{Kp: kp, Kd: kd}
}

// Steer returns the handlebar angle, clamped to ±limit, that pulls lean
// back toward zero. A stopped vehicle cannot be steered upright, so it
// returns 0.
func (p *PD) Steer(lean, speed, rightingFactor, limit float64) float64 {
	rate := 0.0
	if p.primed {
		rate = lean - p.prevLean
	}
	p.prevLean = lean
	p.primed = true

	authority := speed * rightingFactor
	if authority == 0 {
		return 0
	}
	u := p.Kp*lean + p.Kd*rate
	return core.ClampF(u/authority, -limit, limit)
}

// Reset clears derivative state. Call it when a new run begins.
func (p *PD) Reset() {
	p.prevLean = 0
	p.primed = false
}

// GetParams returns tunable gains for display.
func (p *PD) GetParams() map[string]float64 {
	return map[string]float64{"kp": p.Kp, "kd": p.Kd}
}

// SetParam adjusts a gain by name. Unknown names are ignored.
func (p *PD) SetParam(name string, value float64) {
	switch name {
	case "kp":
		p.Kp = value
	case "kd":
		p.Kd = value
	}
}
