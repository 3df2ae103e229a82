package balance

import (
	"errors"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		ok     bool
	}{
		{"defaults", func(*Params) {}, true},
		{"zero threshold", func(p *Params) { p.CrashThreshold = 0 }, false},
		{"zero steer limit", func(p *Params) { p.SteerLimit = 0 }, false},
		{"zero damping", func(p *Params) { p.DampingFactor = 0 }, false},
		{"negative noise", func(p *Params) { p.NoiseAmplitude = -1 }, false},
		{"inverted speed range", func(p *Params) { p.MinSpeed, p.MaxSpeed = 50, 5 }, false},
		{"spread beyond threshold", func(p *Params) { p.InitialLeanSpread = 45 }, false},
		{"no noise", func(p *Params) { p.NoiseAmplitude = 0 }, true},
		{"stopped allowed", func(p *Params) { p.MinSpeed = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("Validate() = %v, expected ErrInvalidParams", err)
			}
		})
	}
}

func TestCrashReasonString(t *testing.T) {
	tests := []struct {
		reason   CrashReason
		expected string
	}{
		{CrashNone, "none"},
		{FellLeft, "fell_left"},
		{FellRight, "fell_right"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestStateTorque(t *testing.T) {
	s := State{LeanAngle: -10, SteerAngle: 10, Speed: 20}

	if got := s.CentrifugalForce(); !near(got, -10) {
		t.Errorf("CentrifugalForce() = %v, expected -10", got)
	}

	tq := s.Torque()
	if !near(tq.Gravity, 30) {
		t.Errorf("Torque().Gravity = %v, expected 30", tq.Gravity)
	}
	if !near(tq.Centrifugal, 8) {
		t.Errorf("Torque().Centrifugal = %v, expected 8", tq.Centrifugal)
	}
}
