// Package feed streams loop snapshots to external renderers over
// WebSocket and accepts their pointer, speed and reset input.
//
// Every frame is a JSON envelope {"t": type, "p": payload}.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-balance/internal/balance"
)

// Message types.
const (
	MsgWelcome = "welcome" // server -> client, once after connect
	MsgState   = "state"   // server -> client, every published snapshot
	MsgCrash   = "crash"   // server -> client, once per run
	MsgPointer = "pointer" // client -> server
	MsgSpeed   = "speed"   // client -> server
	MsgReset   = "reset"   // client -> server, no payload
)

// ErrEmptyFrame is returned when decoding a zero-length frame.
var ErrEmptyFrame = errors.New("feed: empty frame")

// Envelope wraps every message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

// Welcome describes the scenario to a new client.
type Welcome struct {
	TickHz         int     `json:"tickHz"`
	CrashThreshold float64 `json:"crashThreshold"`
	SteerLimit     float64 `json:"steerLimit"`
	MinSpeed       float64 `json:"minSpeed"`
	MaxSpeed       float64 `json:"maxSpeed"`
}

// State is the wire form of a snapshot.
type State struct {
	Tick        int     `json:"tick"`
	Lean        float64 `json:"lean"`
	Steer       float64 `json:"steer"`
	Speed       float64 `json:"speed"`
	Running     bool    `json:"running"`
	Crash       string  `json:"crash,omitempty"`
	Gravity     float64 `json:"gravityTorque"`
	Centrifugal float64 `json:"centrifugalTorque"`
}

// Crash announces the end of a run.
type Crash struct {
	Reason string `json:"reason"`
	Score  int    `json:"score"`
}

// Pointer is a horizontal pointer position over a surface of width W.
type Pointer struct {
	X float64 `json:"x"`
	W float64 `json:"w"`
}

// Speed requests a new speed. The loop clamps it.
type Speed struct {
	V float64 `json:"v"`
}

// NewState converts a snapshot to its wire form.
func NewState(s balance.Snapshot) State {
	st := State{
		Tick:        s.Score,
		Lean:        s.LeanAngle,
		Steer:       s.SteerAngle,
		Speed:       s.Speed,
		Running:     s.Running,
		Gravity:     s.Torque.Gravity,
		Centrifugal: s.Torque.Centrifugal,
	}
	if !s.Running {
		st.Crash = s.CrashReason.String()
	}
	return st
}

// Encode builds an envelope frame. A nil payload omits "p".
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("feed: encode: empty message type")
	}
	env := Envelope{T: t}
	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("feed: encode %s: %w", t, err)
		}
		env.P = pb
	}
	return json.Marshal(env)
}

// DecodeEnvelope parses a frame without touching the payload.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyFrame
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("feed: decode envelope: %w", err)
	}
	return e, nil
}

// DecodePayload parses the payload of env into T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("feed: empty payload for type %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("feed: decode %s payload: %w", env.T, err)
	}
	return out, nil
}
