// Package ride implements the interactive balance scene: the rider keeps
// the bike upright by steering into the fall with the mouse or keyboard.
package ride

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-balance/internal/balance"
	"github.com/vovakirdan/tui-balance/internal/config"
	"github.com/vovakirdan/tui-balance/internal/control"
	"github.com/vovakirdan/tui-balance/internal/core"
	"github.com/vovakirdan/tui-balance/internal/registry"
	"github.com/vovakirdan/tui-balance/internal/scenes/view"
	"github.com/vovakirdan/tui-balance/internal/trace"
)

// ID is the registry identifier of the ride scene.
const ID = "ride"

const (
	steerStep  = 3.0 // degrees per key press
	speedStep  = 2.5
	historyLen = 240 // ticks of lean kept for the chart
)

func init() {
	registry.Register(ID, func() registry.Scene { return New() })
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names leave the
// file values untouched.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to each run's loop controller.
func SetLogger(l *log.Logger) {
	logger = l
}

// Scene wraps a loop controller driven by a manual scheduler: every
// platform frame fires exactly one tick.
type Scene struct {
	runtime core.RuntimeConfig
	cfg     config.Config

	sched   *balance.ManualScheduler
	loop    *balance.Loop
	pilot   *control.PD
	history *trace.Recorder

	assist  bool // autopilot steering, kept across restarts
	crashed bool // set by the crash callback during the current Step
}

// New creates an idle ride scene. Call Reset before stepping it.
func New() *Scene {
	return &Scene{}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return ID
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Ride"
}

// Description returns a one-line summary.
func (s *Scene) Description() string {
	return "Keep the bike upright by steering into the fall"
}

// Reset starts a new run. The speed of the previous run is kept; the first
// run uses the configured initial speed.
func (s *Scene) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime

	cfg, err := config.Load(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	s.cfg = cfg

	speed := cfg.Speed.Initial
	if s.loop != nil {
		speed = s.loop.Live().Speed
	}

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Loop.TickRate
	}
	mode, err := cfg.StepMode()
	if err != nil {
		mode = balance.StepFixed
	}

	s.sched = &balance.ManualScheduler{}
	s.history = trace.NewRecorder(historyLen)
	s.pilot = control.NewPD(cfg.Autopilot.Kp, cfg.Autopilot.Kd)
	s.crashed = false

	sim := balance.NewSimulator(cfg.Params(), balance.NewNoise(runtime.Seed))
	s.loop = balance.NewLoop(sim, tickRate,
		balance.WithScheduler(s.sched),
		balance.WithStepMode(mode),
		balance.WithLogger(logger),
		balance.WithObserver(s.history.Observe),
		balance.OnCrash(func(balance.CrashReason) { s.crashed = true }),
	)
	s.loop.Start(speed)
}

// Step applies the frame's input and fires one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if s.loop == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionPause) && s.loop.Live().Running {
		if s.loop.Paused() {
			s.loop.Resume()
		} else {
			s.loop.Pause()
		}
	}
	if in.Has(core.ActionAssist) {
		s.assist = !s.assist
		s.pilot.Reset()
	}

	if in.Has(core.ActionSpeedUp) {
		s.loop.SetSpeed(s.loop.Live().Speed + speedStep)
	}
	if in.Has(core.ActionSpeedDown) {
		s.loop.SetSpeed(s.loop.Live().Speed - speedStep)
	}

	if in.Pointer != nil {
		s.loop.OnPointerMove(in.Pointer.X, in.Pointer.Width)
	}
	if in.Has(core.ActionSteerLeft) {
		s.loop.NudgeSteer(-steerStep)
	}
	if in.Has(core.ActionSteerRight) {
		s.loop.NudgeSteer(steerStep)
	}

	// The autopilot writes last so it wins over manual input this tick.
	if s.assist && !s.loop.Paused() {
		if live := s.loop.Live(); live.Running {
			p := s.loop.Params()
			s.loop.SetSteer(s.pilot.Steer(live.LeanAngle, live.Speed, p.RightingFactor, p.SteerLimit))
		}
	}

	s.crashed = false
	s.sched.Fire()

	return core.StepResult{State: s.State(), Crashed: s.crashed}
}

// Snapshot returns the last published simulation snapshot.
func (s *Scene) Snapshot() balance.Snapshot {
	if s.loop == nil {
		return balance.Snapshot{}
	}
	return s.loop.Snapshot()
}

// Assist reports whether the autopilot is steering.
func (s *Scene) Assist() bool {
	return s.assist
}

// Render draws the current state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()
	if s.loop == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	snap := s.loop.Snapshot()
	p := s.loop.Params()

	groundY := h - 5
	length := core.Clamp(h-12, 4, 14)
	view.Ground(dst, groundY+1)
	view.Bike(dst, w/2, groundY, length, snap.LeanAngle, snap.SteerAngle, p.CrashThreshold)

	// Draw HUD
	hud := fmt.Sprintf(" Score: %d  Speed: %.1f  Lean: %+.1f°  Steer: %+.1f° ",
		snap.Score, snap.Speed, snap.LeanAngle, snap.SteerAngle)
	dst.DrawText(2, 0, hud)

	flags := ""
	if s.assist {
		flags += " [AUTO]"
	}
	if s.loop.Paused() {
		flags += " [PAUSED]"
	}
	if flags != "" {
		dst.DrawTextColored(w-len(flags)-2, 0, flags, core.ColorYellow)
	}

	full := p.CrashThreshold * balance.GravityTorqueScale
	view.TorqueBars(dst, 2, h-3, core.Clamp(w-20, 0, 40), snap.Torque.Gravity, snap.Torque.Centrifugal, full)

	// Lean history chart
	if w >= 90 && h >= 20 {
		chart := trace.PlotASCII(trace.Tail(s.history.Lean(), 60), trace.ChartOptions{
			Height:  6,
			Width:   30,
			Caption: "lean (deg)",
		})
		view.Block(dst, w-46, 2, chart, core.ColorBrightBlue)
	}

	if s.loop.Paused() {
		view.CenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if !snap.Running {
		view.CenteredMessage(dst, "CRASH: "+snap.CrashReason.Label(),
			fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	}
}

// State returns the current scene state.
func (s *Scene) State() core.GameState {
	if s.loop == nil {
		return core.GameState{}
	}
	snap := s.loop.Snapshot()
	st := core.GameState{
		Score:    snap.Score,
		GameOver: !snap.Running,
		Paused:   s.loop.Paused(),
		Speed:    snap.Speed,
	}
	if st.GameOver {
		st.Outcome = snap.CrashReason.String()
	}
	return st
}
