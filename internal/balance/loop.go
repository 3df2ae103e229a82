package balance

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-balance/internal/core"
)

// StepMode selects how a tick relates to wall-clock time.
type StepMode int

const (
	// StepFixed advances one nominal step per tick regardless of the time
	// between ticks. This is the default.
	StepFixed StepMode = iota
	// StepScaled scales each tick by the real time elapsed since the
	// previous one, relative to the nominal interval.
	StepScaled
)

// maxStepRatio caps a scaled step after a stall so one late tick cannot
// throw the rider over.
const maxStepRatio = 4.0

// String returns the mode identifier used in config files.
func (m StepMode) String() string {
	if m == StepScaled {
		return "scaled"
	}
	return "fixed"
}

// ParseStepMode resolves a step mode identifier. Empty means fixed.
func ParseStepMode(s string) (StepMode, error) {
	switch s {
	case "", "fixed":
		return StepFixed, nil
	case "scaled":
		return StepScaled, nil
	}
	return StepFixed, fmt.Errorf("balance: unknown step mode %q", s)
}

// Loop is the loop controller. It owns the scheduler, advances the
// simulator once per scheduled tick, reports the crash transition once per
// run and publishes a Snapshot for renderers.
//
// The Snapshot is published at the end of every tick and on every
// (re)start; that is the only point where renderers observe new state.
// A Loop is confined to one goroutine: the one running its scheduler.
type Loop struct {
	sim     *Simulator
	sched   Scheduler
	mode    StepMode
	nominal time.Duration
	now     func() time.Time
	last    time.Time

	onCrash   func(CrashReason)
	observers []func(Snapshot)
	logger    *log.Logger

	snap Snapshot
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithScheduler sets the tick scheduler. The default is a ManualScheduler.
func WithScheduler(s Scheduler) LoopOption {
	return func(l *Loop) { l.sched = s }
}

// WithStepMode opts into scaled stepping.
func WithStepMode(m StepMode) LoopOption {
	return func(l *Loop) { l.mode = m }
}

// WithClock overrides the time source used by StepScaled.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) { l.now = now }
}

// WithLogger sets the logger for run lifecycle events.
func WithLogger(logger *log.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// OnCrash registers the callback invoked once per run when it ends.
func OnCrash(fn func(CrashReason)) LoopOption {
	return func(l *Loop) { l.onCrash = fn }
}

// WithObserver registers a callback receiving every published Snapshot.
func WithObserver(fn func(Snapshot)) LoopOption {
	return func(l *Loop) { l.observers = append(l.observers, fn) }
}

// NewLoop creates a loop controller around sim. tickRate is the nominal
// number of ticks per second.
func NewLoop(sim *Simulator, tickRate int, opts ...LoopOption) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	l := &Loop{
		sim:     sim,
		nominal: time.Second / time.Duration(tickRate),
		now:     time.Now,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sched == nil {
		l.sched = &ManualScheduler{}
	}
	l.snap = newSnapshot(sim.State())
	return l
}

// Start begins a run at the given speed and starts the scheduler.
func (l *Loop) Start(speed float64) Snapshot {
	l.sim.Start(speed)
	return l.begin()
}

// Reset begins a fresh run with a random start lean, keeping the speed,
// and resumes the scheduler.
func (l *Loop) Reset() Snapshot {
	l.sim.Reset()
	return l.begin()
}

// ResetLean begins a fresh run from an exact lean angle.
func (l *Loop) ResetLean(lean float64) Snapshot {
	l.sim.ResetLean(lean)
	return l.begin()
}

func (l *Loop) begin() Snapshot {
	l.last = time.Time{}
	l.publish()
	l.logger.Debug("run started", "lean", l.snap.LeanAngle, "speed", l.snap.Speed, "step", l.mode)
	l.sched.Start(l.scheduled)
	return l.snap
}

func (l *Loop) scheduled() {
	l.Tick()
}

// Tick advances the simulation by one step and returns the published
// snapshot. After a crash it is a no-op returning the final snapshot.
func (l *Loop) Tick() Snapshot {
	crashed := l.advance()
	l.publish()

	if crashed {
		l.sched.Stop()
		l.logger.Debug("run ended",
			"reason", l.snap.CrashReason,
			"score", l.snap.Score,
			"lean", l.snap.LeanAngle,
		)
		if l.onCrash != nil {
			l.onCrash(l.snap.CrashReason)
		}
	}
	return l.snap
}

func (l *Loop) advance() bool {
	if l.mode != StepScaled {
		return l.sim.Tick()
	}

	now := l.now()
	ratio := 1.0
	if !l.last.IsZero() {
		ratio = core.ClampF(float64(now.Sub(l.last))/float64(l.nominal), 0, maxStepRatio)
	}
	l.last = now
	return l.sim.TickScaled(ratio)
}

func (l *Loop) publish() {
	l.snap = newSnapshot(l.sim.State())
	for _, obs := range l.observers {
		obs(l.snap)
	}
}

// Pause stops the scheduler without ending the run.
func (l *Loop) Pause() {
	l.sched.Stop()
}

// Resume restarts the scheduler if the run is still going.
func (l *Loop) Resume() {
	if !l.sim.State().Running || l.sched.Active() {
		return
	}
	l.last = time.Time{}
	l.sched.Start(l.scheduled)
}

// Paused reports whether a live run has its scheduler stopped.
func (l *Loop) Paused() bool {
	return l.sim.State().Running && !l.sched.Active()
}

// OnPointerMove feeds a pointer position to the input mapper.
func (l *Loop) OnPointerMove(x, surfaceWidth float64) {
	l.sim.OnPointerMove(x, surfaceWidth)
}

// SetSteer sets the steer angle from a non-pointer source.
func (l *Loop) SetSteer(deg float64) {
	l.sim.SetSteer(deg)
}

// NudgeSteer moves the steer angle by delta degrees.
func (l *Loop) NudgeSteer(delta float64) {
	l.sim.SetSteer(l.sim.State().SteerAngle + delta)
}

// SetSpeed clamps and sets the speed. While paused or crashed no tick will
// publish the change, so the snapshot is republished here.
func (l *Loop) SetSpeed(v float64) {
	l.sim.SetSpeed(v)
	if !l.sched.Active() {
		l.publish()
	}
}

// Snapshot returns the last published snapshot.
func (l *Loop) Snapshot() Snapshot {
	return l.snap
}

// Params returns the scenario parameters.
func (l *Loop) Params() Params {
	return l.sim.Params()
}

// Live returns the unpublished current state. Input sources such as the
// autopilot use it to act on the same values the next tick will see.
func (l *Loop) Live() State {
	return l.sim.State()
}

// Scheduler returns the loop's scheduler.
func (l *Loop) Scheduler() Scheduler {
	return l.sched
}
