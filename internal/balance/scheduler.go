package balance

import (
	"context"
	"time"
)

// Scheduler invokes the loop's tick callback at a nominal cadence until
// stopped. Start and Stop are only called from the goroutine that runs
// the callback, so implementations need no locking.
type Scheduler interface {
	// Start begins (or resumes) invoking fn.
	Start(fn func())
	// Stop halts further invocations. No tick is in flight when Stop
	// returns because ticks run synchronously on the caller's goroutine.
	Stop()
	// Active reports whether invocations are currently scheduled.
	Active() bool
}

// ManualScheduler fires only when the host calls Fire. Hosts that own a
// frame clock (Bubble Tea, headless runs, tests) use it.
type ManualScheduler struct {
	fn     func()
	active bool
}

// Start implements Scheduler.
func (m *ManualScheduler) Start(fn func()) {
	m.fn = fn
	m.active = true
}

// Stop implements Scheduler.
func (m *ManualScheduler) Stop() {
	m.active = false
}

// Active implements Scheduler.
func (m *ManualScheduler) Active() bool {
	return m.active
}

// Fire runs one tick if the scheduler is active and reports whether it did.
func (m *ManualScheduler) Fire() bool {
	if !m.active || m.fn == nil {
		return false
	}
	m.fn()
	return true
}

// TickerScheduler drives ticks from a time.Ticker on a single goroutine,
// the one calling Run. Work from other goroutines (input, resets) is
// handed over with Do so that every state write happens on that goroutine.
type TickerScheduler struct {
	interval time.Duration
	tasks    chan func()

	ticker *time.Ticker
	tickC  <-chan time.Time
	fn     func()
	active bool
}

// NewTickerScheduler creates a scheduler ticking every interval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerScheduler{
		interval: interval,
		tasks:    make(chan func(), 64),
	}
}

// Start implements Scheduler.
func (t *TickerScheduler) Start(fn func()) {
	t.fn = fn
	if t.ticker == nil {
		t.ticker = time.NewTicker(t.interval)
	} else {
		t.ticker.Reset(t.interval)
	}
	t.tickC = t.ticker.C
	t.active = true
}

// Stop implements Scheduler.
func (t *TickerScheduler) Stop() {
	if t.ticker != nil {
		t.ticker.Stop()
	}
	t.tickC = nil
	t.active = false
}

// Active implements Scheduler.
func (t *TickerScheduler) Active() bool {
	return t.active
}

// Do queues task to run on the Run goroutine between ticks.
// It blocks until the task is queued or ctx is done.
func (t *TickerScheduler) Do(ctx context.Context, task func()) error {
	select {
	case t.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes ticks and queued tasks until ctx is canceled.
func (t *TickerScheduler) Run(ctx context.Context) error {
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.tickC:
			if t.fn != nil {
				t.fn()
			}
		case task := <-t.tasks:
			task()
		}
	}
}
