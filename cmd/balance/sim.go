package main

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/balance"
	"github.com/vovakirdan/tui-balance/internal/config"
	"github.com/vovakirdan/tui-balance/internal/control"
	"github.com/vovakirdan/tui-balance/internal/trace"
)

var (
	flagSimTicks     int
	flagSimSteer     float64
	flagSimAutopilot bool
	flagSimSpeed     float64
	flagSimLean      float64
	flagSimCSV       string
	flagSimPNG       string
	flagSimScaled    bool
	flagSimJitter    float64
	flagSimMode      string
	flagSimWidth     int
	flagSimHeight    int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless and chart the lean angle",
	Long: `Run the balance simulation without a terminal UI.

The run lasts --ticks ticks or until the vehicle falls. Steering is either
fixed (--steer) or computed by the autopilot (--autopilot). With --mode the
scripted wobble or cornering demonstration is sampled instead.

--scaled switches to delta-time stepping; --jitter randomizes the simulated
frame interval by up to that fraction to show its effect.

Examples:
  balance sim
  balance sim --seed 7 --autopilot --ticks 1200
  balance sim --lean 5 --steer 0 --csv run.csv --png run.png
  balance sim --scaled --jitter 0.5 --autopilot
  balance sim --mode wobble --ticks 300`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	f := simCmd.Flags()
	f.IntVar(&flagSimTicks, "ticks", 600, "Maximum number of ticks")
	f.Float64Var(&flagSimSteer, "steer", 0, "Fixed steer angle in degrees")
	f.BoolVar(&flagSimAutopilot, "autopilot", false, "Steer with the PD autopilot")
	f.Float64Var(&flagSimSpeed, "speed", 0, "Speed (0 = configured initial speed)")
	f.Float64Var(&flagSimLean, "lean", 0, "Exact start lean in degrees (default: random within the spread)")
	f.StringVar(&flagSimCSV, "csv", "", "Write the per-tick trace to this CSV file")
	f.StringVar(&flagSimPNG, "png", "", "Plot lean and steer to this PNG file")
	f.BoolVar(&flagSimScaled, "scaled", false, "Use delta-time scaled steps")
	f.Float64Var(&flagSimJitter, "jitter", 0, "Frame interval jitter fraction for --scaled (0-1)")
	f.StringVar(&flagSimMode, "mode", "", "Sample a scripted mode instead: wobble or cornering")
	f.IntVar(&flagSimWidth, "width", 72, "Chart width in columns")
	f.IntVar(&flagSimHeight, "height", 12, "Chart height in rows")
}

// simOptions are the knobs of one headless run.
type simOptions struct {
	Ticks     int
	TickRate  int
	Seed      int64
	Steer     float64
	Autopilot bool
	Speed     float64 // 0 uses the configured initial speed
	Lean      *float64
	Scaled    bool
	Jitter    float64
}

// simResult is the outcome of a headless run.
type simResult struct {
	Points []trace.Point
	Final  balance.Snapshot
	Ticks  int // scheduler firings, including the crash tick
}

// simulate drives a loop controller synchronously through a manual
// scheduler. Scaled runs get a simulated clock so they stay deterministic.
// checkFinite rejects NaN and infinite flag values by name.
func checkFinite(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := values[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("--%s must be a finite number, got %v", name, v)
		}
	}
	return nil
}

func simulate(cfg config.Config, opts simOptions, logger *log.Logger) simResult {
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.Loop.TickRate
	}
	mode, err := cfg.StepMode()
	if err != nil {
		mode = balance.StepFixed
	}
	if opts.Scaled {
		mode = balance.StepScaled
	}

	sched := &balance.ManualScheduler{}
	rec := trace.NewRecorder(0)

	nominal := time.Second / time.Duration(opts.TickRate)
	now := time.Unix(0, 0)
	jitter := rand.New(rand.NewSource(opts.Seed))

	sim := balance.NewSimulator(cfg.Params(), balance.NewNoise(opts.Seed))
	loop := balance.NewLoop(sim, opts.TickRate,
		balance.WithScheduler(sched),
		balance.WithStepMode(mode),
		balance.WithClock(func() time.Time { return now }),
		balance.WithLogger(logger),
		balance.WithObserver(rec.Observe),
	)

	speed := opts.Speed
	if speed == 0 {
		speed = cfg.Speed.Initial
	}
	if opts.Lean != nil {
		sim.SetSpeed(speed)
		loop.ResetLean(*opts.Lean)
	} else {
		loop.Start(speed)
	}

	pilot := control.NewPD(cfg.Autopilot.Kp, cfg.Autopilot.Kd)
	if !opts.Autopilot {
		loop.SetSteer(opts.Steer)
	}

	fired := 0
	for fired < opts.Ticks {
		if opts.Autopilot {
			live := loop.Live()
			p := loop.Params()
			loop.SetSteer(pilot.Steer(live.LeanAngle, live.Speed, p.RightingFactor, p.SteerLimit))
		}
		step := nominal
		if opts.Jitter > 0 {
			step = time.Duration(float64(nominal) * (1 + opts.Jitter*(2*jitter.Float64()-1)))
		}
		now = now.Add(step)

		if !sched.Fire() {
			break
		}
		fired++
	}

	return simResult{Points: rec.Points(), Final: loop.Snapshot(), Ticks: fired}
}

// sampleMode evaluates a scripted trajectory tick by tick.
func sampleMode(mode balance.Mode, ticks, tickRate int) []trace.Point {
	tr := balance.NewTrajectory(mode)
	dt := 1 / float64(tickRate)
	points := make([]trace.Point, 0, ticks)
	for i := range ticks {
		s := tr.Current()
		points = append(points, trace.Point{
			Tick:        i,
			Lean:        s.LeanAngle,
			Steer:       s.SteerAngle,
			Gravity:     s.GravityTorque,
			Centrifugal: s.CentrifugalTorque,
			Running:     true,
		})
		tr.Advance(dt)
	}
	return points
}

func runSim(cmd *cobra.Command, _ []string) {
	logger := newLogger("sim")

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	tickRate := cfg.Loop.TickRate
	if cmd.Flags().Changed("fps") {
		tickRate = flagFPS
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if err := checkFinite(map[string]float64{
		"steer":  flagSimSteer,
		"speed":  flagSimSpeed,
		"lean":   flagSimLean,
		"jitter": flagSimJitter,
	}); err != nil {
		fail("%v", err)
	}

	var points []trace.Point
	if flagSimMode != "" {
		mode, err := balance.ParseMode(flagSimMode)
		if err != nil {
			fail("%v", err)
		}
		points = sampleMode(mode, flagSimTicks, tickRate)
		fmt.Printf("Scripted %s, %d ticks at %d Hz\n\n", mode, flagSimTicks, tickRate)
	} else {
		opts := simOptions{
			Ticks:     flagSimTicks,
			TickRate:  tickRate,
			Seed:      seed,
			Steer:     flagSimSteer,
			Autopilot: flagSimAutopilot,
			Speed:     flagSimSpeed,
			Scaled:    flagSimScaled,
			Jitter:    math.Min(math.Abs(flagSimJitter), 1),
		}
		if cmd.Flags().Changed("lean") {
			lean := flagSimLean
			opts.Lean = &lean
		}
		res := simulate(cfg, opts, logger)
		points = res.Points
		printSimSummary(res, seed)
	}

	chart := trace.PlotASCII(trace.Series(points, func(p trace.Point) float64 { return p.Lean }), trace.ChartOptions{
		Width:   flagSimWidth,
		Height:  flagSimHeight,
		Caption: "lean angle (deg)",
		Bound:   cfg.Physics.CrashThreshold,
	})
	if chart != "" {
		fmt.Println(chart)
		fmt.Println()
	}

	if flagSimCSV != "" {
		if err := trace.SaveCSV(flagSimCSV, points); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Trace written to %s\n", flagSimCSV)
	}
	if flagSimPNG != "" {
		if err := trace.SavePNG(flagSimPNG, points, tickRate, cfg.Physics.CrashThreshold); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Plot written to %s\n", flagSimPNG)
	}
}

func printSimSummary(res simResult, seed int64) {
	f := res.Final
	steering := fmt.Sprintf("steer %.1f deg", f.SteerAngle)
	if flagSimAutopilot {
		steering = "autopilot"
	}
	fmt.Printf("Seed %d, speed %.1f, %s\n", seed, f.Speed, steering)

	if !f.Running {
		fmt.Printf("%s after %d ticks (lean %.1f deg)\n\n", f.CrashReason.Label(), f.Score, f.LeanAngle)
		return
	}
	fmt.Printf("Still upright after %d ticks (lean %.2f deg)\n\n", f.Score, f.LeanAngle)
}
