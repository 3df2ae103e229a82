// Package trace records per-tick snapshots of a run and exports them as
// CSV, terminal charts and PNG plots.
package trace

import "github.com/vovakirdan/tui-balance/internal/balance"

// Point is one recorded tick.
type Point struct {
	Tick        int
	Lean        float64
	Steer       float64
	Speed       float64
	Gravity     float64
	Centrifugal float64
	Running     bool
	Crash       balance.CrashReason
}

// Recorder collects published snapshots. Register Observe with
// balance.WithObserver. A positive limit keeps only the newest points.
type Recorder struct {
	points []Point
	limit  int
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Observe appends a snapshot.
func (r *Recorder) Observe(s balance.Snapshot) {
	r.points = append(r.points, Point{
		Tick:        s.Score,
		Lean:        s.LeanAngle,
		Steer:       s.SteerAngle,
		Speed:       s.Speed,
		Gravity:     s.Torque.Gravity,
		Centrifugal: s.Torque.Centrifugal,
		Running:     s.Running,
		Crash:       s.CrashReason,
	})
	if r.limit > 0 && len(r.points) > r.limit {
		n := copy(r.points, r.points[len(r.points)-r.limit:])
		r.points = r.points[:n]
	}
}

// Points returns a copy of the recorded points, oldest first.
func (r *Recorder) Points() []Point {
	out := make([]Point, len(r.points))
	copy(out, r.points)
	return out
}

// Len returns the number of recorded points.
func (r *Recorder) Len() int {
	return len(r.points)
}

// Last returns the newest point.
func (r *Recorder) Last() (Point, bool) {
	if len(r.points) == 0 {
		return Point{}, false
	}
	return r.points[len(r.points)-1], true
}

// Reset drops all points.
func (r *Recorder) Reset() {
	r.points = r.points[:0]
}

// Lean returns the lean series.
func (r *Recorder) Lean() []float64 {
	return Series(r.points, func(p Point) float64 { return p.Lean })
}

// Series extracts one value per point.
func Series(points []Point, f func(Point) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}
