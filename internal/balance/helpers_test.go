package balance

import "math"

// constNoise always returns the same sample.
type constNoise float64

func (c constNoise) Float64() float64 { return float64(c) }

// quietParams disables noise so runs are reproducible without a seed.
func quietParams() Params {
	p := DefaultParams()
	p.NoiseAmplitude = 0
	return p
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
