package balance

import (
	"math/rand"
	"time"
)

// Noise is the random source behind road perturbations and the start lean.
// *rand.Rand satisfies it; tests inject seeded or scripted sources.
type Noise interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewNoise returns a seeded source. A zero seed uses the current time.
func NewNoise(seed int64) Noise {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// perturbation maps a unit sample onto [-amplitude/2, +amplitude/2).
func perturbation(src Noise, amplitude float64) float64 {
	return (src.Float64() - 0.5) * amplitude
}
