package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic noise and start lean
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a scene.
// Returned by Scene.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Ticks survived in the current run
	GameOver bool   // Whether the run has ended (the rider fell)
	Paused   bool   // Whether the scheduler is stopped by the player
	Outcome  string // Crash reason once GameOver is set, empty otherwise

	// Speed is the vehicle speed, zero for scenes without one.
	Speed float64
}

// StepResult is returned by Scene.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Crashed is true only on the tick where the run ended.
	Crashed bool
}
