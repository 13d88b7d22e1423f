package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
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

// TickInterval is the simulated wall time covered by one Step.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.rate())
}

// Ticks converts a duration to a whole number of ticks, rounding up so that a
// non-zero duration always lasts at least one tick.
func (c RuntimeConfig) Ticks(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((int64(d)*int64(c.rate()) + int64(time.Second) - 1) / int64(time.Second))
}

func (c RuntimeConfig) rate() int {
	if c.TickRate <= 0 {
		return 60
	}
	return c.TickRate
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
