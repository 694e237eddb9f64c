package core

import (
	"errors"
	"time"
)

// MaxLevel is the highest playable level number.
const MaxLevel = 20

// ErrUnknownLevel is returned for level numbers outside 1..MaxLevel.
var ErrUnknownLevel = errors.New("unknown level")

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW       int   // Screen width in characters
	ScreenH       int   // Screen height in characters
	TickRate      int   // Frames per second requested from the host (default 60)
	Seed          int64 // RNG seed; 0 means use current time in platform layer
	Deterministic bool  // Start with the fixed-seed spawner RNG
	Level         int   // Level number, 1..MaxLevel
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Level:    1,
	}
}

// ValidLevel reports whether level is a playable level number.
func ValidLevel(level int) bool {
	return level >= 1 && level <= MaxLevel
}

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score         int           // Current score
	GameOver      bool          // Whether the run has ended
	Completed     bool          // Whether the run ended with all objectives met
	Paused        bool          // Whether the run is paused
	TimeRemaining time.Duration // Countdown until the run times out
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	// Finished is set on the single frame where the run ended.
	Finished bool
}
