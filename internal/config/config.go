// Package config provides YAML-based tuning for the bubble pop simulation and
// difficulty presets layered on top of it.
package config

import "time"

// BubblePopConfig contains all tunable parameters of a gameplay run.
type BubblePopConfig struct {
	Session    SessionConfig    `yaml:"session"`
	Bubbles    BubbleConfig     `yaml:"bubbles"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Director   DirectorConfig   `yaml:"director"`
	Clock      ClockConfig      `yaml:"clock"`
	Particles  ParticleConfig   `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SessionConfig defines the run timer and star thresholds.
type SessionConfig struct {
	MaxTimeSec     float64 `yaml:"max_time_sec"`
	StarThresholds []int   `yaml:"star_thresholds"` // Ascending score needed for 1, 2, 3 stars
}

// MaxTime returns the run length as a duration.
func (c SessionConfig) MaxTime() time.Duration {
	return secondsToDuration(c.MaxTimeSec)
}

// BubbleConfig defines bubble geometry and lifetime.
type BubbleConfig struct {
	MaxAgeSec    float64    `yaml:"max_age_sec"`
	Radius       SizeTable  `yaml:"radius"`
	SpeedFactors SizeTable  `yaml:"speed_factors"`
	Scores       ScoreTable `yaml:"scores"`
}

// SizeTable holds one value per bubble size class.
type SizeTable struct {
	Small  float64 `yaml:"small"`
	Medium float64 `yaml:"medium"`
	Large  float64 `yaml:"large"`
}

// ScoreTable holds the points awarded per bubble kind.
type ScoreTable struct {
	Color   int `yaml:"color"`
	Item    int `yaml:"item"`
	Special int `yaml:"special"`
	Avoider int `yaml:"avoider"`
}

// SpawnerConfig defines spawner timing and placement.
type SpawnerConfig struct {
	GracePeriodMs     int     `yaml:"grace_period_ms"`
	BurstCap          int     `yaml:"burst_cap"`
	MinIntervalMs     int     `yaml:"min_interval_ms"`
	MarginPx          float64 `yaml:"margin_px"`
	SpawnHeightRatio  float64 `yaml:"spawn_height_ratio"` // Fraction of screen height where bubbles appear
	DeterministicSeed uint32  `yaml:"deterministic_seed"`
}

// GracePeriod returns the anti-starvation grace period.
func (c SpawnerConfig) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodMs) * time.Millisecond
}

// MinInterval returns the lowest interval the spawner accepts.
func (c SpawnerConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMs) * time.Millisecond
}

// DirectorConfig defines how the spawn interval ramps during a run.
// The ramp goes from the level's interval down to max(FloorMs, interval-DropMs).
type DirectorConfig struct {
	DropMs  int `yaml:"drop_ms"`
	FloorMs int `yaml:"floor_ms"`
	RampMs  int `yaml:"ramp_ms"`
}

// Ramp returns the ramp duration.
func (c DirectorConfig) Ramp() time.Duration {
	return time.Duration(c.RampMs) * time.Millisecond
}

// ClockConfig defines the game clock delta handling.
type ClockConfig struct {
	MaxDeltaSec      float64 `yaml:"max_delta_sec"`
	SlowMoMultiplier float64 `yaml:"slow_mo_multiplier"`
}

// ParticleConfig defines the cosmetic pop effects.
type ParticleConfig struct {
	BurstCount   int     `yaml:"burst_count"`
	SparkleCount int     `yaml:"sparkle_count"`
	Gravity      float64 `yaml:"gravity"`
	MaxParticles int     `yaml:"max_particles"`
}

// DifficultyConfig defines the difficulty progression applied to the director.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = start of ramp, 1.0 = fully ramped
	RampScale    float64 `yaml:"ramp_scale"`    // Multiplier applied to the director ramp duration
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
