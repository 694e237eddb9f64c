package config

import (
	_ "embed"
)

//go:embed defaults/bubblepop.yaml
var defaultBubblePopYAML []byte

// Default returns the hardcoded bubble pop configuration.
// It mirrors defaults/bubblepop.yaml and is used when the embedded file fails to parse.
func Default() BubblePopConfig {
	return BubblePopConfig{
		Session: SessionConfig{
			MaxTimeSec:     60,
			StarThresholds: []int{200, 500, 1000},
		},
		Bubbles: BubbleConfig{
			MaxAgeSec: 15,
			Radius: SizeTable{
				Small:  22,
				Medium: 30,
				Large:  40,
			},
			SpeedFactors: SizeTable{
				Small:  1.25,
				Medium: 1.0,
				Large:  0.75,
			},
			Scores: ScoreTable{
				Color:   10,
				Item:    15,
				Special: 25,
				Avoider: -5,
			},
		},
		Spawner: SpawnerConfig{
			GracePeriodMs:     50,
			BurstCap:          3,
			MinIntervalMs:     100,
			MarginPx:          50,
			SpawnHeightRatio:  0.8,
			DeterministicSeed: 12345,
		},
		Director: DirectorConfig{
			DropMs:  150,
			FloorMs: 250,
			RampMs:  45000,
		},
		Clock: ClockConfig{
			MaxDeltaSec:      0.1,
			SlowMoMultiplier: 0.5,
		},
		Particles: ParticleConfig{
			BurstCount:   8,
			SparkleCount: 5,
			Gravity:      200,
			MaxParticles: 256,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			RampScale:    1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBubblePopYAML
}
