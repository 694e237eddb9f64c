package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "bubblepop.yaml"

// Load loads the bubble pop configuration.
// Search order: customPath -> ~/.bubblepop/configs/bubblepop.yaml -> ./configs/bubblepop.yaml -> embedded default
// The returned config is always sanitized.
func Load(customPath string) (BubblePopConfig, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		cfg.Sanitize()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(ConfigFile); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", ConfigFile)); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBubblePopYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Sanitize()
	return cfg, nil
}

// tryLoad reads and parses a config file on top of the defaults.
func tryLoad(path string) (BubblePopConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BubblePopConfig{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BubblePopConfig{}, false
	}
	cfg.Sanitize()
	return cfg, true
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bubblepop", "configs", filename)
}

// Sanitize clamps every field into a playable range.
// Invalid tuning is repaired rather than rejected.
func (c *BubblePopConfig) Sanitize() {
	def := Default()

	if c.Session.MaxTimeSec <= 0 {
		c.Session.MaxTimeSec = def.Session.MaxTimeSec
	}
	if len(c.Session.StarThresholds) == 0 {
		c.Session.StarThresholds = def.Session.StarThresholds
	}
	sort.Ints(c.Session.StarThresholds)

	if c.Bubbles.MaxAgeSec <= 0 {
		c.Bubbles.MaxAgeSec = def.Bubbles.MaxAgeSec
	}
	c.Bubbles.Radius = positiveTable(c.Bubbles.Radius, def.Bubbles.Radius)
	c.Bubbles.SpeedFactors = positiveTable(c.Bubbles.SpeedFactors, def.Bubbles.SpeedFactors)

	if c.Spawner.GracePeriodMs < 0 {
		c.Spawner.GracePeriodMs = def.Spawner.GracePeriodMs
	}
	if c.Spawner.BurstCap < 1 {
		c.Spawner.BurstCap = def.Spawner.BurstCap
	}
	if c.Spawner.MinIntervalMs < 1 {
		c.Spawner.MinIntervalMs = def.Spawner.MinIntervalMs
	}
	if c.Spawner.MarginPx < 0 {
		c.Spawner.MarginPx = 0
	}
	if c.Spawner.SpawnHeightRatio <= 0 || c.Spawner.SpawnHeightRatio > 1 {
		c.Spawner.SpawnHeightRatio = def.Spawner.SpawnHeightRatio
	}
	if c.Spawner.DeterministicSeed == 0 {
		c.Spawner.DeterministicSeed = def.Spawner.DeterministicSeed
	}

	if c.Director.DropMs < 0 {
		c.Director.DropMs = 0
	}
	if c.Director.FloorMs < c.Spawner.MinIntervalMs {
		c.Director.FloorMs = c.Spawner.MinIntervalMs
	}
	if c.Director.RampMs <= 0 {
		c.Director.RampMs = def.Director.RampMs
	}

	if c.Clock.MaxDeltaSec <= 0 {
		c.Clock.MaxDeltaSec = def.Clock.MaxDeltaSec
	}
	c.Clock.SlowMoMultiplier = clampF(c.Clock.SlowMoMultiplier, 0.1, 1.0)

	if c.Particles.BurstCount < 0 {
		c.Particles.BurstCount = 0
	}
	if c.Particles.SparkleCount < 0 {
		c.Particles.SparkleCount = 0
	}
	if c.Particles.MaxParticles <= 0 {
		c.Particles.MaxParticles = def.Particles.MaxParticles
	}

	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 0.0, 1.0)
	if c.Difficulty.RampScale <= 0 {
		c.Difficulty.RampScale = 1.0
	}
}

// positiveTable replaces non-positive entries with the fallback values.
func positiveTable(t, fallback SizeTable) SizeTable {
	if t.Small <= 0 {
		t.Small = fallback.Small
	}
	if t.Medium <= 0 {
		t.Medium = fallback.Medium
	}
	if t.Large <= 0 {
		t.Large = fallback.Large
	}
	return t
}
