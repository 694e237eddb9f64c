package core

import (
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
)

// DirectorSettings configures a difficulty ramp.
type DirectorSettings struct {
	MinInterval  time.Duration // fastest interval, reached at the end of the ramp
	MaxInterval  time.Duration // slowest interval, at the start of the ramp
	RampDuration time.Duration
	InitialLevel float64 // 0..1, how far into the ramp a run starts
	Enabled      bool
}

// SessionDirectorSettings derives the ramp for a level interval:
// from interval down to max(floor, interval-drop) over the configured ramp.
func SessionDirectorSettings(interval time.Duration, cfg config.DirectorConfig, diff config.DifficultyConfig) DirectorSettings {
	drop := time.Duration(cfg.DropMs) * time.Millisecond
	floor := time.Duration(cfg.FloorMs) * time.Millisecond
	scale := diff.RampScale
	if scale <= 0 {
		scale = 1
	}
	return DirectorSettings{
		MinInterval:  max(floor, interval-drop),
		MaxInterval:  interval,
		RampDuration: time.Duration(float64(cfg.Ramp()) * scale),
		InitialLevel: diff.InitialLevel,
		Enabled:      diff.Enabled,
	}
}

// Director ramps the spawn interval down over time. It holds no state
// besides the ramp start.
type Director struct {
	settings DirectorSettings
	start    time.Time
}

// NewDirector creates a director whose ramp starts at now.
// Swapped bounds are corrected.
func NewDirector(s DirectorSettings, now time.Time) *Director {
	if s.MinInterval > s.MaxInterval {
		s.MinInterval, s.MaxInterval = s.MaxInterval, s.MinInterval
	}
	s.InitialLevel = min(max(s.InitialLevel, 0), 1)
	return &Director{settings: s, start: now}
}

// Settings returns the effective settings.
func (d *Director) Settings() DirectorSettings {
	return d.settings
}

// Reset restarts the ramp at now.
func (d *Director) Reset(now time.Time) {
	d.start = now
}

// Shift moves the ramp start forward by p, used after a pause.
func (d *Director) Shift(p time.Duration) {
	if p > 0 {
		d.start = d.start.Add(p)
	}
}

// Elapsed returns the time since the ramp started, never negative.
func (d *Director) Elapsed(now time.Time) time.Duration {
	return max(now.Sub(d.start), 0)
}

// Progress returns the ramp position in [0, 1] at now.
func (d *Director) Progress(now time.Time) float64 {
	if !d.settings.Enabled {
		return 0
	}
	t := 1.0
	if d.settings.RampDuration > 0 {
		t = d.settings.InitialLevel + float64(d.Elapsed(now))/float64(d.settings.RampDuration)
	}
	return platformcore.ClampF(t, 0, 1)
}

// CurrentInterval linearly interpolates from MaxInterval to MinInterval
// across the ramp. It never increases as now advances.
func (d *Director) CurrentInterval(now time.Time) time.Duration {
	if !d.settings.Enabled {
		return d.settings.MaxInterval
	}
	lo, hi := float64(d.settings.MinInterval), float64(d.settings.MaxInterval)
	return time.Duration(platformcore.Lerp(hi, lo, d.Progress(now)))
}
