package core

import (
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
)

// Slow motion multiplier bounds.
const (
	MinSlowMoMultiplier = 0.1
	MaxSlowMoMultiplier = 1.0
)

// ClockState is a snapshot of the game clock.
type ClockState struct {
	Running          bool
	LastTick         time.Time
	LastDelta        float64 // seconds passed to the last update
	Frames           uint64
	SlowMo           bool
	SlowMoMultiplier float64
}

// Clock turns host frame callbacks into clamped simulation deltas.
// It owns no goroutine: the host calls Tick once per frame and schedules
// the next frame only while Running reports true.
type Clock struct {
	maxDelta   float64
	multiplier float64
	slowMo     bool

	running   bool
	lastTick  time.Time
	lastDelta float64
	frames    uint64

	onUpdate func(dt float64)
	onRender func(dt float64)
}

// NewClock creates a stopped clock. Either callback may be nil.
func NewClock(maxDelta, slowMoMultiplier float64, onUpdate, onRender func(dt float64)) *Clock {
	if maxDelta <= 0 {
		maxDelta = 0.1
	}
	c := &Clock{
		maxDelta: maxDelta,
		onUpdate: onUpdate,
		onRender: onRender,
	}
	c.SetSlowMoMultiplier(slowMoMultiplier)
	return c
}

// NewClockFromConfig creates a clock from the YAML tuning.
func NewClockFromConfig(cfg config.ClockConfig, onUpdate, onRender func(dt float64)) *Clock {
	return NewClock(cfg.MaxDeltaSec, cfg.SlowMoMultiplier, onUpdate, onRender)
}

// Start begins ticking from now. Calling Start on a running clock does nothing.
func (c *Clock) Start(now time.Time) {
	if c.running {
		return
	}
	c.running = true
	c.lastTick = now
	c.frames = 0
}

// Stop halts the clock. Safe to call repeatedly and from inside a callback.
func (c *Clock) Stop() {
	c.running = false
}

// Running reports whether the host should schedule another tick.
func (c *Clock) Running() bool {
	return c.running
}

// Tick runs one frame at now: update, then render.
// Returns false without calling anything once the clock is stopped.
func (c *Clock) Tick(now time.Time) bool {
	if !c.running {
		return false
	}
	dt := now.Sub(c.lastTick).Seconds()
	dt = platformcore.ClampF(dt, 0, c.maxDelta)
	if c.slowMo {
		dt *= c.multiplier
	}
	c.lastTick = now
	c.lastDelta = dt
	c.frames++

	if c.onUpdate != nil {
		c.onUpdate(dt)
	}
	if c.onRender != nil {
		c.onRender(dt)
	}
	return c.running
}

// SetSlowMo toggles slow motion.
func (c *Clock) SetSlowMo(enabled bool) {
	c.slowMo = enabled
}

// SlowMo reports whether slow motion is on.
func (c *Clock) SlowMo() bool {
	return c.slowMo
}

// SetSlowMoMultiplier sets the slow motion factor, clamped to [0.1, 1.0].
func (c *Clock) SetSlowMoMultiplier(m float64) {
	c.multiplier = platformcore.ClampF(m, MinSlowMoMultiplier, MaxSlowMoMultiplier)
}

// State returns a snapshot of the clock.
func (c *Clock) State() ClockState {
	return ClockState{
		Running:          c.running,
		LastTick:         c.lastTick,
		LastDelta:        c.lastDelta,
		Frames:           c.frames,
		SlowMo:           c.slowMo,
		SlowMoMultiplier: c.multiplier,
	}
}
