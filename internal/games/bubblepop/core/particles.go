package core

import (
	"math"

	"github.com/vovakirdan/bubblepop/internal/config"
)

// Particle is a cosmetic fragment emitted when a bubble pops.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64
	MaxLife float64
	Size    float64
	Alpha   float64
	Color   BubbleColor
	Sparkle bool
}

// ParticleSystem owns the live particles of a run.
// It never influences score or objectives.
type ParticleSystem struct {
	particles []Particle
	rng       RNG
	gravity   float64
	capacity  int
	burst     int
	sparkle   int
	disabled  bool
}

// NewParticleSystem creates a particle system with the given tuning.
func NewParticleSystem(cfg config.ParticleConfig, rng RNG) *ParticleSystem {
	return &ParticleSystem{
		rng:      rng,
		gravity:  cfg.Gravity,
		capacity: max(cfg.MaxParticles, 1),
		burst:    cfg.BurstCount,
		sparkle:  cfg.SparkleCount,
	}
}

// SetDisabled turns emission off and drops live particles (reduce motion).
func (p *ParticleSystem) SetDisabled(disabled bool) {
	p.disabled = disabled
	if disabled {
		p.Clear()
	}
}

// Disabled reports whether emission is off.
func (p *ParticleSystem) Disabled() bool {
	return p.disabled
}

// Pop emits the standard burst and sparkle effects at a bubble position.
func (p *ParticleSystem) Pop(x, y float64, color BubbleColor) {
	p.Burst(x, y, color, p.burst)
	p.Sparkle(x, y, color, p.sparkle)
}

// Burst emits count particles on evenly spaced angles.
func (p *ParticleSystem) Burst(x, y float64, color BubbleColor, count int) {
	if p.disabled || count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2 * math.Pi
		speed := between(p.rng, 50, 150)
		p.add(Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			MaxLife: between(p.rng, 0.5, 1.0),
			Size:    between(p.rng, 3, 7),
			Alpha:   1,
			Color:   color,
		})
	}
}

// Sparkle emits count slower particles at random angles with an upward bias.
func (p *ParticleSystem) Sparkle(x, y float64, color BubbleColor, count int) {
	if p.disabled || count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		angle := p.rng.Float64() * 2 * math.Pi
		speed := between(p.rng, 20, 60)
		p.add(Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle)*speed - 20,
			MaxLife: between(p.rng, 0.3, 0.7),
			Size:    between(p.rng, 2, 5),
			Alpha:   1,
			Color:   color,
			Sparkle: true,
		})
	}
}

// add appends a particle, dropping the oldest ones when at capacity.
func (p *ParticleSystem) add(pt Particle) {
	if len(p.particles) >= p.capacity {
		over := len(p.particles) - p.capacity + 1
		p.particles = append(p.particles[:0], p.particles[over:]...)
	}
	p.particles = append(p.particles, pt)
}

// Update advances every particle by dt seconds and removes dead ones.
func (p *ParticleSystem) Update(dt float64) {
	dt = math.Max(dt, 0)
	alive := p.particles[:0]
	for _, pt := range p.particles {
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
		pt.Alpha = math.Max(0, 1-pt.Life/pt.MaxLife)
		pt.Life += dt
		pt.VY += p.gravity * dt
		if pt.Life < pt.MaxLife {
			alive = append(alive, pt)
		}
	}
	p.particles = alive
}

// Particles returns a copy of the live particles.
func (p *ParticleSystem) Particles() []Particle {
	out := make([]Particle, len(p.particles))
	copy(out, p.particles)
	return out
}

// Len returns the number of live particles.
func (p *ParticleSystem) Len() int {
	return len(p.particles)
}

// Clear removes all particles.
func (p *ParticleSystem) Clear() {
	p.particles = p.particles[:0]
}
