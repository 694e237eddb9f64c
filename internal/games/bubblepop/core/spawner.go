package core

import (
	"fmt"
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
)

// Spawn rate multiplier bounds.
const (
	MinSpawnRateMultiplier = 0.1
	MaxSpawnRateMultiplier = 5.0
)

// Spawner creates bubbles for a run on a fixed interval with catch-up.
type Spawner struct {
	cfg     SpawnConfig
	tuning  config.SpawnerConfig
	bubbles config.BubbleConfig

	screenW, screenH float64

	lastSpawn  time.Time
	idCounter  int
	multiplier float64

	rng           RNG
	random        RNG
	deterministic bool
}

// NewSpawner creates a spawner whose clock starts at now.
// rng is the non-deterministic source; nil uses a time-seeded one.
func NewSpawner(cfg SpawnConfig, tuning config.SpawnerConfig, screenW, screenH float64, now time.Time, rng RNG) *Spawner {
	if rng == nil {
		rng = NewRandomSource(0)
	}
	s := &Spawner{
		cfg:        cfg,
		tuning:     tuning,
		bubbles:    config.Default().Bubbles,
		screenW:    screenW,
		screenH:    screenH,
		lastSpawn:  now,
		multiplier: 1.0,
		rng:        rng,
		random:     rng,
	}
	s.SetInterval(cfg.Interval)
	return s
}

// SetBubbleConfig replaces the bubble geometry used for new bubbles.
func (s *Spawner) SetBubbleConfig(cfg config.BubbleConfig) {
	s.bubbles = cfg
}

// SetInterval replaces the live spawn interval, clamped to the minimum interval.
func (s *Spawner) SetInterval(d time.Duration) {
	s.cfg.Interval = max(d, s.tuning.MinInterval())
}

// Interval returns the live interval before the rate multiplier.
func (s *Spawner) Interval() time.Duration {
	return s.cfg.Interval
}

// ActiveInterval returns the interval actually used between spawns.
func (s *Spawner) ActiveInterval() time.Duration {
	return time.Duration(float64(s.cfg.Interval) / s.multiplier)
}

// Shift moves the spawn clock forward by d, used after a pause.
func (s *Spawner) Shift(d time.Duration) {
	if d > 0 {
		s.lastSpawn = s.lastSpawn.Add(d)
	}
}

// LastSpawn returns the timestamp the next spawn is measured from.
func (s *Spawner) LastSpawn() time.Time {
	return s.lastSpawn
}

// Update returns the bubbles to add at now given the currently active set.
// BurstCap bounds roll attempts per call, gap rolls included, so a call can
// return fewer bubbles than the cap while a backlog remains.
func (s *Spawner) Update(now time.Time, active []Bubble) []Bubble {
	elapsed := now.Sub(s.lastSpawn)

	// Never leave the screen empty for longer than the grace period
	if len(active) == 0 && elapsed > s.tuning.GracePeriod() {
		s.lastSpawn = now
		if b, ok := s.spawn(true); ok {
			return []Bubble{b}
		}
		return nil
	}

	interval := s.ActiveInterval()
	if interval <= 0 {
		return nil
	}

	var out []Bubble
	attempts := 0
	for now.Sub(s.lastSpawn) >= interval && attempts < s.tuning.BurstCap {
		attempts++
		s.lastSpawn = s.lastSpawn.Add(interval)
		if b, ok := s.spawn(false); ok {
			out = append(out, b)
		}
	}

	// Drop whatever backlog the burst cap could not absorb
	if now.Sub(s.lastSpawn) >= interval {
		s.lastSpawn = now
	}
	return out
}

// spawn rolls one bubble. A roll that lands past the last cumulative
// boundary yields nothing unless force is set.
func (s *Spawner) spawn(force bool) (Bubble, bool) {
	kind, ok := s.rollKind(force)
	if !ok {
		return Bubble{}, false
	}
	size, ok := s.rollSize(force)
	if !ok {
		return Bubble{}, false
	}
	key := s.rollContent(kind)

	s.idCounter++
	id := fmt.Sprintf("bubble_%d", s.idCounter)
	return NewBubbleWith(s.bubbles, id, kind, s.rollX(), s.screenH*s.tuning.SpawnHeightRatio, size, key, s.cfg.Speed), true
}

// effectiveProbabilities zeroes categories with empty pools and renormalizes.
func (s *Spawner) effectiveProbabilities() [4]float64 {
	p := [4]float64{
		s.cfg.Probabilities.Color,
		s.cfg.Probabilities.Item,
		s.cfg.Probabilities.Special,
		s.cfg.Probabilities.Avoider,
	}
	pools := [4]int{len(s.cfg.Colors), len(s.cfg.Items), len(s.cfg.Specials), len(s.cfg.Avoiders)}
	sum := 0.0
	for i := range p {
		if pools[i] == 0 || p[i] < 0 {
			p[i] = 0
		}
		sum += p[i]
	}
	if sum <= 0 {
		return [4]float64{}
	}
	for i := range p {
		p[i] /= sum
	}
	return p
}

func (s *Spawner) rollKind(force bool) (Kind, bool) {
	p := s.effectiveProbabilities()
	roll := s.rng.Float64()
	kind, ok := pickCumulative(p[:], roll)
	if !ok && force {
		kind, ok = lastNonZero(p[:])
	}
	return Kind(kind), ok
}

func (s *Spawner) rollSize(force bool) (Size, bool) {
	c := s.cfg.SizeChances
	p := []float64{c.Small, c.Medium, c.Large}
	size, ok := pickCumulative(p, s.rng.Float64())
	if !ok && force {
		return SizeMedium, true
	}
	return Size(size), ok
}

func (s *Spawner) rollContent(kind Kind) string {
	switch kind {
	case KindColor:
		return string(s.cfg.Colors[intn(s.rng, len(s.cfg.Colors))])
	case KindItem:
		return s.cfg.Items[intn(s.rng, len(s.cfg.Items))]
	case KindSpecial:
		return s.cfg.Specials[intn(s.rng, len(s.cfg.Specials))]
	default:
		return s.cfg.Avoiders[intn(s.rng, len(s.cfg.Avoiders))]
	}
}

func (s *Spawner) rollX() float64 {
	margin := s.tuning.MarginPx
	if s.screenW <= 2*margin {
		return s.screenW / 2
	}
	return margin + s.rng.Float64()*(s.screenW-2*margin)
}

// pickCumulative walks the cumulative boundaries in order and returns the
// first index whose boundary exceeds roll.
func pickCumulative(p []float64, roll float64) (int, bool) {
	cumulative := 0.0
	for i, v := range p {
		if v <= 0 {
			continue
		}
		cumulative += v
		if roll < cumulative {
			return i, true
		}
	}
	return 0, false
}

func lastNonZero(p []float64) (int, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] > 0 {
			return i, true
		}
	}
	return 0, false
}

// Test hooks. These exist so automated tests and the debug keys can make
// spawning reproducible or faster; normal difficulty never calls them.

// SetSpawnRateMultiplier divides the interval by m, clamped to [0.1, 5.0].
func (s *Spawner) SetSpawnRateMultiplier(m float64) {
	s.multiplier = min(max(m, MinSpawnRateMultiplier), MaxSpawnRateMultiplier)
}

// SpawnRateMultiplier returns the current multiplier.
func (s *Spawner) SpawnRateMultiplier() float64 {
	return s.multiplier
}

// SetDeterministic swaps in a freshly seeded LCG, or restores the random source.
func (s *Spawner) SetDeterministic(enabled bool) {
	s.deterministic = enabled
	if enabled {
		s.rng = NewLCG(s.tuning.DeterministicSeed)
		return
	}
	s.rng = s.random
}

// Deterministic reports whether the fixed-seed generator is active.
func (s *Spawner) Deterministic() bool {
	return s.deterministic
}
