package core

import (
	"math/rand"
	"time"
)

// RNG is the randomness source consumed by spawning, particles and autoplay.
// Float64 returns a value in [0, 1).
type RNG interface {
	Float64() float64
}

// NewRandomSource returns an RNG backed by math/rand.
// A zero seed uses the current time.
func NewRandomSource(seed int64) RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// LCG is a 32-bit linear congruential generator with the Numerical Recipes
// constants. Sequences are identical across platforms for the same seed.
type LCG struct {
	state uint32
}

// DefaultLCGSeed is the seed used by deterministic mode.
const DefaultLCGSeed uint32 = 12345

// NewLCG creates a generator starting from seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Float64 advances the generator and returns the next value in [0, 1).
func (l *LCG) Float64() float64 {
	l.state = l.state*1664525 + 1013904223
	return float64(l.state) / 4294967296.0
}

// intn picks a uniform index in [0, n). n must be positive.
func intn(r RNG, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// between returns a uniform value in [lo, hi).
func between(r RNG, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
