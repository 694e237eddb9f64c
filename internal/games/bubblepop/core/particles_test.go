package core_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func TestParticleBurstEvenAngles(t *testing.T) {
	ps := core.NewParticleSystem(config.Default().Particles, &seqRNG{vals: []float64{0.5}})
	ps.Burst(100, 100, core.ColorBlue, 4)

	got := ps.Particles()
	if len(got) != 4 {
		t.Fatalf("Burst emitted %d particles, expected 4", len(got))
	}
	// speed 100 at angles 0, 90, 180, 270 degrees
	if math.Abs(got[0].VX-100) > 1e-9 || math.Abs(got[0].VY) > 1e-9 {
		t.Errorf("first particle velocity = (%v, %v), expected (100, 0)", got[0].VX, got[0].VY)
	}
	if math.Abs(got[1].VY-100) > 1e-9 {
		t.Errorf("second particle VY = %v, expected 100", got[1].VY)
	}
	for _, p := range got {
		if p.MaxLife != 0.75 || p.Size != 5 || p.Alpha != 1 {
			t.Errorf("particle = %+v, expected max life 0.75, size 5, alpha 1", p)
		}
	}
}

func TestParticleSparkleRanges(t *testing.T) {
	ps := core.NewParticleSystem(config.Default().Particles, core.NewLCG(5))
	ps.Sparkle(0, 0, core.ColorPink, 50)

	for _, p := range ps.Particles() {
		if p.MaxLife < 0.3 || p.MaxLife >= 0.7 {
			t.Errorf("MaxLife = %v, expected [0.3, 0.7)", p.MaxLife)
		}
		if p.Size < 2 || p.Size >= 5 {
			t.Errorf("Size = %v, expected [2, 5)", p.Size)
		}
		speed := math.Hypot(p.VX, p.VY+20)
		if speed < 20-1e-9 || speed > 60+1e-9 {
			t.Errorf("speed = %v, expected [20, 60]", speed)
		}
		if !p.Sparkle {
			t.Error("sparkle particle should be flagged")
		}
	}
}

func TestParticleUpdate(t *testing.T) {
	ps := core.NewParticleSystem(config.Default().Particles, &seqRNG{vals: []float64{0.5}})
	ps.Burst(0, 0, core.ColorBlue, 1)

	ps.Update(0.1)
	p := ps.Particles()[0]
	if math.Abs(p.X-10) > 1e-9 {
		t.Errorf("X = %v, expected 10", p.X)
	}
	if math.Abs(p.VY-20) > 1e-9 {
		t.Errorf("VY = %v, expected gravity to add 20", p.VY)
	}
	if math.Abs(p.Life-0.1) > 1e-9 {
		t.Errorf("Life = %v, expected 0.1", p.Life)
	}

	ps.Update(0.1)
	if a := ps.Particles()[0].Alpha; math.Abs(a-(1-0.1/0.75)) > 1e-9 {
		t.Errorf("Alpha = %v, expected %v", a, 1-0.1/0.75)
	}

	for i := 0; i < 10; i++ {
		ps.Update(0.1)
	}
	if ps.Len() != 0 {
		t.Errorf("Len() = %d, expected dead particles removed", ps.Len())
	}
}

func TestParticleCapacityDropsOldest(t *testing.T) {
	cfg := config.Default().Particles
	cfg.MaxParticles = 10
	ps := core.NewParticleSystem(cfg, core.NewLCG(1))

	ps.Burst(0, 0, core.ColorBlue, 8)
	ps.Burst(50, 50, core.ColorPink, 8)
	got := ps.Particles()
	if len(got) != 10 {
		t.Fatalf("Len() = %d, expected capacity 10", len(got))
	}
	if got[len(got)-1].Color != core.ColorPink || got[0].Color != core.ColorBlue {
		t.Error("oldest particles should be dropped first")
	}
	pink := 0
	for _, p := range got {
		if p.Color == core.ColorPink {
			pink++
		}
	}
	if pink != 8 {
		t.Errorf("pink particles = %d, expected all 8 newest kept", pink)
	}
}

func TestParticleReduceMotion(t *testing.T) {
	ps := core.NewParticleSystem(config.Default().Particles, core.NewLCG(1))
	ps.Pop(0, 0, core.ColorBlue)
	if ps.Len() != 13 {
		t.Errorf("Pop emitted %d particles, expected 8 burst + 5 sparkle", ps.Len())
	}

	ps.SetDisabled(true)
	if ps.Len() != 0 {
		t.Error("disabling should clear live particles")
	}
	ps.Pop(0, 0, core.ColorBlue)
	if ps.Len() != 0 {
		t.Error("disabled system should not emit")
	}
}
