package core_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func newTestSpawner(level int, rng core.RNG) *core.Spawner {
	return core.NewSpawner(mustLevel(level).Spawn, config.Default().Spawner, 800, 600, t0, rng)
}

func TestSpawnerGracePeriodForcesSpawn(t *testing.T) {
	s := newTestSpawner(1, core.NewLCG(7))

	if got := s.Update(t0.Add(ms(40)), nil); len(got) != 0 {
		t.Errorf("Update before grace period returned %d bubbles, expected 0", len(got))
	}

	got := s.Update(t0.Add(ms(60)), nil)
	if len(got) != 1 {
		t.Fatalf("Update after grace period returned %d bubbles, expected 1", len(got))
	}
	if got[0].ID != "bubble_1" {
		t.Errorf("ID = %q, expected bubble_1", got[0].ID)
	}
	if !s.LastSpawn().Equal(t0.Add(ms(60))) {
		t.Errorf("LastSpawn() = %v, expected t0+60ms", s.LastSpawn().Sub(t0))
	}
}

func TestSpawnerNoForcedSpawnWhileBubblesActive(t *testing.T) {
	s := newTestSpawner(1, core.NewLCG(7))
	if got := s.Update(t0.Add(ms(60)), liveBubble()); len(got) != 0 {
		t.Errorf("Update with active bubbles returned %d, expected 0", len(got))
	}
}

func TestSpawnerCatchUpAdvancesByInterval(t *testing.T) {
	s := newTestSpawner(1, core.NewLCG(7))

	got := s.Update(t0.Add(ms(1700)), liveBubble())
	if len(got) != 2 {
		t.Fatalf("Update after 1700ms returned %d bubbles, expected 2", len(got))
	}
	if !s.LastSpawn().Equal(t0.Add(ms(1600))) {
		t.Errorf("LastSpawn() = %v, expected t0+1600ms", s.LastSpawn().Sub(t0))
	}
	if got[0].ID != "bubble_1" || got[1].ID != "bubble_2" {
		t.Errorf("IDs = %q, %q, expected sequential ids", got[0].ID, got[1].ID)
	}
}

func TestSpawnerBurstCapDropsBacklog(t *testing.T) {
	s := newTestSpawner(1, core.NewLCG(7))
	now := t0.Add(10 * time.Second)

	got := s.Update(now, liveBubble())
	if len(got) != 3 {
		t.Fatalf("Update after a long stall returned %d bubbles, expected 3", len(got))
	}
	if !s.LastSpawn().Equal(now) {
		t.Errorf("LastSpawn() = %v, expected backlog dropped to now", s.LastSpawn().Sub(t0))
	}
	if again := s.Update(now, liveBubble()); len(again) != 0 {
		t.Errorf("second Update at the same time returned %d, expected 0", len(again))
	}
}

func TestSpawnerPlacement(t *testing.T) {
	s := newTestSpawner(1, core.NewLCG(99))
	now := t0
	for i := 0; i < 50; i++ {
		now = now.Add(ms(800))
		for _, b := range s.Update(now, liveBubble()) {
			if b.X < 50 || b.X > 750 {
				t.Errorf("X = %v, expected within [50, 750]", b.X)
			}
			if b.Y != 480 {
				t.Errorf("Y = %v, expected 480", b.Y)
			}
			if b.VelocityY != -160 {
				t.Errorf("VelocityY = %v, expected -160", b.VelocityY)
			}
		}
	}
}

func TestSpawnerNarrowScreenCentersBubbles(t *testing.T) {
	s := core.NewSpawner(mustLevel(1).Spawn, config.Default().Spawner, 80, 600, t0, core.NewLCG(1))
	got := s.Update(t0.Add(ms(60)), nil)
	if len(got) != 1 || got[0].X != 40 {
		t.Errorf("narrow screen spawn = %+v, expected one bubble at x=40", got)
	}
}

func TestSpawnerSetIntervalClamps(t *testing.T) {
	s := newTestSpawner(1, core.NewLCG(1))

	s.SetInterval(ms(50))
	if s.Interval() != ms(100) {
		t.Errorf("Interval() = %v, expected 100ms", s.Interval())
	}
	s.SetInterval(ms(450))
	if s.Interval() != ms(450) {
		t.Errorf("Interval() = %v, expected 450ms", s.Interval())
	}
}

func TestSpawnerSpawnRateMultiplier(t *testing.T) {
	tests := []struct {
		in, expected float64
		active       time.Duration
	}{
		{2, 2, ms(400)},
		{10, 5, ms(160)},
		{0.01, 0.1, ms(8000)},
	}

	for _, tc := range tests {
		s := newTestSpawner(1, core.NewLCG(1))
		s.SetSpawnRateMultiplier(tc.in)
		if got := s.SpawnRateMultiplier(); got != tc.expected {
			t.Errorf("SetSpawnRateMultiplier(%v) -> %v, expected %v", tc.in, got, tc.expected)
		}
		if got := s.ActiveInterval(); got != tc.active {
			t.Errorf("ActiveInterval() = %v, expected %v", got, tc.active)
		}
	}
}

func TestSpawnerDeterministicSequences(t *testing.T) {
	a := newTestSpawner(17, core.NewRandomSource(1))
	b := newTestSpawner(17, core.NewRandomSource(2))
	a.SetDeterministic(true)
	b.SetDeterministic(true)

	now := t0
	for i := 0; i < 40; i++ {
		now = now.Add(ms(250))
		ga := a.Update(now, liveBubble())
		gb := b.Update(now, liveBubble())
		if len(ga) != len(gb) {
			t.Fatalf("step %d: %d vs %d bubbles", i, len(ga), len(gb))
		}
		for j := range ga {
			if ga[j].Kind != gb[j].Kind || ga[j].Size != gb[j].Size || ga[j].X != gb[j].X || ga[j].Y != gb[j].Y || ga[j].Key() != gb[j].Key() {
				t.Fatalf("step %d bubble %d differs: %+v vs %+v", i, j, ga[j], gb[j])
			}
		}
	}
	if !a.Deterministic() {
		t.Error("Deterministic() should be true")
	}
}

func TestSpawnerDeterministicRestartsSequence(t *testing.T) {
	s := newTestSpawner(17, core.NewRandomSource(1))
	s.SetDeterministic(true)
	first := s.Update(t0.Add(ms(60)), nil)

	s.SetDeterministic(true)
	second := s.Update(t0.Add(ms(200)), nil)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one forced bubble each, got %d and %d", len(first), len(second))
	}
	if first[0].X != second[0].X || first[0].Kind != second[0].Kind {
		t.Errorf("re-enabling deterministic mode should restart the sequence: %+v vs %+v", first[0], second[0])
	}
}

func TestSpawnerEmptyPoolFoldsProbability(t *testing.T) {
	cfg := mustLevel(20).Spawn
	cfg.Items = nil
	cfg.Specials = nil
	cfg.Avoiders = nil
	s := core.NewSpawner(cfg, config.Default().Spawner, 800, 600, t0, core.NewLCG(3))

	now := t0
	count := 0
	for i := 0; i < 60; i++ {
		now = now.Add(cfg.Interval)
		for _, b := range s.Update(now, liveBubble()) {
			count++
			if b.Kind != core.KindColor {
				t.Fatalf("spawned %v with an empty pool, expected color only", b.Kind)
			}
		}
	}
	if count != 60 {
		t.Errorf("spawned %d bubbles, expected 60", count)
	}
}

func TestSpawnerAllPoolsEmptySpawnsNothing(t *testing.T) {
	cfg := mustLevel(1).Spawn
	cfg.Colors = nil
	s := core.NewSpawner(cfg, config.Default().Spawner, 800, 600, t0, core.NewLCG(3))
	if got := s.Update(t0.Add(time.Second), nil); len(got) != 0 {
		t.Errorf("Update with no content returned %d bubbles, expected 0", len(got))
	}
}

func TestSpawnerRollOrder(t *testing.T) {
	cfg := mustLevel(1).Spawn
	cfg.Probabilities = core.TypeProbabilities{Color: 0.25, Item: 0.25, Special: 0.25, Avoider: 0.25}
	cfg.Items = []string{"apple"}
	cfg.Specials = []string{"rainbow"}
	cfg.Avoiders = []string{"mud"}

	tests := []struct {
		roll     float64
		expected core.Kind
	}{
		{0.0, core.KindColor},
		{0.26, core.KindItem},
		{0.6, core.KindSpecial},
		{0.99, core.KindAvoider},
	}

	for _, tc := range tests {
		// type roll, size roll, content roll, x roll
		rng := &seqRNG{vals: []float64{tc.roll, 0.5, 0.0, 0.5}}
		s := core.NewSpawner(cfg, config.Default().Spawner, 800, 600, t0, rng)
		got := s.Update(t0.Add(ms(60)), nil)
		if len(got) != 1 || got[0].Kind != tc.expected {
			t.Errorf("roll %v spawned %+v, expected kind %v", tc.roll, got, tc.expected)
		}
	}
}

func TestSpawnerShift(t *testing.T) {
	s := newTestSpawner(1, core.NewLCG(1))
	s.Shift(5 * time.Second)
	if got := s.Update(t0.Add(5*time.Second+ms(700)), liveBubble()); len(got) != 0 {
		t.Errorf("Update after shift returned %d, expected 0", len(got))
	}
	if got := s.Update(t0.Add(5*time.Second+ms(800)), liveBubble()); len(got) != 1 {
		t.Errorf("Update one interval after shift returned %d, expected 1", len(got))
	}
}
