package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func newTestSession(t *testing.T, level int) *core.Session {
	t.Helper()
	s, err := core.NewSession(core.SessionOptions{
		Level:   level,
		ScreenW: 800,
		ScreenH: 600,
		Tuning:  config.Default(),
		RNG:     core.NewLCG(42),
	}, t0)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func countEvents(events []core.Event, typ core.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestNewSessionUnknownLevel(t *testing.T) {
	_, err := core.NewSession(core.SessionOptions{Level: 21, Tuning: config.Default()}, t0)
	if !errors.Is(err, platformcore.ErrUnknownLevel) {
		t.Errorf("NewSession(level 21) error = %v, expected ErrUnknownLevel", err)
	}
}

func TestNewSessionZeroTuningUsesDefaults(t *testing.T) {
	s, err := core.NewSession(core.SessionOptions{Level: 1, ScreenW: 800, ScreenH: 600, RNG: core.NewLCG(42)}, t0)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Start(t0)
	s.Tick(t0.Add(ms(16)))
	if s.Outcome() != core.OutcomeRunning {
		t.Errorf("Outcome() after one frame = %v, expected running", s.Outcome())
	}

	events := s.Tick(t0.Add(ms(60)))
	if n := countEvents(events, core.EventSpawned); n != 1 {
		t.Errorf("spawned %d bubbles, expected 1", n)
	}
}

func TestNewSessionSanitizesTuning(t *testing.T) {
	tuning := config.Default()
	tuning.Spawner.BurstCap = 0
	tuning.Clock.MaxDeltaSec = -1
	s, err := core.NewSession(core.SessionOptions{Level: 1, ScreenW: 800, ScreenH: 600, Tuning: tuning, RNG: core.NewLCG(42)}, t0)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Start(t0)
	events := s.Tick(t0.Add(ms(60)))
	if n := countEvents(events, core.EventSpawned); n != 1 {
		t.Errorf("spawned %d bubbles, expected 1", n)
	}
	if tuning.Spawner.BurstCap != 0 {
		t.Errorf("caller tuning BurstCap = %d, expected it untouched", tuning.Spawner.BurstCap)
	}
}

func TestSessionFirstSpawnAfterGrace(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start(t0)

	events := s.Tick(t0.Add(ms(60)))
	if n := countEvents(events, core.EventSpawned); n != 1 {
		t.Fatalf("spawned %d bubbles, expected 1", n)
	}
	if len(s.Bubbles()) != 1 {
		t.Errorf("Bubbles() = %d, expected 1", len(s.Bubbles()))
	}
}

func TestSessionTickBeforeStartDoesNothing(t *testing.T) {
	s := newTestSession(t, 1)
	if events := s.Tick(t0.Add(time.Second)); len(events) != 0 {
		t.Errorf("Tick before Start returned %d events, expected 0", len(events))
	}
}

func TestSessionPopBubble(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start(t0)
	events := s.Tick(t0.Add(ms(60)))
	id := events[0].Bubble.ID

	res, ok := s.PopBubble(id)
	if !ok {
		t.Fatal("PopBubble() should succeed for a live bubble")
	}
	if res.Points != 10 || res.Score != 10 || s.Score() != 10 {
		t.Errorf("PopResult = %+v, expected 10 points", res)
	}
	if !res.Attribution.Primary {
		t.Error("color pop should count toward the primary objective")
	}
	if s.Tracker().Primary().Current != 1 {
		t.Errorf("primary progress = %d, expected 1", s.Tracker().Primary().Current)
	}

	if _, ok := s.PopBubble(id); ok {
		t.Error("double pop should be a no-op")
	}
	if _, ok := s.PopBubble("bubble_missing"); ok {
		t.Error("pop of unknown id should be a no-op")
	}

	events = s.Tick(t0.Add(ms(76)))
	if n := countEvents(events, core.EventPopped); n != 1 {
		t.Errorf("popped events = %d, expected 1", n)
	}
	culled := 0
	for _, e := range events {
		if e.Type == core.EventCulled && e.Bubble.ID == id && e.Reason == core.CullPopped {
			culled++
		}
	}
	if culled != 1 {
		t.Error("popped bubble should be culled on the next tick")
	}
}

func TestSessionPopAt(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start(t0)
	b := s.Tick(t0.Add(ms(60)))[0].Bubble

	if _, ok := s.PopAt(b.X+b.Radius+1, b.Y); ok {
		t.Error("PopAt outside the bubble should miss")
	}
	res, ok := s.PopAt(b.X+b.Radius-1, b.Y)
	if !ok || res.Bubble.ID != b.ID {
		t.Errorf("PopAt inside the bubble = %+v, %v, expected %s", res, ok, b.ID)
	}
}

func TestSessionPauseFreezesRun(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start(t0)
	events := s.Tick(t0.Add(ms(60)))
	id := events[0].Bubble.ID

	s.Pause(t0.Add(ms(100)))
	before := s.Snapshot().TimeRemaining
	if events := s.Tick(t0.Add(5 * time.Second)); len(events) != 0 {
		t.Errorf("Tick while paused returned %d events", len(events))
	}
	if _, ok := s.PopBubble(id); ok {
		t.Error("pops should be refused while paused")
	}
	if s.Snapshot().TimeRemaining != before {
		t.Error("countdown should not move while paused")
	}

	s.Resume(t0.Add(5 * time.Second))
	s.Tick(t0.Add(5*time.Second + ms(16)))
	if st := s.ClockState(); st.LastDelta > 0.017 {
		t.Errorf("first delta after resume = %v, expected one frame", st.LastDelta)
	}
	if _, ok := s.PopBubble(id); !ok {
		t.Error("pops should work again after Resume")
	}
}

func TestSessionTimesOut(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start(t0)

	var last []core.Event
	now := t0
	ticks := 0
	for s.Outcome() == core.OutcomeRunning && ticks < 1000 {
		now = now.Add(ms(100))
		last = s.Tick(now)
		ticks++
	}

	if s.Outcome() != core.OutcomeFailed {
		t.Fatalf("Outcome() = %v, expected failed", s.Outcome())
	}
	if ticks < 599 || ticks > 601 {
		t.Errorf("run ended after %d ticks, expected about 600", ticks)
	}
	if countEvents(last, core.EventLevelFailed) != 1 {
		t.Error("final tick should carry a level failed event")
	}
	res, ok := s.Result()
	if !ok || res.Stars != 0 || res.Level != 1 || res.RunID != s.RunID() {
		t.Errorf("Result() = %+v, %v, expected zero-star result for level 1", res, ok)
	}
	if s.Running() {
		t.Error("clock should be stopped after the run ends")
	}
}

func TestSessionCompletesImmediately(t *testing.T) {
	// Level 2: "Pop 30 bubbles" and "Avoid mud bubbles"
	s := newTestSession(t, 2)
	s.SetSpawnRateMultiplier(5)
	s.Start(t0)

	now := t0
	var completed []core.Event
	for i := 0; i < 3000 && s.Outcome() == core.OutcomeRunning; i++ {
		now = now.Add(ms(50))
		s.Tick(now)
		for _, b := range s.Bubbles() {
			if b.Kind == core.KindAvoider || b.Popped {
				continue
			}
			if res, ok := s.PopBubble(b.ID); ok && res.Completed {
				completed = s.Tick(now)
			}
			break
		}
	}

	if s.Outcome() != core.OutcomeCompleted {
		t.Fatalf("Outcome() = %v, expected completed", s.Outcome())
	}
	if countEvents(completed, core.EventLevelCompleted) != 1 {
		t.Error("expected one level completed event")
	}
	res, _ := s.Result()
	if res.Pops != 30 {
		t.Errorf("Pops = %d, expected 30", res.Pops)
	}
	if res.Duration >= 60*time.Second {
		t.Errorf("Duration = %v, expected completion before time-out", res.Duration)
	}

	score := s.Score()
	for _, b := range s.Bubbles() {
		if _, ok := s.PopBubble(b.ID); ok {
			t.Fatal("pops should be refused after completion")
		}
	}
	if s.Score() != score {
		t.Error("score changed after completion")
	}
}

func TestSessionFinish(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start(t0)
	id := s.Tick(t0.Add(ms(60)))[0].Bubble.ID
	s.PopBubble(id)

	res := s.Finish(t0.Add(time.Second))
	if res.Outcome != core.OutcomeFailed {
		t.Errorf("Outcome = %v, expected failed with the primary unmet", res.Outcome)
	}
	if res.Score != 10 || res.Pops != 1 {
		t.Errorf("Result = %+v, expected score 10 from one pop", res)
	}
	if again := s.Finish(t0.Add(2 * time.Second)); again != res {
		t.Errorf("second Finish = %+v, expected %+v", again, res)
	}
	if events := s.Tick(t0.Add(2 * time.Second)); countEvents(events, core.EventLevelFailed) != 1 {
		t.Error("Finish should queue a level failed event")
	}
}

func TestSessionDeterministicRuns(t *testing.T) {
	run := func(seed uint32) []core.Bubble {
		s, err := core.NewSession(core.SessionOptions{
			Level:         14,
			ScreenW:       1024,
			ScreenH:       768,
			Tuning:        config.Default(),
			RNG:           core.NewLCG(seed),
			Deterministic: true,
		}, t0)
		if err != nil {
			t.Fatalf("NewSession() failed: %v", err)
		}
		s.Start(t0)
		var spawned []core.Bubble
		now := t0
		for i := 0; i < 600; i++ {
			now = now.Add(ms(16))
			for _, e := range s.Tick(now) {
				if e.Type == core.EventSpawned {
					spawned = append(spawned, e.Bubble)
				}
			}
		}
		return spawned
	}

	a, b := run(1), run(2)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("spawned %d vs %d bubbles", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Size != b[i].Size || a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("bubble %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSessionSnapshotAndOnChange(t *testing.T) {
	changes := 0
	s, err := core.NewSession(core.SessionOptions{
		Level:    4,
		ScreenW:  800,
		ScreenH:  600,
		Tuning:   config.Default(),
		RNG:      core.NewLCG(1),
		OnChange: func(core.Snapshot) { changes++ },
	}, t0)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Start(t0)
	s.Tick(t0.Add(ms(16)))
	s.Tick(t0.Add(ms(32)))
	if changes != 2 {
		t.Errorf("OnChange called %d times, expected 2", changes)
	}

	snap := s.Snapshot()
	if snap.Level != 4 || snap.LevelName != "Farm Level 4" || snap.Theme != core.ThemeFarm {
		t.Errorf("Snapshot level = %d %q %q", snap.Level, snap.LevelName, snap.Theme)
	}
	if snap.MaxTime != 60*time.Second || snap.Primary.Target != 35 || !snap.HasSecondary || snap.Secondary.Target != 5 {
		t.Errorf("Snapshot objectives = %+v", snap)
	}
	if snap.Outcome != core.OutcomeRunning || snap.Paused {
		t.Errorf("Snapshot state = %v paused %v, expected running", snap.Outcome, snap.Paused)
	}
}

func TestSessionReduceMotion(t *testing.T) {
	s, err := core.NewSession(core.SessionOptions{
		Level:        1,
		ScreenW:      800,
		ScreenH:      600,
		Tuning:       config.Default(),
		RNG:          core.NewLCG(1),
		ReduceMotion: true,
	}, t0)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Start(t0)
	id := s.Tick(t0.Add(ms(60)))[0].Bubble.ID
	s.PopBubble(id)
	if n := len(s.Snapshot().Particles); n != 0 {
		t.Errorf("particles = %d, expected none with reduce motion", n)
	}
}

func TestSessionClose(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start(t0)
	s.Close()
	s.Start(t0.Add(time.Second))
	if events := s.Tick(t0.Add(2 * time.Second)); len(events) != 0 {
		t.Errorf("Tick after Close returned %d events", len(events))
	}
	if s.Running() {
		t.Error("closed session should not run")
	}
}

func TestSessionDebugHooks(t *testing.T) {
	s := newTestSession(t, 1)
	s.SetSlowMo(true)
	s.SetSlowMoMultiplier(0.25)
	s.SetSpawnRateMultiplier(2)
	s.SetDeterministic(true)

	snap := s.Snapshot()
	if !snap.SlowMo || !snap.Deterministic || snap.SpawnRate != 2 {
		t.Errorf("Snapshot debug flags = slowmo %v deterministic %v rate %v", snap.SlowMo, snap.Deterministic, snap.SpawnRate)
	}
	if snap.Interval != ms(400) {
		t.Errorf("Interval = %v, expected 400ms", snap.Interval)
	}
	if s.ClockState().SlowMoMultiplier != 0.25 {
		t.Errorf("SlowMoMultiplier = %v, expected 0.25", s.ClockState().SlowMoMultiplier)
	}
}

func TestStars(t *testing.T) {
	thresholds := []int{200, 500, 1000}

	tests := []struct {
		score, expected int
	}{
		{-5, 0},
		{199, 0},
		{200, 1},
		{499, 1},
		{500, 2},
		{1000, 3},
		{5000, 3},
	}

	for _, tc := range tests {
		if got := core.Stars(tc.score, thresholds); got != tc.expected {
			t.Errorf("Stars(%d) = %d, expected %d", tc.score, got, tc.expected)
		}
	}
}
