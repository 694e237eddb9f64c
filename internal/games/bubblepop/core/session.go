package core

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/bubblepop/internal/config"
)

// Outcome is the state of a run.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCompleted
	OutcomeFailed
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	default:
		return "running"
	}
}

// EventType identifies a session event.
type EventType int

const (
	EventSpawned EventType = iota
	EventCulled
	EventPopped
	EventLevelCompleted
	EventLevelFailed
)

// String returns the event name used in telemetry.
func (e EventType) String() string {
	switch e {
	case EventSpawned:
		return "bubble_spawned"
	case EventCulled:
		return "bubble_culled"
	case EventPopped:
		return "bubble_popped"
	case EventLevelCompleted:
		return "level_completed"
	case EventLevelFailed:
		return "level_failed"
	default:
		return "unknown"
	}
}

// Event is something that happened during a tick or a pop.
type Event struct {
	Type   EventType
	Bubble Bubble     // spawned, culled and popped events
	Reason CullReason // culled events
	Points int        // popped events
	Result Result     // level completed and failed events
}

// Result summarizes a finished run for the progression store.
type Result struct {
	RunID           string
	Level           int
	Score           int
	Stars           int
	Outcome         Outcome
	Pops            int
	AvoidViolations int
	Duration        time.Duration // game time played
}

// PopResult describes a successful pop.
type PopResult struct {
	Bubble      Bubble
	Points      int
	Score       int
	Attribution Attribution
	Completed   bool // the pop completed the level
}

// Snapshot is the HUD and render view of a session.
type Snapshot struct {
	Level         int
	LevelName     string
	Theme         Theme
	Score         int
	TimeRemaining time.Duration
	MaxTime       time.Duration
	Primary       Objective
	Secondary     Objective
	HasSecondary  bool
	Paused        bool
	Outcome       Outcome
	Interval      time.Duration
	SlowMo        bool
	Deterministic bool
	SpawnRate     float64
	Bubbles       []Bubble
	Particles     []Particle
}

// SessionOptions configures a run.
type SessionOptions struct {
	Level            int
	ScreenW, ScreenH float64
	Tuning           config.BubblePopConfig
	ReduceMotion     bool
	Seed             int64 // 0 uses the current time
	Deterministic    bool
	RNG              RNG // overrides Seed when set
	Logger           *log.Logger
	OnChange         func(Snapshot) // called after every rendered frame
}

// Session owns all state of one run: spawner, director, clock, objectives,
// bubbles and score. It is not safe for concurrent use; the host drives it
// from a single loop.
type Session struct {
	opts   SessionOptions
	level  LevelConfig
	theme  ThemeConfig
	logger *log.Logger
	runID  string

	spawner   *Spawner
	director  *Director
	clock     *Clock
	tracker   *Tracker
	particles *ParticleSystem

	bubbles []Bubble
	score   int
	pops    int

	maxTime   time.Duration
	remaining time.Duration
	now       time.Time
	started   bool
	closed    bool
	paused    bool
	pausedAt  time.Time
	outcome   Outcome
	result    Result

	pending []Event
}

// NewSession builds a run for opts.Level. Spawner and director clocks start at now.
// A zero Tuning uses the built-in defaults; any other Tuning is sanitized.
func NewSession(opts SessionOptions, now time.Time) (*Session, error) {
	level, err := LevelConfigFor(opts.Level, opts.ScreenW, opts.ScreenH)
	if err != nil {
		return nil, err
	}
	theme, _ := ThemeConfigFor(level.Theme)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.RNG
	if rng == nil {
		rng = NewRandomSource(opts.Seed)
	}
	if opts.Tuning.Session.MaxTimeSec == 0 {
		opts.Tuning = config.Default()
	}
	opts.Tuning.Session.StarThresholds = append([]int(nil), opts.Tuning.Session.StarThresholds...)
	opts.Tuning.Sanitize()
	tuning := opts.Tuning

	s := &Session{
		opts:    opts,
		level:   level,
		theme:   theme,
		logger:  logger,
		runID:   uuid.NewString(),
		tracker: NewTracker(level.Primary, level.Secondary, theme),
		maxTime: tuning.Session.MaxTime(),
		now:     now,
	}
	s.remaining = s.maxTime

	s.spawner = NewSpawner(level.Spawn, tuning.Spawner, opts.ScreenW, opts.ScreenH, now, rng)
	s.spawner.SetBubbleConfig(tuning.Bubbles)
	if opts.Deterministic {
		s.spawner.SetDeterministic(true)
	}
	s.director = NewDirector(SessionDirectorSettings(level.Spawn.Interval, tuning.Director, tuning.Difficulty), now)
	s.clock = NewClockFromConfig(tuning.Clock, s.update, s.render)
	s.particles = NewParticleSystem(tuning.Particles, rng)
	s.particles.SetDisabled(opts.ReduceMotion)

	if class := s.tracker.Classification(); class.Ambiguous {
		logger.Warn("ambiguous secondary objective", "level", level.Level, "objective", level.Secondary, "category", class.Category)
	}
	return s, nil
}

// Level returns the level configuration of the run.
func (s *Session) Level() LevelConfig {
	return s.level
}

// RunID returns the unique id of the run.
func (s *Session) RunID() string {
	return s.runID
}

// Start begins the run at now. Starting twice has no effect.
func (s *Session) Start(now time.Time) {
	if s.started || s.closed || s.outcome != OutcomeRunning {
		return
	}
	s.started = true
	s.now = now
	s.director.Reset(now)
	s.clock.Start(now)
	s.logger.Debug("run started", "run", s.runID, "level", s.level.Level, "theme", s.level.Theme)
}

// Running reports whether the host should keep scheduling ticks.
func (s *Session) Running() bool {
	return s.clock.Running()
}

// Tick advances the run to now and returns the events it produced,
// including any produced by pops since the previous tick.
func (s *Session) Tick(now time.Time) []Event {
	if s.acceptingPops() {
		s.now = now
		s.clock.Tick(now)
	}
	return s.drain()
}

func (s *Session) drain() []Event {
	if len(s.pending) == 0 {
		return nil
	}
	out := s.pending
	s.pending = nil
	return out
}

// update is the clock's update callback.
func (s *Session) update(dt float64) {
	s.remaining -= time.Duration(dt * float64(time.Second))

	for i := range s.bubbles {
		s.bubbles[i] = Advance(s.bubbles[i], dt)
	}
	var culled []Bubble
	s.bubbles, culled = Cull(s.bubbles, s.opts.ScreenH)
	for _, b := range culled {
		s.emit(Event{Type: EventCulled, Bubble: b, Reason: CullReasonOf(b, s.opts.ScreenH)})
	}

	s.spawner.SetInterval(s.director.CurrentInterval(s.now))
	for _, b := range s.spawner.Update(s.now, s.bubbles) {
		s.bubbles = append(s.bubbles, b)
		s.emit(Event{Type: EventSpawned, Bubble: b})
	}

	s.particles.Update(dt)

	if s.remaining <= 0 {
		s.remaining = 0
		s.end(s.clearedOutcome())
	}
}

// render is the clock's render callback.
func (s *Session) render(float64) {
	s.notify()
}

func (s *Session) notify() {
	if s.opts.OnChange != nil {
		s.opts.OnChange(s.Snapshot())
	}
}

func (s *Session) emit(e Event) {
	s.pending = append(s.pending, e)
}

// PopBubble pops the bubble with the given id. Unknown, already popped or
// culled ids are ignored, as are pops while paused or after the run ended.
func (s *Session) PopBubble(id string) (PopResult, bool) {
	if !s.acceptingPops() {
		return PopResult{}, false
	}
	for i := range s.bubbles {
		if s.bubbles[i].ID == id && !s.bubbles[i].Popped {
			return s.popIndex(i), true
		}
	}
	return PopResult{}, false
}

// PopAt pops the topmost live bubble under (x, y). Newer bubbles are drawn
// over older ones, so they win.
func (s *Session) PopAt(x, y float64) (PopResult, bool) {
	if !s.acceptingPops() {
		return PopResult{}, false
	}
	for i := len(s.bubbles) - 1; i >= 0; i-- {
		b := s.bubbles[i]
		if !b.Popped && HitTest(b, x, y) {
			return s.popIndex(i), true
		}
	}
	return PopResult{}, false
}

func (s *Session) acceptingPops() bool {
	return s.started && !s.closed && !s.paused && s.outcome == OutcomeRunning
}

func (s *Session) popIndex(i int) PopResult {
	b := Pop(s.bubbles[i])
	s.bubbles[i] = b

	points := ScoreFor(b.Kind, s.opts.Tuning.Bubbles.Scores)
	s.score += points
	s.pops++
	attr := s.tracker.RecordPop(b)

	color := b.Color
	if color == "" {
		color = s.theme.Colors[0]
	}
	s.particles.Pop(b.X, b.Y, color)
	s.emit(Event{Type: EventPopped, Bubble: b, Points: points})

	res := PopResult{Bubble: b, Points: points, Score: s.score, Attribution: attr}
	if s.tracker.Complete() {
		s.end(OutcomeCompleted)
		res.Completed = true
	}
	s.notify()
	return res
}

// Pause freezes the run at now.
func (s *Session) Pause(now time.Time) {
	if !s.started || s.paused || s.outcome != OutcomeRunning {
		return
	}
	s.paused = true
	s.pausedAt = now
	s.clock.Stop()
	s.notify()
}

// Resume continues a paused run. Spawner and director are shifted by the
// pause length so the pause is invisible to them.
func (s *Session) Resume(now time.Time) {
	if !s.paused || s.outcome != OutcomeRunning {
		return
	}
	s.paused = false
	gap := now.Sub(s.pausedAt)
	s.spawner.Shift(gap)
	s.director.Shift(gap)
	s.now = now
	s.clock.Start(now)
	s.notify()
}

// Paused reports whether the run is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Finish ends the run now. Finishing an ended run returns its result.
func (s *Session) Finish(now time.Time) Result {
	if s.outcome != OutcomeRunning {
		return s.result
	}
	s.now = now
	s.end(s.clearedOutcome())
	s.notify()
	return s.result
}

// clearedOutcome decides a run that ends without completing every objective:
// meeting the primary objective is enough to clear the level.
func (s *Session) clearedOutcome() Outcome {
	if s.tracker.Primary().Completed {
		return OutcomeCompleted
	}
	return OutcomeFailed
}

// end moves the run into a terminal state. Scoring is refused afterwards.
func (s *Session) end(outcome Outcome) {
	if s.outcome != OutcomeRunning {
		return
	}
	s.outcome = outcome
	s.paused = false
	s.clock.Stop()

	s.result = Result{
		RunID:           s.runID,
		Level:           s.level.Level,
		Score:           s.score,
		Stars:           Stars(s.score, s.opts.Tuning.Session.StarThresholds),
		Outcome:         outcome,
		Pops:            s.pops,
		AvoidViolations: s.tracker.AvoidViolations(),
		Duration:        s.maxTime - s.remaining,
	}
	if outcome == OutcomeCompleted {
		s.emit(Event{Type: EventLevelCompleted, Result: s.result})
		s.logger.Debug("level complete", "run", s.runID, "level", s.level.Level, "score", s.score, "stars", s.result.Stars)
		return
	}
	s.emit(Event{Type: EventLevelFailed, Result: s.result})
	s.logger.Debug("level failed", "run", s.runID, "level", s.level.Level, "score", s.score)
}

// Close tears the run down so no further tick has any effect.
func (s *Session) Close() {
	s.clock.Stop()
	s.closed = true
}

// Outcome returns the run state.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Result returns the result of an ended run.
func (s *Session) Result() (Result, bool) {
	return s.result, s.outcome != OutcomeRunning
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Tracker exposes the objective tracker.
func (s *Session) Tracker() *Tracker {
	return s.tracker
}

// Bubbles returns a copy of the active bubbles.
func (s *Session) Bubbles() []Bubble {
	out := make([]Bubble, len(s.bubbles))
	copy(out, s.bubbles)
	return out
}

// ClockState returns a snapshot of the game clock.
func (s *Session) ClockState() ClockState {
	return s.clock.State()
}

// Snapshot returns the current HUD and render view.
func (s *Session) Snapshot() Snapshot {
	sec, has := s.tracker.Secondary()
	return Snapshot{
		Level:         s.level.Level,
		LevelName:     s.level.Name,
		Theme:         s.level.Theme,
		Score:         s.score,
		TimeRemaining: max(s.remaining, 0),
		MaxTime:       s.maxTime,
		Primary:       s.tracker.Primary(),
		Secondary:     sec,
		HasSecondary:  has,
		Paused:        s.paused,
		Outcome:       s.outcome,
		Interval:      s.spawner.ActiveInterval(),
		SlowMo:        s.clock.SlowMo(),
		Deterministic: s.spawner.Deterministic(),
		SpawnRate:     s.spawner.SpawnRateMultiplier(),
		Bubbles:       s.Bubbles(),
		Particles:     s.particles.Particles(),
	}
}

// Stars converts a score to 0-3 stars given ascending thresholds.
func Stars(score int, thresholds []int) int {
	stars := 0
	for _, th := range thresholds {
		if score >= th {
			stars++
		}
	}
	return min(stars, 3)
}

// Debug and test hooks. They mirror the developer keys of the game screen
// and let tests make a run reproducible.

// SetSlowMo toggles slow motion.
func (s *Session) SetSlowMo(enabled bool) {
	s.clock.SetSlowMo(enabled)
}

// SetSlowMoMultiplier sets the slow motion factor, clamped to [0.1, 1.0].
func (s *Session) SetSlowMoMultiplier(m float64) {
	s.clock.SetSlowMoMultiplier(m)
}

// SetSpawnRateMultiplier divides the spawn interval, clamped to [0.1, 5.0].
func (s *Session) SetSpawnRateMultiplier(m float64) {
	s.spawner.SetSpawnRateMultiplier(m)
}

// SetDeterministic switches the spawner to the fixed-seed generator.
func (s *Session) SetDeterministic(enabled bool) {
	s.spawner.SetDeterministic(enabled)
}
