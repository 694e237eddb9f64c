package core

import "time"

// Autoplay is a simple bot for headless runs. Each tick it pops at most one
// bubble that has been on screen longer than its reaction time.
type Autoplay struct {
	rng      RNG
	Reaction float64 // seconds a bubble must be visible before the bot reacts
	Accuracy float64 // probability of skipping an avoider
}

// NewAutoplay creates a bot. accuracy is clamped to [0, 1].
func NewAutoplay(rng RNG, reaction, accuracy float64) *Autoplay {
	if rng == nil {
		rng = NewLCG(DefaultLCGSeed)
	}
	return &Autoplay{
		rng:      rng,
		Reaction: max(reaction, 0),
		Accuracy: min(max(accuracy, 0), 1),
	}
}

// Act pops the oldest eligible bubble, if any.
func (a *Autoplay) Act(s *Session) (PopResult, bool) {
	for _, b := range s.bubbles {
		if b.Popped || b.Age < a.Reaction {
			continue
		}
		if b.Kind == KindAvoider && a.rng.Float64() < a.Accuracy {
			continue
		}
		return s.PopBubble(b.ID)
	}
	return PopResult{}, false
}

// HeadlessRun plays a session to the end with a bot at a fixed frame rate.
// The run is cut off after limit of simulated wall time.
type HeadlessRun struct {
	Options SessionOptions
	Bot     *Autoplay
	Start   time.Time
	Frame   time.Duration
	Limit   time.Duration
}

// Run plays the session and returns its result and all events it emitted.
func (h HeadlessRun) Run() (Result, []Event, error) {
	s, err := NewSession(h.Options, h.Start)
	if err != nil {
		return Result{}, nil, err
	}
	frame := h.Frame
	if frame <= 0 {
		frame = time.Second / 60
	}
	limit := h.Limit
	if limit <= 0 {
		limit = s.maxTime * 2
	}

	var events []Event
	now := h.Start
	s.Start(now)
	for now.Sub(h.Start) < limit && s.Outcome() == OutcomeRunning {
		now = now.Add(frame)
		events = append(events, s.Tick(now)...)
		if h.Bot != nil {
			h.Bot.Act(s)
		}
	}
	res := s.Finish(now)
	events = append(events, s.Tick(now)...)
	return res, events, nil
}
