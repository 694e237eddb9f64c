package tui

import (
	"io"

	"github.com/charmbracelet/log"

	sim "github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// Recorder persists finished runs, level completions and telemetry from
// session events. A nil store makes every call a no-op.
type Recorder struct {
	store  *storage.Store
	logger *log.Logger
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store *storage.Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, logger: logger}
}

// Started tracks the start of a run.
func (r *Recorder) Started(level int, runID string) {
	r.track("level_started", map[string]any{"level": level, "run_id": runID})
}

// Record handles the events of one frame. Completions unlock the next
// level; every finished run is saved to the score table.
func (r *Recorder) Record(level int, events []sim.Event) {
	if r.store == nil {
		return
	}
	for _, e := range events {
		switch e.Type {
		case sim.EventPopped:
			r.track(e.Type.String(), map[string]any{
				"level":  level,
				"kind":   e.Bubble.Kind.String(),
				"key":    e.Bubble.Key(),
				"size":   e.Bubble.Size.String(),
				"points": e.Points,
			})
		case sim.EventLevelCompleted:
			if _, err := r.store.CompleteLevel(e.Result.Level, e.Result.Stars, e.Result.Score); err != nil {
				r.logger.Warn("could not record completion", "level", e.Result.Level, "error", err)
			}
			r.finish(e)
		case sim.EventLevelFailed:
			r.finish(e)
		}
	}
}

func (r *Recorder) finish(e sim.Event) {
	res := e.Result
	if _, err := r.store.SaveRun(RunRecord(res)); err != nil {
		r.logger.Warn("could not save run", "run", res.RunID, "error", err)
	}
	r.track(e.Type.String(), map[string]any{
		"level":    res.Level,
		"run_id":   res.RunID,
		"score":    res.Score,
		"stars":    res.Stars,
		"pops":     res.Pops,
		"duration": res.Duration.Seconds(),
	})
	r.logger.Info("run finished", "level", res.Level, "outcome", res.Outcome, "score", res.Score, "stars", res.Stars)
}

func (r *Recorder) track(name string, props map[string]any) {
	if r.store == nil {
		return
	}
	if _, err := r.store.TrackEvent(name, props); err != nil {
		r.logger.Debug("telemetry dropped", "event", name, "error", err)
	}
}

// RunRecord converts a session result to a storage record.
func RunRecord(res sim.Result) storage.RunRecord {
	return storage.RunRecord{
		RunID:           res.RunID,
		Level:           res.Level,
		Score:           res.Score,
		Stars:           res.Stars,
		Outcome:         res.Outcome.String(),
		Pops:            res.Pops,
		AvoidViolations: res.AvoidViolations,
		Duration:        res.Duration,
	}
}
