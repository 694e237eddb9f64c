package core_test

import (
	"time"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// seqRNG replays a fixed list of values, cycling when exhausted.
type seqRNG struct {
	vals []float64
	i    int
}

func (r *seqRNG) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func mustLevel(level int) core.LevelConfig {
	cfg, err := core.LevelConfigFor(level, 800, 600)
	if err != nil {
		panic(err)
	}
	return cfg
}

func liveBubble() []core.Bubble {
	return []core.Bubble{core.NewBubble("bubble_x", core.KindColor, 100, 100, core.SizeMedium, "blue", 160)}
}
