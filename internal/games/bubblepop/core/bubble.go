// Package core contains the bubble pop gameplay simulation.
// This package is UI-agnostic: hosts feed it wall-clock readings and pointer
// hits and read back bubbles, score and objective progress.
package core

import (
	"math"

	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
)

// Kind is the gameplay category of a bubble.
type Kind int

const (
	KindColor Kind = iota
	KindItem
	KindSpecial
	KindAvoider
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindItem:
		return "item"
	case KindSpecial:
		return "special"
	case KindAvoider:
		return "avoider"
	default:
		return "unknown"
	}
}

// Size is the size class of a bubble.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// String returns the lowercase name of the size class.
func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// from reads the entry for this size class out of a table.
func (s Size) from(t config.SizeTable) float64 {
	switch s {
	case SizeSmall:
		return t.Small
	case SizeLarge:
		return t.Large
	default:
		return t.Medium
	}
}

// BubbleColor is a palette color name.
type BubbleColor string

const (
	ColorRed    BubbleColor = "red"
	ColorBlue   BubbleColor = "blue"
	ColorGreen  BubbleColor = "green"
	ColorYellow BubbleColor = "yellow"
	ColorPurple BubbleColor = "purple"
	ColorPink   BubbleColor = "pink"
)

// Bubble is a single pop-able entity. Positions are in viewport pixels with
// y growing downward, so rising bubbles have negative VelocityY.
type Bubble struct {
	ID         string
	Kind       Kind
	Color      BubbleColor // set for KindColor
	ContentKey string      // item, special or avoider key for the other kinds
	X, Y       float64
	Radius     float64
	Size       Size
	VelocityY  float64 // px/s
	Age        float64 // seconds
	MaxAge     float64 // seconds
	Popped     bool
}

// NewBubble creates a bubble using the default bubble tuning.
// colorOrKey is the palette color for color bubbles and the content key otherwise.
func NewBubble(id string, kind Kind, x, y float64, size Size, colorOrKey string, baseSpeed float64) Bubble {
	return NewBubbleWith(config.Default().Bubbles, id, kind, x, y, size, colorOrKey, baseSpeed)
}

// NewBubbleWith creates a bubble using the given tuning tables.
func NewBubbleWith(cfg config.BubbleConfig, id string, kind Kind, x, y float64, size Size, colorOrKey string, baseSpeed float64) Bubble {
	b := Bubble{
		ID:        id,
		Kind:      kind,
		X:         x,
		Y:         y,
		Radius:    size.from(cfg.Radius),
		Size:      size,
		VelocityY: -baseSpeed * size.from(cfg.SpeedFactors),
		MaxAge:    cfg.MaxAgeSec,
	}
	if kind == KindColor {
		b.Color = BubbleColor(colorOrKey)
	} else {
		b.ContentKey = colorOrKey
	}
	return b
}

// Key returns the color for color bubbles and the content key otherwise.
func (b Bubble) Key() string {
	if b.Kind == KindColor {
		return string(b.Color)
	}
	return b.ContentKey
}

// Advance moves a bubble forward by dt seconds. Popped bubbles do not move.
// Negative dt is treated as zero.
func Advance(b Bubble, dt float64) Bubble {
	if b.Popped {
		return b
	}
	dt = math.Max(dt, 0)
	b.Y += b.VelocityY * dt
	b.Age += dt
	return b
}

// Pop marks a bubble as popped. Popping twice has no further effect.
func Pop(b Bubble) Bubble {
	b.Popped = true
	return b
}

// HitTest reports whether (px, py) lies within the bubble.
func HitTest(b Bubble, px, py float64) bool {
	return platformcore.Distance(b.X, b.Y, px, py) <= b.Radius
}

// CullReason explains why a bubble leaves the active set.
type CullReason int

const (
	CullNone CullReason = iota
	CullPopped
	CullExpired
	CullOffScreen
)

// String returns the lowercase name of the reason.
func (r CullReason) String() string {
	switch r {
	case CullPopped:
		return "popped"
	case CullExpired:
		return "expired"
	case CullOffScreen:
		return "offscreen"
	default:
		return "none"
	}
}

// CullReasonOf returns why b should be culled, or CullNone if it stays.
func CullReasonOf(b Bubble, screenH float64) CullReason {
	switch {
	case b.Popped:
		return CullPopped
	case b.Age >= b.MaxAge:
		return CullExpired
	case b.Y+b.Radius < 0 || b.Y-b.Radius > screenH:
		return CullOffScreen
	default:
		return CullNone
	}
}

// ShouldCull reports whether b is popped, expired or fully off screen.
func ShouldCull(b Bubble, screenH float64) bool {
	return CullReasonOf(b, screenH) != CullNone
}

// Cull removes every cull candidate from bubbles in place and returns the
// remaining bubbles along with the removed ones.
func Cull(bubbles []Bubble, screenH float64) (kept, culled []Bubble) {
	kept = bubbles[:0]
	for _, b := range bubbles {
		if ShouldCull(b, screenH) {
			culled = append(culled, b)
			continue
		}
		kept = append(kept, b)
	}
	return kept, culled
}

// ScoreValue returns the default points for popping b.
func ScoreValue(b Bubble) int {
	return ScoreFor(b.Kind, config.Default().Bubbles.Scores)
}

// ScoreFor returns the points a kind is worth under the given table.
func ScoreFor(kind Kind, t config.ScoreTable) int {
	switch kind {
	case KindColor:
		return t.Color
	case KindItem:
		return t.Item
	case KindSpecial:
		return t.Special
	case KindAvoider:
		return t.Avoider
	default:
		return 0
	}
}
