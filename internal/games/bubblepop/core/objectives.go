package core

import (
	"regexp"
	"strconv"
	"strings"
)

// Slot selects the primary or secondary objective.
type Slot int

const (
	SlotPrimary Slot = iota
	SlotSecondary
)

// Objective is a numeric target parsed from its description.
type Objective struct {
	Description string
	Target      int
	Current     int
	Completed   bool
}

var firstInteger = regexp.MustCompile(`\d+`)

// ParseObjective extracts the first integer literal in desc as the target.
// A description without a number has a zero target.
func ParseObjective(desc string) Objective {
	obj := Objective{Description: desc}
	if m := firstInteger.FindString(desc); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			obj.Target = n
		}
	}
	return obj
}

// add applies a non-negative delta, clamping at the target.
// Completion never reverts.
func (o *Objective) add(delta int) {
	if delta < 0 {
		return
	}
	o.Current = min(o.Current+delta, o.Target)
	if o.Current >= o.Target {
		o.Completed = true
	}
}

// Category is what a secondary objective counts.
type Category int

const (
	CategoryNone Category = iota
	CategoryItem
	CategorySpecial
	CategoryLarge
	CategorySmall
	CategoryAvoid
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case CategoryItem:
		return "item"
	case CategorySpecial:
		return "special"
	case CategoryLarge:
		return "large"
	case CategorySmall:
		return "small"
	case CategoryAvoid:
		return "avoid"
	default:
		return "none"
	}
}

// Classification is the result of matching a secondary objective against
// the keyword table. Ambiguous marks a generic match the table cannot pin
// down; a generic match still counts its whole category.
type Classification struct {
	Category  Category
	Keyword   string
	Ambiguous bool
}

// Matches reports whether popping b counts toward this category.
// Avoid never counts.
func (c Classification) Matches(b Bubble) bool {
	switch c.Category {
	case CategoryItem:
		return b.Kind == KindItem
	case CategorySpecial:
		return b.Kind == KindSpecial
	case CategoryLarge:
		return b.Kind != KindAvoider && b.Size == SizeLarge
	case CategorySmall:
		return b.Kind != KindAvoider && b.Size == SizeSmall
	default:
		return false
	}
}

// ClassifySecondary maps a secondary objective to the bubbles it counts.
// Rules are tried in order: avoid, large, small, find, collect or a theme
// item noun. Anything else is never counted and flagged ambiguous.
func ClassifySecondary(desc string, theme ThemeConfig) Classification {
	lower := strings.ToLower(desc)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	hasWord := func(w string) bool {
		for _, x := range words {
			if x == w {
				return true
			}
		}
		return false
	}

	switch {
	case hasWord("avoid"):
		return Classification{Category: CategoryAvoid, Keyword: "avoid"}
	case hasWord("large"):
		return Classification{Category: CategoryLarge, Keyword: "large"}
	case hasWord("small"):
		return Classification{Category: CategorySmall, Keyword: "small"}
	case hasWord("find"):
		for _, name := range theme.Specials {
			if strings.Contains(lower, name) {
				return Classification{Category: CategorySpecial, Keyword: name}
			}
		}
		return Classification{Category: CategorySpecial, Keyword: "find", Ambiguous: true}
	case hasWord("collect"):
		return Classification{Category: CategoryItem, Keyword: "collect"}
	}

	for _, item := range theme.Items {
		if strings.Contains(lower, item) {
			return Classification{Category: CategoryItem, Keyword: item}
		}
	}
	if strings.Contains(lower, "collect") {
		return Classification{Category: CategoryItem, Keyword: "collection", Ambiguous: true}
	}
	return Classification{Category: CategoryNone, Ambiguous: true}
}

// Attribution records what a single pop counted toward.
type Attribution struct {
	Primary   bool
	Secondary bool
	Violation bool
}

// Tracker holds the objective progress of one run.
type Tracker struct {
	primary      Objective
	secondary    Objective
	hasSecondary bool
	class        Classification
	violations   int
}

// NewTracker parses the objectives of a level. An empty secondary means
// the level has none. Objectives without a number start completed.
func NewTracker(primary, secondary string, theme ThemeConfig) *Tracker {
	t := &Tracker{
		primary:      ParseObjective(primary),
		hasSecondary: secondary != "",
	}
	if t.hasSecondary {
		t.secondary = ParseObjective(secondary)
		t.class = ClassifySecondary(secondary, theme)
	}
	t.completeEmpty()
	return t
}

func (t *Tracker) completeEmpty() {
	if t.primary.Target == 0 {
		t.primary.Completed = true
	}
	if t.hasSecondary && t.secondary.Target == 0 {
		t.secondary.Completed = true
	}
}

// UpdateProgress adds delta to a slot. Negative deltas are ignored and
// progress is clamped to the target.
func (t *Tracker) UpdateProgress(slot Slot, delta int) {
	switch slot {
	case SlotPrimary:
		t.primary.add(delta)
	case SlotSecondary:
		if t.hasSecondary {
			t.secondary.add(delta)
		}
	}
}

// Complete reports whether the primary and any secondary objective are met.
func (t *Tracker) Complete() bool {
	return t.primary.Completed && (!t.hasSecondary || t.secondary.Completed)
}

// RecordPop attributes a popped bubble to the objectives.
// Pops after completion are ignored.
func (t *Tracker) RecordPop(b Bubble) Attribution {
	var a Attribution
	if t.Complete() {
		return a
	}
	if b.Kind == KindAvoider {
		t.violations++
		a.Violation = true
		return a
	}
	t.UpdateProgress(SlotPrimary, 1)
	a.Primary = true
	if t.hasSecondary && t.class.Matches(b) {
		t.UpdateProgress(SlotSecondary, 1)
		a.Secondary = true
	}
	return a
}

// Reset clears progress back to the start of a run.
func (t *Tracker) Reset() {
	t.primary.Current, t.primary.Completed = 0, false
	t.secondary.Current, t.secondary.Completed = 0, false
	t.violations = 0
	t.completeEmpty()
}

// Primary returns the primary objective.
func (t *Tracker) Primary() Objective {
	return t.primary
}

// Secondary returns the secondary objective and whether the level has one.
func (t *Tracker) Secondary() (Objective, bool) {
	return t.secondary, t.hasSecondary
}

// Classification returns how pops are attributed to the secondary objective.
func (t *Tracker) Classification() Classification {
	return t.class
}

// AvoidViolations returns how many avoider bubbles were popped.
func (t *Tracker) AvoidViolations() int {
	return t.violations
}
