package core

import (
	"fmt"
	"math"
	"strings"
	"time"

	platformcore "github.com/vovakirdan/bubblepop/internal/core"
)

// Theme is one of the four level worlds.
type Theme string

const (
	ThemeFarm  Theme = "farm"
	ThemeBeach Theme = "beach"
	ThemeCandy Theme = "candy"
	ThemeSpace Theme = "space"
)

// LevelsPerTheme is the number of levels in each theme.
const LevelsPerTheme = 5

// Themes returns the themes in play order.
func Themes() []Theme {
	return []Theme{ThemeFarm, ThemeBeach, ThemeCandy, ThemeSpace}
}

// Title returns the capitalized theme name.
func (t Theme) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// ThemeConfig holds the content pools and colors of a theme.
type ThemeConfig struct {
	Theme      Theme
	Colors     []BubbleColor
	Items      []string
	Specials   []string
	Avoiders   []string
	Background string // hex
	Accent     string // hex
}

var themeConfigs = map[Theme]ThemeConfig{
	ThemeFarm: {
		Theme:      ThemeFarm,
		Colors:     []BubbleColor{ColorBlue, ColorGreen, ColorPink, ColorYellow},
		Items:      []string{"flower", "carrot", "apple"},
		Specials:   []string{"rainbow"},
		Avoiders:   []string{"mud"},
		Background: "#E8F5E8",
		Accent:     "#8BC34A",
	},
	ThemeBeach: {
		Theme:      ThemeBeach,
		Colors:     []BubbleColor{ColorBlue, ColorGreen, ColorYellow, ColorPink},
		Items:      []string{"shell", "starfish", "pail"},
		Specials:   []string{"disco"},
		Avoiders:   []string{"thorns"},
		Background: "#87CEEB",
		Accent:     "#4FC3F7",
	},
	ThemeCandy: {
		Theme:      ThemeCandy,
		Colors:     []BubbleColor{ColorPink, ColorPurple, ColorYellow, ColorPink},
		Items:      []string{"lollipop", "jellybean", "cupcake"},
		Specials:   []string{"giggle"},
		Avoiders:   []string{"slime"},
		Background: "#FFB6C1",
		Accent:     "#E91E63",
	},
	ThemeSpace: {
		Theme:      ThemeSpace,
		Colors:     []BubbleColor{ColorPurple, ColorBlue, ColorPink, ColorYellow},
		Items:      []string{"star", "planet", "comet"},
		Specials:   []string{"freeze"},
		Avoiders:   []string{"ice"},
		Background: "#9370DB",
		Accent:     "#9C27B0",
	},
}

// ThemeConfigFor returns a copy of a theme's pools.
func ThemeConfigFor(t Theme) (ThemeConfig, bool) {
	tc, ok := themeConfigs[t]
	if !ok {
		return ThemeConfig{}, false
	}
	tc.Colors = append([]BubbleColor(nil), tc.Colors...)
	tc.Items = append([]string(nil), tc.Items...)
	tc.Specials = append([]string(nil), tc.Specials...)
	tc.Avoiders = append([]string(nil), tc.Avoiders...)
	return tc, true
}

// SizeChances are the probabilities of each size class, summing to 1.
type SizeChances struct {
	Small, Medium, Large float64
}

// Sum returns the total probability.
func (s SizeChances) Sum() float64 {
	return s.Small + s.Medium + s.Large
}

// TypeProbabilities are the probabilities of each bubble kind, summing to 1.
type TypeProbabilities struct {
	Color, Item, Special, Avoider float64
}

// Sum returns the total probability.
func (p TypeProbabilities) Sum() float64 {
	return p.Color + p.Item + p.Special + p.Avoider
}

// SpawnConfig is the spawner input derived for a level.
type SpawnConfig struct {
	Interval      time.Duration
	Speed         float64 // px/s
	SizeChances   SizeChances
	Probabilities TypeProbabilities
	Colors        []BubbleColor
	Items         []string
	Specials      []string
	Avoiders      []string
}

// LevelConfig describes one playable level.
type LevelConfig struct {
	Level             int
	Theme             Theme
	LevelInTheme      int
	Name              string
	Description       string
	Spawn             SpawnConfig
	Primary           string
	Secondary         string // empty when the level has none
	UnlockRequirement int    // previous level that must be completed, 0 for none
}

// MinLevelInterval is the floor applied to derived spawn intervals.
const MinLevelInterval = 150 * time.Millisecond

// LevelConfigFor derives the configuration of a level. It is pure and
// deterministic. The viewport is accepted for callers that size content to
// it; the current formulas do not depend on it.
func LevelConfigFor(level int, screenW, screenH float64) (LevelConfig, error) {
	if !platformcore.ValidLevel(level) {
		return LevelConfig{}, fmt.Errorf("levels: level %d: %w", level, platformcore.ErrUnknownLevel)
	}

	themeIndex := (level - 1) / LevelsPerTheme
	inTheme := (level-1)%LevelsPerTheme + 1
	theme := Themes()[themeIndex]
	tc, _ := ThemeConfigFor(theme)

	t := float64(inTheme-1) / 4
	g := float64(level-1) / 19

	interval := time.Duration(math.Round(800-300*t-100*g)) * time.Millisecond
	if interval < MinLevelInterval {
		interval = MinLevelInterval
	}
	speed := math.Round(160 + 80*t + 40*g)

	var sizes SizeChances
	if level >= 6 {
		sizes.Small = 0.2 + 0.2*t
	}
	if level >= 3 {
		sizes.Large = 0.15 + 0.15*t
	}
	sizes.Medium = math.Max(0, 1-sizes.Small-sizes.Large)
	if sum := sizes.Sum(); sum > 0 {
		sizes.Small /= sum
		sizes.Medium /= sum
		sizes.Large /= sum
	}

	probs := TypeProbabilities{
		Color:   1.0 - 0.3*t - 0.1*g,
		Item:    0.15*t + 0.05*g,
		Special: 0.1*t + 0.05*g,
		Avoider: 0.05*t + 0.05*g,
	}
	sum := probs.Sum()
	probs.Color /= sum
	probs.Item /= sum
	probs.Special /= sum
	probs.Avoider /= sum

	obj := levelObjectives[theme][inTheme-1]
	cfg := LevelConfig{
		Level:        level,
		Theme:        theme,
		LevelInTheme: inTheme,
		Name:         fmt.Sprintf("%s Level %d", theme.Title(), inTheme),
		Description:  levelDescriptions[theme][inTheme-1],
		Spawn: SpawnConfig{
			Interval:      interval,
			Speed:         speed,
			SizeChances:   sizes,
			Probabilities: probs,
			Colors:        tc.Colors,
			Items:         tc.Items,
			Specials:      tc.Specials,
			Avoiders:      tc.Avoiders,
		},
		Primary:   obj[0],
		Secondary: obj[1],
	}
	if level > 1 {
		cfg.UnlockRequirement = level - 1
	}
	return cfg, nil
}

// AllLevels returns every level in order.
func AllLevels(screenW, screenH float64) []LevelConfig {
	out := make([]LevelConfig, 0, platformcore.MaxLevel)
	for level := 1; level <= platformcore.MaxLevel; level++ {
		cfg, _ := LevelConfigFor(level, screenW, screenH)
		out = append(out, cfg)
	}
	return out
}

// ThemeLevels returns the levels of one theme.
func ThemeLevels(theme Theme, screenW, screenH float64) []LevelConfig {
	var out []LevelConfig
	for _, cfg := range AllLevels(screenW, screenH) {
		if cfg.Theme == theme {
			out = append(out, cfg)
		}
	}
	return out
}

// NextLevel returns the level after level, if any.
func NextLevel(level int) (int, bool) {
	next := level + 1
	if !platformcore.ValidLevel(next) {
		return 0, false
	}
	return next, true
}

// IsLevelUnlocked reports whether level can be played given the completed levels.
// Level 1 is always unlocked; every other level needs its predecessor.
func IsLevelUnlocked(level int, completed []int) bool {
	if level == 1 {
		return true
	}
	if !platformcore.ValidLevel(level) {
		return false
	}
	for _, c := range completed {
		if c == level-1 {
			return true
		}
	}
	return false
}

var levelDescriptions = map[Theme][LevelsPerTheme]string{
	ThemeFarm: {
		"Welcome to the farm! Pop the colorful bubbles to help the animals.",
		"More bubbles are appearing! Can you keep up with the harvest?",
		"The farm is getting busy! Watch out for special rainbow bubbles.",
		"Advanced farming! Large bubbles need more effort to pop.",
		"Master farmer! You're ready for the next world adventure!",
	},
	ThemeBeach: {
		"Welcome to the beach! Pop bubbles to collect seashells and treasures.",
		"The ocean waves are bringing more bubbles! Can you catch them all?",
		"Beach party time! Look for the disco bubbles that make everyone dance.",
		"The tide is rising! Small bubbles are harder to catch but worth more.",
		"Beach master! You've collected all the ocean treasures!",
	},
	ThemeCandy: {
		"Welcome to Candy Land! Pop sweet bubbles to collect treats.",
		"The candy factory is working overtime! More bubbles are coming.",
		"Sweet surprises! Giggle bubbles will make you laugh with joy.",
		"Sugar rush! Small candy bubbles are extra sweet and fast.",
		"Candy champion! You've mastered the art of sweet bubble popping!",
	},
	ThemeSpace: {
		"Welcome to space! Pop cosmic bubbles to explore the stars.",
		"The galaxy is full of bubbles! Can you reach for the stars?",
		"Cosmic adventure! Freeze bubbles will slow down time for you.",
		"Interstellar journey! Small bubbles move like shooting stars.",
		"Space explorer! You've conquered the cosmic bubble universe!",
	},
}

// levelObjectives holds {primary, secondary} per level in theme.
var levelObjectives = map[Theme][LevelsPerTheme][2]string{
	ThemeFarm: {
		{"Pop 20 colorful bubbles", "Collect 3 farm items"},
		{"Pop 30 bubbles", "Avoid mud bubbles"},
		{"Pop 25 bubbles", "Find 2 rainbow bubbles"},
		{"Pop 35 bubbles", "Pop 5 large bubbles"},
		{"Pop 40 bubbles", "Complete the farm collection"},
	},
	ThemeBeach: {
		{"Pop 20 ocean bubbles", "Collect 3 seashells"},
		{"Pop 30 bubbles", "Avoid thorny bubbles"},
		{"Pop 25 bubbles", "Find 2 disco bubbles"},
		{"Pop 35 bubbles", "Pop 5 small bubbles"},
		{"Pop 40 bubbles", "Complete the beach collection"},
	},
	ThemeCandy: {
		{"Pop 20 sweet bubbles", "Collect 3 candy treats"},
		{"Pop 30 bubbles", "Avoid slime bubbles"},
		{"Pop 25 bubbles", "Find 2 giggle bubbles"},
		{"Pop 35 bubbles", "Pop 5 small bubbles"},
		{"Pop 40 bubbles", "Complete the candy collection"},
	},
	ThemeSpace: {
		{"Pop 20 cosmic bubbles", "Collect 3 space items"},
		{"Pop 30 bubbles", "Avoid ice bubbles"},
		{"Pop 25 bubbles", "Find 2 freeze bubbles"},
		{"Pop 35 bubbles", "Pop 5 small bubbles"},
		{"Pop 40 bubbles", "Complete the space collection"},
	},
}
