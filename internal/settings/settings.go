// Package settings persists the player's accessibility flags.
// Flags are stored as a YAML blob through gdata so they live in the
// platform's per-user data directory.
package settings

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name.
const AppName = "bubblepop"

const (
	settingsObject   = "settings"
	settingsProperty = "accessibility"
)

// Accessibility holds the three player-facing accessibility flags.
type Accessibility struct {
	ReduceMotion  bool `yaml:"reduce_motion"`   // no particle effects
	ColorAssist   bool `yaml:"color_assist"`    // draw a shape glyph inside every bubble
	LongPressMode bool `yaml:"long_press_mode"` // pops need a held press
}

// Flag names accepted by Set and Get.
const (
	FlagReduceMotion  = "reduce_motion"
	FlagColorAssist   = "color_assist"
	FlagLongPressMode = "long_press_mode"
)

// Flags returns the flag names in display order.
func Flags() []string {
	return []string{FlagReduceMotion, FlagColorAssist, FlagLongPressMode}
}

// Manager loads and saves accessibility settings.
// A nil gdata manager runs in memory only.
type Manager struct {
	data     *gdata.Manager
	settings Accessibility
	logger   *log.Logger
}

// Open creates a gdata-backed manager for AppName.
func Open(logger *log.Logger) (*Manager, error) {
	data, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("settings: cannot open data directory: %w", err)
	}
	return NewManager(data, logger), nil
}

// NewManager creates a manager and loads any saved settings.
// Load failures fall back to defaults.
func NewManager(data *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{data: data, logger: logger}
	if err := m.Load(); err != nil {
		logger.Warn("failed to load settings, using defaults", "error", err)
	}
	return m
}

// Load reads saved settings. Missing settings are not an error.
func (m *Manager) Load() error {
	m.settings = Accessibility{}
	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: cannot load: %w", err)
	}
	var loaded Accessibility
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("settings: cannot parse: %w", err)
	}
	m.settings = loaded
	m.logger.Debug("settings loaded", "settings", loaded)
	return nil
}

// Save writes the current settings. It is a no-op without a gdata manager.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("settings: cannot save: %w", err)
	}
	return nil
}

// Accessibility returns a copy of the current flags.
func (m *Manager) Accessibility() Accessibility {
	if m == nil {
		return Accessibility{}
	}
	return m.settings
}

// SetAccessibility replaces all flags in memory. Call Save to persist.
func (m *Manager) SetAccessibility(a Accessibility) {
	m.settings = a
}

// Set changes one flag by name in memory. Call Save to persist.
func (m *Manager) Set(flag string, value bool) error {
	switch normalize(flag) {
	case FlagReduceMotion:
		m.settings.ReduceMotion = value
	case FlagColorAssist:
		m.settings.ColorAssist = value
	case FlagLongPressMode:
		m.settings.LongPressMode = value
	default:
		return fmt.Errorf("settings: unknown flag %q", flag)
	}
	return nil
}

// Get returns one flag by name.
func (m *Manager) Get(flag string) (bool, error) {
	switch normalize(flag) {
	case FlagReduceMotion:
		return m.settings.ReduceMotion, nil
	case FlagColorAssist:
		return m.settings.ColorAssist, nil
	case FlagLongPressMode:
		return m.settings.LongPressMode, nil
	default:
		return false, fmt.Errorf("settings: unknown flag %q", flag)
	}
}

// ParseBool accepts on/off and yes/no in addition to strconv.ParseBool forms.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("settings: invalid value %q", s)
	}
	return v, nil
}

// normalize maps "reduce-motion" and "ReduceMotion" style names to flag names.
func normalize(flag string) string {
	f := strings.ToLower(strings.TrimSpace(flag))
	f = strings.ReplaceAll(f, "-", "_")
	switch f {
	case "reducemotion":
		return FlagReduceMotion
	case "colorassist":
		return FlagColorAssist
	case "longpressmode", "longpress", "long_press":
		return FlagLongPressMode
	}
	return f
}
