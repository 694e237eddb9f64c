package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubblepop/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Pop           key.Binding
	Pause         key.Binding
	SlowMo        key.Binding
	SpawnFaster   key.Binding
	SpawnSlower   key.Binding
	Deterministic key.Binding
	Finish        key.Binding
	Restart       key.Binding
	Back          key.Binding
	Quit          key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pop, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Pop},
		{k.Pause, k.Restart, k.Finish, k.Back, k.Quit},
		{k.SlowMo, k.SpawnFaster, k.SpawnSlower, k.Deterministic},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:         key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Pop:           key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "pop")),
		Pause:         key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		SlowMo:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "slow-mo")),
		SpawnFaster:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "spawn faster")),
		SpawnSlower:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "spawn slower")),
		Deterministic: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "fixed seed")),
		Finish:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
		Restart:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:          key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b/esc", "levels")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Pop):
		return core.ActionPop, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.SlowMo):
		return core.ActionSlowMo, false
	case key.Matches(msg, k.SpawnFaster):
		return core.ActionSpawnFaster, false
	case key.Matches(msg, k.SpawnSlower):
		return core.ActionSpawnSlower, false
	case key.Matches(msg, k.Deterministic):
		return core.ActionDeterministic, false
	case key.Matches(msg, k.Finish):
		return core.ActionFinish, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Back is left to the caller. Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionBack && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionProgress
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionProgress
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
