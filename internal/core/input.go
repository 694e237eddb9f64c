package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone          Action = iota
	ActionUp                   // Up arrow, K - move cursor up
	ActionDown                 // Down arrow, J - move cursor down
	ActionLeft                 // Left arrow, H - move cursor left
	ActionRight                // Right arrow, L - move cursor right
	ActionPop                  // Space, Enter - pop the bubble under the cursor
	ActionPause                // P - pause/unpause the run
	ActionSlowMo               // S - toggle slow motion
	ActionSpawnFaster          // + - raise the spawn rate multiplier
	ActionSpawnSlower          // - - lower the spawn rate multiplier
	ActionDeterministic        // D - toggle the fixed-seed spawner
	ActionFinish               // F - end the run now
	ActionRestart              // R - restart the level
	ActionBack                 // B, Escape - back to the level menu
	ActionQuit                 // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPop:
		return "Pop"
	case ActionPause:
		return "Pause"
	case ActionSlowMo:
		return "SlowMo"
	case ActionSpawnFaster:
		return "SpawnFaster"
	case ActionSpawnSlower:
		return "SpawnSlower"
	case ActionDeterministic:
		return "Deterministic"
	case ActionFinish:
		return "Finish"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerEvent is a completed press on a screen cell.
// Held is how long the button was down before release; zero for plain clicks.
type PointerEvent struct {
	X, Y int
	Held int64 // milliseconds
}

// InputFrame represents the input state during one frame.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
	// Pointers are the pointer presses completed this frame, in arrival order.
	Pointers []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer queues a pointer press for this frame.
func (f *InputFrame) AddPointer(p PointerEvent) {
	f.Pointers = append(f.Pointers, p)
}

// Empty reports whether nothing was triggered this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Pointers) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointers = f.Pointers[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointers = append([]PointerEvent(nil), f.Pointers...)
	return clone
}
