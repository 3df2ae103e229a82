package core

// Action represents a semantic input, abstracted from physical key presses.
// Scenes work with intents rather than raw keys.
type Action int

const (
	ActionNone       Action = iota
	ActionSteerLeft         // Left arrow, A - nudge handlebar left
	ActionSteerRight        // Right arrow, D - nudge handlebar right
	ActionSpeedUp           // Up arrow, + - raise speed
	ActionSpeedDown         // Down arrow, - - lower speed
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R, Space - start a new run after a crash
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P - stop/resume the tick scheduler
	ActionAssist            // Tab - toggle the autopilot
	ActionMode              // M - switch scripted demonstration mode
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionSpeedUp:
		return "SpeedUp"
	case ActionSpeedDown:
		return "SpeedDown"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionAssist:
		return "Assist"
	case ActionMode:
		return "Mode"
	default:
		return "Unknown"
	}
}

// Pointer is a horizontal pointer position over the interactive surface.
type Pointer struct {
	X     float64 // Position from the left edge of the surface
	Width float64 // Surface width in the same units as X
}

// InputFrame represents the input collected between two simulation ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer holds the most recent pointer position, if any arrived.
	// Later moves overwrite earlier ones: the last write wins.
	Pointer *Pointer
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

// MovePointer records a pointer position, replacing any earlier one.
func (f *InputFrame) MovePointer(x, width float64) {
	f.Pointer = &Pointer{X: x, Width: width}
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Pointer != nil {
		p := *f.Pointer
		clone.Pointer = &p
	}
	return clone
}
