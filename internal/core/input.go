package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow - move cursor up
	ActionDown           // Down arrow - move cursor down
	ActionLeft           // Left arrow - move cursor left
	ActionRight          // Right arrow - move cursor right
	ActionSelect         // Space - click the square/pad under the cursor
	ActionConfirm        // Enter - confirm, toggle recording
	ActionBack           // Escape - go back to menu
	ActionRestart        // R, only once the game is over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // Tab - pause/unpause, handled by the platform
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
	case ActionSelect:
		return "Select"
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
	default:
		return "Unknown"
	}
}

// PlayerID identifies a seat at the table. Player1 is always the local
// keyboard; Player2 is the CPU or the second hot-seat player.
type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

// InputFrame collects everything the player did between two simulation ticks.
// Actions are the mapped intents, Keys the raw typed runes in arrival order
// (pads and choices are bound to letters), Clicks the left-button presses in
// screen cell coordinates. Time is the wall clock of the tick that delivers
// the frame, with paused time removed; it is zero when no clock drives the
// game.
type InputFrame struct {
	Actions map[Action]bool
	Keys    []rune
	Clicks  []Point
	Time    time.Time
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

// AddKey records a typed rune.
func (f *InputFrame) AddKey(r rune) {
	f.Keys = append(f.Keys, r)
}

// AddClick records a left click at cell (x, y).
func (f *InputFrame) AddClick(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Empty reports whether nothing at all happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Keys) == 0 && len(f.Clicks) == 0 && !f.anyAction()
}

func (f InputFrame) anyAction() bool {
	for _, on := range f.Actions {
		if on {
			return true
		}
	}
	return false
}

// At returns the frame time, or fallback for an unstamped frame.
func (f InputFrame) At(fallback time.Time) time.Time {
	if f.Time.IsZero() {
		return fallback
	}
	return f.Time
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Keys = f.Keys[:0]
	f.Clicks = f.Clicks[:0]
	f.Time = time.Time{}
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Keys = append([]rune(nil), f.Keys...)
	clone.Clicks = append([]Point(nil), f.Clicks...)
	clone.Time = f.Time
	return clone
}
