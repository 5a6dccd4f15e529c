package core

// Action is a semantic game action, abstracted from physical key presses.
// Key bindings live in config; games only ever see actions.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Shift the falling piece one column left
	ActionRight            // Shift the falling piece one column right
	ActionRotateCW         // Rotate clockwise
	ActionRotateCCW        // Rotate counter-clockwise
	ActionSoftDrop         // One row of extra gravity
	ActionHardDrop         // Drop to the floor and lock
	ActionHold             // Swap with the held piece
	ActionUp               // Menu navigation
	ActionDown             // Menu navigation
	ActionConfirm          // Confirm a menu selection
	ActionBack             // Back to the menu
	ActionRestart          // Restart after game over
	ActionQuit             // Leave the session
	ActionPause            // Toggle pause
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionHold:      "Hold",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
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

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone returns an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
