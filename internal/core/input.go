package core

// Action is a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Move the selection left
	ActionRight          // Move the selection right
	ActionDeploy         // Deploy the selected frog
	ActionFocus          // Switch between pool and waiting area
	ActionAuto           // Let the autoplay policy deploy
	ActionPause          // Pause or resume time
	ActionRestart        // Restart the same level and seed
	ActionShare          // Show the share code
	ActionBack           // Back to the level picker
	ActionQuit           // Exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDeploy:
		return "Deploy"
	case ActionFocus:
		return "Focus"
	case ActionAuto:
		return "Auto"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionShare:
		return "Share"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks,
// in the order they were pressed.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the recorded actions in order.
func (f InputFrame) Actions() []Action {
	return append([]Action(nil), f.actions...)
}

// Len returns the number of recorded actions.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
