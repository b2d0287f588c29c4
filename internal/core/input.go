package core

// Action represents a semantic player intent, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // Left arrow, A, H
	ActionRight             // Right arrow, D, L
	ActionSoftDrop          // Down arrow, S, J
	ActionRotate            // Up arrow, W, K
	ActionRestart           // R
	ActionScreenshot        // Ctrl+S
	ActionQuit              // Q, Ctrl+C
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
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionRestart:
		return "Restart"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
