package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - move left
	ActionRight            // D, Right arrow - move right
	ActionUp               // W, Up arrow
	ActionDown             // S, Down arrow - drop through semiground
	ActionJump             // Space, Z - jump
	ActionBack             // Esc - go back to menu
	ActionRestart          // R - restart the current level
	ActionNextLevel        // ] - skip to the next level
	ActionPrevLevel        // [ - skip to the previous level
	ActionQuit             // Q, Ctrl+C - exit
	ActionPause            // P - pause/unpause
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
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsButton reports whether the action maps to a held logical button
// rather than a one-shot command.
func (a Action) IsButton() bool {
	switch a {
	case ActionLeft, ActionRight, ActionUp, ActionDown, ActionJump:
		return true
	}
	return false
}
