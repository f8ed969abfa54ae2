package movement

import "time"

// JumpKind tags the player's jump state.
type JumpKind int

const (
	// Grounded means no jump is in progress. The player may still be in the
	// air after walking off a ledge.
	Grounded JumpKind = iota
	Jumping
	DoubleJumping
	WallJumping
	HyperJumping
)

// String returns the kind name.
func (k JumpKind) String() string {
	switch k {
	case Jumping:
		return "jump"
	case DoubleJumping:
		return "double_jump"
	case WallJumping:
		return "wall_jump"
	case HyperJumping:
		return "hyper_jump"
	default:
		return "grounded"
	}
}

// WallPhase is the horizontal sub-state of a wall jump.
// Held and Continuing start set; Contra replaces both once entered.
type WallPhase struct {
	IgnoreUntil time.Duration // input is ignored before this time
	Held        bool          // launch direction still held
	Continuing  bool          // decaying toward walk speed
	Contra      bool          // opposite direction held
}

// Ignoring reports whether horizontal input is still ignored at now.
func (p WallPhase) Ignoring(now time.Duration) bool {
	return now < p.IgnoreUntil
}

// JumpState is the tagged jump state. Wall is only meaningful when Kind is
// WallJumping.
type JumpState struct {
	Kind JumpKind
	Wall WallPhase
}

func stateOf(kind JumpKind) JumpState {
	return JumpState{Kind: kind}
}

// Lock is a set of reasons for ignoring player input.
type Lock uint8

const (
	LockKnockback Lock = 1 << iota
	LockSpawn
	LockOutro
	LockDead
)

// Animation is the render hint derived each tick.
type Animation int

const (
	AnimNeutral Animation = iota
	AnimWalk
	AnimJumpUp
	AnimJumpDown
	AnimDrag
)

func (a Animation) String() string {
	switch a {
	case AnimWalk:
		return "walk"
	case AnimJumpUp:
		return "jump_up"
	case AnimJumpDown:
		return "jump_down"
	case AnimDrag:
		return "drag"
	default:
		return "neutral"
	}
}

// Squish is the squash and stretch scale pair.
type Squish struct {
	X, Y float64
}
