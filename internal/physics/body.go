package physics

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/jumpcoins/internal/core"
)

// Motion describes how the world moves a body.
type Motion int

const (
	Static    Motion = iota // never moves
	Dynamic                 // integrated with gravity and collisions
	Kinematic               // moves by velocity, ignores collisions, carries riders
)

// Touching holds the per-step contact flags of a body.
type Touching struct {
	Up, Down, Left, Right bool
}

// Any reports whether any side is touching.
func (t Touching) Any() bool {
	return t.Up || t.Down || t.Left || t.Right
}

// Side names the side of a body where a contact happened.
type Side int

const (
	SideNone Side = iota // overlap
	SideUp
	SideDown
	SideLeft
	SideRight
)

// Body is one collision box in the world.
type Body struct {
	kind   Kind
	motion Motion
	obj    *resolv.Object
	box    core.Box

	vel          core.Vec
	accX         float64
	gravityY     float64
	allowGravity bool
	enabled      bool
	dropThrough  bool

	touching Touching
	floor    *Body
	delta    core.Vec // kinematic displacement in the last step
}

// Kind returns the body's tag.
func (b *Body) Kind() Kind { return b.kind }

// Motion returns how the body moves.
func (b *Body) Motion() Motion { return b.motion }

// Box returns the body's bounds.
func (b *Body) Box() core.Box { return b.box }

// Position returns the top-left corner.
func (b *Body) Position() core.Vec { return core.V(b.box.X, b.box.Y) }

// Center returns the center of the body.
func (b *Body) Center() core.Vec { return b.box.Center() }

// SetPosition teleports the body.
func (b *Body) SetPosition(x, y float64) {
	b.box.X, b.box.Y = x, y
	b.sync()
}

// Touching returns the contact flags from the last step.
func (b *Body) Touching() Touching { return b.touching }

// Velocity returns the body velocity in px/s.
func (b *Body) Velocity() core.Vec { return b.vel }

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(x, y float64) { b.vel = core.V(x, y) }

// SetVelocityX sets the horizontal velocity.
func (b *Body) SetVelocityX(x float64) { b.vel.X = x }

// SetVelocityY sets the vertical velocity.
func (b *Body) SetVelocityY(y float64) { b.vel.Y = y }

// SetAccelerationX sets a constant horizontal acceleration.
func (b *Body) SetAccelerationX(a float64) { b.accX = a }

// SetGravityY sets gravity added on top of the world gravity.
func (b *Body) SetGravityY(g float64) { b.gravityY = g }

// GravityY returns the body's extra gravity.
func (b *Body) GravityY() float64 { return b.gravityY }

// SetAllowGravity toggles world gravity for the body.
func (b *Body) SetAllowGravity(allow bool) { b.allowGravity = allow }

// SetEnabled enables or disables collisions and movement.
func (b *Body) SetEnabled(enabled bool) {
	b.enabled = enabled
	if !enabled {
		b.touching = Touching{}
		b.floor = nil
	}
}

// Enabled reports whether the body takes part in the simulation.
func (b *Body) Enabled() bool { return b.enabled }

// SetDropThrough lets the body fall through semiground while set.
func (b *Body) SetDropThrough(drop bool) { b.dropThrough = drop }

// Floor returns the body this one stood on after the last step, or nil.
func (b *Body) Floor() *Body { return b.floor }

func (b *Body) sync() {
	b.obj.X = b.box.X
	b.obj.Y = b.box.Y
	b.obj.Update()
}
