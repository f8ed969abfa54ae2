// Package movement implements the player's motion rules: jump selection,
// the wall-jump sub-states, horizontal velocity resolution and the per-tick
// bookkeeping that follows collisions.
package movement

import (
	"math"
	"time"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/physics"
)

// longAgo is the initial value of every touch timestamp.
const longAgo = -time.Hour

// risingThreshold is the vertical speed below which down-gravity kicks in.
const risingThreshold = -40

// squishNorm normalizes velocities for squash and stretch (tile size squared).
const squishNorm = 32 * 32

// Body is the part of a physics body the motion rules read and write.
type Body interface {
	Touching() physics.Touching
	Velocity() core.Vec
	SetVelocityX(x float64)
	SetVelocityY(y float64)
	SetAccelerationX(a float64)
	SetGravityY(g float64)
	SetDropThrough(drop bool)
}

// Hooks receives jump side effects.
type Hooks interface {
	// Jumped counts a jump. It runs before any coin is spent for it.
	Jumped(kind JumpKind)
	// SpendCoin pays for a wall or double jump. leftward is the launch
	// direction of a wall jump and nil otherwise. It returns true when the
	// spend killed the player and the jump should not be announced.
	SpendCoin(voluntary bool, leftward *bool) (suppress bool)
	// Announce reports a jump that should be seen and heard.
	Announce(kind JumpKind)
}

type noHooks struct{}

func (noHooks) Jumped(JumpKind)            {}
func (noHooks) SpendCoin(bool, *bool) bool { return false }
func (noHooks) Announce(JumpKind)          {}

// Motion is the movement state machine of one player.
type Motion struct {
	rules *config.Rules
	body  Body
	hooks Hooks

	state        JumpState
	facingLeft   bool
	wallJumpLeft bool
	hasLiftedOff bool

	canDoubleJump bool
	canWallJump   bool
	canHyperJump  bool

	touchDownTime     time.Duration
	touchingLeftTime  time.Duration
	touchingRightTime time.Duration
	landed            bool
	landedTime        time.Duration

	locks             Lock
	knockbackCancelAt time.Duration

	anim   Animation
	squish Squish
}

// New creates the motion for a freshly spawned player. Double and wall jumps
// become available after the first landing.
func New(rules *config.Rules, body Body, hooks Hooks, facingLeft bool) *Motion {
	if hooks == nil {
		hooks = noHooks{}
	}
	return &Motion{
		rules:             rules,
		body:              body,
		hooks:             hooks,
		facingLeft:        facingLeft,
		touchDownTime:     longAgo,
		touchingLeftTime:  longAgo,
		touchingRightTime: longAgo,
		squish:            Squish{X: 1, Y: 1},
	}
}

// State returns the current jump state.
func (m *Motion) State() JumpState { return m.state }

// IsJumping reports whether any jump is in progress.
func (m *Motion) IsJumping() bool { return m.state.Kind != Grounded }

func (m *Motion) IsDoubleJumping() bool { return m.state.Kind == DoubleJumping }
func (m *Motion) IsWallJumping() bool   { return m.state.Kind == WallJumping }
func (m *Motion) IsHyperJumping() bool  { return m.state.Kind == HyperJumping }

func (m *Motion) CanDoubleJump() bool { return m.canDoubleJump }
func (m *Motion) CanWallJump() bool   { return m.canWallJump }
func (m *Motion) CanHyperJump() bool  { return m.canHyperJump }

// FacingLeft reports the facing direction.
func (m *Motion) FacingLeft() bool { return m.facingLeft }

// WallJumpLeft reports the launch direction of the last wall jump.
func (m *Motion) WallJumpLeft() bool { return m.wallJumpLeft }

// Animation returns the render hint from the last update.
func (m *Motion) Animation() Animation { return m.anim }

// Squish returns the squash and stretch scale from the last update.
func (m *Motion) Squish() Squish { return m.squish }

// Lock adds input locks.
func (m *Motion) Lock(l Lock) { m.locks |= l }

// Unlock removes input locks.
func (m *Motion) Unlock(l Lock) { m.locks &^= l }

// Locked reports whether any of the given locks is held.
func (m *Motion) Locked(l Lock) bool { return m.locks&l != 0 }

// Knockback locks input until the player touches a surface at least after
// minimum has passed.
func (m *Motion) Knockback(now, minimum time.Duration) {
	m.locks |= LockKnockback
	m.knockbackCancelAt = now + minimum
}

// Update runs one fixed tick: input processing, then frame bookkeeping.
func (m *Motion) Update(now, dt time.Duration, in core.Buttons) {
	if m.locks != 0 {
		in = core.IdleButtons()
	}
	if m.rules.Semiground.DropThrough {
		m.body.SetDropThrough(in.Down.Held)
	}
	m.processInput(now, in)
	m.frameUpdates(now, dt, in)
}

func (m *Motion) processInput(now time.Duration, in core.Buttons) {
	r := m.rules
	t := m.body.Touching()

	canJump := t.Down || (m.state.Kind == Grounded && now-m.touchDownTime < r.Jump.CoyoteGracePeriod())

	if m.landed && now-m.landedTime > r.HyperJump.LandedGracePeriod() {
		m.canHyperJump = false
	}

	grace := r.WallJump.DetachGracePeriod()
	var wallLeft, wallRight bool
	if grace > 0 {
		wallLeft = now-m.touchingLeftTime < grace && in.Left.ReleasedDuration < grace
		wallRight = now-m.touchingRightTime < grace && in.Right.ReleasedDuration < grace
	} else {
		wallLeft = t.Left && in.Left.Held
		wallRight = t.Right && in.Right.Held
	}

	if in.Jump.JustStarted {
		switch {
		case canJump && m.canHyperJump && r.HyperJumpAllowed():
			m.hyperJump()
		case canJump:
			m.jump()
		case m.canWallJump && (wallLeft || wallRight):
			m.wallJump(now)
		case m.canDoubleJump && m.state.Kind != WallJumping && m.state.Kind != HyperJumping:
			m.doubleJump()
		}
	}

	// A wall in the launch direction ends the wall or hyper jump outright.
	if m.state.Kind == WallJumping || m.state.Kind == HyperJumping {
		if (m.wallJumpLeft && t.Left) || (!m.wallJumpLeft && t.Right) {
			m.body.SetVelocityX(0)
			m.body.SetAccelerationX(0)
			m.state = stateOf(Jumping)
			m.canHyperJump = false
		}
	}

	ignoring := m.state.Kind == WallJumping && m.state.Wall.Ignoring(now)
	contraHeld := (m.wallJumpLeft && in.Right.Held) || (!m.wallJumpLeft && in.Left.Held)
	launchHeld := (m.wallJumpLeft && in.Left.Held) || (!m.wallJumpLeft && in.Right.Held)

	if m.state.Kind == WallJumping {
		w := &m.state.Wall
		if !ignoring && contraHeld {
			w.Contra = true
		}
		if w.Contra {
			w.Continuing = false
			w.Held = false
			m.canHyperJump = false
		}
	}

	if !ignoring && !launchHeld {
		m.state.Wall.Held = false
		m.canHyperJump = false
	}

	m.resolveHorizontal(in, ignoring, contraHeld)
}

func (m *Motion) resolveHorizontal(in core.Buttons, ignoring, contraHeld bool) {
	r := m.rules
	wall := m.state.Kind == WallJumping
	w := m.state.Wall

	switch {
	case ignoring || (wall && w.Held) || m.state.Kind == HyperJumping:
		x := r.WallJump.VelocityX
		if m.state.Kind == HyperJumping {
			x = r.HyperJump.VelocityX
		}
		m.body.SetVelocityX(core.Sign(m.facingLeft) * x)

	case wall && w.Continuing:
		target := core.Sign(m.wallJumpLeft) * r.Walk.VelocityX
		vx := m.body.Velocity().X
		m.body.SetVelocityX(core.Lerp(vx, target, r.WallJump.ContinueLerpX))

	case wall && w.Contra:
		target := r.WallJump.ReverseVelocityX
		if in.Left.Held {
			target = -target
		}
		vx := m.body.Velocity().X
		m.body.SetVelocityX(core.Lerp(vx, target, r.WallJump.ReverseLerpX))

	default:
		x := r.Walk.VelocityX
		switch m.state.Kind {
		case WallJumping:
			x = r.Jump.VelocityX
			if contraHeld {
				x = r.WallJump.ReverseVelocityX
			}
		case DoubleJumping:
			x = r.DoubleJump.VelocityX
		case Jumping, HyperJumping:
			x = r.Jump.VelocityX
		}

		switch {
		case in.Left.Held:
			m.body.SetVelocityX(-x)
			m.facingLeft = true
		case in.Right.Held:
			m.body.SetVelocityX(x)
			m.facingLeft = false
		case !m.Locked(LockKnockback):
			m.body.SetVelocityX(0)
		}
	}
}

func (m *Motion) liftOff(kind JumpKind) {
	m.state = stateOf(kind)
	m.hasLiftedOff = false
	m.body.SetGravityY(0)
}

func (m *Motion) hyperJump() {
	m.liftOff(HyperJumping)
	m.body.SetVelocityY(-m.rules.HyperJump.VelocityY)
	m.hooks.Jumped(HyperJumping)
	m.hooks.Announce(HyperJumping)
}

func (m *Motion) jump() {
	m.liftOff(Jumping)
	m.body.SetVelocityY(-m.rules.Jump.VelocityY)
	m.hooks.Jumped(Jumping)
	m.hooks.Announce(Jumping)
}

func (m *Motion) wallJump(now time.Duration) {
	r := m.rules
	m.liftOff(WallJumping)
	m.body.SetGravityY(r.WallJump.GravityY)
	m.body.SetVelocityY(-r.WallJump.VelocityY)

	// Jump away from whichever wall was touched last.
	m.facingLeft = m.touchingRightTime > m.touchingLeftTime
	m.wallJumpLeft = m.facingLeft
	m.canHyperJump = r.HyperJumpAllowed()
	m.state.Wall = WallPhase{
		IgnoreUntil: now + r.WallJump.IgnoreDirection(),
		Held:        true,
		Continuing:  true,
	}

	m.hooks.Jumped(WallJumping)
	left := m.wallJumpLeft
	if !m.hooks.SpendCoin(true, &left) {
		m.hooks.Announce(WallJumping)
	}
}

func (m *Motion) doubleJump() {
	m.liftOff(DoubleJumping)
	m.canDoubleJump = false
	m.body.SetVelocityY(-m.rules.DoubleJump.VelocityY)

	m.hooks.Jumped(DoubleJumping)
	if !m.hooks.SpendCoin(true, nil) {
		m.hooks.Announce(DoubleJumping)
	}
}

func (m *Motion) frameUpdates(now, dt time.Duration, in core.Buttons) {
	r := m.rules
	t := m.body.Touching()

	if r.Jump.TerminalVelocityEnabled && m.body.Velocity().Y > r.Jump.TerminalVelocity {
		m.body.SetVelocityY(r.Jump.TerminalVelocity)
	}
	v := m.body.Velocity()

	pressingWall := (t.Left && in.Left.Held) || (t.Right && in.Right.Held)
	switch {
	case t.Down && (in.Left.Held || in.Right.Held):
		m.anim = AnimWalk
	case t.Down:
		m.anim = AnimNeutral
	case v.Y <= 0:
		m.anim = AnimJumpUp
	case pressingWall:
		m.anim = AnimDrag
	default:
		m.anim = AnimJumpDown
	}

	if t.Left {
		m.touchingLeftTime = now
	}
	if t.Right {
		m.touchingRightTime = now
	}

	if t.Down {
		m.touchDownTime = now
		if !m.landed {
			m.landed = true
			m.landedTime = now
		}
	} else {
		m.landed = false
	}

	if m.Locked(LockKnockback) && now >= m.knockbackCancelAt && t.Any() {
		m.Unlock(LockKnockback)
	}

	if !t.Down && (v.Y > risingThreshold || (!in.Jump.Held && r.Jump.EarlyRelease)) {
		m.body.SetGravityY(r.BaseGravity * r.Jump.DownGravity)
	}

	if t.Down && m.hasLiftedOff {
		m.body.SetGravityY(0)
		m.state = stateOf(Grounded)
		m.hasLiftedOff = false
		m.canDoubleJump = !r.DoubleJump.Forbid
		m.canWallJump = !r.WallJump.Forbid
	} else if !t.Down {
		m.hasLiftedOff = true
	}

	m.updateSquish(dt, t, in, pressingWall)
}

func (m *Motion) updateSquish(dt time.Duration, t physics.Touching, in core.Buttons, pressingWall bool) {
	r := m.rules
	v := m.body.Velocity()

	vx := math.Abs(v.X) / squishNorm
	vy := math.Abs(v.Y) / squishNorm
	if vx+vy > 0 {
		vx, vy = (vx-vy)/(vx+vy), (vy-vx)/(vx+vy)
	}

	if pressingWall {
		if v.Y > 0 {
			vx, vy = 0.7, -0.7
			m.anim = AnimDrag
		}
		if r.WallJump.DragTerminalVelocityEnabled && v.Y >= r.WallJump.DragTerminalVelocity {
			m.body.SetVelocityY(r.WallJump.DragTerminalVelocity)
		}
	}

	switch {
	case m.state.Kind == DoubleJumping:
		vy += 0.7
		vx -= 0.7
	case m.state.Kind == WallJumping || m.state.Kind == HyperJumping || m.canHyperJump:
		vx += 0.7
		vy -= 0.7
	}

	if !r.Player.SquishMaxEnabled {
		m.squish = Squish{X: 1, Y: 1}
		return
	}

	vx = vx*r.Player.SquishMax + 1
	vy = vy*r.Player.SquishMax + 1
	f := r.Player.SquishSpeed * float64(dt) / float64(time.Second/60)
	// Horizontal speed stretches the Y scale and vice versa.
	m.squish = Squish{
		X: m.squish.X + f*(vy-m.squish.X),
		Y: m.squish.Y + f*(vx-m.squish.Y),
	}
}
