// Package config provides the gameplay rule set (every tunable the movement,
// economy and session logic read), YAML loading for it, and process settings
// taken from the environment.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRules is wrapped by Validate failures.
var ErrInvalidRules = errors.New("config: invalid rules")

// Rules contains every recognized gameplay tunable.
// It is built once per session and passed by pointer to the movement state
// machine and the economy; nothing resolves rule keys by name at call sites.
type Rules struct {
	BaseGravity float64         `yaml:"base_gravity"` // world gravity, px/s²
	Walk        WalkRules       `yaml:"walk"`
	Jump        JumpRules       `yaml:"jump"`
	DoubleJump  DoubleJumpRules `yaml:"double_jump"`
	WallJump    WallJumpRules   `yaml:"walljump"`
	HyperJump   HyperJumpRules  `yaml:"hyperjump"`
	Semiground  SemigroundRules `yaml:"semiground"`
	Damage      DamageRules     `yaml:"damage"`
	Enemy       EnemyRules      `yaml:"enemy"`
	Level       LevelRules      `yaml:"level"`
	Player      PlayerRules     `yaml:"player"`
}

// WalkRules defines grounded horizontal movement.
type WalkRules struct {
	VelocityX float64 `yaml:"velocity_x"`
}

// JumpRules defines the normal jump and airborne gravity.
type JumpRules struct {
	VelocityX               float64 `yaml:"velocity_x"` // horizontal speed while jumping
	VelocityY               float64 `yaml:"velocity_y"` // upward impulse
	CoyoteGracePeriodMS     int     `yaml:"coyote_grace_period_ms"`
	DownGravity             float64 `yaml:"down_gravity"` // multiplier of base gravity while falling
	EarlyRelease            bool    `yaml:"early_release"`
	TerminalVelocityEnabled bool    `yaml:"terminal_velocity_enabled"`
	TerminalVelocity        float64 `yaml:"terminal_velocity"`
}

// DoubleJumpRules defines the coin-powered mid-air jump.
type DoubleJumpRules struct {
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
	Forbid    bool    `yaml:"forbid"`
}

// WallJumpRules defines the coin-powered wall jump and wall drag.
type WallJumpRules struct {
	VelocityX                   float64 `yaml:"velocity_x"`
	VelocityY                   float64 `yaml:"velocity_y"`
	GravityY                    float64 `yaml:"gravity_y"`
	IgnoreDirectionMS           int     `yaml:"ignore_direction_ms"`
	DetachGracePeriodMS         int     `yaml:"detach_grace_period_ms"`
	ContinueLerpX               float64 `yaml:"continue_lerp_x"`
	ReverseVelocityX            float64 `yaml:"reverse_velocity_x"`
	ReverseLerpX                float64 `yaml:"reverse_lerp_x"`
	Forbid                      bool    `yaml:"forbid"`
	DragTerminalVelocityEnabled bool    `yaml:"drag_terminal_velocity_enabled"`
	DragTerminalVelocity        float64 `yaml:"drag_terminal_velocity"`
}

// HyperJumpRules defines the wall-jump chain extension.
type HyperJumpRules struct {
	Enabled             bool    `yaml:"enabled"`
	Forbid              bool    `yaml:"forbid"`
	VelocityX           float64 `yaml:"velocity_x"`
	VelocityY           float64 `yaml:"velocity_y"`
	LandedGracePeriodMS int     `yaml:"landed_grace_period_ms"`
}

// SemigroundRules defines one-way platform behavior.
type SemigroundRules struct {
	DropThrough bool `yaml:"drop_through"` // holding down passes through
}

// DamageRules defines hazards and the coin economy.
type DamageRules struct {
	InvincibilityMS        int     `yaml:"invincibility_ms"`
	SpikeKnockbackX        float64 `yaml:"spike_knockback_x"`
	SpikeKnockbackY        float64 `yaml:"spike_knockback_y"`
	KnockbackIgnoreInputMS int     `yaml:"knockback_ignore_input_ms"`
	InfiniteCoins          bool    `yaml:"infinite_coins"`
}

// EnemyRules defines patrolling enemies.
type EnemyRules struct {
	WalkVelocity float64 `yaml:"walk_velocity"`
	GravityScale float64 `yaml:"gravity_scale"` // fraction of falling gravity
}

// LevelRules defines session pacing.
type LevelRules struct {
	SkipIntro      bool `yaml:"skip_intro"`
	SkipOutro      bool `yaml:"skip_outro"`
	SkipHints      bool `yaml:"skip_hints"`
	EyeTracking    bool `yaml:"eye_tracking"`
	IntroDelayMS   int  `yaml:"intro_delay_ms"`
	RespawnDelayMS int  `yaml:"respawn_delay_ms"`
	OutroMS        int  `yaml:"outro_ms"`
}

// PlayerRules defines squash and stretch feedback.
type PlayerRules struct {
	SquishMax        float64 `yaml:"squish_max"`
	SquishSpeed      float64 `yaml:"squish_speed"`
	SquishMaxEnabled bool    `yaml:"squish_max_enabled"`
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// CoyoteGracePeriod returns the post-ledge jump window.
func (r JumpRules) CoyoteGracePeriod() time.Duration { return ms(r.CoyoteGracePeriodMS) }

// IgnoreDirection returns how long input is ignored after a wall jump.
func (r WallJumpRules) IgnoreDirection() time.Duration { return ms(r.IgnoreDirectionMS) }

// DetachGracePeriod returns how long a wall still counts as touched.
func (r WallJumpRules) DetachGracePeriod() time.Duration { return ms(r.DetachGracePeriodMS) }

// LandedGracePeriod returns how long hyper-jump stays available after landing.
func (r HyperJumpRules) LandedGracePeriod() time.Duration { return ms(r.LandedGracePeriodMS) }

// Invincibility returns the post-damage invincibility window.
func (r DamageRules) Invincibility() time.Duration { return ms(r.InvincibilityMS) }

// KnockbackIgnoreInput returns the minimum knockback input lock.
func (r DamageRules) KnockbackIgnoreInput() time.Duration { return ms(r.KnockbackIgnoreInputMS) }

// IntroDelay returns the spawn delay on a fresh level load.
func (r LevelRules) IntroDelay() time.Duration { return ms(r.IntroDelayMS) }

// RespawnDelay returns the spawn delay after a death.
func (r LevelRules) RespawnDelay() time.Duration { return ms(r.RespawnDelayMS) }

// Outro returns the time between winning and the next level.
func (r LevelRules) Outro() time.Duration { return ms(r.OutroMS) }

// HyperJumpAllowed reports whether a wall jump may grant hyper-jump.
func (r *Rules) HyperJumpAllowed() bool {
	return r.HyperJump.Enabled && !r.HyperJump.Forbid
}

// Clone returns an independent copy of the rules.
func (r *Rules) Clone() *Rules {
	c := *r
	return &c
}

// Validate checks value ranges.
func (r *Rules) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(r.BaseGravity > 0, "base_gravity must be positive")
	check(r.Walk.VelocityX >= 0, "walk.velocity_x must not be negative")
	check(r.Jump.VelocityY > 0, "jump.velocity_y must be positive")
	check(r.Jump.DownGravity >= 0, "jump.down_gravity must not be negative")
	check(r.Jump.CoyoteGracePeriodMS >= 0, "jump.coyote_grace_period_ms must not be negative")
	check(!r.Jump.TerminalVelocityEnabled || r.Jump.TerminalVelocity > 0, "jump.terminal_velocity must be positive when enabled")
	check(r.WallJump.IgnoreDirectionMS >= 0, "walljump.ignore_direction_ms must not be negative")
	check(r.WallJump.DetachGracePeriodMS >= 0, "walljump.detach_grace_period_ms must not be negative")
	check(r.WallJump.ContinueLerpX >= 0 && r.WallJump.ContinueLerpX <= 1, "walljump.continue_lerp_x must be within [0, 1]")
	check(r.WallJump.ReverseLerpX >= 0 && r.WallJump.ReverseLerpX <= 1, "walljump.reverse_lerp_x must be within [0, 1]")
	check(!r.WallJump.DragTerminalVelocityEnabled || r.WallJump.DragTerminalVelocity > 0, "walljump.drag_terminal_velocity must be positive when enabled")
	check(r.HyperJump.LandedGracePeriodMS >= 0, "hyperjump.landed_grace_period_ms must not be negative")
	check(r.Damage.InvincibilityMS >= 0, "damage.invincibility_ms must not be negative")
	check(r.Damage.KnockbackIgnoreInputMS >= 0, "damage.knockback_ignore_input_ms must not be negative")
	check(r.Enemy.WalkVelocity >= 0, "enemy.walk_velocity must not be negative")
	check(r.Level.IntroDelayMS >= 0 && r.Level.RespawnDelayMS >= 0 && r.Level.OutroMS >= 0, "level delays must not be negative")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRules, problems)
	}
	return nil
}
