package session

import (
	"time"

	"github.com/vovakirdan/jumpcoins/internal/movement"
	"github.com/vovakirdan/jumpcoins/internal/save"
)

// Event is something the session reports to its observer.
type Event interface {
	sessionEvent()
}

// Observer receives session events. Events are fire-and-forget.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// JumpEvent is a jump that was seen and heard.
type JumpEvent struct {
	Kind movement.JumpKind
}

func (JumpEvent) sessionEvent() {}

// CoinCollectedEvent is emitted when the player picks up a jumpcoin.
type CoinCollectedEvent struct {
	Held      uint // coins carried after pickup
	Remaining int  // uncollected coins on the level
}

func (CoinCollectedEvent) sessionEvent() {}

// CoinSpentEvent is emitted when a coin or the lifecoin is spent.
type CoinSpentEvent struct {
	Voluntary bool
	Lifecoin  bool
	Leftward  *bool // wall jump launch direction
	Held      uint
}

func (CoinSpentEvent) sessionEvent() {}

// ShieldChangedEvent is emitted when invincibility starts, speeds up its
// blink or ends.
type ShieldChangedEvent struct {
	Invincible bool
	FastBlink  bool
}

func (ShieldChangedEvent) sessionEvent() {}

// AnimationSetEvent is emitted when the player sprite set changes between
// the coinless and coin-carrying variants.
type AnimationSetEvent struct {
	WithCoins bool
}

func (AnimationSetEvent) sessionEvent() {}

// DamageEvent is emitted for every involuntary spend.
type DamageEvent struct {
	Absorbed bool
}

func (DamageEvent) sessionEvent() {}

// DeathEvent is emitted when the lifecoin is spent.
type DeathEvent struct {
	Deaths int
}

func (DeathEvent) sessionEvent() {}

// RespawnedEvent is emitted when the spawn delay of a respawn completes.
type RespawnedEvent struct{}

func (RespawnedEvent) sessionEvent() {}

// EnemyKilledEvent is emitted when the player touches an enemy.
type EnemyKilledEvent struct {
	Living int
}

func (EnemyKilledEvent) sessionEvent() {}

// BadgeEarnedEvent is emitted the first time a badge is awarded on a level.
type BadgeEarnedEvent struct {
	Badge save.Badge
}

func (BadgeEarnedEvent) sessionEvent() {}

// WinEvent is emitted once when the level is completed.
type WinEvent struct {
	Duration     time.Duration
	PreviousBest *time.Duration
	NewBest      bool
	Earned       []save.Badge
}

func (WinEvent) sessionEvent() {}

// HintsHiddenEvent is emitted when the player reaches a hint remover.
type HintsHiddenEvent struct{}

func (HintsHiddenEvent) sessionEvent() {}

// SoundEvent asks the presentation layer to play a sound.
type SoundEvent struct {
	Name string
}

func (SoundEvent) sessionEvent() {}

// Sound names.
const (
	SoundJump       = "jump"
	SoundDoubleJump = "double_jump"
	SoundWallJump   = "wall_jump"
	SoundHyperJump  = "hyper_jump"
	SoundCoin       = "coin"
	SoundKill       = "kill"
	SoundDie        = "die"
	SoundWin        = "win"
)

func jumpSound(kind movement.JumpKind) string {
	switch kind {
	case movement.DoubleJumping:
		return SoundDoubleJump
	case movement.WallJumping:
		return SoundWallJump
	case movement.HyperJumping:
		return SoundHyperJump
	default:
		return SoundJump
	}
}
