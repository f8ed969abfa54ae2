package session

import (
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/economy"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/movement"
	"github.com/vovakirdan/jumpcoins/internal/physics"
)

// Player and enemy hitboxes, px.
const (
	playerSize = 24
	enemySize  = 28
)

type player struct {
	body   *physics.Body
	motion *movement.Motion
	wallet economy.Wallet

	alive         bool // false once torn down by a respawn
	visible       bool
	invincible    bool
	fastBlink     bool
	invSerial     int
	spentLifecoin bool
	touchedExit   *exit
}

type enemy struct {
	body       *physics.Body
	tile       *level.Tile
	started    bool // has touched down at least once
	movingLeft bool
	alive      bool
	tractored  bool
}

func (e *enemy) active() bool { return e.alive && !e.tractored }

type mover struct {
	body       *physics.Body
	tile       *level.Tile
	movingLeft bool
	active     bool
}

type coin struct {
	body      *physics.Body
	cell      core.Point
	collected bool
}

type exit struct {
	body *physics.Body
	cell core.Point
}

type eye struct {
	cell   core.Point
	origin core.Vec
	pupil  core.Vec
	wander core.Vec
}

// PlayerView is the render state of the player.
type PlayerView struct {
	Box        core.Box
	FacingLeft bool
	State      movement.JumpState
	Animation  movement.Animation
	Squish     movement.Squish
	Visible    bool
	Invincible bool
	FastBlink  bool
	Dead       bool
	Jumpcoins  uint
}

// EnemyView is the render state of an enemy.
type EnemyView struct {
	Box        core.Box
	Glyph      rune
	MovingLeft bool
	Alive      bool
}

// CoinView is the render state of a jumpcoin.
type CoinView struct {
	Box       core.Box
	Collected bool
}

// EyeView is the render state of an eye and its pupil.
type EyeView struct {
	Cell         core.Point
	Origin       core.Vec
	Pupil        core.Vec
	PupilVisible bool
}

// Stats are the per-session counters.
type Stats struct {
	Deaths      int
	DamageTaken int
	Jumps       int
	DoubleJumps int
	WallJumps   int
	HyperJumps  int
	Killed      int
}
