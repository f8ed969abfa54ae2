package session

import (
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/movement"
	"github.com/vovakirdan/jumpcoins/internal/physics"
	"github.com/vovakirdan/jumpcoins/internal/save"
)

// playerHooks connects the movement rules to the session.
type playerHooks struct {
	s *Session
}

func (h playerHooks) Jumped(kind movement.JumpKind) {
	s := h.s
	rec := s.record()
	switch kind {
	case movement.Jumping:
		s.stats.Jumps++
		rec.Jumps++
	case movement.DoubleJumping:
		s.stats.DoubleJumps++
		rec.DoubleJumps++
	case movement.WallJumping:
		s.stats.WallJumps++
		rec.WallJumps++
	case movement.HyperJumping:
		s.stats.HyperJumps++
		rec.HyperJumps++
	}
	s.persist()
}

func (h playerHooks) SpendCoin(voluntary bool, leftward *bool) bool {
	return h.s.spendCoin(voluntary, leftward)
}

func (h playerHooks) Announce(kind movement.JumpKind) {
	h.s.emit(JumpEvent{Kind: kind})
	h.s.sound(jumpSound(kind))
}

// spendCoin pays for a jump or a hit and reports whether the player died.
func (s *Session) spendCoin(voluntary bool, leftward *bool) (died bool) {
	p := s.player
	rec := s.record()

	if !voluntary {
		s.stats.DamageTaken++
		rec.DamageTaken++
	}

	out := p.wallet.Spend(voluntary, s.rules.Damage.InfiniteCoins)
	if !voluntary {
		s.emit(DamageEvent{Absorbed: out.Absorbed})
	}
	if out.Spent || out.LifecoinSpent {
		s.emit(CoinSpentEvent{
			Voluntary: voluntary,
			Lifecoin:  out.LifecoinSpent,
			Leftward:  leftward,
			Held:      p.wallet.Jumpcoins,
		})
	}
	if out.Spent && p.wallet.Jumpcoins == 0 {
		s.emit(AnimationSetEvent{WithCoins: false})
	}

	if out.Died {
		p.spentLifecoin = true
		s.playerDie()
		return true
	}

	if !voluntary {
		s.sound(SoundKill)
	}
	s.persist()
	return false
}

// vulnerable reports whether damage applies to the player right now.
func (s *Session) vulnerable() bool {
	p := s.player
	return !s.winning && !p.invincible && !p.spentLifecoin && !p.motion.Locked(movement.LockSpawn)
}

func (s *Session) takeSpikeDamage(spikes *physics.Body) {
	if !s.vulnerable() {
		return
	}
	if s.spendCoin(false, nil) {
		return
	}
	s.setInvincible()

	p := s.player
	kb := level.KnockbackNone
	if t := s.spikeTiles[spikes]; t != nil {
		kb = t.Knockback
	}

	kx := s.rules.Damage.SpikeKnockbackX
	facingLeft := p.motion.FacingLeft()
	switch {
	case kb == level.KnockbackLeft || (kb == level.KnockbackFacing && facingLeft):
		p.body.SetVelocityX(kx)
	case kb == level.KnockbackRight || (kb == level.KnockbackFacing && !facingLeft):
		p.body.SetVelocityX(-kx)
	}

	if kb != level.KnockbackNone {
		p.body.SetVelocityY(-s.rules.Damage.SpikeKnockbackY)
		p.motion.Knockback(s.now, s.rules.Damage.KnockbackIgnoreInput())
	}
}

// takeEnemyDamage kills the enemy and then hurts the player.
func (s *Session) takeEnemyDamage(e *enemy) {
	if !e.active() {
		return
	}
	s.killEnemy(e)

	if !s.vulnerable() {
		return
	}
	if !s.spendCoin(false, nil) {
		s.setInvincible()
	}
}

func (s *Session) killEnemy(e *enemy) {
	e.alive = false
	e.body.SetEnabled(false)
	s.livingEnemies--
	s.stats.Killed++

	if s.livingEnemies == 0 {
		s.killerRun = true
		s.award(save.BadgeKiller)
		s.persist()
	}

	s.emit(EnemyKilledEvent{Living: s.livingEnemies})
	s.sound(SoundKill)
}

// exitTractor pulls an enemy that walked into an exit off the level.
// It does not count as a kill.
func (s *Session) exitTractor(e *enemy) {
	if !e.active() {
		return
	}
	e.tractored = true
	e.body.SetEnabled(false)
}

// setInvincible starts the two-phase invincibility window.
func (s *Session) setInvincible() {
	p := s.player
	p.invSerial++
	serial := p.invSerial
	p.invincible = true
	p.fastBlink = false
	s.emit(ShieldChangedEvent{Invincible: true})

	live := func() bool { return p.alive && p.invSerial == serial }
	window := s.rules.Damage.Invincibility()

	s.sched.After(window/2, func() {
		if !live() {
			return
		}
		p.fastBlink = true
		s.emit(ShieldChangedEvent{Invincible: true, FastBlink: true})
	})
	s.sched.After(window, func() {
		if !live() {
			return
		}
		p.invincible = false
		p.fastBlink = false
		s.emit(ShieldChangedEvent{})
	})
}

func (s *Session) playerDie() {
	rec := s.record()
	s.stats.Deaths++
	rec.Deaths++
	s.player.motion.Lock(movement.LockDead)

	s.emit(DeathEvent{Deaths: s.stats.Deaths})
	s.sound(SoundDie)
	s.persist()

	s.sched.After(0, s.respawn)
}

// respawn rebuilds the player and the respawn-scoped objects. A second
// call while one is in progress does nothing.
func (s *Session) respawn() {
	if s.isRespawning {
		return
	}
	s.isRespawning = true

	s.sched.After(0, func() {
		if s.closed {
			return
		}
		s.runCleanups()
		s.createPlayer()
		s.createLevelObjects(true)
		s.randomizeEyes()
		s.spawnPlayer(s.rules.Level.RespawnDelay())
		s.logger.Debug("respawned", "id", s.lvl.ID, "deaths", s.stats.Deaths)
	})
}

func (s *Session) collectJumpcoin(c *coin) {
	if c.collected {
		return
	}
	c.collected = true

	p := s.player
	p.wallet.Collect()

	remaining := 0
	for _, other := range s.coins {
		if !other.collected {
			remaining++
		}
	}

	s.emit(CoinCollectedEvent{Held: p.wallet.Jumpcoins, Remaining: remaining})
	s.sound(SoundCoin)
	if p.wallet.Jumpcoins == 1 {
		s.emit(AnimationSetEvent{WithCoins: true})
	}

	if remaining == 0 {
		s.richRun = true
		s.award(save.BadgeRich)
		s.persist()
	}
}

// award grants a badge and remembers it if it is new.
func (s *Session) award(b save.Badge) {
	if s.record().Award(b) {
		s.earned = append(s.earned, b)
		s.emit(BadgeEarnedEvent{Badge: b})
	}
}
