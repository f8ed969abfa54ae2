package session

import (
	"time"

	"github.com/vovakirdan/jumpcoins/internal/movement"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/storage"
)

// winLevel records the run and starts the outro. Only the first call
// has any effect.
func (s *Session) winLevel() {
	if s.winning {
		return
	}
	s.winning = true
	s.sound(SoundWin)

	d := s.now - s.startedAt
	s.duration = d

	rec := s.record()
	faster := rec.AddRun(d)

	s.award(save.BadgeCompleted)
	if s.stats.Deaths == 0 {
		s.award(save.BadgeDeathless)
	}
	if s.stats.DamageTaken == 0 {
		s.award(save.BadgeDamageless)
	}
	if s.player.wallet.Jumpcoins > 0 {
		s.award(save.BadgeBirdie)
	}
	if s.richRun || s.allCoinsCollected() {
		s.award(save.BadgeRich)
	}
	if s.killerRun {
		s.award(save.BadgeKiller)
	}
	s.persist()
	s.recordHistory(d)

	s.player.motion.Lock(movement.LockOutro)
	s.emit(WinEvent{
		Duration:     d,
		PreviousBest: s.previousBest,
		NewBest:      faster && s.previousBest != nil,
		Earned:       s.earned,
	})
	s.logger.Info("level complete", "id", s.lvl.ID, "time", d, "deaths", s.stats.Deaths, "badges", len(s.earned))

	outro := s.rules.Level.Outro()
	if s.rules.Level.SkipOutro {
		outro = 0
	}
	next := (s.index + 1) % s.deps.Pack.Count()
	s.sched.After(outro, func() {
		if s.closed {
			return
		}
		s.finish(next)
	})
}

func (s *Session) allCoinsCollected() bool {
	if len(s.coins) == 0 {
		return false
	}
	for _, c := range s.coins {
		if !c.collected {
			return false
		}
	}
	return true
}

func (s *Session) recordHistory(d time.Duration) {
	if s.deps.History == nil {
		return
	}
	player := s.deps.Player
	if player == "" {
		player = s.deps.Save.Key()
	}
	badges := make([]string, 0, len(s.earned))
	for _, b := range s.earned {
		badges = append(badges, b.String())
	}
	_, err := s.deps.History.RecordCompletion(storage.Completion{
		Player:      player,
		LevelID:     s.lvl.ID,
		RuleSet:     s.deps.RuleSet,
		Duration:    d,
		Deaths:      s.stats.Deaths,
		DamageTaken: s.stats.DamageTaken,
		Jumpcoins:   int(s.player.wallet.Jumpcoins),
		Badges:      badges,
	})
	if err != nil {
		s.logger.Error("failed to record completion", "id", s.lvl.ID, "err", err)
	}
}
