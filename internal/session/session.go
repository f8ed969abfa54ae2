// Package session runs one attempt at a level: loading, play, death and
// respawn, and the win sequence that records progress.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/movement"
	"github.com/vovakirdan/jumpcoins/internal/physics"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/storage"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseLoading Phase = iota // waiting out the intro spawn delay
	PhasePlaying
	PhaseRespawning
	PhaseWinning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseRespawning:
		return "respawning"
	case PhaseWinning:
		return "winning"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// History records won runs.
type History interface {
	RecordCompletion(c storage.Completion) (int64, error)
}

// Deps are the collaborators shared by every session of a game.
type Deps struct {
	Rules    *config.Rules
	Pack     *level.Pack
	Save     *save.Store
	History  History // optional
	Player   string  // history owner, defaults to the save key
	RuleSet  string
	Observer Observer // optional
	Logger   *log.Logger
	Rand     *rand.Rand
}

// Session is one attempt at one level.
type Session struct {
	deps   Deps
	rules  *config.Rules
	logger *log.Logger
	rng    *rand.Rand

	index int
	lvl   *level.Level
	spawn core.Point
	world *physics.World
	sched *scheduler

	now          time.Duration
	startedAt    time.Duration
	previousBest *time.Duration

	player  *player
	enemies []*enemy
	movers  []*mover
	hints   []*physics.Body
	coins   []*coin
	exits   []*exit
	eyes    []*eye

	spikeTiles map[*physics.Body]*level.Tile
	enemyOf    map[*physics.Body]*enemy
	coinOf     map[*physics.Body]*coin
	exitOf     map[*physics.Body]*exit

	livingEnemies int
	cleanups      []func()

	stats        Stats
	earned       []save.Badge
	richRun      bool
	killerRun    bool
	hintsRemoved bool

	isRespawning bool
	winning      bool
	finished     bool
	closed       bool
	duration     time.Duration
	next         int
}

// New loads level index of the pack at simulation time now.
// The player spawns after the intro delay unless skipIntro is set.
func New(deps Deps, index int, skipIntro bool, now time.Duration) (*Session, error) {
	if deps.Rules == nil || deps.Pack == nil || deps.Save == nil {
		return nil, errors.New("session: rules, pack and save are required")
	}
	lvl, err := deps.Pack.Get(index)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	spawn, err := lvl.Spawn()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		deps:       deps,
		rules:      deps.Rules,
		logger:     deps.Logger,
		rng:        deps.Rand,
		index:      index,
		lvl:        lvl,
		spawn:      spawn,
		sched:      newScheduler(now),
		now:        now,
		startedAt:  now,
		spikeTiles: make(map[*physics.Body]*level.Tile),
		enemyOf:    make(map[*physics.Body]*enemy),
		coinOf:     make(map[*physics.Body]*coin),
		exitOf:     make(map[*physics.Body]*exit),
	}

	deps.Save.SetLevelIndex(index)
	deps.Save.Persist()
	if best, ok := s.record().Best(); ok {
		s.previousBest = &best
	}

	b := lvl.Bounds()
	s.world = physics.NewWorld(b.W, b.H, level.TileSize)
	s.world.SetGravity(s.rules.BaseGravity)
	s.buildStatics()
	s.createPlayer()
	s.createLevelObjects(false)
	s.randomizeEyes()
	s.updateEyes(true)

	delay := s.rules.Level.IntroDelay()
	if skipIntro || s.rules.Level.SkipIntro {
		delay = 0
	}
	s.spawnPlayer(delay)

	s.logger.Debug("level loaded", "id", lvl.ID, "index", index, "delay", delay)
	return s, nil
}

func (s *Session) emit(e Event) {
	if s.deps.Observer != nil {
		s.deps.Observer.OnEvent(e)
	}
}

func (s *Session) sound(name string) {
	s.emit(SoundEvent{Name: name})
}

func (s *Session) record() *save.LevelRecord {
	return s.deps.Save.Level(s.lvl.ID)
}

func (s *Session) persist() {
	s.deps.Save.Persist()
}

// onRespawn queues fn for the next respawn teardown.
func (s *Session) onRespawn(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

func (s *Session) runCleanups() {
	fns := s.cleanups
	s.cleanups = nil
	for _, fn := range fns {
		fn()
	}
}

func (s *Session) buildStatics() {
	for _, span := range s.lvl.Statics() {
		var kind physics.Kind
		switch span.Tile.Group {
		case level.GroupGround:
			kind = physics.KindGround
		case level.GroupSemiground:
			kind = physics.KindSemiground
		case level.GroupSpikes:
			kind = physics.KindSpikes
		default:
			continue
		}
		box := level.CellBox(span.X, span.Y)
		box.H *= float64(span.Height)
		body := s.world.AddStatic(kind, box)
		if kind == physics.KindSpikes {
			s.spikeTiles[body] = span.Tile
		}
	}
}

func (s *Session) createPlayer() {
	cell := level.CellBox(s.spawn.X, s.spawn.Y)
	box := core.Box{
		X: cell.X + (level.TileSize-playerSize)/2,
		Y: cell.Bottom() - playerSize - 2,
		W: playerSize,
		H: playerSize,
	}
	p := &player{alive: true, visible: true}
	p.body = s.world.AddDynamic(physics.KindPlayer, box)
	p.motion = movement.New(s.rules, p.body, playerHooks{s}, s.lvl.FacingLeft)
	s.player = p

	s.onRespawn(func() {
		p.alive = false
		s.world.Remove(p.body)
	})
}

// createLevelObjects builds the per-session objects. On respawn the
// persistent ones (exits, eyes, jumpcoins) are kept.
func (s *Session) createLevelObjects(isRespawn bool) {
	s.enemies, s.movers, s.hints = nil, nil, nil

	for _, pl := range s.lvl.Objects() {
		t := pl.Tile
		if isRespawn && t.PersistsAcrossRespawn() {
			continue
		}
		box := level.CellBox(pl.X, pl.Y)
		cell := core.Point{X: pl.X, Y: pl.Y}

		switch t.Group {
		case level.GroupJumpcoins:
			c := &coin{body: s.world.AddStatic(physics.KindJumpcoin, box), cell: cell}
			s.coins = append(s.coins, c)
			s.coinOf[c.body] = c

		case level.GroupExits:
			e := &exit{body: s.world.AddStatic(physics.KindExit, box), cell: cell}
			s.exits = append(s.exits, e)
			s.exitOf[e.body] = e

		case level.GroupEyes:
			s.eyes = append(s.eyes, &eye{cell: cell, origin: box.Center(), pupil: box.Center()})

		case level.GroupEnemies:
			ebox := core.Box{
				X: box.X + (level.TileSize-enemySize)/2,
				Y: box.Bottom() - enemySize - 2,
				W: enemySize,
				H: enemySize,
			}
			e := &enemy{body: s.world.AddDynamic(physics.KindEnemy, ebox), tile: t, alive: true}
			e.body.SetGravityY(s.rules.BaseGravity * s.rules.Jump.DownGravity * s.rules.Enemy.GravityScale)
			s.enemies = append(s.enemies, e)
			s.enemyOf[e.body] = e

		case level.GroupMovers:
			m := &mover{body: s.world.AddKinematic(physics.KindMover, box), tile: t, active: true}
			s.movers = append(s.movers, m)
			s.setupMover(m)

		case level.GroupRemoveHints:
			s.hints = append(s.hints, s.world.AddStatic(physics.KindHintRemover, box))
		}
	}
	s.livingEnemies = len(s.enemies)

	enemies, movers, hints := s.enemies, s.movers, s.hints
	s.onRespawn(func() {
		for _, e := range enemies {
			e.alive = false
			delete(s.enemyOf, e.body)
			s.world.Remove(e.body)
		}
		for _, m := range movers {
			m.active = false
			s.world.Remove(m.body)
		}
		for _, h := range hints {
			s.world.Remove(h)
		}
	})
	s.onRespawn(func() {
		for _, c := range s.coins {
			c.collected = false
		}
	})
}

// spawnPlayer reveals the player after delay. The player is hidden,
// locked and immune to damage until then.
func (s *Session) spawnPlayer(delay time.Duration) {
	p := s.player
	reveal := func() {
		p.motion.Unlock(movement.LockSpawn)
		p.visible = true
		s.startedAt = s.now
		respawned := s.isRespawning
		s.isRespawning = false
		if respawned {
			s.emit(RespawnedEvent{})
		}
	}

	if delay <= 0 {
		reveal()
		return
	}

	p.visible = false
	p.motion.Lock(movement.LockSpawn)
	s.sched.After(delay, func() {
		if !p.alive {
			return
		}
		reveal()
	})
}

// Tick runs the timers due at now, then the player and enemy logic.
// The caller steps the world afterwards and feeds the contacts back
// through HandleContacts.
func (s *Session) Tick(now, dt time.Duration, in core.Buttons) {
	if s.closed {
		return
	}
	s.now = now
	s.sched.run(now)
	if s.closed || s.finished {
		return
	}

	if p := s.player; p != nil && p.alive {
		p.motion.Update(now, dt, in)
	}
	s.updateEnemies()
	s.updateEyes(false)
}

// HandleContacts applies the gameplay effects of one world step.
func (s *Session) HandleContacts(contacts []physics.Contact) {
	for _, c := range contacts {
		if s.closed || s.finished {
			return
		}
		p := s.player

		switch c.Body.Kind() {
		case physics.KindPlayer:
			if p == nil || c.Body != p.body || !p.alive {
				continue
			}
			switch c.Other.Kind() {
			case physics.KindSpikes:
				s.takeSpikeDamage(c.Other)
			case physics.KindEnemy:
				if e := s.enemyOf[c.Other]; e != nil {
					s.takeEnemyDamage(e)
				}
			case physics.KindExit:
				if e := s.exitOf[c.Other]; e != nil {
					s.touchExit(e)
				}
			case physics.KindJumpcoin:
				if coin := s.coinOf[c.Other]; coin != nil {
					s.collectJumpcoin(coin)
				}
			case physics.KindHintRemover:
				s.removeHints()
			}

		case physics.KindEnemy:
			e := s.enemyOf[c.Body]
			if e == nil {
				continue
			}
			switch c.Other.Kind() {
			case physics.KindPlayer:
				if p != nil && c.Other == p.body && p.alive {
					s.takeEnemyDamage(e)
				}
			case physics.KindExit:
				s.exitTractor(e)
			}
		}
	}
}

func (s *Session) touchExit(e *exit) {
	s.player.touchedExit = e
	s.winLevel()
}

func (s *Session) removeHints() {
	if s.hintsRemoved {
		return
	}
	s.hintsRemoved = true
	s.emit(HintsHiddenEvent{})
}

func (s *Session) finish(next int) {
	s.finished = true
	s.next = next
	s.logger.Debug("level finished", "id", s.lvl.ID, "next", next)
}

// Close stops the session. No timer fires afterwards.
func (s *Session) Close() {
	s.closed = true
	s.sched.close()
}

// World returns the physics world of the level.
func (s *Session) World() *physics.World { return s.world }

// Level returns the level being played.
func (s *Session) Level() *level.Level { return s.lvl }

// Index returns the pack index of the level.
func (s *Session) Index() int { return s.index }

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase {
	switch {
	case s.finished:
		return PhaseFinished
	case s.winning:
		return PhaseWinning
	case s.isRespawning:
		return PhaseRespawning
	case s.player.motion.Locked(movement.LockSpawn):
		return PhaseLoading
	default:
		return PhasePlaying
	}
}

// Finished reports the next level index once the outro is over.
func (s *Session) Finished() (next int, ok bool) {
	return s.next, s.finished
}

// Elapsed returns the run time shown on the HUD.
func (s *Session) Elapsed() time.Duration {
	switch s.Phase() {
	case PhaseLoading:
		return 0
	case PhaseWinning, PhaseFinished:
		return s.duration
	}
	return s.now - s.startedAt
}

// PreviousBest returns the best time recorded before this session.
func (s *Session) PreviousBest() (time.Duration, bool) {
	if s.previousBest == nil {
		return 0, false
	}
	return *s.previousBest, true
}

// Stats returns the session counters.
func (s *Session) Stats() Stats { return s.stats }

// EarnedBadges returns the badges first awarded during this session.
func (s *Session) EarnedBadges() []save.Badge { return s.earned }

// Hints returns the level hints while they are shown.
func (s *Session) Hints() []string {
	if s.hintsRemoved || s.rules.Level.SkipHints {
		return nil
	}
	return s.lvl.Hints
}

// Motion returns the movement state machine of the current player.
func (s *Session) Motion() *movement.Motion { return s.player.motion }

// Player returns the render state of the player.
func (s *Session) Player() PlayerView {
	p := s.player
	m := p.motion
	return PlayerView{
		Box:        p.body.Box(),
		FacingLeft: m.FacingLeft(),
		State:      m.State(),
		Animation:  m.Animation(),
		Squish:     m.Squish(),
		Visible:    p.visible,
		Invincible: p.invincible,
		FastBlink:  p.fastBlink,
		Dead:       p.spentLifecoin,
		Jumpcoins:  p.wallet.Jumpcoins,
	}
}

// Enemies returns the render state of the current enemies.
func (s *Session) Enemies() []EnemyView {
	out := make([]EnemyView, 0, len(s.enemies))
	for _, e := range s.enemies {
		if e.tractored {
			continue
		}
		out = append(out, EnemyView{Box: e.body.Box(), Glyph: e.tile.Glyph, MovingLeft: e.movingLeft, Alive: e.alive})
	}
	return out
}

// Movers returns the boxes of the moving platforms.
func (s *Session) Movers() []core.Box {
	out := make([]core.Box, 0, len(s.movers))
	for _, m := range s.movers {
		out = append(out, m.body.Box())
	}
	return out
}

// Coins returns the render state of the jumpcoins.
func (s *Session) Coins() []CoinView {
	out := make([]CoinView, 0, len(s.coins))
	for _, c := range s.coins {
		out = append(out, CoinView{Box: c.body.Box(), Collected: c.collected})
	}
	return out
}

// Exits returns the exit cells.
func (s *Session) Exits() []core.Point {
	out := make([]core.Point, 0, len(s.exits))
	for _, e := range s.exits {
		out = append(out, e.cell)
	}
	return out
}

// Eyes returns the render state of the eyes.
func (s *Session) Eyes() []EyeView {
	out := make([]EyeView, 0, len(s.eyes))
	for _, e := range s.eyes {
		out = append(out, EyeView{Cell: e.cell, Origin: e.origin, Pupil: e.pupil, PupilVisible: s.rules.Level.EyeTracking})
	}
	return out
}
