// Package game runs a level pack: it owns the simulation clock, feeds
// buttons into the current session, steps the physics world and moves on
// to the next level when a session finishes.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/session"
)

// HoldTimeout is how long a terminal key counts as held after its last
// press or autorepeat.
const HoldTimeout = 120 * time.Millisecond

// messageTTL is how long a HUD message stays up.
const messageTTL = 2 * time.Second

// Options configure a Game.
type Options struct {
	Rules    *config.Rules
	Pack     *level.Pack
	Save     *save.Store
	History  session.History // optional
	RuleSet  string
	Player   string
	Logger   *log.Logger
	Config   core.RuntimeConfig
	Observer session.Observer // optional, receives every session event
}

// Game is the top-level simulation driven by the UI tick.
type Game struct {
	opts    Options
	logger  *log.Logger
	rng     *rand.Rand
	tracker *core.ButtonTracker
	sess    *session.Session

	dt     time.Duration
	now    time.Duration
	paused bool

	lastWin      *session.WinEvent
	message      string
	messageUntil time.Duration
}

// New creates a game positioned at the level index stored in the save.
func New(opts Options) (*Game, error) {
	if opts.Rules == nil || opts.Pack == nil || opts.Save == nil {
		return nil, errors.New("game: rules, pack and save are required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	seed := opts.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		opts:    opts,
		logger:  opts.Logger,
		rng:     rand.New(rand.NewSource(seed)),
		tracker: core.NewButtonTracker(HoldTimeout),
		dt:      opts.Config.TickDuration(),
	}
	if err := g.load(opts.Pack.Wrap(opts.Save.LevelIndex()), false); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) load(index int, skipIntro bool) error {
	s, err := session.New(session.Deps{
		Rules:    g.opts.Rules,
		Pack:     g.opts.Pack,
		Save:     g.opts.Save,
		History:  g.opts.History,
		Player:   g.opts.Player,
		RuleSet:  g.opts.RuleSet,
		Observer: g,
		Logger:   g.logger,
		Rand:     g.rng,
	}, index, skipIntro, g.now)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	if g.sess != nil {
		g.sess.Close()
	}
	g.sess = s
	g.lastWin = nil
	g.message = ""
	g.tracker.Reset()
	return nil
}

// JumpToLevel abandons the current attempt and starts level index,
// wrapped onto the pack, without the intro.
func (g *Game) JumpToLevel(index int) error {
	return g.load(g.opts.Pack.Wrap(index), true)
}

// Restart starts the current level over.
func (g *Game) Restart() error {
	return g.JumpToLevel(g.sess.Index())
}

// Press handles a key press. Buttons go to the tracker; commands act
// immediately.
func (g *Game) Press(a core.Action) error {
	switch a {
	case core.ActionRestart:
		return g.Restart()
	case core.ActionNextLevel:
		return g.JumpToLevel(g.sess.Index() + 1)
	case core.ActionPrevLevel:
		return g.JumpToLevel(g.sess.Index() - 1)
	case core.ActionPause:
		g.paused = !g.paused
		if g.paused {
			g.tracker.Reset()
		}
		return nil
	}
	if !g.paused {
		g.tracker.Press(a, g.now)
	}
	return nil
}

// Release handles a key release from sources that report them.
func (g *Game) Release(a core.Action) {
	g.tracker.Release(a, g.now)
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step() error {
	if g.paused {
		return nil
	}
	g.now += g.dt

	in := g.tracker.Frame(g.now)
	g.sess.Tick(g.now, g.dt, in)
	contacts := g.sess.World().Step(g.dt)
	g.sess.HandleContacts(contacts)

	if next, ok := g.sess.Finished(); ok {
		return g.load(next, false)
	}
	return nil
}

// OnEvent keeps the HUD state and forwards the event.
func (g *Game) OnEvent(e session.Event) {
	switch ev := e.(type) {
	case session.WinEvent:
		g.lastWin = &ev
	case session.BadgeEarnedEvent:
		g.flash("badge: " + ev.Badge.String())
	case session.DeathEvent:
		g.flash(fmt.Sprintf("deaths: %d", ev.Deaths))
	case session.DamageEvent:
		if ev.Absorbed {
			g.flash("a jumpcoin took the hit")
		}
	}
	if g.opts.Observer != nil {
		g.opts.Observer.OnEvent(e)
	}
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageUntil = g.now + messageTTL
}

// Message returns the current HUD message, if any.
func (g *Game) Message() string {
	if g.now >= g.messageUntil {
		return ""
	}
	return g.message
}

// Session returns the current level session.
func (g *Game) Session() *session.Session { return g.sess }

// Pack returns the level pack.
func (g *Game) Pack() *level.Pack { return g.opts.Pack }

// Now returns the simulation clock.
func (g *Game) Now() time.Duration { return g.now }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// LastWin returns the win of the current session, if any.
func (g *Game) LastWin() (session.WinEvent, bool) {
	if g.lastWin == nil {
		return session.WinEvent{}, false
	}
	return *g.lastWin, true
}

// Close stops the current session.
func (g *Game) Close() {
	g.sess.Close()
}

// FormatTime renders a run time as s.cc or m:ss.cc.
func FormatTime(d time.Duration) string {
	cs := d.Milliseconds() / 10
	sec := cs / 100
	if sec < 60 {
		return fmt.Sprintf("%d.%02d", sec, cs%100)
	}
	return fmt.Sprintf("%d:%02d.%02d", sec/60, sec%60, cs%100)
}
