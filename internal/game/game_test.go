package game

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/level/formats"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/session"
)

var (
	flatRows = []string{
		"##########",
		"#........#",
		"#..@.....#",
		"##########",
	}
	// The player drops straight through the exit.
	exitRows = []string{
		"#####",
		"#.@.#",
		"#.E.#",
		"#####",
	}
)

type counter struct {
	wins int
}

func (c *counter) OnEvent(e session.Event) {
	if _, ok := e.(session.WinEvent); ok {
		c.wins++
	}
}

func newTestGame(t *testing.T, rules *config.Rules, levels ...[]string) (*Game, *save.Store) {
	t.Helper()
	if rules == nil {
		rules = config.DefaultRules()
		rules.Level.SkipIntro = true
	}

	var lvls []*level.Level
	for i, rows := range levels {
		name := []string{"First", "Second", "Third"}[i]
		lvl, err := level.Build(formats.Level{ID: strings.ToLower(name), Name: name, Rows: rows})
		if err != nil {
			t.Fatalf("Build() failed: %v", err)
		}
		lvls = append(lvls, lvl)
	}
	pack, err := level.NewPack(lvls)
	if err != nil {
		t.Fatal(err)
	}
	quiet := log.New(io.Discard)
	store, err := save.Open(save.NewMemoryBackend(), pack.IDs(), save.WithLogger(quiet))
	if err != nil {
		t.Fatal(err)
	}

	g, err := New(Options{
		Rules:   rules,
		Pack:    pack,
		Save:    store,
		RuleSet: "classic",
		Logger:  quiet,
		Config:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g, store
}

func stepN(t *testing.T, g *Game, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}
}

func TestNewStartsAtSavedLevel(t *testing.T) {
	g, store := newTestGame(t, nil, flatRows, flatRows, flatRows)
	if g.Session().Index() != 0 {
		t.Errorf("Index() = %d, expected 0", g.Session().Index())
	}

	store.SetLevelIndex(2)
	g2, err := New(Options{Rules: g.opts.Rules, Pack: g.opts.Pack, Save: store, Logger: g.logger})
	if err != nil {
		t.Fatal(err)
	}
	if g2.Session().Index() != 2 {
		t.Errorf("Index() = %d, expected saved index 2", g2.Session().Index())
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() without dependencies should fail")
	}
}

func TestStepAdvancesClock(t *testing.T) {
	g, _ := newTestGame(t, nil, flatRows)
	stepN(t, g, 60)
	if g.Now() != 60*(time.Second/60) {
		t.Errorf("Now() = %v, expected 60 ticks", g.Now())
	}
	if g.Session().Phase() != session.PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", g.Session().Phase())
	}
}

func TestPausedStepIsNoop(t *testing.T) {
	g, _ := newTestGame(t, nil, flatRows)
	if err := g.Press(core.ActionPause); err != nil {
		t.Fatal(err)
	}
	stepN(t, g, 10)
	if g.Now() != 0 {
		t.Errorf("Now() = %v while paused, expected 0", g.Now())
	}
	_ = g.Press(core.ActionPause)
	stepN(t, g, 1)
	if g.Now() == 0 {
		t.Error("unpaused Step() should advance the clock")
	}
}

func TestJumpButton(t *testing.T) {
	g, store := newTestGame(t, nil, flatRows)
	stepN(t, g, 10)

	_ = g.Press(core.ActionJump)
	stepN(t, g, 1)

	if g.Session().Stats().Jumps != 1 {
		t.Errorf("Jumps = %d, expected 1", g.Session().Stats().Jumps)
	}
	if store.Level("first").Jumps != 1 {
		t.Error("jump should be persisted")
	}
}

func TestJumpToLevelWraps(t *testing.T) {
	g, store := newTestGame(t, nil, flatRows, flatRows, flatRows)
	old := g.Session()

	if err := g.Press(core.ActionPrevLevel); err != nil {
		t.Fatalf("Press(PrevLevel) failed: %v", err)
	}
	if g.Session().Index() != 2 {
		t.Errorf("Index() = %d, expected wrap to 2", g.Session().Index())
	}
	if store.LevelIndex() != 2 {
		t.Errorf("saved LevelIndex() = %d, expected 2", store.LevelIndex())
	}
	if g.Session() == old {
		t.Error("a new session should be created")
	}

	_ = g.Press(core.ActionNextLevel)
	if g.Session().Index() != 0 {
		t.Errorf("Index() = %d, expected wrap to 0", g.Session().Index())
	}
}

func TestJumpToLevelSkipsIntro(t *testing.T) {
	rules := config.DefaultRules()
	g, _ := newTestGame(t, rules, flatRows, flatRows)
	if g.Session().Phase() != session.PhaseLoading {
		t.Fatalf("Phase() = %v, expected the intro on start", g.Session().Phase())
	}

	if err := g.JumpToLevel(1); err != nil {
		t.Fatal(err)
	}
	if g.Session().Phase() != session.PhasePlaying {
		t.Errorf("Phase() = %v, expected JumpToLevel to skip the intro", g.Session().Phase())
	}
}

func TestRestartKeepsLevel(t *testing.T) {
	g, _ := newTestGame(t, nil, flatRows, flatRows)
	_ = g.JumpToLevel(1)
	stepN(t, g, 30)
	if err := g.Press(core.ActionRestart); err != nil {
		t.Fatal(err)
	}
	if g.Session().Index() != 1 {
		t.Errorf("Index() = %d, expected 1", g.Session().Index())
	}
	if g.Session().Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected a fresh run", g.Session().Elapsed())
	}
}

func TestWinAdvancesToNextLevel(t *testing.T) {
	rules := config.DefaultRules()
	rules.Level.SkipIntro = true
	rules.Level.SkipOutro = true
	g, store := newTestGame(t, rules, exitRows, flatRows)
	c := &counter{}
	g.opts.Observer = c

	for i := 0; i < 120 && g.Session().Index() == 0; i++ {
		stepN(t, g, 1)
	}

	if g.Session().Index() != 1 {
		t.Fatalf("Index() = %d, expected the next level after a win", g.Session().Index())
	}
	if c.wins != 1 {
		t.Errorf("wins = %d, expected 1", c.wins)
	}
	rec := store.Level("first")
	if !rec.BadgeCompleted || rec.BestTime == nil {
		t.Errorf("record = %+v, expected a completed run", rec)
	}
	if store.LevelIndex() != 1 {
		t.Errorf("saved LevelIndex() = %d, expected 1", store.LevelIndex())
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t, nil, flatRows)
	stepN(t, g, 5)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"First", "█", "@", "best --"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIntroBanner(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultRules(), flatRows)
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "no best time yet") {
		t.Errorf("intro banner missing:\n%s", scr.String())
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g, _ := newTestGame(t, nil, flatRows)
	g.Render(core.NewScreen(1, 1))
	g.Render(core.NewScreen(0, 0))
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.00"},
		{1234 * time.Millisecond, "1.23"},
		{59990 * time.Millisecond, "59.99"},
		{61500 * time.Millisecond, "1:01.50"},
	}
	for _, tc := range tests {
		if got := FormatTime(tc.d); got != tc.want {
			t.Errorf("FormatTime(%v) = %q, expected %q", tc.d, got, tc.want)
		}
	}
}

func TestCameraFollow(t *testing.T) {
	// Level narrower than the view is centered.
	if got := follow(100, 800, 320, 16); got != -240 {
		t.Errorf("follow() = %v, expected -240", got)
	}
	// Clamped at both edges.
	if got := follow(10, 320, 1000, 16); got != 0 {
		t.Errorf("follow() = %v, expected 0", got)
	}
	if got := follow(990, 320, 1000, 16); got != 672 {
		t.Errorf("follow() = %v, expected 672", got)
	}
}
