package session

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumpcoins/internal/config"
	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/level/formats"
	"github.com/vovakirdan/jumpcoins/internal/movement"
	"github.com/vovakirdan/jumpcoins/internal/physics"
	"github.com/vovakirdan/jumpcoins/internal/save"
	"github.com/vovakirdan/jumpcoins/internal/storage"
)

const dt = time.Second / 60

var flatRows = []string{
	"##########",
	"#........#",
	"#........#",
	"#..@.....#",
	"##########",
}

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func eventsOf[T Event](r *recorder) []T {
	var out []T
	for _, e := range r.events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

type fakeHistory struct {
	runs []storage.Completion
	err  error
}

func (f *fakeHistory) RecordCompletion(c storage.Completion) (int64, error) {
	f.runs = append(f.runs, c)
	return int64(len(f.runs)), f.err
}

type harness struct {
	t       *testing.T
	s       *Session
	store   *save.Store
	events  *recorder
	history *fakeHistory
	rules   *config.Rules
	pack    *level.Pack
	now     time.Duration
}

func buildLevel(t *testing.T, id string, rows []string) *level.Level {
	t.Helper()
	lvl, err := level.Build(formats.Level{ID: id, Name: id, Rows: rows, Hints: []string{"hint one"}})
	if err != nil {
		t.Fatalf("Build(%s) failed: %v", id, err)
	}
	return lvl
}

func quiet() *log.Logger { return log.New(io.Discard) }

// newHarness loads the first of the given levels with the intro skipped.
func newHarness(t *testing.T, rules *config.Rules, levels ...[]string) *harness {
	t.Helper()
	if rules == nil {
		rules = config.DefaultRules()
	}
	if len(levels) == 0 {
		levels = [][]string{flatRows}
	}

	var lvls []*level.Level
	for i, rows := range levels {
		lvls = append(lvls, buildLevel(t, string(rune('a'+i))+"-level", rows))
	}
	pack, err := level.NewPack(lvls)
	if err != nil {
		t.Fatalf("NewPack() failed: %v", err)
	}
	store, err := save.Open(save.NewMemoryBackend(), pack.IDs(), save.WithLogger(quiet()))
	if err != nil {
		t.Fatalf("save.Open() failed: %v", err)
	}

	h := &harness{t: t, store: store, events: &recorder{}, history: &fakeHistory{}, rules: rules, pack: pack}
	h.load(0, true)
	return h
}

func (h *harness) deps() Deps {
	return Deps{
		Rules:    h.rules,
		Pack:     h.pack,
		Save:     h.store,
		History:  h.history,
		RuleSet:  "classic",
		Observer: h.events,
		Logger:   quiet(),
		Rand:     rand.New(rand.NewSource(7)),
	}
}

func (h *harness) load(index int, skipIntro bool) {
	h.t.Helper()
	s, err := New(h.deps(), index, skipIntro, h.now)
	if err != nil {
		h.t.Fatalf("New() failed: %v", err)
	}
	h.s = s
}

func (h *harness) step(in core.Buttons) {
	h.now += dt
	h.s.Tick(h.now, dt, in)
	h.s.HandleContacts(h.s.World().Step(dt))
}

func (h *harness) run(n int) {
	for i := 0; i < n; i++ {
		h.step(core.IdleButtons())
	}
}

func (h *harness) runFor(d time.Duration) {
	h.run(int(d/dt) + 1)
}

func (h *harness) record() *save.LevelRecord {
	return h.store.Level(h.s.Level().ID)
}

func (h *harness) touch(other *physics.Body) {
	h.s.HandleContacts([]physics.Contact{{Body: h.s.player.body, Other: other, Sensor: other.Kind() != physics.KindSpikes && other.Kind() != physics.KindEnemy}})
}

func holdRight() core.Buttons {
	in := core.IdleButtons()
	in.Right = core.Button{Held: true}
	return in
}

func pressJump() core.Buttons {
	in := core.IdleButtons()
	in.Jump = core.Button{Held: true, JustStarted: true}
	return in
}

func TestNewMissingSpawn(t *testing.T) {
	lvl := buildLevel(t, "broken", []string{"#####", "#...#", "#####"})
	pack, err := level.NewPack([]*level.Level{lvl})
	if err != nil {
		t.Fatal(err)
	}
	store, _ := save.Open(save.NewMemoryBackend(), pack.IDs(), save.WithLogger(quiet()))

	_, err = New(Deps{Rules: config.DefaultRules(), Pack: pack, Save: store, Logger: quiet()}, 0, true, 0)
	if !errors.Is(err, level.ErrMissingSpawn) {
		t.Errorf("New() = %v, expected ErrMissingSpawn", err)
	}

	if _, err := New(Deps{}, 0, true, 0); err == nil {
		t.Error("New() without dependencies should fail")
	}
}

func TestNewPersistsLevelIndex(t *testing.T) {
	h := newHarness(t, nil, flatRows, flatRows)
	h.load(1, true)

	if h.store.LevelIndex() != 1 {
		t.Errorf("LevelIndex() = %d, expected 1", h.store.LevelIndex())
	}
	if h.s.Index() != 1 {
		t.Errorf("Index() = %d, expected 1", h.s.Index())
	}
}

func TestPreviousBest(t *testing.T) {
	h := newHarness(t, nil)
	if _, ok := h.s.PreviousBest(); ok {
		t.Error("fresh level should have no previous best")
	}

	h.record().AddRun(9 * time.Second)
	h.load(0, true)
	if best, ok := h.s.PreviousBest(); !ok || best != 9*time.Second {
		t.Errorf("PreviousBest() = %v, %v, expected 9s", best, ok)
	}
}

func TestIntroDelay(t *testing.T) {
	h := newHarness(t, nil)
	h.load(0, false)

	if h.s.Phase() != PhaseLoading {
		t.Errorf("Phase() = %v, expected loading", h.s.Phase())
	}
	if h.s.Player().Visible {
		t.Error("player should be hidden during the intro")
	}
	if h.s.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v during intro, expected 0", h.s.Elapsed())
	}

	// Input is ignored while spawning.
	h.run(10)
	h.step(pressJump())
	if h.s.Stats().Jumps != 0 {
		t.Error("jump during the intro should be ignored")
	}

	h.runFor(h.rules.Level.IntroDelay())
	if h.s.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v after intro, expected playing", h.s.Phase())
	}
	if !h.s.Player().Visible {
		t.Error("player should be visible after the intro")
	}
}

func TestSkipIntroIsImmediatelyPlaying(t *testing.T) {
	h := newHarness(t, nil)
	if h.s.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", h.s.Phase())
	}
}

func TestGroundedJump(t *testing.T) {
	h := newHarness(t, nil)
	h.run(10)
	if !h.s.player.body.Touching().Down {
		t.Fatal("player should have landed")
	}

	h.now += dt
	h.s.Tick(h.now, dt, pressJump())

	if vy := h.s.player.body.Velocity().Y; vy != -h.rules.Jump.VelocityY {
		t.Errorf("velocity.y = %v, expected %v", vy, -h.rules.Jump.VelocityY)
	}
	if h.s.Stats().Jumps != 1 || h.record().Jumps != 1 {
		t.Errorf("jumps = %d (record %d), expected 1", h.s.Stats().Jumps, h.record().Jumps)
	}
	if jumps := eventsOf[JumpEvent](h.events); len(jumps) != 1 || jumps[0].Kind != movement.Jumping {
		t.Errorf("JumpEvents = %v, expected one normal jump", jumps)
	}
}

func TestWallJumpWithoutCoinsDies(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#.....@#.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(10)
	if !h.s.player.body.Touching().Down {
		t.Fatal("player should have landed")
	}
	h.s.player.wallet.Jumpcoins = 0

	for i := 0; i < 10; i++ {
		h.step(holdRight())
	}
	if !h.s.player.body.Touching().Right {
		t.Fatal("player should be pressed against the wall")
	}

	jump := pressJump()
	jump.Right = core.Button{Held: true}
	h.step(jump)
	for i := 0; i < 5; i++ {
		h.step(holdRight())
	}
	if h.s.player.body.Touching().Down || h.s.Stats().Jumps != 1 {
		t.Fatalf("player should be airborne after one jump, jumps = %d", h.s.Stats().Jumps)
	}

	h.now += dt
	h.s.Tick(h.now, dt, jump)

	if h.s.Stats().WallJumps != 1 {
		t.Errorf("WallJumps = %d, expected 1", h.s.Stats().WallJumps)
	}
	if h.s.Stats().Deaths != 1 || h.record().Deaths != 1 {
		t.Errorf("deaths = %d (record %d), expected 1", h.s.Stats().Deaths, h.record().Deaths)
	}
	if got := len(eventsOf[DeathEvent](h.events)); got != 1 {
		t.Errorf("DeathEvents = %d, expected 1", got)
	}
	if got := h.s.sched.pending(); got != 1 {
		t.Errorf("pending timers = %d, expected exactly one respawn", got)
	}
	h.s.HandleContacts(h.s.World().Step(dt))

	// Input is ignored while dead.
	h.step(jump)
	h.step(jump)
	if h.s.Stats().Deaths != 1 || len(eventsOf[DeathEvent](h.events)) != 1 {
		t.Errorf("deaths = %d after pressing while dead, expected 1", h.s.Stats().Deaths)
	}
	if h.s.Stats().WallJumps != 1 {
		t.Errorf("WallJumps = %d after pressing while dead, expected 1", h.s.Stats().WallJumps)
	}
}

func TestEnemyContactWithoutCoinsKills(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#..@...a.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(5)

	enemy := h.s.enemies[0]
	h.touch(enemy.body)

	if h.s.Stats().Deaths != 1 || h.record().Deaths != 1 {
		t.Errorf("deaths = %d (record %d), expected 1", h.s.Stats().Deaths, h.record().Deaths)
	}
	if h.s.Stats().DamageTaken != 1 {
		t.Errorf("DamageTaken = %d, expected 1", h.s.Stats().DamageTaken)
	}
	if got := h.s.sched.pending(); got != 1 {
		t.Errorf("pending timers = %d, expected exactly one respawn", got)
	}
	if enemy.alive {
		t.Error("enemy should be killed by the contact")
	}
	if !h.s.Player().Dead {
		t.Error("player should have spent the lifecoin")
	}
	if len(eventsOf[DeathEvent](h.events)) != 1 {
		t.Error("expected one DeathEvent")
	}

	// Further hits while dead are ignored.
	h.touch(h.s.enemies[0].body)
	if h.s.Stats().Deaths != 1 {
		t.Errorf("deaths = %d after second hit, expected 1", h.s.Stats().Deaths)
	}
}

func TestRespawnCycle(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#.o......#",
		"#..@...a.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(5)

	h.touch(h.s.coins[0].body)
	oldPlayer := h.s.player
	h.s.player.wallet.Jumpcoins = 0 // drop the coin so the next hit kills
	h.touch(h.s.enemies[0].body)

	h.run(1)
	if h.s.Phase() != PhaseRespawning {
		t.Fatalf("Phase() = %v, expected respawning", h.s.Phase())
	}

	// Second respawn request is absorbed by the latch.
	before := h.s.sched.pending()
	h.s.respawn()
	if h.s.sched.pending() != before {
		t.Error("respawn() while respawning should not schedule anything")
	}

	h.run(1)
	if h.s.player == oldPlayer {
		t.Fatal("player should be recreated")
	}
	if oldPlayer.alive {
		t.Error("old player should be torn down")
	}
	if h.s.Player().Jumpcoins != 0 {
		t.Error("new player should carry no coins")
	}
	if h.s.coins[0].collected {
		t.Error("collected coins should reset on respawn")
	}
	if len(h.s.enemies) != 1 || !h.s.enemies[0].alive || h.s.livingEnemies != 1 {
		t.Error("enemies should be recreated on respawn")
	}
	if len(h.s.coins) != 1 || len(h.s.exits) != 0 {
		t.Errorf("persistent objects duplicated: %d coins", len(h.s.coins))
	}
	if h.s.Player().Visible {
		t.Error("player should be hidden during the respawn delay")
	}

	h.runFor(h.rules.Level.RespawnDelay())
	if h.s.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v after respawn delay, expected playing", h.s.Phase())
	}
	if len(eventsOf[RespawnedEvent](h.events)) != 1 {
		t.Error("expected one RespawnedEvent")
	}
	if h.s.Elapsed() > dt {
		t.Errorf("Elapsed() = %v, expected the clock to restart", h.s.Elapsed())
	}
}

func TestSpikeDamageWithCoin(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#.o@..^..#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(5)
	h.touch(h.s.coins[0].body)

	var spikes *physics.Body
	for b := range h.s.spikeTiles {
		spikes = b
	}
	h.touch(spikes)

	p := h.s.Player()
	if p.Dead || p.Jumpcoins != 0 {
		t.Fatalf("coin should absorb the hit, got dead=%v coins=%d", p.Dead, p.Jumpcoins)
	}
	if !p.Invincible {
		t.Error("player should be invincible after damage")
	}
	if h.s.Stats().DamageTaken != 1 {
		t.Errorf("DamageTaken = %d, expected 1", h.s.Stats().DamageTaken)
	}
	if dmg := eventsOf[DamageEvent](h.events); len(dmg) != 1 || !dmg[0].Absorbed {
		t.Errorf("DamageEvents = %v, expected one absorbed", dmg)
	}

	// '^' knocks back against the facing direction (facing right).
	v := h.s.player.body.Velocity()
	if v.X != -h.rules.Damage.SpikeKnockbackX || v.Y != -h.rules.Damage.SpikeKnockbackY {
		t.Errorf("knockback velocity = %+v", v)
	}
	if !h.s.player.motion.Locked(movement.LockKnockback) {
		t.Error("knockback should lock input")
	}

	// Invincible: the next hit is ignored.
	h.touch(spikes)
	if h.s.Stats().DamageTaken != 1 || h.s.Player().Dead {
		t.Error("hits during invincibility should be ignored")
	}

	window := h.rules.Damage.Invincibility()
	h.runFor(window / 2)
	if !h.s.Player().FastBlink {
		t.Error("fast blink should start at half the window")
	}
	h.runFor(window / 2)
	if h.s.Player().Invincible {
		t.Error("invincibility should end after the window")
	}
}

func TestFallingOnSpikesWithoutCoins(t *testing.T) {
	rows := []string{
		"#######",
		"#.....#",
		"#..@..#",
		"#..^..#",
		"#######",
	}
	h := newHarness(t, nil, rows)
	h.run(30)

	if h.s.Stats().Deaths != 1 {
		t.Errorf("deaths = %d, expected 1", h.s.Stats().Deaths)
	}
}

func TestCollectAllCoinsEarnsRich(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#.o....o.#",
		"#..@....E#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(5)

	h.touch(h.s.coins[0].body)
	h.touch(h.s.coins[0].body) // already collected
	if h.record().BadgeRich {
		t.Fatal("rich should wait for every coin")
	}
	h.touch(h.s.coins[1].body)

	if h.s.Player().Jumpcoins != 2 {
		t.Errorf("Jumpcoins = %d, expected 2", h.s.Player().Jumpcoins)
	}
	if !h.record().BadgeRich {
		t.Error("BadgeRich should be set once every coin is collected")
	}
	if sets := eventsOf[AnimationSetEvent](h.events); len(sets) != 1 || !sets[0].WithCoins {
		t.Errorf("AnimationSetEvents = %v, expected one switch to coins", sets)
	}

	h.touch(h.s.exits[0].body)
	wins := eventsOf[WinEvent](h.events)
	if len(wins) != 1 {
		t.Fatalf("expected one WinEvent, got %d", len(wins))
	}
	want := map[save.Badge]bool{
		save.BadgeRich: true, save.BadgeCompleted: true, save.BadgeDeathless: true,
		save.BadgeDamageless: true, save.BadgeBirdie: true,
	}
	if len(wins[0].Earned) != len(want) {
		t.Errorf("Earned = %v, expected %d badges", wins[0].Earned, len(want))
	}
	for _, b := range wins[0].Earned {
		if !want[b] {
			t.Errorf("unexpected badge %v", b)
		}
	}
}

func TestKillerBadge(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#..@.a.a.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(5)
	h.s.player.invincible = true

	h.touch(h.s.enemies[0].body)
	if h.record().BadgeKiller {
		t.Fatal("killer should wait for the last enemy")
	}
	h.touch(h.s.enemies[1].body)

	if !h.record().BadgeKiller {
		t.Error("BadgeKiller should be set when the last enemy dies")
	}
	if h.s.Stats().Killed != 2 {
		t.Errorf("Killed = %d, expected 2", h.s.Stats().Killed)
	}
	if h.s.Stats().DamageTaken != 0 {
		t.Error("invincible player should take no damage")
	}
}

func TestExitTractorIsNotAKill(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#.@...aE.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	e := h.s.enemies[0]
	h.s.HandleContacts([]physics.Contact{{Body: e.body, Other: h.s.exits[0].body, Side: physics.SideRight}})

	if !e.tractored || e.body.Enabled() {
		t.Error("enemy should be tractored and disabled")
	}
	if h.s.Stats().Killed != 0 || h.s.livingEnemies != 1 {
		t.Error("tractor should not count as a kill")
	}
	if len(h.s.Enemies()) != 0 {
		t.Error("tractored enemies should not render")
	}
}

func TestWinSequence(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#..@....E#",
		"##########",
	}
	h := newHarness(t, nil, rows, flatRows)
	h.record().AddRun(time.Hour)
	h.load(0, true)

	h.run(30)
	h.touch(h.s.exits[0].body)
	h.touch(h.s.exits[0].body)

	if n := len(eventsOf[WinEvent](h.events)); n != 1 {
		t.Fatalf("WinEvents = %d, expected 1", n)
	}
	win := eventsOf[WinEvent](h.events)[0]
	if win.Duration != h.now {
		t.Errorf("Duration = %v, expected %v", win.Duration, h.now)
	}
	if !win.NewBest {
		t.Error("beating the previous best should be reported")
	}
	if best, _ := h.record().Best(); best != h.now.Truncate(time.Millisecond) {
		t.Errorf("BestTime = %v, expected %v", best, h.now)
	}
	if h.s.Phase() != PhaseWinning {
		t.Errorf("Phase() = %v, expected winning", h.s.Phase())
	}
	if len(h.history.runs) != 1 || h.history.runs[0].LevelID != "a-level" || h.history.runs[0].RuleSet != "classic" {
		t.Errorf("history = %+v", h.history.runs)
	}
	if h.history.runs[0].Player != h.store.Key() {
		t.Errorf("history player = %q, expected the save key", h.history.runs[0].Player)
	}

	h.runFor(h.rules.Level.Outro())
	next, ok := h.s.Finished()
	if !ok || next != 1 {
		t.Errorf("Finished() = %d, %v, expected 1, true", next, ok)
	}
	if h.s.Phase() != PhaseFinished {
		t.Errorf("Phase() = %v, expected finished", h.s.Phase())
	}
}

func TestWinWrapsAndSkipsOutro(t *testing.T) {
	rules := config.DefaultRules()
	rules.Level.SkipOutro = true
	rows := []string{
		"######",
		"#@..E#",
		"######",
	}
	h := newHarness(t, rules, flatRows, rows)
	h.load(1, true)
	h.touch(h.s.exits[0].body)
	h.run(1)

	next, ok := h.s.Finished()
	if !ok || next != 0 {
		t.Errorf("Finished() = %d, %v, expected wrap to 0", next, ok)
	}
}

func TestWinAfterDeathIsNotDeathless(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#..@..aE.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(1)
	h.touch(h.s.enemies[0].body)
	h.run(2)
	h.runFor(h.rules.Level.RespawnDelay())

	h.touch(h.s.exits[0].body)
	if h.record().BadgeDeathless || h.record().BadgeDamageless {
		t.Error("deathless and damageless need a clean session")
	}
	if !h.record().BadgeCompleted {
		t.Error("completed is always awarded")
	}
}

func TestWalkIntoCoinAndExit(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#........#",
		"#.@.o..E.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(5)
	for i := 0; i < 120 && h.s.Phase() == PhasePlaying; i++ {
		h.step(holdRight())
	}

	if h.s.Player().Jumpcoins != 1 {
		t.Errorf("Jumpcoins = %d, expected the coin on the way", h.s.Player().Jumpcoins)
	}
	if h.s.Phase() != PhaseWinning {
		t.Errorf("Phase() = %v, expected winning", h.s.Phase())
	}
	if !h.record().BadgeBirdie {
		t.Error("winning with a coin should earn birdie")
	}
}

func TestHints(t *testing.T) {
	rows := []string{
		"######",
		"#@h..#",
		"######",
	}
	h := newHarness(t, nil, rows)
	if len(h.s.Hints()) != 1 {
		t.Fatalf("Hints() = %v, expected one", h.s.Hints())
	}
	h.touch(h.s.hints[0])
	h.touch(h.s.hints[0])
	if h.s.Hints() != nil {
		t.Error("hints should be hidden after the remover")
	}
	if n := len(eventsOf[HintsHiddenEvent](h.events)); n != 1 {
		t.Errorf("HintsHiddenEvents = %d, expected 1", n)
	}

	rules := config.DefaultRules()
	rules.Level.SkipHints = true
	h = newHarness(t, rules, rows)
	if h.s.Hints() != nil {
		t.Error("skip_hints should hide hints")
	}
}

func TestMoverReverses(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#...m....#",
		"#@.......#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	m := h.s.movers[0]
	if m.body.Velocity().X != 64 {
		t.Fatalf("mover velocity = %v, expected 64", m.body.Velocity().X)
	}
	startX := m.body.Box().X

	// First leg is half of 3 tiles at 64px/s.
	h.runFor(750 * time.Millisecond)
	if m.body.Velocity().X != -64 {
		t.Errorf("mover velocity = %v after first leg, expected -64", m.body.Velocity().X)
	}
	if dx := m.body.Box().X - startX; dx < 46 || dx > 50 {
		t.Errorf("first leg moved %v px, expected about 48", dx)
	}

	h.runFor(1500 * time.Millisecond)
	if m.body.Velocity().X != 64 {
		t.Errorf("mover velocity = %v after second leg, expected 64", m.body.Velocity().X)
	}
}

func TestMoverStopsAfterTeardown(t *testing.T) {
	rows := []string{
		"##########",
		"#...m....#",
		"#@.......#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	m := h.s.movers[0]
	h.s.runCleanups()
	h.runFor(time.Second)
	if m.body.Velocity().X != 64 {
		t.Error("inactive mover timer should not touch the body")
	}
}

func TestEnemyWaitsForFloor(t *testing.T) {
	rows := []string{
		"##########",
		"#...a....#",
		"#........#",
		"#@.......#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	e := h.s.enemies[0]
	h.run(3)
	if e.body.Velocity().X != 0 || e.started {
		t.Error("enemy should stand still until it lands")
	}
	h.run(90)
	if !e.started {
		t.Fatal("enemy should have landed")
	}
	if e.body.Velocity().X != h.rules.Enemy.WalkVelocity {
		t.Errorf("enemy velocity = %v, expected walking right", e.body.Velocity().X)
	}
}

func TestEdgeCarefulEnemyStaysOnPlatform(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#...b....#",
		"#..###...#",
		"#@.......#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	e := h.s.enemies[0]

	turns := 0
	last := false
	for i := 0; i < 600; i++ {
		h.step(core.IdleButtons())
		box := e.body.Box()
		if box.X < 3*level.TileSize-2 || box.Right() > 6*level.TileSize+2 {
			t.Fatalf("tick %d: enemy left the platform at %+v", i, box)
		}
		if e.started && e.movingLeft != last {
			turns++
			last = e.movingLeft
		}
	}
	if turns < 2 {
		t.Errorf("enemy turned %d times, expected to patrol", turns)
	}
}

func TestEyesTrackPlayer(t *testing.T) {
	rows := []string{
		"##########",
		"#O......O#",
		"#........#",
		"#....@...#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.run(200)

	for _, e := range h.s.Eyes() {
		d := e.Pupil.Sub(e.Origin).Len()
		if d > pupilReach+0.01 {
			t.Errorf("pupil %v is %v px from the eye", e.Pupil, d)
		}
		toward := h.s.player.body.Center().Sub(e.Origin)
		offset := e.Pupil.Sub(e.Origin)
		if toward.X*offset.X+toward.Y*offset.Y <= 0 {
			t.Errorf("pupil at %+v should look toward the player", e.Pupil)
		}
	}
}

func TestCloseStopsTimers(t *testing.T) {
	rows := []string{
		"##########",
		"#........#",
		"#..@...a.#",
		"##########",
	}
	h := newHarness(t, nil, rows)
	h.touch(h.s.enemies[0].body)
	h.s.Close()
	h.run(60)
	if h.s.isRespawning {
		t.Error("a closed session should not respawn")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseRespawning.String() != "respawning" || Phase(99).String() != "unknown" {
		t.Error("Phase.String() mismatch")
	}
}
