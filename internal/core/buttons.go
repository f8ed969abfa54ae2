package core

import "time"

// NeverReleased is the ReleasedDuration reported for a button that has not
// been released since the simulation clock started.
const NeverReleased = time.Hour

// Button is the per-tick state of one logical digital button.
type Button struct {
	Held             bool
	JustStarted      bool          // pressed this tick
	ReleasedDuration time.Duration // time since release; 0 while held
}

// Idle returns a released button that has been up for a long time.
func Idle() Button {
	return Button{ReleasedDuration: NeverReleased}
}

// Buttons is the logical command set consumed by the movement rules.
type Buttons struct {
	Left, Right, Up, Down, Jump Button
}

// IdleButtons returns a command set with nothing pressed.
func IdleButtons() Buttons {
	return Buttons{Left: Idle(), Right: Idle(), Up: Idle(), Down: Idle(), Jump: Idle()}
}

// buttonState tracks one logical button across ticks.
type buttonState struct {
	down       bool
	pressedAt  time.Duration
	lastSeen   time.Duration // last press or repeat event
	releasedAt time.Duration
	edge       bool // press not yet reported as JustStarted
	everUp     bool
}

// ButtonTracker converts press and release events into Buttons snapshots.
//
// Terminals report key presses and autorepeats but no key releases, so a
// button is treated as released once HoldTimeout passes without a repeat.
// Sources that do report releases call Release directly.
type ButtonTracker struct {
	HoldTimeout time.Duration
	states      map[Action]*buttonState
}

// NewButtonTracker creates a tracker with the given hold timeout.
// A zero timeout keeps a button held until Release is called.
func NewButtonTracker(holdTimeout time.Duration) *ButtonTracker {
	return &ButtonTracker{
		HoldTimeout: holdTimeout,
		states:      make(map[Action]*buttonState),
	}
}

func (t *ButtonTracker) state(a Action) *buttonState {
	st, ok := t.states[a]
	if !ok {
		st = &buttonState{}
		t.states[a] = st
	}
	return st
}

// Press records a press or autorepeat of a button action at time now.
func (t *ButtonTracker) Press(a Action, now time.Duration) {
	if !a.IsButton() {
		return
	}
	st := t.state(a)
	if !st.down {
		st.down = true
		st.edge = true
		st.pressedAt = now
	}
	st.lastSeen = now

	// Opposite directions cannot be held together on a keyboard without
	// release events; a new direction releases the other.
	switch a {
	case ActionLeft:
		t.Release(ActionRight, now)
	case ActionRight:
		t.Release(ActionLeft, now)
	}
}

// Release records that a button went up at time now.
func (t *ButtonTracker) Release(a Action, now time.Duration) {
	st := t.state(a)
	if !st.down {
		return
	}
	st.down = false
	st.releasedAt = now
	st.everUp = true
}

// Reset releases every button without recording a release time.
func (t *ButtonTracker) Reset() {
	t.states = make(map[Action]*buttonState)
}

// Frame returns the button snapshot for the tick at time now.
// JustStarted is reported once per press.
func (t *ButtonTracker) Frame(now time.Duration) Buttons {
	return Buttons{
		Left:  t.button(ActionLeft, now),
		Right: t.button(ActionRight, now),
		Up:    t.button(ActionUp, now),
		Down:  t.button(ActionDown, now),
		Jump:  t.button(ActionJump, now),
	}
}

func (t *ButtonTracker) button(a Action, now time.Duration) Button {
	st, ok := t.states[a]
	if !ok {
		return Idle()
	}
	if st.down && t.HoldTimeout > 0 && now-st.lastSeen > t.HoldTimeout && !st.edge {
		st.down = false
		st.releasedAt = st.lastSeen + t.HoldTimeout
		st.everUp = true
	}

	b := Button{Held: st.down}
	if st.edge {
		b.JustStarted = true
		st.edge = false
	}
	switch {
	case st.down:
		b.ReleasedDuration = 0
	case st.everUp:
		b.ReleasedDuration = now - st.releasedAt
	default:
		b.ReleasedDuration = NeverReleased
	}
	return b
}
