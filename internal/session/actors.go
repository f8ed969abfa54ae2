package session

import (
	"math"
	"time"

	"github.com/vovakirdan/jumpcoins/internal/core"
	"github.com/vovakirdan/jumpcoins/internal/level"
	"github.com/vovakirdan/jumpcoins/internal/physics"
)

// updateEnemies drives the patrols. An enemy stands still until it first
// lands, then walks and turns at walls, and at ledges if edge careful.
func (s *Session) updateEnemies() {
	walk := s.rules.Enemy.WalkVelocity
	for _, e := range s.enemies {
		if !e.active() {
			continue
		}
		t := e.body.Touching()

		if !e.started {
			if !t.Down {
				e.body.SetVelocityX(0)
				continue
			}
			e.started = true
			e.movingLeft = e.tile.StartsMovingLeft
		} else if e.movingLeft && t.Left {
			e.movingLeft = false
		} else if !e.movingLeft && t.Right {
			e.movingLeft = true
		}

		if e.tile.EdgeCareful && t.Down && s.atLedge(e) {
			e.movingLeft = !e.movingLeft
		}

		e.body.SetVelocityX(core.Sign(e.movingLeft) * walk)
	}
}

// atLedge reports whether the floor ends in front of the enemy.
func (s *Session) atLedge(e *enemy) bool {
	box := e.body.Box()
	if floor := e.body.Floor(); floor != nil && floor.Kind() == physics.KindMover {
		fb := floor.Box()
		if e.movingLeft {
			return box.X <= fb.X
		}
		return box.Right() >= fb.Right()
	}

	probe := core.V(box.Right()+1, box.Bottom()+1)
	if e.movingLeft {
		probe.X = box.X - 1
	}
	cell := level.CellAt(probe)
	return !s.lvl.SolidAt(cell.X, cell.Y)
}

func (s *Session) setupMover(m *mover) {
	m.movingLeft = m.tile.MovingLeft
	m.body.SetVelocityX(core.Sign(m.movingLeft) * m.tile.Speed)
	s.scheduleMover(m, true)
}

// scheduleMover reverses the mover after it covers its distance. The
// first leg is half as long since movers start mid-track.
func (s *Session) scheduleMover(m *mover, first bool) {
	speed := m.tile.Speed
	if speed <= 0 || m.tile.Distance <= 0 {
		return
	}
	distance := level.TileSize * m.tile.Distance
	if first {
		distance *= 0.5
	}
	d := time.Duration(distance / speed * float64(time.Second))

	s.sched.After(d, func() {
		if !m.active {
			return
		}
		m.movingLeft = !m.movingLeft
		m.body.SetVelocityX(core.Sign(m.movingLeft) * speed)
		s.scheduleMover(m, false)
	})
}

// pupilReach is how far a pupil leaves the eye center, px.
const pupilReach = float64(level.TileSize) / 5

// randomizeEyes picks a wander target per row of eyes.
func (s *Session) randomizeEyes() {
	b := s.lvl.Bounds()
	targets := make(map[int]core.Vec)
	for _, e := range s.eyes {
		t, ok := targets[e.cell.Y]
		if !ok {
			t = core.V(s.rng.Float64()*b.W, s.rng.Float64()*b.H)
			targets[e.cell.Y] = t
		}
		e.wander = t
	}
}

// updateEyes turns the pupils toward the visible player, or toward the
// wander target while the player is hidden.
func (s *Session) updateEyes(instant bool) {
	if !s.rules.Level.EyeTracking {
		return
	}
	p := s.player
	tracking := p != nil && p.alive && p.visible

	for _, e := range s.eyes {
		target, speed := e.wander, 0.02
		if tracking {
			target, speed = p.body.Center(), 0.05
		}
		theta := math.Atan2(target.Y-e.origin.Y, target.X-e.origin.X)
		goal := e.origin.Add(core.V(pupilReach*math.Cos(theta), pupilReach*math.Sin(theta)))
		if instant {
			e.pupil = goal
		} else {
			e.pupil = e.pupil.Add(goal.Sub(e.pupil).Scale(speed))
		}
	}
}
