// Package physics is the arcade-style collision world the gameplay runs on.
// Bodies are axis-aligned boxes stored in a resolv space; dynamic bodies are
// integrated with gravity and swept one axis at a time.
package physics

import (
	"math"
	"slices"
	"time"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/jumpcoins/internal/core"
)

// contactEps is the distance at which two boxes count as touching.
const contactEps = 0.01

// Contact records one collision or overlap produced by a step.
// Body is the moving body, Other is what it hit. Side is where on Body the
// contact happened, or SideNone for sensor overlaps.
type Contact struct {
	Body   *Body
	Other  *Body
	Side   Side
	Sensor bool
}

// World owns every body of a level.
type World struct {
	space    *resolv.Space
	gravity  float64
	bodies   []*Body
	byObject map[*resolv.Object]*Body
}

// NewWorld creates a world of the given pixel size with a spatial hash of
// cell x cell pixels.
func NewWorld(width, height float64, cell int) *World {
	if cell <= 0 {
		cell = 16
	}
	return &World{
		space:    resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), cell, cell),
		byObject: make(map[*resolv.Object]*Body),
	}
}

// SetGravity sets the downward acceleration applied to dynamic bodies.
func (w *World) SetGravity(g float64) { w.gravity = g }

// Gravity returns the world gravity.
func (w *World) Gravity() float64 { return w.gravity }

// AddStatic adds an immovable body.
func (w *World) AddStatic(kind Kind, box core.Box) *Body {
	return w.add(kind, Static, box)
}

// AddDynamic adds a body affected by gravity and collisions.
func (w *World) AddDynamic(kind Kind, box core.Box) *Body {
	b := w.add(kind, Dynamic, box)
	b.allowGravity = true
	return b
}

// AddKinematic adds a body moved only by its velocity.
func (w *World) AddKinematic(kind Kind, box core.Box) *Body {
	return w.add(kind, Kinematic, box)
}

func (w *World) add(kind Kind, motion Motion, box core.Box) *Body {
	b := &Body{
		kind:    kind,
		motion:  motion,
		box:     box,
		enabled: true,
		obj:     resolv.NewObject(box.X, box.Y, box.W, box.H, kind.String()),
	}
	w.space.Add(b.obj)
	w.byObject[b.obj] = b
	w.bodies = append(w.bodies, b)
	return b
}

// Remove deletes a body. Removing an unknown body is a no-op.
func (w *World) Remove(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.byObject[b.obj]; !ok {
		return
	}
	w.space.Remove(b.obj)
	delete(w.byObject, b.obj)
	w.bodies = slices.DeleteFunc(w.bodies, func(o *Body) bool { return o == b })
	for _, o := range w.bodies {
		if o.floor == b {
			o.floor = nil
		}
	}
}

// Bodies returns every body in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// Step advances the simulation by dt and returns the contacts it produced.
// Kinematic bodies move first so riders follow them in the same step.
func (w *World) Step(dt time.Duration) []Contact {
	sec := dt.Seconds()
	if sec <= 0 {
		return nil
	}

	for _, b := range w.bodies {
		b.delta = core.Vec{}
		if b.motion != Kinematic || !b.enabled {
			continue
		}
		b.delta = b.vel.Scale(sec)
		b.box.X += b.delta.X
		b.box.Y += b.delta.Y
		b.sync()
	}

	var contacts []Contact
	for _, b := range w.bodies {
		if b.motion != Dynamic || !b.enabled {
			continue
		}

		if b.allowGravity {
			b.vel.Y += (w.gravity + b.gravityY) * sec
		}
		b.vel.X += b.accX * sec

		dx, dy := b.vel.X*sec, b.vel.Y*sec
		if f := b.floor; f != nil && f.enabled && f.motion == Kinematic {
			dx += f.delta.X
			dy += f.delta.Y
		}

		b.touching = Touching{}
		b.floor = nil
		contacts = w.moveX(b, dx, contacts)
		contacts = w.moveY(b, dy, contacts)
		contacts = w.sense(b, contacts)
	}
	return contacts
}

// candidates returns enabled bodies of the given kinds that b could hit
// moving by (dx, dy). The swept box is padded by a pixel on every side so
// bodies flush against b, or in the next cell row, are found.
func (w *World) candidates(b *Body, dx, dy float64, kinds []Kind) []*Body {
	if len(kinds) == 0 {
		return nil
	}
	tagged := tags(kinds)

	box := b.box
	cx, cy := w.space.WorldToSpace(box.X+min(dx, 0)-1, box.Y+min(dy, 0)-1)
	ex, ey := w.space.WorldToSpace(box.Right()+max(dx, 0)+1, box.Bottom()+max(dy, 0)+1)

	var out []*Body
	seen := make(map[*Body]bool)
	for y := cy; y <= ey; y++ {
		for x := cx; x <= ex; x++ {
			cell := w.space.Cell(x, y)
			if cell == nil {
				continue
			}
			for _, o := range cell.Objects {
				other := w.byObject[o]
				if other == nil || other == b || !other.enabled || seen[other] || !o.HasTags(tagged...) {
					continue
				}
				seen[other] = true
				out = append(out, other)
			}
		}
	}
	return out
}

func (w *World) moveX(b *Body, dx float64, out []Contact) []Contact {
	if dx == 0 {
		return out
	}

	box := b.box
	allowed := dx
	var hits []*Body
	for _, other := range w.candidates(b, dx, 0, blockers[b.kind]) {
		if other.kind == KindSemiground {
			continue
		}
		ob := other.box
		if box.Y >= ob.Bottom()-contactEps || ob.Y >= box.Bottom()-contactEps {
			continue
		}

		var limit float64
		if dx > 0 {
			if ob.X < box.Right()-contactEps {
				continue
			}
			limit = max(ob.X-box.Right(), 0)
			if limit > allowed+contactEps {
				continue
			}
			if limit < allowed-contactEps {
				hits = hits[:0]
			}
			allowed = min(allowed, limit)
		} else {
			if ob.Right() > box.X+contactEps {
				continue
			}
			limit = min(ob.Right()-box.X, 0)
			if limit < allowed-contactEps {
				continue
			}
			if limit > allowed+contactEps {
				hits = hits[:0]
			}
			allowed = max(allowed, limit)
		}
		hits = append(hits, other)
	}

	b.box.X += allowed
	b.sync()
	if len(hits) == 0 {
		return out
	}

	b.vel.X = 0
	side := SideRight
	if dx < 0 {
		side = SideLeft
		b.touching.Left = true
	} else {
		b.touching.Right = true
	}
	for _, other := range hits {
		out = append(out, Contact{Body: b, Other: other, Side: side})
	}
	return out
}

func (w *World) moveY(b *Body, dy float64, out []Contact) []Contact {
	if dy == 0 {
		return out
	}

	box := b.box
	allowed := dy
	var hits []*Body
	for _, other := range w.candidates(b, 0, dy, blockers[b.kind]) {
		ob := other.box
		if box.X >= ob.Right()-contactEps || ob.X >= box.Right()-contactEps {
			continue
		}
		if other.kind == KindSemiground && (dy < 0 || b.dropThrough) {
			continue
		}

		var limit float64
		if dy > 0 {
			if ob.Y < box.Bottom()-contactEps {
				continue
			}
			limit = max(ob.Y-box.Bottom(), 0)
			if limit > allowed+contactEps {
				continue
			}
			if limit < allowed-contactEps {
				hits = hits[:0]
			}
			allowed = min(allowed, limit)
		} else {
			if ob.Bottom() > box.Y+contactEps {
				continue
			}
			limit = min(ob.Bottom()-box.Y, 0)
			if limit < allowed-contactEps {
				continue
			}
			if limit > allowed+contactEps {
				hits = hits[:0]
			}
			allowed = max(allowed, limit)
		}
		hits = append(hits, other)
	}

	b.box.Y += allowed
	b.sync()
	if len(hits) == 0 {
		return out
	}

	b.vel.Y = 0
	side := SideDown
	if dy < 0 {
		side = SideUp
		b.touching.Up = true
	} else {
		b.touching.Down = true
		b.floor = hits[0]
	}
	for _, other := range hits {
		out = append(out, Contact{Body: b, Other: other, Side: side})
	}
	return out
}

func (w *World) sense(b *Body, out []Contact) []Contact {
	for _, other := range w.candidates(b, 0, 0, sensors[b.kind]) {
		if !b.box.Overlaps(other.box, contactEps) {
			continue
		}
		out = append(out, Contact{Body: b, Other: other, Sensor: true})
	}
	return out
}

// Overlapping returns enabled bodies of the given kinds overlapping box.
func (w *World) Overlapping(box core.Box, kinds ...Kind) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if !b.enabled || !contains(kinds, b.kind) {
			continue
		}
		if b.box.Overlaps(box, contactEps) {
			out = append(out, b)
		}
	}
	return out
}
