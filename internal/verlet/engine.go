package verlet

import (
	"slices"

	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/integrators"
)

const (
	// GravityScale converts a unit tilt direction into px/s².
	GravityScale = 900.0
	// Iterations is the number of relaxation passes per step.
	Iterations = 3
	// BounceDamping scales the reflected velocity at the boundary.
	BounceDamping = 0.5
)

type PointMass struct {
	Pos    geom.Vec2
	Prev   geom.Vec2
	Pinned bool
}

// Velocity is the displacement over the last slice.
func (p PointMass) Velocity() geom.Vec2 {
	return integrators.VerletVelocity(p.Pos, p.Prev)
}

// Stick keeps points A and B at distance Rest. Rest is captured when the
// stick is created and never changes.
type Stick struct {
	A, B int
	Rest float64
}

type Engine struct {
	world   geom.World
	gravity geom.Vec2
	dt      float64
	points  []PointMass
	sticks  []Stick
}

func New(world geom.World) *Engine {
	e := &Engine{
		world: world,
		dt:    integrators.Slice,
	}
	e.SetGravity(0, 1)
	return e
}

// AddPoint appends a point at rest and returns its index.
func (e *Engine) AddPoint(pos geom.Vec2, pinned bool) int {
	e.points = append(e.points, PointMass{Pos: pos, Prev: pos, Pinned: pinned})
	return len(e.points) - 1
}

// AddStick links two existing points at their current distance.
func (e *Engine) AddStick(a, b int) int {
	rest := e.points[a].Pos.Dist(e.points[b].Pos)
	e.sticks = append(e.sticks, Stick{A: a, B: b, Rest: rest})
	return len(e.sticks) - 1
}

// SetGravity stores the scaled direction. Repeated calls with the same
// vector leave the same state.
func (e *Engine) SetGravity(x, y float64) {
	e.gravity = geom.Vec2{X: x, Y: y}.Scale(GravityScale)
}

func (e *Engine) Gravity() geom.Vec2 { return e.gravity }
func (e *Engine) World() geom.World  { return e.world }
func (e *Engine) Len() int           { return len(e.points) }

// Point returns a copy of point i.
func (e *Engine) Point(i int) PointMass { return e.points[i] }

// Points returns a copy of the point arena in insertion order.
func (e *Engine) Points() []PointMass { return slices.Clone(e.points) }

// Sticks returns a copy of the constraints in insertion order.
func (e *Engine) Sticks() []Stick { return slices.Clone(e.sticks) }

func (e *Engine) Step() {
	for i := range e.points {
		p := &e.points[i]
		if p.Pinned {
			continue
		}
		p.Pos, p.Prev = integrators.Verlet(p.Pos, p.Prev, e.gravity, e.dt)
	}

	for k := 0; k < Iterations; k++ {
		e.relax()
	}
}

// relax runs one pass: every stick in order, then the boundary.
func (e *Engine) relax() {
	for _, s := range e.sticks {
		e.satisfy(s)
	}
	for i := range e.points {
		if !e.points[i].Pinned {
			e.contain(&e.points[i])
		}
	}
}

// satisfy moves both free endpoints half the length error each, toward
// or away from their midpoint. A stick whose endpoints coincide has no
// direction and is skipped.
func (e *Engine) satisfy(s Stick) {
	if s.A == s.B {
		return
	}
	a, b := &e.points[s.A], &e.points[s.B]
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()
	if dist == 0 {
		return
	}
	offset := delta.Scale((dist - s.Rest) / dist * 0.5)
	if !a.Pinned {
		a.Pos = a.Pos.Add(offset)
	}
	if !b.Pinned {
		b.Pos = b.Pos.Sub(offset)
	}
}

// contain clamps p onto the boundary and rewrites Prev so the implied
// velocity is mirrored about the wall normal and halved. A point already
// heading back inside keeps its velocity.
func (e *Engine) contain(p *PointMass) {
	pos, n, ok := e.world.Clamp(p.Pos, 0)
	if !ok {
		return
	}
	vel := p.Pos.Sub(p.Prev)
	if vel.Dot(n) > 0 {
		vel = vel.Reflect(n).Scale(BounceDamping)
	}
	p.Pos = pos
	p.Prev = pos.Sub(vel)
}

// HitTest returns the first point, in arena order, within radius of q.
func (e *Engine) HitTest(q geom.Vec2, radius float64) (int, bool) {
	r2 := radius * radius
	for i, p := range e.points {
		if p.Pos.Sub(q).LengthSq() <= r2 {
			return i, true
		}
	}
	return -1, false
}

// Drag places a free point at pos with zero implied velocity. Pinned
// points and out-of-range indices are ignored.
func (e *Engine) Drag(i int, pos geom.Vec2) {
	if i < 0 || i >= len(e.points) || e.points[i].Pinned {
		return
	}
	e.points[i].Pos = pos
	e.points[i].Prev = pos
}

// ApplyImpulse shifts every free point by v. Prev is left alone so the
// shift shows up as velocity on the next step.
func (e *Engine) ApplyImpulse(v geom.Vec2) {
	for i := range e.points {
		if e.points[i].Pinned {
			continue
		}
		e.points[i].Pos = e.points[i].Pos.Add(v)
	}
}

// StickError is |distance - rest| for stick i.
func (e *Engine) StickError(i int) float64 {
	s := e.sticks[i]
	d := e.points[s.A].Pos.Dist(e.points[s.B].Pos) - s.Rest
	if d < 0 {
		return -d
	}
	return d
}
