package scene

import (
	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/integrators"
	"github.com/san-kum/dialsim/internal/verlet"
)

const (
	sliceSeconds = integrators.Slice
	// GrabRadius is how close a press must land to a point to pick it.
	GrabRadius  = 24.0
	pointRadius = 4.0
	headRadius  = 12.0
)

// pointScene drives a verlet engine; ragdoll and chain differ only in
// construction and how points are drawn.
type pointScene struct {
	name    string
	engine  *verlet.Engine
	raw     geom.Vec2
	step    int
	held    int
	holding bool
	shape   func(i int) (string, float64)
}

func newPointScene(name string, e *verlet.Engine, shape func(int) (string, float64)) *pointScene {
	return &pointScene{name: name, engine: e, raw: geom.Vec2{Y: 1}, shape: shape}
}

func (s *pointScene) Name() string { return s.name }

func (s *pointScene) Step() {
	s.engine.Step()
	s.step++
}

func (s *pointScene) SetGravity(x, y float64) {
	s.raw = geom.Vec2{X: x, Y: y}
	s.engine.SetGravity(x, y)
}

func (s *pointScene) Press(p geom.Vec2) bool {
	i, ok := s.engine.HitTest(p, GrabRadius)
	if !ok || s.engine.Point(i).Pinned {
		return false
	}
	s.held, s.holding = i, true
	s.engine.Drag(i, p)
	return true
}

func (s *pointScene) Move(p geom.Vec2) {
	if s.holding {
		s.engine.Drag(s.held, p)
	}
}

func (s *pointScene) Release(p geom.Vec2) {
	if s.holding {
		s.engine.Drag(s.held, p)
		s.holding = false
	}
}

func (s *pointScene) Impulse(v geom.Vec2) { s.engine.ApplyImpulse(v) }

func (s *pointScene) Frame() Frame {
	points := s.engine.Points()
	f := Frame{
		Scene:   s.name,
		Step:    s.step,
		World:   s.engine.World(),
		Gravity: s.raw,
		Discs:   make([]Disc, len(points)),
	}
	for i, p := range points {
		shape, r := s.shape(i)
		f.Discs[i] = Disc{
			Shape:  shape,
			Pos:    p.Pos,
			Vel:    p.Velocity().Scale(1 / sliceSeconds),
			Radius: r,
			Mass:   1,
			Pinned: p.Pinned,
			Held:   s.holding && s.held == i,
		}
	}
	for _, st := range s.engine.Sticks() {
		f.Links = append(f.Links, Link{A: st.A, B: st.B, Rest: st.Rest})
	}
	return f
}

func ragdollShape(i int) (string, float64) {
	if verlet.Part(i) == verlet.Head {
		return verlet.Head.String(), headRadius
	}
	return verlet.Part(i).String(), pointRadius
}

func chainShape(i int) (string, float64) {
	if i == 0 {
		return "anchor", pointRadius
	}
	return "link", pointRadius
}
