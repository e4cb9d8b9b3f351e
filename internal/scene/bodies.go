package scene

import (
	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/rigid"
)

type bodiesScene struct {
	engine  *rigid.Engine
	raw     geom.Vec2
	step    int
	held    int
	holding bool
	tracker Tracker
}

func (s *bodiesScene) Name() string { return "bodies" }

func (s *bodiesScene) Step() {
	s.engine.Step()
	s.step++
}

func (s *bodiesScene) SetGravity(x, y float64) {
	s.raw = geom.Vec2{X: x, Y: y}
	s.engine.SetGravity(x, y)
}

func (s *bodiesScene) now() float64 { return float64(s.step) * sliceSeconds }

// Press grabs the topmost body under p. A body still held from a
// gesture that never saw its release is dropped first, at rest.
func (s *bodiesScene) Press(p geom.Vec2) bool {
	if s.holding {
		s.engine.EndDrag(s.held, geom.Vec2{})
		s.holding = false
	}
	i, ok := s.engine.HitTest(p)
	if !ok {
		return false
	}
	s.held, s.holding = i, true
	s.engine.StartDrag(i)
	s.tracker.Reset()
	s.tracker.Add(p, s.now())
	return true
}

func (s *bodiesScene) Move(p geom.Vec2) {
	if !s.holding {
		return
	}
	s.engine.UpdateDrag(s.held, p)
	s.tracker.Add(p, s.now())
}

// Release throws the held body with the velocity of the recent drag.
func (s *bodiesScene) Release(p geom.Vec2) {
	if !s.holding {
		return
	}
	s.engine.UpdateDrag(s.held, p)
	s.tracker.Add(p, s.now())
	s.engine.EndDrag(s.held, s.tracker.Velocity())
	s.holding = false
}

func (s *bodiesScene) Impulse(v geom.Vec2) {
	s.engine.Kick(v.Scale(1 / sliceSeconds))
}

func (s *bodiesScene) Frame() Frame {
	bs := s.engine.Bodies()
	f := Frame{
		Scene:   "bodies",
		Step:    s.step,
		World:   s.engine.World(),
		Gravity: s.raw,
		Discs:   make([]Disc, len(bs)),
	}
	for i, b := range bs {
		f.Discs[i] = Disc{
			Shape:   b.Shape.String(),
			Pos:     b.Pos,
			Vel:     b.Vel,
			Radius:  b.Radius,
			Mass:    b.Mass,
			Angle:   b.Angle,
			Color:   b.Color,
			Held:    b.Dragging,
			Corners: b.Corners(),
		}
	}
	return f
}
