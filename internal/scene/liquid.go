package scene

import (
	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/particles"
)

const (
	stirRadius = 60.0
	stirSpeed  = 240.0
)

type liquidScene struct {
	engine   *particles.Engine
	raw      geom.Vec2
	step     int
	stirring bool
}

func (s *liquidScene) Name() string { return "liquid" }

func (s *liquidScene) Step() {
	s.engine.Step()
	s.step++
}

func (s *liquidScene) SetGravity(x, y float64) {
	s.raw = geom.Vec2{X: x, Y: y}
	s.engine.SetGravity(x, y)
}

// Press stirs the particles around p. Nothing is ever held.
func (s *liquidScene) Press(p geom.Vec2) bool {
	s.stirring = s.engine.Push(p, stirRadius, stirSpeed) > 0
	return s.stirring
}

func (s *liquidScene) Move(p geom.Vec2) {
	if s.stirring {
		s.engine.Push(p, stirRadius, stirSpeed*0.25)
	}
}

func (s *liquidScene) Release(geom.Vec2) { s.stirring = false }

func (s *liquidScene) Impulse(v geom.Vec2) {
	s.engine.Kick(v.Scale(1 / sliceSeconds))
}

func (s *liquidScene) Frame() Frame {
	ps := s.engine.Particles()
	f := Frame{
		Scene:   "liquid",
		Step:    s.step,
		World:   s.engine.World(),
		Gravity: s.raw,
		Discs:   make([]Disc, len(ps)),
	}
	for i, p := range ps {
		f.Discs[i] = Disc{
			Shape:  "particle",
			Pos:    p.Pos,
			Vel:    p.Vel,
			Radius: p.Radius,
			Mass:   1,
			Solid:  true,
		}
	}
	return f
}
