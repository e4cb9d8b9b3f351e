package verlet

import "github.com/san-kum/dialsim/internal/geom"

// Part names a ragdoll point; its value is the point's arena index.
type Part int

const (
	Head Part = iota
	Torso
	LeftHand
	RightHand
	LeftFoot
	RightFoot
	numParts
)

var partNames = [...]string{"head", "torso", "left_hand", "right_hand", "left_foot", "right_foot"}

func (p Part) String() string {
	if p < 0 || p >= numParts {
		return "unknown"
	}
	return partNames[p]
}

type RagdollConfig struct {
	LimbLength float64
}

// NewRagdoll builds a torso-centred star: five sticks from the torso to
// the head, both hands and both feet. Nothing is pinned.
func NewRagdoll(world geom.World, cfg RagdollConfig) *Engine {
	l := cfg.LimbLength
	if l <= 0 {
		l = world.Radius / 4
	}
	l = min(l, world.Radius/2)

	torso := world.Center
	offsets := [numParts]geom.Vec2{
		Head:      {X: 0, Y: -l},
		Torso:     {},
		LeftHand:  {X: -l, Y: -l / 3},
		RightHand: {X: l, Y: -l / 3},
		LeftFoot:  {X: -l / 2, Y: l},
		RightFoot: {X: l / 2, Y: l},
	}

	e := New(world)
	for _, off := range offsets {
		e.AddPoint(torso.Add(off), false)
	}
	for p := Part(0); p < numParts; p++ {
		if p != Torso {
			e.AddStick(int(Torso), int(p))
		}
	}
	return e
}
