package verlet

import "github.com/san-kum/dialsim/internal/geom"

const (
	MinChainPoints = 2
	MaxChainPoints = 40
)

type ChainConfig struct {
	Points        int
	SegmentLength float64
	// Anchor is the pinned first point. Nil places it above the centre.
	Anchor *geom.Vec2
}

// NewChain lays Points points out to the right of the anchor, pins the
// first and links neighbours with Points-1 sticks.
func NewChain(world geom.World, cfg ChainConfig) *Engine {
	n := min(max(cfg.Points, MinChainPoints), MaxChainPoints)
	seg := cfg.SegmentLength
	if seg <= 0 {
		seg = world.Radius / float64(n)
	}

	anchor := world.Center.Add(geom.Vec2{Y: -world.Radius * 0.6})
	if cfg.Anchor != nil {
		anchor = *cfg.Anchor
	}

	e := New(world)
	prev := e.AddPoint(anchor, true)
	for i := 1; i < n; i++ {
		cur := e.AddPoint(anchor.Add(geom.Vec2{X: float64(i) * seg}), false)
		e.AddStick(prev, cur)
		prev = cur
	}
	return e
}
