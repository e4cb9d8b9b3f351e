package metrics

import "github.com/san-kum/dialsim/internal/scene"

// Boundary tracks how far any free entity centre sits outside the round
// wall. Its value is the worst case seen.
type Boundary struct {
	last, worst float64
}

func NewBoundary() *Boundary { return &Boundary{} }

func (b *Boundary) Name() string { return "boundary" }

func (b *Boundary) Observe(f scene.Frame) {
	b.last = 0
	for _, d := range f.Discs {
		if d.Pinned || f.World.Contains(d.Pos, 0) {
			continue
		}
		if over := d.Pos.Dist(f.World.Center) - f.World.Radius; over > b.last {
			b.last = over
		}
	}
	b.worst = max(b.worst, b.last)
}

func (b *Boundary) Last() float64  { return b.last }
func (b *Boundary) Value() float64 { return b.worst }
func (b *Boundary) Reset()         { b.last, b.worst = 0, 0 }
