package metrics

import "github.com/san-kum/dialsim/internal/scene"

// Overlap sums pairwise penetration between solid discs per frame.
type Overlap struct {
	last    float64
	sum     float64
	samples int
}

func NewOverlap() *Overlap { return &Overlap{} }

func (o *Overlap) Name() string { return "overlap" }

func (o *Overlap) Observe(f scene.Frame) {
	o.last = Penetration(f.Discs)
	o.sum += o.last
	o.samples++
}

func (o *Overlap) Last() float64 { return o.last }

func (o *Overlap) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return o.sum / float64(o.samples)
}

func (o *Overlap) Reset() { o.last, o.sum, o.samples = 0, 0, 0 }

// Penetration is the total overlap depth over every solid pair.
func Penetration(discs []scene.Disc) float64 {
	total := 0.0
	for i := 0; i < len(discs); i++ {
		if !discs[i].Solid {
			continue
		}
		for j := i + 1; j < len(discs); j++ {
			if !discs[j].Solid {
				continue
			}
			d := discs[i].Radius + discs[j].Radius - discs[i].Pos.Dist(discs[j].Pos)
			if d > 0 {
				total += d
			}
		}
	}
	return total
}
