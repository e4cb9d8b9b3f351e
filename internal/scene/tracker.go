package scene

import "github.com/san-kum/dialsim/internal/geom"

const (
	trackerSamples = 5
	// MaxThrowSpeed caps release velocity, px/s.
	MaxThrowSpeed = 2500.0
)

type sample struct {
	pos geom.Vec2
	t   float64
}

// Tracker turns the last few pointer positions into a release velocity.
type Tracker struct {
	samples []sample
}

func (tr *Tracker) Reset() { tr.samples = tr.samples[:0] }

// Add records the pointer at p at simulated time t (seconds).
func (tr *Tracker) Add(p geom.Vec2, t float64) {
	if n := len(tr.samples); n > 0 && tr.samples[n-1].t == t {
		tr.samples[n-1].pos = p
		return
	}
	if len(tr.samples) == trackerSamples {
		copy(tr.samples, tr.samples[1:])
		tr.samples = tr.samples[:trackerSamples-1]
	}
	tr.samples = append(tr.samples, sample{pos: p, t: t})
}

// Velocity is the mean velocity across the window, capped at
// MaxThrowSpeed. Fewer than two distinct timestamps give zero.
func (tr *Tracker) Velocity() geom.Vec2 {
	if len(tr.samples) < 2 {
		return geom.Vec2{}
	}
	first, last := tr.samples[0], tr.samples[len(tr.samples)-1]
	dt := last.t - first.t
	if dt <= 0 {
		return geom.Vec2{}
	}
	v := last.pos.Sub(first.pos).Scale(1 / dt)
	if s := v.Length(); s > MaxThrowSpeed {
		v = v.Scale(MaxThrowSpeed / s)
	}
	return v
}
