package metrics

import "github.com/san-kum/dialsim/internal/scene"

// Metric accumulates one number over a run of frames. Last is the value
// for the most recent frame, Value the aggregate.
type Metric interface {
	Name() string
	Observe(f scene.Frame)
	Last() float64
	Value() float64
	Reset()
}

// Default returns the metrics worth tracking for every scene.
func Default() []Metric {
	return []Metric{
		NewBoundary(),
		NewStickError(),
		NewOverlap(),
		NewKineticEnergy(),
	}
}
