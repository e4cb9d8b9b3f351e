package metrics

import (
	"math"

	"github.com/san-kum/dialsim/internal/scene"
)

// StickError is the largest |length - rest| over all constrained links
// in a frame; Value averages it over the run.
type StickError struct {
	last    float64
	sum     float64
	samples int
}

func NewStickError() *StickError { return &StickError{} }

func (s *StickError) Name() string { return "stick_error" }

func (s *StickError) Observe(f scene.Frame) {
	s.last = 0
	for _, l := range f.Links {
		if l.Rest == 0 {
			continue
		}
		err := math.Abs(f.Discs[l.A].Pos.Dist(f.Discs[l.B].Pos) - l.Rest)
		s.last = max(s.last, err)
	}
	s.sum += s.last
	s.samples++
}

func (s *StickError) Last() float64 { return s.last }

func (s *StickError) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *StickError) Reset() {
	s.last, s.sum, s.samples = 0, 0, 0
}
