package sim

import (
	"context"
	"sync"

	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/metrics"
	"github.com/san-kum/dialsim/internal/sensor"
)

// Ensemble runs the same scene several times, one goroutine per run, with
// consecutive seeds. Each run builds its own sensor source from the
// config, since filtered sources carry state, and gets fresh metrics.
// The base simulator's clock mode and observers apply to every run.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: s, numRuns: max(numRuns, 1), seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg *config.Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			c := *cfg
			c.Seed = e.seedStart + int64(idx)

			src, err := sensor.FromConfig(c.Sensor, c.Gravity)
			if err != nil {
				errs[idx] = err
				return
			}
			s := New(e.base.registry, src)
			s.WallClock = e.base.WallClock
			s.observers = e.base.observers
			for _, m := range metrics.Default() {
				s.AddMetric(m)
			}
			results[idx], errs[idx] = s.Run(ctx, &c)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
