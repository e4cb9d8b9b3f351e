// Package sim runs a scene headless: it feeds gravity from a sensor
// source, steps through a driver and records metrics per frame.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/driver"
	"github.com/san-kum/dialsim/internal/metrics"
	"github.com/san-kum/dialsim/internal/scene"
	"github.com/san-kum/dialsim/internal/sensor"
	"github.com/san-kum/dialsim/internal/storage"
)

// Observer sees every frame after the metrics. Observers shared by an
// Ensemble are called from several goroutines.
type Observer interface {
	OnFrame(f scene.Frame)
}

type Result struct {
	Scene       string
	Seed        int64
	StepsTaken  int
	Metrics     map[string]float64
	Trace       *storage.Trace
	Last        scene.Frame
	Interrupted bool
}

type Simulator struct {
	registry  *scene.Registry
	source    sensor.Source
	metrics   []metrics.Metric
	observers []Observer
	// WallClock ticks at the configured cadence and reads the sensor on
	// its own goroutine instead of stepping as fast as possible.
	WallClock bool
}

func New(reg *scene.Registry, src sensor.Source) *Simulator {
	if reg == nil {
		reg = scene.NewRegistry()
	}
	if src == nil {
		src = sensor.Fixed{Y: 1}
	}
	return &Simulator{registry: reg, source: src}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }
func (s *Simulator) Registry() *scene.Registry  { return s.registry }

func (s *Simulator) metricsOrDefault() []metrics.Metric {
	if len(s.metrics) == 0 {
		s.metrics = metrics.Default()
	}
	return s.metrics
}

// Run steps cfg.Scene until cfg.Steps steps have run or ctx is done. A
// cancelled run is not an error; its Result is marked Interrupted.
func (s *Simulator) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	ms := s.metricsOrDefault()
	for _, m := range ms {
		m.Reset()
	}
	cols := make([]string, 0, len(ms)+2)
	for _, m := range ms {
		cols = append(cols, m.Name())
	}
	cols = append(cols, "gravity_x", "gravity_y")

	res := &Result{
		Scene:   cfg.Scene,
		Seed:    cfg.Seed,
		Metrics: make(map[string]float64, len(ms)),
		Trace:   &storage.Trace{Columns: cols},
	}

	// OnFrame runs under the driver lock and must not call back into it.
	onFrame := func(f scene.Frame) {
		row := make([]float64, 0, len(cols))
		for _, m := range ms {
			m.Observe(f)
			row = append(row, m.Last())
		}
		row = append(row, f.Gravity.X, f.Gravity.Y)
		res.Trace.Append(f.Step, row)
		res.Last = f
		for _, o := range s.observers {
			o.OnFrame(f)
		}
	}

	host, err := scene.NewHost(s.registry, cfg.Scene, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", err, cfg.Scene, s.registry.List())
	}
	tick := time.Duration(cfg.TickMs) * time.Millisecond
	drv := driver.New(host, driver.Options{
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		Tick:       tick,
		Accumulate: cfg.Accumulate,
		OnFrame:    onFrame,
	})

	if s.WallClock {
		err = s.runWallClock(ctx, drv, cfg.Steps, tick)
	} else {
		err = s.runVirtual(ctx, drv, cfg.Steps, tick)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		res.Interrupted = true
		err = nil
	}

	res.StepsTaken = drv.Steps()
	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, err
}

// runVirtual advances a synthetic clock by one tick per iteration, so
// accumulated runs are reproducible.
func (s *Simulator) runVirtual(ctx context.Context, drv *driver.Driver, steps int, tick time.Duration) error {
	now := time.Now()
	for drv.Steps() < steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		g := s.source.Gravity(drv.Steps())
		drv.SetGravity(g.X, g.Y)
		if _, err := drv.TickLimit(now, steps-drv.Steps()); err != nil {
			return err
		}
		now = now.Add(tick)
	}
	return nil
}

func (s *Simulator) runWallClock(ctx context.Context, drv *driver.Driver, steps int, tick time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go feedSensor(ctx, drv, s.source, tick)
	return drv.RunSteps(ctx, steps)
}

func feedSensor(ctx context.Context, drv *driver.Driver, src sensor.Source, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		g := src.Gravity(drv.Steps())
		drv.SetGravity(g.X, g.Y)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func validate(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("sim: nil config")
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.TickMs <= 0 {
		return fmt.Errorf("tick must be positive, got %dms", cfg.TickMs)
	}
	return cfg.Validate()
}
