// Package driver ticks a scene host at a steady cadence and serializes
// every call into it, so sensor callbacks and frame ticks may arrive on
// different goroutines.
package driver

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/integrators"
	"github.com/san-kum/dialsim/internal/scene"
)

// MaxCatchUp bounds the steps one accumulated tick may run.
const MaxCatchUp = 4

type Options struct {
	Width, Height float64
	Tick          time.Duration
	// Accumulate steps by elapsed wall time instead of once per tick.
	Accumulate bool
	// OnFrame, if set, receives the frame after each tick that stepped.
	OnFrame func(scene.Frame)
}

type Driver struct {
	mu    sync.Mutex
	host  *scene.Host
	opts  Options
	slice time.Duration
	acc   time.Duration
	last  time.Time
	steps int
}

func New(host *scene.Host, opts Options) *Driver {
	if opts.Tick <= 0 {
		opts.Tick = 33 * time.Millisecond
	}
	return &Driver{
		host:  host,
		opts:  opts,
		slice: integrators.SliceDuration,
	}
}

// Resize updates the viewport used for the lazy scene build. It does not
// affect a scene that already exists.
func (d *Driver) Resize(width, height float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opts.Width, d.opts.Height = width, height
}

func (d *Driver) SetGravity(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.host.SetGravity(x, y)
}

func (d *Driver) Press(p geom.Vec2) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.host.Scene()
	if err != nil {
		return false
	}
	return s.Press(p)
}

func (d *Driver) Move(p geom.Vec2) {
	d.with(func(s scene.Scene) { s.Move(p) })
}

func (d *Driver) Release(p geom.Vec2) {
	d.with(func(s scene.Scene) { s.Release(p) })
}

func (d *Driver) Impulse(v geom.Vec2) {
	d.with(func(s scene.Scene) { s.Impulse(v) })
}

// Reset rebuilds the scene on the next tick.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.host.Reset()
	d.acc = 0
}

// Switch targets another scene; the old one is discarded.
func (d *Driver) Switch(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.acc = 0
	return d.host.Switch(name)
}

// Scene is the name of the scene being driven.
func (d *Driver) Scene() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.host.Name()
}

func (d *Driver) with(fn func(scene.Scene)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, err := d.host.Scene(); err == nil {
		fn(s)
	}
}

// Frame snapshots the current scene.
func (d *Driver) Frame() (scene.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.host.Scene()
	if err != nil {
		return scene.Frame{}, err
	}
	return s.Frame(), nil
}

// Steps is the number of engine steps taken so far.
func (d *Driver) Steps() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.steps
}

// Tick runs the steps due at now and returns how many ran. Without
// Accumulate that is always one.
func (d *Driver) Tick(now time.Time) (int, error) {
	return d.TickLimit(now, 0)
}

// TickLimit is Tick running at most limit steps; limit <= 0 means no
// limit. Slices due beyond the limit are dropped.
func (d *Driver) TickLimit(now time.Time, limit int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 1
	if d.opts.Accumulate {
		n = d.due(now)
	}
	if limit > 0 {
		n = min(n, limit)
	}

	ran := 0
	for i := 0; i < n; i++ {
		if err := d.host.Tick(d.opts.Width, d.opts.Height); err != nil {
			return ran, err
		}
		ran++
	}
	d.steps += ran

	if ran > 0 && d.opts.OnFrame != nil {
		if s, err := d.host.Scene(); err == nil {
			d.opts.OnFrame(s.Frame())
		}
	}
	return ran, nil
}

// due converts wall time since the previous tick into whole slices,
// dropping backlog beyond MaxCatchUp.
func (d *Driver) due(now time.Time) int {
	if d.last.IsZero() {
		d.last = now
		return 1
	}
	d.acc += now.Sub(d.last)
	d.last = now

	n := int(d.acc / d.slice)
	d.acc -= time.Duration(n) * d.slice
	if n > MaxCatchUp {
		n = MaxCatchUp
		d.acc = 0
	}
	return n
}

// Run ticks until ctx is done or, when ticks > 0, that many ticks have
// fired.
func (d *Driver) Run(ctx context.Context, ticks int) error {
	t := time.NewTicker(d.opts.Tick)
	defer t.Stop()

	for fired := 0; ticks <= 0 || fired < ticks; fired++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if _, err := d.Tick(now); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunSteps ticks until ctx is done or exactly steps engine steps have
// run since the call, however many ticks that takes.
func (d *Driver) RunSteps(ctx context.Context, steps int) error {
	t := time.NewTicker(d.opts.Tick)
	defer t.Stop()

	target := d.Steps() + steps
	for {
		left := target - d.Steps()
		if left <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if _, err := d.TickLimit(now, left); err != nil {
				return err
			}
		}
	}
}
