package scene

import (
	"fmt"
	"slices"

	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/particles"
	"github.com/san-kum/dialsim/internal/rigid"
	"github.com/san-kum/dialsim/internal/verlet"
)

type Factory func(world geom.World, cfg *config.Config) Scene

type Registry struct {
	scenes map[string]Factory
	info   map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes: make(map[string]Factory),
		info:   make(map[string]string),
	}

	r.Register("ragdoll", "stick figure on a star of constraints", newRagdoll)
	r.Register("chain", "pinned hanging chain", newChain)
	r.Register("liquid", "overlapping particle swarm", newLiquid)
	r.Register("bodies", "throwable circles and boxes", newBodies)

	return r
}

func (r *Registry) Register(name, info string, f Factory) {
	r.scenes[name] = f
	r.info[name] = info
}

// New builds the named scene inside a world derived from the viewport.
func (r *Registry) New(name string, width, height float64, cfg *config.Config) (Scene, error) {
	f, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if width <= 0 || height <= 0 {
		return nil, ErrNotReady
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return f(geom.NewWorld(width, height), cfg), nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.scenes[name]
	return ok
}

func (r *Registry) Info(name string) string { return r.info[name] }

// List returns scene names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newRagdoll(world geom.World, cfg *config.Config) Scene {
	e := verlet.NewRagdoll(world, verlet.RagdollConfig{LimbLength: cfg.Ragdoll.LimbLength})
	return newPointScene("ragdoll", e, ragdollShape)
}

func newChain(world geom.World, cfg *config.Config) Scene {
	cc := verlet.ChainConfig{
		Points:        cfg.Chain.Points,
		SegmentLength: cfg.Chain.SegmentLength,
	}
	if cfg.Chain.AnchorX != nil || cfg.Chain.AnchorY != nil {
		anchor := world.Center.Add(geom.Vec2{Y: -world.Radius * 0.6})
		if cfg.Chain.AnchorX != nil {
			anchor.X = *cfg.Chain.AnchorX
		}
		if cfg.Chain.AnchorY != nil {
			anchor.Y = *cfg.Chain.AnchorY
		}
		cc.Anchor = &anchor
	}
	return newPointScene("chain", verlet.NewChain(world, cc), chainShape)
}

func newLiquid(world geom.World, cfg *config.Config) Scene {
	e := particles.New(world, particles.Config{
		Rows:         cfg.Liquid.Rows,
		Columns:      cfg.Liquid.Columns,
		Radius:       cfg.Liquid.Radius,
		SyncVelocity: cfg.Liquid.SyncVelocity,
	})
	return &liquidScene{engine: e, raw: geom.Vec2{Y: 1}}
}

func newBodies(world geom.World, cfg *config.Config) Scene {
	e := rigid.New(world, rigid.Config{
		Count:       cfg.Bodies.Count,
		Radius:      cfg.Bodies.Radius,
		Restitution: cfg.Bodies.Restitution,
		Seed:        cfg.Seed,
	})
	return &bodiesScene{engine: e, raw: geom.Vec2{Y: 1}}
}
