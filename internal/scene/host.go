package scene

import (
	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/geom"
)

// Host owns at most one scene and builds it on the first tick that
// knows the viewport size. Gravity set before then is remembered.
type Host struct {
	registry *Registry
	name     string
	cfg      *config.Config
	scene    Scene
	gravity  geom.Vec2
}

func NewHost(r *Registry, name string, cfg *config.Config) (*Host, error) {
	if !r.Has(name) {
		return nil, ErrUnknownScene
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Host{
		registry: r,
		name:     name,
		cfg:      cfg,
		gravity:  geom.Vec2{X: cfg.Gravity.X, Y: cfg.Gravity.Y},
	}, nil
}

func (h *Host) Name() string { return h.name }
func (h *Host) Ready() bool  { return h.scene != nil }

// Tick creates the scene if needed and advances it one slice. A zero
// viewport leaves the host idle and returns ErrNotReady.
func (h *Host) Tick(width, height float64) error {
	if h.scene == nil {
		s, err := h.registry.New(h.name, width, height, h.cfg)
		if err != nil {
			return err
		}
		s.SetGravity(h.gravity.X, h.gravity.Y)
		h.scene = s
	}
	h.scene.Step()
	return nil
}

func (h *Host) SetGravity(x, y float64) {
	h.gravity = geom.Vec2{X: x, Y: y}
	if h.scene != nil {
		h.scene.SetGravity(x, y)
	}
}

// Scene returns the live scene or ErrNotReady.
func (h *Host) Scene() (Scene, error) {
	if h.scene == nil {
		return nil, ErrNotReady
	}
	return h.scene, nil
}

// Reset drops the scene; the next tick builds a fresh one.
func (h *Host) Reset() { h.scene = nil }

// Switch discards the current scene and targets another one.
func (h *Host) Switch(name string) error {
	if !h.registry.Has(name) {
		return ErrUnknownScene
	}
	h.name = name
	h.scene = nil
	return nil
}
