package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScene       = "ragdoll"
	DefaultWidth       = 454.0
	DefaultHeight      = 454.0
	DefaultSteps       = 600
	DefaultTickMs      = 33
	DefaultChainPoints = 12
	DefaultSegment     = 14.0
	DefaultLimb        = 40.0
	DefaultRows        = 4
	DefaultColumns     = 6
	DefaultRadius      = 10.0
	DefaultBodies      = 6
	DefaultRestitution = 0.7
	DefaultSmoothing   = 0.2

	MaxChainPoints = 40
	MaxRows        = 6
	MaxColumns     = 8
	MaxBodies      = 12
	MaxSteps       = 1_000_000
)

var ErrInvalidViewport = errors.New("config: viewport must be positive")

type Config struct {
	Scene      string         `yaml:"scene"`
	Viewport   ViewportConfig `yaml:"viewport"`
	Steps      int            `yaml:"steps"`
	TickMs     int            `yaml:"tick_ms"`
	Accumulate bool           `yaml:"accumulate"`
	Seed       int64          `yaml:"seed"`
	Gravity    VectorConfig   `yaml:"gravity"`
	Chain      ChainConfig    `yaml:"chain"`
	Ragdoll    RagdollConfig  `yaml:"ragdoll"`
	Liquid     LiquidConfig   `yaml:"liquid"`
	Bodies     BodiesConfig   `yaml:"bodies"`
	Sensor     SensorConfig   `yaml:"sensor"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ChainConfig struct {
	Points        int      `yaml:"points"`
	SegmentLength float64  `yaml:"segment_length"`
	AnchorX       *float64 `yaml:"anchor_x,omitempty"`
	AnchorY       *float64 `yaml:"anchor_y,omitempty"`
}

type RagdollConfig struct {
	LimbLength float64 `yaml:"limb_length"`
}

type LiquidConfig struct {
	Rows         int     `yaml:"rows"`
	Columns      int     `yaml:"columns"`
	Radius       float64 `yaml:"radius"`
	SyncVelocity bool    `yaml:"sync_velocity"`
}

type BodiesConfig struct {
	Count       int     `yaml:"count"`
	Radius      float64 `yaml:"radius"`
	Restitution float64 `yaml:"restitution"`
}

// SensorConfig selects the gravity source for headless runs.
// Kind is one of "fixed", "wobble", "script" or "accelerometer". For
// "accelerometer" the keyframes are raw device readings in m/s².
type SensorConfig struct {
	Kind      string     `yaml:"kind"`
	Smoothing float64    `yaml:"smoothing"`
	Period    int        `yaml:"period"`
	Keyframes []Keyframe `yaml:"keyframes,omitempty"`
}

type Keyframe struct {
	Step int     `yaml:"step"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:    DefaultScene,
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Steps:    DefaultSteps,
		TickMs:   DefaultTickMs,
		Gravity:  VectorConfig{X: 0, Y: 1},
		Chain: ChainConfig{
			Points:        DefaultChainPoints,
			SegmentLength: DefaultSegment,
		},
		Ragdoll: RagdollConfig{LimbLength: DefaultLimb},
		Liquid: LiquidConfig{
			Rows:    DefaultRows,
			Columns: DefaultColumns,
			Radius:  DefaultRadius,
		},
		Bodies: BodiesConfig{
			Count:       DefaultBodies,
			Restitution: DefaultRestitution,
		},
		Sensor: SensorConfig{
			Kind:      "fixed",
			Smoothing: DefaultSmoothing,
			Period:    240,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Clamp()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings no clamp can repair.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidViewport, c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

// Clamp pulls counts and sizes into the ranges the round screen can show.
// Out-of-range values are never an error.
func (c *Config) Clamp() {
	c.Steps = clampInt(c.Steps, 1, MaxSteps)
	if c.TickMs <= 0 {
		c.TickMs = DefaultTickMs
	}
	c.Chain.Points = clampInt(c.Chain.Points, 2, MaxChainPoints)
	if c.Chain.SegmentLength <= 0 {
		c.Chain.SegmentLength = DefaultSegment
	}
	if c.Ragdoll.LimbLength <= 0 {
		c.Ragdoll.LimbLength = DefaultLimb
	}
	c.Liquid.Rows = clampInt(c.Liquid.Rows, 1, MaxRows)
	c.Liquid.Columns = clampInt(c.Liquid.Columns, 1, MaxColumns)
	if c.Liquid.Radius <= 0 {
		c.Liquid.Radius = DefaultRadius
	}
	c.Bodies.Count = clampInt(c.Bodies.Count, 1, MaxBodies)
	if c.Bodies.Restitution <= 0 || c.Bodies.Restitution > 1 {
		c.Bodies.Restitution = DefaultRestitution
	}
	if c.Sensor.Smoothing <= 0 || c.Sensor.Smoothing > 1 {
		c.Sensor.Smoothing = 1
	}
	if c.Sensor.Period <= 0 {
		c.Sensor.Period = 240
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
