// Package sensor turns device readings, scripts or simple motion into the
// gravity direction the scenes consume.
package sensor

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/geom"
)

// StandardGravity is one g in m/s², the scale of raw accelerometer data.
const StandardGravity = 9.80665

// Source yields the gravity direction to use before a given step.
type Source interface {
	Gravity(step int) geom.Vec2
}

type Fixed geom.Vec2

func (f Fixed) Gravity(int) geom.Vec2 { return geom.Vec2(f) }

// Wobble swings gravity ±Amplitude radians around straight down.
type Wobble struct {
	Period    int
	Amplitude float64
}

func (w Wobble) Gravity(step int) geom.Vec2 {
	period := w.Period
	if period <= 0 {
		period = 240
	}
	a := w.Amplitude * math.Sin(2*math.Pi*float64(step)/float64(period))
	return geom.Vec2{X: math.Sin(a), Y: math.Cos(a)}
}

// Script holds keyframes sorted by step and interpolates linearly
// between them, holding the ends.
type Script struct {
	keys []config.Keyframe
}

func NewScript(keys []config.Keyframe) *Script {
	ks := append([]config.Keyframe(nil), keys...)
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].Step < ks[j].Step })
	return &Script{keys: ks}
}

// LoadScript reads a yaml list of {step, x, y} keyframes.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var keys []config.Keyframe
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	return NewScript(keys), nil
}

// Keyframes returns a copy of the sorted keyframes.
func (s *Script) Keyframes() []config.Keyframe {
	return append([]config.Keyframe(nil), s.keys...)
}

func (s *Script) Gravity(step int) geom.Vec2 {
	if len(s.keys) == 0 {
		return geom.Vec2{Y: 1}
	}
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i].Step > step })
	if i == 0 {
		return keyVec(s.keys[0])
	}
	if i == len(s.keys) {
		return keyVec(s.keys[i-1])
	}
	a, b := s.keys[i-1], s.keys[i]
	t := float64(step-a.Step) / float64(b.Step-a.Step)
	return keyVec(a).Lerp(keyVec(b), t)
}

func keyVec(k config.Keyframe) geom.Vec2 { return geom.Vec2{X: k.X, Y: k.Y} }

// LowPass smooths a noisy source with an exponential moving average.
// Alpha 1 passes readings through unchanged.
type LowPass struct {
	Alpha  float64
	src    Source
	state  geom.Vec2
	primed bool
}

func Smooth(src Source, alpha float64) *LowPass {
	return &LowPass{Alpha: alpha, src: src}
}

func (l *LowPass) Gravity(step int) geom.Vec2 {
	return l.Update(l.src.Gravity(step))
}

// Update folds one raw reading into the filter and returns the output.
func (l *LowPass) Update(raw geom.Vec2) geom.Vec2 {
	if !l.primed {
		l.state, l.primed = raw, true
		return raw
	}
	l.state = l.state.Lerp(raw, l.Alpha)
	return l.state
}

// FromAccelerometer maps a device reading (m/s², device axes with +y
// toward the top of the face) to a screen-space direction in units of g.
// The reading is the reaction to gravity, so screen x is mirrored.
func FromAccelerometer(ax, ay float64) geom.Vec2 {
	return geom.Vec2{X: -ax / StandardGravity, Y: ay / StandardGravity}
}

// deviceKeyframes converts keyframes holding raw accelerometer readings
// in m/s² into screen-space gravity keyframes.
func deviceKeyframes(raw []config.Keyframe) []config.Keyframe {
	out := make([]config.Keyframe, len(raw))
	for i, k := range raw {
		g := FromAccelerometer(k.X, k.Y)
		out[i] = config.Keyframe{Step: k.Step, X: g.X, Y: g.Y}
	}
	return out
}

// FromConfig builds the source described by a sensor section, using the
// fixed gravity vector for the "fixed" kind.
func FromConfig(sc config.SensorConfig, gravity config.VectorConfig) (Source, error) {
	var src Source
	switch sc.Kind {
	case "", "fixed":
		src = Fixed{X: gravity.X, Y: gravity.Y}
	case "wobble":
		src = Wobble{Period: sc.Period, Amplitude: math.Pi / 3}
	case "script":
		src = NewScript(sc.Keyframes)
	case "accelerometer":
		src = NewScript(deviceKeyframes(sc.Keyframes))
	default:
		return nil, fmt.Errorf("sensor: unknown kind %q", sc.Kind)
	}
	if sc.Smoothing > 0 && sc.Smoothing < 1 {
		src = Smooth(src, sc.Smoothing)
	}
	return src, nil
}
