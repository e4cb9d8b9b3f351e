package metrics

import "github.com/san-kum/dialsim/internal/scene"

// KineticEnergy is Σ½mv² per frame, skipping held and pinned entities.
// Value is the run mean.
type KineticEnergy struct {
	last    float64
	sum     float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic" }

func (k *KineticEnergy) Observe(f scene.Frame) {
	k.last = 0
	for _, d := range f.Discs {
		if d.Pinned || d.Held {
			continue
		}
		k.last += 0.5 * d.Mass * d.Vel.LengthSq()
	}
	k.sum += k.last
	k.samples++
}

func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *KineticEnergy) Reset() { k.last, k.sum, k.samples = 0, 0, 0 }
