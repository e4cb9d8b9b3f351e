package particles

import (
	"math"
	"testing"

	"github.com/san-kum/dialsim/internal/geom"
)

const eps = 1e-9

func TestOverlapPairSeparatesExactly(t *testing.T) {
	world := geom.NewWorld(400, 400)
	e := NewEmpty(world)
	a := e.Add(world.Center, 5)
	b := e.Add(world.Center.Add(geom.Vec2{X: 6}), 5)

	e.resolve()

	pa, pb := e.Particle(a).Pos, e.Particle(b).Pos
	if d := pa.Dist(pb); math.Abs(d-10) > eps {
		t.Errorf("distance after one pass = %v, want 10", d)
	}
	if math.Abs(pa.X-(world.Center.X-2)) > eps || math.Abs(pb.X-(world.Center.X+8)) > eps {
		t.Errorf("each particle should move by 2: got %v, %v", pa, pb)
	}
}

func TestStepSeparatesPairWithoutGravity(t *testing.T) {
	world := geom.NewWorld(400, 400)
	e := NewEmpty(world)
	e.SetGravity(0, 0)
	e.Add(world.Center, 5)
	e.Add(world.Center.Add(geom.Vec2{X: 6}), 5)

	e.Step()

	if d := e.Particle(0).Pos.Dist(e.Particle(1).Pos); math.Abs(d-10) > eps {
		t.Errorf("distance after step = %v, want 10", d)
	}
	if !e.Particle(0).Vel.IsZero() {
		t.Error("overlap correction must not change velocity")
	}
}

func TestCoincidentPairIsSkipped(t *testing.T) {
	world := geom.NewWorld(400, 400)
	e := NewEmpty(world)
	e.SetGravity(0, 0)
	e.Add(world.Center.Add(geom.Vec2{X: 20}), 5)
	e.Add(world.Center.Add(geom.Vec2{X: 20}), 5)

	e.Step()

	for i := 0; i < e.Len(); i++ {
		if !e.Particle(i).Pos.IsValid() {
			t.Fatalf("particle %d became %v", i, e.Particle(i).Pos)
		}
	}
	if e.Particle(0).Pos != e.Particle(1).Pos {
		t.Error("coincident pair should not be corrected")
	}
}

func TestOverlapDecreasesInDenseCluster(t *testing.T) {
	world := geom.NewWorld(400, 400)
	e := NewEmpty(world)
	e.SetGravity(0, 0)
	for i := 0; i < 12; i++ {
		angle := float64(i) * 2 * math.Pi / 12
		e.Add(world.Center.Add(geom.Vec2{X: 4 * math.Cos(angle), Y: 4 * math.Sin(angle)}), 8)
	}

	before := overlap(e)
	e.Step()
	after := overlap(e)

	if after >= before {
		t.Errorf("overlap did not decrease: %v -> %v", before, after)
	}
}

// overlap sums the penetration depth over all pairs.
func overlap(e *Engine) float64 {
	ps := e.Particles()
	total := 0.0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if d := ps[i].Radius + ps[j].Radius - ps[i].Pos.Dist(ps[j].Pos); d > 0 {
				total += d
			}
		}
	}
	return total
}

func TestParticlesStayInsideBoundary(t *testing.T) {
	world := geom.NewWorld(300, 260)
	e := New(world, Config{Rows: 5, Columns: 6, Radius: 9})

	for i := 0; i < 400; i++ {
		e.SetGravity(math.Sin(float64(i)/25), math.Cos(float64(i)/25))
		e.Step()
		for j, p := range e.Particles() {
			// whole disc inside, and no pass runs without a final contain
			if d := p.Pos.Dist(world.Center); d > world.Radius-p.Radius+eps {
				t.Fatalf("step %d particle %d at %v > %v", i, j, d, world.Radius-p.Radius)
			}
		}
	}
}

func TestGridIsClamped(t *testing.T) {
	world := geom.NewWorld(454, 454)
	tests := []struct {
		rows, cols, want int
	}{
		{3, 4, 12},
		{0, 0, 1},
		{-1, 5, 5},
		{100, 100, MaxRows * MaxColumns},
	}

	for _, tt := range tests {
		e := New(world, Config{Rows: tt.rows, Columns: tt.cols})
		if e.Len() != tt.want {
			t.Errorf("%dx%d: got %d particles, want %d", tt.rows, tt.cols, e.Len(), tt.want)
		}
		if e.Particle(0).Radius != DefaultRadius {
			t.Errorf("default radius = %v", e.Particle(0).Radius)
		}
	}
}

func TestGravityIntegration(t *testing.T) {
	world := geom.NewWorld(400, 400)
	e := NewEmpty(world)
	e.SetGravity(0, 1)
	e.SetGravity(0, 1)
	e.Add(world.Center, 5)

	e.Step()

	p := e.Particle(0)
	wantV := GravityScale * e.dt
	if math.Abs(p.Vel.Y-wantV) > eps {
		t.Errorf("vel.y = %v, want %v", p.Vel.Y, wantV)
	}
	if math.Abs(p.Pos.Y-(world.Center.Y+wantV*e.dt)) > eps {
		t.Errorf("pos.y = %v", p.Pos.Y)
	}
}

func TestSyncVelocity(t *testing.T) {
	world := geom.NewWorld(200, 200)
	e := New(world, Config{Rows: 1, Columns: 1, Radius: 10, SyncVelocity: true})
	e.SetGravity(0, 1)

	for i := 0; i < 600; i++ {
		e.Step()
	}
	if v := e.Particle(0).Vel.Length(); v > 1 {
		t.Errorf("resting particle kept speed %v", v)
	}
}

func TestPush(t *testing.T) {
	world := geom.NewWorld(400, 400)
	e := NewEmpty(world)
	e.Add(world.Center.Add(geom.Vec2{X: 10}), 5)
	e.Add(world.Center.Add(geom.Vec2{X: 100}), 5)

	if n := e.Push(world.Center, 40, 100); n != 1 {
		t.Fatalf("pushed %d particles, want 1", n)
	}
	if v := e.Particle(0).Vel; v.X <= 0 || v.Y != 0 {
		t.Errorf("push velocity = %v, want outward along +x", v)
	}
	if !e.Particle(1).Vel.IsZero() {
		t.Error("far particle was pushed")
	}
}

func BenchmarkStep(b *testing.B) {
	e := New(geom.NewWorld(454, 454), Config{Rows: MaxRows, Columns: MaxColumns})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
	}
}
