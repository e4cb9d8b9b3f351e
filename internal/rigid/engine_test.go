package rigid

import (
	"math"
	"testing"

	"github.com/san-kum/dialsim/internal/geom"
)

const eps = 1e-9

func TestRestitutionOnWallContact(t *testing.T) {
	world := geom.NewWorld(200, 200)
	e := NewEmpty(world)
	e.SetGravity(0, 0)
	i := e.Add(Circle, geom.Vec2{X: 100, Y: 175}, 10)
	e.bodies[i].Vel = geom.Vec2{Y: 600}

	e.Step()

	b := e.Body(i)
	if math.Abs(b.Pos.Y-180) > eps {
		t.Errorf("pos = %v, want clamped to y=180", b.Pos)
	}
	want := 600 * DefaultRestitution
	if math.Abs(b.Vel.Y+want) > eps || math.Abs(b.Vel.X) > eps {
		t.Errorf("vel = %v, want (0, %v)", b.Vel, -want)
	}
}

func TestObliqueBounceKeepsSpeedRatio(t *testing.T) {
	world := geom.NewWorld(200, 200)
	e := NewEmpty(world)
	e.SetGravity(0, 0)
	i := e.Add(Circle, geom.Vec2{X: 175, Y: 100}, 10)
	e.bodies[i].Restitution = 0.5
	v := geom.Vec2{X: 600, Y: 120}
	e.bodies[i].Vel = v

	e.Step()

	got := e.Body(i).Vel.Length()
	if math.Abs(got-v.Length()*0.5) > 1e-6 {
		t.Errorf("speed after bounce = %v, want %v", got, v.Length()*0.5)
	}
	if e.Body(i).Vel.X >= 0 {
		t.Errorf("x velocity should reverse, got %v", e.Body(i).Vel)
	}
}

func TestBodiesStayInsideBoundary(t *testing.T) {
	world := geom.NewWorld(454, 454)
	e := New(world, Config{Count: MaxBodies, Seed: 7})

	for i := 0; i < 600; i++ {
		e.SetGravity(math.Cos(float64(i)/30), math.Sin(float64(i)/30))
		e.Step()
		for j, b := range e.Bodies() {
			if d := b.Pos.Dist(world.Center) + b.Radius; d > world.Radius+eps {
				t.Fatalf("step %d body %d reaches %v > %v", i, j, d, world.Radius)
			}
		}
	}
}

func TestNewLayout(t *testing.T) {
	world := geom.NewWorld(454, 454)
	tests := []struct {
		count, want int
	}{
		{0, 1},
		{5, 5},
		{99, MaxBodies},
	}

	for _, tt := range tests {
		e := New(world, Config{Count: tt.count, Seed: 1})
		if e.Len() != tt.want {
			t.Errorf("Count=%d: got %d bodies, want %d", tt.count, e.Len(), tt.want)
		}
	}

	e := New(world, Config{Count: 4, Seed: 1, Restitution: 0.9})
	for i, b := range e.Bodies() {
		wantShape := Circle
		if i%2 == 1 {
			wantShape = Box
		}
		if b.Shape != wantShape {
			t.Errorf("body %d shape = %v, want %v", i, b.Shape, wantShape)
		}
		if math.Abs(b.Spin) > MaxSpin {
			t.Errorf("body %d spin %v out of range", i, b.Spin)
		}
		if b.Color != Palette[i] {
			t.Errorf("body %d colour = %q", i, b.Color)
		}
		if b.Restitution != 0.9 {
			t.Errorf("body %d restitution = %v", i, b.Restitution)
		}
		if b.Mass != b.Radius*b.Radius {
			t.Errorf("body %d mass = %v", i, b.Mass)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	world := geom.NewWorld(300, 300)
	a := New(world, Config{Count: 6, Seed: 42})
	b := New(world, Config{Count: 6, Seed: 42})
	for i := 0; i < a.Len(); i++ {
		if a.Body(i).Spin != b.Body(i).Spin {
			t.Fatalf("body %d spin differs for the same seed", i)
		}
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	world := geom.NewWorld(300, 300)
	e := NewEmpty(world)
	e.Add(Circle, geom.Vec2{X: 150, Y: 150}, 20)
	e.Add(Box, geom.Vec2{X: 160, Y: 150}, 20)

	i, ok := e.HitTest(geom.Vec2{X: 155, Y: 150})
	if !ok || i != 1 {
		t.Errorf("HitTest = %d, %v; want 1", i, ok)
	}
	i, ok = e.HitTest(geom.Vec2{X: 132, Y: 150})
	if !ok || i != 0 {
		t.Errorf("HitTest = %d, %v; want 0", i, ok)
	}
	if _, ok := e.HitTest(geom.Vec2{X: 10, Y: 10}); ok {
		t.Error("HitTest found a body in empty space")
	}
}

func TestDragLifecycle(t *testing.T) {
	world := geom.NewWorld(300, 300)
	e := NewEmpty(world)
	i := e.Add(Circle, world.Center, 15)
	e.bodies[i].Spin = 2
	e.Step()

	e.StartDrag(i)
	if b := e.Body(i); !b.Dragging || !b.Vel.IsZero() {
		t.Fatalf("StartDrag left %+v", b)
	}

	target := geom.Vec2{X: 120, Y: 140}
	e.UpdateDrag(i, target)
	angle := e.Body(i).Angle
	e.Step()
	b := e.Body(i)
	if b.Pos != target {
		t.Errorf("held body drifted to %v", b.Pos)
	}
	if b.Angle <= angle {
		t.Error("held body should keep spinning")
	}

	throw := geom.Vec2{X: 50, Y: -80}
	e.EndDrag(i, throw)
	if b := e.Body(i); b.Dragging || b.Vel != throw {
		t.Errorf("EndDrag left %+v", b)
	}

	e.UpdateDrag(i, geom.Vec2{})
	if e.Body(i).Pos != target {
		t.Error("UpdateDrag moved a released body")
	}
	e.StartDrag(-1)
	e.EndDrag(99, throw)
}

func TestBoxCorners(t *testing.T) {
	b := newBody(Box, geom.Vec2{X: 10, Y: 10}, 2)
	c := b.Corners()
	if len(c) != 4 {
		t.Fatalf("got %d corners", len(c))
	}
	if math.Abs(c[0].X-8) > eps || math.Abs(c[0].Y-8) > eps {
		t.Errorf("corner 0 = %v, want (8, 8)", c[0])
	}

	b.Angle = math.Pi / 2
	c = b.Corners()
	if math.Abs(c[0].X-12) > eps || math.Abs(c[0].Y-8) > eps {
		t.Errorf("rotated corner 0 = %v, want (12, 8)", c[0])
	}
	if newBody(Circle, geom.Vec2{}, 1).Corners() != nil {
		t.Error("circle should have no corners")
	}
}

func BenchmarkStep(b *testing.B) {
	e := New(geom.NewWorld(454, 454), Config{Count: MaxBodies})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
	}
}
