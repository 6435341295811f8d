package universe

import (
	"math"
	"testing"

	"github.com/san-kum/gravlab/internal/body"
)

func newTestUniverse(g float64, collisions bool, bodies ...body.Body) *Universe {
	u := New()
	u.Settings.GravitationalConstant = g
	u.Settings.EnableCollisions = collisions
	u.bodies = bodies
	return u
}

func TestStepTwoBodyAttraction(t *testing.T) {
	a := body.Body{Position: body.Vec2{X: 0, Y: 0}, Mass: 1}
	b := body.Body{Position: body.Vec2{X: 1, Y: 0}, Mass: 1}
	u := newTestUniverse(1.0, false, a, b)

	u.Step(1.0)

	va := u.At(0).Velocity
	vb := u.At(1).Velocity

	if va.X <= 0 {
		t.Errorf("left body should be pulled right, vx = %f", va.X)
	}
	if vb.X >= 0 {
		t.Errorf("right body should be pulled left, vx = %f", vb.X)
	}
	if math.Abs(va.X+vb.X) > 1e-12 {
		t.Errorf("attraction not symmetric: %f vs %f", va.X, vb.X)
	}
	if va.Y != 0 || vb.Y != 0 {
		t.Errorf("no y force expected, got %f and %f", va.Y, vb.Y)
	}

	// Integration runs after force accumulation, so positions move by the
	// post-force velocity within the same step.
	if got := u.At(0).Position.X; math.Abs(got-va.X) > 1e-12 {
		t.Errorf("left body position = %f, want %f", got, va.X)
	}
}

func TestStepSingleBodyNoSelfInteraction(t *testing.T) {
	b := body.Body{Velocity: body.Vec2{X: 2, Y: -1}, Mass: 5}
	u := newTestUniverse(100.0, false, b)

	for i := 0; i < 50; i++ {
		u.Step(0.1)
	}

	if got := u.At(0).Velocity; got != (body.Vec2{X: 2, Y: -1}) {
		t.Errorf("lone body velocity changed to %+v", got)
	}

	want := body.Vec2{X: 2 * 5.0, Y: -1 * 5.0}
	got := u.At(0).Position
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("lone body position = %+v, want %+v", got, want)
	}
}

func TestStepCoincidentBodiesNoForce(t *testing.T) {
	p := body.Vec2{X: 3, Y: 4}
	a := body.Body{Position: p, Mass: 1}
	b := body.Body{Position: p, Mass: 1}
	u := newTestUniverse(100.0, false, a, b)

	u.Step(1.0)

	for i := 0; i < u.Len(); i++ {
		got := u.At(i)
		if got.Velocity != (body.Vec2{}) {
			t.Errorf("body %d gained velocity %+v from a coincident pair", i, got.Velocity)
		}
		if math.IsNaN(got.Position.X) || math.IsInf(got.Position.X, 0) ||
			math.IsNaN(got.Position.Y) || math.IsInf(got.Position.Y, 0) {
			t.Errorf("body %d position is not finite: %+v", i, got.Position)
		}
	}
}

func TestStepCollisionMerge(t *testing.T) {
	a := body.Body{Position: body.Vec2{X: 0, Y: 0}, Mass: 1}
	b := body.Body{Position: body.Vec2{X: 0.01, Y: 0}, Mass: 1}
	u := newTestUniverse(1.0, true, a, b)

	u.Step(1.0)

	if u.Len() != 1 {
		t.Fatalf("expected 1 merged body, got %d", u.Len())
	}

	merged := u.At(0)
	if merged.Mass != 2.0 {
		t.Errorf("merged mass = %f, want 2", merged.Mass)
	}
	if math.Abs(merged.Position.X-0.005) > 1e-12 || merged.Position.Y != 0 {
		t.Errorf("merged position = %+v, want {0.005 0}", merged.Position)
	}
}

func TestStepMergeCascade(t *testing.T) {
	// Three unit masses in a row, each within contact range of its
	// neighbor. Merging the first pair puts the merged body within range
	// of the third, so one step collapses all three.
	u := newTestUniverse(0, true,
		body.Body{Position: body.Vec2{X: 0, Y: 0}, Mass: 1},
		body.Body{Position: body.Vec2{X: 1.4, Y: 0}, Mass: 1},
		body.Body{Position: body.Vec2{X: 2.8, Y: 0}, Mass: 1},
	)

	u.Step(0.0)

	if u.Len() != 1 {
		t.Fatalf("expected cascade to a single body, got %d", u.Len())
	}
	if got := u.At(0).Mass; got != 3.0 {
		t.Errorf("cascaded mass = %f, want 3", got)
	}
}

func TestStepMassConservedUnderMerging(t *testing.T) {
	u := New()
	u.GenerateBodies(GenerationSettings{
		Seed:          7,
		Bodies:        60,
		PositionRange: Range{0, 10},
		VelocityRange: Range{0, 5},
		MassRange:     Range{1, 10},
	})
	u.Settings.EnableCollisions = true

	before := u.TotalMass()
	for i := 0; i < 10; i++ {
		u.Step(0.01)
	}
	after := u.TotalMass()

	if math.Abs(before-after) > 1e-9 {
		t.Errorf("total mass drifted: %f -> %f", before, after)
	}
	if u.Len() >= 60 {
		t.Error("expected at least one merge in a dense cloud")
	}
}

func TestStepMomentumConservedUnderGravity(t *testing.T) {
	u := New()
	u.GenerateBodies(GenerationSettings{
		Seed:          11,
		Bodies:        30,
		PositionRange: Range{10, 100},
		VelocityRange: Range{0, 20},
		MassRange:     Range{1, 5},
	})
	u.Settings.EnableCollisions = false

	px0, py0 := u.Momentum()
	for i := 0; i < 20; i++ {
		u.Step(0.01)
	}
	px1, py1 := u.Momentum()

	if math.Abs(px1-px0) > 1e-6 || math.Abs(py1-py0) > 1e-6 {
		t.Errorf("momentum drifted: (%f, %f) -> (%f, %f)", px0, py0, px1, py1)
	}
}

func TestStepRepulsion(t *testing.T) {
	a := body.Body{Position: body.Vec2{X: 0, Y: 0}, Mass: 1}
	b := body.Body{Position: body.Vec2{X: 2, Y: 0}, Mass: 1}
	u := newTestUniverse(-1.0, false, a, b)

	u.Step(1.0)

	if u.At(0).Velocity.X >= 0 || u.At(1).Velocity.X <= 0 {
		t.Errorf("negative G should repel, got vx %f and %f",
			u.At(0).Velocity.X, u.At(1).Velocity.X)
	}
}

func TestStepNegativeDtClamped(t *testing.T) {
	b := body.Body{Position: body.Vec2{X: 1, Y: 1}, Velocity: body.Vec2{X: 3, Y: 3}, Mass: 1}
	u := newTestUniverse(100.0, false, b)

	u.Step(-0.5)

	if u.At(0).Position != (body.Vec2{X: 1, Y: 1}) {
		t.Errorf("negative dt moved the body to %+v", u.At(0).Position)
	}
	if u.At(0).Velocity != (body.Vec2{X: 3, Y: 3}) {
		t.Errorf("negative dt changed velocity to %+v", u.At(0).Velocity)
	}
}

func TestStepCollisionsDisabled(t *testing.T) {
	a := body.Body{Position: body.Vec2{X: 0, Y: 0}, Mass: 1}
	b := body.Body{Position: body.Vec2{X: 0.01, Y: 0}, Mass: 1}
	u := newTestUniverse(0, false, a, b)

	u.Step(0.0)

	if u.Len() != 2 {
		t.Errorf("bodies merged with collisions disabled, len = %d", u.Len())
	}
}

func TestInteractions(t *testing.T) {
	u := New()
	u.GenerateBodies(GenerationSettings{
		Seed: 3, Bodies: 10,
		PositionRange: Range{0, 10}, VelocityRange: Range{0, 1}, MassRange: Range{1, 2},
	})
	if got := u.Interactions(); got != 90 {
		t.Errorf("Interactions() = %d, want 90", got)
	}
}

func TestConservedReadouts(t *testing.T) {
	a := body.Body{Position: body.Vec2{X: 0, Y: 0}, Velocity: body.Vec2{X: 1, Y: 0}, Mass: 2}
	b := body.Body{Position: body.Vec2{X: 4, Y: 0}, Velocity: body.Vec2{X: 0, Y: 3}, Mass: 1}
	u := newTestUniverse(10.0, false, a, b)

	if got := u.TotalMass(); got != 3 {
		t.Errorf("TotalMass = %f, want 3", got)
	}

	// KE = 0.5*2*1 + 0.5*1*9
	if got := u.KineticEnergy(); math.Abs(got-5.5) > 1e-12 {
		t.Errorf("KineticEnergy = %f, want 5.5", got)
	}

	// PE = -10*2*1/4
	if got := u.PotentialEnergy(); math.Abs(got-(-5.0)) > 1e-12 {
		t.Errorf("PotentialEnergy = %f, want -5", got)
	}

	if got := u.Energy(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Energy = %f, want 0.5", got)
	}

	px, py := u.Momentum()
	if math.Abs(px-2) > 1e-12 || math.Abs(py-3) > 1e-12 {
		t.Errorf("Momentum = (%f, %f), want (2, 3)", px, py)
	}

	// L = m_b * (x*vy - y*vx) = 1 * 4*3
	if got := u.AngularMomentum(); math.Abs(got-12) > 1e-12 {
		t.Errorf("AngularMomentum = %f, want 12", got)
	}
}

func TestPotentialEnergySkipsCoincidentPair(t *testing.T) {
	p := body.Vec2{X: 1, Y: 1}
	u := newTestUniverse(100.0, false,
		body.Body{Position: p, Mass: 1},
		body.Body{Position: p, Mass: 1},
	)

	got := u.PotentialEnergy()
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("PotentialEnergy = %f for coincident pair, want finite", got)
	}
	if got != 0 {
		t.Errorf("PotentialEnergy = %f, want 0", got)
	}
}
