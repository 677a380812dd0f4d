package constraint

import (
	"math"
	"testing"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Helper function to create a circle body for testing
func createBody(position mgl64.Vec2, velocity mgl64.Vec2, mass float64) *actor.RigidBody {
	rb := actor.MustRigidBody(position, &actor.Circle{Radius: 1.0}, mass)
	rb.Velocity = velocity

	return rb
}

func TestContactConstraint_SolveVelocity_HeadOn(t *testing.T) {
	// Relative speed 4 along the normal, closing
	bodyA := createBody(mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}, 10)
	bodyB := createBody(mgl64.Vec2{1.9, 0}, mgl64.Vec2{-2, 0}, 10)
	normal := mgl64.Vec2{1, 0}

	j := ImpulseMagnitude(bodyA, bodyB, normal, 0.5)
	if !almostEqual(j, 30, 1e-9) {
		t.Fatalf("ImpulseMagnitude() = %v, want 30", j)
	}

	c := &ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: Contact{Normal: normal, Penetration: 0.1}}
	c.SolveVelocity(0.5)

	// Velocity changes of -3 and +3
	if !vec2AlmostEqual(bodyA.Velocity, mgl64.Vec2{-1, 0}, 1e-9) {
		t.Errorf("BodyA velocity = %v, want [-1 0]", bodyA.Velocity)
	}
	if !vec2AlmostEqual(bodyB.Velocity, mgl64.Vec2{1, 0}, 1e-9) {
		t.Errorf("BodyB velocity = %v, want [1 0]", bodyB.Velocity)
	}

	// Separating at half the approach speed
	separation := bodyB.Velocity.Sub(bodyA.Velocity).Dot(normal)
	if !almostEqual(separation, 2, 1e-9) {
		t.Errorf("separation speed = %v, want 2", separation)
	}
}

func TestContactConstraint_SolveVelocity_Restitution(t *testing.T) {
	tests := []struct {
		name        string
		restitution float64
		wantSep     float64
	}{
		{"inelastic", 0.0, 0},
		{"medium", 0.5, 2},
		{"elastic", 1.0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodyA := createBody(mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}, 10)
			bodyB := createBody(mgl64.Vec2{1, 0}, mgl64.Vec2{-2, 0}, 10)
			c := &ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: Contact{Normal: mgl64.Vec2{1, 0}}}

			c.SolveVelocity(tt.restitution)

			separation := bodyB.Velocity.Sub(bodyA.Velocity).X()
			if !almostEqual(separation, tt.wantSep, 1e-9) {
				t.Errorf("separation speed = %v, want %v", separation, tt.wantSep)
			}
		})
	}
}

func TestContactConstraint_SolveVelocity_ConservesMomentum(t *testing.T) {
	tests := []struct {
		name   string
		massA  float64
		massB  float64
		velA   mgl64.Vec2
		velB   mgl64.Vec2
		normal mgl64.Vec2
	}{
		{"equal masses", 10, 10, mgl64.Vec2{2, 0}, mgl64.Vec2{-2, 0}, mgl64.Vec2{1, 0}},
		{"heavy and light", 100, 1, mgl64.Vec2{1, 1}, mgl64.Vec2{-3, 0.5}, mgl64.Vec2{1, 0}},
		{"diagonal normal", 3, 7, mgl64.Vec2{0, -4}, mgl64.Vec2{1, 2}, mgl64.Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}},
		{"separating", 5, 2, mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodyA := createBody(mgl64.Vec2{0, 0}, tt.velA, tt.massA)
			bodyB := createBody(mgl64.Vec2{1, 0}, tt.velB, tt.massB)
			c := &ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: Contact{Normal: tt.normal}}

			c.SolveVelocity(0.5)

			deltaA := bodyA.Velocity.Sub(tt.velA).Mul(tt.massA)
			deltaB := bodyB.Velocity.Sub(tt.velB).Mul(tt.massB)
			if !vec2AlmostEqual(deltaA.Add(deltaB), mgl64.Vec2{}, 1e-9) {
				t.Errorf("momentum changed by %v", deltaA.Add(deltaB))
			}
		})
	}
}

func TestContactConstraint_SolvePosition_Correction(t *testing.T) {
	bodyA := createBody(mgl64.Vec2{0, 0}, mgl64.Vec2{}, 10)
	bodyB := createBody(mgl64.Vec2{1.95, 0}, mgl64.Vec2{}, 10)
	contact := Contact{Normal: mgl64.Vec2{1, 0}, Penetration: 0.05}

	correction := Correction(bodyA, bodyB, contact, 0.01, 0.2)
	// (0.05 * 0.2) / 0.2
	if !vec2AlmostEqual(correction, mgl64.Vec2{0.05, 0}, 1e-12) {
		t.Fatalf("Correction() = %v, want [0.05 0]", correction)
	}

	c := &ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: contact}
	c.SolvePosition(0.01, 0.2)

	if !vec2AlmostEqual(bodyA.Position, mgl64.Vec2{-0.005, 0}, 1e-12) {
		t.Errorf("BodyA position = %v, want [-0.005 0]", bodyA.Position)
	}
	if !vec2AlmostEqual(bodyB.Position, mgl64.Vec2{1.955, 0}, 1e-12) {
		t.Errorf("BodyB position = %v, want [1.955 0]", bodyB.Position)
	}
}

func TestContactConstraint_SolvePosition_BelowSlop(t *testing.T) {
	tests := []struct {
		name        string
		penetration float64
	}{
		{"zero", 0},
		{"below slop", 0.005},
		{"at slop", 0.01},
		{"negative below slop", -0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodyA := createBody(mgl64.Vec2{0, 0}, mgl64.Vec2{}, 10)
			bodyB := createBody(mgl64.Vec2{2, 0}, mgl64.Vec2{}, 10)
			c := &ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: Contact{Normal: mgl64.Vec2{1, 0}, Penetration: tt.penetration}}

			c.SolvePosition(0.01, 0.2)

			if bodyA.Position != (mgl64.Vec2{0, 0}) || bodyB.Position != (mgl64.Vec2{2, 0}) {
				t.Errorf("positions changed below slop: %v, %v", bodyA.Position, bodyB.Position)
			}
		})
	}
}

func TestContactConstraint_SolvePosition_NegativeDepthUsesMagnitude(t *testing.T) {
	bodyA := createBody(mgl64.Vec2{0, 0}, mgl64.Vec2{}, 10)
	bodyB := createBody(mgl64.Vec2{2, 0}, mgl64.Vec2{}, 10)
	c := &ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: Contact{Normal: mgl64.Vec2{1, 0}, Penetration: -0.05}}

	c.SolvePosition(0.01, 0.2)

	if !vec2AlmostEqual(bodyA.Position, mgl64.Vec2{-0.005, 0}, 1e-12) {
		t.Errorf("BodyA position = %v, want [-0.005 0]", bodyA.Position)
	}
	if !vec2AlmostEqual(bodyB.Position, mgl64.Vec2{2.005, 0}, 1e-12) {
		t.Errorf("BodyB position = %v, want [2.005 0]", bodyB.Position)
	}
}

func TestContactConstraint_SolvePosition_HeavierMovesLess(t *testing.T) {
	bodyA := createBody(mgl64.Vec2{0, 0}, mgl64.Vec2{}, 100)
	bodyB := createBody(mgl64.Vec2{1, 0}, mgl64.Vec2{}, 1)
	c := &ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: Contact{Normal: mgl64.Vec2{1, 0}, Penetration: 0.5}}

	c.SolvePosition(0.01, 0.2)

	deltaA := math.Abs(bodyA.Position.X())
	deltaB := math.Abs(bodyB.Position.X() - 1)
	if deltaA >= deltaB {
		t.Errorf("heavier body should move less: deltaA=%v, deltaB=%v", deltaA, deltaB)
	}
	if !almostEqual(deltaA*100, deltaB*1, 1e-12) {
		t.Errorf("displacements should weigh by inverse mass: deltaA=%v, deltaB=%v", deltaA, deltaB)
	}
}

func TestResolve_VelocityThenPosition(t *testing.T) {
	bodyA := createBody(mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}, 10)
	bodyB := createBody(mgl64.Vec2{1.95, 0}, mgl64.Vec2{-2, 0}, 10)

	Resolve(bodyA, bodyB, Contact{Normal: mgl64.Vec2{1, 0}, Penetration: 0.05}, DefaultSettings())

	if !vec2AlmostEqual(bodyA.Velocity, mgl64.Vec2{-1, 0}, 1e-9) {
		t.Errorf("BodyA velocity = %v, want [-1 0]", bodyA.Velocity)
	}
	if !vec2AlmostEqual(bodyB.Velocity, mgl64.Vec2{1, 0}, 1e-9) {
		t.Errorf("BodyB velocity = %v, want [1 0]", bodyB.Velocity)
	}
	if !vec2AlmostEqual(bodyA.Position, mgl64.Vec2{-0.005, 0}, 1e-12) {
		t.Errorf("BodyA position = %v, want [-0.005 0]", bodyA.Position)
	}
	if !vec2AlmostEqual(bodyB.Position, mgl64.Vec2{1.955, 0}, 1e-12) {
		t.Errorf("BodyB position = %v, want [1.955 0]", bodyB.Position)
	}
}

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec2AlmostEqual(a, b mgl64.Vec2, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon)
}
