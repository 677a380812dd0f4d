package actor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MinMassForGravity below this mass a body neither attracts nor is attracted
	MinMassForGravity = 10.0
	// MinDistanceForGravity prevents extreme forces at near-zero separation
	MinDistanceForGravity = 0.1
	// MaxDistanceForGravity beyond this distance gravity is negligible
	MaxDistanceForGravity = 1000.0
	// GravityConstant is a simplified G, scaled for screen units
	GravityConstant = 9.81
)

// RigidBody represents a point mass in the 2D simulation.
// Bodies are created with NewRigidBody: the zero value has no mass and fails Validate.
type RigidBody struct {
	// Linear motion
	Position     mgl64.Vec2
	Velocity     mgl64.Vec2 // (units/s)
	Acceleration mgl64.Vec2 // recomputed from the accumulated forces on each Update

	// Collision shape, a Point if none was given
	Shape ShapeInterface

	mass float64
	// Named forces, cleared after every Update
	forces map[string]mgl64.Vec2
}

// NewRigidBody creates a body at rest at the given position.
// The mass must be strictly positive and finite.
func NewRigidBody(position mgl64.Vec2, shape ShapeInterface, mass float64) (*RigidBody, error) {
	if !isFinite(mass) || mass <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	if !isFiniteVec(position) {
		return nil, fmt.Errorf("%w: position %v", ErrInvalidInput, position)
	}
	if shape == nil {
		shape = &Point{}
	}

	rb := &RigidBody{
		Position: position,
		Shape:    shape,
		mass:     mass,
		forces:   make(map[string]mgl64.Vec2),
	}
	rb.ComputeAABB()

	return rb, nil
}

// MustRigidBody is like NewRigidBody but panics on invalid arguments
func MustRigidBody(position mgl64.Vec2, shape ShapeInterface, mass float64) *RigidBody {
	rb, err := NewRigidBody(position, shape, mass)
	if err != nil {
		panic(err)
	}
	return rb
}

func (rb *RigidBody) Mass() float64 {
	return rb.mass
}

// Validate reports ErrInvalidMass for a body built without NewRigidBody
func (rb *RigidBody) Validate() error {
	if !(rb.mass > 0) || !isFinite(rb.mass) {
		return fmt.Errorf("%w: %v", ErrInvalidMass, rb.mass)
	}
	return nil
}

// ComputeAABB refreshes the bounds of the shape at the current position, a nil Shape becomes a Point
func (rb *RigidBody) ComputeAABB() {
	if rb.Shape == nil {
		rb.Shape = &Point{}
	}
	rb.Shape.ComputeAABB(rb.Position)
}

// AddPersistentForce inserts or replaces the named force.
// It is summed in the next Update, then cleared with every other force.
func (rb *RigidBody) AddPersistentForce(name string, force mgl64.Vec2) error {
	if !isFiniteVec(force) {
		return fmt.Errorf("%w: force %q %v", ErrInvalidInput, name, force)
	}
	if rb.forces == nil {
		rb.forces = make(map[string]mgl64.Vec2)
	}
	rb.forces[name] = force
	return nil
}

// RemoveForce removes the named force, if present
func (rb *RigidBody) RemoveForce(name string) {
	delete(rb.forces, name)
}

func (rb *RigidBody) HasForce(name string) bool {
	_, ok := rb.forces[name]
	return ok
}

func (rb *RigidBody) Force(name string) (mgl64.Vec2, bool) {
	f, ok := rb.forces[name]
	return f, ok
}

func (rb *RigidBody) ForceCount() int {
	return len(rb.forces)
}

// ApplyImpulse changes the velocity instantly by impulse/mass (J = F*dt)
func (rb *RigidBody) ApplyImpulse(impulse mgl64.Vec2) error {
	if !isFiniteVec(impulse) {
		return fmt.Errorf("%w: impulse %v", ErrInvalidInput, impulse)
	}
	rb.Velocity = rb.Velocity.Add(impulse.Mul(1.0 / rb.mass))
	return nil
}

// ComputeGravityTowards returns the attraction exerted by other on rb,
// F = G * m1 * m2 / r², directed from rb to other.
// It does not enqueue the force.
func (rb *RigidBody) ComputeGravityTowards(other *RigidBody) mgl64.Vec2 {
	if rb.mass < MinMassForGravity || other.mass < MinMassForGravity {
		return mgl64.Vec2{}
	}

	direction := other.Position.Sub(rb.Position)
	distanceSq := direction.Dot(direction)

	if distanceSq < MinDistanceForGravity*MinDistanceForGravity ||
		distanceSq > MaxDistanceForGravity*MaxDistanceForGravity {
		return mgl64.Vec2{}
	}

	magnitude := GravityConstant * (rb.mass * other.mass) / distanceSq
	return direction.Normalize().Mul(magnitude)
}

// KineticEnergy K = 1/2 * m * v²
func (rb *RigidBody) KineticEnergy() float64 {
	return 0.5 * rb.mass * rb.Velocity.Dot(rb.Velocity)
}

// Momentum p = m * v
func (rb *RigidBody) Momentum() mgl64.Vec2 {
	return rb.Velocity.Mul(rb.mass)
}

func (rb *RigidBody) ResetAcceleration() {
	rb.Acceleration = mgl64.Vec2{}
}

// SetVelocity overwrites the velocity, bypassing the forces
func (rb *RigidBody) SetVelocity(velocity mgl64.Vec2) error {
	if !isFiniteVec(velocity) {
		return fmt.Errorf("%w: velocity %v", ErrInvalidInput, velocity)
	}
	rb.Velocity = velocity
	return nil
}

// ApplyAcceleration overwrites the acceleration, for callers integrating outside of Update
func (rb *RigidBody) ApplyAcceleration(acceleration mgl64.Vec2) error {
	if !isFiniteVec(acceleration) {
		return fmt.Errorf("%w: acceleration %v", ErrInvalidInput, acceleration)
	}
	rb.Acceleration = acceleration
	return nil
}

// Update advances the body by dt with semi-implicit Euler, then clears the forces.
// A non-finite dt is rejected and leaves the body untouched.
func (rb *RigidBody) Update(dt float64) error {
	if !isFinite(dt) {
		return fmt.Errorf("%w: dt %v", ErrInvalidInput, dt)
	}
	if err := rb.Validate(); err != nil {
		return err
	}

	rb.Acceleration = mgl64.Vec2{}
	// Sorted for reproducible sums
	for _, name := range slices.Sorted(maps.Keys(rb.forces)) {
		rb.Acceleration = rb.Acceleration.Add(rb.forces[name].Mul(1.0 / rb.mass))
	}

	// Velocity first, then position with the new velocity
	rb.Velocity = rb.Velocity.Add(rb.Acceleration.Mul(dt))
	rb.Position = rb.Position.Add(rb.Velocity.Mul(dt))

	rb.ComputeAABB()
	rb.ClearForces()

	return nil
}

func (rb *RigidBody) ClearForces() {
	clear(rb.forces)
}
