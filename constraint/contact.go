package constraint

import (
	"math"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is the result of a pairwise check.
// Normal is a unit vector pointing from body A toward body B,
// Penetration is positive when the bodies overlap.
type Contact struct {
	Normal      mgl64.Vec2
	Penetration float64
}

type ContactConstraint struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
	Contact
}

var _ Constraint = (*ContactConstraint)(nil)

// Resolve applies the impulse and the positional correction of a single contact
func Resolve(bodyA, bodyB *actor.RigidBody, contact Contact, settings Settings) {
	c := ContactConstraint{BodyA: bodyA, BodyB: bodyB, Contact: contact}
	c.Solve(settings)
}

// Solve runs the velocity step, then the position step
func (c *ContactConstraint) Solve(settings Settings) {
	c.SolveVelocity(settings.Restitution)
	c.SolvePosition(settings.Slop, settings.CorrectionPercent)
}

// ImpulseMagnitude returns j = -(1 + e) * (vB - vA)·n / (1/mA + 1/mB)
func ImpulseMagnitude(bodyA, bodyB *actor.RigidBody, normal mgl64.Vec2, restitution float64) float64 {
	relativeVelocity := bodyB.Velocity.Sub(bodyA.Velocity)
	return -(1 + restitution) * relativeVelocity.Dot(normal) / inverseMassSum(bodyA, bodyB)
}

// Correction returns the de-penetration vector shared by both bodies,
// zero when |penetration| does not exceed slop.
func Correction(bodyA, bodyB *actor.RigidBody, contact Contact, slop, percent float64) mgl64.Vec2 {
	penetration := math.Abs(contact.Penetration)
	if penetration <= slop {
		return mgl64.Vec2{}
	}

	return contact.Normal.Mul(penetration * percent / inverseMassSum(bodyA, bodyB))
}

// SolveVelocity applies the restitution impulse.
// Both velocities change from the same impulse, computed before either is modified.
func (c *ContactConstraint) SolveVelocity(restitution float64) {
	bodyA := c.BodyA
	bodyB := c.BodyB

	impulse := c.Normal.Mul(ImpulseMagnitude(bodyA, bodyB, c.Normal, restitution))
	deltaA := impulse.Mul(1.0 / bodyA.Mass())
	deltaB := impulse.Mul(1.0 / bodyB.Mass())

	bodyA.Velocity = bodyA.Velocity.Sub(deltaA)
	bodyB.Velocity = bodyB.Velocity.Add(deltaB)
}

// SolvePosition pushes the bodies apart along the normal, proportionally to their inverse mass
func (c *ContactConstraint) SolvePosition(slop, percent float64) {
	correction := Correction(c.BodyA, c.BodyB, c.Contact, slop, percent)
	if correction == (mgl64.Vec2{}) {
		return
	}

	c.BodyA.Position = c.BodyA.Position.Sub(correction.Mul(1.0 / c.BodyA.Mass()))
	c.BodyB.Position = c.BodyB.Position.Add(correction.Mul(1.0 / c.BodyB.Mass()))
}

func inverseMassSum(bodyA, bodyB *actor.RigidBody) float64 {
	return 1.0/bodyA.Mass() + 1.0/bodyB.Mass()
}
