package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactDetector is the narrow phase: it reports whether two bodies touch,
// with a normal pointing from bodyA toward bodyB and a positive penetration on overlap
type ContactDetector func(bodyA, bodyB *actor.RigidBody) (constraint.Contact, bool)

// Pair represents a pair of rigid bodies that potentially collide
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// FindPairs returns every pair (i < j) of bodies.
// This is an O(n²) brute-force approach suitable for small numbers of bodies
func FindPairs(bodies []*actor.RigidBody) []Pair {
	n := len(bodies)
	if n < 2 {
		return nil
	}

	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{BodyA: bodies[i], BodyB: bodies[j]})
		}
	}

	return pairs
}

// NarrowPhase runs the detector on every pair, in order, and keeps the contacts
func NarrowPhase(pairs []Pair, detector ContactDetector) []*constraint.ContactConstraint {
	contacts := make([]*constraint.ContactConstraint, 0)
	for _, pair := range pairs {
		contact, ok := detector(pair.BodyA, pair.BodyB)
		if !ok {
			continue
		}
		contacts = append(contacts, &constraint.ContactConstraint{
			BodyA:   pair.BodyA,
			BodyB:   pair.BodyB,
			Contact: contact,
		})
	}

	return contacts
}

// DetectCircles treats both bodies as uniform circles of their shape's bounding radius.
// Points have a radius of 0, so two points never collide.
// Coincident centers use the +X normal.
func DetectCircles(bodyA, bodyB *actor.RigidBody) (constraint.Contact, bool) {
	radii := bodyA.Shape.BoundingRadius() + bodyB.Shape.BoundingRadius()

	delta := bodyB.Position.Sub(bodyA.Position)
	distanceSq := delta.Dot(delta)
	if distanceSq >= radii*radii {
		return constraint.Contact{}, false
	}

	distance := delta.Len()
	normal := mgl64.Vec2{1, 0}
	if distance > 1e-12 {
		normal = delta.Mul(1.0 / distance)
	}

	return constraint.Contact{
		Normal:      normal,
		Penetration: radii - distance,
	}, true
}
