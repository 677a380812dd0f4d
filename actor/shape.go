package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypePoint ShapeType = iota
	ShapeTypeCircle
)

// RadiusPerMass scales the mass into the radius of the default collision circle.
// It is unrelated to the drawing scale of the demo renderer, which uses squares of side mass*10.
const RadiusPerMass = 1.0

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// centered at the given position
	ComputeAABB(position mgl64.Vec2)
	GetAABB() AABB
	// BoundingRadius is the radius used for contact tests
	BoundingRadius() float64
	Type() ShapeType
}

// Circle represents a uniform disc collision shape
type Circle struct {
	Radius float64
	aabb   AABB
}

// DefaultRadius returns the radius of the circle a body of the given mass is drawn with
func DefaultRadius(mass float64) float64 {
	return mass * RadiusPerMass / 2
}

func (c *Circle) ComputeAABB(position mgl64.Vec2) {
	radiusVec := mgl64.Vec2{c.Radius, c.Radius}

	c.aabb = AABB{
		Min: position.Sub(radiusVec),
		Max: position.Add(radiusVec),
	}
}

func (c *Circle) GetAABB() AABB {
	return c.aabb
}

func (c *Circle) BoundingRadius() float64 {
	return c.Radius
}

func (c *Circle) Type() ShapeType {
	return ShapeTypeCircle
}

// Point is a shape without extent, two points only touch when they coincide
type Point struct {
	aabb AABB
}

func (p *Point) ComputeAABB(position mgl64.Vec2) {
	p.aabb = AABB{Min: position, Max: position}
}

func (p *Point) GetAABB() AABB {
	return p.aabb
}

func (p *Point) BoundingRadius() float64 {
	return 0
}

func (p *Point) Type() ShapeType {
	return ShapeTypePoint
}
