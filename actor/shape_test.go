package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCircle_ComputeAABB(t *testing.T) {
	circle := &Circle{Radius: 2.0}
	circle.ComputeAABB(mgl64.Vec2{1, -1})

	aabb := circle.GetAABB()
	if !vec2AlmostEqual(aabb.Min, mgl64.Vec2{-1, -3}, 1e-12) {
		t.Errorf("Min = %v, want [-1 -3]", aabb.Min)
	}
	if !vec2AlmostEqual(aabb.Max, mgl64.Vec2{3, 1}, 1e-12) {
		t.Errorf("Max = %v, want [3 1]", aabb.Max)
	}
	if circle.BoundingRadius() != 2.0 {
		t.Errorf("BoundingRadius() = %v, want 2", circle.BoundingRadius())
	}
	if circle.Type() != ShapeTypeCircle {
		t.Errorf("Type() = %v, want ShapeTypeCircle", circle.Type())
	}
}

func TestPoint_ComputeAABB(t *testing.T) {
	point := &Point{}
	point.ComputeAABB(mgl64.Vec2{4, 5})

	aabb := point.GetAABB()
	if aabb.Min != aabb.Max || aabb.Min != (mgl64.Vec2{4, 5}) {
		t.Errorf("AABB = %v, want degenerate box at [4 5]", aabb)
	}
	if point.BoundingRadius() != 0 {
		t.Errorf("BoundingRadius() = %v, want 0", point.BoundingRadius())
	}
}

func TestDefaultRadius(t *testing.T) {
	if r := DefaultRadius(10); r != 5 {
		t.Errorf("DefaultRadius(10) = %v, want 5", r)
	}
}
