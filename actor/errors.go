package actor

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidMass is returned when a body is built with a mass that is not strictly positive and finite
	ErrInvalidMass = errors.New("mass must be positive and finite")
	// ErrInvalidInput is returned for NaN or infinite forces, impulses, velocities or time steps
	ErrInvalidInput = errors.New("invalid input")
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isFiniteVec(v mgl64.Vec2) bool {
	return isFinite(v.X()) && isFinite(v.Y())
}
