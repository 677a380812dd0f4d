package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// BodyState is a read-only copy of a body, for renderers and diagnostics
type BodyState struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Mass     float64
	Radius   float64
	Bounds   actor.AABB
}

// Snapshot copies the state of every body, in the order of w.Bodies
func (w *World) Snapshot() ([]BodyState, error) {
	states := make([]BodyState, len(w.Bodies))
	for i, body := range w.Bodies {
		if err := copier.Copy(&states[i], body); err != nil {
			return nil, err
		}
		states[i].Mass = body.Mass()
		if body.Shape == nil {
			states[i].Bounds = actor.AABB{Min: body.Position, Max: body.Position}
			continue
		}
		states[i].Radius = body.Shape.BoundingRadius()
		states[i].Bounds = body.Shape.GetAABB()
	}
	return states, nil
}
