package feather2d

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/glog"
)

const DEFAULT_WORKERS = 1

// GravityForcePrefix names the forces added by MutualGravity, suffixed by the index of the attracting body
const GravityForcePrefix = "gravity/"

type World struct {
	// List of all rigid bodies in the world
	Bodies []*actor.RigidBody
	// Narrow phase, DetectCircles when nil
	Detector ContactDetector
	Settings constraint.Settings
	// MutualGravity adds the pairwise attraction of every body as named forces before each Step
	MutualGravity bool
	Workers       int

	Events Events
}

// NewWorld creates an empty world with the default resolver settings
func NewWorld() *World {
	return &World{
		Detector: DetectCircles,
		Settings: constraint.DefaultSettings(),
		Workers:  DEFAULT_WORKERS,
		Events:   NewEvents(),
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body from the world
func (w *World) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Step advances the world by dt: contacts are detected for every pair and resolved in order,
// then every body is integrated.
// An invalid dt or invalid settings leave the world untouched.
func (w *World) Step(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt %v", actor.ErrInvalidInput, dt)
	}
	if err := w.Settings.Validate(); err != nil {
		return err
	}
	for i, body := range w.Bodies {
		if err := body.Validate(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Positions may have been moved outside of Update since the last step
	var gravity []namedForce
	if w.MutualGravity {
		var err error
		if gravity, err = w.computeGravity(); err != nil {
			return err
		}
	}

	for _, body := range w.Bodies {
		body.ComputeAABB()
	}
	for _, g := range gravity {
		if err := g.body.AddPersistentForce(g.name, g.force); err != nil {
			return err
		}
	}

	// Phase 1: Collision detection
	constraints := w.detectCollision()
	w.Events.recordCollisions(constraints)

	// Phase 2: Collision response, the corrected velocities feed this tick's integration
	for _, c := range constraints {
		c.Solve(w.Settings)
	}

	// Phase 3: Integration
	err := w.integrate(dt)

	glog.V(2).Infof("step dt=%v bodies=%d contacts=%d", dt, len(w.Bodies), len(constraints))

	w.Events.flush()

	return err
}

func (w *World) detectCollision() []*constraint.ContactConstraint {
	detector := w.Detector
	if detector == nil {
		detector = DetectCircles
	}
	return NarrowPhase(FindPairs(w.Bodies), detector)
}

type namedForce struct {
	body  *actor.RigidBody
	name  string
	force mgl64.Vec2
}

// computeGravity returns, for each body, one named force per attracting body.
// Nothing is inserted, so an overflowed force fails the step before any body changes.
func (w *World) computeGravity() ([]namedForce, error) {
	var forces []namedForce
	for i, body := range w.Bodies {
		for j, other := range w.Bodies {
			if i == j {
				continue
			}
			force := body.ComputeGravityTowards(other)
			if force.X() == 0 && force.Y() == 0 {
				continue
			}
			if !isFiniteVec(force) {
				return nil, fmt.Errorf("%w: gravity on body %d from body %d %v", actor.ErrInvalidInput, i, j, force)
			}
			forces = append(forces, namedForce{body: body, name: GravityForcePrefix + strconv.Itoa(j), force: force})
		}
	}
	return forces, nil
}

func isFiniteVec(v mgl64.Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (w *World) integrate(dt float64) error {
	errs := make([]error, len(w.Bodies))
	task(w.Workers, w.Bodies, func(i int, body *actor.RigidBody) {
		errs[i] = body.Update(dt)
	})
	return errors.Join(errs...)
}
