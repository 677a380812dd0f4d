// Package scene describes a set of bodies and the forces re-applied to them every tick,
// and builds the matching feather2d.World.
package scene

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/glog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt    = 1.0 / 60.0
	DefaultSteps = 600
)

var ErrInvalidScene = errors.New("invalid scene")

// Vec is a [x, y] pair in scene files
type Vec [2]float64

func (v Vec) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{v[0], v[1]}
}

func (v Vec) finite() bool {
	return isFinite(v[0]) && isFinite(v[1])
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Settings overrides the resolver coefficients, unset fields keep their default
type Settings struct {
	Restitution       *float64 `yaml:"restitution,omitempty"`
	Slop              *float64 `yaml:"slop,omitempty"`
	CorrectionPercent *float64 `yaml:"correction_percent,omitempty"`
}

type Body struct {
	Position Vec     `yaml:"position"`
	Mass     float64 `yaml:"mass"`
	Velocity Vec     `yaml:"velocity,omitempty"`
	// Radius of the collision circle, actor.DefaultRadius(Mass) when zero.
	// A negative radius makes the body a point.
	Radius float64 `yaml:"radius,omitempty"`
	// Forces are inserted every tick the body does not already carry them
	Forces map[string]Vec `yaml:"forces,omitempty"`
}

type Scene struct {
	Name          string   `yaml:"name"`
	Dt            float64  `yaml:"dt,omitempty"`
	Steps         int      `yaml:"steps,omitempty"`
	MutualGravity bool     `yaml:"mutual_gravity,omitempty"`
	Settings      Settings `yaml:"settings,omitempty"`
	Bodies        []Body   `yaml:"bodies"`
}

// Default is the two body demo: the first body is pushed by a constant "gravity" force
func Default() *Scene {
	return &Scene{
		Name:  "default",
		Dt:    DefaultDt,
		Steps: DefaultSteps,
		Bodies: []Body{
			{
				Position: Vec{20, 10},
				Mass:     10,
				Forces:   map[string]Vec{"gravity": {10, 20}},
			},
			{
				Position: Vec{80, 80},
				Mass:     10,
			},
		},
	}
}

// Parse decodes a YAML scene and fills the defaults
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if s.Dt == 0 {
		s.Dt = DefaultDt
	}
	if s.Steps == 0 {
		s.Steps = DefaultSteps
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the scene file at path
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	glog.V(1).Infof("loaded scene %q from %s: %d bodies", s.Name, path, len(s.Bodies))
	return s, nil
}

func (s *Scene) Validate() error {
	if !(s.Dt >= 0) || !isFinite(s.Dt) {
		return fmt.Errorf("%w: dt %v", ErrInvalidScene, s.Dt)
	}
	if s.Steps < 0 {
		return fmt.Errorf("%w: negative steps %d", ErrInvalidScene, s.Steps)
	}
	for i, b := range s.Bodies {
		if !(b.Mass > 0) || !isFinite(b.Mass) {
			return fmt.Errorf("%w: body %d: %w", ErrInvalidScene, i, actor.ErrInvalidMass)
		}
		if !b.Position.finite() || !b.Velocity.finite() || !isFinite(b.Radius) {
			return fmt.Errorf("%w: body %d: %w", ErrInvalidScene, i, actor.ErrInvalidInput)
		}
		for name, force := range b.Forces {
			if !force.finite() {
				return fmt.Errorf("%w: body %d: force %q: %w", ErrInvalidScene, i, name, actor.ErrInvalidInput)
			}
		}
	}
	if _, err := s.ResolverSettings(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return nil
}

// ResolverSettings applies the overrides on constraint.DefaultSettings
func (s *Scene) ResolverSettings() (constraint.Settings, error) {
	settings := constraint.DefaultSettings()
	if s.Settings.Restitution != nil {
		settings.Restitution = *s.Settings.Restitution
	}
	if s.Settings.Slop != nil {
		settings.Slop = *s.Settings.Slop
	}
	if s.Settings.CorrectionPercent != nil {
		settings.CorrectionPercent = *s.Settings.CorrectionPercent
	}
	return settings, settings.Validate()
}

// Build creates a world holding one body per scene body, in order
func (s *Scene) Build() (*feather2d.World, error) {
	settings, err := s.ResolverSettings()
	if err != nil {
		return nil, err
	}

	w := feather2d.NewWorld()
	w.Settings = settings
	w.MutualGravity = s.MutualGravity

	for i, b := range s.Bodies {
		var shape actor.ShapeInterface
		switch {
		case b.Radius < 0:
			shape = &actor.Point{}
		case b.Radius == 0:
			shape = &actor.Circle{Radius: actor.DefaultRadius(b.Mass)}
		default:
			shape = &actor.Circle{Radius: b.Radius}
		}

		body, err := actor.NewRigidBody(b.Position.Vec2(), shape, b.Mass)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if err := body.SetVelocity(b.Velocity.Vec2()); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		w.AddBody(body)
	}

	return w, nil
}

// ApplyPersistentForces inserts each scene force on its body when absent.
// Bodies of w are matched to scene bodies by index.
func (s *Scene) ApplyPersistentForces(w *feather2d.World) error {
	var errs []error
	for i, b := range s.Bodies {
		if i >= len(w.Bodies) {
			break
		}
		body := w.Bodies[i]
		for _, name := range slices.Sorted(maps.Keys(b.Forces)) {
			if body.HasForce(name) {
				continue
			}
			errs = append(errs, body.AddPersistentForce(name, b.Forces[name].Vec2()))
		}
	}
	return errors.Join(errs...)
}

// Tick applies the persistent forces, then steps the world by s.Dt
func (s *Scene) Tick(w *feather2d.World) error {
	if err := s.ApplyPersistentForces(w); err != nil {
		return err
	}
	return w.Step(s.Dt)
}
