package main

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Sandbox holds the world driven by the shell commands
type Sandbox struct {
	Scene *scene.Scene
	World *feather2d.World
	Ticks int
}

const sandboxKey = "$sandbox"

func sandboxFrom(c *ishell.Context) *Sandbox {
	return c.Get(sandboxKey).(*Sandbox)
}

func withArgs(n int, usage string, fn func(c *ishell.Context, s *Sandbox)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if len(c.Args) < n {
			c.Err(fmt.Errorf("usage: %s", usage))
			return
		}
		fn(c, sandboxFrom(c))
	}
}

var commands = []*ishell.Cmd{
	{
		Name: "bodies",
		Help: "list the bodies",
		Func: withArgs(0, "bodies", func(c *ishell.Context, s *Sandbox) {
			states, err := s.World.Snapshot()
			if err != nil {
				c.Err(err)
				return
			}
			for i, state := range states {
				c.Printf("%d: position=%v velocity=%v mass=%v energy=%.3f\n",
					i, state.Position, state.Velocity, state.Mass, s.World.Bodies[i].KineticEnergy())
			}
		}),
	},
	{
		Name: "step",
		Help: "step [n], advance n ticks",
		Func: withArgs(0, "step [n]", func(c *ishell.Context, s *Sandbox) {
			n := 1
			if len(c.Args) > 0 {
				var err error
				if n, err = strconv.Atoi(c.Args[0]); err != nil || n < 1 {
					c.Err(fmt.Errorf("invalid tick count %q", c.Args[0]))
					return
				}
			}
			if err := s.Step(n); err != nil {
				c.Err(err)
				return
			}
			c.Printf("tick %d\n", s.Ticks)
		}),
	},
	{
		Name: "force",
		Help: "force <body> <name> <fx> <fy>, add a named force for the next tick",
		Func: withArgs(4, "force <body> <name> <fx> <fy>", func(c *ishell.Context, s *Sandbox) {
			if err := s.Force(c.Args[0], c.Args[1], c.Args[2], c.Args[3]); err != nil {
				c.Err(err)
			}
		}),
	},
	{
		Name: "pin",
		Help: "pin <body> <name> <fx> <fy>, re-insert a named force every tick",
		Func: withArgs(4, "pin <body> <name> <fx> <fy>", func(c *ishell.Context, s *Sandbox) {
			if err := s.Pin(c.Args[0], c.Args[1], c.Args[2], c.Args[3]); err != nil {
				c.Err(err)
			}
		}),
	},
	{
		Name: "remove",
		Help: "remove <body> <name>, remove a named force and unpin it",
		Func: withArgs(2, "remove <body> <name>", func(c *ishell.Context, s *Sandbox) {
			if err := s.Remove(c.Args[0], c.Args[1]); err != nil {
				c.Err(err)
			}
		}),
	},
	{
		Name: "impulse",
		Help: "impulse <body> <ix> <iy>",
		Func: withArgs(3, "impulse <body> <ix> <iy>", func(c *ishell.Context, s *Sandbox) {
			if err := s.Impulse(c.Args[0], c.Args[1], c.Args[2]); err != nil {
				c.Err(err)
			}
		}),
	},
	{
		Name: "velocity",
		Help: "velocity <body> <vx> <vy>",
		Func: withArgs(3, "velocity <body> <vx> <vy>", func(c *ishell.Context, s *Sandbox) {
			if err := s.Velocity(c.Args[0], c.Args[1], c.Args[2]); err != nil {
				c.Err(err)
			}
		}),
	},
}

// Step runs n ticks of the scene
func (s *Sandbox) Step(n int) error {
	for range n {
		if err := s.Scene.Tick(s.World); err != nil {
			return err
		}
		s.Ticks++
	}
	return nil
}

func (s *Sandbox) Force(body, name, fx, fy string) error {
	i, err := s.bodyIndex(body)
	if err != nil {
		return err
	}
	force, err := parseVec(fx, fy)
	if err != nil {
		return err
	}
	return s.World.Bodies[i].AddPersistentForce(name, force)
}

func (s *Sandbox) Pin(body, name, fx, fy string) error {
	i, err := s.bodyIndex(body)
	if err != nil {
		return err
	}
	force, err := parseVec(fx, fy)
	if err != nil {
		return err
	}
	if err := s.World.Bodies[i].AddPersistentForce(name, force); err != nil {
		return err
	}
	if s.Scene.Bodies[i].Forces == nil {
		s.Scene.Bodies[i].Forces = make(map[string]scene.Vec)
	}
	s.Scene.Bodies[i].Forces[name] = scene.Vec{force.X(), force.Y()}
	return nil
}

func (s *Sandbox) Remove(body, name string) error {
	i, err := s.bodyIndex(body)
	if err != nil {
		return err
	}
	s.World.Bodies[i].RemoveForce(name)
	delete(s.Scene.Bodies[i].Forces, name)
	return nil
}

func (s *Sandbox) Impulse(body, ix, iy string) error {
	i, err := s.bodyIndex(body)
	if err != nil {
		return err
	}
	impulse, err := parseVec(ix, iy)
	if err != nil {
		return err
	}
	return s.World.Bodies[i].ApplyImpulse(impulse)
}

func (s *Sandbox) Velocity(body, vx, vy string) error {
	i, err := s.bodyIndex(body)
	if err != nil {
		return err
	}
	velocity, err := parseVec(vx, vy)
	if err != nil {
		return err
	}
	return s.World.Bodies[i].SetVelocity(velocity)
}

func (s *Sandbox) bodyIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= len(s.World.Bodies) || i >= len(s.Scene.Bodies) {
		return 0, fmt.Errorf("unknown body %q", arg)
	}
	return i, nil
}

func parseVec(x, y string) (mgl64.Vec2, error) {
	fx, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return mgl64.Vec2{}, fmt.Errorf("invalid x %q: %w", x, err)
	}
	fy, err := strconv.ParseFloat(y, 64)
	if err != nil {
		return mgl64.Vec2{}, fmt.Errorf("invalid y %q: %w", y, err)
	}
	return mgl64.Vec2{fx, fy}, nil
}
