package main

import (
	"flag"
	"os"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/scene"
	"github.com/golang/glog"
)

var (
	scenePath = flag.String("scene", "", "YAML scene file, the two body demo when empty")
	steps     = flag.Int("steps", 0, "number of ticks, overrides the scene")
	every     = flag.Int("every", 60, "log the bodies every N ticks")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	s := scene.Default()
	if *scenePath != "" {
		var err error
		if s, err = scene.Load(*scenePath); err != nil {
			glog.Errorf("load scene: %v", err)
			glog.Flush()
			os.Exit(1)
		}
	}
	if *steps > 0 {
		s.Steps = *steps
	}

	world, err := s.Build()
	if err != nil {
		glog.Errorf("build scene %q: %v", s.Name, err)
		glog.Flush()
		os.Exit(1)
	}

	collisions := 0
	world.Events.Subscribe(feather2d.COLLISION_ENTER, func(event feather2d.Event) {
		collisions++
		e := event.(feather2d.CollisionEnterEvent)
		glog.Infof("collision: normal=%v penetration=%.4f", e.Contact.Normal, e.Contact.Penetration)
	})

	glog.Infof("scene %q: %d bodies, dt=%v, %d steps", s.Name, len(world.Bodies), s.Dt, s.Steps)
	for step := 0; step < s.Steps; step++ {
		if err := s.Tick(world); err != nil {
			glog.Errorf("step %d: %v", step+1, err)
			glog.Flush()
			os.Exit(1)
		}
		if *every > 0 && (step+1)%*every == 0 {
			logBodies(world, step+1)
		}
	}

	glog.Infof("done: %d collisions", collisions)
}

func logBodies(world *feather2d.World, step int) {
	states, err := world.Snapshot()
	if err != nil {
		glog.Warningf("snapshot: %v", err)
		return
	}
	for i, state := range states {
		body := world.Bodies[i]
		glog.Infof("step %d body %d: position=%v velocity=%v mass=%v energy=%.3f momentum=%v",
			step, i, state.Position, state.Velocity, state.Mass, body.KineticEnergy(), body.Momentum())
	}
}
