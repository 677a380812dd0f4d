package main

import (
	"flag"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/akmonengine/feather2d/scene"
	"github.com/golang/glog"
)

var (
	scenePath = flag.String("scene", "", "YAML scene file, the two body demo when empty")
	evalOnly  = flag.Bool("e", false, "Evaluation only, run the command given as arguments and exit.")
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

	world, err := s.Build()
	if err != nil {
		glog.Errorf("build scene %q: %v", s.Name, err)
		glog.Flush()
		os.Exit(1)
	}

	shell := ishell.New()
	shell.Set(sandboxKey, &Sandbox{Scene: s, World: world})
	shell.SetPrompt(s.Name + " > ")
	for _, cmd := range commands {
		shell.AddCmd(cmd)
	}

	if *evalOnly {
		if err := shell.Process(flag.Args()...); err != nil {
			glog.Errorf("%v", err)
			glog.Flush()
			os.Exit(1)
		}
		return
	}
	shell.Run()
}
