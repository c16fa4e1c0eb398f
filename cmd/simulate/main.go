// Command simulate runs levels headless with a scripted input and prints the
// game events, optionally writing the final frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/milk9111/blockpush/config"
	"github.com/milk9111/blockpush/debugserver"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/session"
)

func main() {
	configPath := flag.String("config", "blockpush.yaml", "path to the YAML config file")
	levelName := flag.String("level", "level1", "level to start on")
	ticks := flag.Int("ticks", 600, "number of ticks to run")
	script := flag.String("input", "", `input script, e.g. "R*30,RJ,_*10"`)
	framePath := flag.String("frame", "", "write the final frame to this PNG file")
	verbose := flag.Bool("v", false, "print the player's position every tick")
	flag.Parse()

	cfg, err := config.Load(*configPath, "")
	if err != nil {
		log.Fatal(err)
	}
	input, err := parseScript(*script)
	if err != nil {
		log.Fatal(err)
	}

	s := session.New(cfg, input, nil)
	if err := s.Load(*levelName); err != nil {
		log.Fatal(err)
	}

	for tick := range *ticks {
		outcome, err := s.Step()
		if err != nil {
			log.Fatal(err)
		}
		if *verbose {
			printPlayer(tick, s.World)
		}
		if outcome != session.OutcomeNone {
			fmt.Printf("tick %d: %s -> %s\n", tick, outcome, s.Level.Name)
		}
		if outcome == session.OutcomeFinished {
			break
		}
	}
	fmt.Printf("level %s, deaths %d, wins %d\n", s.Level.Name, s.Deaths, s.Wins)

	if *framePath != "" {
		if err := writeFrame(*framePath, debugserver.TakeSnapshot(s.World, s.Level.Name, cfg.Physics.StaticThreshold)); err != nil {
			log.Fatal(err)
		}
	}
}

func printPlayer(tick int, w *ecs.World) {
	p, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t := ecs.MustGet(w, p, component.TransformComponent.Kind())
	c := ecs.MustGet(w, p, component.ColliderComponent.Kind())
	fmt.Printf("tick %d: player %.0f,%.0f %s\n", tick, t.Position[0], t.Position[1], c.Flags)
}

func writeFrame(path string, snap *debugserver.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("simulate: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, debugserver.RenderFrame(snap, 1)); err != nil {
		return fmt.Errorf("simulate: encode %s: %w", path, err)
	}
	return f.Close()
}
