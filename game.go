package main

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/blockpush/common"
	"github.com/milk9111/blockpush/config"
	"github.com/milk9111/blockpush/debugserver"
	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/ecs/component"
	"github.com/milk9111/blockpush/ecs/system"
	"github.com/milk9111/blockpush/levels"
	"github.com/milk9111/blockpush/prefabs"
	"github.com/milk9111/blockpush/session"
)

const cameraFollow = 0.15

type Game struct {
	cfg     config.Config
	session *session.Session
	server  *debugserver.Server
	watcher *prefabs.Watcher

	snapshot *debugserver.Snapshot
	camera   mgl64.Vec2
	debug    bool
	paused   bool
	finished bool
	status   string
}

func NewGame(cfg config.Config, metrics *system.Metrics, server *debugserver.Server, debug bool) (*Game, error) {
	s := session.New(cfg, keyboardInput{}, metrics)
	start := cfg.Level
	if start == "" {
		start = levels.Names()[0]
	}
	if err := s.Load(start); err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, session: s, server: server, debug: debug}
	if cfg.PrefabDir != "" {
		w, err := prefabs.NewWatcher(cfg.PrefabDir)
		if err != nil {
			log.Printf("game: watch %s: %v", cfg.PrefabDir, err)
		} else {
			g.watcher = w
		}
	}
	g.publish()
	g.camera = g.cameraTarget()
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload("restart")
	}
	g.pollWatcher()

	if g.paused || g.finished {
		return nil
	}

	outcome, err := g.session.Step()
	if err != nil {
		return err
	}
	switch outcome {
	case session.OutcomeDeath:
		g.status = "died, restarting " + g.session.Level.Name
	case session.OutcomeWin:
		g.status = "entering " + g.session.Level.Name
		g.camera = g.cameraTarget()
	case session.OutcomeFinished:
		g.status = fmt.Sprintf("all levels done, %d deaths", g.session.Deaths)
		g.finished = true
	}

	g.publish()
	target := g.cameraTarget()
	g.camera = mgl64.Vec2{
		common.Lerp(g.camera[0], target[0], cameraFollow),
		common.Lerp(g.camera[1], target[1], cameraFollow),
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload("changed " + path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(reason string) {
	if err := g.session.Reload(); err != nil {
		log.Printf("game: reload: %v", err)
		g.status = "reload failed: " + err.Error()
		return
	}
	g.finished = false
	g.status = reason
	g.publish()
}

func (g *Game) publish() {
	g.snapshot = debugserver.TakeSnapshot(g.session.World, g.session.Level.Name, g.cfg.Physics.StaticThreshold)
	if g.server != nil {
		g.server.Hub.Publish(g.snapshot)
	}
}

func (g *Game) cameraTarget() mgl64.Vec2 {
	w := g.session.World
	if p, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, p, component.TransformComponent.Kind()); ok {
			return t.Position.Vec2()
		}
	}
	return mgl64.Vec2{}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
