package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blockpush/config"
	"github.com/milk9111/blockpush/debugserver"
	"github.com/milk9111/blockpush/ecs/system"
	"github.com/milk9111/blockpush/prefabs"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "blockpush.yaml", "path to the YAML config file")
	envFile := flag.String("env", ".env", "optional .env file")
	levelName := flag.String("level", "", "level to start on (overrides config)")
	debug := flag.Bool("debug", false, "draw contact flags and bounds")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}
	if cfg.PrefabDir != "" {
		prefabs.Dir = cfg.PrefabDir
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("blockpush")
	ebiten.SetTPS(cfg.Physics.TickRate)

	var metrics *system.Metrics
	var server *debugserver.Server
	if cfg.Debug.Addr != "" {
		reg := prometheus.NewRegistry()
		metrics = system.NewMetrics(reg)
		server = debugserver.NewServer(cfg.Debug.Addr, debugserver.NewHub(cfg.Debug.BroadcastHz), reg)
		server.Start()
	}

	game, err := NewGame(cfg, metrics, server, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("debugserver: shutdown: %v", err)
		}
	}
}
