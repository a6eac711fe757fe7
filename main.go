package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridlife/config"
	"gridlife/game"
	"gridlife/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	serve := flag.Bool("serve", false, "Stream snapshots over websocket instead of rendering")
	addr := flag.String("addr", "", "Listen address for -serve (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update (0 = use config)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	spu := *stepsPerUpdate
	if spu == 0 {
		spu = cfg.Sim.StepsPerUpdate
	}

	g, err := game.New(game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: spu,
	})
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("world created",
		"seed", rngSeed,
		"population", cfg.Population.Initial,
		"max_ticks", *maxTicks,
	)

	switch {
	case *serve:
		listenAddr := *addr
		if listenAddr == "" {
			listenAddr = cfg.Server.Addr
		}
		runServer(g, listenAddr, time.Duration(cfg.Sim.TickMillis)*time.Millisecond, *maxTicks)

	case *headless:
		for {
			g.UpdateHeadless()
			if *maxTicks > 0 && g.Tick() >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}

	default:
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "gridlife")
		defer rl.CloseWindow()
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if *maxTicks > 0 && g.Tick() >= *maxTicks {
				break
			}
		}
	}
}

// runServer steps the world on a fixed cadence and streams each snapshot to
// the websocket clients. Commands arrive on a channel so the world stays
// owned by this single goroutine.
func runServer(g *game.Game, addr string, tickRate time.Duration, maxTicks uint64) {
	cmds := make(chan server.Command, 16)
	hub := server.NewHub(func(c server.Command) {
		select {
		case cmds <- c:
		default: // never block a client read loop on a full queue
		}
	})

	go func() {
		slog.Info("serving live view", "addr", addr)
		if err := server.ListenAndServe(addr, hub); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		select {
		case c := <-cmds:
			g.SetPaused(c == server.CommandPause)
		case <-ticker.C:
			g.UpdateHeadless()
			hub.Broadcast(g.Snapshot())
			if maxTicks > 0 && g.Tick() >= maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}
}
