// Package game wires the simulation core to input, rendering, and telemetry.
package game

import (
	"log/slog"

	"gridlife/config"
	"gridlife/telemetry"
	"gridlife/world"
)

// Speed limits for the interactive steps-per-update control.
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// Options configures a run.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	StepsPerUpdate int
}

// Game owns the world and the run-level state around it: pause flag,
// stepping speed, telemetry collection, and CSV output.
type Game struct {
	world     *world.World
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	paused         bool
	stepsPerUpdate int
	logStats       bool
}

// New creates a world from the options and the global config, scatters the
// initial population, and pre-seeds food.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()

	w := world.New(opts.Seed)

	collector := telemetry.NewCollector(uint64(cfg.Telemetry.WindowTicks))
	w.SetEventRecorder(collector)

	w.ScatterAgents(cfg.Population.Initial)
	w.WarmupFood(cfg.Food.WarmupRounds)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	g := &Game{
		world:          w,
		collector:      collector,
		output:         output,
		stepsPerUpdate: opts.StepsPerUpdate,
		logStats:       opts.LogStats,
	}
	if g.stepsPerUpdate < MinSpeed {
		g.stepsPerUpdate = MinSpeed
	}
	if g.stepsPerUpdate > MaxSpeed {
		g.stepsPerUpdate = MaxSpeed
	}
	return g, nil
}

// Tick returns the world's step counter.
func (g *Game) Tick() uint64 { return g.world.StepCount() }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }

// SetPaused suspends or resumes stepping.
func (g *Game) SetPaused(p bool) { g.paused = p }

// Speed returns the current steps-per-update multiplier.
func (g *Game) Speed() int { return g.stepsPerUpdate }

// Snapshot returns the current read-only world state.
func (g *Game) Snapshot() *world.Snapshot { return g.world.Snapshot() }

// UpdateHeadless advances the simulation without any input or rendering.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.stepOnce()
	}
}

// stepOnce advances one tick and flushes the telemetry window when due.
func (g *Game) stepOnce() {
	g.world.Step()

	if !g.collector.ShouldFlush(g.world.StepCount()) {
		return
	}
	stats := g.collector.Flush(g.world.Snapshot())
	if g.logStats {
		stats.Log()
	}
	if err := g.output.WriteWindow(stats); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}
}

// Unload flushes and releases run resources.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
}
