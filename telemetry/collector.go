// Package telemetry aggregates simulation events into windowed statistics
// and writes them as CSV and structured logs. It consumes only the world's
// read surface plus the event hooks; it never mutates simulation state.
package telemetry

import "gridlife/world"

// Collector accumulates world events within tick windows and produces
// WindowStats. It implements world.EventRecorder.
type Collector struct {
	windowTicks uint64
	windowStart uint64

	births       int
	deaths       int
	attacks      int
	energyStolen int
	heals        int
	energyGiven  int
	foodEaten    int
	movesBlocked int
	maxGenSeen   int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks uint64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth records a reproduction event.
func (c *Collector) RecordBirth(generation int) {
	c.births++
	if generation > c.maxGenSeen {
		c.maxGenSeen = generation
	}
}

// RecordDeath records a culled agent.
func (c *Collector) RecordDeath() { c.deaths++ }

// RecordAttack records one attack landing on one neighbor, with the energy
// actually drained from it.
func (c *Collector) RecordAttack(stolen int) {
	c.attacks++
	c.energyStolen += stolen
}

// RecordHeal records one heal landing on one neighbor, with the energy it
// actually gained after the headroom cap.
func (c *Collector) RecordHeal(given int) {
	c.heals++
	c.energyGiven += given
}

// RecordFoodEaten records a food cell consumed by a move.
func (c *Collector) RecordFoodEaten() { c.foodEaten++ }

// RecordMoveBlocked records a move canceled by a wall or an occupied cell.
func (c *Collector) RecordMoveBlocked() { c.movesBlocked++ }

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(step uint64) bool {
	return step-c.windowStart >= c.windowTicks
}

// Flush builds a WindowStats from the accumulated events and the given
// snapshot, then resets the counters for the next window.
func (c *Collector) Flush(snap *world.Snapshot) WindowStats {
	energies := make([]float64, 0, len(snap.Agents))
	var genSum, genMax, bodySum float64
	for _, a := range snap.Agents {
		energies = append(energies, float64(a.Energy))
		genSum += float64(a.Generation)
		bodySum += float64(a.MaxEnergy)
		if float64(a.Generation) > genMax {
			genMax = float64(a.Generation)
		}
	}

	mean, p10, p50, p90 := Distribution(energies)

	stats := WindowStats{
		WindowStart: c.windowStart,
		Step:        snap.Step,
		Winter:      snap.Winter,

		Population: len(snap.Agents),
		FoodCount:  snap.FoodCount,

		Births:       c.births,
		Deaths:       c.deaths,
		Attacks:      c.attacks,
		EnergyStolen: c.energyStolen,
		Heals:        c.heals,
		EnergyGiven:  c.energyGiven,
		FoodEaten:    c.foodEaten,
		MovesBlocked: c.movesBlocked,

		EnergyMean: mean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,
	}
	if n := len(snap.Agents); n > 0 {
		stats.GenerationMean = genSum / float64(n)
		stats.BodySizeMean = bodySum / float64(n)
	}
	// Births whose lineage died within the window still count toward the
	// deepest generation reached.
	stats.GenerationMax = int(genMax)
	if c.maxGenSeen > stats.GenerationMax {
		stats.GenerationMax = c.maxGenSeen
	}

	c.windowStart = snap.Step
	c.births = 0
	c.deaths = 0
	c.attacks = 0
	c.energyStolen = 0
	c.heals = 0
	c.energyGiven = 0
	c.foodEaten = 0
	c.movesBlocked = 0
	c.maxGenSeen = 0

	return stats
}

// WindowTicks returns the configured window length.
func (c *Collector) WindowTicks() uint64 { return c.windowTicks }
