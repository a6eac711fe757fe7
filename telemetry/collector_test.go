package telemetry

import (
	"math"
	"testing"

	"gridlife/world"
)

func TestDistribution(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	mean, p10, p50, p90 := Distribution(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if p10 > p50 || p50 > p90 {
		t.Errorf("percentiles not monotonic: p10=%v p50=%v p90=%v", p10, p50, p90)
	}
	if p50 < 40 || p50 > 60 {
		t.Errorf("p50 = %v, want near 50", p50)
	}
}

func TestDistributionEmpty(t *testing.T) {
	mean, p10, p50, p90 := Distribution(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("empty distribution = (%v,%v,%v,%v), want zeros", mean, p10, p50, p90)
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector(100)

	c.RecordBirth(3)
	c.RecordBirth(7)
	c.RecordDeath()
	c.RecordAttack(20)
	c.RecordAttack(5)
	c.RecordHeal(8)
	c.RecordFoodEaten()
	c.RecordMoveBlocked()

	snap := &world.Snapshot{
		Step: 100,
		Agents: []world.AgentView{
			{ID: 1, Energy: 40, MaxEnergy: 100, Generation: 2},
			{ID: 2, Energy: 60, MaxEnergy: 120, Generation: 4},
		},
		FoodCount: 12,
	}

	stats := c.Flush(snap)

	if stats.Births != 2 || stats.Deaths != 1 {
		t.Errorf("births/deaths = %d/%d, want 2/1", stats.Births, stats.Deaths)
	}
	if stats.Attacks != 2 || stats.EnergyStolen != 25 {
		t.Errorf("attacks = %d stolen = %d, want 2/25", stats.Attacks, stats.EnergyStolen)
	}
	if stats.Heals != 1 || stats.EnergyGiven != 8 {
		t.Errorf("heals = %d given = %d, want 1/8", stats.Heals, stats.EnergyGiven)
	}
	if stats.FoodEaten != 1 || stats.MovesBlocked != 1 {
		t.Errorf("food/blocked = %d/%d, want 1/1", stats.FoodEaten, stats.MovesBlocked)
	}
	if stats.Population != 2 || stats.FoodCount != 12 {
		t.Errorf("population/food = %d/%d, want 2/12", stats.Population, stats.FoodCount)
	}
	if stats.EnergyMean != 50 {
		t.Errorf("energy mean = %v, want 50", stats.EnergyMean)
	}
	// A generation-7 birth died before window end but still counts.
	if stats.GenerationMax != 7 {
		t.Errorf("gen max = %d, want 7", stats.GenerationMax)
	}

	// Counters reset for the next window.
	next := c.Flush(&world.Snapshot{Step: 200})
	if next.Births != 0 || next.Deaths != 0 || next.Attacks != 0 || next.FoodEaten != 0 {
		t.Error("counters not reset by Flush")
	}
	if next.WindowStart != 100 {
		t.Errorf("next window start = %d, want 100", next.WindowStart)
	}
}

func TestShouldFlush(t *testing.T) {
	c := NewCollector(50)

	if c.ShouldFlush(49) {
		t.Error("flushed before window complete")
	}
	if !c.ShouldFlush(50) {
		t.Error("did not flush at window boundary")
	}

	c.Flush(&world.Snapshot{Step: 50})
	if c.ShouldFlush(99) {
		t.Error("flushed mid second window")
	}
	if !c.ShouldFlush(100) {
		t.Error("did not flush at second boundary")
	}
}
