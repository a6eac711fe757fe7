package world

import "math"

// Winter reports whether the current tick falls in the winter half of the
// seasonal cycle. Winter regenerates food at a reduced rate.
func (w *World) Winter() bool {
	return (w.step/SeasonLength)%2 == 1
}

// SpawnFoods runs one food-regeneration pass: a season-dependent number of
// attempts, each picking a uniformly random cell and accepting it with a
// probability that peaks at the grid center and falls off quadratically
// toward the corners. Nothing happens once the global food cap is reached.
//
// Step calls this every tick; callers may also invoke it directly to pre-seed
// food before the first tick.
func (w *World) SpawnFoods() {
	if w.foodCount >= MaxFoods {
		return
	}

	centerX := float64(Width) / 2
	centerY := float64(Height) / 2
	maxDist := math.Hypot(centerX, centerY)

	attempts := FoodSpawnCountSummer
	if w.Winter() {
		attempts = FoodSpawnCountWinter
	}

	for i := 0; i < attempts; i++ {
		x := w.rng.Intn(Width)
		y := w.rng.Intn(Height)

		idx := cellIndex(x, y)
		if w.foods[idx] {
			continue
		}

		dist := math.Hypot(float64(x)-centerX, float64(y)-centerY)
		score := math.Max(1-dist/maxDist, 0)
		probability := FoodBaseProbability * score * score

		if w.rng.Float64() < probability {
			w.foods[idx] = true
			w.foodCount++
		}
	}
}

// WarmupFood runs the regeneration pass repeatedly, filling the world with
// an initial center-biased food distribution before the simulation starts.
func (w *World) WarmupFood(rounds int) {
	for i := 0; i < rounds; i++ {
		w.SpawnFoods()
	}
}

// FoodAt reports whether the cell at (x, y) holds food.
func (w *World) FoodAt(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	return w.foods[cellIndex(x, y)]
}
