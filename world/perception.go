package world

import "gridlife/neural"

// perceive encodes the agent's square field of view into dst, which must have
// length neural.NumInputs. Cells are visited in raster order (rows top to
// bottom, left to right), six scalars each: wall flag, food flag, other-agent
// flag, and the occupant's RGB color. Out-of-bounds cells report wall=1 and
// zeros elsewhere; the agent never perceives itself as an occupant.
func (w *World) perceive(a *Agent, dst []float32) {
	const radius = neural.FieldLength / 2

	i := 0
	push := func(v float32) {
		dst[i] = v
		i++
	}

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			nx, ny := a.Pos.X+dx, a.Pos.Y+dy

			if !InBounds(nx, ny) {
				push(1) // wall
				push(0)
				push(0)
				push(0)
				push(0)
				push(0)
				continue
			}

			idx := cellIndex(nx, ny)
			var isFood, isAgent float32
			var color Color

			if w.foods[idx] {
				isFood = 1
			}
			if tid := w.cells[idx]; tid != 0 && tid != a.ID {
				isAgent = 1
				color = w.mustAgent(tid).Color
			}

			push(0)
			push(isFood)
			push(isAgent)
			push(color[0])
			push(color[1])
			push(color[2])
		}
	}

	if i != neural.NumInputs {
		panic("world: perception vector length mismatch")
	}
}
