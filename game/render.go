package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gridlife/config"
	"gridlife/ui"
	"gridlife/world"
)

var (
	backgroundColor = rl.NewColor(12, 14, 18, 255)
	gridColor       = rl.NewColor(24, 28, 34, 255)
	foodColor       = rl.NewColor(40, 160, 70, 255)
)

// Draw renders the current world snapshot plus the HUD.
// Rendering consumes the snapshot only; it cannot touch simulation state.
func (g *Game) Draw() {
	snap := g.world.Snapshot()
	cell := int32(config.Cfg().Screen.CellSize)

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	drawFood(snap, cell)
	drawAgents(snap, cell)

	ui.DrawHUD(ui.HUDData{
		Tick:       snap.Step,
		Population: len(snap.Agents),
		Food:       snap.FoodCount,
		Winter:     snap.Winter,
		Speed:      g.stepsPerUpdate,
		Paused:     g.paused,
		FPS:        rl.GetFPS(),
		OriginY:    int32(snap.Height)*cell + 8,
	})

	rl.EndDrawing()
}

func drawFood(snap *world.Snapshot, cell int32) {
	pad := cell / 3
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			px, py := int32(x)*cell, int32(y)*cell
			rl.DrawRectangleLines(px, py, cell, cell, gridColor)
			if snap.FoodAt(x, y) {
				rl.DrawRectangle(px+pad, py+pad, cell-2*pad, cell-2*pad, foodColor)
			}
		}
	}
}

func drawAgents(snap *world.Snapshot, cell int32) {
	for _, a := range snap.Agents {
		color := rl.NewColor(
			uint8(a.Color[0]*255),
			uint8(a.Color[1]*255),
			uint8(a.Color[2]*255),
			255,
		)
		px, py := int32(a.X)*cell, int32(a.Y)*cell
		rl.DrawRectangle(px+1, py+1, cell-2, cell-2, color)

		// Energy bar along the bottom edge of the agent cell.
		if a.MaxEnergy > 0 {
			w := (cell - 2) * int32(a.Energy) / int32(a.MaxEnergy)
			rl.DrawRectangle(px+1, py+cell-3, w, 2, rl.White)
		}
	}
}
