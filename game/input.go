package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input for the graphical mode.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > MinSpeed {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < MaxSpeed {
		g.stepsPerUpdate++
	}
}

// Update handles one frame of the graphical mode: input, then stepping.
func (g *Game) Update() {
	g.handleInput()
	g.UpdateHeadless()
}
