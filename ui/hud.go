// Package ui renders the heads-up display for the graphical mode.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the HUD needs for one frame.
type HUDData struct {
	Tick       uint64
	Population int
	Food       int
	Winter     bool
	Speed      int
	Paused     bool
	FPS        int32
	// OriginY is the y pixel where the HUD starts (below the grid).
	OriginY int32
}

// DrawHUD renders the status lines under the grid.
func DrawHUD(data HUDData) {
	season := "summer"
	if data.Winter {
		season = "winter"
	}

	line := fmt.Sprintf("tick %d | agents %d | food %d | %s | speed %dx | %d fps",
		data.Tick, data.Population, data.Food, season, data.Speed, data.FPS)
	rl.DrawText(line, 10, data.OriginY, 18, rl.RayWhite)

	help := "space pause | , . speed | esc quit"
	if data.Paused {
		help = "PAUSED | space resume | , . speed | esc quit"
	}
	rl.DrawText(help, 10, data.OriginY+24, 16, rl.LightGray)
}
