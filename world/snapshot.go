package world

import "sort"

// AgentView is a read-only copy of one agent's renderable state.
type AgentView struct {
	ID         AgentID `json:"id"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Energy     int     `json:"energy"`
	MaxEnergy  int     `json:"max_energy"`
	Generation int     `json:"generation"`
	Age        int     `json:"age"`
	Color      Color   `json:"color"`
	LastAction string  `json:"last_action"`
}

// Snapshot is an immutable copy of the world's public state, built once per
// frame for the presentation layer (renderer, HUD, websocket clients,
// telemetry). It shares no storage with the live world, so it may cross
// goroutine boundaries freely.
type Snapshot struct {
	Step   uint64 `json:"step"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Winter bool   `json:"winter"`

	Agents []AgentView `json:"agents"`

	// Foods is the food mask in row-major order, Width*Height entries.
	Foods     []bool `json:"foods"`
	FoodCount int    `json:"food_count"`
}

// Snapshot captures the current public state. Agents are ordered by id so
// byte-identical worlds produce byte-identical snapshots.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Step:      w.step,
		Width:     Width,
		Height:    Height,
		Winter:    w.Winter(),
		Agents:    make([]AgentView, 0, len(w.agents)),
		Foods:     append([]bool(nil), w.foods...),
		FoodCount: w.foodCount,
	}

	for _, a := range w.agents {
		s.Agents = append(s.Agents, AgentView{
			ID:         a.ID,
			X:          a.Pos.X,
			Y:          a.Pos.Y,
			Energy:     a.Energy,
			MaxEnergy:  a.MaxEnergy,
			Generation: a.Generation,
			Age:        a.Age,
			Color:      a.Color,
			LastAction: a.LastAction.String(),
		})
	}
	sort.Slice(s.Agents, func(i, j int) bool { return s.Agents[i].ID < s.Agents[j].ID })

	return s
}

// FoodAt reports whether the snapshot cell at (x, y) holds food.
func (s *Snapshot) FoodAt(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return false
	}
	return s.Foods[y*s.Width+x]
}
