// Package world implements the deterministic tick-based grid simulation:
// agents, the occupancy grid, the food mask, and the per-tick update rules.
package world

import (
	"fmt"
	"math/rand"
	"sort"

	"gridlife/neural"
)

// Grid dimensions and rule constants. These are fixed: the update rules are
// part of the observable, reproducible behavior and are not configuration.
const (
	Width  = 50
	Height = 50

	// MaxFoods caps the total number of food cells; regeneration skips
	// entirely once the cap is reached.
	MaxFoods = 2500

	GenesisMaxEnergy = 100
	InitEnergy       = GenesisMaxEnergy / 10 * 5

	// ReproduceCost is paid whenever the reproduction threshold is met,
	// even when no vacant cell exists (a congestion penalty). The child
	// starts with exactly this energy: reproduction conserves energy.
	ReproduceCost   = GenesisMaxEnergy / 10 * 7
	ChildInitEnergy = ReproduceCost

	// Seasonal food regeneration: attempts per tick.
	FoodSpawnCountSummer = 250
	FoodSpawnCountWinter = 100
	// SeasonLength is the ticks per season half-cycle (full cycle 2x).
	SeasonLength = 2000
	// FoodBaseProbability is the spawn acceptance probability at the grid
	// center; it falls off as (1 - d/dmax)^2 toward the corners.
	FoodBaseProbability = 0.2
	FoodEnergy          = 60

	MetabolismCost = 1
	MoveCost       = 1
	InteractCost   = 10
	AttackAmount   = 20
	// AttackAbsorb is the lifesteal fraction; the remaining 20% is friction.
	AttackAbsorb = 0.8
	HealAmount   = 8

	MinBodySize       = 10
	MaxBodySize       = 500
	BodyMutationRange = 5

	// Drift mutation: every brain parameter perturbed on every birth.
	MutationRate  = 1.0
	MutationSigma = 0.2

	LifespanMin = 500
	LifespanMax = 700
)

// EventRecorder receives simulation events for telemetry. All methods are
// called from the single simulation goroutine. A nil recorder is valid.
type EventRecorder interface {
	RecordBirth(generation int)
	RecordDeath()
	RecordAttack(stolen int)
	RecordHeal(given int)
	RecordFoodEaten()
	RecordMoveBlocked()
}

// World owns the grid, the food mask, the agent registry, the RNG, and the
// step counter. It is single-threaded: exactly one goroutine may call Step.
type World struct {
	step   uint64
	agents map[AgentID]*Agent

	// cells holds the occupying agent id per grid cell, row-major; 0 means
	// empty (ids start at 1). A cell's id and that agent's Pos are kept
	// mutually consistent on every mutation.
	cells []AgentID
	foods []bool

	foodCount int
	rng       *rand.Rand
	nextID    AgentID

	events EventRecorder

	// perception scratch buffer; reused across turns within the single
	// simulation goroutine.
	input []float32
}

// New creates an empty world with a deterministic RNG. The same seed and the
// same sequence of operations reproduce the exact same trajectory.
func New(seed int64) *World {
	return &World{
		agents: make(map[AgentID]*Agent),
		cells:  make([]AgentID, Width*Height),
		foods:  make([]bool, Width*Height),
		rng:    rand.New(rand.NewSource(seed)),
		nextID: 1,
		input:  make([]float32, neural.NumInputs),
	}
}

// SetEventRecorder installs a telemetry sink. Pass nil to disable.
func (w *World) SetEventRecorder(r EventRecorder) { w.events = r }

// StepCount returns the number of completed ticks.
func (w *World) StepCount() uint64 { return w.step }

// PopulationCount returns the number of live agents.
func (w *World) PopulationCount() int { return len(w.agents) }

// FoodCount returns the number of cells currently holding food.
func (w *World) FoodCount() int { return w.foodCount }

// InBounds reports whether (x, y) lies on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < Width && y < Height
}

func cellIndex(x, y int) int { return y*Width + x }

// Step advances the world by one tick: cull the dead, regenerate food, then
// let every agent that was alive at the start of the tick act in ascending
// energy order (starving agents move first).
func (w *World) Step() {
	w.step++

	// Cull agents whose energy hit zero last tick.
	for id, a := range w.agents {
		if a.Energy == 0 {
			w.removeAgent(id)
			if w.events != nil {
				w.events.RecordDeath()
			}
		}
	}

	w.SpawnFoods()

	// The schedule is fixed before any agent acts: agents born this tick do
	// not act, agents killed mid-tick are skipped. The id tie-break keeps
	// the order deterministic (Go map iteration is not).
	ids := make([]AgentID, 0, len(w.agents))
	for id := range w.agents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ei, ej := w.agents[ids[i]].Energy, w.agents[ids[j]].Energy
		if ei != ej {
			return ei < ej
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		a, ok := w.agents[id]
		if !ok {
			continue // killed earlier this tick; silently skip
		}

		w.perceive(a, w.input)
		var out [neural.NumOutputs]float32
		a.Brain.Forward(w.input, out[:])

		action := ActionFromOutput(out[:])
		color := Color{
			clamp01(out[neural.NumActions]),
			clamp01(out[neural.NumActions+1]),
			clamp01(out[neural.NumActions+2]),
		}

		a.LastAction = action
		a.Age++
		if a.Age >= a.Lifespan {
			// Death takes effect on the next tick's cull.
			a.Energy = 0
		}

		w.applyAction(id, action, color)
		w.tryReproduce(id)
	}
}

// AddAgentAt places a new genesis agent at pos. It reports false without
// consuming randomness if the cell is occupied; the caller may retry
// elsewhere.
func (w *World) AddAgentAt(pos Position) (AgentID, bool) {
	if !InBounds(pos.X, pos.Y) || w.cells[cellIndex(pos.X, pos.Y)] != 0 {
		return 0, false
	}

	id := w.allocID()
	w.placeAgent(NewGenesis(id, pos, w.rng))
	return id, true
}

// ScatterAgents places n genesis agents at uniformly random free cells,
// retrying occupied draws.
func (w *World) ScatterAgents(n int) {
	for placed := 0; placed < n; {
		pos := Position{X: w.rng.Intn(Width), Y: w.rng.Intn(Height)}
		if _, ok := w.AddAgentAt(pos); ok {
			placed++
		}
	}
}

func (w *World) allocID() AgentID {
	id := w.nextID
	w.nextID++
	return id
}

func (w *World) placeAgent(a *Agent) {
	idx := cellIndex(a.Pos.X, a.Pos.Y)
	if w.cells[idx] != 0 {
		panic(fmt.Sprintf("world: placing agent %d on occupied cell (%d,%d)", a.ID, a.Pos.X, a.Pos.Y))
	}
	w.cells[idx] = a.ID
	w.agents[a.ID] = a
}

func (w *World) removeAgent(id AgentID) {
	a, ok := w.agents[id]
	if !ok {
		panic(fmt.Sprintf("world: removing unknown agent %d", id))
	}
	idx := cellIndex(a.Pos.X, a.Pos.Y)
	if w.cells[idx] != id {
		panic(fmt.Sprintf("world: grid cell (%d,%d) does not hold agent %d", a.Pos.X, a.Pos.Y, id))
	}
	w.cells[idx] = 0
	delete(w.agents, id)
}

// mustAgent resolves an id that the tick logic asserts to be live. A miss
// here is an internal consistency bug, not a recoverable condition.
func (w *World) mustAgent(id AgentID) *Agent {
	a, ok := w.agents[id]
	if !ok {
		panic(fmt.Sprintf("world: agent %d missing from registry", id))
	}
	return a
}

func (w *World) applyAction(id AgentID, action Action, color Color) {
	a := w.mustAgent(id)

	// The color changes unconditionally, then base metabolism is paid.
	a.Color = color
	a.Energy = satSub(a.Energy, MetabolismCost)

	switch action {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		w.moveAgent(id, action)
	case ActionStay:
		// no further effect
	case ActionAttack:
		w.interactArea(id, -AttackAmount)
	case ActionHeal:
		w.interactArea(id, HealAmount)
	}
}

// moveAgent applies a directional move. The movement cost is paid up front;
// off-grid and occupied targets cancel the move but not the cost.
func (w *World) moveAgent(id AgentID, action Action) {
	a := w.mustAgent(id)
	a.Energy = satSub(a.Energy, MoveCost)

	var dx, dy int
	switch action {
	case ActionUp:
		dy = -1
	case ActionDown:
		dy = 1
	case ActionLeft:
		dx = -1
	case ActionRight:
		dx = 1
	}

	nx, ny := a.Pos.X+dx, a.Pos.Y+dy
	if !InBounds(nx, ny) {
		if w.events != nil {
			w.events.RecordMoveBlocked()
		}
		return
	}
	to := cellIndex(nx, ny)
	if w.cells[to] != 0 {
		if w.events != nil {
			w.events.RecordMoveBlocked()
		}
		return
	}

	w.cells[cellIndex(a.Pos.X, a.Pos.Y)] = 0
	w.cells[to] = id
	a.Pos = Position{X: nx, Y: ny}

	if w.foods[to] {
		w.foods[to] = false
		w.foodCount--
		a.Energy = minInt(a.Energy+FoodEnergy, a.MaxEnergy)
		if w.events != nil {
			w.events.RecordFoodEaten()
		}
	}
}

// interactArea applies an attack (negative effect) or heal (positive effect)
// to every occupied cell in the Chebyshev-1 neighborhood. The actor pays the
// flat interact cost regardless of how many neighbors are present.
func (w *World) interactArea(id AgentID, effect int) {
	me := w.mustAgent(id)
	cx, cy := me.Pos.X, me.Pos.Y

	me.Energy = satSub(me.Energy, InteractCost)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := cx+dx, cy+dy
			if !InBounds(nx, ny) {
				continue
			}
			tid := w.cells[cellIndex(nx, ny)]
			if tid == 0 {
				continue
			}
			target := w.mustAgent(tid)

			if effect < 0 {
				// Only what the target actually holds can be drained, and
				// only 80% of that is absorbed: lifesteal with friction.
				damage := minInt(target.Energy, -effect)
				target.Energy -= damage
				absorb := int(float32(damage) * AttackAbsorb)
				me.Energy = minInt(me.Energy+absorb, me.MaxEnergy)
				if w.events != nil {
					w.events.RecordAttack(damage)
				}
			} else {
				// Like the attack branch, telemetry gets the applied
				// amount, not the nominal one: headroom caps the gain.
				before := target.Energy
				target.Energy = minInt(target.Energy+effect, target.MaxEnergy)
				if w.events != nil {
					w.events.RecordHeal(target.Energy - before)
				}
			}
		}
	}
}

// tryReproduce spawns a child next to the agent if its post-action energy
// reached its body size. The cost is deducted even when every neighboring
// cell is taken and no child can be born.
func (w *World) tryReproduce(id AgentID) {
	parent, ok := w.agents[id]
	if !ok {
		return
	}
	if parent.Energy < parent.MaxEnergy {
		return
	}

	parent.Energy = satSub(parent.Energy, ReproduceCost)

	var free []Position
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := parent.Pos.X+dx, parent.Pos.Y+dy
			if InBounds(nx, ny) && w.cells[cellIndex(nx, ny)] == 0 {
				free = append(free, Position{X: nx, Y: ny})
			}
		}
	}
	if len(free) == 0 {
		return
	}

	pos := free[w.rng.Intn(len(free))]
	child := parent.NewChild(w.allocID(), pos, w.rng)
	// Registered immediately: the child can be attacked later this same
	// tick, but does not act until the next one (the schedule is fixed).
	w.placeAgent(child)
	if w.events != nil {
		w.events.RecordBirth(child.Generation)
	}
}

func satSub(v, cost int) int {
	if v <= cost {
		return 0
	}
	return v - cost
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
