package world

import (
	"math/rand"

	"gridlife/neural"
)

// AgentID uniquely identifies an agent for its whole life. IDs are allocated
// monotonically by the World and never reused, even after death.
type AgentID uint64

// Position is a grid coordinate, origin top-left, y growing downward.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Action is the discrete move an agent chose for a tick.
type Action int8

const (
	// ActionNone marks an agent that has not acted yet (fresh births).
	ActionNone Action = iota - 1
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionStay
	ActionAttack
	ActionHeal
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionStay:
		return "stay"
	case ActionAttack:
		return "attack"
	case ActionHeal:
		return "heal"
	default:
		return "none"
	}
}

// ActionFromOutput picks the action with the largest logit among the first
// NumActions brain outputs. The lowest index wins ties; an empty or fully
// degenerate (NaN) output decodes to Stay rather than failing.
func ActionFromOutput(out []float32) Action {
	n := len(out)
	if n > neural.NumActions {
		n = neural.NumActions
	}

	best := -1
	var bestVal float32
	for i := 0; i < n; i++ {
		v := out[i]
		if best == -1 {
			if v == v { // skip NaN
				best, bestVal = i, v
			}
			continue
		}
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	if best == -1 {
		return ActionStay
	}
	return Action(best)
}

// Color is an RGB triple with channels in [0,1].
type Color [3]float32

// Agent is one individual: body state plus an owned brain.
type Agent struct {
	ID        AgentID
	Pos       Position
	Energy    int
	MaxEnergy int // body size; heritable, clamped to [MinBodySize, MaxBodySize]

	Generation int
	Brain      *neural.Brain

	Color      Color
	LastAction Action

	Age      int
	Lifespan int // fixed draw at birth; reaching it zeroes energy
}

// NewGenesis creates a founder agent: random brain, random color, full-size
// body, fresh lifespan. Generation counting starts at 1.
func NewGenesis(id AgentID, pos Position, rng *rand.Rand) *Agent {
	return &Agent{
		ID:         id,
		Pos:        pos,
		Energy:     InitEnergy,
		MaxEnergy:  GenesisMaxEnergy,
		Generation: 1,
		Brain:      neural.NewRandom(rng),
		Color:      Color{rng.Float32(), rng.Float32(), rng.Float32()},
		LastAction: ActionNone,
		Lifespan:   rollLifespan(rng),
	}
}

// NewChild creates a mutated offspring of the receiver. The brain is a deep
// copy with drift mutation applied; the body size drifts by up to
// ±BodyMutationRange; the color is inherited (the child's own brain recolors
// it as soon as it acts).
func (a *Agent) NewChild(id AgentID, pos Position, rng *rand.Rand) *Agent {
	brain := a.Brain.SpawnChild(rng, MutationRate, MutationSigma)

	diff := rng.Intn(2*BodyMutationRange+1) - BodyMutationRange
	maxEnergy := clampInt(a.MaxEnergy+diff, MinBodySize, MaxBodySize)

	return &Agent{
		ID:         id,
		Pos:        pos,
		Energy:     ChildInitEnergy,
		MaxEnergy:  maxEnergy,
		Generation: a.Generation + 1,
		Brain:      brain,
		Color:      a.Color,
		LastAction: ActionNone,
		Lifespan:   rollLifespan(rng),
	}
}

func rollLifespan(rng *rand.Rand) int {
	return LifespanMin + rng.Intn(LifespanMax-LifespanMin)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
