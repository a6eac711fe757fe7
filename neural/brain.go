// Package neural provides the feedforward neural network brains that drive agents.
package neural

import (
	"math/rand"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Network dimensions. The input encodes a square field of view around the
// agent, six channels per cell: wall flag, food flag, agent flag, and the
// occupant's RGB color.
const (
	// FieldLength is the side length of the (odd) perception square.
	FieldLength = 7
	// FieldSize is the number of cells in the perception square.
	FieldSize = FieldLength * FieldLength
	// CellChannels is the number of scalars encoded per perceived cell.
	CellChannels = 3 + ColorChannels

	NumInputs = FieldSize * CellChannels
	NumHidden = 64

	// NumActions is the count of action logits (up, down, left, right,
	// stay, attack, heal).
	NumActions    = 7
	ColorChannels = 3
	NumOutputs    = NumActions + ColorChannels
)

// Brain is a two-layer dense feedforward network in float32.
// It is a pure value: owned by exactly one agent, never shared.
type Brain struct {
	W1 blas32.General // input -> hidden weights (NumHidden x NumInputs)
	B1 []float32      // hidden biases
	W2 blas32.General // hidden -> output weights (NumOutputs x NumHidden)
	B2 []float32      // output biases
}

// NewRandom creates a brain with i.i.d. standard-normal weights and zero
// biases. Used for genesis agents only; children inherit via SpawnChild.
func NewRandom(rng *rand.Rand) *Brain {
	return &Brain{
		W1: randomGeneral(NumHidden, NumInputs, rng),
		B1: make([]float32, NumHidden),
		W2: randomGeneral(NumOutputs, NumHidden, rng),
		B2: make([]float32, NumOutputs),
	}
}

func randomGeneral(rows, cols int, rng *rand.Rand) blas32.General {
	g := blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: make([]float32, rows*cols)}
	for i := range g.Data {
		g.Data[i] = float32(rng.NormFloat64())
	}
	return g
}

// Forward computes W2·relu(W1·x + b1) + b2 into out.
// out must have length NumOutputs; in must have length NumInputs.
// No side effects, deterministic for identical weights and input.
func (b *Brain) Forward(in, out []float32) {
	var hidden [NumHidden]float32
	copy(hidden[:], b.B1)
	h := blas32.Vector{N: NumHidden, Inc: 1, Data: hidden[:]}
	x := blas32.Vector{N: NumInputs, Inc: 1, Data: in}
	blas32.Gemv(blas.NoTrans, 1, b.W1, x, 1, h)

	for i, v := range hidden {
		if v < 0 {
			hidden[i] = 0
		}
	}

	copy(out, b.B2)
	y := blas32.Vector{N: NumOutputs, Inc: 1, Data: out}
	blas32.Gemv(blas.NoTrans, 1, b.W2, h, 1, y)
}

// Clone returns a deep copy sharing no storage with the receiver.
func (b *Brain) Clone() *Brain {
	return &Brain{
		W1: cloneGeneral(b.W1),
		B1: append([]float32(nil), b.B1...),
		W2: cloneGeneral(b.W2),
		B2: append([]float32(nil), b.B2...),
	}
}

func cloneGeneral(g blas32.General) blas32.General {
	g.Data = append([]float32(nil), g.Data...)
	return g
}

// Mutate perturbs each weight and bias independently with probability rate
// by N(0, sigma) noise. rate=1 is drift mutation: every parameter moves.
func (b *Brain) Mutate(rng *rand.Rand, rate, sigma float32) {
	mutate := func(vals []float32) {
		for i := range vals {
			if rng.Float32() < rate {
				vals[i] += float32(rng.NormFloat64()) * sigma
			}
		}
	}
	mutate(b.W1.Data)
	mutate(b.B1)
	mutate(b.W2.Data)
	mutate(b.B2)
}

// SpawnChild returns a mutated deep copy; the receiver is untouched.
func (b *Brain) SpawnChild(rng *rand.Rand, rate, sigma float32) *Brain {
	child := b.Clone()
	child.Mutate(rng, rate, sigma)
	return child
}
