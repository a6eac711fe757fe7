package neural

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/blas/blas32"
)

func TestNewRandomDimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewRandom(rng)

	if b.W1.Rows != NumHidden || b.W1.Cols != NumInputs {
		t.Errorf("W1 is %dx%d, want %dx%d", b.W1.Rows, b.W1.Cols, NumHidden, NumInputs)
	}
	if b.W2.Rows != NumOutputs || b.W2.Cols != NumHidden {
		t.Errorf("W2 is %dx%d, want %dx%d", b.W2.Rows, b.W2.Cols, NumOutputs, NumHidden)
	}
	if len(b.B1) != NumHidden || len(b.B2) != NumOutputs {
		t.Errorf("bias lengths %d/%d, want %d/%d", len(b.B1), len(b.B2), NumHidden, NumOutputs)
	}

	for _, v := range b.B1 {
		if v != 0 {
			t.Fatal("genesis hidden biases must be zero")
		}
	}
	for _, v := range b.B2 {
		if v != 0 {
			t.Fatal("genesis output biases must be zero")
		}
	}
}

func TestForwardDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewRandom(rng)

	in := make([]float32, NumInputs)
	for i := range in {
		in[i] = float32(i%7) / 7
	}

	out1 := make([]float32, NumOutputs)
	out2 := make([]float32, NumOutputs)
	b.Forward(in, out1)
	b.Forward(in, out2)

	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("output %d differs between identical calls: %v vs %v", i, out1[i], out2[i])
		}
	}
}

// With zero weights the hidden layer is relu(b1) and the output is exactly b2.
func TestForwardBiasPassthrough(t *testing.T) {
	b := &Brain{
		W1: zeroGeneral(NumHidden, NumInputs),
		B1: make([]float32, NumHidden),
		W2: zeroGeneral(NumOutputs, NumHidden),
		B2: make([]float32, NumOutputs),
	}
	b.B2[3] = 1.5
	b.B2[9] = -2

	in := make([]float32, NumInputs)
	for i := range in {
		in[i] = 1
	}
	out := make([]float32, NumOutputs)
	b.Forward(in, out)

	for i := range out {
		if out[i] != b.B2[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], b.B2[i])
		}
	}
}

func TestCloneIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewRandom(rng)

	c := b.Clone()
	if c.W1.Data[0] != b.W1.Data[0] {
		t.Error("clone has different weights")
	}

	c.W1.Data[0] = 999
	c.B2[0] = 999
	if b.W1.Data[0] == 999 || b.B2[0] == 999 {
		t.Error("clone shares storage with parent")
	}
}

func TestMutateDriftTouchesEveryParameter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewRandom(rng)
	orig := b.Clone()

	b.Mutate(rng, 1.0, 0.2)

	check := func(name string, got, want []float32) {
		for i := range got {
			if got[i] == want[i] {
				t.Fatalf("%s[%d] unchanged by drift mutation", name, i)
			}
		}
	}
	check("W1", b.W1.Data, orig.W1.Data)
	check("B1", b.B1, orig.B1)
	check("W2", b.W2.Data, orig.W2.Data)
	check("B2", b.B2, orig.B2)
}

func TestMutateZeroRateIsNoop(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewRandom(rng)
	orig := b.Clone()

	b.Mutate(rng, 0, 0.2)

	for i := range b.W1.Data {
		if b.W1.Data[i] != orig.W1.Data[i] {
			t.Fatal("rate=0 mutation changed a weight")
		}
	}
}

// Per-parameter deltas under drift mutation should be approximately
// N(0, sigma): mean near zero, standard deviation near sigma.
func TestMutateNoiseDistribution(t *testing.T) {
	const sigma = 0.2
	rng := rand.New(rand.NewSource(99))
	b := NewRandom(rng)
	orig := b.Clone()

	b.Mutate(rng, 1.0, sigma)

	var sum, sumSq float64
	n := 0
	collect := func(got, want []float32) {
		for i := range got {
			d := float64(got[i] - want[i])
			sum += d
			sumSq += d * d
			n++
		}
	}
	collect(b.W1.Data, orig.W1.Data)
	collect(b.B1, orig.B1)
	collect(b.W2.Data, orig.W2.Data)
	collect(b.B2, orig.B2)

	mean := sum / float64(n)
	std := math.Sqrt(sumSq/float64(n) - mean*mean)

	if math.Abs(mean) > 0.01 {
		t.Errorf("delta mean = %v, want ~0", mean)
	}
	if math.Abs(std-sigma) > 0.02 {
		t.Errorf("delta std = %v, want ~%v", std, sigma)
	}
}

func TestSpawnChildLeavesParentUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	parent := NewRandom(rng)
	orig := parent.Clone()

	child := parent.SpawnChild(rng, 1.0, 0.2)

	for i := range parent.W1.Data {
		if parent.W1.Data[i] != orig.W1.Data[i] {
			t.Fatal("SpawnChild mutated the parent")
		}
	}
	if child.W1.Data[0] == parent.W1.Data[0] {
		t.Error("child weights identical to parent under drift mutation")
	}
}

func zeroGeneral(rows, cols int) blas32.General {
	return blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: make([]float32, rows*cols)}
}

func BenchmarkForward(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	brain := NewRandom(rng)

	in := make([]float32, NumInputs)
	for i := range in {
		in[i] = 0.5
	}
	out := make([]float32, NumOutputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		brain.Forward(in, out)
	}
}
