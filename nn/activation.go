package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activator is a layer activation function together with its derivative.
// Deactivate receives the pre-activation (weighted sum) vector cached by
// the most recent forward pass.
type Activator interface {
	Activate(i, j int, sum float64) float64
	Deactivate(sums *mat.VecDense) *mat.VecDense
	fmt.Stringer
}

var ActivatorLookup = map[string]Activator{
	"sigmoid": Sigmoid{},
	"tanh":    Tanh{},
	"relu":    ReLU{},
}

type Sigmoid struct{}

func (s Sigmoid) Activate(i, j int, sum float64) float64 {
	return 1.0 / (1.0 + math.Exp(-sum))
}

func (s Sigmoid) Deactivate(sums *mat.VecDense) *mat.VecDense {
	// s' = s(1-s)
	act := apply(s.Activate, sums)
	return multiply(act, subtract(ones(act.Len()), act))
}

func (s Sigmoid) String() string {
	return "sigmoid"
}

type Tanh struct{}

func (t Tanh) Activate(i, j int, sum float64) float64 {
	return math.Tanh(sum)
}

func (t Tanh) Deactivate(sums *mat.VecDense) *mat.VecDense {
	tanhPrime := func(i, j int, v float64) float64 {
		return 1.0 - (math.Tanh(v) * math.Tanh(v))
	}

	return apply(tanhPrime, sums)
}

func (t Tanh) String() string {
	return "tanh"
}

type ReLU struct{}

func (r ReLU) Activate(i, j int, sum float64) float64 {
	if sum < 0 {
		return 0.0001 * sum
	}
	return sum
}

func (r ReLU) Deactivate(sums *mat.VecDense) *mat.VecDense {
	reluPrime := func(i, j int, v float64) float64 {
		if v < 0 {
			return 0.0001
		}
		return 1
	}
	return apply(reluPrime, sums)
}

func (r ReLU) String() string {
	return "relu"
}
