package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LayerConfig describes one computational layer. It is fixed once a Layer
// is built from it.
type LayerConfig struct {
	Inputs     int
	Outputs    int
	Activation string
}

func (c LayerConfig) activator() (Activator, error) {
	name := c.Activation
	if name == "" {
		name = "sigmoid"
	}
	act, ok := ActivatorLookup[name]
	if !ok {
		return nil, fmt.Errorf("unknown activation %q", name)
	}
	return act, nil
}

// Layer holds the weights of one computational layer and performs its part
// of the forward and backward passes. The weight matrix has one row per
// output unit and one column per input plus a trailing bias column; its
// shape never changes after construction.
//
// Compute caches the bias-extended input and the weighted sums of its most
// recent call. That cached state is what the next backward call consumes,
// and it stays valid only until the next Compute.
type Layer struct {
	config  LayerConfig
	act     Activator
	lr      float64
	weights *mat.Dense

	lastInput *mat.VecDense
	lastSums  *mat.VecDense
}

// NewLayer builds a layer with weights drawn from a uniform distribution
// scaled by the fan-in.
func NewLayer(c LayerConfig, lr float64) (*Layer, error) {
	if c.Inputs <= 0 || c.Outputs <= 0 {
		return nil, fmt.Errorf("layer dimensions must be positive, got %dx%d", c.Inputs, c.Outputs)
	}
	act, err := c.activator()
	if err != nil {
		return nil, err
	}
	return &Layer{
		config:  c,
		act:     act,
		lr:      lr,
		weights: randomWeights(c.Outputs, c.Inputs+1, float64(c.Inputs+1)),
	}, nil
}

// Config returns the LayerConfig the layer was constructed from.
func (l *Layer) Config() LayerConfig {
	return l.config
}

// Compute applies the affine transform and the activation function to the
// input and returns the activated output.
func (l *Layer) Compute(input *mat.VecDense) (*mat.VecDense, error) {
	if input.Len() != l.config.Inputs {
		return nil, &ShapeError{Op: "compute", Want: l.config.Inputs, Got: input.Len()}
	}

	biased := withBias(input)
	sums := mat.NewVecDense(l.config.Outputs, nil)
	sums.MulVec(l.weights, biased)

	l.lastInput = biased
	l.lastSums = sums

	return apply(l.act.Activate, sums), nil
}

// ComputeOutputBackward takes the per-unit error (target - prediction) of
// the output layer, updates the weights, and returns the signal for the
// layer below.
func (l *Layer) ComputeOutputBackward(errors *mat.VecDense) (*mat.VecDense, error) {
	return l.backward("output backward", errors)
}

// ComputeHiddenBackward takes the back-propagated signal from the layer
// above, updates the weights, and returns the signal for the layer below.
func (l *Layer) ComputeHiddenBackward(signal *mat.VecDense) (*mat.VecDense, error) {
	return l.backward("hidden backward", signal)
}

func (l *Layer) backward(op string, signal *mat.VecDense) (*mat.VecDense, error) {
	if l.lastInput == nil {
		return nil, ErrNoForwardState
	}
	if signal.Len() != l.config.Outputs {
		return nil, &ShapeError{Op: op, Want: l.config.Outputs, Got: signal.Len()}
	}

	gradients := multiply(signal, l.act.Deactivate(l.lastSums))

	// Signal for the layer below goes through the pre-update weights,
	// bias column excluded.
	downstream := mat.NewVecDense(l.config.Inputs, nil)
	downstream.MulVec(l.weights.Slice(0, l.config.Outputs, 0, l.config.Inputs).T(), gradients)

	var update mat.Dense
	update.Outer(l.lr, gradients, l.lastInput)
	l.weights.Add(l.weights, &update)

	return downstream, nil
}

// Weights returns a copy of the full weight tensor, one row per output
// unit, bias term last in each row.
func (l *Layer) Weights() [][]float64 {
	rows := make([][]float64, l.config.Outputs)
	for i := range rows {
		rows[i] = append([]float64(nil), l.weights.RawRowView(i)...)
	}
	return rows
}

// SetWeights bulk-replaces the weight tensor. The replacement must match
// the layer's shape exactly; values are taken as-is.
func (l *Layer) SetWeights(weights [][]float64) error {
	if len(weights) != l.config.Outputs {
		return fmt.Errorf("expected %d weight rows, got %d", l.config.Outputs, len(weights))
	}
	for i, row := range weights {
		if len(row) != l.config.Inputs+1 {
			return fmt.Errorf("weight row %d: expected %d values, got %d", i, l.config.Inputs+1, len(row))
		}
	}
	for i, row := range weights {
		l.weights.SetRow(i, row)
	}
	return nil
}
