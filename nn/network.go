// Package nn implements a multi-layer feed-forward network (perceptron)
// that performs inference and trains by backpropagation until the epoch
// cost reaches a convergence threshold.
package nn

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/Stepami/OOMLCS/dataset"
	"github.com/Stepami/OOMLCS/model"
)

// DefaultThreshold is the convergence threshold used when TrainBackProp is
// given a zero threshold.
const DefaultThreshold = 0.001

// DefaultLearningRate is the weight update step used by networks restored
// from a persisted model without an explicit learning rate.
const DefaultLearningRate = 0.1

// Network is a multi-layer perceptron: an ordered chain of layers where
// each layer's output feeds the next layer's input.
type Network struct {
	layers       []*Layer
	lr           float64
	lastError    float64
	lastLearning time.Duration
}

// NewNetwork builds a network from the given layer configurations, one per
// computational layer. The chain must be dimensionally consistent: layer
// i's input size has to equal layer i-1's output size.
func NewNetwork(lr float64, configs ...LayerConfig) (*Network, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("network needs at least one layer")
	}
	if lr <= 0 {
		return nil, fmt.Errorf("learning rate must be positive, got %g", lr)
	}

	layers := make([]*Layer, len(configs))
	for i, c := range configs {
		if i > 0 && c.Inputs != configs[i-1].Outputs {
			return nil, fmt.Errorf("layer %d expects %d inputs but layer %d produces %d outputs",
				i, c.Inputs, i-1, configs[i-1].Outputs)
		}
		layer, err := NewLayer(c, lr)
		if err != nil {
			return nil, fmt.Errorf("building layer %d: %w", i, err)
		}
		layers[i] = layer
	}

	return &Network{layers: layers, lr: lr}, nil
}

// InputSize is the input vector length the first layer accepts.
func (n *Network) InputSize() int {
	return n.layers[0].Config().Inputs
}

// OutputSize is the output vector length the last layer produces.
func (n *Network) OutputSize() int {
	return n.layers[len(n.layers)-1].Config().Outputs
}

// LastError is the epoch cost at the end of the most recent training run.
func (n *Network) LastError() float64 {
	return n.lastError
}

// LastLearningTime is the wall-clock duration of the most recent training
// run, summed across all of its epochs.
func (n *Network) LastLearningTime() time.Duration {
	return n.lastLearning
}

// Predict feeds the input through every layer in order and returns the
// final layer's output.
func (n *Network) Predict(input *mat.VecDense) (*mat.VecDense, error) {
	out := input
	var err error
	for i, layer := range n.layers {
		out, err = layer.Compute(out)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return out, nil
}

// TrainResult reports how a training run ended.
type TrainResult struct {
	Converged bool
	Epochs    int
	Cost      float64
}

type trainSettings struct {
	maxEpochs int
}

// TrainOption adjusts the stopping policy of TrainBackProp.
type TrainOption func(*trainSettings)

// WithMaxEpochs bounds the training loop to at most n epochs. Without it
// the loop runs until the cost drops to the threshold, which never
// terminates when the threshold is unreachable.
func WithMaxEpochs(n int) TrainOption {
	return func(s *trainSettings) {
		s.maxEpochs = n
	}
}

// TrainBackProp runs epochs of per-example forward and backward passes
// over the training set, in order, until the epoch cost is at or below the
// threshold (or the optional epoch bound is hit). Weights update in place
// after every example. At least one full epoch always runs.
//
// A zero threshold selects DefaultThreshold.
func (n *Network) TrainBackProp(set dataset.Samples, threshold float64, opts ...TrainOption) (TrainResult, error) {
	if len(set) == 0 {
		return TrainResult{}, fmt.Errorf("empty training set")
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 {
		return TrainResult{}, fmt.Errorf("threshold must be positive, got %g", threshold)
	}
	settings := trainSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	// Shapes are checked up front so no example can mutate weights
	// partially.
	for i, sample := range set {
		if len(sample.Inputs) != n.InputSize() {
			return TrainResult{}, fmt.Errorf("sample %d: %w", i,
				&ShapeError{Op: "train input", Want: n.InputSize(), Got: len(sample.Inputs)})
		}
		if len(sample.Targets) != n.OutputSize() {
			return TrainResult{}, fmt.Errorf("sample %d: %w", i,
				&ShapeError{Op: "train target", Want: n.OutputSize(), Got: len(sample.Targets)})
		}
	}

	start := time.Now()
	var cost float64
	epochs := 0
	converged := false
	for {
		epochs++
		mses := mat.NewVecDense(len(set), nil)
		for i, sample := range set {
			mse, err := n.trainOne(sample)
			if err != nil {
				return TrainResult{}, fmt.Errorf("sample %d: %w", i, err)
			}
			mses.SetVec(i, mse)
		}
		cost = n.GetCost(mses)
		if cost <= threshold {
			converged = true
			break
		}
		if settings.maxEpochs > 0 && epochs >= settings.maxEpochs {
			break
		}
	}

	n.lastError = cost
	n.lastLearning = time.Since(start)

	return TrainResult{Converged: converged, Epochs: epochs, Cost: cost}, nil
}

func (n *Network) trainOne(sample dataset.Sample) (float64, error) {
	output, err := n.Predict(mat.NewVecDense(len(sample.Inputs), sample.Inputs))
	if err != nil {
		return 0, err
	}

	errors := subtract(mat.NewVecDense(len(sample.Targets), sample.Targets), output)
	mse := n.GetMSE(errors)

	last := len(n.layers) - 1
	signal, err := n.layers[last].ComputeOutputBackward(errors)
	if err != nil {
		return 0, err
	}
	for i := last - 1; i >= 0; i-- {
		signal, err = n.layers[i].ComputeHiddenBackward(signal)
		if err != nil {
			return 0, err
		}
	}

	return mse, nil
}

// GetMSE is one example's mean-squared-error contribution, 0.5 * (E . E).
func (n *Network) GetMSE(errors *mat.VecDense) float64 {
	return 0.5 * mat.Dot(errors, errors)
}

// GetCost is the arithmetic mean of the per-example MSE values.
func (n *Network) GetCost(mses *mat.VecDense) float64 {
	return mat.Dot(mses, ones(mses.Len())) / float64(mses.Len())
}

// SaveModel serializes the layer configurations, weight tensors and run
// statistics to a new timestamp-named file in dir and returns the
// generated filename.
func (n *Network) SaveModel(dir string) (string, error) {
	file := &model.File{
		LastError:  n.lastError,
		LastTime:   model.Seconds(n.lastLearning),
		Parameters: make([]model.Entry, len(n.layers)),
	}
	for i, layer := range n.layers {
		c := layer.Config()
		file.Parameters[i] = model.Entry{
			Config: model.Config{
				Inputs:     c.Inputs,
				Outputs:    c.Outputs,
				Activation: c.Activation,
			},
			Weights: layer.Weights(),
		}
	}
	return model.Save(dir, file)
}

// LoadNetwork builds a network entirely from a persisted model.
func LoadNetwork(path string, lr float64) (*Network, error) {
	n := &Network{lr: lr}
	if err := n.LoadModel(path); err != nil {
		return nil, err
	}
	return n, nil
}

// LoadModel replaces the network's layers and statistics with the content
// of a persisted model. On failure the in-memory state is untouched.
func (n *Network) LoadModel(path string) error {
	file, err := model.Load(path)
	if err != nil {
		return err
	}

	lr := n.lr
	if lr <= 0 {
		lr = DefaultLearningRate
	}
	layers := make([]*Layer, len(file.Parameters))
	for i, entry := range file.Parameters {
		layer, err := NewLayer(LayerConfig{
			Inputs:     entry.Config.Inputs,
			Outputs:    entry.Config.Outputs,
			Activation: entry.Config.Activation,
		}, lr)
		if err != nil {
			return fmt.Errorf("restoring layer %d: %w", i, err)
		}
		if err := layer.SetWeights(entry.Weights); err != nil {
			return fmt.Errorf("restoring layer %d: %w", i, err)
		}
		if i > 0 && entry.Config.Inputs != file.Parameters[i-1].Config.Outputs {
			return fmt.Errorf("restoring layer %d: %w", i, &ShapeError{
				Op:   "layer chain",
				Want: file.Parameters[i-1].Config.Outputs,
				Got:  entry.Config.Inputs,
			})
		}
		layers[i] = layer
	}

	n.lr = lr
	n.layers = layers
	n.lastError = file.LastError
	n.lastLearning = model.Duration(file.LastTime)
	return nil
}
