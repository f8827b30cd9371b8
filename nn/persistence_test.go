package nn

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Stepami/OOMLCS/dataset"
)

func trainedNetwork(t *testing.T) *Network {
	t.Helper()
	net, err := NewNetwork(0.5,
		LayerConfig{Inputs: 2, Outputs: 3, Activation: "tanh"},
		LayerConfig{Inputs: 3, Outputs: 1},
	)
	require.NoError(t, err)

	set := dataset.Samples{
		{Inputs: []float64{0.1, 0.9}, Targets: []float64{0.7}},
		{Inputs: []float64{0.8, 0.2}, Targets: []float64{0.3}},
	}
	_, err = net.TrainBackProp(set, 1e-9, WithMaxEpochs(50))
	require.NoError(t, err)
	return net
}

func TestSaveLoadRoundTrip(t *testing.T) {
	net := trainedNetwork(t)
	dir := t.TempDir()

	filename, err := net.SaveModel(dir)
	require.NoError(t, err)
	assert.Regexp(t, `^perceptron-\d+\.json$`, filename)

	restored, err := LoadNetwork(filepath.Join(dir, filename), 0.5)
	require.NoError(t, err)

	require.Len(t, restored.layers, len(net.layers))
	for i := range net.layers {
		assert.Equal(t, net.layers[i].Config(), restored.layers[i].Config())
		assert.Equal(t, net.layers[i].Weights(), restored.layers[i].Weights(),
			"layer %d weights must round-trip bit-identical", i)
	}
	assert.Equal(t, net.LastError(), restored.LastError())
	assert.InDelta(t, net.LastLearningTime().Seconds(), restored.LastLearningTime().Seconds(), 1e-9)

	in := mat.NewVecDense(2, []float64{0.4, 0.6})
	want, err := net.Predict(in)
	require.NoError(t, err)
	got, err := restored.Predict(in)
	require.NoError(t, err)
	assert.Equal(t, want.RawVector().Data, got.RawVector().Data)
}

func TestLoadModelReplacesState(t *testing.T) {
	net := trainedNetwork(t)
	dir := t.TempDir()
	filename, err := net.SaveModel(dir)
	require.NoError(t, err)

	other, err := NewNetwork(0.5,
		LayerConfig{Inputs: 5, Outputs: 4},
		LayerConfig{Inputs: 4, Outputs: 2},
	)
	require.NoError(t, err)

	require.NoError(t, other.LoadModel(filepath.Join(dir, filename)))
	assert.Equal(t, 2, other.InputSize())
	assert.Equal(t, 1, other.OutputSize())
	assert.Equal(t, net.LastError(), other.LastError())
}

func TestLoadModelMissingFile(t *testing.T) {
	net := trainedNetwork(t)
	before := net.layers[0].Weights()

	err := net.LoadModel(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, before, net.layers[0].Weights(), "failed load must leave state untouched")
}

func TestSaveModelUnwritableDirectory(t *testing.T) {
	net := trainedNetwork(t)
	_, err := net.SaveModel(filepath.Join(t.TempDir(), "does", "not", "exist"))
	assert.Error(t, err)
}
