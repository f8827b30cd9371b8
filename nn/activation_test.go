package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestActivatorLookup(t *testing.T) {
	for _, name := range []string{"sigmoid", "tanh", "relu"} {
		act, ok := ActivatorLookup[name]
		if assert.True(t, ok, name) {
			assert.Equal(t, name, act.String())
		}
	}
}

func TestSigmoid(t *testing.T) {
	s := Sigmoid{}
	assert.InDelta(t, 0.5, s.Activate(0, 0, 0), 1e-12)
	assert.InDelta(t, 1.0/(1.0+math.Exp(-2)), s.Activate(0, 0, 2), 1e-12)

	// s'(0) = 0.5 * (1 - 0.5)
	d := s.Deactivate(mat.NewVecDense(2, []float64{0, 2}))
	assert.InDelta(t, 0.25, d.AtVec(0), 1e-12)
	sig2 := 1.0 / (1.0 + math.Exp(-2))
	assert.InDelta(t, sig2*(1-sig2), d.AtVec(1), 1e-12)
}

func TestTanh(t *testing.T) {
	a := Tanh{}
	assert.InDelta(t, math.Tanh(0.7), a.Activate(0, 0, 0.7), 1e-12)

	d := a.Deactivate(mat.NewVecDense(1, []float64{0.7}))
	assert.InDelta(t, 1-math.Tanh(0.7)*math.Tanh(0.7), d.AtVec(0), 1e-12)
}

func TestReLU(t *testing.T) {
	r := ReLU{}
	assert.Equal(t, 3.0, r.Activate(0, 0, 3))
	assert.InDelta(t, -0.0002, r.Activate(0, 0, -2), 1e-12)

	d := r.Deactivate(mat.NewVecDense(2, []float64{3, -2}))
	assert.Equal(t, 1.0, d.AtVec(0))
	assert.Equal(t, 0.0001, d.AtVec(1))
}
