package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func subtract(a, b *mat.VecDense) *mat.VecDense {
	o := mat.NewVecDense(a.Len(), nil)
	o.SubVec(a, b)
	return o
}

func multiply(a, b *mat.VecDense) *mat.VecDense {
	o := mat.NewVecDense(a.Len(), nil)
	o.MulElemVec(a, b)
	return o
}

func apply(fn func(i, j int, v float64) float64, v *mat.VecDense) *mat.VecDense {
	o := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		o.SetVec(i, fn(i, 0, v.AtVec(i)))
	}
	return o
}

func ones(n int) *mat.VecDense {
	o := make([]float64, n)
	for i := range o {
		o[i] = 1
	}
	return mat.NewVecDense(n, o)
}

// withBias appends the constant bias input 1 to v.
func withBias(v *mat.VecDense) *mat.VecDense {
	o := mat.NewVecDense(v.Len()+1, nil)
	for i := 0; i < v.Len(); i++ {
		o.SetVec(i, v.AtVec(i))
	}
	o.SetVec(v.Len(), 1)
	return o
}

func randomWeights(rows, cols int, fanIn float64) *mat.Dense {
	dist := distuv.Uniform{
		Min: -1 / math.Sqrt(fanIn),
		Max: 1 / math.Sqrt(fanIn),
	}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}
