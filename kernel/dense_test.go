package kernel_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/kernel"
)

func TestMatMul(t *testing.T) {
	a := kernel.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := kernel.NewDense(3, 2, []float64{7, 8, 9, 10, 11, 12})
	c := kernel.MatMul(false, false, 1, a, b)
	r, col := c.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, col)
	require.InDelta(t, 58, c.At(0, 0), 1e-12)
	require.InDelta(t, 64, c.At(0, 1), 1e-12)
	require.InDelta(t, 139, c.At(1, 0), 1e-12)
	require.InDelta(t, 154, c.At(1, 1), 1e-12)
}

func TestSVDReconstructs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := kernel.FillRandomUniform(4, 3, rng)
	u, s, v := kernel.SVD(a)
	_, k := u.Dims()
	sd := kernel.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		sd.Set(i, i, s[i])
	}
	recon := kernel.MatMul(false, true, 1, kernel.MatMul(false, false, 1, u, sd), v)
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.InDelta(t, a.At(i, j), recon.At(i, j), 1e-9)
		}
	}
}

func TestFillRandomOrthonormalRows(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	o := kernel.FillRandomOrthonormalRows(3, 5, rng)
	gram := kernel.MatMul(false, true, 1, o, o)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, gram.At(i, j), 1e-9)
		}
	}
}

func TestTraceAndNorm(t *testing.T) {
	a := kernel.NewDense(2, 2, []float64{1, 2, 3, 4})
	require.InDelta(t, 5, kernel.Trace(a), 1e-12)
	require.InDelta(t, 30, kernel.FrobeniusNorm(a)*kernel.FrobeniusNorm(a), 1e-9)
}
