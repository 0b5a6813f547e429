package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
)

func TestDiagonalExpandsForAddWithDense(t *testing.T) {
	diag := block.NewDiagReal(2, 2, []float64{1, 2})
	dense := block.NewRealFrom(2, 2, []float64{1, 1, 1, 1})
	sum, err := block.Add(diag, dense)
	require.NoError(t, err)
	require.False(t, sum.Diag)
	require.InDelta(t, 2, sum.At(0, 0), 1e-12)
	require.InDelta(t, 1, sum.At(0, 1), 1e-12)
	require.InDelta(t, 3, sum.At(1, 1), 1e-12)
}

func TestDiagTimesDiagStaysDiagonal(t *testing.T) {
	a := block.NewDiagReal(2, 2, []float64{2, 3})
	b := block.NewDiagReal(2, 2, []float64{4, 5})
	prod, err := block.MatMul(a, b, false, false)
	require.NoError(t, err)
	require.True(t, prod.Diag)
	require.InDelta(t, 8, prod.At(0, 0), 1e-12)
	require.InDelta(t, 15, prod.At(1, 1), 1e-12)
}

func TestMatMulDense(t *testing.T) {
	a := block.NewRealFrom(2, 2, []float64{1, 2, 3, 4})
	b := block.NewRealFrom(2, 2, []float64{5, 6, 7, 8})
	c, err := block.MatMul(a, b, false, false)
	require.NoError(t, err)
	require.InDelta(t, 19, c.At(0, 0), 1e-12)
	require.InDelta(t, 22, c.At(0, 1), 1e-12)
	require.InDelta(t, 43, c.At(1, 0), 1e-12)
	require.InDelta(t, 50, c.At(1, 1), 1e-12)
}

func TestTraceAndNorm(t *testing.T) {
	a := block.NewRealFrom(2, 2, []float64{1, 2, 3, 4})
	tr, _ := a.Trace()
	require.InDelta(t, 5, tr, 1e-12)
	require.InDelta(t, 30, a.FrobeniusNorm()*a.FrobeniusNorm(), 1e-9)
}

func TestKindMismatchError(t *testing.T) {
	r := block.NewRealFrom(2, 2, []float64{1, 2, 3, 4})
	c := block.NewComplex(2, 2)
	_, err := block.Add(r, c)
	require.Error(t, err)
}

func complexFixture() (a, b *block.Block) {
	a = block.NewComplexFrom(2, 2, []complex128{1 + 1i, 2, 0, 1})
	b = block.NewComplexFrom(2, 2, []complex128{1, 1i, 1, 1})
	return a, b
}

func TestComplexMatMul(t *testing.T) {
	a, b := complexFixture()
	c, err := block.MatMul(a, b, false, false)
	require.NoError(t, err)
	require.Equal(t, block.Complex, c.Kind)
	require.InDelta(t, real(3+1i), real(c.AtC(0, 0)), 1e-12)
	require.InDelta(t, imag(3+1i), imag(c.AtC(0, 0)), 1e-12)
	require.InDelta(t, real(1+1i), real(c.AtC(0, 1)), 1e-12)
	require.InDelta(t, imag(1+1i), imag(c.AtC(0, 1)), 1e-12)
	require.InDelta(t, 1, real(c.AtC(1, 0)), 1e-12)
	require.InDelta(t, 0, imag(c.AtC(1, 0)), 1e-12)
	require.InDelta(t, 1, real(c.AtC(1, 1)), 1e-12)
	require.InDelta(t, 0, imag(c.AtC(1, 1)), 1e-12)
}

// TestComplexMatMulConjugateTranspose exercises block.MatMul's complex
// transA path, which (per kernel.CMatMulConj) means the Hermitian adjoint,
// not a plain transpose.
func TestComplexMatMulConjugateTranspose(t *testing.T) {
	a, b := complexFixture()
	d, err := block.MatMul(a, b, true, false)
	require.NoError(t, err)
	require.InDelta(t, 1, real(d.AtC(0, 0)), 1e-12)
	require.InDelta(t, -1, imag(d.AtC(0, 0)), 1e-12)
	require.InDelta(t, 1, real(d.AtC(0, 1)), 1e-12)
	require.InDelta(t, 1, imag(d.AtC(0, 1)), 1e-12)
	require.InDelta(t, 3, real(d.AtC(1, 0)), 1e-12)
	require.InDelta(t, 0, imag(d.AtC(1, 0)), 1e-12)
	require.InDelta(t, 1, real(d.AtC(1, 1)), 1e-12)
	require.InDelta(t, 2, imag(d.AtC(1, 1)), 1e-12)
}

func TestComplexAddTraceAndNorm(t *testing.T) {
	a, b := complexFixture()
	sum, err := block.Add(a, b)
	require.NoError(t, err)
	require.InDelta(t, 2, real(sum.AtC(0, 0)), 1e-12)
	require.InDelta(t, 1, imag(sum.AtC(0, 0)), 1e-12)
	require.InDelta(t, 2, real(sum.AtC(0, 1)), 1e-12)
	require.InDelta(t, 1, imag(sum.AtC(0, 1)), 1e-12)

	_, tr := a.Trace()
	require.InDelta(t, 2, real(tr), 1e-12)
	require.InDelta(t, 1, imag(tr), 1e-12)

	require.InDelta(t, 7, a.FrobeniusNorm()*a.FrobeniusNorm(), 1e-9)
}

func TestSetDiagonalToOne(t *testing.T) {
	b := block.NewReal(3, 3)
	b.SetDiagonalToOne()
	for i := 0; i < 3; i++ {
		require.InDelta(t, 1, b.At(i, i), 1e-12)
	}
	require.InDelta(t, 0, b.At(0, 1), 1e-12)
}
