package block

import (
	"math"
	"math/cmplx"

	"github.com/qsymm/symten/kernel"
)

func sqrtf(v float64) float64 { return math.Sqrt(v) }

// kindMismatch is returned (wrapped into a symten.Error by callers that know the
// full error-kind taxonomy) when an operation is given mismatched real and
// complex operands where no promotion rule applies.
type kindMismatch struct{ a, b Kind }

func (e kindMismatch) Error() string { return "block: mismatched scalar kinds" }

// MatMul computes op(a) * op(b), transposing either operand first if
// requested. Diagonal operands are expanded to dense unless both a and b
// are diagonal and shape-compatible, in which case the product stays
// diagonal (spec §4.2).
//
// For complex blocks, transA/transB request the conjugate transpose
// (Hermitian adjoint) rather than a plain transpose: gonum's complex
// CMatrix interface exposes H() and nothing else, and every use this
// package has for "transposing" a complex block (recombining an HOSVD
// factor, contracting a tensor against its adjoint) wants the adjoint
// anyway.
func MatMul(a, b *Block, transA, transB bool) (*Block, error) {
	if a.Kind != b.Kind {
		return nil, kindMismatch{a.Kind, b.Kind}
	}
	if a.Diag && b.Diag && !transA && !transB && a.Cols == b.Rows {
		return diagMatMul(a, b), nil
	}
	ad, bd := a.Dense(), b.Dense()
	if a.Kind == Real {
		out := kernel.MatMul(transA, transB, 1, ad.toKernelDense(), bd.toKernelDense())
		return fromKernelDense(out), nil
	}
	out := kernel.CMatMulConj(transA, transB, ad.toKernelCDense(), bd.toKernelCDense())
	return fromKernelCDense(out), nil
}

func diagMatMul(a, b *Block) *Block {
	n := min(a.Rows, b.Cols)
	if a.Kind == Real {
		diag := make([]float64, n)
		for i := 0; i < n; i++ {
			diag[i] = a.At(i, i) * b.At(i, i)
		}
		return NewDiagReal(a.Rows, b.Cols, diag)
	}
	diag := make([]complex128, n)
	for i := 0; i < n; i++ {
		diag[i] = a.AtC(i, i) * b.AtC(i, i)
	}
	return NewDiagComplex(a.Rows, b.Cols, diag)
}

// Add computes a + b elementwise; a and b must have identical shape. Stays
// diagonal only if both operands are diagonal.
func Add(a, b *Block) (*Block, error) {
	if a.Kind != b.Kind {
		return nil, kindMismatch{a.Kind, b.Kind}
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		panic("block: Add shape mismatch")
	}
	if a.Diag && b.Diag {
		if a.Kind == Real {
			diag := make([]float64, len(a.real))
			for i := range diag {
				diag[i] = a.real[i] + b.real[i]
			}
			return NewDiagReal(a.Rows, a.Cols, diag), nil
		}
		diag := make([]complex128, len(a.cplx))
		for i := range diag {
			diag[i] = a.cplx[i] + b.cplx[i]
		}
		return NewDiagComplex(a.Rows, a.Cols, diag), nil
	}
	ad, bd := a.Dense(), b.Dense()
	if a.Kind == Real {
		out := kernel.Add(ad.toKernelDense(), bd.toKernelDense())
		return fromKernelDense(out), nil
	}
	out := NewComplex(a.Rows, a.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			out.SetC(i, j, ad.AtC(i, j)+bd.AtC(i, j))
		}
	}
	return out, nil
}

// ScaleReal multiplies every element by a real scalar, preserving the
// Diag flag.
func (b *Block) ScaleReal(alpha float64) *Block {
	out := b.Clone()
	if b.Kind == Real {
		for i := range out.real {
			out.real[i] *= alpha
		}
	} else {
		for i := range out.cplx {
			out.cplx[i] *= complex(alpha, 0)
		}
	}
	return out
}

// ScaleComplex multiplies every element by a complex scalar. Panics if the
// block is real (use ScaleReal, or promote first).
func (b *Block) ScaleComplex(alpha complex128) *Block {
	if b.Kind != Complex {
		panic("block: ScaleComplex called on a real block")
	}
	out := b.Clone()
	for i := range out.cplx {
		out.cplx[i] *= alpha
	}
	return out
}

// Trace returns the sum of the diagonal of a square block.
func (b *Block) Trace() (float64, complex128) {
	if b.Rows != b.Cols {
		panic("block: Trace of a non-square block")
	}
	if b.Kind == Real {
		if b.Diag {
			var sum float64
			for _, v := range b.real {
				sum += v
			}
			return sum, 0
		}
		return kernel.Trace(b.toKernelDense()), 0
	}
	var sum complex128
	if b.Diag {
		for _, v := range b.cplx {
			sum += v
		}
	} else {
		n := b.Rows
		for i := 0; i < n; i++ {
			sum += b.AtC(i, i)
		}
	}
	return real(sum), sum
}

// FrobeniusNorm returns sqrt(sum of squared magnitudes).
func (b *Block) FrobeniusNorm() float64 {
	if b.Kind == Real {
		if b.Diag {
			var sum float64
			for _, v := range b.real {
				sum += v * v
			}
			return sqrtf(sum)
		}
		return kernel.FrobeniusNorm(b.toKernelDense())
	}
	var sum float64
	if b.Diag {
		for _, v := range b.cplx {
			m := cmplx.Abs(v)
			sum += m * m
		}
		return sqrtf(sum)
	}
	for i := 0; i < b.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			m := cmplx.Abs(b.AtC(i, j))
			sum += m * m
		}
	}
	return sqrtf(sum)
}

// MaxAbs returns the largest-magnitude element.
func (b *Block) MaxAbs() float64 {
	var m float64
	if b.Kind == Real {
		vals := b.real
		if !b.Diag {
			vals = b.Dense().real
		}
		for _, v := range vals {
			if av := absf(v); av > m {
				m = av
			}
		}
		return m
	}
	vals := b.cplx
	if !b.Diag {
		vals = b.Dense().cplx
	}
	for _, v := range vals {
		if av := cmplx.Abs(v); av > m {
			m = av
		}
	}
	return m
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
