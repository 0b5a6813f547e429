// Package kernel is the BLAS/LAPACK collaborator named (but left
// unimplemented) by the core specification: dense matrix multiply, SVD, QR
// and the handful of element-level reductions (trace, norm, random fill)
// that block.Block forwards rather than implementing itself.
//
// It is a thin wrapper over gonum.org/v1/gonum/mat, in the same spirit as
// gonum/mat is itself a thin wrapper over blas64/lapack64: callers never see
// blas64.General or lapack64 job flags, only Dense/CDense and a handful of
// free functions.
package kernel

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Dense is a real dense row-major matrix, the scratch unit Block operates
// over when its scalar kind is real.
type Dense struct {
	m *mat.Dense
}

// NewDense allocates a rows×cols matrix. If data is non-nil it must have
// length rows*cols and is copied in row-major order.
func NewDense(rows, cols int, data []float64) Dense {
	return Dense{m: mat.NewDense(rows, cols, data)}
}

// Dims returns the matrix shape.
func (d Dense) Dims() (rows, cols int) { return d.m.Dims() }

// At returns the element at (i, j).
func (d Dense) At(i, j int) float64 { return d.m.At(i, j) }

// Set assigns the element at (i, j).
func (d Dense) Set(i, j int, v float64) { d.m.Set(i, j, v) }

// RawRowMajor copies the matrix out as a flat row-major slice, the layout
// SymTensor's binary format and setRawElem/getRawElem operate on.
func (d Dense) RawRowMajor() []float64 {
	r, c := d.Dims()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = d.At(i, j)
		}
	}
	return out
}

// Clone returns an independent copy.
func (d Dense) Clone() Dense {
	var out mat.Dense
	out.CloneFrom(d.m)
	return Dense{m: &out}
}

// MatMul computes alpha * op(a) * op(b), where op is optional transpose,
// the primitive behind SymTensor.contract's per-charge block multiply.
func MatMul(transA, transB bool, alpha float64, a, b Dense) Dense {
	av, bv := viewT(a.m, transA), viewT(b.m, transB)
	ar, _ := av.Dims()
	_, bc := bv.Dims()
	var out mat.Dense
	out.ReuseAs(ar, bc)
	out.Mul(av, bv)
	if alpha != 1 {
		out.Scale(alpha, &out)
	}
	return Dense{m: &out}
}

func viewT(m *mat.Dense, transpose bool) mat.Matrix {
	if transpose {
		return m.T()
	}
	return m
}

// Add computes a + b elementwise; a and b must have identical shape.
func Add(a, b Dense) Dense {
	r, c := a.Dims()
	var out mat.Dense
	out.ReuseAs(r, c)
	out.Add(a.m, b.m)
	return Dense{m: &out}
}

// Scale multiplies every element by alpha.
func Scale(alpha float64, a Dense) Dense {
	r, c := a.Dims()
	var out mat.Dense
	out.ReuseAs(r, c)
	out.Scale(alpha, a.m)
	return Dense{m: &out}
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(a Dense) float64 {
	r, c := a.Dims()
	if r != c {
		panic("kernel: Trace of non-square matrix")
	}
	var sum float64
	for i := 0; i < r; i++ {
		sum += a.At(i, i)
	}
	return sum
}

// FrobeniusNorm returns sqrt(sum of squared magnitudes).
func FrobeniusNorm(a Dense) float64 {
	return mat.Norm(a.m, 2)
}

// MaxAbs returns the largest-magnitude element.
func MaxAbs(a Dense) float64 {
	r, c := a.Dims()
	var m float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := abs(a.At(i, j)); v > m {
				m = v
			}
		}
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// SVD factorizes a into U * diag(s) * V^T using the thin decomposition.
func SVD(a Dense) (u Dense, s []float64, v Dense) {
	var svd mat.SVD
	ok := svd.Factorize(a.m, mat.SVDThin)
	if !ok {
		panic("kernel: SVD factorization failed")
	}
	var um, vm mat.Dense
	svd.UTo(&um)
	svd.VTo(&vm)
	return Dense{m: &um}, svd.Values(nil), Dense{m: &vm}
}

// QR factorizes a (m>=n) into Q*R with Q orthonormal-column, R upper
// triangular, the primitive behind fill-random-orthonormal.
func QR(a Dense) (q, r Dense) {
	var qr mat.QR
	qr.Factorize(a.m)
	var qm, rm mat.Dense
	qr.QTo(&qm)
	qr.RTo(&rm)
	return Dense{m: &qm}, Dense{m: &rm}
}

// FillZero zeroes every element.
func FillZero(rows, cols int) Dense {
	return NewDense(rows, cols, make([]float64, rows*cols))
}

// FillRandomUniform fills a rows×cols matrix with independent U[0,1) draws.
func FillRandomUniform(rows, cols int, rng *rand.Rand) Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()
	}
	return NewDense(rows, cols, data)
}

// FillRandomOrthonormalRows returns a rows×cols matrix (rows <= cols) whose
// rows are orthonormal, obtained via QR of a Gaussian random matrix — the
// standard Haar-random-orthogonal recipe.
func FillRandomOrthonormalRows(rows, cols int, rng *rand.Rand) Dense {
	g := gaussian(cols, rows, rng)
	q, _ := QR(g)
	_, qc := q.Dims()
	out := NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j < qc {
				out.Set(i, j, q.At(j, i))
			}
		}
	}
	return out
}

func gaussian(rows, cols int, rng *rand.Rand) Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return NewDense(rows, cols, data)
}

// CDense is the complex counterpart of Dense.
type CDense struct {
	m *mat.CDense
}

// NewCDense allocates a rows×cols complex matrix.
func NewCDense(rows, cols int, data []complex128) CDense {
	return CDense{m: mat.NewCDense(rows, cols, data)}
}

func (d CDense) Dims() (rows, cols int) { return d.m.Dims() }
func (d CDense) At(i, j int) complex128 { return d.m.At(i, j) }
func (d CDense) Set(i, j int, v complex128) { d.m.Set(i, j, v) }

// RawRowMajor copies the matrix out as a flat row-major slice.
func (d CDense) RawRowMajor() []complex128 {
	r, c := d.Dims()
	out := make([]complex128, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = d.At(i, j)
		}
	}
	return out
}

// Clone returns an independent copy.
func (d CDense) Clone() CDense {
	var out mat.CDense
	out.CloneFromC(d.m)
	return CDense{m: &out}
}

// CMatMulConj computes op(a) * op(b), where conjA/conjB select the
// conjugate transpose (Hermitian adjoint) rather than a plain transpose —
// H is the only transpose gonum's complex CMatrix interface exposes, so
// that is what "transposing" a complex operand means here. Routed through
// mat.CDense.Mul, which dispatches to cblas128.Gemm whenever both operands
// resolve to concrete CDense values, the same path (*CDense).Mul takes.
func CMatMulConj(conjA, conjB bool, a, b CDense) CDense {
	var out mat.CDense
	out.Mul(cmatrixView(a, conjA), cmatrixView(b, conjB))
	return CDense{m: &out}
}

func cmatrixView(d CDense, conj bool) mat.CMatrix {
	if conj {
		return d.m.H()
	}
	return d.m
}
