// Package block implements Block, the dense (or diagonal) rectangular
// buffer that backs one conserved-charge sector of a SymTensor. Real and
// complex tensors share one Block type with a Kind tag rather than the
// parallel rflag/cflag buffers of the source design (spec §9 DESIGN NOTES).
package block

import (
	"math/rand"

	"github.com/qsymm/symten/kernel"
)

// Kind selects which payload of a Block is active.
type Kind uint8

const (
	Real Kind = iota
	Complex
)

// Block is a dense rectangular buffer, real or complex, optionally storing
// only its diagonal (Diag == true) to represent a diagonal matrix without
// materializing the off-diagonal zeros. All arithmetic transparently
// expands a diagonal operand to dense unless both operands are diagonal
// and shape-compatible (spec §4.2).
type Block struct {
	Rows, Cols int
	Kind       Kind
	Diag       bool

	real []float64     // len == Rows*Cols, or min(Rows,Cols) if Diag
	cplx []complex128  // len == Rows*Cols, or min(Rows,Cols) if Diag
}

// NewReal allocates a zero-filled dense real block.
func NewReal(rows, cols int) *Block {
	return &Block{Rows: rows, Cols: cols, Kind: Real, real: make([]float64, rows*cols)}
}

// NewComplex allocates a zero-filled dense complex block.
func NewComplex(rows, cols int) *Block {
	return &Block{Rows: rows, Cols: cols, Kind: Complex, cplx: make([]complex128, rows*cols)}
}

// NewRealFrom wraps a row-major data slice of length rows*cols.
func NewRealFrom(rows, cols int, data []float64) *Block {
	if len(data) != rows*cols {
		panic("block: NewRealFrom data length mismatch")
	}
	return &Block{Rows: rows, Cols: cols, Kind: Real, real: append([]float64(nil), data...)}
}

// NewComplexFrom wraps a row-major data slice of length rows*cols.
func NewComplexFrom(rows, cols int, data []complex128) *Block {
	if len(data) != rows*cols {
		panic("block: NewComplexFrom data length mismatch")
	}
	return &Block{Rows: rows, Cols: cols, Kind: Complex, cplx: append([]complex128(nil), data...)}
}

// NewDiagReal allocates a diagonal real block from its diagonal values.
func NewDiagReal(rows, cols int, diag []float64) *Block {
	if len(diag) != min(rows, cols) {
		panic("block: NewDiagReal diagonal length mismatch")
	}
	return &Block{Rows: rows, Cols: cols, Kind: Real, Diag: true, real: append([]float64(nil), diag...)}
}

// NewDiagComplex allocates a diagonal complex block from its diagonal values.
func NewDiagComplex(rows, cols int, diag []complex128) *Block {
	if len(diag) != min(rows, cols) {
		panic("block: NewDiagComplex diagonal length mismatch")
	}
	return &Block{Rows: rows, Cols: cols, Kind: Complex, Diag: true, cplx: append([]complex128(nil), diag...)}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// At returns the real element at (i, j); panics if Kind is Complex.
func (b *Block) At(i, j int) float64 {
	if b.Kind != Real {
		panic("block: At called on a complex block")
	}
	if b.Diag {
		if i != j {
			return 0
		}
		return b.real[i]
	}
	return b.real[i*b.Cols+j]
}

// AtC returns the complex element at (i, j).
func (b *Block) AtC(i, j int) complex128 {
	if b.Kind != Complex {
		return complex(b.At(i, j), 0)
	}
	if b.Diag {
		if i != j {
			return 0
		}
		return b.cplx[i]
	}
	return b.cplx[i*b.Cols+j]
}

// Set assigns the real element at (i, j). Panics if Diag and i != j.
func (b *Block) Set(i, j int, v float64) {
	if b.Kind != Real {
		panic("block: Set called on a complex block")
	}
	if b.Diag {
		if i != j {
			panic("block: Set off-diagonal element of a diagonal block")
		}
		b.real[i] = v
		return
	}
	b.real[i*b.Cols+j] = v
}

// SetC assigns the complex element at (i, j).
func (b *Block) SetC(i, j int, v complex128) {
	if b.Kind != Complex {
		panic("block: SetC called on a real block")
	}
	if b.Diag {
		if i != j {
			panic("block: SetC off-diagonal element of a diagonal block")
		}
		b.cplx[i] = v
		return
	}
	b.cplx[i*b.Cols+j] = v
}

// Dense returns b if it is already dense, or a freshly materialized dense
// copy if b is diagonal. Diagonal blocks are expanded lazily, only when an
// operation actually needs the dense form (spec §4.2).
func (b *Block) Dense() *Block {
	if !b.Diag {
		return b
	}
	switch b.Kind {
	case Real:
		out := NewReal(b.Rows, b.Cols)
		for i := 0; i < min(b.Rows, b.Cols); i++ {
			out.Set(i, i, b.real[i])
		}
		return out
	default:
		out := NewComplex(b.Rows, b.Cols)
		for i := 0; i < min(b.Rows, b.Cols); i++ {
			out.SetC(i, i, b.cplx[i])
		}
		return out
	}
}

// Clone returns an independent deep copy.
func (b *Block) Clone() *Block {
	out := &Block{Rows: b.Rows, Cols: b.Cols, Kind: b.Kind, Diag: b.Diag}
	if b.Kind == Real {
		out.real = append([]float64(nil), b.real...)
	} else {
		out.cplx = append([]complex128(nil), b.cplx...)
	}
	return out
}

// toKernelDense converts a dense real block to a kernel.Dense for the BLAS
// collaborator; panics if b is diagonal (call Dense() first) or complex.
func (b *Block) toKernelDense() kernel.Dense {
	if b.Diag || b.Kind != Real {
		panic("block: toKernelDense requires a dense real block")
	}
	return kernel.NewDense(b.Rows, b.Cols, append([]float64(nil), b.real...))
}

func fromKernelDense(d kernel.Dense) *Block {
	r, c := d.Dims()
	return NewRealFrom(r, c, d.RawRowMajor())
}

// toKernelCDense converts a dense complex block to a kernel.CDense for the
// BLAS collaborator; panics if b is diagonal (call Dense() first) or real.
func (b *Block) toKernelCDense() kernel.CDense {
	if b.Diag || b.Kind != Complex {
		panic("block: toKernelCDense requires a dense complex block")
	}
	return kernel.NewCDense(b.Rows, b.Cols, append([]complex128(nil), b.cplx...))
}

func fromKernelCDense(d kernel.CDense) *Block {
	r, c := d.Dims()
	return NewComplexFrom(r, c, d.RawRowMajor())
}

// FillZero zeroes every element of a dense block in place.
func (b *Block) FillZero() {
	if b.Kind == Real {
		for i := range b.real {
			b.real[i] = 0
		}
	} else {
		for i := range b.cplx {
			b.cplx[i] = 0
		}
	}
}

// FillRandomUniform fills a dense real block with independent U[0,1) draws,
// forwarding to the kernel collaborator per spec §4.2.
func (b *Block) FillRandomUniform(rng *rand.Rand) {
	if b.Diag || b.Kind != Real {
		panic("block: FillRandomUniform requires a dense real block")
	}
	d := kernel.FillRandomUniform(b.Rows, b.Cols, rng)
	copy(b.real, d.RawRowMajor())
}

// FillRandomOrthonormalRows fills a dense real block (Rows <= Cols) with
// orthonormal rows, forwarding to the kernel collaborator.
func (b *Block) FillRandomOrthonormalRows(rng *rand.Rand) {
	if b.Diag || b.Kind != Real {
		panic("block: FillRandomOrthonormalRows requires a dense real block")
	}
	d := kernel.FillRandomOrthonormalRows(b.Rows, b.Cols, rng)
	copy(b.real, d.RawRowMajor())
}

// SetDiagonalToOne sets every diagonal element to 1, leaving off-diagonal
// elements (or the rest of the diagonal storage) untouched.
func (b *Block) SetDiagonalToOne() {
	n := min(b.Rows, b.Cols)
	if b.Kind == Real {
		if b.Diag {
			for i := 0; i < n; i++ {
				b.real[i] = 1
			}
			return
		}
		for i := 0; i < n; i++ {
			b.Set(i, i, 1)
		}
		return
	}
	if b.Diag {
		for i := 0; i < n; i++ {
			b.cplx[i] = 1
		}
		return
	}
	for i := 0; i < n; i++ {
		b.SetC(i, i, 1)
	}
}
