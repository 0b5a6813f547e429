package block

import "github.com/qsymm/symten/kernel"

// SVD factorizes a real dense block into U * diag(s) * V^T (thin form).
// The caller is responsible for transposing V to get V† when a Hermitian
// adjoint convention is wanted (real blocks have V† == V^T).
//
// Real only: kernel has no complex SVD to call into (gonum's lapack64
// carries no Zgesvd-equivalent entry point, and mat has no CSVD type), so
// this panics for a Complex block rather than silently producing a wrong
// answer. HOSVD is documented as real-only for the same reason.
func (b *Block) SVD() (u *Block, s []float64, v *Block) {
	if b.Kind != Real {
		panic("block: SVD is only implemented for real blocks")
	}
	ud, svals, vd := kernel.SVD(b.Dense().toKernelDense())
	return fromKernelDense(ud), svals, fromKernelDense(vd)
}

// QR factorizes a real dense block (Rows >= Cols) into Q*R.
//
// Real only, for the same reason as SVD above.
func (b *Block) QR() (q, r *Block) {
	if b.Kind != Real {
		panic("block: QR is only implemented for real blocks")
	}
	qd, rd := kernel.QR(b.Dense().toKernelDense())
	return fromKernelDense(qd), fromKernelDense(rd)
}
