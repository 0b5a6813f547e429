package symtensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/symtensor"
)

// TestContractMatchesDenseMatMul exercises the trivial-charge case: two
// rank-2 tensors sharing one label contract to a rank-2 tensor equal to
// the ordinary dense matrix product.
func TestContractMatchesDenseMatMul(t *testing.T) {
	a := symtensor.New([]bond.Bond{trivialBond(bond.In, 3), trivialBond(bond.Out, 4)}, 1, block.Real)
	require.NoError(t, a.SetLabel([]int{0, 1}))
	araw := []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	}
	require.NoError(t, a.SetRawElem(araw, true))

	b := symtensor.New([]bond.Bond{trivialBond(bond.In, 4), trivialBond(bond.Out, 5)}, 1, block.Real)
	require.NoError(t, b.SetLabel([]int{1, 2}))
	braw := []float64{
		1, 0, 0, 1, 1,
		0, 1, 0, 1, 0,
		0, 0, 1, 0, 1,
		1, 1, 1, 1, 1,
	}
	require.NoError(t, b.SetRawElem(braw, true))

	c, err := symtensor.Contract(a, b)
	require.NoError(t, err)
	require.Equal(t, 0, c.LabelIndex(0))
	require.Equal(t, 1, c.LabelIndex(2))

	expect := make([]float64, 3*5)
	for i := 0; i < 3; i++ {
		for j := 0; j < 5; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += araw[i*4+k] * braw[k*5+j]
			}
			expect[i*5+j] = sum
		}
	}
	require.InDeltaSlice(t, expect, c.GetRawElem(), 1e-9)
}

// TestContractFullyToScalarEqualsFrobeniusNormSquared contracts a
// Z2-charged rank-4 tensor with its transpose over every leg. The result
// is a rank-0 tensor whose single element equals the sum of squared
// magnitudes of every stored element (the adjoint-contraction identity).
func TestContractFullyToScalarEqualsFrobeniusNormSquared(t *testing.T) {
	leg := func(dir bond.Direction) bond.Bond {
		return bond.New(dir, []bond.State{{Charge: u1(1), Mult: 2}, {Charge: u1(-1), Mult: 2}})
	}
	tn := symtensor.New([]bond.Bond{leg(bond.In), leg(bond.In), leg(bond.Out), leg(bond.Out)}, 2, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2, 3}))

	raw := make([]float64, 16*16)
	for i := range raw {
		raw[i] = float64(i%7) - 3
	}
	require.NoError(t, tn.SetRawElem(raw, false))

	var sumSq float64
	for _, blk := range tn.Blocks {
		n := blk.FrobeniusNorm()
		sumSq += n * n
	}

	// Transpose labels its result with the original labels, reassigned to
	// the reversed bonds (col labels first, then row labels): every one
	// of tn's labels has exactly one matching partner on adjoint, so
	// contracting the two fully traces tn against its own adjoint.
	adjoint := tn.Transpose()

	scalar, err := symtensor.Contract(tn, adjoint)
	require.NoError(t, err)
	require.Equal(t, 0, scalar.BondNum())

	var got float64
	for _, blk := range scalar.Blocks {
		got = blk.At(0, 0)
	}
	require.InDelta(t, sumSq, got, 1e-6)
}

// TestContractComplexBlockMatchesHandComputedProduct exercises Contract on
// Complex-kind tensors with a genuinely complex result, not just the
// kind-mismatch rejection TestContractRejectsMixedScalarKind below — the
// single-charge case reduces to an ordinary complex matrix product.
func TestContractComplexBlockMatchesHandComputedProduct(t *testing.T) {
	a := symtensor.New([]bond.Bond{trivialBond(bond.In, 2), trivialBond(bond.Out, 2)}, 1, block.Complex)
	require.NoError(t, a.SetLabel([]int{0, 1}))
	q := u1(0)
	a.Blocks[q] = block.NewComplexFrom(2, 2, []complex128{1 + 1i, 2, 0, 1})

	b := symtensor.New([]bond.Bond{trivialBond(bond.In, 2), trivialBond(bond.Out, 2)}, 1, block.Complex)
	require.NoError(t, b.SetLabel([]int{1, 2}))
	b.Blocks[q] = block.NewComplexFrom(2, 2, []complex128{1, 1i, 1, 1})

	c, err := symtensor.Contract(a, b)
	require.NoError(t, err)

	blk := c.Blocks[q]
	require.NotNil(t, blk)
	require.InDelta(t, 3, real(blk.AtC(0, 0)), 1e-12)
	require.InDelta(t, 1, imag(blk.AtC(0, 0)), 1e-12)
	require.InDelta(t, 1, real(blk.AtC(0, 1)), 1e-12)
	require.InDelta(t, 1, imag(blk.AtC(0, 1)), 1e-12)
	require.InDelta(t, 1, real(blk.AtC(1, 0)), 1e-12)
	require.InDelta(t, 0, imag(blk.AtC(1, 0)), 1e-12)
	require.InDelta(t, 1, real(blk.AtC(1, 1)), 1e-12)
	require.InDelta(t, 0, imag(blk.AtC(1, 1)), 1e-12)
}

func TestContractRejectsMixedScalarKind(t *testing.T) {
	a := symtensor.New([]bond.Bond{trivialBond(bond.In, 2), trivialBond(bond.Out, 2)}, 1, block.Real)
	require.NoError(t, a.SetLabel([]int{0, 1}))
	b := symtensor.New([]bond.Bond{trivialBond(bond.In, 2), trivialBond(bond.Out, 2)}, 1, block.Complex)
	require.NoError(t, b.SetLabel([]int{1, 2}))
	_, err := symtensor.Contract(a, b)
	require.Error(t, err)
}

func TestContractRejectsNoSharedLabels(t *testing.T) {
	a := symtensor.New([]bond.Bond{trivialBond(bond.In, 2), trivialBond(bond.Out, 2)}, 1, block.Real)
	require.NoError(t, a.SetLabel([]int{0, 1}))
	b := symtensor.New([]bond.Bond{trivialBond(bond.In, 2), trivialBond(bond.Out, 2)}, 1, block.Real)
	require.NoError(t, b.SetLabel([]int{2, 3}))
	_, err := symtensor.Contract(a, b)
	require.Error(t, err)
}
