package symtensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/symtensor"
)

func TestHOSVDFactorsAreColumnOrthogonal(t *testing.T) {
	b0 := trivialBond(bond.In, 4)
	b1 := trivialBond(bond.In, 4)
	b2 := trivialBond(bond.Out, 4)
	tn := symtensor.New([]bond.Bond{b0, b1, b2}, 2, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2}))

	raw := make([]float64, 64)
	for i := range raw {
		raw[i] = float64((i*37+11)%23) - 11
	}
	require.NoError(t, tn.SetRawElem(raw, true))

	factors, core, singulars, err := tn.HOSVD(3, 1, 0, true)
	require.NoError(t, err)
	require.Len(t, factors, 3)
	require.Len(t, singulars, 3)
	require.Equal(t, 3, core.BondNum())

	for m, f := range factors {
		require.Equal(t, 2, f.BondNum())
		require.Equal(t, 1, f.RNum)

		var vt *block.Block
		for _, blk := range f.Blocks {
			vt = blk
		}
		require.NotNil(t, vt, "mode %d: factor has no stored block", m)

		gram, err := block.MatMul(vt, vt, false, true)
		require.NoError(t, err)
		require.Equal(t, gram.Rows, gram.Cols)
		for i := 0; i < gram.Rows; i++ {
			for j := 0; j < gram.Cols; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				require.InDelta(t, want, gram.At(i, j), 1e-9)
			}
		}
	}
}

func TestHOSVDRejectsExcessiveModeCount(t *testing.T) {
	b0 := trivialBond(bond.In, 2)
	b1 := trivialBond(bond.Out, 2)
	tn := symtensor.New([]bond.Bond{b0, b1}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1}))

	_, _, _, err := tn.HOSVD(2, 2, 0, false)
	require.Error(t, err)
}
