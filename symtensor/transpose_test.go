package symtensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/symtensor"
)

func TestTransposeIsInvolution(t *testing.T) {
	row := bond.New(bond.In, []bond.State{{Charge: u1(1), Mult: 2}, {Charge: u1(-1), Mult: 2}})
	col := bond.New(bond.Out, []bond.State{{Charge: u1(-1), Mult: 2}, {Charge: u1(1), Mult: 2}})
	tn := symtensor.New([]bond.Bond{row, col}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1}))

	raw := make([]float64, 16)
	for i := range raw {
		// Only positions whose row and column charges agree may be non-zero.
		if (i/4 < 2) == (i%4 < 2) {
			raw[i] = float64(i + 1)
		}
	}
	require.NoError(t, tn.SetRawElem(raw, true))

	once := tn.Transpose()
	require.Equal(t, bond.In, once.Bonds[0].Dir)
	require.Equal(t, bond.Out, once.Bonds[1].Dir)

	twice := once.Transpose()
	require.Equal(t, tn.Bonds[0].Dir, twice.Bonds[0].Dir)
	require.Equal(t, raw, twice.GetRawElem())
}

func TestTransposeSwapsRowColCounts(t *testing.T) {
	b0 := trivialBond(bond.In, 2)
	b1 := trivialBond(bond.In, 3)
	b2 := trivialBond(bond.Out, 6)
	tn := symtensor.New([]bond.Bond{b0, b1, b2}, 2, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2}))

	out := tn.Transpose()
	require.Equal(t, 1, out.RNum)
	require.Equal(t, 1, out.LabelIndex(0))
	require.Equal(t, 0, out.LabelIndex(2))
}
