package symtensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/symtensor"
)

func TestPartialTraceOfMatrixEqualsMatrixTrace(t *testing.T) {
	row := trivialBond(bond.In, 3)
	col := trivialBond(bond.Out, 3)
	tn := symtensor.New([]bond.Bond{row, col}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1}))

	raw := []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	require.NoError(t, tn.SetRawElem(raw, true))

	traced, err := tn.PartialTrace(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0, traced.BondNum())

	var got float64
	for _, blk := range traced.Blocks {
		got = blk.At(0, 0)
	}
	require.InDelta(t, 15, got, 1e-12) // 1 + 5 + 9
}

func TestPartialTraceReducesRankByTwo(t *testing.T) {
	rowA := bond.New(bond.In, []bond.State{{Charge: u1(1), Mult: 2}, {Charge: u1(-1), Mult: 2}})
	colA := bond.New(bond.Out, []bond.State{{Charge: u1(-1), Mult: 2}, {Charge: u1(1), Mult: 2}})
	rowB := trivialBond(bond.In, 2)
	colB := trivialBond(bond.Out, 2)
	tn := symtensor.New([]bond.Bond{rowA, rowB, colA, colB}, 2, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2, 3}))

	traced, err := tn.PartialTrace(0, 2)
	require.NoError(t, err)
	require.Equal(t, 2, traced.BondNum())
	require.Equal(t, 1, traced.LabelIndex(3))
}

func TestPartialTraceRejectsIncompatibleBonds(t *testing.T) {
	row := trivialBond(bond.In, 2)
	row2 := trivialBond(bond.In, 3)
	col := trivialBond(bond.Out, 5)
	tn := symtensor.New([]bond.Bond{row, row2, col}, 2, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2}))
	_, err := tn.PartialTrace(0, 1)
	require.Error(t, err)
}
