package symtensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/symtensor"
)

func TestCombineBondPreservesElementCount(t *testing.T) {
	b0 := trivialBond(bond.In, 2)
	b1 := trivialBond(bond.In, 3)
	b2 := trivialBond(bond.Out, 6)
	tn := symtensor.New([]bond.Bond{b0, b1, b2}, 2, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2}))

	raw := make([]float64, 36)
	for i := range raw {
		raw[i] = float64(i + 1)
	}
	require.NoError(t, tn.SetRawElem(raw, true))

	combined, err := tn.CombineBond(0, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 2, combined.BondNum())
	require.Equal(t, 1, combined.RNum)
	require.Equal(t, 6, combined.Bonds[0].Dim())
	require.Equal(t, tn.ElemNum(), combined.ElemNum())
}

func TestCombineBondRejectsCrossSide(t *testing.T) {
	b0 := trivialBond(bond.In, 2)
	b1 := trivialBond(bond.Out, 3)
	tn := symtensor.New([]bond.Bond{b0, b1}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1}))
	_, err := tn.CombineBond(0, 1, 2)
	require.Error(t, err)
}

func TestCombineBondOnColumnSide(t *testing.T) {
	row := trivialBond(bond.In, 6)
	c0 := trivialBond(bond.Out, 2)
	c1 := trivialBond(bond.Out, 3)
	tn := symtensor.New([]bond.Bond{row, c0, c1}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2}))

	raw := make([]float64, 36)
	for i := range raw {
		raw[i] = float64(i + 1)
	}
	require.NoError(t, tn.SetRawElem(raw, true))

	combined, err := tn.CombineBond(1, 2, 100)
	require.NoError(t, err)
	require.Equal(t, 1, combined.RNum)
	require.Equal(t, 2, combined.BondNum())
	require.Equal(t, tn.ElemNum(), combined.ElemNum())
}
