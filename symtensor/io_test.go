package symtensor_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/symtensor"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	b0 := bond.New(bond.In, []bond.State{{Charge: u1(1), Mult: 2}, {Charge: u1(-1), Mult: 2}})
	b1 := bond.New(bond.Out, []bond.State{{Charge: u1(-1), Mult: 2}, {Charge: u1(1), Mult: 2}})
	tn := symtensor.New([]bond.Bond{b0, b1}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{7, 9}))
	tn.Name = "probe"

	raw := make([]float64, 16)
	for i := range raw {
		// Only positions whose row and column charges agree may be non-zero.
		if (i/4 < 2) == (i%4 < 2) {
			raw[i] = float64(i+1) * 0.5
		}
	}
	require.NoError(t, tn.SetRawElem(raw, true))

	var buf bytes.Buffer
	require.NoError(t, tn.Save(&buf, symtensor.U1Codec{}))

	back, err := symtensor.Load(&buf, symtensor.U1Codec{})
	require.NoError(t, err)

	require.Equal(t, tn.Name, back.Name)
	require.Equal(t, tn.RNum, back.RNum)
	require.Equal(t, tn.Labels, back.Labels)
	require.Equal(t, tn.BondNum(), back.BondNum())
	require.Equal(t, raw, back.GetRawElem())
}

func TestSaveLoadRoundTripRankZero(t *testing.T) {
	row := trivialBond(bond.In, 3)
	col := trivialBond(bond.Out, 3)
	tn := symtensor.New([]bond.Bond{row, col}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1}))
	require.NoError(t, tn.SetRawElem([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, true))

	scalar, err := tn.PartialTrace(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0, scalar.BondNum())

	var buf bytes.Buffer
	require.NoError(t, scalar.Save(&buf, symtensor.U1Codec{}))

	back, err := symtensor.Load(&buf, symtensor.U1Codec{})
	require.NoError(t, err)
	require.Equal(t, 0, back.BondNum())

	var want, got float64
	for _, blk := range scalar.Blocks {
		want = blk.At(0, 0)
	}
	for _, blk := range back.Blocks {
		got = blk.At(0, 0)
	}
	require.InDelta(t, want, got, 1e-12)
}
