package symtensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/qnum"
	"github.com/qsymm/symten/symtensor"
)

func fermiBond(dir bond.Direction) bond.Bond {
	return bond.New(dir, []bond.State{
		{Charge: qnum.NewU1Fermionic(1), Mult: 1},
		{Charge: qnum.NewU1Fermionic(-1), Mult: 1},
	})
}

func TestExSwapAppliedTwiceIsIdentity(t *testing.T) {
	row0 := fermiBond(bond.In)
	row1 := fermiBond(bond.In)
	col := row0.Reverse().Combine(row1.Reverse()) // Dir == Out, dim matches row0.Dim()*row1.Dim()
	tn := symtensor.New([]bond.Bond{row0, row1, col}, 2, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1, 2}))

	dense := make([]float64, 2*2*4)
	for i := range dense {
		dense[i] = float64(i + 1)
	}
	require.NoError(t, tn.SetRawElem(dense, false))

	once, err := tn.ExSwap(0, 1)
	require.NoError(t, err)
	twice, err := once.ExSwap(1, 0)
	require.NoError(t, err)

	require.Equal(t, tn.GetRawElem(), twice.GetRawElem())
}

func TestAddGateFlipsSignOnFermionicState(t *testing.T) {
	row := fermiBond(bond.In)
	col := fermiBond(bond.Out)
	tn := symtensor.New([]bond.Bond{row, col}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1}))
	require.NoError(t, tn.SetRawElem([]float64{1, 0, 0, 1}, false))

	gated, err := tn.AddGate([]int{0})
	require.NoError(t, err)

	raw := gated.GetRawElem()
	require.InDelta(t, -1, raw[0], 1e-12) // every state of this bond is fermionic, so (0,0) always flips
}
