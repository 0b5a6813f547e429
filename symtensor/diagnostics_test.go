package symtensor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/symtensor"
)

func TestPrintRawElemContainsEveryValue(t *testing.T) {
	tn := symtensor.New([]bond.Bond{trivialBond(bond.In, 2), trivialBond(bond.Out, 2)}, 1, block.Real)
	require.NoError(t, tn.SetLabel([]int{0, 1}))
	tn.Name = "M"
	require.NoError(t, tn.SetRawElem([]float64{1, 2, 3, 4}, true))

	out := tn.PrintRawElem()
	require.True(t, strings.HasPrefix(out, "M: 2x2"))
	require.Contains(t, out, "1 2")
	require.Contains(t, out, "3 4")
}
