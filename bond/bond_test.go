package bond_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/qnum"
)

func u1(c int64) qnum.Qnum { return qnum.NewU1(c) }

func TestCanonicalization(t *testing.T) {
	b := bond.New(bond.In, []bond.State{
		{Charge: u1(2), Mult: 1},
		{Charge: u1(-1), Mult: 3},
		{Charge: u1(2), Mult: 2},
	})
	require.Len(t, b.States, 2)
	require.Equal(t, u1(-1), b.States[0].Charge)
	require.Equal(t, 3, b.States[0].Mult)
	require.Equal(t, u1(2), b.States[1].Charge)
	require.Equal(t, 3, b.States[1].Mult)
	require.Equal(t, 6, b.Dim())
}

func TestReverse(t *testing.T) {
	b := bond.New(bond.In, []bond.State{{Charge: u1(1), Mult: 2}, {Charge: u1(-2), Mult: 3}})
	r := b.Reverse()
	require.Equal(t, bond.Out, r.Dir)
	require.Equal(t, u1(-1), r.States[0].Charge)
	require.Equal(t, u1(2), r.States[1].Charge)
}

func TestCompatibleFor(t *testing.T) {
	in := bond.New(bond.In, []bond.State{{Charge: u1(1), Mult: 2}, {Charge: u1(-1), Mult: 2}})
	out := bond.New(bond.Out, []bond.State{{Charge: u1(-1), Mult: 2}, {Charge: u1(1), Mult: 2}})
	require.True(t, in.CompatibleFor(out))
	require.False(t, in.CompatibleFor(in))
}

func TestCombine(t *testing.T) {
	a := bond.New(bond.In, []bond.State{{Charge: u1(0), Mult: 2}, {Charge: u1(1), Mult: 1}})
	b := bond.New(bond.In, []bond.State{{Charge: u1(0), Mult: 1}, {Charge: u1(1), Mult: 1}})
	c := a.Combine(b)
	require.Equal(t, bond.In, c.Dir)
	require.Equal(t, a.Dim()*b.Dim(), c.Dim())
}
