// Package bond implements the ordered (charge, multiplicity) index carried
// by each leg of a SymTensor.
package bond

import "github.com/qsymm/symten/qnum"

// Direction is the orientation of a bond: IN bonds are summed with a
// positive sign when computing a block's charge, OUT bonds with a negative
// sign (equivalently, an OUT bond's states carry the negated charge).
type Direction uint8

const (
	In Direction = iota
	Out
)

// State is one (charge, multiplicity) entry of a bond.
type State struct {
	Charge qnum.Qnum
	Mult   int
}

// Bond is an ordered list of (charge, multiplicity) states plus a direction.
// States are always held in canonical form: grouped by distinct charge and
// sorted ascending by the charge's total order. Canonicalisation is what
// makes SymTensor's block-charge bookkeeping well defined (spec §4.1).
type Bond struct {
	Dir    Direction
	States []State
}

// New constructs a Bond from possibly-unordered, possibly-duplicated states,
// canonicalising them.
func New(dir Direction, states []State) Bond {
	b := Bond{Dir: dir, States: append([]State(nil), states...)}
	b.canonicalize()
	return b
}

// Dim returns the bond's total dimension: the sum of its multiplicities.
func (b Bond) Dim() int {
	d := 0
	for _, s := range b.States {
		d += s.Mult
	}
	return d
}

// canonicalize groups entries with identical charge (summing multiplicity)
// and sorts the result ascending by charge.
func (b *Bond) canonicalize() {
	merged := make([]State, 0, len(b.States))
	for _, s := range b.States {
		found := false
		for i := range merged {
			if merged[i].Charge.Equal(s.Charge) {
				merged[i].Mult += s.Mult
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, s)
		}
	}
	qs := make([]qnum.Qnum, len(merged))
	for i, s := range merged {
		qs[i] = s.Charge
	}
	qnum.Sort(qs)
	sorted := make([]State, len(merged))
	for i, q := range qs {
		for _, s := range merged {
			if s.Charge.Equal(q) {
				sorted[i] = State{Charge: q, Mult: s.Mult}
				break
			}
		}
	}
	b.States = sorted
}

// Reverse returns the bond with its direction flipped and every charge
// negated; multiplicities are unchanged.
func (b Bond) Reverse() Bond {
	out := Bond{Dir: otherDir(b.Dir), States: make([]State, len(b.States))}
	for i, s := range b.States {
		out.States[i] = State{Charge: s.Charge.Negate(), Mult: s.Mult}
	}
	out.canonicalize()
	return out
}

func otherDir(d Direction) Direction {
	if d == In {
		return Out
	}
	return In
}

// Combine returns the direct-product bond of b and other: every pair of
// states contributes a state whose charge is the pairwise sum and whose
// multiplicity is the product, canonicalised. The result's direction is the
// direction of b (the first listed bond per spec §4.3.7 combineBond).
func (b Bond) Combine(other Bond) Bond {
	states := make([]State, 0, len(b.States)*len(other.States))
	for _, s1 := range b.States {
		for _, s2 := range other.States {
			charge := s1.Charge.Add(adjustedCharge(b.Dir, other.Dir, s2.Charge))
			states = append(states, State{Charge: charge, Mult: s1.Mult * s2.Mult})
		}
	}
	return New(b.Dir, states)
}

// adjustedCharge negates other's charge when combining bonds of opposite
// direction, so the combined state list is expressed consistently in the
// direction of the first bond.
func adjustedCharge(dirA, dirB Direction, c qnum.Qnum) qnum.Qnum {
	if dirA == dirB {
		return c
	}
	return c.Negate()
}

// Equal reports plain structural equality: same direction and the same
// (charge, multiplicity) sequence.
func (b Bond) Equal(other Bond) bool {
	if b.Dir != other.Dir || len(b.States) != len(other.States) {
		return false
	}
	for i := range b.States {
		if !b.States[i].Charge.Equal(other.States[i].Charge) || b.States[i].Mult != other.States[i].Mult {
			return false
		}
	}
	return true
}

// CompatibleFor reports whether b and other can be contracted against each
// other: opposite direction, and equal state sequences once other's charges
// are negated (spec §4.1).
func (b Bond) CompatibleFor(other Bond) bool {
	if b.Dir == other.Dir {
		return false
	}
	return b.Equal(other.Reverse())
}

// StateGroup returns the canonical state group a given local index (in
// [0, Dim())) falls into: the group's charge, its index within b.States,
// and the element's offset within that group (in [0, mult)).
func (b Bond) StateGroup(localIdx int) (charge qnum.Qnum, groupIdx, offset int) {
	remaining := localIdx
	for i, s := range b.States {
		if remaining < s.Mult {
			return s.Charge, i, remaining
		}
		remaining -= s.Mult
	}
	panic("bond: StateGroup index out of range")
}

// GroupStart returns the starting local index of the groupIdx-th state
// group (the sum of multiplicities of all preceding groups).
func (b Bond) GroupStart(groupIdx int) int {
	start := 0
	for i := 0; i < groupIdx; i++ {
		start += b.States[i].Mult
	}
	return start
}

// Clone returns an independent copy.
func (b Bond) Clone() Bond {
	out := Bond{Dir: b.Dir, States: make([]State, len(b.States))}
	copy(out.States, b.States)
	return out
}
