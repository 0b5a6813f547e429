package symtensor

import (
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/qnum"
)

// Entry is one state-group combination of a row (or column) partition: the
// rectangular product of one state group per bond, sharing a single
// charge, described without enumerating individual elements (spec §3's
// Qidx bookkeeping). With several bonds its elements are in general not a
// contiguous run of the full dense axis space; FullIndices and IndexFor
// map an element to its position there.
type Entry struct {
	Charge      qnum.Qnum
	GroupIdx    []int // chosen state-group index, per bond
	StartOffset int    // start offset in the full dense axis space
	Width       int    // product of the chosen groups' multiplicities
	BlockOffset int    // offset reserved for this entry within blocks[Charge]
}

// Partition describes how a list of bonds (the row bonds or the column
// bonds of a SymTensor) decomposes the full dense axis space into
// charge-labelled runs — the auxiliary Qidx maps of spec §3.
type Partition struct {
	Bonds     []bond.Bond
	Dims      []int
	Strides   []int
	Entries   []Entry
	ByCharge  map[qnum.Qnum][]int // entry indices sharing a charge, encounter order
	ChargeDim map[qnum.Qnum]int   // total width per charge
	Dim       int
}

// zeroOf derives the additive identity of an abelian group from any
// element of it (c + (-c) == 0), avoiding a dedicated Zero() method in the
// Qnum contract (spec treats Qnum as a minimal external collaborator).
func zeroOf(c qnum.Qnum) qnum.Qnum { return c.Add(c.Negate()) }

// buildPartition constructs the Partition for an ordered list of bonds.
// zero is the group identity, used only when bonds is empty (a rank-0 row
// or column group, e.g. a fully row-ward or fully column-ward tensor).
func buildPartition(bonds []bond.Bond, zero qnum.Qnum) *Partition {
	n := len(bonds)
	dims := make([]int, n)
	for i, b := range bonds {
		dims[i] = b.Dim()
	}
	strides := make([]int, n)
	if n > 0 {
		strides[n-1] = 1
		for i := n - 2; i >= 0; i-- {
			strides[i] = strides[i+1] * dims[i+1]
		}
	}

	p := &Partition{
		Bonds:     bonds,
		Dims:      dims,
		Strides:   strides,
		ByCharge:  make(map[qnum.Qnum][]int),
		ChargeDim: make(map[qnum.Qnum]int),
	}

	if n == 0 {
		p.Entries = []Entry{{Charge: zero, GroupIdx: nil, StartOffset: 0, Width: 1}}
		p.Dim = 1
	} else {
		groupCounts := make([]int, n)
		for i, b := range bonds {
			groupCounts[i] = len(b.States)
		}
		groupIdx := make([]int, n)
		var entries []Entry
		for {
			charge := bonds[0].States[groupIdx[0]].Charge
			start := bonds[0].GroupStart(groupIdx[0]) * strides[0]
			width := bonds[0].States[groupIdx[0]].Mult
			for i := 1; i < n; i++ {
				s := bonds[i].States[groupIdx[i]]
				charge = charge.Add(s.Charge)
				start += bonds[i].GroupStart(groupIdx[i]) * strides[i]
				width *= s.Mult
			}
			entries = append(entries, Entry{
				Charge:      charge,
				GroupIdx:    append([]int(nil), groupIdx...),
				StartOffset: start,
				Width:       width,
			})

			// odometer increment, bond n-1 fastest.
			i := n - 1
			for i >= 0 {
				groupIdx[i]++
				if groupIdx[i] < groupCounts[i] {
					break
				}
				groupIdx[i] = 0
				i--
			}
			if i < 0 {
				break
			}
		}
		p.Entries = entries
		total := 0
		for _, e := range entries {
			total += e.Width
		}
		p.Dim = total
	}

	for i, e := range p.Entries {
		p.ByCharge[e.Charge] = append(p.ByCharge[e.Charge], i)
		p.Entries[i].BlockOffset = p.ChargeDim[e.Charge]
		p.ChargeDim[e.Charge] += e.Width
	}

	return p
}

// Charges returns the distinct charges present, in ascending Qnum order.
func (p *Partition) Charges() []qnum.Qnum {
	qs := make([]qnum.Qnum, 0, len(p.ByCharge))
	for q := range p.ByCharge {
		qs = append(qs, q)
	}
	qnum.Sort(qs)
	return qs
}

// EntryForIndex returns the Entry containing the given linear index into
// the full dense axis space, plus the offset within that entry.
func (p *Partition) EntryForIndex(linear int) (Entry, int) {
	if linear < 0 || linear >= p.Dim {
		panic("symtensor: index out of range for partition")
	}
	entry, offset := 0, 0
	for i, b := range p.Bonds {
		_, g, off := b.StateGroup((linear / p.Strides[i]) % p.Dims[i])
		entry = entry*len(b.States) + g
		offset = offset*b.States[g].Mult + off
	}
	return p.Entries[entry], offset
}

// FullIndices decomposes an entry + local offset (0 <= offset < e.Width)
// into one full per-bond local index for each bond in the partition.
func (p *Partition) FullIndices(e Entry, offset int) []int {
	idx := make([]int, len(p.Bonds))
	for i, b := range p.Bonds {
		mult := b.States[e.GroupIdx[i]].Mult
		// strides within the entry's own sub-space use the same relative
		// ordering as the partition's bond-major convention.
		sub := subStride(p.Bonds, e.GroupIdx, i)
		local := (offset / sub) % mult
		idx[i] = b.GroupStart(e.GroupIdx[i]) + local
	}
	return idx
}

// subStride returns the stride of bond i within the mixed-radix space of
// an entry's own multiplicities (bond 0 most significant).
func subStride(bonds []bond.Bond, groupIdx []int, i int) int {
	stride := 1
	for j := i + 1; j < len(bonds); j++ {
		stride *= bonds[j].States[groupIdx[j]].Mult
	}
	return stride
}

// IndexFor computes the linear index (in the full dense axis space) given
// one full per-bond local index for every bond in the partition.
func (p *Partition) IndexFor(idx []int) int {
	lin := 0
	for i, v := range idx {
		lin += v * p.Strides[i]
	}
	return lin
}
