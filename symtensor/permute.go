package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
)

// Permute returns a new tensor with bonds reordered to newLabels and the
// row/column split moved to newRNum, preserving every stored element.
//
// Reordering bonds can move a bond across the row/column boundary. Since a
// row bond must carry direction In and a column bond direction Out (the
// invariant New enforces), a bond that crosses sides has its charges
// negated via Bond.Reverse so that the row-charge and column-charge sums
// used to key a block stay mutually consistent (spec §4.3's q_row/q_col
// rule). This implementation always takes the general, data-moving path;
// it does not special-case the identity permutation or column-only/
// row-only splits the source optimizes for.
func (t *SymTensor) Permute(newLabels []int, newRNum int) (*SymTensor, error) {
	n := len(t.Bonds)
	if len(newLabels) != n {
		return nil, symten.New(symten.LabelError, "permute: wrong number of labels")
	}
	if newRNum < 0 || newRNum > n {
		return nil, symten.New(symten.LabelError, "permute: rNum out of range")
	}

	oldPos := make(map[int]int, n)
	for i, l := range t.Labels {
		oldPos[l] = i
	}
	perm := make([]int, n) // perm[newIdx] = oldIdx
	for i, l := range newLabels {
		op, ok := oldPos[l]
		if !ok {
			return nil, symten.New(symten.LabelError, "permute: unknown label")
		}
		perm[i] = op
	}

	newBonds := make([]bond.Bond, n)
	reversed := make([]bool, n)
	for i := 0; i < n; i++ {
		b := t.Bonds[perm[i]].Clone()
		wantDir := bond.In
		if i >= newRNum {
			wantDir = bond.Out
		}
		if b.Dir != wantDir {
			b = b.Reverse()
			reversed[i] = true
		}
		newBonds[i] = b
	}

	out := New(newBonds, newRNum, t.Kind)
	out.Name = t.Name
	out.Labels = append([]int(nil), newLabels...)
	out.Status = t.Status

	for _, re := range t.rowPart.Entries {
		for _, ce := range t.colPart.Entries {
			if !re.Charge.Equal(ce.Charge) {
				continue
			}
			oldBlk, ok := t.Blocks[re.Charge]
			if !ok {
				continue
			}
			for ro := 0; ro < re.Width; ro++ {
				for co := 0; co < ce.Width; co++ {
					oldFull := append(t.rowPart.FullIndices(re, ro), t.colPart.FullIndices(ce, co)...)
					newFull := make([]int, n)
					for i := 0; i < n; i++ {
						oi := perm[i]
						if reversed[i] {
							newFull[i] = mapIndexAcrossReverse(t.Bonds[oi], newBonds[i], oldFull[oi])
						} else {
							newFull[i] = oldFull[oi]
						}
					}
					scatterPermuted(out, newFull, oldBlk, re, ro, ce, co)
				}
			}
		}
	}

	out.Status |= t.Status & HaveElem
	return out, nil
}

// scatterPermuted places the single element at (re.BlockOffset+ro,
// ce.BlockOffset+co) of oldBlk into out's layout at the position described
// by newFull (one local index per new bond, in new bond order).
func scatterPermuted(out *SymTensor, newFull []int, oldBlk *block.Block, re Entry, ro int, ce Entry, co int) {
	rowIdx := newFull[:out.RNum]
	colIdx := newFull[out.RNum:]
	rowLin := out.rowPart.IndexFor(rowIdx)
	colLin := out.colPart.IndexFor(colIdx)
	rowEntry, rowOff := out.rowPart.EntryForIndex(rowLin)
	colEntry, colOff := out.colPart.EntryForIndex(colLin)
	if !rowEntry.Charge.Equal(colEntry.Charge) {
		return
	}
	blk, ok := out.Blocks[rowEntry.Charge]
	if !ok {
		return
	}
	if out.Kind == block.Complex {
		blk.SetC(rowEntry.BlockOffset+rowOff, colEntry.BlockOffset+colOff, oldBlk.AtC(re.BlockOffset+ro, ce.BlockOffset+co))
	} else {
		blk.Set(rowEntry.BlockOffset+rowOff, colEntry.BlockOffset+colOff, oldBlk.At(re.BlockOffset+ro, ce.BlockOffset+co))
	}
}

// mapIndexAcrossReverse translates a local index of b into the
// corresponding local index of rev == b.Reverse(): reversal only negates
// charges and re-sorts state groups, so the (charge, offset-within-group)
// pair identifies the same physical state on both sides.
func mapIndexAcrossReverse(b, rev bond.Bond, localIdx int) int {
	charge, _, offset := b.StateGroup(localIdx)
	target := charge.Negate()
	for i, s := range rev.States {
		if s.Charge.Equal(target) {
			return rev.GroupStart(i) + offset
		}
	}
	panic("symtensor: reversed bond missing expected charge group")
}
