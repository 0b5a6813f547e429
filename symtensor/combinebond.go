package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/bond"
)

// CombineBond returns a new tensor in which two of t's own bonds, named by
// label, are merged into a single bond carrying newLabel. The two bonds
// must be on the same side (row or column); combining across the
// row/column boundary is not supported, matching Bond.Combine itself
// taking exactly two operands (spec §4.1). The combined bond is placed
// after the remaining bonds of that side. Combining more than two bonds
// at once is done by chaining calls.
func (t *SymTensor) CombineBond(labelA, labelB, newLabel int) (*SymTensor, error) {
	posA := t.LabelIndex(labelA)
	posB := t.LabelIndex(labelB)
	if posA < 0 || posB < 0 {
		return nil, symten.New(symten.LabelError, "combineBond: unknown label")
	}
	isRowA := posA < t.RNum
	isRowB := posB < t.RNum
	if isRowA != isRowB {
		return nil, symten.New(symten.BondMismatch, "combineBond: bonds must be on the same side")
	}

	combined := t.Bonds[posA].Combine(t.Bonds[posB])

	n := len(t.Bonds)
	var rowBonds, colBonds []bond.Bond
	var rowLabels, colLabels []int
	for i := 0; i < n; i++ {
		if i == posA || i == posB {
			continue
		}
		if i < t.RNum {
			rowBonds = append(rowBonds, t.Bonds[i].Clone())
			rowLabels = append(rowLabels, t.Labels[i])
		} else {
			colBonds = append(colBonds, t.Bonds[i].Clone())
			colLabels = append(colLabels, t.Labels[i])
		}
	}
	if isRowA {
		rowBonds = append(rowBonds, combined)
		rowLabels = append(rowLabels, newLabel)
	} else {
		colBonds = append(colBonds, combined)
		colLabels = append(colLabels, newLabel)
	}
	newRNum := len(rowBonds)
	newBonds := append(rowBonds, colBonds...)
	newLabels := append(rowLabels, colLabels...)

	out := New(newBonds, newRNum, t.Kind)
	out.Labels = newLabels
	out.Name = t.Name

	bondA, bondB := t.Bonds[posA], t.Bonds[posB]

	for _, re := range t.rowPart.Entries {
		for _, ce := range t.colPart.Entries {
			if !re.Charge.Equal(ce.Charge) {
				continue
			}
			blk, ok := t.Blocks[re.Charge]
			if !ok {
				continue
			}
			for ro := 0; ro < re.Width; ro++ {
				for co := 0; co < ce.Width; co++ {
					full := append(t.rowPart.FullIndices(re, ro), t.colPart.FullIndices(ce, co)...)
					combinedLocal := combinedIndex(bondA, bondB, combined, full[posA], full[posB])

					var rowFull, colFull []int
					for i := 0; i < n; i++ {
						if i == posA || i == posB {
							continue
						}
						if i < t.RNum {
							rowFull = append(rowFull, full[i])
						} else {
							colFull = append(colFull, full[i])
						}
					}
					if isRowA {
						rowFull = append(rowFull, combinedLocal)
					} else {
						colFull = append(colFull, combinedLocal)
					}
					newFull := append(rowFull, colFull...)

					v := blockValueAt(t.Kind, blk, re.BlockOffset+ro, ce.BlockOffset+co)
					accumulate(out, newFull, newRNum, v)
				}
			}
		}
	}
	out.Status |= HaveElem
	return out, nil
}

// combinedIndex computes the local index into Combine(a,b) corresponding
// to local index va of a and vb of b, by reproducing the pre-
// canonicalisation nested-loop order Bond.Combine itself uses (a's state
// group outer, b's inner) and then locating the offset within the
// (possibly charge-merged) destination group of the canonicalised result.
func combinedIndex(a, b, combined bond.Bond, va, vb int) int {
	chargeA, groupA, offA := a.StateGroup(va)
	chargeB, groupB, offB := b.StateGroup(vb)
	total := chargeA.Add(chargeB)

	destStart := 0
	for _, s := range combined.States {
		if s.Charge.Equal(total) {
			break
		}
		destStart += s.Mult
	}

	within := 0
	for ga := 0; ga < groupA; ga++ {
		for gb := 0; gb < len(b.States); gb++ {
			if a.States[ga].Charge.Add(b.States[gb].Charge).Equal(total) {
				within += a.States[ga].Mult * b.States[gb].Mult
			}
		}
	}
	sameGroupMatch := 0
	matchingBeforeGroupB := 0
	for gb := 0; gb < len(b.States); gb++ {
		if chargeA.Add(b.States[gb].Charge).Equal(total) {
			sameGroupMatch += b.States[gb].Mult
			if gb < groupB {
				matchingBeforeGroupB += b.States[gb].Mult
			}
		}
	}
	within += offA*sameGroupMatch + matchingBeforeGroupB + offB

	return destStart + within
}
