package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
)

// PartialTrace sums over the matched sub-indices of two compatible bonds
// of the same tensor (opposite direction, equal state sequences after
// charge negation), returning a tensor with two fewer bonds (spec
// §4.3.4). la and lb name the traced bonds; either may be a row or a
// column bond, but removing both must still leave the remaining row
// bonds contiguous at the front and column bonds at the back, which holds
// automatically since traced bonds are simply dropped from their existing
// side.
func (t *SymTensor) PartialTrace(la, lb int) (*SymTensor, error) {
	posA := t.LabelIndex(la)
	posB := t.LabelIndex(lb)
	if posA < 0 || posB < 0 {
		return nil, symten.New(symten.LabelError, "partialTrace: unknown label")
	}
	if !t.Bonds[posA].CompatibleFor(t.Bonds[posB]) {
		return nil, symten.New(symten.BondMismatch, "partialTrace: bonds not compatible for trace")
	}

	n := len(t.Bonds)
	keep := make([]int, 0, n-2)
	for i := 0; i < n; i++ {
		if i != posA && i != posB {
			keep = append(keep, i)
		}
	}
	newRNum := 0
	for _, i := range keep {
		if i < t.RNum {
			newRNum++
		}
	}

	newBonds := make([]bond.Bond, len(keep))
	newLabels := make([]int, len(keep))
	for j, i := range keep {
		newBonds[j] = t.Bonds[i].Clone()
		newLabels[j] = t.Labels[i]
	}

	var out *SymTensor
	if len(newBonds) == 0 {
		out = newFromZero(newBonds, 0, t.Kind, t.zero)
	} else {
		out = New(newBonds, newRNum, t.Kind)
	}
	out.Labels = newLabels
	out.Name = t.Name

	laBond, lbBond := t.Bonds[posA], t.Bonds[posB]

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
					if !tracedMatch(laBond, lbBond, full[posA], full[posB]) {
						continue
					}
					remaining := make([]int, 0, len(keep))
					for _, i := range keep {
						remaining = append(remaining, full[i])
					}
					v := blockValueAt(t.Kind, blk, re.BlockOffset+ro, ce.BlockOffset+co)
					accumulate(out, remaining, newRNum, v)
				}
			}
		}
	}
	out.Status |= HaveElem
	return out, nil
}

// tracedMatch reports whether local index va of bond a and vb of bond b
// correspond to the same physical state, given a.CompatibleFor(b).
func tracedMatch(a, b bond.Bond, va, vb int) bool {
	chargeA, _, offA := a.StateGroup(va)
	chargeB, _, offB := b.StateGroup(vb)
	return offA == offB && chargeB.Equal(chargeA.Negate())
}

func blockValueAt(kind block.Kind, blk *block.Block, i, j int) complex128 {
	if kind == block.Complex {
		return blk.AtC(i, j)
	}
	return complex(blk.At(i, j), 0)
}

// accumulate adds v into out's block at the position described by a full
// per-bond local index list (in out's own bond order).
func accumulate(out *SymTensor, idx []int, rNum int, v complex128) {
	rowIdx := idx[:rNum]
	colIdx := idx[rNum:]
	rowLin := out.rowPart.IndexFor(rowIdx)
	colLin := out.colPart.IndexFor(colIdx)
	re, ro := out.rowPart.EntryForIndex(rowLin)
	ce, co := out.colPart.EntryForIndex(colLin)
	if !re.Charge.Equal(ce.Charge) {
		return
	}
	blk, ok := out.Blocks[re.Charge]
	if !ok {
		return
	}
	i, j := re.BlockOffset+ro, ce.BlockOffset+co
	if out.Kind == block.Complex {
		blk.SetC(i, j, blk.AtC(i, j)+v)
	} else {
		blk.Set(i, j, blk.At(i, j)+real(v))
	}
}
