package symtensor

import (
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
)

// Transpose swaps the IN/OUT role of every bond (negating every charge)
// and transposes every block's matrix. Applying Transpose twice returns
// the original tensor (spec §4.3.6 and §8's involution property), since
// negating a charge twice and transposing a matrix twice are both
// identities.
func (t *SymTensor) Transpose() *SymTensor {
	n := len(t.Bonds)
	oldColCount := n - t.RNum
	newBonds := make([]bond.Bond, n)
	newLabels := make([]int, n)
	for i := 0; i < oldColCount; i++ {
		newBonds[i] = t.Bonds[t.RNum+i].Reverse()
		newLabels[i] = t.Labels[t.RNum+i]
	}
	for i := 0; i < t.RNum; i++ {
		newBonds[oldColCount+i] = t.Bonds[i].Reverse()
		newLabels[oldColCount+i] = t.Labels[i]
	}

	out := New(newBonds, oldColCount, t.Kind)
	out.Labels = newLabels
	out.Name = t.Name
	out.Status = t.Status

	for q, blk := range t.Blocks {
		nq := q.Negate()
		nblk, ok := out.Blocks[nq]
		if !ok {
			continue
		}
		if nblk.Rows != blk.Cols || nblk.Cols != blk.Rows {
			continue
		}
		for i := 0; i < blk.Rows; i++ {
			for j := 0; j < blk.Cols; j++ {
				if t.Kind == block.Complex {
					nblk.SetC(j, i, blk.AtC(i, j))
				} else {
					nblk.Set(j, i, blk.At(i, j))
				}
			}
		}
	}
	out.Status |= HaveElem
	return out
}
