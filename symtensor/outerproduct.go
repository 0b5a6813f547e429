package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/qnum"
)

// OuterProduct forms the direct (Kronecker) product of a and b: a tensor
// whose bonds are a's In bonds, then b's In bonds, then a's Out bonds, then
// b's Out bonds, with every element the product of the corresponding a and
// b elements (spec §4.5 construct step 4: disjoint trees, sharing no
// label, are combined by outer product rather than contraction). a and b
// must share no label.
func OuterProduct(a, b *SymTensor) (*SymTensor, error) {
	if a.Kind != b.Kind {
		return nil, symten.New(symten.ScalarKindMismatch, "outerProduct: mixed real/complex tensors")
	}
	bset := make(map[int]bool, len(b.Labels))
	for _, l := range b.Labels {
		bset[l] = true
	}
	for _, l := range a.Labels {
		if bset[l] {
			return nil, symten.New(symten.LabelError, "outerProduct: operands share a label")
		}
	}

	newBonds := make([]bond.Bond, 0, len(a.Bonds)+len(b.Bonds))
	newBonds = append(newBonds, a.Bonds[:a.RNum]...)
	newBonds = append(newBonds, b.Bonds[:b.RNum]...)
	newBonds = append(newBonds, a.Bonds[a.RNum:]...)
	newBonds = append(newBonds, b.Bonds[b.RNum:]...)

	newLabels := make([]int, 0, len(a.Labels)+len(b.Labels))
	newLabels = append(newLabels, a.Labels[:a.RNum]...)
	newLabels = append(newLabels, b.Labels[:b.RNum]...)
	newLabels = append(newLabels, a.Labels[a.RNum:]...)
	newLabels = append(newLabels, b.Labels[b.RNum:]...)
	newRNum := a.RNum + b.RNum

	var out *SymTensor
	if len(newBonds) == 0 {
		out = newFromZero(newBonds, 0, a.Kind, a.zero)
	} else {
		out = New(newBonds, newRNum, a.Kind)
	}
	out.Labels = newLabels
	out.Name = a.Name + "x" + b.Name

	for qa, blkA := range a.Blocks {
		for qb, blkB := range b.Blocks {
			qc := qa.Add(qb)
			outBlk, ok := out.Blocks[qc]
			if !ok {
				continue
			}
			scatterOuterBlock(out, a, b, qa, qb, blkA, blkB, outBlk)
		}
	}
	out.Status |= HaveElem
	return out, nil
}

func entriesForCharge(p *Partition, q qnum.Qnum) []Entry {
	idx := p.ByCharge[q]
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = p.Entries[j]
	}
	return out
}

// scatterOuterBlock fills outBlk's slice coming from the (qa, qb) sector:
// every (row, col) of blkA combined with every (row, col) of blkB, located
// in out's row/col partitions via the full per-bond index vectors (out's
// row bonds are exactly a's row bonds followed by b's, so the two operands'
// full index vectors concatenate directly).
func scatterOuterBlock(out, a, b *SymTensor, qa, qb qnum.Qnum, blkA, blkB, outBlk *block.Block) {
	for _, reA := range entriesForCharge(a.rowPart, qa) {
		for _, reB := range entriesForCharge(b.rowPart, qb) {
			for roA := 0; roA < reA.Width; roA++ {
				for roB := 0; roB < reB.Width; roB++ {
					fullRow := append(append([]int(nil), a.rowPart.FullIndices(reA, roA)...), b.rowPart.FullIndices(reB, roB)...)
					rowLin := out.rowPart.IndexFor(fullRow)
					outRe, outRo := out.rowPart.EntryForIndex(rowLin)

					for _, ceA := range entriesForCharge(a.colPart, qa) {
						for _, ceB := range entriesForCharge(b.colPart, qb) {
							for coA := 0; coA < ceA.Width; coA++ {
								for coB := 0; coB < ceB.Width; coB++ {
									fullCol := append(append([]int(nil), a.colPart.FullIndices(ceA, coA)...), b.colPart.FullIndices(ceB, coB)...)
									colLin := out.colPart.IndexFor(fullCol)
									outCe, outCo := out.colPart.EntryForIndex(colLin)

									ai, aj := reA.BlockOffset+roA, ceA.BlockOffset+coA
									bi, bj := reB.BlockOffset+roB, ceB.BlockOffset+coB
									oi, oj := outRe.BlockOffset+outRo, outCe.BlockOffset+outCo
									if out.Kind == block.Complex {
										outBlk.SetC(oi, oj, blkA.AtC(ai, aj)*blkB.AtC(bi, bj))
									} else {
										outBlk.Set(oi, oj, blkA.At(ai, aj)*blkB.At(bi, bj))
									}
								}
							}
						}
					}
				}
			}
		}
	}
}
