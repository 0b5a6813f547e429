package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
)

// Contract contracts every label shared between a and b, producing a new
// tensor whose bonds are a's remaining row-ward bonds followed by b's
// remaining column-ward bonds (spec §4.3.3). Shared labels must name
// bonds that are compatible for contraction (opposite direction, equal
// state sequences after negating one side) or the call fails with
// BondMismatch.
func Contract(a, b *SymTensor) (*SymTensor, error) {
	if a.Kind != b.Kind {
		return nil, symten.New(symten.ScalarKindMismatch, "contract: mixed real/complex tensors")
	}

	shared := sharedLabels(a, b)
	if len(shared) == 0 {
		return nil, symten.New(symten.BondMismatch, "contract: no shared labels between operands")
	}

	for _, l := range shared {
		ai := a.LabelIndex(l)
		bi := b.LabelIndex(l)
		if !a.Bonds[ai].CompatibleFor(b.Bonds[bi]) {
			return nil, symten.New(symten.BondMismatch, "contract: incompatible bonds for shared label")
		}
	}

	aOrder, aRNum := aLabelOrder(a, shared)
	bOrder, bRNum := bLabelOrder(b, shared)

	a2, err := a.Permute(aOrder, aRNum)
	if err != nil {
		return nil, err
	}
	b2, err := b.Permute(bOrder, bRNum)
	if err != nil {
		return nil, err
	}

	return assembleContract(a2, b2)
}

// sharedLabels returns the labels present in both a and b, in a's order.
func sharedLabels(a, b *SymTensor) []int {
	bset := make(map[int]bool, len(b.Labels))
	for _, l := range b.Labels {
		bset[l] = true
	}
	var out []int
	for _, l := range a.Labels {
		if bset[l] {
			out = append(out, l)
		}
	}
	return out
}

// aLabelOrder returns a's full label list reordered so the shared labels
// are trailing (becoming column bonds), plus the resulting rNum.
func aLabelOrder(a *SymTensor, shared []int) ([]int, int) {
	sharedSet := make(map[int]bool, len(shared))
	for _, l := range shared {
		sharedSet[l] = true
	}
	var kept []int
	for _, l := range a.Labels {
		if !sharedSet[l] {
			kept = append(kept, l)
		}
	}
	return append(kept, shared...), len(kept)
}

// bLabelOrder returns b's full label list reordered so the shared labels
// are leading (becoming row bonds, in the same order as aLabelOrder's
// trailing shared labels), plus the resulting rNum.
func bLabelOrder(b *SymTensor, shared []int) ([]int, int) {
	sharedSet := make(map[int]bool, len(shared))
	for _, l := range shared {
		sharedSet[l] = true
	}
	var kept []int
	for _, l := range b.Labels {
		if !sharedSet[l] {
			kept = append(kept, l)
		}
	}
	return append(append([]int(nil), shared...), kept...), len(shared)
}

// assembleContract performs the block-diagonal matrix multiply once a2's
// contracted bonds are its trailing columns and b2's are its leading rows:
// for each charge present in both block maps, C[q] = A[q] * B[q] (spec
// §4.3.3 step 3).
func assembleContract(a2, b2 *SymTensor) (*SymTensor, error) {
	rowBonds := a2.Bonds[:a2.RNum]
	colBonds := b2.Bonds[b2.RNum:]
	rowLabels := a2.Labels[:a2.RNum]
	colLabels := b2.Labels[b2.RNum:]

	bonds := append(append([]bond.Bond(nil), rowBonds...), colBonds...)
	labels := append(append([]int(nil), rowLabels...), colLabels...)

	var out *SymTensor
	if len(bonds) == 0 {
		out = newFromZero(bonds, 0, a2.Kind, a2.zero)
	} else {
		out = New(bonds, len(rowBonds), a2.Kind)
	}
	out.Labels = labels
	out.Name = a2.Name + "*" + b2.Name

	for q, ablk := range a2.Blocks {
		bblk, ok := b2.Blocks[q]
		if !ok {
			continue
		}
		prod, err := block.MatMul(ablk, bblk, false, false)
		if err != nil {
			return nil, symten.Wrap(symten.BondMismatch, "contract: block multiply failed", err)
		}
		outBlk, ok := out.Blocks[q]
		if !ok {
			continue
		}
		if prod.Rows != outBlk.Rows || prod.Cols != outBlk.Cols {
			return nil, symten.New(symten.ShapeMismatch, "contract: product block shape mismatch")
		}
		out.Blocks[q] = prod
	}
	out.Status |= HaveElem
	return out, nil
}
