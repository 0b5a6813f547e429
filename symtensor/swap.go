package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
)

// AddGate multiplies every stored element by -1 once for each named bond
// whose constituent state at that element's position carries odd
// fermionic parity. It is the local gauge fix applied before an operation
// that would otherwise silently drop the sign picked up by fermionic
// lines crossing in the diagram (spec §4.3.8).
func (t *SymTensor) AddGate(labels []int) (*SymTensor, error) {
	positions := make([]int, len(labels))
	for i, l := range labels {
		p := t.LabelIndex(l)
		if p < 0 {
			return nil, symten.New(symten.LabelError, "addGate: unknown label")
		}
		positions[i] = p
	}

	out := t.Clone()
	for _, re := range t.rowPart.Entries {
		for _, ce := range t.colPart.Entries {
			if !re.Charge.Equal(ce.Charge) {
				continue
			}
			blk, ok := out.Blocks[re.Charge]
			if !ok {
				continue
			}
			for ro := 0; ro < re.Width; ro++ {
				for co := 0; co < ce.Width; co++ {
					full := append(t.rowPart.FullIndices(re, ro), t.colPart.FullIndices(ce, co)...)
					neg := false
					for _, p := range positions {
						b := t.Bonds[p]
						charge, _, _ := b.StateGroup(full[p])
						if charge.Fermionic() {
							neg = !neg
						}
					}
					if !neg {
						continue
					}
					i, j := re.BlockOffset+ro, ce.BlockOffset+co
					if t.Kind == block.Complex {
						blk.SetC(i, j, -blk.AtC(i, j))
					} else {
						blk.Set(i, j, -blk.At(i, j))
					}
				}
			}
		}
	}
	return out, nil
}

// ExSwap exchanges the positions of two bonds (which may be on either
// side) and multiplies each element by -1 wherever both bonds' states at
// that position carry odd fermionic parity — the Koszul sign picked up
// when two fermionic lines cross (spec §4.3.8). The two bonds must
// currently sit on the same side for the swap to leave rNum unchanged;
// crossing the row/column boundary is done with Permute instead.
func (t *SymTensor) ExSwap(labelA, labelB int) (*SymTensor, error) {
	posA := t.LabelIndex(labelA)
	posB := t.LabelIndex(labelB)
	if posA < 0 || posB < 0 {
		return nil, symten.New(symten.LabelError, "exSwap: unknown label")
	}
	if (posA < t.RNum) != (posB < t.RNum) {
		return nil, symten.New(symten.BondMismatch, "exSwap: bonds must be on the same side")
	}

	signed := t.Clone()
	for _, re := range t.rowPart.Entries {
		for _, ce := range t.colPart.Entries {
			if !re.Charge.Equal(ce.Charge) {
				continue
			}
			blk, ok := signed.Blocks[re.Charge]
			if !ok {
				continue
			}
			for ro := 0; ro < re.Width; ro++ {
				for co := 0; co < ce.Width; co++ {
					full := append(t.rowPart.FullIndices(re, ro), t.colPart.FullIndices(ce, co)...)
					chargeA, _, _ := t.Bonds[posA].StateGroup(full[posA])
					chargeB, _, _ := t.Bonds[posB].StateGroup(full[posB])
					if !(chargeA.Fermionic() && chargeB.Fermionic()) {
						continue
					}
					i, j := re.BlockOffset+ro, ce.BlockOffset+co
					if t.Kind == block.Complex {
						blk.SetC(i, j, -blk.AtC(i, j))
					} else {
						blk.Set(i, j, -blk.At(i, j))
					}
				}
			}
		}
	}

	newLabels := append([]int(nil), t.Labels...)
	newLabels[posA], newLabels[posB] = newLabels[posB], newLabels[posA]
	return signed.Permute(newLabels, t.RNum)
}
