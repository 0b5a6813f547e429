package symtensor

import "github.com/qsymm/symten"

// SetLabel assigns labels to every bond, in bond order. Labels must be
// pairwise distinct within the tensor (spec §3: labels identify bonds for
// contraction and permutation, and collisions make that identification
// ambiguous).
func (t *SymTensor) SetLabel(labels []int) error {
	if len(labels) != len(t.Bonds) {
		return symten.New(symten.LabelError, "setLabel: wrong number of labels")
	}
	seen := make(map[int]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return symten.New(symten.LabelError, "setLabel: duplicate label")
		}
		seen[l] = true
	}
	t.Labels = append([]int(nil), labels...)
	return nil
}

// LabelAt returns the label carried by bond i.
func (t *SymTensor) LabelAt(i int) int { return t.Labels[i] }
