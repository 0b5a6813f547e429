package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/qnum"
)

// sigmaLabel derives a label for the singular-index bond introduced by
// mode m, distinct from any label a caller is expected to use (spec
// reserves no label range for this, so this implementation picks one
// deterministically and documents it rather than requiring the caller to
// supply it).
func sigmaLabel(m int) int { return -(100000 + m) }

// HOSVD computes the higher-order SVD of t: the first modeCount*k+
// fixedCount bonds are grouped into modeCount groups of k bonds (the
// mode legs) plus fixedCount untouched bonds; the rest of t's bonds are
// left alone entirely (spec §4.3.9). Each mode's factor is the left
// singular-vector tensor of that mode's matrix unfolding, computed from
// t's own unfolding (not from an already-projected core); the returned
// core is t with every mode's legs replaced by that mode's singular-index
// bond. When returnSingulars is true, singular values are returned as one
// map per mode from block charge to that block's singular values; the map
// carries no ordering of the charges.
func (t *SymTensor) HOSVD(modeCount, k, fixedCount int, returnSingulars bool) (factors []*SymTensor, core *SymTensor, singulars []map[qnum.Qnum][]float64, err error) {
	if modeCount*k+fixedCount > len(t.Bonds) {
		return nil, nil, nil, symten.New(symten.LabelError, "hosvd: mode/fixed bond count exceeds tensor rank")
	}

	factors = make([]*SymTensor, modeCount)
	modeLabels := make([][]int, modeCount)
	if returnSingulars {
		singulars = make([]map[qnum.Qnum][]float64, modeCount)
	}

	for m := 0; m < modeCount; m++ {
		labels := append([]int(nil), t.Labels[m*k:(m+1)*k]...)
		modeLabels[m] = labels

		unfolded, uerr := unfoldForMode(t, labels)
		if uerr != nil {
			return nil, nil, nil, uerr
		}

		sl := sigmaLabel(m)
		factor, sing, ferr := buildFactor(unfolded, sl)
		if ferr != nil {
			return nil, nil, nil, ferr
		}
		factors[m] = factor
		if returnSingulars {
			singulars[m] = sing
		}
	}

	core = t.Clone()
	for m := 0; m < modeCount; m++ {
		core, err = projectMode(core, modeLabels[m], factors[m], sigmaLabel(m))
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return factors, core, singulars, nil
}

// unfoldForMode permutes a copy of t so labels becomes the trailing
// column group (direction Out), everything else the row group.
func unfoldForMode(t *SymTensor, labels []int) (*SymTensor, error) {
	set := make(map[int]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	var kept []int
	for _, l := range t.Labels {
		if !set[l] {
			kept = append(kept, l)
		}
	}
	order := append(kept, labels...)
	return t.Permute(order, len(kept))
}

// buildFactor computes, for each charge present in unfolded's blocks, the
// SVD of that block and assembles the factor tensor whose sole row bond
// is the mode's singular index (direction In) and whose column bonds are
// exactly unfolded's mode-leg bonds (direction Out, taken unmodified, so
// no index translation is needed between unfolded and factor).
func buildFactor(unfolded *SymTensor, sl int) (*SymTensor, map[qnum.Qnum][]float64, error) {
	type svdResult struct {
		v *block.Block // r x modeDim (v^T)
		r int
	}
	results := make(map[qnum.Qnum]svdResult)
	singulars := make(map[qnum.Qnum][]float64)

	for q, blk := range unfolded.Blocks {
		if blk.Rows == 0 || blk.Cols == 0 {
			continue
		}
		u, s, v := blk.SVD()
		r := len(s)
		vt := block.NewReal(r, blk.Cols)
		for i := 0; i < r; i++ {
			for j := 0; j < blk.Cols; j++ {
				vt.Set(i, j, v.At(j, i))
			}
		}
		results[q] = svdResult{v: vt, r: r}
		singulars[q] = append([]float64(nil), s...)
		_ = u
	}

	states := make([]bond.State, 0, len(results))
	for q, res := range results {
		if res.r == 0 {
			continue
		}
		states = append(states, bond.State{Charge: q, Mult: res.r})
	}
	sigmaBond := bond.New(bond.In, states)

	factorBonds := append([]bond.Bond{sigmaBond}, unfolded.Bonds[unfolded.RNum:]...)
	factor := New(factorBonds, 1, block.Real)
	factor.Labels = append([]int{sl}, unfolded.Labels[unfolded.RNum:]...)
	factor.Name = unfolded.Name + "_U"

	for q, res := range results {
		fb, ok := factor.Blocks[q]
		if !ok {
			continue
		}
		if fb.Rows != res.v.Rows || fb.Cols != res.v.Cols {
			continue
		}
		factor.Blocks[q] = res.v
	}
	factor.Status |= HaveElem
	return factor, singulars, nil
}

// projectMode replaces core's copy of labels (still present as individual
// bonds, located by name) with sigmaLabel's bond, contracting the old
// unfolding's mode-dimension against factor's stored v^T blocks.
func projectMode(core *SymTensor, labels []int, factor *SymTensor, sl int) (*SymTensor, error) {
	unfolded, err := unfoldForMode(core, labels)
	if err != nil {
		return nil, err
	}

	sigmaBond := factor.Bonds[0].Reverse()
	newBonds := append(append([]bond.Bond(nil), unfolded.Bonds[:unfolded.RNum]...), sigmaBond)
	newLabels := append(append([]int(nil), unfolded.Labels[:unfolded.RNum]...), sl)

	out := New(newBonds, unfolded.RNum, unfolded.Kind)
	out.Labels = newLabels
	out.Name = core.Name

	for q, blk := range unfolded.Blocks {
		fb, ok := factor.Blocks[q]
		if !ok {
			continue
		}
		prod, err := block.MatMul(blk, fb, false, true)
		if err != nil {
			return nil, symten.Wrap(symten.BondMismatch, "hosvd: mode projection failed", err)
		}
		ob, ok := out.Blocks[q]
		if !ok || ob.Rows != prod.Rows || ob.Cols != prod.Cols {
			continue
		}
		out.Blocks[q] = prod
	}
	out.Status |= HaveElem
	return out, nil
}
