package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
)

// SetRawElem scatters a fully dense row-major buffer (length
// rowPart.Dim*colPart.Dim) into the tensor's blocks, dropping every
// position whose row/col charge pair does not match a stored block. If
// strict is true, a dropped position with a non-zero value is reported as
// a SymmetryViolation (spec §4.2 setRawElem).
func (t *SymTensor) SetRawElem(raw []float64, strict bool) error {
	want := t.rowPart.Dim * t.colPart.Dim
	if len(raw) != want {
		return symten.New(symten.ShapeMismatch, "setRawElem: buffer length does not match tensor dimension")
	}
	for _, re := range t.rowPart.Entries {
		for _, ce := range t.colPart.Entries {
			var blk *block.Block
			matched := re.Charge.Equal(ce.Charge)
			if matched {
				if b, ok := t.Blocks[re.Charge]; ok {
					blk = b
				} else {
					matched = false
				}
			}
			for ro := 0; ro < re.Width; ro++ {
				for co := 0; co < ce.Width; co++ {
					v := raw[t.rowPart.IndexFor(t.rowPart.FullIndices(re, ro))*t.colPart.Dim+t.colPart.IndexFor(t.colPart.FullIndices(ce, co))]
					if !matched {
						if strict && v != 0 {
							return symten.New(symten.SymmetryViolation, "setRawElem: non-zero value at charge-forbidden position")
						}
						continue
					}
					blk.Set(re.BlockOffset+ro, ce.BlockOffset+co, v)
				}
			}
		}
	}
	t.Status |= HaveElem
	return nil
}

// GetRawElem expands the tensor's blocks back into a fully dense
// row-major buffer, zero-filled at charge-forbidden positions.
func (t *SymTensor) GetRawElem() []float64 {
	raw := make([]float64, t.rowPart.Dim*t.colPart.Dim)
	for q, blk := range t.Blocks {
		rowEntries := t.rowPart.ByCharge[q]
		colEntries := t.colPart.ByCharge[q]
		for _, ri := range rowEntries {
			re := t.rowPart.Entries[ri]
			for _, ci := range colEntries {
				ce := t.colPart.Entries[ci]
				for ro := 0; ro < re.Width; ro++ {
					for co := 0; co < ce.Width; co++ {
						raw[t.rowPart.IndexFor(t.rowPart.FullIndices(re, ro))*t.colPart.Dim+t.colPart.IndexFor(t.colPart.FullIndices(ce, co))] = blk.At(re.BlockOffset+ro, ce.BlockOffset+co)
					}
				}
			}
		}
	}
	return raw
}
