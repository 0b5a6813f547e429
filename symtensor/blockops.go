package symtensor

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/qnum"
)

// GetBlock returns the block stored under the given charge, or nil if the
// tensor holds no block there (the charge never appears as both a row and
// a column charge).
func (t *SymTensor) GetBlock(q qnum.Qnum) *block.Block {
	return t.Blocks[q]
}

// PutBlock replaces the block stored under q. Unless force is true, the
// replacement's dimensions must match the existing block's exactly (spec
// §4.2 putBlock: shape is dictated by the bond layout, not by the caller).
func (t *SymTensor) PutBlock(q qnum.Qnum, b *block.Block, force bool) error {
	existing, ok := t.Blocks[q]
	if !ok {
		return symten.New(symten.BondMismatch, "putBlock: charge not present in tensor's block layout")
	}
	if !force && (b.Rows != existing.Rows || b.Cols != existing.Cols) {
		return symten.New(symten.ShapeMismatch, "putBlock: replacement dimensions do not match layout")
	}
	t.Blocks[q] = b
	t.Status |= HaveElem
	return nil
}
