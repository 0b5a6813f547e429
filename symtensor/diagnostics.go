package symtensor

import (
	"fmt"
	"strings"
)

// PrintRawElem renders t's dense row-major expansion as a human-readable
// grid, one row per line (spec §6: format stability is not guaranteed,
// this is a debugging aid, not a wire format).
func (t *SymTensor) PrintRawElem() string {
	raw := t.GetRawElem()
	rows, cols := t.rowPart.Dim, t.colPart.Dim
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %dx%d\n", t.Name, rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", raw[i*cols+j])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
