// Package symtensor implements SymTensor, the data model mapping a dense
// multi-index tensor onto a block-diagonal layout dictated by
// quantum-number conservation (spec §3-4.3).
package symtensor

import (
	"strconv"
	"sync"

	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/qnum"
)

// Status bits, mirroring the source's HAVEBOND/HAVEELEM lifecycle.
type Status uint8

const (
	HaveBond Status = 1 << iota
	HaveElem
)

// SymTensor is a tensor stored as a direct sum of dense blocks indexed by
// conserved charge, as defined in spec §3.
type SymTensor struct {
	Name   string
	Bonds  []bond.Bond
	Labels []int
	Kind   block.Kind
	RNum   int // number of IN bonds (R)
	Status Status

	Blocks map[qnum.Qnum]*block.Block

	rowPart *Partition
	colPart *Partition
	zero    qnum.Qnum // additive identity of the charge type, cached at construction
}

// New allocates a zero-filled SymTensor from a bond list. Bonds[0:rNum]
// must be In, Bonds[rNum:] must be Out. No labels are assigned yet
// (spec §3 lifecycle: created HAVEBOND, no labels). Panics if bonds is
// empty, since there is then no element to derive the charge type's
// additive identity from; a fully contracted or fully traced scalar
// result is built internally via newFromZero instead, which reuses the
// identity already known from the operation's input.
func New(bonds []bond.Bond, rNum int, kind block.Kind) *SymTensor {
	return newFromZero(bonds, rNum, kind, findZeroSample(bonds))
}

// newFromZero is New with the charge-type identity supplied explicitly,
// used when bonds may be empty (the rank-0 scalar produced by fully
// contracting or fully tracing a tensor).
func newFromZero(bonds []bond.Bond, rNum int, kind block.Kind, zero qnum.Qnum) *SymTensor {
	for i, b := range bonds {
		wantDir := bond.In
		if i >= rNum {
			wantDir = bond.Out
		}
		if b.Dir != wantDir {
			panic("symtensor: bond direction does not match rNum split")
		}
	}
	t := &SymTensor{
		Bonds:  append([]bond.Bond(nil), bonds...),
		Labels: make([]int, len(bonds)),
		Kind:   kind,
		RNum:   rNum,
		Status: HaveBond,
		Blocks: make(map[qnum.Qnum]*block.Block),
		zero:   zero,
	}
	for i := range t.Labels {
		t.Labels[i] = -(i + 1) // placeholder distinct labels until SetLabel
	}
	t.rebuildLayout()
	t.allocateBlocks()
	incrLive(1)
	return t
}

// rebuildLayout recomputes the row/column partitions from the current
// bond list. Must be called whenever Bonds or RNum changes.
func (t *SymTensor) rebuildLayout() {
	t.rowPart = buildPartition(t.Bonds[:t.RNum], t.zero)
	t.colPart = buildPartition(t.Bonds[t.RNum:], t.zero)
}

// findZeroSample returns the charge type's additive identity, derived from
// any charge appearing on any bond (spec treats Qnum as a minimal external
// collaborator with no dedicated Zero() method, so the identity is derived
// from whatever sample is available via c.Add(c.Negate())).
func findZeroSample(bonds []bond.Bond) qnum.Qnum {
	for _, b := range bonds {
		if len(b.States) > 0 {
			return zeroOf(b.States[0].Charge)
		}
	}
	panic("symtensor: cannot determine charge type with no bonds at all")
}

// allocateBlocks creates one zero-filled Block per charge present in both
// the row and column partitions (spec §3 block-existence rule).
func (t *SymTensor) allocateBlocks() {
	t.Blocks = make(map[qnum.Qnum]*block.Block)
	for q, rowDim := range t.rowPart.ChargeDim {
		colDim, ok := t.colPart.ChargeDim[q]
		if !ok {
			continue
		}
		if t.Kind == block.Real {
			t.Blocks[q] = block.NewReal(rowDim, colDim)
		} else {
			t.Blocks[q] = block.NewComplex(rowDim, colDim)
		}
	}
}

// BondNum returns the total number of bonds.
func (t *SymTensor) BondNum() int { return len(t.Bonds) }

// Charges returns the distinct block charges present, ascending.
func (t *SymTensor) Charges() []qnum.Qnum {
	qs := make([]qnum.Qnum, 0, len(t.Blocks))
	for q := range t.Blocks {
		qs = append(qs, q)
	}
	qnum.Sort(qs)
	return qs
}

// LabelIndex returns the bond position carrying the given label, or -1.
func (t *SymTensor) LabelIndex(label int) int {
	for i, l := range t.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy: an independent SymTensor with duplicated
// block payloads (spec §3 ownership: blocks are never shared).
func (t *SymTensor) Clone() *SymTensor {
	out := &SymTensor{
		Name:   t.Name,
		Bonds:  append([]bond.Bond(nil), t.Bonds...),
		Labels: append([]int(nil), t.Labels...),
		Kind:   t.Kind,
		RNum:   t.RNum,
		Status: t.Status,
		Blocks: make(map[qnum.Qnum]*block.Block, len(t.Blocks)),
		zero:   t.zero,
	}
	for q, b := range t.Blocks {
		out.Blocks[q] = b.Clone()
	}
	out.rebuildLayout()
	incrLive(1)
	return out
}

// Destroy releases the tensor's blocks and decrements the live-instance
// counter. SymTensor has no finalizer: callers must call Destroy
// explicitly (spec §3 "destroyed explicitly").
func (t *SymTensor) Destroy() {
	if t.Blocks == nil {
		return
	}
	t.Blocks = nil
	incrLive(-1)
}

// Counters mirrors the process-wide diagnostic counters of spec §5
// (COUNTER, ELEMNUM, MAXELEMNUM, MAXELEMTEN), guarded by a mutex since the
// BLAS collaborator may itself use background goroutines.
type Counters struct {
	mu            sync.Mutex
	Live          int64
	ElemNum       int64
	MaxElemNum    int64
	MaxElemTensor int64
}

var globalCounters Counters

func incrLive(delta int64) {
	globalCounters.mu.Lock()
	defer globalCounters.mu.Unlock()
	globalCounters.Live += delta
}

// noteElem updates the element-count counters after a tensor gains or
// changes its stored elements.
func noteElem(tensorElems, delta int64) {
	globalCounters.mu.Lock()
	defer globalCounters.mu.Unlock()
	globalCounters.ElemNum += delta
	if globalCounters.ElemNum > globalCounters.MaxElemNum {
		globalCounters.MaxElemNum = globalCounters.ElemNum
	}
	if tensorElems > globalCounters.MaxElemTensor {
		globalCounters.MaxElemTensor = tensorElems
	}
}

// Profile returns the five-line textual diagnostic summary of spec §6.
func Profile() string {
	globalCounters.mu.Lock()
	defer globalCounters.mu.Unlock()
	return profileString(globalCounters.Live, globalCounters.ElemNum, globalCounters.MaxElemNum, globalCounters.MaxElemTensor)
}

func profileString(live, elems, maxElems, maxTensor int64) string {
	return "symten tensor profile\n" +
		"  live tensors      : " + strconv.FormatInt(live, 10) + "\n" +
		"  total elements    : " + strconv.FormatInt(elems, 10) + "\n" +
		"  peak total elems  : " + strconv.FormatInt(maxElems, 10) + "\n" +
		"  peak per tensor   : " + strconv.FormatInt(maxTensor, 10) + "\n"
}

// ElemNum returns the total number of stored (block) elements across all
// charges, i.e. the sum of rows*cols (or min(rows,cols) if diagonal) over
// Blocks — the elemNum figure Node uses for its cost metric.
func (t *SymTensor) ElemNum() int {
	total := 0
	for _, b := range t.Blocks {
		if b.Diag {
			r, c := b.Rows, b.Cols
			if r < c {
				total += r
			} else {
				total += c
			}
			continue
		}
		total += b.Rows * b.Cols
	}
	return total
}
