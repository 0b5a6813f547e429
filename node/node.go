// Package node implements the contraction binary tree built by Network:
// leaves wrap a registered tensor's label pattern, internal nodes cache the
// merged bond signature and the cost estimate used to pick merge order
// (spec §4.4).
package node

import "github.com/qsymm/symten/bond"

// Kind distinguishes a leaf (bound to one registered tensor slot) from an
// internal node (the contraction of two subtrees).
type Kind uint8

const (
	Leaf Kind = iota
	Internal
)

// Node is one vertex of a Network's contraction tree. Leaf fields (Name,
// TensorIdx) are meaningless on an Internal node; Left/Right are nil on a
// Leaf. Parent is set when a node is merged into a new root and cleared
// only by Network.construct starting over, matching spec §4.4's plain
// upward pointer with no cycles.
type Node struct {
	Idx       int
	Kind      Kind
	Name      string // leaf only
	TensorIdx int    // leaf only: index into Network's tensor slice, -1 if unbound

	Labels []int
	Bonds  []bond.Bond

	ElemNum int64
	Point   float64 // merge cost that produced this node; 0 for a leaf

	Left, Right, Parent *Node
}

// Arena owns a Network's tree nodes in a flat, append-only, integer-indexed
// slice (spec §9 DESIGN NOTES: prefer arena allocation with integer indices
// over individually heap-churned nodes with pointer identity).
type Arena struct {
	nodes []*Node
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

// Len returns the number of nodes ever allocated from the arena.
func (a *Arena) Len() int { return len(a.nodes) }

// At returns the node at arena index i.
func (a *Arena) At(i int) *Node { return a.nodes[i] }

// NewLeaf allocates a leaf node for tensorIdx's label pattern and bonds.
// tensorIdx is -1 until the corresponding tensor slot is bound.
func (a *Arena) NewLeaf(name string, tensorIdx int, labels []int, bonds []bond.Bond) *Node {
	n := &Node{
		Idx:       len(a.nodes),
		Kind:      Leaf,
		Name:      name,
		TensorIdx: tensorIdx,
		Labels:    append([]int(nil), labels...),
		Bonds:     append([]bond.Bond(nil), bonds...),
		ElemNum:   elemNumFromBonds(bonds),
	}
	a.nodes = append(a.nodes, n)
	return n
}

// elemNumFromBonds is the dense element count implied by a bond list: the
// product of bond dimensions, or 1 for an empty (scalar) list.
func elemNumFromBonds(bonds []bond.Bond) int64 {
	var total int64 = 1
	for _, b := range bonds {
		total *= int64(b.Dim())
	}
	return total
}

// merge computes the labels and bonds of the node formed by contracting
// left and right: the symmetric difference of their label sets, left's
// uncommon (label, bond) pairs first, then right's, matching the order
// SymTensor.Contract assembles its result in (spec §4.3.5 step 4). Reports
// whether left and right share at least one label — Network only merges
// pairs that do.
func merge(left, right *Node) (labels []int, bonds []bond.Bond, shared bool) {
	rightHas := make(map[int]bool, len(right.Labels))
	for _, l := range right.Labels {
		rightHas[l] = true
	}
	leftHas := make(map[int]bool, len(left.Labels))
	for _, l := range left.Labels {
		leftHas[l] = true
	}
	for _, l := range left.Labels {
		if rightHas[l] {
			shared = true
			continue
		}
		labels = append(labels, l)
	}
	for i, l := range left.Labels {
		if !rightHas[l] {
			bonds = append(bonds, left.Bonds[i])
		}
	}
	for i, l := range right.Labels {
		if !leftHas[l] {
			labels = append(labels, l)
			bonds = append(bonds, right.Bonds[i])
		}
	}
	return labels, bonds, shared
}

// Metric is Node::metric of spec §4.4: the extra intermediate storage that
// merging left and right would cost, elemNum(merged) minus the larger of
// the two operands' own elemNum. Lower is better. ok is false when left and
// right share no label, in which case they cannot be merged by contraction.
func Metric(left, right *Node) (point float64, ok bool) {
	labels, bonds, shared := merge(left, right)
	if !shared {
		return 0, false
	}
	merged := elemNumFromBonds(bonds)
	_ = labels
	larger := left.ElemNum
	if right.ElemNum > larger {
		larger = right.ElemNum
	}
	return float64(merged - larger), true
}

// Contract allocates the internal node resulting from merging left and
// right (spec §4.4 Node::contract): bond list is the symmetric difference
// of the two label sets, elemNum from the merged bonds, Point the same cost
// Metric reports. Panics if left and right share no label — callers must
// have checked Metric's ok first.
func (a *Arena) Contract(left, right *Node) *Node {
	labels, bonds, shared := merge(left, right)
	if !shared {
		panic("node: Contract of two nodes sharing no label")
	}
	point, _ := Metric(left, right)
	n := &Node{
		Idx:       len(a.nodes),
		Kind:      Internal,
		TensorIdx: -1,
		Labels:    labels,
		Bonds:     bonds,
		ElemNum:   elemNumFromBonds(bonds),
		Point:     point,
		Left:      left,
		Right:     right,
	}
	left.Parent = n
	right.Parent = n
	a.nodes = append(a.nodes, n)
	return n
}

// OuterProduct allocates an internal node joining left and right when they
// share no label (spec §4.5 construct step 4: disjoint trees are combined
// by outer product). Its label list is the plain concatenation of both
// children's, since there is nothing to eliminate.
func (a *Arena) OuterProduct(left, right *Node) *Node {
	labels := append(append([]int(nil), left.Labels...), right.Labels...)
	bonds := append(append([]bond.Bond(nil), left.Bonds...), right.Bonds...)
	n := &Node{
		Idx:       len(a.nodes),
		Kind:      Internal,
		TensorIdx: -1,
		Labels:    labels,
		Bonds:     bonds,
		ElemNum:   elemNumFromBonds(bonds),
		Left:      left,
		Right:     right,
	}
	left.Parent = n
	right.Parent = n
	a.nodes = append(a.nodes, n)
	return n
}
