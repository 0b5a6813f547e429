// Package network implements Network, the contraction-order planner and
// executor of spec §4.5: a set of named tensors with a label pattern, built
// once into a contraction tree and repeatedly launched against rebound
// tensor data.
package network

import (
	"github.com/qsymm/symten"
	"github.com/qsymm/symten/node"
	"github.com/qsymm/symten/symlog"
	"github.com/qsymm/symten/symtensor"
)

// Status mirrors the UNLOADED/LOADED lifecycle of spec §4.5.
type Status uint8

const (
	Unloaded Status = iota
	Loaded
)

// LabelPattern is one entry's declared bond pattern: labels before the
// network file's ';' are In bonds, after it are Out bonds (spec §6).
type LabelPattern struct {
	In  []int
	Out []int
}

func (p LabelPattern) flat() []int {
	out := make([]int, 0, len(p.In)+len(p.Out))
	out = append(out, p.In...)
	out = append(out, p.Out...)
	return out
}

// Network is a set of named tensor slots plus their label patterns, a
// cached contraction tree, and an optional TOUT output spec.
type Network struct {
	Names    []string
	Patterns []LabelPattern
	TOUT     *LabelPattern

	tensors []*symtensor.SymTensor

	arena  *node.Arena
	leaves []*node.Node
	root   *node.Node
	gates  [][]int // per leaf index, labels to AddGate before first use

	fast        bool // skip the exhaustive pairwise metric search in Construct
	emitSwapLog bool // log each leaf's fermionic gate application in Launch

	status Status
	result *symtensor.SymTensor
}

// New declares a Network's tensor slots and label patterns; every slot
// starts unbound (spec §4.5: Network holds non-owning references, bound
// later via Bind/ReplaceWith).
func New(names []string, patterns []LabelPattern, tout *LabelPattern) *Network {
	return &Network{
		Names:    append([]string(nil), names...),
		Patterns: append([]LabelPattern(nil), patterns...),
		TOUT:     tout,
		tensors:  make([]*symtensor.SymTensor, len(names)),
		status:   Unloaded,
	}
}

// Status reports the Network's current lifecycle state.
func (n *Network) Status() Status { return n.status }

// SetRunOptions applies the contraction run options a deployment's config
// file carries (netfile.RunConfig's Fast/EmitSwapLog fields): fast selects
// buildTree's sequential left-fold merge order over its default exhaustive
// pairwise metric search on the next Construct, and emitSwapLog controls
// whether Launch logs each leaf's fermionic gate application. Takes effect
// at the next Construct/Launch; does not require rebuilding an already
// Loaded Network.
func (n *Network) SetRunOptions(fast, emitSwapLog bool) {
	n.fast = fast
	n.emitSwapLog = emitSwapLog
}

// Bind registers idx's tensor for the first time; equivalent to
// ReplaceWith(idx, t, false).
func (n *Network) Bind(idx int, t *symtensor.SymTensor) error {
	return n.ReplaceWith(idx, t, false)
}

// ReplaceWith rebinds leaf idx to t (spec §4.5 replaceWith). Unless force
// is set, a tensor already bound at idx requires t's bond signature
// (direction + state lists, ignoring labels) to match the existing one, or
// the call fails with ShapeMismatch. t is relabeled in place to match idx's
// declared pattern.
func (n *Network) ReplaceWith(idx int, t *symtensor.SymTensor, force bool) error {
	if idx < 0 || idx >= len(n.tensors) {
		return symten.New(symten.LabelError, "network: tensor index out of range")
	}
	pattern := n.Patterns[idx]
	flat := pattern.flat()
	if len(flat) != t.BondNum() {
		return symten.New(symten.BondMismatch, "network: tensor bond count does not match declared pattern")
	}
	if t.RNum != len(pattern.In) {
		return symten.New(symten.BondMismatch, "network: tensor in-bond count does not match declared pattern")
	}
	if existing := n.tensors[idx]; existing != nil && !force {
		for i, b := range t.Bonds {
			if !b.Equal(existing.Bonds[i]) {
				return symten.New(symten.ShapeMismatch, "network: replacement tensor's bond signature does not match")
			}
		}
	}
	if err := t.SetLabel(flat); err != nil {
		return err
	}
	n.tensors[idx] = t
	return nil
}

// Construct validates the label pattern, builds the greedy contraction
// tree and the fermionic gate lists, and moves the Network to Loaded (spec
// §4.5 construct). It requires every slot already bound.
func (n *Network) Construct() error {
	if err := n.validateLabels(); err != nil {
		return err
	}
	for i, t := range n.tensors {
		if t == nil {
			return symten.New(symten.UnboundTensor, "network: construct called before all leaves bound")
		}
		_ = i
	}

	arena := node.NewArena()
	leaves := make([]*node.Node, len(n.tensors))
	for i, t := range n.tensors {
		leaves[i] = arena.NewLeaf(n.Names[i], i, t.Labels, t.Bonds)
	}

	var root *node.Node
	var err error
	if n.fast {
		root, err = buildTreeFast(arena, leaves)
	} else {
		root, err = buildTree(arena, leaves)
	}
	if err != nil {
		return err
	}

	n.arena = arena
	n.leaves = leaves
	n.root = root
	n.gates = computeGates(n.Names, n.Patterns)
	n.result = nil
	n.status = Loaded
	symlog.Log.Debug().Int("leaves", len(leaves)).Msg("network constructed")
	return nil
}

// Destruct discards the cached tree and result, returning to Unloaded.
// Bound tensors are left in place so a subsequent Construct can reuse
// them.
func (n *Network) Destruct() {
	n.arena = nil
	n.leaves = nil
	n.root = nil
	n.gates = nil
	n.result = nil
	n.status = Unloaded
}

// Result returns the tensor produced by the most recent Launch, or nil if
// none has run yet.
func (n *Network) Result() *symtensor.SymTensor { return n.result }

// validateLabels checks spec §4.5 construct step 1: every label named in
// Patterns pairs up exactly twice, or (if it appears once) also appears
// exactly once in TOUT; every TOUT label appears exactly once in Patterns.
func (n *Network) validateLabels() error {
	occ := make(map[int]int)
	for _, p := range n.Patterns {
		for _, l := range p.flat() {
			occ[l]++
		}
	}
	toutSet := make(map[int]int)
	if n.TOUT != nil {
		for _, l := range n.TOUT.flat() {
			toutSet[l]++
		}
	}
	for l, c := range occ {
		switch c {
		case 2:
			if toutSet[l] != 0 {
				return symten.New(symten.InvalidNetwork, "network: internal label also appears in TOUT")
			}
		case 1:
			if toutSet[l] != 1 {
				return symten.New(symten.InvalidNetwork, "network: external label missing from TOUT")
			}
		default:
			return symten.New(symten.InvalidNetwork, "network: label appears more than twice")
		}
	}
	for l, c := range toutSet {
		if c != 1 {
			return symten.New(symten.InvalidNetwork, "network: TOUT label repeated")
		}
		if occ[l] != 1 {
			return symten.New(symten.InvalidNetwork, "network: TOUT label unmatched in tensor patterns")
		}
	}
	return nil
}

// Launch evaluates the cached contraction tree in postorder, gating each
// leaf with its accumulated fermionic sign correction on first use, and
// permutes the final result to TOUT's order if one is declared (spec §4.5
// launch). Calling Launch twice with unchanged bindings reproduces the
// same result bit-for-bit, since gates are recomputed fresh from Patterns
// at Construct time and applied to a cloned copy of each leaf, never
// mutating the bound tensor itself.
func (n *Network) Launch() error {
	if n.status != Loaded || n.root == nil {
		return symten.New(symten.UnboundTensor, "network: launch called before construct")
	}

	gated := make([]*symtensor.SymTensor, len(n.tensors))
	for i, t := range n.tensors {
		if t == nil {
			return symten.New(symten.UnboundTensor, "network: launch called with an unbound leaf")
		}
		if len(n.gates[i]) == 0 {
			gated[i] = t
			continue
		}
		g, err := t.AddGate(n.gates[i])
		if err != nil {
			return symten.Wrap(symten.BondMismatch, "network: leaf gate application failed", err)
		}
		gated[i] = g
		if n.emitSwapLog {
			symlog.Log.Debug().Str("leaf", n.Names[i]).Ints("labels", n.gates[i]).Msg("fermionic gate applied")
		}
	}

	result, err := n.eval(n.root, gated)
	if err != nil {
		return err
	}

	if n.TOUT != nil {
		flat := n.TOUT.flat()
		result, err = result.Permute(flat, len(n.TOUT.In))
		if err != nil {
			return symten.Wrap(symten.BondMismatch, "network: final TOUT permute failed", err)
		}
	}

	n.result = result
	symlog.Log.Debug().Msg("network launch complete")
	return nil
}

// eval produces the tensor a tree node represents: the bound (gated) leaf
// tensor, or the contraction/outer product of its children, chosen by
// whether the children's cached label lists overlap (matching how
// buildTree itself decided that merge).
func (n *Network) eval(nd *node.Node, tensors []*symtensor.SymTensor) (*symtensor.SymTensor, error) {
	if nd.Kind == node.Leaf {
		return tensors[nd.TensorIdx], nil
	}
	left, err := n.eval(nd.Left, tensors)
	if err != nil {
		return nil, err
	}
	right, err := n.eval(nd.Right, tensors)
	if err != nil {
		return nil, err
	}
	if sharesLabel(nd.Left.Labels, nd.Right.Labels) {
		return symtensor.Contract(left, right)
	}
	return symtensor.OuterProduct(left, right)
}

func sharesLabel(a, b []int) bool {
	set := make(map[int]bool, len(a))
	for _, l := range a {
		set[l] = true
	}
	for _, l := range b {
		if set[l] {
			return true
		}
	}
	return false
}
