package network

import "github.com/qsymm/symten/node"

// buildTree greedily merges leaves into a single root by repeatedly
// choosing the pending pair with the lowest Node::metric (spec §4.4
// construct): at each step every pairwise metric is recomputed, since a
// merge changes the bond list (and therefore the cost) of anything that
// would pair with the result. Pairs with no shared label fall back to an
// outer product, so the loop always has a legal move regardless of
// topology, and eventually produces one root no matter how many
// disconnected groups the patterns describe.
func buildTree(arena *node.Arena, leaves []*node.Node) (*node.Node, error) {
	if len(leaves) == 0 {
		return nil, nil
	}

	minLeaf := make(map[*node.Node]int, len(leaves))
	for i, l := range leaves {
		minLeaf[l] = i
	}

	pending := append([]*node.Node(nil), leaves...)
	for len(pending) > 1 {
		bestI, bestJ := -1, -1
		var bestPoint, bestCombined float64
		var bestLeaf int
		bestHasMetric := false

		for i := 0; i < len(pending); i++ {
			for j := i + 1; j < len(pending); j++ {
				left, right := pending[i], pending[j]
				point, ok := node.Metric(left, right)
				combined := float64(elemMax(left.ElemNum, right.ElemNum))
				if ok {
					combined = point + combined
				} else {
					// outer product: cost is the full merged size, no
					// partial-sum contraction savings to credit.
					combined = float64(left.ElemNum * right.ElemNum)
					point = combined
				}
				leafIdx := minInt(minLeaf[left], minLeaf[right])

				better := bestI == -1
				if !better {
					switch {
					case point != bestPoint:
						better = point < bestPoint
					case combined != bestCombined:
						better = combined < bestCombined
					default:
						better = leafIdx < bestLeaf
					}
				}
				if better {
					bestI, bestJ = i, j
					bestPoint, bestCombined, bestLeaf = point, combined, leafIdx
					bestHasMetric = ok
				}
			}
		}

		left, right := pending[bestI], pending[bestJ]
		var merged *node.Node
		if bestHasMetric {
			merged = arena.Contract(left, right)
		} else {
			merged = arena.OuterProduct(left, right)
		}
		minLeaf[merged] = minInt(minLeaf[left], minLeaf[right])

		next := make([]*node.Node, 0, len(pending)-1)
		for k, p := range pending {
			if k == bestI || k == bestJ {
				continue
			}
			next = append(next, p)
		}
		next = append(next, merged)
		pending = next
	}
	return pending[0], nil
}

// buildTreeFast merges leaves in registration order, a left-to-right fold
// that skips the exhaustive pairwise metric search buildTree performs every
// round. Used when RunConfig.Fast requests the cheaper contraction-order
// heuristic (spec §4.5's "fast" run option): O(n) merge decisions instead
// of buildTree's O(n^3), at the cost of an order that is not guaranteed to
// be metric-optimal.
func buildTreeFast(arena *node.Arena, leaves []*node.Node) (*node.Node, error) {
	if len(leaves) == 0 {
		return nil, nil
	}
	acc := leaves[0]
	for _, next := range leaves[1:] {
		if _, ok := node.Metric(acc, next); ok {
			acc = arena.Contract(acc, next)
		} else {
			acc = arena.OuterProduct(acc, next)
		}
	}
	return acc, nil
}

func elemMax(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
