package network

import (
	"fmt"
	"strings"

	"github.com/qsymm/symten/node"
)

// PrintDiagram renders the constructed contraction tree as indented text,
// one node per line, leaves named after their registered tensor and
// internal nodes named after the labels surviving the merge (spec §6:
// format stability is not guaranteed, this is a debugging aid).
func (n *Network) PrintDiagram() string {
	if n.root == nil {
		return "(unconstructed)\n"
	}
	var b strings.Builder
	printNode(&b, n.root, 0)
	return b.String()
}

func printNode(b *strings.Builder, nd *node.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if nd.Kind == node.Leaf {
		fmt.Fprintf(b, "%s%s %v\n", indent, nd.Name, nd.Labels)
		return
	}
	fmt.Fprintf(b, "%s(merge point=%.0f) %v\n", indent, nd.Point, nd.Labels)
	printNode(b, nd.Left, depth+1)
	printNode(b, nd.Right, depth+1)
}
