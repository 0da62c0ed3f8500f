package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Node is a vertex of the property graph.
type Node struct {
	ID         uint64
	Labels     []string
	Properties map[string]any
}

// HasLabel reports whether the node carries the given label.
func (n Node) HasLabel(label string) bool {
	return slices.Contains(n.Labels, label)
}

// Property returns the named property of the node.
func (n Node) Property(name string) (any, bool) {
	v, ok := n.Properties[name]
	return v, ok
}

func (n Node) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d", n.ID)
	for _, label := range n.Labels {
		sb.WriteString(":" + label)
	}
	if len(n.Properties) > 0 {
		sb.WriteString(" {")
		for i, key := range slices.Sorted(maps.Keys(n.Properties)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %v", key, n.Properties[key])
		}
		sb.WriteString("}")
	}
	sb.WriteString(")")
	return sb.String()
}

// Edge is a directed, typed relationship between two nodes.
type Edge struct {
	ID         uint64
	Type       string
	Src        uint64
	Dst        uint64
	Properties map[string]any
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d)-[:%s]->(%d)", e.Src, e.Type, e.Dst)
}

// Reader is the read-only view of a graph that operators execute against.
type Reader interface {
	// Node returns the node with the given ID, if it exists.
	Node(id uint64) (Node, bool, error)

	// Nodes returns all nodes carrying label, or every node if label is empty,
	// ordered by ID.
	Nodes(label string) ([]Node, error)

	// Edges returns the outgoing edges of src of the given type, or of any
	// type if edgeType is empty, ordered by ID.
	Edges(src uint64, edgeType string) ([]Edge, error)
}
