package exec

import (
	"errors"
	"fmt"

	"github.com/authzed/graphexec/pkg/graph"
	"github.com/authzed/graphexec/pkg/record"
)

// ErrNoGraph is returned when an operator that reads the graph is initialized
// without one.
var ErrNoGraph = errors.New("no graph has been set")

// NodeScan yields one record per node of the graph, optionally restricted to
// nodes carrying a label, with the node bound to a slot.
type NodeScan struct {
	opBase
	alias string
	slot  int
	label string

	partitionIndex int
	partitionCount int

	nodes  []graph.Node
	loaded bool
	pos    int
}

var (
	_ Operator      = &NodeScan{}
	_ partitionable = &NodeScan{}
)

// NewNodeScan creates a scan binding nodes to the slot of the given alias.
// An empty label scans every node.
func NewNodeScan(alias string, slot int, label string) *NodeScan {
	return &NodeScan{
		opBase:         newOpBase(KindNodeScan),
		alias:          alias,
		slot:           slot,
		label:          label,
		partitionCount: 1,
	}
}

// SetPartition restricts the scan to nodes whose ID modulo count is index.
func (n *NodeScan) SetPartition(index, count int) {
	n.partitionIndex = index
	n.partitionCount = count
}

func (n *NodeScan) Init(ctx *Context) error {
	if ctx.Graph == nil {
		return fmt.Errorf("unable to scan %s: %w", n.alias, ErrNoGraph)
	}
	if ctx.Records == nil {
		return fmt.Errorf("unable to scan %s: no record allocator has been set", n.alias)
	}
	n.initialized = true
	return nil
}

func (n *NodeScan) load(ctx *Context) error {
	nodes, err := ctx.Graph.Nodes(n.label)
	if err != nil {
		return fmt.Errorf("unable to scan %s: %w", n.alias, err)
	}

	if n.partitionCount > 1 {
		kept := nodes[:0:0]
		for _, node := range nodes {
			if node.ID%uint64(n.partitionCount) == uint64(n.partitionIndex) {
				kept = append(kept, node)
			}
		}
		nodes = kept
	}

	n.nodes = nodes
	n.loaded = true
	ctx.TraceStep(n, "loaded %d nodes", len(nodes))
	return nil
}

func (n *NodeScan) ConsumeImpl(ctx *Context) (*record.Record, error) {
	if !n.loaded {
		if err := n.load(ctx); err != nil {
			return nil, err
		}
	}

	if n.pos >= len(n.nodes) {
		return nil, nil
	}

	node := n.nodes[n.pos]
	n.pos++

	r := ctx.Records.New()
	if err := r.Set(n.slot, node); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (n *NodeScan) Reset() {
	n.nodes = nil
	n.loaded = false
	n.pos = 0
}

func (n *NodeScan) Free() {
	n.Reset()
	n.freed = true
}

func (n *NodeScan) Clone() Operator {
	clone := NewNodeScan(n.alias, n.slot, n.label)
	clone.SetPartition(n.partitionIndex, n.partitionCount)
	return clone
}

func (n *NodeScan) Explain() Explain {
	info := fmt.Sprintf("NodeScan(%s", n.alias)
	if n.label != "" {
		info += ":" + n.label
	}
	info += ")"
	if n.partitionCount > 1 {
		info += fmt.Sprintf(" partition %d/%d", n.partitionIndex+1, n.partitionCount)
	}
	return Explain{
		Name: string(KindNodeScan),
		Info: info,
	}
}
