package exec

import (
	"fmt"

	"github.com/authzed/graphexec/pkg/graph"
	"github.com/authzed/graphexec/pkg/record"
)

// ConditionalTraverse expands each record of its child along the outgoing
// edges of the node bound in the source slot. Every edge yields a copy of the
// child record with the edge's destination node bound to the destination
// slot. The child record itself is never modified.
type ConditionalTraverse struct {
	opBase
	child    Operator
	srcSlot  int
	edgeType string
	dstSlot  int

	current   *record.Record
	edges     []graph.Edge
	pos       int
	exhausted bool
}

var _ Operator = &ConditionalTraverse{}

// NewConditionalTraverse creates a traversal over edges of edgeType. An empty
// edge type follows edges of every type.
func NewConditionalTraverse(child Operator, srcSlot int, edgeType string, dstSlot int) *ConditionalTraverse {
	return &ConditionalTraverse{
		opBase:   newOpBase(KindConditionalTraverse, child),
		child:    child,
		srcSlot:  srcSlot,
		edgeType: edgeType,
		dstSlot:  dstSlot,
	}
}

func (t *ConditionalTraverse) Init(ctx *Context) error {
	if ctx.Graph == nil {
		return fmt.Errorf("unable to traverse %s: %w", t.edgeType, ErrNoGraph)
	}
	return t.initChildren(ctx)
}

func (t *ConditionalTraverse) ConsumeImpl(ctx *Context) (*record.Record, error) {
	for {
		if t.current == nil {
			if t.exhausted {
				return nil, nil
			}
			if err := t.advance(ctx); err != nil {
				return nil, err
			}
			if t.exhausted {
				return nil, nil
			}
		}

		if t.pos < len(t.edges) {
			edge := t.edges[t.pos]
			t.pos++
			return t.bind(ctx, edge)
		}

		t.current.Release()
		t.current = nil
		t.edges = nil
	}
}

// advance pulls the next child record and loads the edges leaving its source node.
func (t *ConditionalTraverse) advance(ctx *Context) error {
	r, err := ctx.Consume(t.child)
	if err != nil {
		return err
	}
	if r == nil {
		t.exhausted = true
		return nil
	}

	src, ok := r.Get(t.srcSlot).(graph.Node)
	if !ok {
		r.Release()
		return fmt.Errorf("slot %d does not hold a node", t.srcSlot)
	}

	edges, err := ctx.Graph.Edges(src.ID, t.edgeType)
	if err != nil {
		r.Release()
		return fmt.Errorf("unable to load edges of node %d: %w", src.ID, err)
	}

	ctx.TraceStep(t, "node %d has %d %q edges", src.ID, len(edges), t.edgeType)
	t.current = r
	t.edges = edges
	t.pos = 0
	return nil
}

func (t *ConditionalTraverse) bind(ctx *Context, edge graph.Edge) (*record.Record, error) {
	dst, ok, err := ctx.Graph.Node(edge.Dst)
	if err != nil {
		return nil, fmt.Errorf("unable to load node %d: %w", edge.Dst, err)
	}
	if !ok {
		return nil, fmt.Errorf("edge %d points to missing node %d", edge.ID, edge.Dst)
	}

	out := t.current.Clone()
	if err := out.Set(t.dstSlot, dst); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

func (t *ConditionalTraverse) Reset() {
	t.resetChildren()
	t.release()
	t.exhausted = false
}

func (t *ConditionalTraverse) release() {
	if t.current != nil {
		t.current.Release()
		t.current = nil
	}
	t.edges = nil
	t.pos = 0
}

func (t *ConditionalTraverse) Free() {
	if !t.freeChildren() {
		return
	}
	t.release()
}

func (t *ConditionalTraverse) Clone() Operator {
	return NewConditionalTraverse(t.child.Clone(), t.srcSlot, t.edgeType, t.dstSlot)
}

func (t *ConditionalTraverse) Explain() Explain {
	edgeType := t.edgeType
	if edgeType == "" {
		edgeType = "*"
	}
	return Explain{
		Name:       string(KindConditionalTraverse),
		Info:       fmt.Sprintf("ConditionalTraverse([%d]-[:%s]->[%d])", t.srcSlot, edgeType, t.dstSlot),
		SubExplain: explainChildren(t),
	}
}
