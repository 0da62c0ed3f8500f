package exec

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authzed/graphexec/pkg/graph"
	"github.com/authzed/graphexec/pkg/record"
)

// socialGraph:
//
//	alice -KNOWS-> bob
//	alice -KNOWS-> carol
//	carol -KNOWS-> dave
//	dave  -KNOWS-> erin (a Robot)
//	bob   -BLOCKED-> alice
const socialGraph = `
nodes:
  - {id: 1, labels: [Person], properties: {name: alice}}
  - {id: 2, labels: [Person], properties: {name: bob}}
  - {id: 3, labels: [Person], properties: {name: carol}}
  - {id: 4, labels: [Person], properties: {name: dave}}
  - {id: 5, labels: [Robot], properties: {name: erin}}
edges:
  - {type: KNOWS, src: 1, dst: 2}
  - {type: KNOWS, src: 1, dst: 3}
  - {type: KNOWS, src: 3, dst: 4}
  - {type: KNOWS, src: 4, dst: 5}
  - {type: BLOCKED, src: 2, dst: 1}
`

func loadSocialGraph(t testing.TB) *graph.Store {
	store, err := graph.LoadYAML(strings.NewReader(socialGraph))
	require.NoError(t, err)
	return store
}

func newTestContext(t testing.TB, schema *record.Schema, opts ...ContextOption) *Context {
	return NewLocalContext(t.Context(), append([]ContextOption{WithAllocator(record.NewAllocator(schema))}, opts...)...)
}

// drain pulls op until it is exhausted.
func drain(t testing.TB, ctx *Context, op Operator) []*record.Record {
	var out []*record.Record
	for {
		r, err := ctx.Consume(op)
		require.NoError(t, err)
		if r == nil {
			return out
		}
		out = append(out, r)
	}
}

func slotValues(records []*record.Record, slot int) []any {
	values := make([]any, 0, len(records))
	for _, r := range records {
		values = append(values, r.Get(slot))
	}
	return values
}

func names(records []*record.Record, slot int) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		node := r.Get(slot).(graph.Node)
		out = append(out, node.Properties["name"].(string))
	}
	return out
}

func releaseAll(records []*record.Record) {
	for _, r := range records {
		r.Release()
	}
}

func rows(values ...any) [][]any {
	out := make([][]any, 0, len(values))
	for _, v := range values {
		out = append(out, []any{v})
	}
	return out
}

// memberOf is a predicate on slot 0 that holds for the given values.
func memberOf(values ...any) Predicate {
	return func(_ *Context, r *record.Record) (bool, error) {
		return slices.Contains(values, r.Get(0)), nil
	}
}

// fanOut yields copies of every record of its child. It stands in for a
// match branch that has many matches per main record.
type fanOut struct {
	opBase
	child   Operator
	copies  int
	current *record.Record
	emitted int
}

func newFanOut(child Operator, copies int) *fanOut {
	return &fanOut{opBase: newOpBase("FanOut", child), child: child, copies: copies}
}

func (f *fanOut) Init(ctx *Context) error { return f.initChildren(ctx) }

func (f *fanOut) ConsumeImpl(ctx *Context) (*record.Record, error) {
	for {
		if f.current == nil {
			r, err := ctx.Consume(f.child)
			if err != nil || r == nil {
				return nil, err
			}
			f.current, f.emitted = r, 0
		}
		if f.emitted < f.copies {
			f.emitted++
			return f.current.Clone(), nil
		}
		f.current.Release()
		f.current = nil
	}
}

func (f *fanOut) release() {
	if f.current != nil {
		f.current.Release()
		f.current = nil
	}
}

func (f *fanOut) Reset() {
	f.resetChildren()
	f.release()
}

func (f *fanOut) Free() {
	if f.freeChildren() {
		f.release()
	}
}

func (f *fanOut) Clone() Operator { return newFanOut(f.child.Clone(), f.copies) }

func (f *fanOut) Explain() Explain {
	return Explain{Name: "FanOut", Info: "FanOut", SubExplain: explainChildren(f)}
}
