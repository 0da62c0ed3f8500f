package exec

import (
	"fmt"

	"github.com/authzed/graphexec/pkg/record"
)

// Predicate decides whether a record is kept by a Filter. It must not retain
// or release the record.
type Predicate func(ctx *Context, r *record.Record) (bool, error)

// Filter yields the records of its child that satisfy a predicate and
// releases the rest.
type Filter struct {
	opBase
	child       Operator
	description string
	predicate   Predicate
	exhausted   bool
}

var _ Operator = &Filter{}

// NewFilter creates a filter. The description is only used to explain the plan.
func NewFilter(child Operator, description string, predicate Predicate) *Filter {
	return &Filter{
		opBase:      newOpBase(KindFilter, child),
		child:       child,
		description: description,
		predicate:   predicate,
	}
}

func (f *Filter) Init(ctx *Context) error {
	return f.initChildren(ctx)
}

func (f *Filter) ConsumeImpl(ctx *Context) (*record.Record, error) {
	for !f.exhausted {
		r, err := ctx.Consume(f.child)
		if err != nil {
			return nil, err
		}
		if r == nil {
			f.exhausted = true
			break
		}

		keep, err := f.predicate(ctx, r)
		if err != nil {
			r.Release()
			return nil, fmt.Errorf("unable to evaluate %s: %w", f.description, err)
		}
		if keep {
			return r, nil
		}
		r.Release()
	}
	return nil, nil
}

func (f *Filter) Reset() {
	f.resetChildren()
	f.exhausted = false
}

func (f *Filter) Free() {
	f.freeChildren()
}

func (f *Filter) Clone() Operator {
	return NewFilter(f.child.Clone(), f.description, f.predicate)
}

func (f *Filter) Explain() Explain {
	return Explain{
		Name:       string(KindFilter),
		Info:       fmt.Sprintf("Filter(%s)", f.description),
		SubExplain: explainChildren(f),
	}
}
