package exec

import (
	"errors"
	"fmt"
	"iter"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/authzed/graphexec/internal/logging"
	"github.com/authzed/graphexec/pkg/execerrors"
	"github.com/authzed/graphexec/pkg/record"
)

var tracer = otel.Tracer("graphexec/pkg/exec")

// ErrPlanFreed is returned when a plan is used after it was freed.
var ErrPlanFreed = errors.New("plan has been freed")

type planState int

const (
	planFresh planState = iota
	planInitialized
	planFreed
)

// Plan is an executable operator tree, together with the schema of the
// records flowing through it.
type Plan struct {
	root   Operator
	schema *record.Schema
	state  planState
}

// NewPlan creates a plan over root. The schema must cover every slot the tree
// writes.
func NewPlan(root Operator, schema *record.Schema) *Plan {
	return &Plan{root: root, schema: schema}
}

// Root returns the root operator of the plan.
func (p *Plan) Root() Operator {
	return p.root
}

// Schema returns the schema of the records the plan produces.
func (p *Plan) Schema() *record.Schema {
	return p.schema
}

// Init initializes every operator of the plan. Calling Init on an initialized
// plan does nothing. If initialization fails, every operator is freed and the
// plan cannot be used again.
func (p *Plan) Init(ctx *Context) error {
	switch p.state {
	case planFreed:
		return ErrPlanFreed
	case planInitialized:
		return nil
	}

	if ctx.Records == nil {
		ctx.Records = record.NewAllocator(p.schema)
	}

	if err := p.root.Init(ctx); err != nil {
		p.Free()
		return fmt.Errorf("unable to initialize plan: %w", err)
	}

	p.state = planInitialized
	return nil
}

// Next returns the next record produced by the plan, owned by the caller, or
// nil once the plan is exhausted.
func (p *Plan) Next(ctx *Context) (*record.Record, error) {
	switch p.state {
	case planFreed:
		return nil, ErrPlanFreed
	case planFresh:
		return nil, execerrors.MustBugf("plan consumed before being initialized")
	}
	return ctx.Consume(p.root)
}

// Records returns a sequence of the records produced by the plan. The
// sequence stops after the first error.
func (p *Plan) Records(ctx *Context) iter.Seq2[*record.Record, error] {
	return func(yield func(*record.Record, error) bool) {
		for {
			r, err := p.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if r == nil {
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Execute pulls every record from the plan. A fresh plan is initialized
// first; an initialized plan is reset so every execution starts from the
// beginning.
//
// If execution fails, the records produced before the failure are returned
// along with the error. The caller owns every returned record.
func (p *Plan) Execute(ctx *Context) ([]*record.Record, error) {
	spanCtx, span := tracer.Start(ctx.Context, "Plan.Execute", trace.WithAttributes(
		attribute.String("root", string(p.root.Kind())),
	))
	defer span.End()

	original := ctx.Context
	ctx.Context = spanCtx
	defer func() { ctx.Context = original }()

	timer := prometheus.NewTimer(planExecutionHistogram)
	defer timer.ObserveDuration()

	if p.state == planInitialized {
		p.root.Reset()
	} else if err := p.Init(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var records []*record.Record
	for r, err := range p.Records(ctx) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logging.Debug().Err(err).Int("produced", len(records)).Msg("plan execution failed")
			return records, err
		}
		records = append(records, r)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

// Reset rewinds the plan so it can be executed again from the start.
func (p *Plan) Reset() {
	if p.state != planInitialized {
		return
	}
	p.root.Reset()
}

// Free releases everything held by the plan. Calling Free again does nothing.
func (p *Plan) Free() {
	if p.state == planFreed {
		return
	}
	p.root.Free()
	p.state = planFreed
}

// Clone returns an uninitialized copy of the plan.
func (p *Plan) Clone() *Plan {
	return NewPlan(p.root.Clone(), p.schema)
}

// Partition returns n uninitialized clones of the plan, the i-th producing the
// i-th share of the records of the whole plan. Scans that drive the output of
// the plan are split between the clones; scans inside match branches are not.
func (p *Plan) Partition(n int) ([]*Plan, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid partition count %d", n)
	}
	if n == 1 {
		return []*Plan{p.Clone()}, nil
	}

	plans := make([]*Plan, 0, n)
	for i := range n {
		clone := p.Clone()
		if partitioned := partitionDriving(clone.root, i, n); partitioned == 0 {
			clone.Free()
			for _, built := range plans {
				built.Free()
			}
			return nil, fmt.Errorf("plan rooted at %s has no partitionable scan", p.root.Kind())
		}
		plans = append(plans, clone)
	}
	return plans, nil
}

// partitionable operators can restrict themselves to one partition of their
// input, so that clones of a plan can run side by side.
type partitionable interface {
	SetPartition(index, count int)
}

// driver is implemented by operators where only some branches determine
// which records flow out of the operator. Partitioning only descends into
// those branches.
type driver interface {
	drivingChildren() []Operator
}

// partitionDriving partitions the scans feeding the output of op, and returns
// how many it partitioned.
func partitionDriving(op Operator, index, count int) int {
	if scan, ok := op.(partitionable); ok {
		scan.SetPartition(index, count)
		return 1
	}

	children := op.Children()
	if d, ok := op.(driver); ok {
		children = d.drivingChildren()
	}

	total := 0
	for _, child := range children {
		total += partitionDriving(child, index, count)
	}
	return total
}

// Explain describes the operator tree of the plan.
func (p *Plan) Explain() Explain {
	return p.root.Explain()
}
