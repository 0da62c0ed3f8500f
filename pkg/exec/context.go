package exec

import (
	"context"
	"fmt"
	"time"

	"github.com/authzed/graphexec/pkg/execerrors"
	"github.com/authzed/graphexec/pkg/graph"
	"github.com/authzed/graphexec/pkg/record"
)

// Context represents a single execution of a plan.
// It is both a standard context.Context and all the execution-time handles needed to pull records
// through an operator tree, such as the graph being matched and the allocator for records.
//
// Context is the concrete type that contains the overall handles, and uses the executor as a strategy for continuing execution.
//
// A Context drives a single operator tree from a single goroutine. Partitions get a Context each.
type Context struct {
	context.Context
	Executor    Executor
	Graph       graph.Reader
	Records     *record.Allocator
	TraceLogger *TraceLogger

	// Analyze, if non-nil, collects execution statistics per operator ID.
	Analyze map[string]*AnalyzeStats
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithGraph sets the graph operators read from.
func WithGraph(g graph.Reader) ContextOption {
	return func(ctx *Context) {
		ctx.Graph = g
	}
}

// WithAllocator sets the allocator operators create records with. When unset,
// Plan.Init installs an allocator for the plan's schema.
func WithAllocator(alloc *record.Allocator) ContextOption {
	return func(ctx *Context) {
		ctx.Records = alloc
	}
}

// WithTraceLogger enables tracing into the given logger.
func WithTraceLogger(logger *TraceLogger) ContextOption {
	return func(ctx *Context) {
		ctx.TraceLogger = logger
	}
}

// WithAnalyze enables collection of per-operator statistics.
func WithAnalyze() ContextOption {
	return func(ctx *Context) {
		ctx.Analyze = make(map[string]*AnalyzeStats)
	}
}

// WithExecutor replaces the default LocalExecutor.
func WithExecutor(executor Executor) ContextOption {
	return func(ctx *Context) {
		ctx.Executor = executor
	}
}

// NewLocalContext creates a Context that executes operators in the calling goroutine.
func NewLocalContext(stdContext context.Context, opts ...ContextOption) *Context {
	ctx := &Context{
		Context:  stdContext,
		Executor: LocalExecutor{},
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Consume pulls the next record from op. A nil record with a nil error means op is exhausted.
//
// Any error returned by op is surfaced as an execerrors.FatalError naming the operator that
// raised it; errors that already are fatal pass through unchanged.
func (ctx *Context) Consume(op Operator) (*record.Record, error) {
	if ctx.Executor == nil {
		return nil, execerrors.MustBugf("no executor has been set")
	}

	if ctx.TraceLogger != nil {
		ctx.TraceLogger.EnterOperator(op)
	}

	start := time.Now()
	r, err := ctx.Executor.Consume(ctx, op)
	elapsed := time.Since(start)

	consumeCounter.WithLabelValues(string(op.Kind())).Inc()
	if ctx.Analyze != nil {
		stats, ok := ctx.Analyze[op.ID()]
		if !ok {
			stats = &AnalyzeStats{}
			ctx.Analyze[op.ID()] = stats
		}
		stats.ConsumeCalls++
		stats.Time += elapsed
		switch {
		case err != nil:
			stats.Errors++
		case r != nil:
			stats.Records++
		}
	}

	if err != nil {
		err = execerrors.NewFatalError(err, string(op.Kind()), op.ID())
	}

	if ctx.TraceLogger != nil {
		ctx.TraceLogger.ExitOperator(op, r, err)
	}

	if err != nil {
		return nil, err
	}
	return r, nil
}

// TraceStep records an intermediate step of op in the trace, if tracing is enabled.
func (ctx *Context) TraceStep(op Operator, format string, args ...any) {
	if ctx.TraceLogger == nil {
		return
	}
	ctx.TraceLogger.LogStep(op, fmt.Sprintf(format, args...))
}

// Executor chooses how to proceed given an operator -- locally, or perhaps elsewhere -- and
// evaluates the pull on the subtree.
// The correctness of the records produced is up to each operator; the Executor makes that
// evaluation happen in the most convenient form, based on its implementation.
type Executor interface {
	// Consume returns the next record of the operator, or nil when the operator is exhausted.
	Consume(ctx *Context, op Operator) (*record.Record, error)
}

// LocalExecutor is the simplest executor.
// It simply calls the operator's implementation directly.
type LocalExecutor struct{}

var _ Executor = LocalExecutor{}

// Consume returns the next record of the operator, or nil when the operator is exhausted.
func (l LocalExecutor) Consume(ctx *Context, op Operator) (*record.Record, error) {
	return op.ConsumeImpl(ctx)
}
