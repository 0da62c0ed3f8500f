package record

import (
	"go.uber.org/atomic"

	"github.com/authzed/graphexec/pkg/execerrors"
)

// Allocator hands out records for a single execution and keeps track of how
// many of them are still alive. Partitions of the same plan may share one
// allocator, so its counters are atomic.
type Allocator struct {
	schema    *Schema
	live      atomic.Int64
	allocated atomic.Int64
}

// NewAllocator creates an allocator for records of the given schema.
func NewAllocator(schema *Schema) *Allocator {
	return &Allocator{schema: schema}
}

// Schema returns the schema records are allocated for.
func (a *Allocator) Schema() *Schema {
	return a.schema
}

// New returns an empty record with a single reference held by the caller.
func (a *Allocator) New() *Record {
	r := &Record{
		alloc:  a,
		values: make([]any, a.schema.Len()),
	}
	r.refs.Store(1)
	execerrors.WatchForLeak(r, func(r *Record) bool { return !r.Freed() }, "record was never released")
	a.live.Inc()
	a.allocated.Inc()
	return r
}

// Live is the number of records allocated and not yet freed.
func (a *Allocator) Live() int64 {
	return a.live.Load()
}

// Allocated is the total number of records ever allocated.
func (a *Allocator) Allocated() int64 {
	return a.allocated.Load()
}
