package record

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/authzed/graphexec/pkg/execerrors"
)

// Record is a row of slot values flowing between operators. A record is
// reference counted: every holder owns one reference and gives it up with
// Release. The record is freed when the last reference is released.
//
// A record may only be mutated by a holder that owns the sole reference.
type Record struct {
	alloc  *Allocator
	values []any
	refs   atomic.Int32
}

// Share takes an additional reference to the record and returns it, so that
// the caller and the new holder can release independently.
func (r *Record) Share() *Record {
	if r.refs.Inc() <= 1 {
		execerrors.MustPanic("shared a record that was already freed")
	}
	return r
}

// Release gives up one reference. The last release frees the record.
func (r *Record) Release() {
	remaining := r.refs.Dec()
	switch {
	case remaining == 0:
		r.values = nil
		r.alloc.live.Dec()
	case remaining < 0:
		execerrors.MustPanic("released a record more times than it was referenced")
	}
}

// RefCount is the number of live references to the record.
func (r *Record) RefCount() int32 {
	return r.refs.Load()
}

// Freed reports whether every reference to the record has been released.
func (r *Record) Freed() bool {
	return r.refs.Load() <= 0
}

// Schema returns the schema of the record.
func (r *Record) Schema() *Schema {
	return r.alloc.schema
}

// Get returns the value in slot i, or nil if the slot is unset.
func (r *Record) Get(i int) any {
	execerrors.DebugAssertf(func() bool { return !r.Freed() }, "read from a freed record")
	if i < 0 || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

// Lookup returns the value in the slot with the given name.
func (r *Record) Lookup(name string) (any, bool) {
	idx, ok := r.alloc.schema.Index(name)
	if !ok {
		return nil, false
	}
	v := r.Get(idx)
	return v, v != nil
}

// Set stores v in slot i. Setting a slot of a shared or freed record is a bug.
func (r *Record) Set(i int, v any) error {
	refs := r.refs.Load()
	switch {
	case refs <= 0:
		return execerrors.MustBugf("set slot %d of a freed record", i)
	case refs > 1:
		return execerrors.MustBugf("set slot %d of a record with %d holders", i, refs)
	}

	if i < 0 || i >= len(r.values) {
		// The schema can grow after the record was allocated.
		if i >= r.alloc.schema.Len() || i < 0 {
			return fmt.Errorf("slot %d out of range for schema of %d slots", i, r.alloc.schema.Len())
		}
		grown := make([]any, r.alloc.schema.Len())
		copy(grown, r.values)
		r.values = grown
	}
	r.values[i] = v
	return nil
}

// Clone returns a new record, solely owned by the caller, with the same values.
func (r *Record) Clone() *Record {
	clone := r.alloc.New()
	copy(clone.values, r.values)
	return clone
}

// Values returns a copy of the slot values in slot order.
func (r *Record) Values() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

func (r *Record) String() string {
	if r.Freed() {
		return "{freed}"
	}

	names := r.alloc.schema.Names()
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	for i, v := range r.values {
		if v == nil {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%s: %v", names[i], v)
	}
	sb.WriteString("}")
	return sb.String()
}

func (r *Record) MarshalZerologObject(e *zerolog.Event) {
	e.Int32("refs", r.refs.Load()).Str("record", r.String())
}
