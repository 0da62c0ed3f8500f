//go:generate go run go.uber.org/mock/mockgen -source types.go -destination ./mocks/mock_types.go -package mocks

package exec

import (
	"github.com/authzed/graphexec/pkg/record"
)

// Kind names the type of an operator.
type Kind string

const (
	KindArgument            Kind = "Argument"
	KindSemiApply           Kind = "SemiApply"
	KindAntiSemiApply       Kind = "AntiSemiApply"
	KindFixed               Kind = "Fixed"
	KindNodeScan            Kind = "NodeScan"
	KindConditionalTraverse Kind = "ConditionalTraverse"
	KindFilter              Kind = "Filter"
)

// Operator is a node of an execution tree.
//
// The children of an operator are fixed when it is constructed. Init, Reset
// and Free act on the children before the operator itself.
type Operator interface {
	// Init prepares the operator and its children for execution. A failure
	// aborts the whole plan.
	Init(ctx *Context) error

	// ConsumeImpl returns the next record, owned by the caller. A nil record
	// with a nil error means the operator is exhausted; it stays exhausted
	// until Reset. Callers should go through Context.Consume rather than call
	// this directly.
	ConsumeImpl(ctx *Context) (*record.Record, error)

	// Reset rewinds the operator and its children so they can be pulled again
	// from the beginning, releasing any records they hold.
	Reset()

	// Free releases every resource held by the operator and its children.
	// Calling Free more than once is a no-op.
	Free()

	// Clone returns a fresh, uninitialized tree of the same shape.
	Clone() Operator

	// Children returns the branches of the operator, in order.
	Children() []Operator

	// ID uniquely identifies the operator.
	ID() string

	Kind() Kind

	Explain() Explain
}
