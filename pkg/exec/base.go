package exec

import (
	"fmt"

	"github.com/google/uuid"
)

// opBase carries the state every operator shares: identity, children, and
// where it is in its lifecycle.
type opBase struct {
	id          string
	kind        Kind
	children    []Operator
	initialized bool
	freed       bool
}

func newOpBase(kind Kind, children ...Operator) opBase {
	return opBase{
		id:       uuid.NewString(),
		kind:     kind,
		children: children,
	}
}

func (b *opBase) ID() string {
	return b.id
}

func (b *opBase) Kind() Kind {
	return b.kind
}

func (b *opBase) Children() []Operator {
	return b.children
}

// initChildren initializes the children in order. If one fails, the children
// initialized before it are freed and the error is returned.
func (b *opBase) initChildren(ctx *Context) error {
	for i, child := range b.children {
		if err := child.Init(ctx); err != nil {
			for _, initialized := range b.children[:i] {
				initialized.Free()
			}
			return fmt.Errorf("unable to initialize %s child %d: %w", b.kind, i, err)
		}
	}
	b.initialized = true
	return nil
}

func (b *opBase) resetChildren() {
	for _, child := range b.children {
		child.Reset()
	}
}

// freeChildren frees the children and marks the operator freed. It returns
// false if the operator was already freed.
func (b *opBase) freeChildren() bool {
	if b.freed {
		return false
	}
	for _, child := range b.children {
		child.Free()
	}
	b.freed = true
	return true
}
