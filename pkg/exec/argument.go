package exec

import (
	"github.com/authzed/graphexec/internal/logging"
	"github.com/authzed/graphexec/pkg/execerrors"
	"github.com/authzed/graphexec/pkg/record"
)

// Argument is a leaf operator fed from outside the pull protocol. A record
// handed to Inject is yielded exactly once by the next pull, after which the
// Argument is exhausted until something is injected again.
//
// An Argument sits at the bottom of the match branch of a SemiApply, which
// injects each main record into it.
type Argument struct {
	opBase
	cell *record.Record
}

var _ Operator = &Argument{}

// NewArgument creates an empty Argument.
func NewArgument() *Argument {
	return &Argument{opBase: newOpBase(KindArgument)}
}

func (a *Argument) Init(_ *Context) error {
	a.initialized = true
	return nil
}

// Inject places r in the Argument, taking over the caller's reference to it.
// Any record still held from an earlier injection is released.
func (a *Argument) Inject(r *record.Record) {
	execerrors.DebugAssertf(func() bool { return !a.freed }, "injected into a freed argument")
	if a.cell != nil {
		a.cell.Release()
	}
	a.cell = r
}

// Holding reports whether an injected record is waiting to be pulled.
func (a *Argument) Holding() bool {
	return a.cell != nil
}

func (a *Argument) ConsumeImpl(ctx *Context) (*record.Record, error) {
	if a.cell == nil {
		return nil, nil
	}

	r := a.cell
	a.cell = nil
	ctx.TraceStep(a, "yielding injected record %s", r)
	return r, nil
}

func (a *Argument) Reset() {
	if a.cell != nil {
		a.cell.Release()
		a.cell = nil
	}
}

func (a *Argument) Free() {
	if a.freed {
		return
	}
	a.Reset()
	a.freed = true
	logging.Trace().Str("id", a.id).Msg("freed argument")
}

func (a *Argument) Clone() Operator {
	return NewArgument()
}

func (a *Argument) Explain() Explain {
	return Explain{
		Name: string(KindArgument),
		Info: "Argument",
	}
}
