package exec

import (
	"fmt"

	"github.com/authzed/graphexec/pkg/execerrors"
	"github.com/authzed/graphexec/pkg/record"
)

// Fixed yields a fixed list of rows, each as a fresh record whose slots are
// filled in order from the row's values. A nil value leaves its slot unset.
type Fixed struct {
	opBase
	rows [][]any
	pos  int
}

var _ Operator = &Fixed{}

// NewFixed creates a Fixed operator over the given rows.
func NewFixed(rows ...[]any) *Fixed {
	return &Fixed{
		opBase: newOpBase(KindFixed),
		rows:   rows,
	}
}

func (f *Fixed) Init(ctx *Context) error {
	if ctx.Records == nil {
		return execerrors.MustBugf("fixed operator initialized without a record allocator")
	}
	f.initialized = true
	return nil
}

func (f *Fixed) ConsumeImpl(ctx *Context) (*record.Record, error) {
	if f.pos >= len(f.rows) {
		return nil, nil
	}

	row := f.rows[f.pos]
	f.pos++

	r := ctx.Records.New()
	for i, v := range row {
		if v == nil {
			continue
		}
		if err := r.Set(i, v); err != nil {
			r.Release()
			return nil, fmt.Errorf("unable to build row %d: %w", f.pos-1, err)
		}
	}
	return r, nil
}

func (f *Fixed) Reset() {
	f.pos = 0
}

func (f *Fixed) Free() {
	f.freed = true
}

func (f *Fixed) Clone() Operator {
	return NewFixed(f.rows...)
}

func (f *Fixed) Explain() Explain {
	return Explain{
		Name: string(KindFixed),
		Info: fmt.Sprintf("Fixed(%d rows)", len(f.rows)),
	}
}
