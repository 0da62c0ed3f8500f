package exec

import (
	"fmt"

	"github.com/authzed/graphexec/internal/logging"
	"github.com/authzed/graphexec/pkg/execerrors"
	"github.com/authzed/graphexec/pkg/record"
)

// ApplyMode selects whether a SemiApply keeps the main records that have a
// match, or the ones that do not.
type ApplyMode int

const (
	// SemiApplyMode passes on main records for which the match branch yields a record.
	SemiApplyMode ApplyMode = iota

	// AntiSemiApplyMode passes on main records for which the match branch yields nothing.
	AntiSemiApplyMode
)

func (m ApplyMode) String() string {
	switch m {
	case SemiApplyMode:
		return "semi"
	case AntiSemiApplyMode:
		return "anti"
	default:
		return fmt.Sprintf("ApplyMode(%d)", int(m))
	}
}

func (m ApplyMode) kind() Kind {
	if m == AntiSemiApplyMode {
		return KindAntiSemiApply
	}
	return KindSemiApply
}

type applyPhase int

const (
	needMain applyPhase = iota
	haveMain
)

// SemiApply filters the records of its main branch by whether its match
// branch, correlated on each of them, yields anything.
//
// For every main record the match branch is rewound, the main record is
// injected into the Argument at the bottom of the match branch, and the match
// branch is pulled exactly once. A record coming back means the main record
// has a match; the match itself is discarded. The match branch is never
// pulled a second time for the same main record.
type SemiApply struct {
	opBase
	main  Operator
	match Operator
	arg   *Argument
	mode  ApplyMode

	phase     applyPhase
	r         *record.Record
	exhausted bool
}

var _ Operator = &SemiApply{}

// NewSemiApply creates a SemiApply over the given branches. arg must be an
// Argument inside the match branch, and must not be reachable from main.
func NewSemiApply(main, match Operator, arg *Argument, mode ApplyMode) (*SemiApply, error) {
	switch {
	case main == nil:
		return nil, execerrors.MustBugf("semi apply requires a main branch")
	case match == nil:
		return nil, execerrors.MustBugf("semi apply requires a match branch")
	case arg == nil:
		return nil, execerrors.MustBugf("semi apply requires an argument in its match branch")
	case mode != SemiApplyMode && mode != AntiSemiApplyMode:
		return nil, execerrors.MustBugf("unknown apply mode %d", int(mode))
	case !Contains(match, arg):
		return nil, execerrors.MustBugf("argument %s is not reachable from the match branch", arg.ID())
	case Contains(main, arg):
		return nil, execerrors.MustBugf("argument %s is reachable from the main branch", arg.ID())
	}

	return newSemiApply(main, match, arg, mode), nil
}

// NewAntiSemiApply creates a SemiApply in AntiSemiApplyMode.
func NewAntiSemiApply(main, match Operator, arg *Argument) (*SemiApply, error) {
	return NewSemiApply(main, match, arg, AntiSemiApplyMode)
}

func newSemiApply(main, match Operator, arg *Argument, mode ApplyMode) *SemiApply {
	return &SemiApply{
		opBase: newOpBase(mode.kind(), main, match),
		main:   main,
		match:  match,
		arg:    arg,
		mode:   mode,
	}
}

// Mode returns the mode of the operator.
func (s *SemiApply) Mode() ApplyMode {
	return s.mode
}

// Argument returns the Argument the match branch is correlated through.
func (s *SemiApply) Argument() *Argument {
	return s.arg
}

func (s *SemiApply) Init(ctx *Context) error {
	return s.initChildren(ctx)
}

func (s *SemiApply) ConsumeImpl(ctx *Context) (*record.Record, error) {
	if !s.initialized {
		return nil, execerrors.MustBugf("%s consumed before being initialized", s.kind)
	}

	for {
		if s.phase == needMain {
			if s.exhausted {
				return nil, nil
			}

			r, err := ctx.Consume(s.main)
			if err != nil {
				return nil, err
			}
			if r == nil {
				s.exhausted = true
				return nil, nil
			}
			s.r = r
			s.phase = haveMain
		}

		matched, err := s.probe(ctx)
		if err != nil {
			// The held record stays with the operator and is released by
			// Reset or Free.
			return nil, err
		}

		s.phase = needMain
		if matched != (s.mode == AntiSemiApplyMode) {
			applyDecisionCounter.WithLabelValues(s.mode.String(), "emit").Inc()
			ctx.TraceStep(s, "emitting %s", s.r)
			out := s.r
			s.r = nil
			return out, nil
		}

		applyDecisionCounter.WithLabelValues(s.mode.String(), "discard").Inc()
		ctx.TraceStep(s, "discarding %s", s.r)
		s.r.Release()
		s.r = nil
	}
}

// probe reports whether the match branch yields a record when correlated on
// the held main record. The branch is pulled once.
func (s *SemiApply) probe(ctx *Context) (bool, error) {
	s.match.Reset()
	s.arg.Inject(s.r.Share())

	matched, err := ctx.Consume(s.match)
	if err != nil {
		return false, err
	}
	if matched == nil {
		return false, nil
	}
	matched.Release()
	return true, nil
}

func (s *SemiApply) Reset() {
	s.resetChildren()
	if s.r != nil {
		s.r.Release()
		s.r = nil
	}
	s.phase = needMain
	s.exhausted = false
}

func (s *SemiApply) Free() {
	if !s.freeChildren() {
		return
	}
	if s.r != nil {
		s.r.Release()
		s.r = nil
	}
	logging.Trace().Str("id", s.id).Str("kind", string(s.kind)).Msg("freed semi apply")
}

// Clone returns an uninitialized copy of the tree. The copy is correlated
// through the Argument of the cloned match branch.
func (s *SemiApply) Clone() Operator {
	main := s.main.Clone()
	match := s.match.Clone()

	arg, ok := counterpart(s.match, match, s.arg).(*Argument)
	if !ok {
		execerrors.MustPanic("cloned match branch of %s has no argument in place of %s", s.id, s.arg.ID())
	}
	return newSemiApply(main, match, arg, s.mode)
}

func (s *SemiApply) drivingChildren() []Operator {
	return []Operator{s.main}
}

func (s *SemiApply) Explain() Explain {
	return Explain{
		Name:       string(s.kind),
		Info:       string(s.kind),
		SubExplain: explainChildren(s),
	}
}
