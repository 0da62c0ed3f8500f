package exec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/authzed/graphexec/pkg/exec"
	"github.com/authzed/graphexec/pkg/exec/mocks"
	"github.com/authzed/graphexec/pkg/execerrors"
	"github.com/authzed/graphexec/pkg/record"
)

var errStorage = errors.New("storage unavailable")

// newMatchBranch returns a mocked match branch sitting on top of arg. It
// pulls arg, then answers with the given outcomes in turn: true for a match,
// false for no match, and an error for a failure.
func newMatchBranch(ctrl *gomock.Controller, arg *exec.Argument, outcomes ...any) *mocks.MockOperator {
	match := mocks.NewMockOperator(ctrl)
	match.EXPECT().Children().Return([]exec.Operator{arg}).AnyTimes()
	match.EXPECT().ID().Return("match").AnyTimes()
	match.EXPECT().Kind().Return(exec.Kind("Mock")).AnyTimes()
	match.EXPECT().Init(gomock.Any()).Return(nil).AnyTimes()
	match.EXPECT().Reset().Do(arg.Reset).AnyTimes()
	match.EXPECT().Free().Do(arg.Free).AnyTimes()

	calls := []any{}
	for _, outcome := range outcomes {
		switch o := outcome.(type) {
		case bool:
			calls = append(calls, match.EXPECT().ConsumeImpl(gomock.Any()).DoAndReturn(func(ctx *exec.Context) (*record.Record, error) {
				r, err := ctx.Consume(arg)
				if err != nil || r == nil || o {
					return r, err
				}
				r.Release()
				return nil, nil
			}))
		case error:
			calls = append(calls, match.EXPECT().ConsumeImpl(gomock.Any()).Return(nil, o))
		}
	}
	gomock.InOrder(calls...)
	return match
}

func TestApplyFatalErrorAfterEmission(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	ctrl := gomock.NewController(t)

	schema := record.NewSchema("x")
	ctx := exec.NewLocalContext(t.Context(), exec.WithAllocator(record.NewAllocator(schema)), exec.WithAnalyze())

	arg := exec.NewArgument()
	match := newMatchBranch(ctrl, arg, true, errStorage)
	main := exec.NewFixed([]any{"A"}, []any{"B"}, []any{"C"})
	apply, err := exec.NewSemiApply(main, match, arg, exec.SemiApplyMode)
	require.NoError(err)
	require.NoError(apply.Init(ctx))

	first, err := ctx.Consume(apply)
	require.NoError(err)
	require.Equal("A", first.Get(0))

	_, err = ctx.Consume(apply)
	require.ErrorIs(err, errStorage)

	ferr, ok := execerrors.AsFatalError(err)
	require.True(ok)
	require.Equal("Mock", ferr.OperatorKind)
	require.Equal("match", ferr.OperatorID)

	// C is never pulled once the probe for B fails.
	require.Equal(2, ctx.Analyze[main.ID()].ConsumeCalls)

	first.Release()
	apply.Free()
	require.Zero(ctx.Records.Live())
}

func TestAntiApplyNeverTreatsFailureAsNoMatch(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	ctrl := gomock.NewController(t)

	schema := record.NewSchema("x")
	ctx := exec.NewLocalContext(t.Context(), exec.WithAllocator(record.NewAllocator(schema)))

	arg := exec.NewArgument()
	match := newMatchBranch(ctrl, arg, false, errStorage)
	apply, err := exec.NewAntiSemiApply(exec.NewFixed([]any{"A"}, []any{"B"}), match, arg)
	require.NoError(err)

	plan := exec.NewPlan(apply, schema)
	out, err := plan.Execute(ctx)
	require.ErrorIs(err, errStorage)
	require.Len(out, 1, "only the record decided before the failure is produced")
	require.Equal("A", out[0].Get(0))

	for _, r := range out {
		r.Release()
	}
	plan.Free()
	require.Zero(ctx.Records.Live())
}

func TestApplyMainBranchFailure(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	ctrl := gomock.NewController(t)

	schema := record.NewSchema("x")
	ctx := exec.NewLocalContext(t.Context(), exec.WithAllocator(record.NewAllocator(schema)))

	main := mocks.NewMockOperator(ctrl)
	main.EXPECT().Children().Return(nil).AnyTimes()
	main.EXPECT().ID().Return("main").AnyTimes()
	main.EXPECT().Kind().Return(exec.Kind("Mock")).AnyTimes()
	main.EXPECT().Init(gomock.Any()).Return(nil)
	main.EXPECT().ConsumeImpl(gomock.Any()).Return(nil, errStorage)
	main.EXPECT().Free()

	arg := exec.NewArgument()
	match := newMatchBranch(ctrl, arg)
	apply, err := exec.NewSemiApply(main, match, arg, exec.SemiApplyMode)
	require.NoError(err)
	require.NoError(apply.Init(ctx))

	_, err = ctx.Consume(apply)
	require.ErrorIs(err, errStorage)
	ferr, ok := execerrors.AsFatalError(err)
	require.True(ok)
	require.Equal("main", ferr.OperatorID)

	apply.Free()
}

func TestApplyInitFailureTearsDown(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	ctrl := gomock.NewController(t)

	schema := record.NewSchema("x")
	ctx := exec.NewLocalContext(t.Context(), exec.WithAllocator(record.NewAllocator(schema)))

	main := mocks.NewMockOperator(ctrl)
	main.EXPECT().Children().Return(nil).AnyTimes()
	main.EXPECT().Init(gomock.Any()).Return(nil)
	main.EXPECT().Free().MinTimes(1)

	arg := exec.NewArgument()
	match := mocks.NewMockOperator(ctrl)
	match.EXPECT().Children().Return([]exec.Operator{arg}).AnyTimes()
	match.EXPECT().Init(gomock.Any()).Return(errStorage)
	match.EXPECT().Free().AnyTimes()

	apply, err := exec.NewSemiApply(main, match, arg, exec.SemiApplyMode)
	require.NoError(err)

	plan := exec.NewPlan(apply, schema)
	err = plan.Init(ctx)
	require.ErrorIs(err, errStorage)
	require.ErrorIs(plan.Init(ctx), exec.ErrPlanFreed)
}

func TestPartitionFailureFreesClones(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	clone := mocks.NewMockOperator(ctrl)
	clone.EXPECT().Children().Return(nil).AnyTimes()
	clone.EXPECT().Free().Times(1)

	root := mocks.NewMockOperator(ctrl)
	root.EXPECT().Kind().Return(exec.Kind("Mock")).AnyTimes()
	root.EXPECT().Clone().Return(clone)

	plans, err := exec.NewPlan(root, record.NewSchema("x")).Partition(2)
	require.ErrorContains(t, err, "no partitionable scan")
	require.Nil(t, plans)
}
