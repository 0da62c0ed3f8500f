package exec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authzed/graphexec/pkg/record"
)

func TestArgument(t *testing.T) {
	t.Parallel()

	schema := record.NewSchema("x")

	t.Run("yields an injected record once", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)

		ctx := newTestContext(t, schema)
		arg := NewArgument()
		require.NoError(arg.Init(ctx))

		r, err := ctx.Consume(arg)
		require.NoError(err)
		require.Nil(r, "an empty argument is exhausted")

		in := ctx.Records.New()
		require.NoError(in.Set(0, "A"))
		arg.Inject(in)
		require.True(arg.Holding())

		r, err = ctx.Consume(arg)
		require.NoError(err)
		require.Same(in, r)
		require.False(arg.Holding())

		for range 3 {
			again, err := ctx.Consume(arg)
			require.NoError(err)
			require.Nil(again)
		}

		r.Release()
		arg.Free()
		require.Zero(ctx.Records.Live())
	})

	t.Run("inject releases the previous record", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)

		ctx := newTestContext(t, schema)
		arg := NewArgument()
		first := ctx.Records.New()
		second := ctx.Records.New()

		arg.Inject(first)
		arg.Inject(second)
		require.True(first.Freed())
		require.False(second.Freed())

		r, err := ctx.Consume(arg)
		require.NoError(err)
		require.Same(second, r)
		r.Release()
		require.Zero(ctx.Records.Live())
	})

	t.Run("inject keeps shared records alive", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)

		ctx := newTestContext(t, schema)
		arg := NewArgument()
		held := ctx.Records.New()

		arg.Inject(held.Share())
		require.Equal(int32(2), held.RefCount())
		arg.Reset()
		require.Equal(int32(1), held.RefCount())
		require.False(arg.Holding())

		arg.Inject(held.Share())
		arg.Free()
		arg.Free()
		require.Equal(int32(1), held.RefCount())

		held.Release()
		require.Zero(ctx.Records.Live())
	})

	t.Run("clone is empty", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(t, schema)
		arg := NewArgument()
		arg.Inject(ctx.Records.New())

		clone := arg.Clone().(*Argument)
		require.False(t, clone.Holding())
		require.NotEqual(t, arg.ID(), clone.ID())

		arg.Free()
		require.Zero(t, ctx.Records.Live())
	})
}
