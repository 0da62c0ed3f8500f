package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetGlobalLogger(t *testing.T) {
	original := Logger
	t.Cleanup(func() { SetGlobalLogger(original) })

	var buf bytes.Buffer
	SetGlobalLogger(zerolog.New(&buf))

	Info().Str("plan", "p1").Msg("executing")
	require.Contains(t, buf.String(), `"plan":"p1"`)
	require.Contains(t, buf.String(), `"message":"executing"`)

	// The default context logger follows the global logger.
	buf.Reset()
	Ctx(context.Background()).Warn().Msg("from context")
	require.Contains(t, buf.String(), "from context")
}

func TestForOperator(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	opLogger := ForOperator(ctx, "SemiApply", "abc123")
	opLogger.Info().Msg("decided")

	out := buf.String()
	require.Contains(t, out, `"operator":"SemiApply"`)
	require.Contains(t, out, `"operatorID":"abc123"`)
	require.Contains(t, out, `"message":"decided"`)
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, zerolog.WarnLevel)

	logger.Info().Msg("hidden")
	require.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}
