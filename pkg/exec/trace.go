package exec

import (
	"fmt"
	"strings"

	"github.com/authzed/graphexec/pkg/record"
)

// TraceLogger records an indented trace of pulls through an operator tree.
type TraceLogger struct {
	traces []string
	depth  int
	stack  []Operator
}

// NewTraceLogger creates a new, empty trace logger.
func NewTraceLogger() *TraceLogger {
	return &TraceLogger{}
}

func operatorLabel(op Operator) string {
	id := op.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s(%s)", op.Kind(), id)
}

// EnterOperator logs the start of a pull from op.
func (t *TraceLogger) EnterOperator(op Operator) {
	t.traces = append(t.traces, fmt.Sprintf("%s-> %s: consume", strings.Repeat("  ", t.depth), operatorLabel(op)))
	t.stack = append(t.stack, op)
	t.depth++
}

// ExitOperator logs the outcome of a pull from op.
func (t *TraceLogger) ExitOperator(op Operator, r *record.Record, err error) {
	if t.depth > 0 {
		t.depth--
	}
	if len(t.stack) > 0 {
		t.stack = t.stack[:len(t.stack)-1]
	}

	var outcome string
	switch {
	case err != nil:
		outcome = "failed: " + err.Error()
	case r == nil:
		outcome = "exhausted"
	default:
		outcome = "returned " + r.String()
	}
	t.traces = append(t.traces, fmt.Sprintf("%s<- %s: %s", strings.Repeat("  ", t.depth), operatorLabel(op), outcome))
}

// LogStep logs an intermediate step of op, indented under the pull it belongs to.
func (t *TraceLogger) LogStep(op Operator, step string) {
	depth := t.depth
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == op {
			depth = i + 1
			break
		}
	}
	t.traces = append(t.traces, fmt.Sprintf("%s   %s: %s", strings.Repeat("  ", depth), operatorLabel(op), step))
}

// DumpTrace returns every trace line, one per line.
func (t *TraceLogger) DumpTrace() string {
	return strings.Join(t.traces, "\n")
}
