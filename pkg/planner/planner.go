// Package planner turns declarative pattern queries into executable plans.
//
// Every exists or not_exists condition becomes a SemiApply or AntiSemiApply
// whose match branch starts from a fresh Argument and traverses the pattern's
// hops. Conditions nested in a pattern become Apply operators nested inside
// that pattern's match branch.
package planner

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/authzed/graphexec/internal/logging"
	"github.com/authzed/graphexec/pkg/exec"
	"github.com/authzed/graphexec/pkg/graph"
	"github.com/authzed/graphexec/pkg/record"
)

var (
	ErrEmptyQuery       = errors.New("query is empty")
	ErrMissingAlias     = errors.New("match requires an alias")
	ErrDuplicateAlias   = errors.New("alias is already bound")
	ErrUnknownAlias     = errors.New("alias is not bound")
	ErrEmptyPattern     = errors.New("pattern has no hops")
	ErrInvalidCondition = errors.New("condition must set exactly one of exists and not_exists")
)

// Result is a built query.
type Result struct {
	Plan *exec.Plan

	// Columns are the returned aliases, and Slots their slots in the records
	// produced by the plan.
	Columns []string
	Slots   []int
}

// Project returns the returned values of a record produced by the plan, in
// column order.
func (r *Result) Project(rec *record.Record) []any {
	values := make([]any, 0, len(r.Slots))
	for _, slot := range r.Slots {
		values = append(values, rec.Get(slot))
	}
	return values
}

type builder struct {
	schema    *record.Schema
	anonymous int
}

// Build plans q.
func Build(q Query) (*Result, error) {
	if q.Match.Alias == "" {
		return nil, ErrMissingAlias
	}

	b := &builder{schema: record.NewSchema()}
	slot := b.schema.Add(q.Match.Alias)

	var root exec.Operator = exec.NewNodeScan(q.Match.Alias, slot, q.Match.Label)
	if len(q.Match.Properties) > 0 {
		root = exec.NewFilter(root, describe(q.Match), matchNode(slot, NodePattern{Properties: q.Match.Properties}))
	}

	scope := map[string]int{q.Match.Alias: slot}
	for i, cond := range q.Where {
		var err error
		root, err = b.applyCondition(root, cond, scope)
		if err != nil {
			return nil, fmt.Errorf("where[%d]: %w", i, err)
		}
	}

	columns := q.Return
	if len(columns) == 0 {
		columns = []string{q.Match.Alias}
	}
	slots := make([]int, 0, len(columns))
	for _, column := range columns {
		slot, ok := scope[column]
		if !ok {
			return nil, fmt.Errorf("return %q: %w", column, ErrUnknownAlias)
		}
		slots = append(slots, slot)
	}

	plan := exec.NewPlan(root, b.schema)
	logging.Debug().Strs("slots", b.schema.Names()).Stringer("plan", plan.Explain()).Msg("built plan")
	return &Result{Plan: plan, Columns: columns, Slots: slots}, nil
}

// applyCondition returns main filtered by cond.
func (b *builder) applyCondition(main exec.Operator, cond Condition, scope map[string]int) (exec.Operator, error) {
	var (
		path *PathPattern
		mode exec.ApplyMode
	)
	switch {
	case cond.Exists != nil && cond.NotExists == nil:
		path, mode = cond.Exists, exec.SemiApplyMode
	case cond.NotExists != nil && cond.Exists == nil:
		path, mode = cond.NotExists, exec.AntiSemiApplyMode
	default:
		return nil, ErrInvalidCondition
	}

	current, ok := scope[path.From]
	if !ok {
		return nil, fmt.Errorf("from %q: %w", path.From, ErrUnknownAlias)
	}
	if len(path.Hops) == 0 {
		return nil, ErrEmptyPattern
	}

	inner := maps.Clone(scope)
	arg := exec.NewArgument()
	var branch exec.Operator = arg
	for _, hop := range path.Hops {
		alias := hop.To.Alias
		if alias == "" {
			b.anonymous++
			alias = fmt.Sprintf("_anon%d", b.anonymous)
		}
		if _, bound := inner[alias]; bound {
			return nil, fmt.Errorf("%q: %w", alias, ErrDuplicateAlias)
		}

		dst := b.schema.Add(alias)
		branch = exec.NewConditionalTraverse(branch, current, hop.Edge, dst)
		if hop.To.Label != "" || len(hop.To.Properties) > 0 {
			branch = exec.NewFilter(branch, describe(NodePattern{Alias: alias, Label: hop.To.Label, Properties: hop.To.Properties}), matchNode(dst, hop.To))
		}

		inner[alias] = dst
		current = dst
	}

	for i, nested := range path.Where {
		var err error
		branch, err = b.applyCondition(branch, nested, inner)
		if err != nil {
			return nil, fmt.Errorf("where[%d]: %w", i, err)
		}
	}

	return exec.NewSemiApply(main, branch, arg, mode)
}

// matchNode returns a predicate holding for records whose node in slot
// matches the label and properties of pattern.
func matchNode(slot int, pattern NodePattern) exec.Predicate {
	return func(_ *exec.Context, r *record.Record) (bool, error) {
		node, ok := r.Get(slot).(graph.Node)
		if !ok {
			return false, fmt.Errorf("slot %d does not hold a node", slot)
		}
		if pattern.Label != "" && !node.HasLabel(pattern.Label) {
			return false, nil
		}
		for key, expected := range pattern.Properties {
			actual, ok := node.Property(key)
			if !ok || !cmp.Equal(expected, actual) {
				return false, nil
			}
		}
		return true, nil
	}
}

func describe(pattern NodePattern) string {
	var sb strings.Builder
	sb.WriteString(pattern.Alias)
	if pattern.Label != "" {
		sb.WriteString(":" + pattern.Label)
	}
	if len(pattern.Properties) > 0 {
		sb.WriteString(" {")
		for i, key := range slices.Sorted(maps.Keys(pattern.Properties)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %v", key, pattern.Properties[key])
		}
		sb.WriteString("}")
	}
	return sb.String()
}
