package exec

import (
	"fmt"
	"strings"
	"time"
)

// AnalyzeStats are the execution statistics gathered for one operator.
// Time is inclusive of the time spent in the operator's children.
type AnalyzeStats struct {
	ConsumeCalls int
	Records      int
	Errors       int
	Time         time.Duration
}

// FormatAnalysis returns a formatted string showing the operator tree with execution statistics
// for each operator. Stats are looked up by operator ID from the analyze map.
func FormatAnalysis(root Operator, analyze map[string]*AnalyzeStats) string {
	if root == nil {
		return "No operator tree provided"
	}
	if len(analyze) == 0 {
		return "No analysis data available"
	}

	var sb strings.Builder
	formatAnalysisNode(root, analyze, &sb, "", "")
	return sb.String()
}

// AggregateAnalyzeStats combines all the analyze stats from a map into a single
// aggregated AnalyzeStats.
func AggregateAnalyzeStats(analyze map[string]*AnalyzeStats) AnalyzeStats {
	var total AnalyzeStats
	for _, stats := range analyze {
		total.ConsumeCalls += stats.ConsumeCalls
		total.Records += stats.Records
		total.Errors += stats.Errors
		total.Time += stats.Time
	}
	return total
}

func formatAnalysisNode(op Operator, analyze map[string]*AnalyzeStats, sb *strings.Builder, branch, indent string) {
	var stats AnalyzeStats
	if s, ok := analyze[op.ID()]; ok {
		stats = *s
	}

	id := op.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(sb, "%s%s (ID: %s)\n", branch, op.Explain().Info, id)
	fmt.Fprintf(sb, "%s   Calls: %d, Records: %d, Errors: %d, Time: %v\n",
		indent, stats.ConsumeCalls, stats.Records, stats.Errors, stats.Time)

	children := op.Children()
	for i, child := range children {
		if i == len(children)-1 {
			formatAnalysisNode(child, analyze, sb, indent+"└─ ", indent+"   ")
		} else {
			formatAnalysisNode(child, analyze, sb, indent+"├─ ", indent+"│  ")
		}
	}
}
