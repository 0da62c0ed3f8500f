package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jzelinskie/stringz"

	"github.com/authzed/graphexec/pkg/planner"
	"github.com/authzed/graphexec/pkg/record"
)

var sectionColor = color.New(color.FgCyan, color.Bold)

func writeSection(out io.Writer, title string) {
	sectionColor.Fprintln(out, title)
}

func writeResults(out io.Writer, result *planner.Result, records []*record.Record, allocated int64) {
	writeSection(out, "Results")

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(result.Columns, "\t"))
	for _, r := range records {
		cells := make([]string, 0, len(result.Slots))
		for _, v := range result.Project(r) {
			cells = append(cells, stringz.DefaultEmpty(formatValue(v), "-"))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	noun := "records"
	if len(records) == 1 {
		noun = "record"
	}
	fmt.Fprintf(out, "\n%s %s (%s records allocated)\n",
		color.GreenString(humanize.Comma(int64(len(records)))), noun, humanize.Comma(allocated))
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
