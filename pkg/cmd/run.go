package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/creasty/defaults"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/authzed/graphexec/internal/logging"
	"github.com/authzed/graphexec/pkg/exec"
	"github.com/authzed/graphexec/pkg/graph"
	"github.com/authzed/graphexec/pkg/planner"
	"github.com/authzed/graphexec/pkg/record"
)

// RunConfig is the configuration for the run command.
type RunConfig struct {
	// GraphPath is the path of the YAML graph document to query.
	GraphPath string

	// QueryPath is the path of the YAML query document to run.
	QueryPath string

	// Partitions is the number of partitions the query is split into and
	// executed concurrently.
	Partitions int `default:"1"`

	Explain bool
	Analyze bool
	Trace   bool

	// Metrics prints the Prometheus metrics of the executor after the run.
	Metrics bool
}

var errInstrumentedPartitions = errors.New("--analyze and --trace require a single partition")

// RegisterRunFlags registers the flags of the run command, defaulting them
// from the struct tags of RunConfig.
func RegisterRunFlags(flags *pflag.FlagSet, config *RunConfig) error {
	if err := defaults.Set(config); err != nil {
		return fmt.Errorf("unable to set run defaults: %w", err)
	}

	flags.StringVar(&config.GraphPath, "graph", config.GraphPath, "path to the YAML graph document to query")
	flags.StringVar(&config.QueryPath, "query", config.QueryPath, "path to the YAML query document to run")
	flags.IntVar(&config.Partitions, "partitions", config.Partitions, "number of partitions to execute the query in concurrently")
	flags.BoolVar(&config.Explain, "explain", config.Explain, "print the plan before executing it")
	flags.BoolVar(&config.Analyze, "analyze", config.Analyze, "print execution statistics per operator")
	flags.BoolVar(&config.Trace, "trace", config.Trace, "print a trace of every pull between operators")
	flags.BoolVar(&config.Metrics, "metrics", config.Metrics, "print executor metrics after the run")
	return nil
}

func NewRunCommand(programName string, config *RunConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Short:   "run a query against a graph",
		Example: RunExample(programName),
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// Validate checks the configuration is usable.
func (c *RunConfig) Validate() error {
	switch {
	case c.GraphPath == "":
		return errors.New("--graph is required")
	case c.QueryPath == "":
		return errors.New("--query is required")
	case c.Partitions < 1:
		return fmt.Errorf("--partitions must be positive, got %d", c.Partitions)
	case c.Partitions > 1 && (c.Analyze || c.Trace):
		return errInstrumentedPartitions
	}
	return nil
}

// Run loads the graph and query, executes the query and writes its results to out.
func (c *RunConfig) Run(ctx context.Context, out io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	store, err := graph.LoadFile(c.GraphPath)
	if err != nil {
		return err
	}
	nodes, edges, err := store.Counts()
	if err != nil {
		return err
	}
	logging.Debug().Str("path", c.GraphPath).Int("nodes", nodes).Int("edges", edges).Msg("loaded graph")

	q, err := planner.LoadQueryFile(c.QueryPath)
	if err != nil {
		return err
	}
	result, err := planner.Build(q)
	if err != nil {
		return fmt.Errorf("unable to plan query: %w", err)
	}
	defer result.Plan.Free()

	if c.Explain {
		writeSection(out, "Plan")
		fmt.Fprintln(out, result.Plan.Explain())
		fmt.Fprintln(out)
	}

	alloc := record.NewAllocator(result.Plan.Schema())
	opts := []exec.ContextOption{exec.WithGraph(store), exec.WithAllocator(alloc)}

	var (
		records []*record.Record
		ectx    *exec.Context
		tracer  *exec.TraceLogger
	)
	if c.Partitions > 1 {
		records, err = exec.RunPartitioned(ctx, result.Plan, c.Partitions, opts...)
	} else {
		if c.Trace {
			tracer = exec.NewTraceLogger()
			opts = append(opts, exec.WithTraceLogger(tracer))
		}
		if c.Analyze {
			opts = append(opts, exec.WithAnalyze())
		}
		ectx = exec.NewLocalContext(ctx, opts...)
		records, err = result.Plan.Execute(ectx)
	}
	defer releaseRecords(records)
	if err != nil {
		return err
	}

	writeResults(out, result, records, alloc.Allocated())

	if c.Analyze {
		fmt.Fprintln(out)
		writeSection(out, "Analysis")
		fmt.Fprint(out, exec.FormatAnalysis(result.Plan.Root(), ectx.Analyze))
	}
	if tracer != nil {
		fmt.Fprintln(out)
		writeSection(out, "Trace")
		fmt.Fprintln(out, tracer.DumpTrace())
	}
	if c.Metrics {
		fmt.Fprintln(out)
		writeSection(out, "Metrics")
		if err := writeMetrics(out, prometheus.DefaultGatherer); err != nil {
			return err
		}
	}
	return nil
}

func releaseRecords(records []*record.Record) {
	for _, r := range records {
		r.Release()
	}
}
