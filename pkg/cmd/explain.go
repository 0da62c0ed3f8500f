package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/authzed/graphexec/pkg/planner"
)

// ExplainConfig is the configuration for the explain command.
type ExplainConfig struct {
	// QueryPath is the path of the YAML query document to plan.
	QueryPath string
}

func RegisterExplainFlags(flags *pflag.FlagSet, config *ExplainConfig) {
	flags.StringVar(&config.QueryPath, "query", config.QueryPath, "path to the YAML query document to plan")
}

func NewExplainCommand(programName string, config *ExplainConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "explain",
		Short:   "print the plan of a query without running it",
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Run(cmd.OutOrStdout())
		},
	}
}

// Run plans the query and writes the plan to out.
func (c *ExplainConfig) Run(out io.Writer) error {
	if c.QueryPath == "" {
		return errors.New("--query is required")
	}

	q, err := planner.LoadQueryFile(c.QueryPath)
	if err != nil {
		return err
	}
	result, err := planner.Build(q)
	if err != nil {
		return fmt.Errorf("unable to plan query: %w", err)
	}
	defer result.Plan.Free()

	writeSection(out, "Plan")
	fmt.Fprintln(out, result.Plan.Explain())
	fmt.Fprintln(out)
	writeSection(out, "Slots")
	for i, name := range result.Plan.Schema().Names() {
		fmt.Fprintf(out, "%d\t%s\n", i, name)
	}
	return nil
}
