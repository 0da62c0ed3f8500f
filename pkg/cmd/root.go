package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobraotel"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/authzed/graphexec/internal/logging"
)

func RegisterRootFlags(cmd *cobra.Command) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
	cobraotel.New(cmd.Use).RegisterFlags(cmd.PersistentFlags())
}

// DefaultPreRunE sets up viper, zerolog, and OpenTelemetry flag handling for a
// command.
func DefaultPreRunE(programName string) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, "graphexec.env", zerologr.New(&logging.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				logging.SetGlobalLogger(logger)
			}),
		).RunE(),
		cobraotel.New(programName,
			cobraotel.WithLogger(zerologr.New(&logging.Logger)),
		).RunE(),
	)
}

// RunExample creates an example usage string with the provided program name.
func RunExample(programName string) string {
	return fmt.Sprintf(`	%[1]s:
		%[3]s run --graph graph.yaml --query query.yaml

	%[2]s:
		%[3]s run --graph graph.yaml --query query.yaml --explain --analyze
`,
		color.YellowString("Run a query"),
		color.GreenString("Run a query and show how it was executed"),
		programName,
	)
}

func NewRootCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:           programName,
		Short:         "A pattern query executor for property graphs",
		Long:          "Executes graph pattern queries, with EXISTS and NOT EXISTS filters, against property graphs",
		Example:       RunExample(programName),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}
