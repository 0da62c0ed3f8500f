package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/authzed/graphexec/internal/logging"
	"github.com/authzed/graphexec/pkg/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := cmd.NewRootCommand("graphexec")
	cmd.RegisterRootFlags(rootCmd)

	var runConfig cmd.RunConfig
	runCmd := cmd.NewRunCommand(rootCmd.Use, &runConfig)
	if err := cmd.RegisterRunFlags(runCmd.Flags(), &runConfig); err != nil {
		logging.Fatal().Err(err).Msg("failed to register run flags")
	}
	rootCmd.AddCommand(runCmd)

	var explainConfig cmd.ExplainConfig
	explainCmd := cmd.NewExplainCommand(rootCmd.Use, &explainConfig)
	cmd.RegisterExplainFlags(explainCmd.Flags(), &explainConfig)
	rootCmd.AddCommand(explainCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("terminated with errors")
		cancel()
		os.Exit(1)
	}
}
