package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"e2erun/internal/cli"
	"e2erun/internal/cli/commands"
	"e2erun/internal/config"
	"e2erun/internal/domain"
	"e2erun/internal/runctl"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "e2erun",
		Short:         "E2E browser test orchestrator",
		Long:          `Run a browser end-to-end suite with environment-specific configuration, merge the per-spec results and render a single HTML report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Flags are populated by cobra; commands are wired once they are parsed
	var flags cli.Flags
	cmds := commands.NewCommands(cfg, &flags, os.Stdout)
	cmds.Register(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	var outcomeErr *runctl.OutcomeError
	if err != nil && !errors.As(err, &outcomeErr) {
		fmt.Fprintln(os.Stderr, errorLine(err))
	}
	os.Exit(runctl.ExitCode(err))
}

// errorLine tags pipeline errors with the stage that failed.
func errorLine(err error) string {
	var kind string
	switch {
	case domain.IsInvalidOverrideError(err):
		kind = "invalid override"
	case domain.IsConfigReadError(err):
		kind = "run configuration"
	case domain.IsRunnerExecutionError(err):
		kind = "test engine"
	case domain.IsAggregationError(err):
		kind = "aggregation"
	case domain.IsReportGenerationError(err):
		kind = "report"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("Error (%s): %v", kind, err)
}
