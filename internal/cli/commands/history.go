package commands

import (
	"errors"

	"e2erun/internal/config"
	"e2erun/internal/history"
	"e2erun/internal/ui"

	"github.com/spf13/cobra"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{config: cfg, formatter: formatter}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	dsn, ok := history.ResolveDSN(hc.config.GetEnvPath())
	if !ok {
		return errors.New("history database not configured: set " + history.DSNEnv + " or DB_DATABASE")
	}
	recorder, err := history.Open(cmd.Context(), dsn)
	if err != nil {
		return err
	}
	defer recorder.Close()

	records, err := recorder.Recent(cmd.Context(), hc.config.Flags.Limit)
	if err != nil {
		return err
	}
	hc.formatter.PrintHistory(records)
	return nil
}
