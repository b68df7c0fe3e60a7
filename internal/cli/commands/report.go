package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"e2erun/internal/aggregate"
	"e2erun/internal/config"
	"e2erun/internal/logging"
	"e2erun/internal/report"
	"e2erun/internal/runctl"
	"e2erun/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config     *config.Config
	aggregator *aggregate.Aggregator
	generator  *report.Generator
	storage    storage.Storage
	logger     *logging.Logger
	out        io.Writer
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(
	cfg *config.Config,
	aggregator *aggregate.Aggregator,
	generator *report.Generator,
	st storage.Storage,
	logger *logging.Logger,
	out io.Writer,
) *ReportCommand {
	return &ReportCommand{
		config:     cfg,
		aggregator: aggregator,
		generator:  generator,
		storage:    st,
		logger:     logger,
		out:        out,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	patterns, err := rc.patterns()
	if err != nil {
		return err
	}

	cfg := rc.config
	controller := runctl.New(runctl.Deps{
		Aggregator: rc.aggregator,
		Reporter:   rc.generator,
		Logger:     rc.logger,
	})
	agg, err := controller.Report(time.Time{}, runctl.ReportOptions{
		Title:          cfg.ReportTitle,
		TimestampTitle: cfg.TimestampTitle,
		HTMLPath:       cfg.GetReportHTMLPath(),
		JSONPath:       cfg.GetReportJSONPath(),
	}, patterns...)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(rc.out, "Report written to %s (%d specs, %d passed, %d failed)\n",
		cfg.GetReportHTMLPath(), len(agg.Results), agg.Stats.Passes, agg.Stats.Failures)
	return nil
}

// patterns returns the --results globs, or the artifacts of the last run.
func (rc *ReportCommand) patterns() ([]string, error) {
	if len(rc.config.Flags.Results) > 0 {
		return rc.config.Flags.Results, nil
	}
	last, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no --results given and no previous run: %w", err)
	}
	if last.Meta.RunID == "" {
		return nil, errors.New("no --results given and the last run has no id")
	}
	return []string{rc.config.GetArtifactPattern(last.Meta.RunID)}, nil
}
