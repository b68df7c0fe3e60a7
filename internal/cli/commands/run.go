package commands

import (
	"fmt"
	"time"

	"e2erun/internal/aggregate"
	"e2erun/internal/config"
	"e2erun/internal/discovery"
	"e2erun/internal/domain"
	"e2erun/internal/execution"
	"e2erun/internal/history"
	"e2erun/internal/logging"
	"e2erun/internal/overlay"
	"e2erun/internal/parser"
	"e2erun/internal/report"
	"e2erun/internal/runctl"
	"e2erun/internal/storage"
	"e2erun/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config     *config.Config
	scanner    *discovery.Scanner
	resolver   *discovery.Resolver
	filter     *discovery.Filter
	parser     *parser.ArtifactParser
	aggregator *aggregate.Aggregator
	generator  *report.Generator
	storage    storage.Storage
	formatter  *ui.Formatter
	logger     *logging.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	resolver *discovery.Resolver,
	filter *discovery.Filter,
	artifactParser *parser.ArtifactParser,
	aggregator *aggregate.Aggregator,
	generator *report.Generator,
	st storage.Storage,
	formatter *ui.Formatter,
	logger *logging.Logger,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		scanner:    scanner,
		resolver:   resolver,
		filter:     filter,
		parser:     artifactParser,
		aggregator: aggregator,
		generator:  generator,
		storage:    st,
		formatter:  formatter,
		logger:     logger,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := rc.config

	specs, err := rc.resolveSpecs()
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		color.Yellow("No spec files matched %s", cfg.GetSpecPattern())
	}

	source, err := overlay.NewEnvSource(cfg.GetEnvPath())
	if err != nil {
		return err
	}

	var scheduler execution.Scheduler = execution.NewRoundRobinScheduler()
	if cfg.Flags.Isolate {
		scheduler = execution.NewIsolatedScheduler()
	}
	pool := execution.NewWorkerPool(execution.NewRunner(cfg, rc.parser), scheduler, cfg.Processors)
	pool.SetFailFast(cfg.Flags.FailFast)
	if len(specs) > 0 {
		pool.SetProgress(ui.NewProgressBar(len(scheduler.Schedule(specs, cfg.Processors))))
	}

	recorder := rc.openHistory(cmd)
	defer recorder.Close()

	controller := runctl.New(runctl.Deps{
		Overlay:    overlay.NewWriter(source),
		Executor:   pool,
		Aggregator: rc.aggregator,
		Reporter:   rc.generator,
		Storage:    rc.storage,
		History:    recorder,
		Logger:     rc.logger,
	})
	result, err := controller.Run(ctx, runctl.Options{
		RunConfigPath: cfg.GetRunConfigPath(),
		SkipOverlay:   cfg.Flags.NoOverlay,
		Specs:         specs,
		ResultsDir:    cfg.GetResultsDir(),
		Report: runctl.ReportOptions{
			Title:          cfg.ReportTitle,
			TimestampTitle: cfg.TimestampTitle,
			HTMLPath:       cfg.GetReportHTMLPath(),
			JSONPath:       cfg.GetReportJSONPath(),
		},
	})
	if err != nil {
		return err
	}

	var failures []domain.TestFailure
	if result.Aggregate != nil {
		failures = result.Aggregate.Failures()
	}
	rc.formatter.PrintRunSummary(storage.NewLastRun(result.RunID, result.Raw, failures, result.Outcome, result.ReportPath, time.Now()))
	return result.Err()
}

// resolveSpecs selects the specs of this run: the failing specs of the last
// run with --failed, the spec glob otherwise, narrowed by the name filter.
func (rc *RunCommand) resolveSpecs() ([]string, error) {
	cfg := rc.config
	var specs []string
	if cfg.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			return nil, fmt.Errorf("no previous run to take failed specs from: %w", err)
		}
		// Specs deleted or moved since the last run drop out here
		candidates, err := rc.scanner.Scan(cfg.ProjectPath)
		if err != nil {
			return nil, err
		}
		specs = rc.filter.FilterByPaths(candidates, last.FailedSpecs(), cfg.ProjectPath)
		if len(specs) == 0 {
			return nil, fmt.Errorf("the last run has no failed specs to re-run")
		}
	} else {
		var err error
		specs, err = rc.resolver.Resolve(cfg.GetSpecPattern())
		if err != nil {
			return nil, err
		}
	}
	return rc.filter.FilterByName(specs, cfg.Flags.NameFilter), nil
}

// openHistory connects to the history database when one is configured.
// Connection problems only disable history for this run.
func (rc *RunCommand) openHistory(cmd *cobra.Command) history.Recorder {
	dsn, ok := history.ResolveDSN(rc.config.GetEnvPath())
	if !ok {
		return history.NopRecorder{}
	}
	recorder, err := history.Open(cmd.Context(), dsn)
	if err != nil {
		rc.logger.Warn("run history disabled", "err", err)
		return history.NopRecorder{}
	}
	return recorder
}
