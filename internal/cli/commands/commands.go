package commands

import (
	"fmt"
	"io"
	"os"

	"e2erun/internal/aggregate"
	"e2erun/internal/cli"
	"e2erun/internal/config"
	"e2erun/internal/discovery"
	"e2erun/internal/logging"
	"e2erun/internal/parser"
	"e2erun/internal/report"
	"e2erun/internal/storage"
	"e2erun/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	config *config.Config
	flags  *cli.Flags
	out    io.Writer

	Run      *RunCommand
	List     *ListCommand
	Report   *ReportCommand
	Overlay  *OverlayCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates the command set. Dependencies are built by Setup once
// flags have been parsed.
func NewCommands(cfg *config.Config, flags *cli.Flags, out io.Writer) *Commands {
	return &Commands{config: cfg, flags: flags, out: out}
}

// Setup applies the project file and the parsed flags to the config and
// wires every command.
func (c *Commands) Setup() error {
	cfg := c.config
	if c.flags.Project != "" {
		cfg.ProjectPath = c.flags.Project
	}
	project, err := config.LoadProject(cfg.GetProjectFilePath())
	if err != nil {
		return err
	}
	cfg.ApplyProject(project)
	if level := os.Getenv("E2E_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if c.flags.LogLevel != "" {
		cfg.LogLevel = c.flags.LogLevel
	}
	if c.flags.ConfigFile != "" {
		cfg.RunConfigFile = c.flags.ConfigFile
	}
	cfg.ApplyFlags(c.flags.ToConfigFlags())

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	logger := logging.New(opts)

	scanner := discovery.NewScanner(cfg.PathsToIgnore, cfg.SpecExtensions)
	filter := discovery.NewFilter()
	caseParser := discovery.NewParser()
	artifactParser := parser.NewArtifactParser()
	aggregator := aggregate.NewAggregator(artifactParser)
	generator, err := report.NewGenerator()
	if err != nil {
		return fmt.Errorf("failed to load report template: %w", err)
	}
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, caseParser, c.out)

	c.Run = NewRunCommand(cfg, scanner, discovery.NewResolver(scanner), filter, artifactParser, aggregator, generator, jsonStorage, formatter, logger)
	c.List = NewListCommand(cfg, scanner, filter, formatter, jsonStorage)
	c.Report = NewReportCommand(cfg, aggregator, generator, jsonStorage, logger, c.out)
	c.Overlay = NewOverlayCommand(cfg, c.out)
	c.Failures = NewFailuresCommand(jsonStorage, ui.NewErrorViewer(jsonStorage))
	c.History = NewHistoryCommand(cfg, formatter)
	return nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command) {
	flags := c.flags
	rootCmd.PersistentFlags().StringVar(&flags.Project, "project", "", "Path to the project containing the specs and the run configuration")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config-file", "", "Run configuration file, relative to the project (default \"cypress.json\")")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.Setup()
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the e2e suite and write the HTML report",
		Long:  "Overlay the run configuration from the environment, execute the selected specs with the test engine, merge the results and render a single HTML report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run.Execute(cmd, args)
		},
	}
	runCmd.Flags().StringVar(&flags.SpecPattern, "spec", "", "Spec glob relative to the project (default \"integration/simple*.js\")")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter specs by file name (supports wildcards, e.g. 'simple*' or '*login*')")
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of engine processes to run concurrently")
	runCmd.Flags().BoolVar(&flags.Isolate, "isolate", false, "Run every spec in its own engine process")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Do not start new engine processes after a failing test")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only specs that failed in the last run")
	runCmd.Flags().BoolVar(&flags.NoOverlay, "no-overlay", false, "Leave the run configuration untouched")
	runCmd.Flags().StringVar(&flags.Title, "title", "", "Report title (default: completion timestamp)")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered specs",
		Long:  "Scan the spec directory and list spec files without executing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.List.Execute(cmd, args)
		},
	}
	listCmd.Flags().StringVar(&flags.SpecDir, "spec-dir", "", "Directory to scan, relative to the project (default \"integration\")")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter specs by file name (supports wildcards)")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "Show the test cases of every spec")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Merge result artifacts and render the HTML report",
		Long:  "Aggregate result artifacts matched by one or more globs (default: the last run) and render the HTML report without running tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Report.Execute(cmd, args)
		},
	}
	reportCmd.Flags().StringArrayVar(&flags.Results, "results", nil, "Glob of result artifacts (repeatable)")
	reportCmd.Flags().StringVar(&flags.Title, "title", "", "Report title (default: completion timestamp)")
	rootCmd.AddCommand(reportCmd)

	// Overlay command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "overlay",
		Short: "Write environment overrides into the run configuration",
		Long:  "Apply BASE_URL, USERNAME, PASSWORD and TEST_PROJECT_ID to the run configuration without running tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Overlay.Execute(cmd, args)
		},
	})

	// Failures command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Failures.Execute(cmd, args)
		},
	})

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		Long:  "List recent runs recorded in the history database (E2E_HISTORY_DSN or DB_* variables)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.History.Execute(cmd, args)
		},
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
