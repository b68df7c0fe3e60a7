package commands

import (
	"e2erun/internal/config"
	"e2erun/internal/discovery"
	"e2erun/internal/storage"
	"e2erun/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	specs, err := lc.scanner.Scan(lc.config.GetSpecDir())
	if err != nil {
		return err
	}
	specs = lc.filter.FilterByName(specs, lc.config.Flags.NameFilter)
	if len(specs) == 0 {
		color.Yellow("No specs found")
		return nil
	}

	// Mark specs that failed in the last run, when there is one
	var failed map[string]struct{}
	if last, err := lc.storage.Load(); err == nil {
		failed = make(map[string]struct{})
		for _, spec := range last.FailedSpecs() {
			failed[discovery.PathKey(lc.config.ProjectPath, spec)] = struct{}{}
		}
	}

	lc.formatter.PrintSpecList(specs, lc.config.Flags.TestCases, failed)
	return nil
}
