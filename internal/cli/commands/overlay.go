package commands

import (
	"fmt"
	"io"
	"strings"

	"e2erun/internal/config"
	"e2erun/internal/overlay"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OverlayCommand handles the overlay command
type OverlayCommand struct {
	config *config.Config
	out    io.Writer
}

// NewOverlayCommand creates a new OverlayCommand
func NewOverlayCommand(cfg *config.Config, out io.Writer) *OverlayCommand {
	return &OverlayCommand{config: cfg, out: out}
}

// Execute runs the command
func (oc *OverlayCommand) Execute(cmd *cobra.Command, args []string) error {
	source, err := overlay.NewEnvSource(oc.config.GetEnvPath())
	if err != nil {
		return err
	}
	path := oc.config.GetRunConfigPath()
	_, applied, err := overlay.NewWriter(source).Apply(path)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		color.New(color.FgYellow).Fprintf(oc.out, "No overrides set; rewrote %s\n", path)
		return nil
	}
	fmt.Fprintf(oc.out, "%s %s: %s\n", color.GreenString("Updated"), path, strings.Join(applied, ", "))
	return nil
}
