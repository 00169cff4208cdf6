package commands

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pti/internal/config"
	"pti/internal/ui"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config *config.Config
	viewer *ui.TargetViewer
	logger zerolog.Logger
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, viewer *ui.TargetViewer, logger zerolog.Logger) *ViewCommand {
	return &ViewCommand{
		config: cfg,
		viewer: viewer,
		logger: logger,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(vc.config, vc.logger)
	if err != nil {
		return err
	}

	projects, inferErr := engine.InferWorkspace(vc.config.TargetOptions())
	if inferErr != nil {
		// Show what could be inferred; the batch error is still reported.
		color.Red("Some configuration files failed: %v", inferErr)
	}

	return vc.viewer.View(projects)
}
