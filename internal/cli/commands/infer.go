package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pti/internal/config"
	"pti/internal/ui"
	"pti/internal/workspace"
)

// InferCommand handles the infer command
type InferCommand struct {
	config    *config.Config
	formatter *ui.Formatter
	logger    zerolog.Logger
}

// NewInferCommand creates a new InferCommand
func NewInferCommand(cfg *config.Config, formatter *ui.Formatter, logger zerolog.Logger) *InferCommand {
	return &InferCommand{
		config:    cfg,
		formatter: formatter,
		logger:    logger,
	}
}

// Execute runs the command
func (ic *InferCommand) Execute(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(ic.config, ic.logger)
	if err != nil {
		return err
	}

	files, err := engine.Discover()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No phpunit.xml files found")
		return nil
	}

	if !ic.config.Flags.JSON {
		engine.SetProgress(ui.NewProgressBar(len(files)))
	}

	start := time.Now()
	projects, inferErr := engine.Infer(files, ic.config.TargetOptions())

	if ic.config.Flags.Output != "" {
		if err := writeJSON(ic.config.Flags.Output, projects); err != nil {
			return err
		}
	}
	if ic.config.Flags.JSON {
		data, err := json.MarshalIndent(projects, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal projects: %w", err)
		}
		fmt.Println(string(data))
	} else {
		ic.formatter.PrintSummary(projects, time.Since(start), errorCount(inferErr))
	}

	return inferErr
}

func newEngine(cfg *config.Config, logger zerolog.Logger) (*workspace.Engine, error) {
	ctx, err := workspace.NewContext(cfg.GetWorkspaceRoot(), cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return workspace.NewEngine(ctx, workspace.EngineConfig{
		TestFilePattern: cfg.TestFilePattern,
		IgnoreDirs:      cfg.PathsToIgnore,
		Processors:      cfg.Processors,
		NoCache:         cfg.Flags.NoCache,
	}, logger), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// errorCount unpacks how many per-file errors a joined batch error holds.
func errorCount(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}
