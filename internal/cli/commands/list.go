package commands

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pti/internal/config"
	"pti/internal/discovery"
	"pti/internal/domain"
	"pti/internal/targets"
	"pti/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
	logger    zerolog.Logger
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, filter *discovery.Filter, formatter *ui.Formatter, logger zerolog.Logger) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		logger:    logger,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(lc.config, lc.logger)
	if err != nil {
		return err
	}

	files, err := engine.Discover()
	if err != nil {
		return err
	}
	files, err = lc.filterFiles(files)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		color.Yellow("No phpunit.xml files found")
		return nil
	}

	if lc.config.Flags.Targets {
		projects, err := engine.Infer(files, lc.config.TargetOptions())
		lc.formatter.PrintTargetList(projects)
		return err
	}

	root := lc.config.GetWorkspaceRoot()
	lc.formatter.PrintConfigList(files, func(file domain.ConfigFile) bool {
		manifest := filepath.Join(root, filepath.FromSlash(file.ProjectRoot), targets.ManifestName)
		_, err := os.Stat(manifest)
		return err == nil
	})
	return nil
}

// filterFiles applies the --filter pattern against config file paths.
func (lc *ListCommand) filterFiles(files []domain.ConfigFile) ([]domain.ConfigFile, error) {
	pattern := lc.config.Flags.Filter
	if pattern == "" {
		return files, nil
	}

	paths := make([]string, len(files))
	byPath := make(map[string]domain.ConfigFile, len(files))
	for i, file := range files {
		paths[i] = file.Path
		byPath[file.Path] = file
	}

	kept, err := lc.filter.FilterByName(paths, pattern)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.ConfigFile, 0, len(kept))
	for _, path := range kept {
		filtered = append(filtered, byPath[path])
	}
	return filtered, nil
}
