package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pti/internal/cli"
	"pti/internal/config"
	"pti/internal/discovery"
	"pti/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Infer *InferCommand
	List  *ListCommand
	View  *ViewCommand
	Cache *CacheCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger zerolog.Logger) *Commands {
	filter := discovery.NewFilter()
	formatter := ui.NewFormatter()
	viewer := ui.NewTargetViewer()

	return &Commands{
		Infer: NewInferCommand(cfg, formatter, logger),
		List:  NewListCommand(cfg, filter, formatter, logger),
		View:  NewViewCommand(cfg, viewer, logger),
		Cache: NewCacheCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		*cfg = *config.Load(flags.ToConfigFlags())
		return nil
	}

	// Infer command
	inferCmd := &cobra.Command{
		Use:     "infer",
		Short:   "Infer build targets from phpunit.xml files",
		Long:    "Discover phpunit.xml files across the workspace and derive cacheable test targets for each owning project",
		RunE:    c.Infer.Execute,
		PreRunE: applyFlags,
	}
	inferCmd.Flags().StringVarP(&flags.TargetName, "target-name", "t", "", "Name of the default test target (default \"test\")")
	inferCmd.Flags().StringVar(&flags.CiTargetName, "ci-target-name", "", "Name of the CI aggregator target (default \"test-ci\")")
	inferCmd.Flags().BoolVar(&flags.NoAtomize, "no-atomize", false, "Disable per-test-file CI target generation")
	inferCmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Bypass the memoization store for this run")
	inferCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of configuration files to process concurrently")
	inferCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the project mapping as JSON to this file")
	inferCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the project mapping as JSON to stdout")
	rootCmd.AddCommand(inferCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered phpunit.xml files",
		Long:    "Scan the workspace for phpunit.xml files without deriving targets",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter configuration files by name pattern (supports wildcards)")
	listCmd.Flags().BoolVar(&flags.Targets, "targets", false, "List inferred target names instead of configuration files")
	rootCmd.AddCommand(listCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:     "view",
		Short:   "Browse inferred targets interactively",
		Long:    "Run target inference and display the resulting projects and targets in an interactive viewer",
		RunE:    c.View.Execute,
		PreRunE: applyFlags,
	}
	viewCmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Bypass the memoization store for this run")
	rootCmd.AddCommand(viewCmd)

	// Cache command
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the persisted target cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:     "clear",
		Short:   "Remove all persisted target caches",
		RunE:    c.Cache.Clear,
		PreRunE: applyFlags,
	})
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentFlags().StringVarP(&flags.WorkspaceRoot, "workspace", "w", "", "Workspace root directory (default current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
}
