package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pti/internal/cli"
	"pti/internal/cli/commands"
	"pti/internal/config"
)

var version = "dev"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	// Create root command
	rootCmd := &cobra.Command{
		Use:     "pti",
		Short:   "PHPUnit target inference for monorepos",
		Long:    `Infers build and test targets from phpunit.xml files across a monorepo workspace, so a build orchestrator can schedule and cache test execution without hand-written target definitions.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flags.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logger)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
