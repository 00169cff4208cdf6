package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pti/internal/config"
)

// CacheCommand manages the persisted target cache
type CacheCommand struct {
	config *config.Config
}

// NewCacheCommand creates a new CacheCommand
func NewCacheCommand(cfg *config.Config) *CacheCommand {
	return &CacheCommand{config: cfg}
}

// Clear removes every persisted target cache file from the workspace data
// directory.
func (cc *CacheCommand) Clear(cmd *cobra.Command, args []string) error {
	dataDir := filepath.Join(cc.config.GetWorkspaceRoot(), filepath.FromSlash(cc.config.DataDir))

	matches, err := filepath.Glob(filepath.Join(dataDir, "targets-*.json"))
	if err != nil {
		return fmt.Errorf("scan cache dir: %w", err)
	}
	if len(matches) == 0 {
		color.Yellow("No target caches to clear")
		return nil
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("remove %s: %w", match, err)
		}
	}
	color.Green("✓ Cleared %d target cache file(s) from %s", len(matches), dataDir)
	return nil
}
