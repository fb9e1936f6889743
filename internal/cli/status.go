package cli

import (
	"fmt"

	"github.com/factoryai-suite/factoryai/internal/branding"
	"github.com/factoryai-suite/factoryai/internal/component"
	"github.com/factoryai-suite/factoryai/internal/config"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status of all components",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir, err := config.RootDir()
		if err != nil {
			return err
		}

		registry, err := component.LoadRegistry(config.ComponentsPath())
		if err != nil {
			return fmt.Errorf("loading component registry: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Root: %s\n\n", rootDir)

		synced := 0
		for _, entry := range registry.Status(rootDir) {
			mark := "✗"
			state := "missing"
			switch {
			case !entry.Enabled:
				state = "disabled"
			case entry.Available:
				mark = "✓"
				state = "synced"
				synced++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %-10s %-18s %-9s %s\n", mark, entry.Key, entry.Name, state, entry.URL)
		}

		if synced == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\nNo components are synced. Run '%s sync' to fetch them.\n", branding.CLIName())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
