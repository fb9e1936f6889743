package cli

import (
	"encoding/json"
	"fmt"

	"github.com/factoryai-suite/factoryai/internal/component"
	"github.com/factoryai-suite/factoryai/internal/config"
	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show installation information",
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

		if infoJSON {
			info := struct {
				Version       string                  `json:"version"`
				RootDir       string                  `json:"root_dir"`
				SubmodulesDir string                  `json:"submodules_dir"`
				ConfigFile    string                  `json:"config_file"`
				Components    []component.StatusEntry `json:"components"`
			}{
				Version:       buildVersion,
				RootDir:       rootDir,
				SubmodulesDir: config.SubmodulesDir(rootDir),
				ConfigFile:    config.FilePath(),
				Components:    registry.Status(rootDir),
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Version:        %s\n", buildVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "Root:           %s\n", rootDir)
		fmt.Fprintf(cmd.OutOrStdout(), "Submodules dir: %s\n", config.SubmodulesDir(rootDir))
		fmt.Fprintf(cmd.OutOrStdout(), "Config file:    %s\n", config.FilePath())
		fmt.Fprintf(cmd.OutOrStdout(), "Components:     %d registered\n", len(registry.Components))
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print info as JSON")
	rootCmd.AddCommand(infoCmd)
}
