package cli

import (
	"fmt"

	"github.com/factoryai-suite/factoryai/internal/component"
	"github.com/factoryai-suite/factoryai/internal/config"
	"github.com/spf13/cobra"
)

var runNonInteractive bool

var runCmd = &cobra.Command{
	Use:   "run <component> [-- args...]",
	Short: "Run a suite component",
	Long: `Execute a component's entry script in its synced directory.

Known components: app (Factory-App-AI), feature (Factory-Feature),
debug (Factory-Debug). Arguments after the component name are passed
through to the component.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runNonInteractive, "non-interactive", false, "Capture output instead of attaching the terminal")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	key := args[0]

	rootDir, err := config.RootDir()
	if err != nil {
		return err
	}

	registry, err := component.LoadRegistry(config.ComponentsPath())
	if err != nil {
		return fmt.Errorf("loading component registry: %w", err)
	}

	comp, err := registry.Get(key)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Running %s...\n", comp.Name)

	runner := &component.Runner{Interactive: !runNonInteractive}
	result, err := runner.Run(cmd.Context(), comp, rootDir, args[1:])
	if err != nil {
		return fmt.Errorf("running %s: %w", comp.Name, err)
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("%s exited with code %d", comp.Name, result.ExitCode)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s completed successfully.\n", comp.Name)
	return nil
}
