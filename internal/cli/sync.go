package cli

import (
	"fmt"
	"path/filepath"

	"github.com/factoryai-suite/factoryai/internal/config"
	"github.com/factoryai-suite/factoryai/internal/gitmodules"
	"github.com/factoryai-suite/factoryai/internal/gitx"
	"github.com/factoryai-suite/factoryai/internal/submodule"
	"github.com/spf13/cobra"
)

var (
	syncForce  bool
	syncStrict bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize all suite components",
	Long: `Clone or update every component declared in the repository's .gitmodules
file. Components are cloned into the submodules directory if absent and
fast-forwarded to their remote if present.

A failure on one component is reported and does not stop the others. By
default the command still exits 0 in that case; use --strict to exit
non-zero when any component fails.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "Force re-initialization of registered submodules")
	syncCmd.Flags().BoolVar(&syncStrict, "strict", false, "Exit non-zero if any component fails to sync")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if err := gitx.EnsureGit(); err != nil {
		return err
	}

	rootDir, err := config.RootDir()
	if err != nil {
		return err
	}
	if !gitx.IsRepository(rootDir) {
		return fmt.Errorf("not a git repository: %s (clone the suite repository first)", rootDir)
	}

	manifest, err := gitmodules.Load(filepath.Join(rootDir, ".gitmodules"))
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	for _, name := range manifest.Incomplete {
		fmt.Fprintf(cmd.OutOrStdout(), "  ⚠️  skipping %q: declaration has no url\n", name)
	}

	s := submodule.New(rootDir, config.SubmodulesDir(rootDir))
	s.Force = syncForce
	s.Progress = cmd.OutOrStdout()

	// Runs even when the manifest declares nothing: the global init step
	// must still bring any registered submodule linkage up to date.
	report, err := s.Sync(cmd.Context(), manifest)
	if err != nil {
		return fmt.Errorf("synchronization aborted: %w", err)
	}

	if manifest.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No components declared; nothing to synchronize.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nSync complete: %s.\n", report.Summary())

	if syncStrict && !report.Success() {
		return fmt.Errorf("%d components failed to sync", len(report.Failed()))
	}
	return nil
}
