package cli

import (
	"fmt"

	"github.com/factoryai-suite/factoryai/internal/branding"
	"github.com/factoryai-suite/factoryai/internal/component"
	"github.com/factoryai-suite/factoryai/internal/config"
	"github.com/factoryai-suite/factoryai/internal/gitx"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the installation",
	Long: `Check that the environment can run the suite: git is installed and recent
enough, the root directory is a git repository, and at least one enabled
component has been synced. Exits non-zero if any check fails.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var problems []string

	check := func(ok bool, label, hint string) {
		if ok {
			fmt.Fprintf(out, "  ✓ %s\n", label)
			return
		}
		fmt.Fprintf(out, "  ✗ %s\n", label)
		problems = append(problems, hint)
	}

	gitErr := gitx.EnsureGit()
	check(gitErr == nil, "git is installed", "install git and make sure it is in PATH")

	if gitErr == nil {
		v, err := gitx.Version(cmd.Context(), gitx.ExecRunner{})
		switch {
		case err != nil:
			check(false, "git version is detectable", fmt.Sprintf("could not parse git version: %v", err))
		default:
			check(gitx.MeetsMinimum(v),
				fmt.Sprintf("git %s meets minimum %s", v, gitx.MinVersion),
				fmt.Sprintf("upgrade git to %s or newer", gitx.MinVersion))
		}
	}

	rootDir, err := config.RootDir()
	if err != nil {
		return err
	}
	check(gitx.IsRepository(rootDir),
		fmt.Sprintf("%s is a git repository", rootDir),
		"clone the suite repository and run from its root")

	registry, err := component.LoadRegistry(config.ComponentsPath())
	if err != nil {
		return fmt.Errorf("loading component registry: %w", err)
	}

	available := 0
	for _, c := range registry.Components {
		if c.Enabled && c.Available(rootDir) {
			available++
		}
	}
	check(available > 0,
		fmt.Sprintf("%d enabled components are synced", available),
		fmt.Sprintf("run '%s sync' to fetch components", branding.CLIName()))

	if len(problems) > 0 {
		fmt.Fprintln(out)
		for _, p := range problems {
			fmt.Fprintf(out, "  → %s\n", p)
		}
		return fmt.Errorf("%d validation checks failed", len(problems))
	}

	fmt.Fprintln(out, "\nInstallation is valid.")
	return nil
}
