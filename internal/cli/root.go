package cli

import (
	"github.com/factoryai-suite/factoryai/internal/branding"
	"github.com/factoryai-suite/factoryai/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` orchestrates the suite of AI-powered development tools
(Factory-App-AI, Factory-Feature, Factory-Debug). It keeps each component
synchronized with its remote repository and dispatches runs to them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
