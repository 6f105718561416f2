package cli

import (
	"github.com/sidekit-dev/sidekit/internal/branding"
	"github.com/sidekit-dev/sidekit/internal/config"
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
	Long: branding.DisplayName() + ` stages platform-specific sidecar binaries for desktop
application bundles: it resolves the target triple, copies
binaries/<name>-<triple> to where the bundler's externalBin mechanism
expects it, and delegates to the bundler's own build hook.`,
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
