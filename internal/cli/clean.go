package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sidekit-dev/sidekit/internal/config"
	"github.com/sidekit-dev/sidekit/internal/manifest"
	"github.com/sidekit-dev/sidekit/internal/sidecar"
	"github.com/spf13/cobra"
)

var (
	cleanManifestDir string
	cleanBinaries    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove staged sidecar copies from the manifest root",
	Long: `Remove the root-level <name>-<triple> copies prepare produced.
With --binaries, the built binaries under binaries/ are removed too.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanManifestDir, "manifest-dir", "", "Bundler manifest directory (default: $SIDEKIT_MANIFEST_DIR, $CARGO_MANIFEST_DIR, cwd)")
	cleanCmd.Flags().BoolVar(&cleanBinaries, "binaries", false, "Also remove built binaries under binaries/")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	manifestDir, err := config.ManifestDir(cleanManifestDir)
	if err != nil {
		return err
	}

	decl, err := manifest.Load(manifestDir, config.Get(config.KeyName))
	if err != nil {
		return err
	}

	total := 0
	for _, s := range decl.Sidecars {
		removed, err := sidecar.CleanStaged(manifestDir, s.Name)
		if err != nil {
			return err
		}
		total += len(removed)

		if cleanBinaries {
			removed, err := sidecar.CleanBinaries(filepath.Join(manifestDir, sidecar.BinariesDir), s.Name)
			if err != nil {
				return err
			}
			total += len(removed)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d file(s).\n", total)
	return nil
}
