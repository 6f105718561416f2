package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sidekit-dev/sidekit/internal/bundler"
	"github.com/sidekit-dev/sidekit/internal/config"
	"github.com/sidekit-dev/sidekit/internal/platform"
	"github.com/sidekit-dev/sidekit/internal/sidecar"
	"github.com/spf13/cobra"
)

var (
	stageManifestDir string
	stageTarget      string
	stageName        string
	stageVersion     string
)

var stageCmd = &cobra.Command{
	Use:   "stage <built-executable>",
	Short: "Move a freshly built executable into binaries/ under the convention name",
	Long: `Copy a built executable into <manifest-dir>/binaries/ as
<name>-<triple>[.exe], mark it executable, and record its size and
SHA-256 in binaries/sidecar-manifest.json. The recorded version is read
from Cargo.toml unless --set-version is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runStage,
}

func init() {
	stageCmd.Flags().StringVar(&stageManifestDir, "manifest-dir", "", "Bundler manifest directory (default: $SIDEKIT_MANIFEST_DIR, $CARGO_MANIFEST_DIR, cwd)")
	stageCmd.Flags().StringVar(&stageTarget, "target", "", "Target triple the executable was built for (default: detected)")
	stageCmd.Flags().StringVar(&stageName, "name", "", "Sidecar base name (default: config key 'name')")
	stageCmd.Flags().StringVar(&stageVersion, "set-version", "", "Version to record (default: Cargo.toml package version)")
	rootCmd.AddCommand(stageCmd)
}

func runStage(cmd *cobra.Command, args []string) error {
	manifestDir, err := config.ManifestDir(stageManifestDir)
	if err != nil {
		return err
	}

	res, err := platform.ResolveTriple(stageTarget)
	if err != nil {
		return fmt.Errorf("resolving target triple: %w", err)
	}

	name := stageName
	if name == "" {
		name = config.Get(config.KeyName)
	}

	version := stageVersion
	if version == "" {
		if pkg, err := bundler.ReadCargoPackage(manifestDir); err == nil {
			version = pkg.Version
		}
	}

	rec, err := sidecar.Stage(sidecar.StageOptions{
		From:        args[0],
		Name:        name,
		Triple:      res.Triple,
		Version:     version,
		BinariesDir: filepath.Join(manifestDir, sidecar.BinariesDir),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Staged %s (%d bytes, sha256 %s)\n", rec.Path, rec.SizeBytes, rec.SHA256[:12])
	return nil
}
