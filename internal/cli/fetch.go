package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sidekit-dev/sidekit/internal/config"
	"github.com/sidekit-dev/sidekit/internal/fetch"
	"github.com/sidekit-dev/sidekit/internal/platform"
	"github.com/sidekit-dev/sidekit/internal/sidecar"
	"github.com/spf13/cobra"
)

var (
	fetchManifestDir string
	fetchTarget      string
	fetchName        string
	fetchRepo        string
	fetchTag         string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a prebuilt sidecar from a GitHub release into binaries/",
	Long: `Download the release asset matching the sidecar name and target triple,
verify it against the release's checksums.txt when one is published,
unpack archives, and stage the binary into <manifest-dir>/binaries/.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchManifestDir, "manifest-dir", "", "Bundler manifest directory (default: $SIDEKIT_MANIFEST_DIR, $CARGO_MANIFEST_DIR, cwd)")
	fetchCmd.Flags().StringVar(&fetchTarget, "target", "", "Target triple to fetch for (default: detected)")
	fetchCmd.Flags().StringVar(&fetchName, "name", "", "Sidecar base name (default: config key 'name')")
	fetchCmd.Flags().StringVar(&fetchRepo, "repo", "", "GitHub owner/repo to fetch from (default: config key 'github_repo')")
	fetchCmd.Flags().StringVar(&fetchTag, "tag", "", "Release tag (default: latest release)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	manifestDir, err := config.ManifestDir(fetchManifestDir)
	if err != nil {
		return err
	}

	res, err := platform.ResolveTriple(fetchTarget)
	if err != nil {
		return fmt.Errorf("resolving target triple: %w", err)
	}

	name := fetchName
	if name == "" {
		name = config.Get(config.KeyName)
	}
	repo := fetchRepo
	if repo == "" {
		repo = config.Get(config.KeyGitHubRepo)
	}
	if repo == "" {
		return fmt.Errorf("no repository configured: pass --repo or set config key %q", config.KeyGitHubRepo)
	}

	client := fetch.New(repo)

	var release *fetch.Release
	if fetchTag != "" {
		release, err = client.ReleaseByTag(fetchTag)
	} else {
		release, err = client.LatestRelease()
	}
	if err != nil {
		return err
	}

	asset, err := fetch.SelectAsset(release.Assets, name, res.Triple)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "sidekit-fetch-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	fmt.Fprintf(cmd.ErrOrStderr(), "Downloading %s from %s %s...\n", asset.Name, repo, release.TagName)
	downloaded, err := client.Download(asset, tmpDir)
	if err != nil {
		return err
	}

	if err := client.VerifyChecksum(release, downloaded); err != nil {
		if err != fetch.ErrNoChecksums {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s publishes no checksums.txt, skipping verification.\n", repo)
	}

	binary, err := fetch.ExtractBinary(downloaded, tmpDir, name, res.Triple)
	if err != nil {
		return err
	}

	rec, err := sidecar.Stage(sidecar.StageOptions{
		From:        binary,
		Name:        name,
		Triple:      res.Triple,
		Version:     release.Version(),
		BinariesDir: filepath.Join(manifestDir, sidecar.BinariesDir),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %s %s into %s\n", name, release.TagName, rec.Path)
	return nil
}
