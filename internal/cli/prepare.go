package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sidekit-dev/sidekit/internal/bundler"
	"github.com/sidekit-dev/sidekit/internal/config"
	"github.com/sidekit-dev/sidekit/internal/manifest"
	"github.com/sidekit-dev/sidekit/internal/platform"
	"github.com/sidekit-dev/sidekit/internal/sidecar"
	"github.com/sidekit-dev/sidekit/internal/watch"
	"github.com/spf13/cobra"
)

var (
	prepareManifestDir string
	prepareTarget      string
	prepareName        string
	prepareHook        string
	prepareWatch       bool
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Stage sidecar binaries for the bundler and run its build hook",
	Long: `Copy binaries/<name>-<triple> to the manifest root, where the bundler
resolves externalBin entries, then run the configured bundler hook.

A sidecar that has not been built yet is skipped without failing the
build; a failed copy emits a non-fatal warning on the build log. With
--watch, staging re-runs whenever declared watch paths change (the hook
is not re-run in watch mode).`,
	Args: cobra.NoArgs,
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVar(&prepareManifestDir, "manifest-dir", "", "Bundler manifest directory (default: $SIDEKIT_MANIFEST_DIR, $CARGO_MANIFEST_DIR, cwd)")
	prepareCmd.Flags().StringVar(&prepareTarget, "target", "", "Target triple (default: $TARGET, rustc host tuple, GOOS/GOARCH map)")
	prepareCmd.Flags().StringVar(&prepareName, "name", "", "Stage a single sidecar by name, ignoring sidecars.yaml")
	prepareCmd.Flags().StringVar(&prepareHook, "hook", "", "Bundler hook command run after staging (default: config key 'hook')")
	prepareCmd.Flags().BoolVar(&prepareWatch, "watch", false, "Re-stage whenever declared watch paths change")
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	manifestDir, err := config.ManifestDir(prepareManifestDir)
	if err != nil {
		return err
	}

	res, err := platform.ResolveTriple(prepareTarget)
	if err != nil {
		return fmt.Errorf("resolving target triple: %w", err)
	}

	decl, err := loadDeclaration(manifestDir, prepareName)
	if err != nil {
		return err
	}

	log := bundler.NewBuildLog()
	log.RerunIfChanged(sidecar.BinariesDir + "/")

	stageAll := func() {
		for _, s := range decl.Sidecars {
			if !s.BuildsFor(res.Triple) {
				continue
			}
			result := sidecar.Prepare(manifestDir, s.Name, res.Triple)
			switch result.Status {
			case sidecar.StatusCopied:
				fmt.Fprintf(cmd.ErrOrStderr(), "Staged %s\n", result.Dest)
			case sidecar.StatusSkipped:
				// Not built for this triple; the bundler build goes on.
			case sidecar.StatusFailed:
				log.Warnf("Could not copy sidecar to %s: %v", result.Dest, result.Err)
			}
		}
	}
	stageAll()

	if prepareWatch {
		return watchAndRestage(cmd, manifestDir, decl, stageAll)
	}

	hook := prepareHook
	if hook == "" {
		hook = config.Get(config.KeyHook)
	}
	return bundler.RunHook(manifestDir, hook, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// loadDeclaration reads sidecars.yaml, or builds a single-sidecar
// declaration when --name is given or no file exists.
func loadDeclaration(manifestDir, nameOverride string) (*manifest.Declaration, error) {
	if nameOverride != "" {
		return &manifest.Declaration{Sidecars: []manifest.Sidecar{{Name: nameOverride}}}, nil
	}
	return manifest.Load(manifestDir, config.Get(config.KeyName))
}

// watchAndRestage blocks, re-running stageAll on every matching change
// until interrupted.
func watchAndRestage(cmd *cobra.Command, manifestDir string, decl *manifest.Declaration, stageAll func()) error {
	var patterns []string
	for _, s := range decl.Sidecars {
		patterns = append(patterns, s.WatchPatterns()...)
	}

	w, err := watch.New(manifestDir, patterns)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	if w.Polling() {
		fmt.Fprintln(cmd.ErrOrStderr(), "File notifications unavailable, polling for changes.")
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl-C to stop).\n", manifestDir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	for {
		select {
		case <-w.Events():
			stageAll()
		case <-sig:
			return nil
		}
	}
}
