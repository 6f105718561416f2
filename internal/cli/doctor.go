package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sidekit-dev/sidekit/internal/bundler"
	"github.com/sidekit-dev/sidekit/internal/config"
	"github.com/sidekit-dev/sidekit/internal/manifest"
	"github.com/sidekit-dev/sidekit/internal/platform"
	"github.com/sidekit-dev/sidekit/internal/sidecar"
	"github.com/spf13/cobra"
)

var (
	doctorManifestDir string
	doctorTarget      string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the sidecar staging setup",
	Long: `Run diagnostic checks: declaration file validity, toolchain
availability, staged binaries and their checksums, externalBin entries in
tauri.conf.json, and version drift against Cargo.toml.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorManifestDir, "manifest-dir", "", "Bundler manifest directory (default: $SIDEKIT_MANIFEST_DIR, $CARGO_MANIFEST_DIR, cwd)")
	doctorCmd.Flags().StringVar(&doctorTarget, "target", "", "Target triple to check (default: detected)")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := false

	manifestDir, err := config.ManifestDir(doctorManifestDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Manifest directory: %s\n", manifestDir)

	// Toolchain.
	if _, err := exec.LookPath("rustc"); err == nil {
		fmt.Fprintln(out, "  [ OK ] rustc found")
	} else {
		fmt.Fprintln(out, "  [MISS] rustc not found (triple falls back to the GOOS/GOARCH map)")
	}

	// Triple.
	res, err := platform.ResolveTriple(doctorTarget)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] target triple: %v\n", err)
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintf(out, "  [ OK ] target triple %s (via %s)\n", res.Triple, res.Source)

	// Declaration file.
	declPath := filepath.Join(manifestDir, manifest.DeclFileName)
	if _, err := os.Stat(declPath); err == nil {
		result, err := manifest.ValidateFile(declPath)
		if err != nil {
			return fmt.Errorf("validating %s: %w", declPath, err)
		}
		if result.Valid {
			fmt.Fprintf(out, "  [ OK ] %s valid\n", manifest.DeclFileName)
		} else {
			failed = true
			fmt.Fprintf(out, "  [FAIL] %s: %s\n", manifest.DeclFileName, result.Summary())
		}
	} else {
		fmt.Fprintf(out, "  [MISS] no %s (using default sidecar %q)\n", manifest.DeclFileName, config.Get(config.KeyName))
	}

	decl, err := manifest.Load(manifestDir, config.Get(config.KeyName))
	if err != nil {
		return err
	}

	// Cargo package, for version drift.
	var cargoVersion string
	if pkg, err := bundler.ReadCargoPackage(manifestDir); err == nil {
		cargoVersion = pkg.Version
		fmt.Fprintf(out, "  [ OK ] Cargo.toml package %s %s\n", pkg.Name, pkg.Version)
	} else {
		fmt.Fprintf(out, "  [MISS] Cargo.toml not readable: %v\n", err)
	}

	// externalBin declarations.
	bins, err := bundler.ExternalBins(manifestDir)
	if err != nil {
		failed = true
		fmt.Fprintf(out, "  [FAIL] %s: %v\n", bundler.ConfFileName, err)
	}

	binariesDir := filepath.Join(manifestDir, sidecar.BinariesDir)
	records, err := sidecar.ReadRecords(binariesDir)
	if err != nil {
		failed = true
		fmt.Fprintf(out, "  [FAIL] build record: %v\n", err)
		records = &sidecar.RecordFile{}
	}

	for _, s := range decl.Sidecars {
		if !s.BuildsFor(res.Triple) {
			fmt.Fprintf(out, "  [SKIP] %s: not declared for %s\n", s.Name, res.Triple)
			continue
		}
		if checkSidecar(out, s.Name, res.Triple, manifestDir, binariesDir, bins, records, cargoVersion) {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

// checkSidecar reports problems for one declared sidecar. Returns true if
// any check failed.
func checkSidecar(out io.Writer, name, triple, manifestDir, binariesDir string, bins []string, records *sidecar.RecordFile, cargoVersion string) bool {
	failed := false

	src := sidecar.SourcePath(manifestDir, name, triple)
	if _, err := os.Stat(src); err != nil {
		fmt.Fprintf(out, "  [FAIL] %s: no binary at %s (build or fetch it first)\n", name, src)
		return true
	}
	fmt.Fprintf(out, "  [ OK ] %s: binary present\n", name)

	if rec := records.Find(name, triple); rec != nil {
		sum, err := sidecar.SHA256File(src)
		if err != nil {
			failed = true
			fmt.Fprintf(out, "  [FAIL] %s: %v\n", name, err)
		} else if sum != rec.SHA256 {
			failed = true
			fmt.Fprintf(out, "  [FAIL] %s: checksum mismatch with build record (re-stage it)\n", name)
		} else {
			fmt.Fprintf(out, "  [ OK ] %s: checksum matches build record\n", name)
		}

		if cargoVersion != "" && rec.Version != "" {
			if stale, err := sidecar.IsStale(rec.Version, cargoVersion); err == nil && stale {
				fmt.Fprintf(out, "  [WARN] %s: staged version %s behind Cargo package %s\n", name, rec.Version, cargoVersion)
			}
		}
	} else {
		fmt.Fprintf(out, "  [WARN] %s: no build record entry (staged outside sidekit?)\n", name)
	}

	if bins != nil {
		if bundler.DeclaresExternalBin(bins, name) {
			fmt.Fprintf(out, "  [ OK ] %s: declared in %s externalBin\n", name, bundler.ConfFileName)
		} else {
			failed = true
			fmt.Fprintf(out, "  [FAIL] %s: missing from %s externalBin\n", name, bundler.ConfFileName)
		}
	}

	return failed
}
