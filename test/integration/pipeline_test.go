//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sidekit-dev/sidekit/internal/bundler"
	"github.com/sidekit-dev/sidekit/internal/manifest"
	"github.com/sidekit-dev/sidekit/internal/sidecar"
)

const triple = "x86_64-unknown-linux-gnu"

// setupProject lays out a minimal src-tauri manifest directory: Cargo.toml,
// tauri.conf.json with an externalBin entry, and a sidecars.yaml.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cargo := "[package]\nname = \"multicorpus-desktop\"\nversion = \"0.4.1\"\n"
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(cargo), 0644); err != nil {
		t.Fatal(err)
	}

	conf := `{"bundle": {"externalBin": ["binaries/multicorpus"]}}`
	if err := os.WriteFile(filepath.Join(dir, bundler.ConfFileName), []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}

	decl := "sidecars:\n  - name: multicorpus\n"
	if err := os.WriteFile(filepath.Join(dir, manifest.DeclFileName), []byte(decl), 0644); err != nil {
		t.Fatal(err)
	}

	return dir
}

// TestStageThenPrepare walks the whole pipeline: a built executable is
// staged into binaries/ with a build record, then prepared to the manifest
// root where the bundler picks it up.
func TestStageThenPrepare(t *testing.T) {
	dir := setupProject(t)

	built := filepath.Join(t.TempDir(), "multicorpus")
	if err := os.WriteFile(built, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}

	pkg, err := bundler.ReadCargoPackage(dir)
	if err != nil {
		t.Fatalf("ReadCargoPackage: %v", err)
	}

	binariesDir := filepath.Join(dir, sidecar.BinariesDir)
	rec, err := sidecar.Stage(sidecar.StageOptions{
		From:        built,
		Name:        "multicorpus",
		Triple:      triple,
		Version:     pkg.Version,
		BinariesDir: binariesDir,
	})
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if rec.Version != "0.4.1" {
		t.Errorf("recorded version = %q", rec.Version)
	}

	decl, err := manifest.Load(dir, "fallback")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, s := range decl.Sidecars {
		res := sidecar.Prepare(dir, s.Name, triple)
		if res.Status != sidecar.StatusCopied {
			t.Fatalf("Prepare %s: status %v (err %v)", s.Name, res.Status, res.Err)
		}
	}

	// The bundler-facing contract: the staged copy sits at the manifest
	// root under the convention name, and externalBin declares it.
	staged := filepath.Join(dir, "multicorpus-"+triple)
	if _, err := os.Stat(staged); err != nil {
		t.Fatalf("staged copy missing: %v", err)
	}
	bins, err := bundler.ExternalBins(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !bundler.DeclaresExternalBin(bins, "multicorpus") {
		t.Error("externalBin does not declare multicorpus")
	}

	// Checksums line up end to end.
	stagedSum, err := sidecar.SHA256File(staged)
	if err != nil {
		t.Fatal(err)
	}
	if stagedSum != rec.SHA256 {
		t.Error("staged copy checksum differs from build record")
	}
}

// TestPrepareWithoutBuiltSidecar mirrors a fresh checkout: nothing under
// binaries/, and the prepare step must not fail the build.
func TestPrepareWithoutBuiltSidecar(t *testing.T) {
	dir := setupProject(t)

	decl, err := manifest.Load(dir, "fallback")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range decl.Sidecars {
		res := sidecar.Prepare(dir, s.Name, triple)
		if res.Status != sidecar.StatusSkipped {
			t.Errorf("Prepare %s: status %v, want skip", s.Name, res.Status)
		}
	}
}
