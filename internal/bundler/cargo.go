package bundler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CargoPackage holds the fields sidekit needs from a Cargo.toml [package]
// table.
type CargoPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type cargoManifest struct {
	Package CargoPackage `toml:"package"`
}

// ReadCargoPackage parses <manifestDir>/Cargo.toml and returns its package
// table. The manifest directory is the src-tauri directory Cargo points the
// build script at.
func ReadCargoPackage(manifestDir string) (*CargoPackage, error) {
	path := filepath.Join(manifestDir, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s has no [package] name", path)
	}
	return &m.Package, nil
}
