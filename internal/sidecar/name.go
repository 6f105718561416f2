package sidecar

import (
	"path/filepath"

	"github.com/sidekit-dev/sidekit/internal/platform"
)

// BinariesDir is the directory under the manifest root where built sidecars
// live before staging.
const BinariesDir = "binaries"

// BinaryName returns the conventional file name for a sidecar binary:
// <name>-<triple>, with .exe appended for Windows triples.
func BinaryName(name, triple string) string {
	return name + "-" + triple + platform.ExeSuffix(triple)
}

// SourcePath returns the path of the built sidecar under binaries/.
func SourcePath(manifestDir, name, triple string) string {
	return filepath.Join(manifestDir, BinariesDir, BinaryName(name, triple))
}

// DestPath returns the staged path at the manifest root, where tauri_build
// resolves externalBin entries during bundling.
func DestPath(manifestDir, name, triple string) string {
	return filepath.Join(manifestDir, BinaryName(name, triple))
}
