package sidecar

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sidekit-dev/sidekit/internal/platform"
)

// StageOptions describes a freshly built executable to move into binaries/.
type StageOptions struct {
	// From is the path of the built executable (e.g. PyInstaller's dist
	// output, a cargo target, a go build artifact).
	From string
	// Name is the sidecar base name.
	Name string
	// Triple is the target triple the binary was built for.
	Triple string
	// Version is recorded in the build record; typically the Cargo
	// package version.
	Version string
	// BinariesDir is the destination directory (default: <manifest>/binaries).
	BinariesDir string
}

// Stage copies a built executable into binaries/ under the convention name,
// marks it executable, and updates the build record with its size and
// SHA-256 digest. Returns the record entry that was written.
func Stage(opts StageOptions) (*Record, error) {
	info, err := os.Stat(opts.From)
	if err != nil {
		return nil, fmt.Errorf("built executable %s: %w", opts.From, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, expected an executable file", opts.From)
	}

	if err := os.MkdirAll(opts.BinariesDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.BinariesDir, err)
	}

	dest := filepath.Join(opts.BinariesDir, BinaryName(opts.Name, opts.Triple))
	if err := copyFile(opts.From, dest); err != nil {
		return nil, fmt.Errorf("staging %s: %w", opts.From, err)
	}
	if err := platform.MakeExecutable(dest); err != nil {
		return nil, fmt.Errorf("marking %s executable: %w", dest, err)
	}

	sum, err := SHA256File(dest)
	if err != nil {
		return nil, err
	}
	staged, err := os.Stat(dest)
	if err != nil {
		return nil, fmt.Errorf("stat staged binary: %w", err)
	}

	rec := Record{
		Name:         opts.Name,
		TargetTriple: opts.Triple,
		Version:      opts.Version,
		Path:         dest,
		SizeBytes:    staged.Size(),
		SHA256:       sum,
		BuiltAt:      time.Now().UTC().Truncate(time.Second),
	}

	rf, err := ReadRecords(opts.BinariesDir)
	if err != nil {
		return nil, err
	}
	rf.Upsert(rec)
	if err := WriteRecords(opts.BinariesDir, rf); err != nil {
		return nil, err
	}

	return &rec, nil
}
