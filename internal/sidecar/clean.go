package sidecar

import (
	"fmt"
	"os"
	"path/filepath"
)

// CleanStaged removes root-level staged copies of a sidecar (the files
// Prepare produced) for every triple. Returns the paths removed.
func CleanStaged(manifestDir, name string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(manifestDir, name+"-*"))
	if err != nil {
		return nil, fmt.Errorf("globbing staged copies: %w", err)
	}

	var removed []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if err := os.Remove(m); err != nil {
			return removed, fmt.Errorf("removing %s: %w", m, err)
		}
		removed = append(removed, m)
	}
	return removed, nil
}

// CleanBinaries removes the binaries/ entries for a sidecar, including the
// build record entries' files. The record file itself is left in place.
func CleanBinaries(binariesDir, name string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(binariesDir, name+"-*"))
	if err != nil {
		return nil, fmt.Errorf("globbing binaries: %w", err)
	}

	var removed []string
	for _, m := range matches {
		if filepath.Base(m) == RecordFileName {
			continue
		}
		if err := os.Remove(m); err != nil {
			return removed, fmt.Errorf("removing %s: %w", m, err)
		}
		removed = append(removed, m)
	}
	return removed, nil
}
