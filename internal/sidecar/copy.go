package sidecar

import (
	"fmt"
	"os"
)

// PrepareStatus describes the outcome of staging one sidecar.
type PrepareStatus int

const (
	// StatusCopied means the sidecar was copied to the manifest root.
	StatusCopied PrepareStatus = iota
	// StatusSkipped means no built binary existed for the triple; the
	// build proceeds without it.
	StatusSkipped
	// StatusFailed means the binary existed but the copy failed.
	StatusFailed
)

// PrepareResult reports what Prepare did for a single sidecar.
type PrepareResult struct {
	Name   string
	Source string
	Dest   string
	Status PrepareStatus
	Err    error
}

// Prepare copies binaries/<name>-<triple> to the manifest root. A missing
// source is not an error: the bundler build must go on without the sidecar
// (dev builds often run before any sidecar has been produced). A failed
// copy is reported in the result; the caller decides to warn, never to fail.
func Prepare(manifestDir, name, triple string) PrepareResult {
	res := PrepareResult{
		Name:   name,
		Source: SourcePath(manifestDir, name, triple),
		Dest:   DestPath(manifestDir, name, triple),
	}

	if _, err := os.Stat(res.Source); err != nil {
		res.Status = StatusSkipped
		return res
	}

	if err := copyFile(res.Source, res.Dest); err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	res.Status = StatusCopied
	return res
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
