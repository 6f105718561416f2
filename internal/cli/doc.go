// Package cli defines the Cobra command tree for the sidekit CLI. Each file
// in this package registers one top-level command (prepare, stage, fetch,
// etc.) with the root command. Command implementations delegate to internal
// packages for the staging logic and only handle flag parsing, I/O
// formatting, and build-log output.
package cli
