// Package bundler is the boundary to the application bundler and its build
// environment: reading the Cargo package manifest, reading the externalBin
// declarations from tauri.conf.json, emitting Cargo build-script directives,
// and delegating to the bundler's own build hook.
package bundler
