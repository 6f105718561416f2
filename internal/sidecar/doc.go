// Package sidecar implements the external-binary staging conventions:
// naming (<name>-<target-triple>, exe-suffixed on Windows), the
// existence-guarded copy from binaries/ to the manifest root that the
// bundler's externalBin mechanism expects, staging freshly built binaries
// into binaries/, and the sidecar-manifest.json build record.
package sidecar
