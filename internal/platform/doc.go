// Package platform resolves the target triple a sidecar binary is named
// after and provides the cross-platform filesystem helpers staging needs.
// Triple resolution prefers the build environment (TARGET), then asks the
// Rust toolchain for the host tuple, then falls back to a GOOS/GOARCH map.
package platform
