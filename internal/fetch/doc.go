// Package fetch downloads prebuilt sidecar binaries from GitHub releases:
// it selects the asset matching a target triple, verifies it against the
// release's checksums.txt when one is published, and unpacks tar.gz/zip
// archives down to the executable.
package fetch
