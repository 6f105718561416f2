// Package manifest handles parsing and validation of the sidecars.yaml
// declaration file, which lists the sidecar binaries a project ships and
// the paths whose changes should re-trigger staging. The file is optional;
// without it sidekit operates on a single sidecar named by configuration.
package manifest
