package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Resolution sources, in the order ResolveTriple consults them.
const (
	SourceFlag  = "flag"
	SourceEnv   = "env"
	SourceRustc = "rustc"
	SourceHost  = "host"
)

// Resolution records which source produced the triple, for diagnostics.
type Resolution struct {
	Triple string `json:"triple"`
	Source string `json:"source"`
}

// hostTriples maps GOOS/GOARCH pairs to the Rust target triples Tauri's
// external binary convention uses.
var hostTriples = map[string]string{
	"darwin/arm64":  "aarch64-apple-darwin",
	"darwin/amd64":  "x86_64-apple-darwin",
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"windows/amd64": "x86_64-pc-windows-msvc",
	"windows/arm64": "aarch64-pc-windows-msvc",
}

// ResolveTriple returns the target triple for the current build. Resolution
// order: the explicit value (from a flag), the TARGET environment variable
// set by Cargo during cross builds, `rustc --print host-tuple`, and finally
// the GOOS/GOARCH fallback map.
func ResolveTriple(explicit string) (Resolution, error) {
	if explicit != "" {
		return Resolution{Triple: explicit, Source: SourceFlag}, nil
	}
	if t := os.Getenv("TARGET"); t != "" {
		return Resolution{Triple: t, Source: SourceEnv}, nil
	}
	if t := queryRustc(); t != "" {
		return Resolution{Triple: t, Source: SourceRustc}, nil
	}
	t, err := hostTriple()
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Triple: t, Source: SourceHost}, nil
}

// queryRustc asks the installed Rust toolchain for the host tuple.
// Returns "" if rustc is missing or the query fails.
func queryRustc() string {
	rustc, err := exec.LookPath("rustc")
	if err != nil {
		return ""
	}
	out, err := exec.Command(rustc, "--print", "host-tuple").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// hostTriple maps the running GOOS/GOARCH to a target triple.
func hostTriple() (string, error) {
	key := runtime.GOOS + "/" + runtime.GOARCH
	t, ok := hostTriples[key]
	if !ok {
		return "", fmt.Errorf("no target triple mapping for GOOS=%s GOARCH=%s (set TARGET or install rustc)", runtime.GOOS, runtime.GOARCH)
	}
	return t, nil
}

// IsWindowsTriple reports whether the triple targets Windows.
func IsWindowsTriple(triple string) bool {
	return strings.Contains(triple, "-windows-")
}

// ExeSuffix returns ".exe" for Windows triples and "" otherwise.
func ExeSuffix(triple string) string {
	if IsWindowsTriple(triple) {
		return ".exe"
	}
	return ""
}
