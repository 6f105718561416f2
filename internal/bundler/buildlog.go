package bundler

import (
	"fmt"
	"io"
	"os"
)

// BuildLog routes warnings and rerun directives to the build log. When the
// process runs under Cargo (as a build-script helper), messages use the
// `cargo:` directive protocol on stdout so Cargo surfaces them; otherwise
// warnings go to stderr in plain form and rerun directives are dropped.
type BuildLog struct {
	cargo bool
	out   io.Writer
	errw  io.Writer
}

// NewBuildLog detects the Cargo environment and returns a BuildLog writing
// to stdout/stderr.
func NewBuildLog() *BuildLog {
	return &BuildLog{
		cargo: os.Getenv("CARGO") != "",
		out:   os.Stdout,
		errw:  os.Stderr,
	}
}

// NewBuildLogWriter returns a BuildLog with explicit writers, for tests.
func NewBuildLogWriter(cargo bool, out, errw io.Writer) *BuildLog {
	return &BuildLog{cargo: cargo, out: out, errw: errw}
}

// Warnf emits a non-fatal warning. Under Cargo this is a `cargo:warning=`
// directive, which shows up in the build output without failing the build.
func (l *BuildLog) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.cargo {
		fmt.Fprintf(l.out, "cargo:warning=%s\n", msg)
		return
	}
	fmt.Fprintf(l.errw, "warning: %s\n", msg)
}

// RerunIfChanged tells Cargo to re-run the build script when path changes.
// Outside Cargo there is no equivalent, so the directive is dropped.
func (l *BuildLog) RerunIfChanged(path string) {
	if l.cargo {
		fmt.Fprintf(l.out, "cargo:rerun-if-changed=%s\n", path)
	}
}
