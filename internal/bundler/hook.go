package bundler

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// RunHook executes the bundler's build hook command in the manifest
// directory, wiring its output through to the given writers. The command is
// run through the platform shell so hook values like
// "cargo tauri build --debug" work unmodified. An empty command is a no-op.
func RunHook(manifestDir, command string, stdout, stderr io.Writer) error {
	if command == "" {
		return nil
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	cmd.Dir = manifestDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("bundler hook %q: %w", command, err)
	}
	return nil
}
