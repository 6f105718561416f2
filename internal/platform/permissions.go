package platform

import (
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeExecutable marks a staged sidecar binary executable (0755). Tauri
// refuses to bundle an externalBin that is not executable on Unix.
func MakeExecutable(path string) error {
	return Chmod(path, 0755)
}
