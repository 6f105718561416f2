// Package config manages user-level settings stored at ~/.sidekit/config.yaml
// and the environment-driven resolution of the bundler manifest directory.
// Keys can be overridden via SIDEKIT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sidekit-dev/sidekit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	// KeyName is the default sidecar base name when no sidecars.yaml exists.
	KeyName = "name"
	// KeyHook is the bundler hook command run after staging.
	KeyHook = "hook"
	// KeyGitHubRepo is the owner/repo fetch pulls release assets from.
	KeyGitHubRepo = "github_repo"
)

// Dir returns the path to the config directory (~/.sidekit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.sidekit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyName, branding.SidecarName())
	viper.SetDefault(KeyGitHubRepo, branding.GitHubRepo())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ManifestDir resolves the bundler manifest directory: the explicit flag
// value, then SIDEKIT_MANIFEST_DIR, then CARGO_MANIFEST_DIR (set by Cargo
// for build scripts), then the working directory.
func ManifestDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dir := os.Getenv(branding.EnvVar("MANIFEST_DIR")); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("CARGO_MANIFEST_DIR"); dir != "" {
		return dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return dir, nil
}
