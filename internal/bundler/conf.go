package bundler

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// ConfFileName is the bundler configuration file sidekit looks for in the
// manifest directory.
const ConfFileName = "tauri.conf.json"

type bundleSection struct {
	ExternalBin []string `json:"externalBin"`
}

// tauriConf covers both config layouts: v2 keeps bundle at the top level,
// v1 nests it under "tauri".
type tauriConf struct {
	Bundle bundleSection `json:"bundle"`
	Tauri  struct {
		Bundle bundleSection `json:"bundle"`
	} `json:"tauri"`
}

// ExternalBins reads the externalBin entries from tauri.conf.json in
// manifestDir. A missing config file is not an error; it returns nil.
func ExternalBins(manifestDir string) ([]string, error) {
	confPath := filepath.Join(manifestDir, ConfFileName)
	data, err := os.ReadFile(confPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", confPath, err)
	}

	var conf tauriConf
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", confPath, err)
	}

	bins := conf.Bundle.ExternalBin
	if len(bins) == 0 {
		bins = conf.Tauri.Bundle.ExternalBin
	}
	return bins, nil
}

// DeclaresExternalBin reports whether name appears among the externalBin
// entries. Entries are paths like "binaries/multicorpus"; only the base
// name is compared, per Tauri's sidecar naming rules.
func DeclaresExternalBin(bins []string, name string) bool {
	for _, b := range bins {
		if path.Base(filepath.ToSlash(b)) == name {
			return true
		}
	}
	return false
}
