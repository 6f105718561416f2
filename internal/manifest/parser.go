package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Load reads sidecars.yaml from the manifest directory, validates it against
// the embedded schema, and returns the declaration. If the file does not
// exist, a single-sidecar declaration using defaultName is returned.
func Load(manifestDir, defaultName string) (*Declaration, error) {
	path := filepath.Join(manifestDir, DeclFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Declaration{Sidecars: []Sidecar{{Name: defaultName}}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse validates raw declaration bytes and unmarshals them. The path is
// used only for error messages.
func Parse(data []byte, path string) (*Declaration, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%s: %s", path, result.Summary())
	}

	var decl Declaration
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := checkUniqueNames(&decl); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &decl, nil
}

// checkUniqueNames rejects duplicate sidecar names, which would stage over
// each other.
func checkUniqueNames(decl *Declaration) error {
	seen := make(map[string]bool, len(decl.Sidecars))
	for _, s := range decl.Sidecars {
		if seen[s.Name] {
			return fmt.Errorf("duplicate sidecar name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
