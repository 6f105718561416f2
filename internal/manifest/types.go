package manifest

// DeclFileName is the declaration file looked up in the manifest directory.
const DeclFileName = "sidecars.yaml"

// Declaration is the parsed sidecars.yaml.
type Declaration struct {
	Sidecars []Sidecar `yaml:"sidecars" json:"sidecars"`
}

// Sidecar declares one companion executable.
type Sidecar struct {
	// Name is the base name; binaries are <name>-<triple>[.exe].
	Name string `yaml:"name" json:"name"`
	// Targets optionally restricts the triples this sidecar is built for.
	// Empty means every triple.
	Targets []string `yaml:"targets,omitempty" json:"targets,omitempty"`
	// Watch holds doublestar patterns, relative to the manifest directory,
	// whose changes re-trigger staging in watch mode. Defaults to
	// "binaries/**".
	Watch []string `yaml:"watch,omitempty" json:"watch,omitempty"`
}

// WatchPatterns returns the sidecar's watch patterns, defaulted.
func (s Sidecar) WatchPatterns() []string {
	if len(s.Watch) == 0 {
		return []string{"binaries/**"}
	}
	return s.Watch
}

// BuildsFor reports whether the sidecar is declared for the given triple.
func (s Sidecar) BuildsFor(triple string) bool {
	if len(s.Targets) == 0 {
		return true
	}
	for _, t := range s.Targets {
		if t == triple {
			return true
		}
	}
	return false
}
