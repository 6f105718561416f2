package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RecordFileName is the build record written next to staged binaries.
const RecordFileName = "sidecar-manifest.json"

// Record describes one staged sidecar binary.
type Record struct {
	Name         string    `json:"name"`
	TargetTriple string    `json:"target_triple"`
	Version      string    `json:"version"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
	SHA256       string    `json:"sha256"`
	BuiltAt      time.Time `json:"built_at"`
}

// RecordFile is the on-disk shape of sidecar-manifest.json. One entry per
// name/triple pair; re-staging replaces the matching entry.
type RecordFile struct {
	Sidecars []Record `json:"sidecars"`
}

// RecordPath returns the path of the build record under binariesDir.
func RecordPath(binariesDir string) string {
	return filepath.Join(binariesDir, RecordFileName)
}

// ReadRecords loads the build record from binariesDir. A missing file
// returns an empty RecordFile.
func ReadRecords(binariesDir string) (*RecordFile, error) {
	path := RecordPath(binariesDir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RecordFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rf RecordFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &rf, nil
}

// Find returns the record for a name/triple pair, or nil.
func (rf *RecordFile) Find(name, triple string) *Record {
	for i := range rf.Sidecars {
		if rf.Sidecars[i].Name == name && rf.Sidecars[i].TargetTriple == triple {
			return &rf.Sidecars[i]
		}
	}
	return nil
}

// Upsert replaces the record matching rec's name and triple, or appends it.
func (rf *RecordFile) Upsert(rec Record) {
	if existing := rf.Find(rec.Name, rec.TargetTriple); existing != nil {
		*existing = rec
		return
	}
	rf.Sidecars = append(rf.Sidecars, rec)
}

// WriteRecords persists the build record atomically: the JSON is written to
// a temp file in binariesDir, synced, and renamed over the target so a
// crashed build never leaves a truncated record.
func WriteRecords(binariesDir string, rf *RecordFile) error {
	data, err := json.MarshalIndent(rf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling build record: %w", err)
	}
	data = append(data, '\n')

	path := RecordPath(binariesDir)
	f, err := os.CreateTemp(binariesDir, RecordFileName+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp record: %w", err)
	}
	tmpName := f.Name()
	var success bool
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing temp record: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing temp record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp record: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp record: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp record: %w", err)
	}
	success = true
	return nil
}
