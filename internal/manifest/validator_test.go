package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateValid(t *testing.T) {
	result, err := Validate([]byte(validDecl))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("valid declaration rejected: %s", result.Summary())
	}
}

func TestValidateReportsPath(t *testing.T) {
	bad := "sidecars:\n  - name: \"-starts-with-dash\"\n"
	result, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("name violating pattern accepted")
	}
	if len(result.Issues) == 0 {
		t.Fatal("no issues reported")
	}
	if result.Issues[0].Path != "/sidecars/0/name" {
		t.Errorf("issue path = %q, want /sidecars/0/name", result.Issues[0].Path)
	}
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DeclFileName)
	if err := os.WriteFile(path, []byte(validDecl), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("valid file rejected: %s", result.Summary())
	}
}

func TestValidateFileMissing(t *testing.T) {
	if _, err := ValidateFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
