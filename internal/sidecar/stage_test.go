package sidecar

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestStageMovesBinaryAndRecords(t *testing.T) {
	tmp := t.TempDir()
	built := filepath.Join(tmp, "dist", "multicorpus")
	if err := os.MkdirAll(filepath.Dir(built), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(built, []byte("binary payload"), 0644); err != nil {
		t.Fatal(err)
	}

	binariesDir := filepath.Join(tmp, BinariesDir)
	rec, err := Stage(StageOptions{
		From:        built,
		Name:        "multicorpus",
		Triple:      testTriple,
		Version:     "0.4.1",
		BinariesDir: binariesDir,
	})
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	dest := filepath.Join(binariesDir, "multicorpus-"+testTriple)
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("staged binary missing: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		t.Error("staged binary is not executable")
	}

	if rec.SizeBytes != int64(len("binary payload")) {
		t.Errorf("size = %d", rec.SizeBytes)
	}
	if len(rec.SHA256) != 64 {
		t.Errorf("sha256 = %q, want 64 hex chars", rec.SHA256)
	}
	if rec.Version != "0.4.1" {
		t.Errorf("version = %q", rec.Version)
	}

	// The record file round-trips.
	rf, err := ReadRecords(binariesDir)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	found := rf.Find("multicorpus", testTriple)
	if found == nil {
		t.Fatal("record not found after stage")
	}
	if found.SHA256 != rec.SHA256 {
		t.Errorf("recorded sha256 = %q, want %q", found.SHA256, rec.SHA256)
	}
}

func TestStageReplacesExistingRecord(t *testing.T) {
	tmp := t.TempDir()
	binariesDir := filepath.Join(tmp, BinariesDir)

	stageOnce := func(content string) *Record {
		t.Helper()
		built := filepath.Join(tmp, "built")
		if err := os.WriteFile(built, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		rec, err := Stage(StageOptions{
			From: built, Name: "multicorpus", Triple: testTriple,
			Version: "0.4.1", BinariesDir: binariesDir,
		})
		if err != nil {
			t.Fatalf("Stage: %v", err)
		}
		return rec
	}

	first := stageOnce("v1")
	second := stageOnce("v2")
	if first.SHA256 == second.SHA256 {
		t.Fatal("test binaries should differ")
	}

	rf, err := ReadRecords(binariesDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(rf.Sidecars) != 1 {
		t.Fatalf("got %d records, want 1 (re-stage must replace)", len(rf.Sidecars))
	}
	if rf.Sidecars[0].SHA256 != second.SHA256 {
		t.Error("record not updated to latest stage")
	}
}

func TestStageRejectsDirectory(t *testing.T) {
	tmp := t.TempDir()
	_, err := Stage(StageOptions{
		From: tmp, Name: "multicorpus", Triple: testTriple,
		BinariesDir: filepath.Join(tmp, BinariesDir),
	})
	if err == nil || !strings.Contains(err.Error(), "directory") {
		t.Errorf("expected directory error, got %v", err)
	}
}

func TestReadRecordsMissingFile(t *testing.T) {
	rf, err := ReadRecords(t.TempDir())
	if err != nil {
		t.Fatalf("missing record file should not error: %v", err)
	}
	if len(rf.Sidecars) != 0 {
		t.Errorf("got %d records, want 0", len(rf.Sidecars))
	}
}

func TestSHA256File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	sum, err := SHA256File(path)
	if err != nil {
		t.Fatal(err)
	}
	// Well-known digest of "abc".
	if sum != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("sha256 = %q", sum)
	}
}
