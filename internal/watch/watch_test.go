package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Events():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherSignalsMatchingWrite(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "binaries")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}

	w, err := New(dir, []string{"binaries/**"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	target := filepath.Join(binDir, "multicorpus-x86_64-unknown-linux-gnu")
	if err := os.WriteFile(target, []byte("v1"), 0755); err != nil {
		t.Fatal(err)
	}

	if !waitEvent(t, w, 5*time.Second) {
		t.Fatal("no event for matching write")
	}
}

func TestWatcherIgnoresNonMatchingWrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "binaries"), 0755); err != nil {
		t.Fatal(err)
	}

	w, err := New(dir, []string{"binaries/**"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if waitEvent(t, w, 500*time.Millisecond) {
		t.Error("got event for non-matching write")
	}
}

func TestWatcherRejectsInvalidPattern(t *testing.T) {
	if _, err := New(t.TempDir(), []string{"binaries/[**"}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestWatcherRejectsEmptyPatterns(t *testing.T) {
	if _, err := New(t.TempDir(), nil); err == nil {
		t.Error("expected error for empty pattern set")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), []string{"**"})
	if err != nil {
		t.Fatal(err)
	}
	w.Close()
	w.Close()
}

func TestMatches(t *testing.T) {
	w := &Watcher{dir: "/proj", patterns: []string{"binaries/**", "Cargo.toml"}}

	cases := []struct {
		path string
		want bool
	}{
		{"/proj/binaries/multicorpus-x86_64-unknown-linux-gnu", true},
		{"/proj/Cargo.toml", true},
		{"/proj/src/main.rs", false},
		{"/proj/binaries", false},
	}
	for _, c := range cases {
		if got := w.matches(c.path); got != c.want {
			t.Errorf("matches(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
