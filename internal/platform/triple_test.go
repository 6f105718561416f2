package platform

import (
	"runtime"
	"strings"
	"testing"
)

func TestResolveTripleExplicit(t *testing.T) {
	res, err := ResolveTriple("aarch64-apple-darwin")
	if err != nil {
		t.Fatalf("ResolveTriple: %v", err)
	}
	if res.Triple != "aarch64-apple-darwin" {
		t.Errorf("triple = %q, want explicit value", res.Triple)
	}
	if res.Source != SourceFlag {
		t.Errorf("source = %q, want %q", res.Source, SourceFlag)
	}
}

func TestResolveTripleEnv(t *testing.T) {
	t.Setenv("TARGET", "x86_64-unknown-linux-gnu")
	res, err := ResolveTriple("")
	if err != nil {
		t.Fatalf("ResolveTriple: %v", err)
	}
	if res.Triple != "x86_64-unknown-linux-gnu" {
		t.Errorf("triple = %q, want TARGET value", res.Triple)
	}
	if res.Source != SourceEnv {
		t.Errorf("source = %q, want %q", res.Source, SourceEnv)
	}
}

func TestResolveTripleExplicitBeatsEnv(t *testing.T) {
	t.Setenv("TARGET", "x86_64-unknown-linux-gnu")
	res, err := ResolveTriple("aarch64-apple-darwin")
	if err != nil {
		t.Fatalf("ResolveTriple: %v", err)
	}
	if res.Triple != "aarch64-apple-darwin" {
		t.Errorf("triple = %q, explicit flag should win over TARGET", res.Triple)
	}
}

func TestHostTripleMatchesRuntime(t *testing.T) {
	triple, err := hostTriple()
	if err != nil {
		t.Skipf("no mapping for this platform: %v", err)
	}

	switch runtime.GOOS {
	case "darwin":
		if !strings.Contains(triple, "apple-darwin") {
			t.Errorf("triple = %q, want apple-darwin for GOOS=darwin", triple)
		}
	case "linux":
		if !strings.Contains(triple, "linux") {
			t.Errorf("triple = %q, want linux for GOOS=linux", triple)
		}
	case "windows":
		if !strings.Contains(triple, "windows") {
			t.Errorf("triple = %q, want windows for GOOS=windows", triple)
		}
	}
}

func TestIsWindowsTriple(t *testing.T) {
	cases := []struct {
		triple string
		want   bool
	}{
		{"x86_64-pc-windows-msvc", true},
		{"aarch64-pc-windows-msvc", true},
		{"x86_64-pc-windows-gnu", true},
		{"x86_64-unknown-linux-gnu", false},
		{"aarch64-apple-darwin", false},
	}
	for _, c := range cases {
		if got := IsWindowsTriple(c.triple); got != c.want {
			t.Errorf("IsWindowsTriple(%q) = %v, want %v", c.triple, got, c.want)
		}
	}
}

func TestExeSuffix(t *testing.T) {
	if got := ExeSuffix("x86_64-pc-windows-msvc"); got != ".exe" {
		t.Errorf("ExeSuffix(windows) = %q, want .exe", got)
	}
	if got := ExeSuffix("x86_64-unknown-linux-gnu"); got != "" {
		t.Errorf("ExeSuffix(linux) = %q, want empty", got)
	}
}
