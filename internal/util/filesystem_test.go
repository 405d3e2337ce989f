package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "util-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("stat %s failed: %v", nested, err)
	}
	if !info.IsDir() {
		t.Errorf("%s should be a directory", nested)
	}

	// Idempotent on an existing directory
	if err := EnsureDir(nested); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestScanFiles(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "util-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s failed: %v", name, err)
		}
	}
	// A directory with a matching name must not be returned.
	if err := os.Mkdir(filepath.Join(tmpDir, "c.json"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	files, err := ScanFiles(filepath.Join(tmpDir, "*.json"))
	if err != nil {
		t.Fatalf("ScanFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(tmpDir, "a.json"),
		filepath.Join(tmpDir, "b.json"),
	}
	if len(files) != len(want) {
		t.Fatalf("ScanFiles returned %d files, want %d: %v", len(files), len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestScanFilesMissingDir(t *testing.T) {
	files, err := ScanFiles(filepath.Join("/nonexistent-dir-for-scan-test", "*.json"))
	if err != nil {
		t.Fatalf("ScanFiles on missing dir should not fail: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ScanFiles on missing dir = %v, want empty", files)
	}
}

func TestScanFilesBadPattern(t *testing.T) {
	if _, err := ScanFiles("[/*.json"); err == nil {
		t.Error("ScanFiles should fail on a malformed pattern")
	}
}
