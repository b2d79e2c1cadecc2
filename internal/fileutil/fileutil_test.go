package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFilePreservesContents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	payload := []byte("butler copy test payload")
	if err := os.WriteFile(src, payload, 0o640); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("contents mismatch: %q", got)
	}
}

func TestIsLockedMissingFile(t *testing.T) {
	if !IsLocked(filepath.Join(t.TempDir(), "absent")) {
		t.Fatal("missing file should report locked")
	}
}

func TestIsLockedRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "free.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if IsLocked(path) {
		t.Fatal("writable file should not report locked")
	}
}
