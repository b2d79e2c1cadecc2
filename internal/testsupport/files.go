package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile creates the target path with the given contents, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteAgedFile creates the target path and backdates its modification time so
// it passes the scanner age gate.
func WriteAgedFile(t testing.TB, path string, contents string, age time.Duration) {
	t.Helper()

	WriteFile(t, path, contents)
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
