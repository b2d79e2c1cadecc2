package scanner_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"butler/internal/logging"
	"butler/internal/scanner"
	"butler/internal/testsupport"
)

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("fixture"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func TestScanPartitionsDropDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}

	old := 3 * time.Hour
	writeAged(t, filepath.Join(cfg.Paths.InputDir, "song.mp3"), old)
	writeAged(t, filepath.Join(cfg.Paths.InputDir, "nested", "doc.pdf"), old)
	writeAged(t, filepath.Join(cfg.Paths.InputDir, "leftover.torrent"), old)
	writeAged(t, filepath.Join(cfg.Paths.InputDir, "partial.crdownload"), old)
	writeAged(t, filepath.Join(cfg.Paths.InputDir, "~$draft.docx"), old)
	writeAged(t, filepath.Join(cfg.Paths.InputDir, "fresh.jpg"), time.Minute)

	s := scanner.New(cfg, logging.NewNop())
	res, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(res.Eligible) != 2 {
		t.Fatalf("eligible = %d, want 2: %+v", len(res.Eligible), res.Eligible)
	}
	// Deterministic path ordering.
	if res.Eligible[0].Base() != "doc.pdf" || res.Eligible[1].Base() != "song.mp3" {
		t.Fatalf("unexpected eligible order: %+v", res.Eligible)
	}
	if res.Eligible[1].Ext != ".mp3" {
		t.Fatalf("unexpected ext: %q", res.Eligible[1].Ext)
	}
	if len(res.Transient) != 2 {
		t.Fatalf("transient = %d, want 2: %+v", len(res.Transient), res.Transient)
	}
	if res.SkippedYoung != 1 {
		t.Fatalf("skipped young = %d, want 1", res.SkippedYoung)
	}
	if res.SkippedTemp != 1 {
		t.Fatalf("skipped temp = %d, want 1", res.SkippedTemp)
	}
}

func TestScanMissingInputDirectoryFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := scanner.New(cfg, logging.NewNop())
	if _, err := s.Scan(); err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestFileHandleStem(t *testing.T) {
	h := scanner.FileHandle{Path: "/in/Track - 01.mp3"}
	if h.Stem() != "Track - 01" {
		t.Fatalf("unexpected stem: %q", h.Stem())
	}
}
