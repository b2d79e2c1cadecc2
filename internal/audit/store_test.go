package audit_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"butler/internal/audit"
)

func TestStoreAppendAndRecent(t *testing.T) {
	store, err := audit.OpenStore(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first, err := store.Append(ctx, audit.Entry{
		RunID:           "run-1",
		SourcePath:      "/in/a.pdf",
		DestinationPath: "/out/PDF/invoice/a.pdf",
		Action:          audit.ActionArchived,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected timestamp to be defaulted")
	}

	if _, err := store.Append(ctx, audit.Entry{
		RunID:      "run-1",
		SourcePath: "/in/junk.torrent",
		Action:     audit.ActionDeleted,
	}); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != audit.ActionDeleted {
		t.Fatalf("expected newest first, got %+v", entries[0])
	}
	if entries[1].DestinationPath != "/out/PDF/invoice/a.pdf" {
		t.Fatalf("unexpected destination: %q", entries[1].DestinationPath)
	}

	count, err := store.CountForRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("CountForRun: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 entries for run, got %d", count)
	}
}

func TestStoreReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := audit.OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if _, err := store.Append(context.Background(), audit.Entry{
		RunID: "run-1", SourcePath: "/in/x", Action: audit.ActionQuarantined,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := audit.OpenStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d", len(entries))
	}
}

func TestLogWritesJournalLine(t *testing.T) {
	dir := t.TempDir()
	log, err := audit.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	stamp := time.Date(2023, 9, 27, 10, 30, 0, 0, time.UTC)
	err = log.Record(context.Background(), audit.Entry{
		RunID:           "run-9",
		SourcePath:      "/in/doc1.pdf",
		DestinationPath: "/out/PDF/invoice/2023-09-27_doc1.pdf",
		Action:          audit.ActionArchived,
		CreatedAt:       stamp,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	line := string(raw)
	if !strings.Contains(line, "2023-09-27 10:30:00") {
		t.Fatalf("missing timestamp: %q", line)
	}
	if !strings.Contains(line, "/in/doc1.pdf → /out/PDF/invoice/2023-09-27_doc1.pdf") {
		t.Fatalf("missing src/dst: %q", line)
	}
	if !strings.Contains(line, "archived") {
		t.Fatalf("missing action: %q", line)
	}
}
