package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Recorder accepts relocation records. The dry-run relocator swaps in a
// discard implementation.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Log appends each entry to the human-readable journal and the SQLite store.
type Log struct {
	mu      sync.Mutex
	journal *os.File
	store   *Store
}

// Open creates (or reopens) the audit log inside the given directory:
// audit.log for the journal and audit.db for the store.
func Open(dir string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure audit directory: %w", err)
	}
	journal, err := os.OpenFile(filepath.Join(dir, "audit.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit journal: %w", err)
	}
	store, err := OpenStore(filepath.Join(dir, "audit.db"))
	if err != nil {
		_ = journal.Close()
		return nil, err
	}
	return &Log{journal: journal, store: store}, nil
}

// Record appends the entry to both sinks.
func (l *Log) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if _, err := l.store.Append(ctx, entry); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.journal, "%s | %-11s | %s → %s\n",
		entry.CreatedAt.Format("2006-01-02 15:04:05"),
		entry.Action,
		entry.SourcePath,
		destinationLabel(entry),
	)
	return err
}

// Store exposes the SQLite side for history queries.
func (l *Log) Store() *Store { return l.store }

// Close releases the journal handle and the database connection.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	journalErr := l.journal.Close()
	storeErr := l.store.Close()
	if journalErr != nil {
		return journalErr
	}
	return storeErr
}

func destinationLabel(entry Entry) string {
	if entry.Action == ActionDeleted {
		return "(deleted)"
	}
	return entry.DestinationPath
}

// Discard is a Recorder that drops every entry; used for dry runs.
type Discard struct{}

func (Discard) Record(context.Context, Entry) error { return nil }
