// Package audit records one entry per relocation butler performs.
//
// Two sinks back every entry: a human-readable journal line in audit.log and
// a SQLite store that powers "butler history". Both are append-only with a
// single writer (the batch run holds the archive lock).
package audit

import "time"

// Action describes the terminal filesystem effect recorded for a file.
type Action string

const (
	ActionArchived    Action = "archived"
	ActionQuarantined Action = "quarantined"
	ActionDeleted     Action = "deleted"
)

// Entry is one relocation record.
type Entry struct {
	ID              int64
	RunID           string
	SourcePath      string
	DestinationPath string
	Action          Action
	CreatedAt       time.Time
}
