// Package relocate performs the physical move of a classified file into the
// archive and records the audit entry.
package relocate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"butler/internal/audit"
	"butler/internal/fileutil"
	"butler/internal/logging"
	"butler/internal/services"
)

// Relocator moves files to resolved destination paths. A failure is fatal for
// the file only: the source is never deleted or partially written, so the next
// run can retry it.
type Relocator struct {
	recorder audit.Recorder
	logger   *slog.Logger
	dryRun   bool
}

// New constructs a relocator that records every success with the given recorder.
func New(recorder audit.Recorder, logger *slog.Logger) *Relocator {
	return &Relocator{
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "relocate"),
	}
}

// NewDryRun constructs a relocator that only logs what it would do.
func NewDryRun(logger *slog.Logger) *Relocator {
	return &Relocator{
		recorder: audit.Discard{},
		logger:   logging.NewComponentLogger(logger, "relocate"),
		dryRun:   true,
	}
}

// Move relocates source to destination, creating missing destination
// directories first. The move is a rename when possible; across devices it
// degrades to copy+remove, deleting the source only after the copy is synced.
func (r *Relocator) Move(ctx context.Context, source, destination string, action audit.Action) error {
	if r.dryRun {
		r.logger.Info("dry run, would move",
			logging.String(logging.FieldSource, source),
			logging.String(logging.FieldDestination, destination),
		)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return services.Wrap(services.ErrRelocation, "relocate", "move", "create destination directory", err)
	}
	if err := moveFile(source, destination); err != nil {
		return services.Wrap(services.ErrRelocation, "relocate", "move", "", err)
	}

	entry := audit.Entry{
		RunID:           runID(ctx),
		SourcePath:      source,
		DestinationPath: destination,
		Action:          action,
	}
	if err := r.recorder.Record(ctx, entry); err != nil {
		// The file has already moved; an audit write failure must not undo that.
		r.logger.Error("audit record failed after move",
			logging.String(logging.FieldSource, source),
			logging.String(logging.FieldDestination, destination),
			logging.Error(err),
		)
	}
	return nil
}

// Delete removes a transient file and records the deletion.
func (r *Relocator) Delete(ctx context.Context, source string) error {
	if r.dryRun {
		r.logger.Info("dry run, would delete", logging.String(logging.FieldSource, source))
		return nil
	}

	if err := os.Remove(source); err != nil {
		return services.Wrap(services.ErrRelocation, "relocate", "delete", "", err)
	}
	entry := audit.Entry{
		RunID:      runID(ctx),
		SourcePath: source,
		Action:     audit.ActionDeleted,
	}
	if err := r.recorder.Record(ctx, entry); err != nil {
		r.logger.Error("audit record failed after delete",
			logging.String(logging.FieldSource, source),
			logging.Error(err),
		)
	}
	return nil
}

func moveFile(source, destination string) error {
	if err := os.Rename(source, destination); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if err := fileutil.CopyFile(source, destination); err != nil {
				return fmt.Errorf("copy across devices: %w", err)
			}
			if err := os.Remove(source); err != nil {
				return fmt.Errorf("remove source after copy: %w", err)
			}
			return nil
		}
		return err
	}
	return nil
}

func runID(ctx context.Context) string {
	id, _ := services.RunIDFromContext(ctx)
	return id
}
