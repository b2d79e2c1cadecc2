// Package router drives the batch: it scans the drop directory, dispatches
// each file to its extractor by extension, derives and resolves a
// destination, and relocates. Every per-file failure is converted to a
// terminal outcome at this boundary; nothing aborts the batch.
package router

import (
	"context"
	"log/slog"

	"butler/internal/audit"
	"butler/internal/classify"
	"butler/internal/config"
	"butler/internal/logging"
	"butler/internal/naming"
	"butler/internal/relocate"
	"butler/internal/scanner"
	"butler/internal/services"
)

// Status is the terminal outcome of one file.
type Status string

const (
	// StatusArchived means the file moved into the normal archive tree.
	StatusArchived Status = "archived"
	// StatusQuarantined means the file moved to the quarantine folder.
	StatusQuarantined Status = "quarantined"
	// StatusDeleted means the file matched the transient denylist and was removed.
	StatusDeleted Status = "deleted"
	// StatusLeftInPlace means the file could not be relocated this run and
	// stays in the drop directory for the next invocation.
	StatusLeftInPlace Status = "left-in-place"
)

// Outcome records what happened to one file.
type Outcome struct {
	Handle      scanner.FileHandle
	Status      Status
	Destination string
	Reason      string
}

// Summary aggregates one batch run.
type Summary struct {
	Outcomes []Outcome

	Archived     int
	Quarantined  int
	Deleted      int
	LeftInPlace  int
	SkippedYoung int
	SkippedTemp  int
}

func (s *Summary) add(outcome Outcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.Status {
	case StatusArchived:
		s.Archived++
	case StatusQuarantined:
		s.Quarantined++
	case StatusDeleted:
		s.Deleted++
	case StatusLeftInPlace:
		s.LeftInPlace++
	}
}

// Per-type extractor contracts. Each produces a classification result or an
// error carrying one of the services markers; the router translates markers
// into outcomes.
type (
	AudioExtractor interface {
		Extract(ctx context.Context, handle scanner.FileHandle) (classify.AudioInfo, error)
	}
	ImageExtractor interface {
		Extract(handle scanner.FileHandle) (classify.ImageInfo, error)
	}
	PDFExtractor interface {
		Extract(handle scanner.FileHandle) (classify.PDFInfo, error)
	}
	ExecutableExtractor interface {
		Extract(handle scanner.FileHandle) (classify.ExecutableInfo, error)
	}
	// OfficeExtractor may convert the file; the returned handle reflects the
	// post-conversion path.
	OfficeExtractor interface {
		Extract(ctx context.Context, handle scanner.FileHandle) (classify.DocumentInfo, scanner.FileHandle, error)
	}
)

// Extractors bundles the per-type extractors for construction.
type Extractors struct {
	Audio      AudioExtractor
	Image      ImageExtractor
	PDF        PDFExtractor
	Executable ExecutableExtractor
	Office     OfficeExtractor
}

// Router processes one batch sequentially: a file reaches its terminal
// outcome before the next begins.
type Router struct {
	cfg       *config.Config
	logger    *slog.Logger
	scanner   *scanner.Scanner
	relocator *relocate.Relocator
	ext       Extractors
}

func New(cfg *config.Config, logger *slog.Logger, relocator *relocate.Relocator, ext Extractors) *Router {
	return &Router{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "router"),
		scanner:   scanner.New(cfg, logger),
		relocator: relocator,
		ext:       ext,
	}
}

// Run executes one batch pass: delete transient files, then process every
// eligible file to a terminal outcome.
func (r *Router) Run(ctx context.Context) (Summary, error) {
	scanResult, err := r.scanner.Scan()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		SkippedYoung: scanResult.SkippedYoung,
		SkippedTemp:  scanResult.SkippedTemp,
	}

	for _, handle := range scanResult.Transient {
		outcome := r.deleteTransient(ctx, handle)
		summary.add(outcome)
		r.logOutcome(outcome)
	}
	for _, handle := range scanResult.Eligible {
		outcome := r.route(ctx, handle)
		summary.add(outcome)
		r.logOutcome(outcome)
	}

	r.logger.Info("batch complete",
		logging.Int("archived", summary.Archived),
		logging.Int("quarantined", summary.Quarantined),
		logging.Int("deleted", summary.Deleted),
		logging.Int("left_in_place", summary.LeftInPlace),
		logging.Int("skipped_young", summary.SkippedYoung),
		logging.Int("skipped_temp", summary.SkippedTemp),
	)
	return summary, nil
}

func (r *Router) deleteTransient(ctx context.Context, handle scanner.FileHandle) Outcome {
	if err := r.relocator.Delete(ctx, handle.Path); err != nil {
		return Outcome{Handle: handle, Status: StatusLeftInPlace, Reason: "delete failed: " + err.Error()}
	}
	return Outcome{Handle: handle, Status: StatusDeleted, Reason: "transient extension"}
}

// route takes one file through extract → name → resolve → relocate. All
// failures convert to an outcome here; none propagate.
func (r *Router) route(ctx context.Context, handle scanner.FileHandle) Outcome {
	ctx = services.WithSource(ctx, handle.Path)

	dest, handle, err := r.classify(ctx, handle)
	if err != nil {
		if services.Quarantines(err) {
			return r.quarantine(ctx, handle, err.Error())
		}
		// Transient locks, tool failures and relocation errors all leave the
		// file where it is for the next run.
		return Outcome{Handle: handle, Status: StatusLeftInPlace, Reason: err.Error()}
	}

	resolved, err := naming.Resolve(dest, r.cfg.Naming.MaxCollisionAttempts)
	if err != nil {
		return Outcome{Handle: handle, Status: StatusLeftInPlace, Reason: "collision resolution failed: " + err.Error()}
	}
	if err := r.relocator.Move(ctx, handle.Path, resolved, audit.ActionArchived); err != nil {
		return Outcome{Handle: handle, Status: StatusLeftInPlace, Reason: "relocation failed: " + err.Error()}
	}
	return Outcome{Handle: handle, Status: StatusArchived, Destination: resolved}
}

// classify dispatches on extension and returns the candidate destination.
// The returned handle may differ from the input after office conversion.
func (r *Router) classify(ctx context.Context, handle scanner.FileHandle) (naming.Destination, scanner.FileHandle, error) {
	switch handle.Ext {
	case ".mp3", ".wav":
		info, err := r.ext.Audio.Extract(ctx, handle)
		if err != nil {
			return naming.Destination{}, handle, err
		}
		return naming.ForAudio(r.cfg.AudioOutputDir(), info, handle.Base()), handle, nil

	case ".jpg", ".jpeg", ".png":
		info, err := r.ext.Image.Extract(handle)
		if err != nil {
			return naming.Destination{}, handle, err
		}
		return naming.ForImage(r.cfg.ImageOutputDir(), info, handle.Base()), handle, nil

	case ".pdf":
		info, err := r.ext.PDF.Extract(handle)
		if err != nil {
			return naming.Destination{}, handle, err
		}
		return naming.ForPDF(r.cfg.PDFOutputDir(), info, handle.Base()), handle, nil

	case ".exe":
		info, err := r.ext.Executable.Extract(handle)
		if err != nil {
			return naming.Destination{}, handle, err
		}
		return naming.ForExecutable(r.cfg.ExecutableOutputDir(), info, handle.Base()), handle, nil

	case ".doc", ".docx", ".xls", ".xlsx":
		_, converted, err := r.ext.Office.Extract(ctx, handle)
		if err != nil {
			return naming.Destination{}, handle, err
		}
		return naming.ForOffice(r.cfg.OfficeOutputDir(), converted.Base()), converted, nil

	default:
		return naming.Destination{}, handle, services.Wrap(services.ErrUnsupported, "router", "classify",
			"no handler for extension "+handle.Ext, nil)
	}
}

// quarantine moves a failed file into the holding folder, collision-resolved
// like any other destination. A failed quarantine move leaves the file in
// place.
func (r *Router) quarantine(ctx context.Context, handle scanner.FileHandle, reason string) Outcome {
	dest := naming.ForQuarantine(r.cfg.QuarantineDir(), handle.Base())
	resolved, err := naming.Resolve(dest, r.cfg.Naming.MaxCollisionAttempts)
	if err != nil {
		return Outcome{Handle: handle, Status: StatusLeftInPlace, Reason: reason + "; quarantine resolution failed: " + err.Error()}
	}
	if err := r.relocator.Move(ctx, handle.Path, resolved, audit.ActionQuarantined); err != nil {
		return Outcome{Handle: handle, Status: StatusLeftInPlace, Reason: reason + "; quarantine move failed: " + err.Error()}
	}
	return Outcome{Handle: handle, Status: StatusQuarantined, Destination: resolved, Reason: reason}
}

func (r *Router) logOutcome(outcome Outcome) {
	attrs := []logging.Attr{
		logging.String(logging.FieldSource, outcome.Handle.Path),
		logging.String(logging.FieldOutcome, string(outcome.Status)),
	}
	if outcome.Destination != "" {
		attrs = append(attrs, logging.String(logging.FieldDestination, outcome.Destination))
	}
	if outcome.Reason != "" {
		attrs = append(attrs, logging.String(logging.FieldReason, outcome.Reason))
	}
	switch outcome.Status {
	case StatusArchived, StatusDeleted:
		r.logger.Info("file processed", logging.Args(attrs...)...)
	default:
		r.logger.Warn("file not archived", logging.Args(attrs...)...)
	}
}
