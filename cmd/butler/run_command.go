package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"butler/internal/audit"
	"butler/internal/classify/audio"
	"butler/internal/classify/binary"
	"butler/internal/classify/image"
	"butler/internal/classify/office"
	"butler/internal/classify/pdfdoc"
	"butler/internal/config"
	"butler/internal/logging"
	"butler/internal/relocate"
	"butler/internal/router"
	"butler/internal/services"
	"butler/internal/services/officeconv"
	"butler/internal/services/songid"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the drop directory once",
		Long: "Scans the input directory, classifies every eligible file by type, " +
			"and relocates it into the archive tree. Files that cannot be classified " +
			"move to quarantine; locked or failing files stay in place for the next run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another run holds the lock at %s", cfg.LockPath())
			}
			defer lock.Unlock()

			var relocator *relocate.Relocator
			if dryRun {
				relocator = relocate.NewDryRun(logger)
			} else {
				auditLog, err := audit.Open(cfg.Paths.LogDir)
				if err != nil {
					return fmt.Errorf("open audit log: %w", err)
				}
				defer auditLog.Close()
				relocator = relocate.New(auditLog, logger)
			}

			runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
			batch := router.New(cfg, logger, relocator, buildExtractors(cfg, logger))

			started := time.Now()
			summary, err := batch.Run(runCtx)
			if err != nil {
				return fmt.Errorf("batch run: %w", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "Dry run: no files were moved or deleted")
			}
			fmt.Fprintln(out, renderSummaryTable(summary))
			fmt.Fprintf(out, "Completed in %s\n", time.Since(started).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would happen without touching any file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level for this run")
	return cmd
}

// buildExtractors wires the per-type extractors from configuration. The
// fingerprint service and the office converter are optional collaborators;
// when disabled, audio falls back to tags and legacy formats stay unconverted.
func buildExtractors(cfg *config.Config, logger *slog.Logger) router.Extractors {
	var recognizer audio.Recognizer
	if cfg.SongID.Enabled {
		recognizer = songid.NewClient(cfg.SongID.APIToken,
			songid.WithBaseURL(cfg.SongID.BaseURL),
			songid.WithTimeout(time.Duration(cfg.SongID.TimeoutSeconds)*time.Second),
		)
	}

	var converter office.Converter
	if cfg.Office.ConvertEnabled {
		converter = officeconv.New(cfg.Office.ConvertBinary,
			time.Duration(cfg.Office.ConvertTimeoutSeconds)*time.Second, logger)
	}

	return router.Extractors{
		Audio:      audio.NewExtractor(recognizer, logger),
		Image:      image.NewExtractor(logger),
		PDF:        pdfdoc.NewExtractor(logger),
		Executable: binary.NewExtractor(logger),
		Office:     office.NewExtractor(converter, logger),
	}
}

func renderSummaryTable(summary router.Summary) string {
	headers := []string{"Outcome", "Files"}
	rows := [][]string{
		{"Archived", strconv.Itoa(summary.Archived)},
		{"Quarantined", strconv.Itoa(summary.Quarantined)},
		{"Deleted", strconv.Itoa(summary.Deleted)},
		{"Left in place", strconv.Itoa(summary.LeftInPlace)},
		{"Skipped (too young)", strconv.Itoa(summary.SkippedYoung)},
		{"Skipped (temp)", strconv.Itoa(summary.SkippedTemp)},
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight})
}
