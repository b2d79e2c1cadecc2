// Package scanner walks the drop directory and decides which files this run
// may touch.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"butler/internal/config"
	"butler/internal/logging"
)

// FileHandle is an immutable snapshot of a discovered file. It is taken once
// at discovery time; later stages re-open the file only through extractors.
type FileHandle struct {
	Path    string
	Ext     string
	ModTime time.Time
	Size    int64
}

// Base returns the file name including extension.
func (h FileHandle) Base() string { return filepath.Base(h.Path) }

// Stem returns the file name without extension.
func (h FileHandle) Stem() string {
	base := h.Base()
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Result partitions a scan pass. Eligible files are old enough to process;
// Transient files match the delete denylist and should be removed; the rest
// were skipped and are reported only as counts.
type Result struct {
	Eligible  []FileHandle
	Transient []FileHandle

	SkippedYoung int
	SkippedTemp  int
}

// Scanner walks the configured input tree.
type Scanner struct {
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a scanner for the configured drop directory.
func New(cfg *config.Config, logger *slog.Logger) *Scanner {
	return &Scanner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "scanner"),
		now:    time.Now,
	}
}

// SetNowForTests overrides the clock used for the age gate.
func (s *Scanner) SetNowForTests(now func() time.Time) { s.now = now }

// Scan walks the input directory once and partitions every regular file.
// Office temp files (name prefix "~$") are ignored outright, transient
// extensions are collected for deletion, and files younger than the minimum
// age are left for a later run. Output ordering is deterministic.
func (s *Scanner) Scan() (Result, error) {
	var res Result

	root := s.cfg.Paths.InputDir
	info, err := os.Stat(root)
	if err != nil {
		return res, fmt.Errorf("input directory %q: %w", root, err)
	}
	if !info.IsDir() {
		return res, fmt.Errorf("input path %q is not a directory", root)
	}

	cutoff := s.now().Add(-time.Duration(s.cfg.Scanner.MinimumAgeSeconds) * time.Second)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			s.logger.Debug("skipping office temp file", logging.String(logging.FieldSource, path))
			res.SkippedTemp++
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return err
		}
		handle := FileHandle{
			Path:    path,
			Ext:     strings.ToLower(filepath.Ext(name)),
			ModTime: fileInfo.ModTime(),
			Size:    fileInfo.Size(),
		}

		if s.isTransient(handle.Ext) {
			res.Transient = append(res.Transient, handle)
			return nil
		}
		if handle.ModTime.After(cutoff) {
			s.logger.Debug("file too young, deferring",
				logging.String(logging.FieldSource, path),
				logging.Duration("age", s.now().Sub(handle.ModTime)),
			)
			res.SkippedYoung++
			return nil
		}

		res.Eligible = append(res.Eligible, handle)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("walk input directory: %w", err)
	}

	sort.Slice(res.Eligible, func(i, j int) bool { return res.Eligible[i].Path < res.Eligible[j].Path })
	sort.Slice(res.Transient, func(i, j int) bool { return res.Transient[i].Path < res.Transient[j].Path })
	return res, nil
}

func (s *Scanner) isTransient(ext string) bool {
	for _, candidate := range s.cfg.Scanner.DeleteExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
