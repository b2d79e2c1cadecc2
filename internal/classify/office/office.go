// Package office prepares document and spreadsheet files for archiving:
// legacy formats are upgraded through the conversion service, and a short
// text excerpt is read for diagnostic logging. The excerpt never
// influences naming or routing.
package office

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"butler/internal/classify"
	"butler/internal/fileutil"
	"butler/internal/logging"
	"butler/internal/scanner"
	"butler/internal/services"
)

const (
	excerptLimit     = 500
	spreadsheetRows  = 10
	maxDocumentEntry = 8 << 20
)

// Converter upgrades a legacy document and returns the resulting path.
// Already-modern files pass through unchanged.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// noopConverter is used when conversion is disabled; legacy files keep
// their original format.
type noopConverter struct{}

func (noopConverter) Convert(_ context.Context, path string) (string, error) { return path, nil }

type Extractor struct {
	converter Converter
	logger    *slog.Logger
}

func NewExtractor(converter Converter, logger *slog.Logger) *Extractor {
	if converter == nil {
		converter = noopConverter{}
	}
	return &Extractor{converter: converter, logger: logging.NewComponentLogger(logger, "office")}
}

// Extract probes for locks, converts legacy formats, and reads a short
// diagnostic excerpt. The returned handle reflects the post-conversion
// path, which may differ from the input. A file still open in another
// application is a transient error; this run leaves it untouched.
func (e *Extractor) Extract(ctx context.Context, handle scanner.FileHandle) (classify.DocumentInfo, scanner.FileHandle, error) {
	if fileutil.IsLocked(handle.Path) {
		return classify.DocumentInfo{}, handle, services.Wrap(services.ErrTransient, "office", "extract",
			handle.Base()+" is open in another application", nil)
	}

	converted, err := e.converter.Convert(ctx, handle.Path)
	if err != nil {
		return classify.DocumentInfo{}, handle, err
	}
	if converted != handle.Path {
		info, statErr := os.Stat(converted)
		if statErr != nil {
			return classify.DocumentInfo{}, handle, services.Wrap(services.ErrExternalTool, "office", "extract",
				"converted file unavailable", statErr)
		}
		handle = scanner.FileHandle{
			Path:    converted,
			Ext:     strings.ToLower(filepath.Ext(converted)),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		}
	}

	excerpt := e.readExcerpt(handle)
	if excerpt != "" {
		e.logger.Debug("document excerpt",
			logging.String(logging.FieldSource, handle.Path),
			logging.String("excerpt", excerpt))
	}
	return classify.DocumentInfo{Excerpt: excerpt}, handle, nil
}

func (e *Extractor) readExcerpt(handle scanner.FileHandle) string {
	switch handle.Ext {
	case ".docx":
		excerpt, err := documentText(handle.Path)
		if err != nil {
			e.logger.Debug("could not read document text",
				logging.String(logging.FieldSource, handle.Path),
				logging.Error(err))
			return ""
		}
		return excerpt
	case ".xlsx":
		excerpt, err := spreadsheetPreview(handle.Path)
		if err != nil {
			e.logger.Debug("could not read spreadsheet rows",
				logging.String(logging.FieldSource, handle.Path),
				logging.Error(err))
			return ""
		}
		return excerpt
	}
	return ""
}

// documentText pulls paragraph text from the main document part of a docx
// container, truncated to the excerpt limit.
func documentText(path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.Name != "word/document.xml" {
			continue
		}
		if entry.UncompressedSize64 > maxDocumentEntry {
			return "", fmt.Errorf("document part too large")
		}
		part, err := entry.Open()
		if err != nil {
			return "", err
		}
		defer part.Close()
		return extractXMLText(part)
	}
	return "", fmt.Errorf("no document part found")
}

// extractXMLText collects character data from w:t elements in order.
func extractXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var builder strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch element := token.(type) {
		case xml.StartElement:
			inText = element.Name.Local == "t"
		case xml.EndElement:
			if element.Name.Local == "t" {
				inText = false
			}
			if element.Name.Local == "p" && builder.Len() > 0 {
				builder.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				builder.Write(element)
			}
		}
		if builder.Len() >= excerptLimit {
			break
		}
	}
	return truncate(strings.TrimSpace(builder.String()), excerptLimit), nil
}

// spreadsheetPreview renders the first rows of the first sheet.
func spreadsheetPreview(path string) (string, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	rows, err := book.Rows(sheets[0])
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() && len(lines) < spreadsheetRows {
		cells, err := rows.Columns()
		if err != nil {
			return "", err
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return truncate(strings.TrimSpace(strings.Join(lines, "\n")), excerptLimit), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
