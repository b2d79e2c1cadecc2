// Package binary categorizes Windows executables by keyword matching over
// their embedded version-resource strings, falling back to the filename.
package binary

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"unicode/utf16"

	"butler/internal/classify"
	"butler/internal/logging"
	"butler/internal/scanner"
	"butler/internal/textutil"
)

// categoryRule declares the keywords for one category; rules are checked
// in order against description + product + filename, first hit wins.
type categoryRule struct {
	category classify.ExecutableCategory
	keywords []string
}

var categoryRules = []categoryRule{
	{classify.ExecutableDriver, []string{"driver", "vga", "nvidia", "illesztoprogram"}},
	{classify.ExecutableInstaller, []string{"setup", "install", "telepito"}},
	{classify.ExecutableUpdater, []string{"update", "updater", "frissites"}},
	{classify.ExecutableGame, []string{"game", "launcher", "jatek"}},
	{classify.ExecutableDevTool, []string{"python", "rust", "compiler", "sdk"}},
	{classify.ExecutableMedia, []string{"media", "dvd", "burn", "codec"}},
}

// versionFields are the version-resource string names consulted for
// classification input.
var versionFields = []string{"FileDescription", "ProductName", "CompanyName", "OriginalFilename"}

const maxResourceRead = 4 << 20

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logging.NewComponentLogger(logger, "binary")}
}

// Extract categorizes the executable. It never misses: files without
// readable version resources classify on filename alone, and no keyword
// hit yields the unknown category.
func (e *Extractor) Extract(handle scanner.FileHandle) (classify.ExecutableInfo, error) {
	haystack := handle.Base()
	if fields := e.versionStrings(handle.Path); len(fields) > 0 {
		haystack = strings.Join(fields, " ") + " " + haystack
	}
	return classify.ExecutableInfo{Category: Categorize(haystack)}, nil
}

// Categorize matches the concatenated description/product/filename text
// against the ordered keyword table.
func Categorize(text string) classify.ExecutableCategory {
	folded := textutil.Fold(text)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(folded, keyword) {
				return rule.category
			}
		}
	}
	return classify.ExecutableUnknown
}

// versionStrings scans the binary for a StringFileInfo block and pulls the
// values of the known version fields. Parsing PE resource trees portably
// is not worth the trouble for keyword matching, so this searches the raw
// UTF-16 key names instead. Missing or malformed resources return nil.
func (e *Extractor) versionStrings(path string) []string {
	data, err := readHead(path, maxResourceRead)
	if err != nil || len(data) < 2 || data[0] != 'M' || data[1] != 'Z' {
		return nil
	}
	marker := encodeUTF16("StringFileInfo")
	if !bytes.Contains(data, marker) {
		return nil
	}

	var values []string
	for _, field := range versionFields {
		if value := utf16ValueAfterKey(data, field); value != "" {
			values = append(values, value)
		}
	}
	return values
}

func readHead(path string, limit int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size > limit {
		size = limit
	}
	data := make([]byte, size)
	if _, err := file.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// utf16ValueAfterKey finds the UTF-16LE encoding of key in data and decodes
// the next printable UTF-16 run after the key's NUL-padded terminator.
func utf16ValueAfterKey(data []byte, key string) string {
	encoded := encodeUTF16(key)
	idx := bytes.Index(data, encoded)
	if idx < 0 {
		return ""
	}
	pos := idx + len(encoded)
	// Skip the key terminator and alignment padding.
	for pos+1 < len(data) && data[pos] == 0 && data[pos+1] == 0 {
		pos += 2
	}

	var units []uint16
	for pos+1 < len(data) {
		unit := uint16(data[pos]) | uint16(data[pos+1])<<8
		if unit == 0 {
			break
		}
		units = append(units, unit)
		pos += 2
	}
	return strings.TrimSpace(string(utf16.Decode(units)))
}

func encodeUTF16(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, unit := range units {
		out = append(out, byte(unit), byte(unit>>8))
	}
	return out
}
