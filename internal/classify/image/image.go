// Package image extracts capture dates and GPS coordinates from photos,
// falling back to filesystem timestamps when metadata is absent.
package image

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"butler/internal/classify"
	"butler/internal/logging"
	"butler/internal/scanner"
)

const exifTimeLayout = "2006:01:02 15:04:05"

// dateFields is the fixed priority order for capture-date lookup.
var dateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logging.NewComponentLogger(logger, "image")}
}

// Extract resolves the capture date and, when available, GPS coordinates.
// Date resolution never fails: files without usable metadata fall back to
// the modification timestamp, truncated to day granularity. GPS failures
// are silently omitted.
func (e *Extractor) Extract(handle scanner.FileHandle) (classify.ImageInfo, error) {
	meta := e.readMetadata(handle.Path)

	info := classify.ImageInfo{}
	captured, ok := captureDate(meta)
	if !ok {
		captured = handle.ModTime
	}
	info.Year = captured.Year()
	info.Month = int(captured.Month())
	info.Day = captured.Day()

	if meta != nil {
		if lat, lon, ok := coordinates(meta); ok {
			info.HasGPS = true
			info.Latitude = lat
			info.Longitude = lon
		}
	}
	return info, nil
}

// readMetadata decodes the EXIF block, returning nil when the file has
// none or cannot be parsed.
func (e *Extractor) readMetadata(path string) *exif.Exif {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	meta, err := exif.Decode(file)
	if err != nil {
		return nil
	}
	return meta
}

// captureDate tries the three standard date fields in priority order.
func captureDate(meta *exif.Exif) (time.Time, bool) {
	if meta == nil {
		return time.Time{}, false
	}
	for _, field := range dateFields {
		tag, err := meta.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		parsed, err := time.ParseInLocation(exifTimeLayout, strings.TrimSpace(raw), time.Local)
		if err != nil {
			continue
		}
		return parsed, true
	}
	return time.Time{}, false
}

// coordinates reads the GPS block and converts both axes to signed decimal
// degrees. Any missing or malformed component omits GPS as a whole.
func coordinates(meta *exif.Exif) (lat, lon float64, ok bool) {
	lat, ok = axis(meta, exif.GPSLatitude, exif.GPSLatitudeRef)
	if !ok {
		return 0, 0, false
	}
	lon, ok = axis(meta, exif.GPSLongitude, exif.GPSLongitudeRef)
	if !ok {
		return 0, 0, false
	}
	return lat, lon, true
}

func axis(meta *exif.Exif, field, refField exif.FieldName) (float64, bool) {
	tag, err := meta.Get(field)
	if err != nil {
		return 0, false
	}
	var parts [3]float64
	for i := range parts {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return 0, false
		}
		parts[i] = float64(num) / float64(den)
	}
	refTag, err := meta.Get(refField)
	if err != nil {
		return 0, false
	}
	ref, err := refTag.StringVal()
	if err != nil {
		return 0, false
	}
	return DecimalFromDMS(parts[0], parts[1], parts[2], ref), true
}

// DecimalFromDMS converts degrees/minutes/seconds plus a hemisphere
// reference to signed decimal degrees. Southern and western references
// negate the value.
func DecimalFromDMS(degrees, minutes, seconds float64, ref string) float64 {
	value := degrees + minutes/60 + seconds/3600
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		return -value
	}
	return value
}
