// Package naming derives canonical destination paths from classification
// results and resolves name collisions against the filesystem.
//
// The namers are pure: they never touch the filesystem. Only Resolve consults
// it, and the path it returns is guaranteed unused only up to the window
// between resolution and the relocator's move.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"butler/internal/classify"
	"butler/internal/textutil"
)

// Destination is a candidate archive location, not yet guaranteed unique.
type Destination struct {
	Dir  string
	Name string
}

// Path joins the destination into a full candidate path.
func (d Destination) Path() string { return filepath.Join(d.Dir, d.Name) }

// UnknownArtistBucket is the folder collecting audio whose artist could not be
// resolved to a real name.
const UnknownArtistBucket = "_unknown"

// unknownArtistPhrase is the folded form an artist string must match to count
// as the unknown-artist sentinel.
const unknownArtistPhrase = "unknown artist"

// IsUnknownArtist reports whether the artist string is empty or a spelling of
// the unknown-artist sentinel (diacritic-stripped, case-insensitive).
func IsUnknownArtist(artist string) bool {
	folded := textutil.Fold(strings.TrimSpace(artist))
	return folded == "" || folded == unknownArtistPhrase
}

// ForAudio places an identified track under an artist folder as
// "Artist - Title<ext>". Tracks without a resolvable artist keep their
// original name inside the unknown bucket.
func ForAudio(root string, info classify.AudioInfo, originalName string) Destination {
	if IsUnknownArtist(info.Artist) {
		return Destination{Dir: filepath.Join(root, UnknownArtistBucket), Name: originalName}
	}
	artist := textutil.SanitizeFilename(info.Artist)
	title := textutil.SanitizeFilename(info.Title)
	ext := filepath.Ext(originalName)
	return Destination{
		Dir:  filepath.Join(root, artist),
		Name: fmt.Sprintf("%s - %s%s", artist, title, ext),
	}
}

// ForImage files an image under <root>/<year>/<YYYY_MM_DD -[ lat_lon]>/,
// preserving the original file name. The GPS suffix is appended only when
// resolution succeeded, with 5-decimal-place coordinates.
func ForImage(root string, info classify.ImageInfo, originalName string) Destination {
	folder := info.DateString() + " -"
	if info.HasGPS {
		folder += fmt.Sprintf(" %.5f_%.5f", info.Latitude, info.Longitude)
	}
	return Destination{
		Dir:  filepath.Join(root, fmt.Sprintf("%04d", info.Year), folder),
		Name: originalName,
	}
}

// ForPDF places a classified document under its category folder. Invoices are
// renamed to "<date>_<stem>_<invoiceno>.pdf": the sentinel date is omitted,
// and the invoice number is omitted when the original name already carries it.
// Every other category keeps the original file name.
func ForPDF(root string, info classify.PDFInfo, originalName string) Destination {
	dir := filepath.Join(root, string(info.Category))
	if info.Category != classify.PDFInvoice {
		return Destination{Dir: dir, Name: originalName}
	}

	stem := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	parts := make([]string, 0, 3)
	if info.Date != "" && info.Date != classify.PDFDateSentinel {
		parts = append(parts, info.Date)
	}
	if stem != "" {
		parts = append(parts, stem)
	}
	if info.InvoiceNumber != "" && !strings.Contains(strings.ToLower(stem), strings.ToLower(info.InvoiceNumber)) {
		parts = append(parts, info.InvoiceNumber)
	}
	name := textutil.SanitizeFilename(strings.Join(parts, "_") + ".pdf")
	return Destination{Dir: dir, Name: name}
}

// ForExecutable places an executable under its category folder, name unchanged.
func ForExecutable(root string, info classify.ExecutableInfo, originalName string) Destination {
	return Destination{Dir: filepath.Join(root, string(info.Category)), Name: originalName}
}

// ForOffice places office documents in a single flat folder, name unchanged.
func ForOffice(root, originalName string) Destination {
	return Destination{Dir: root, Name: originalName}
}

// ForQuarantine places unsupported or unclassified files in the quarantine
// folder, name unchanged.
func ForQuarantine(root, originalName string) Destination {
	return Destination{Dir: root, Name: originalName}
}
