// Package classify defines the classification result model shared by the
// per-type extractors and the router.
//
// Every extractor produces a result even on total failure: fields degrade to
// empty strings or the unknown category rather than propagating nil into the
// naming stage. A true miss (required metadata unavailable) is signalled with
// the services.ErrExtractionMiss marker instead.
package classify

import "fmt"

// AudioInfo is the outcome of audio identification: fingerprint-service match
// or embedded-tag fallback. Album is best-effort and may be empty.
type AudioInfo struct {
	Title  string
	Artist string
	Album  string
}

// ImageInfo carries the capture date (EXIF or file modification time) and the
// optional GPS position of an image.
type ImageInfo struct {
	Year  int
	Month int
	Day   int

	HasGPS    bool
	Latitude  float64
	Longitude float64
}

// DateString renders the zero-padded YYYY_MM_DD form used in archive folder names.
func (i ImageInfo) DateString() string {
	return fmt.Sprintf("%04d_%02d_%02d", i.Year, i.Month, i.Day)
}

// ExecutableCategory is the closed category set for Windows executables.
type ExecutableCategory string

const (
	ExecutableDriver    ExecutableCategory = "driver"
	ExecutableInstaller ExecutableCategory = "installer"
	ExecutableUpdater   ExecutableCategory = "updater"
	ExecutableGame      ExecutableCategory = "game"
	ExecutableDevTool   ExecutableCategory = "dev-tool"
	ExecutableMedia     ExecutableCategory = "media"
	ExecutableUnknown   ExecutableCategory = "unknown"
)

// ExecutableInfo is the outcome of executable categorization.
type ExecutableInfo struct {
	Category ExecutableCategory
}

// PDFCategory is the closed category set for PDF documents.
type PDFCategory string

const (
	PDFInvoice       PDFCategory = "invoice"
	PDFBankStatement PDFCategory = "bank-statement"
	PDFLabReport     PDFCategory = "lab-report"
	PDFContract      PDFCategory = "contract"
	PDFCertificate   PDFCategory = "certificate"
	PDFUnknown       PDFCategory = "unknown"
)

// PDFDateSentinel is returned when no date pattern is found in the document text.
const PDFDateSentinel = "0000-00-00"

// PDFInfo is the outcome of PDF classification. Date is either a normalized
// YYYY-MM-DD string or PDFDateSentinel; InvoiceNumber may be empty.
type PDFInfo struct {
	Category      PDFCategory
	Date          string
	InvoiceNumber string
}

// DocumentInfo carries the diagnostic text excerpt of an office file. The
// excerpt is logged only; it never influences naming or routing.
type DocumentInfo struct {
	Excerpt string
}
