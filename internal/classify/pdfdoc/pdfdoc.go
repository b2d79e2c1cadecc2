// Package pdfdoc classifies PDF documents by first-page keyword matching
// and extracts dates and invoice numbers for naming.
package pdfdoc

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"butler/internal/classify"
	"butler/internal/logging"
	"butler/internal/scanner"
	"butler/internal/services"
	"butler/internal/textutil"
)

// categoryRule maps a category to its trigger keywords. Rules are checked
// in declaration order against the diacritic-folded first-page text; the
// first hit wins.
type categoryRule struct {
	category classify.PDFCategory
	keywords []string
}

// Bank-statement terms embed the invoice keyword ("bankszamlakivonat"
// contains "szamla"), so that rule must precede the invoice rule or those
// documents can never reach their own category.
var categoryRules = []categoryRule{
	{classify.PDFBankStatement, []string{"bankkivonat", "szamlakivonat", "tranzakcio", "jovairas", "bank statement"}},
	{classify.PDFInvoice, []string{"szamla", "invoice", "dijbekero", "fizetendo"}},
	{classify.PDFLabReport, []string{"lelet", "laborvizsgalat", "lab report", "laboratory"}},
	{classify.PDFContract, []string{"szerzodes", "contract", "megallapodas"}},
	{classify.PDFCertificate, []string{"tanusitvany", "igazolas", "certificate", "bizonyitvany"}},
}

var (
	datePattern    = regexp.MustCompile(`20\d{2}[-.](0[1-9]|1[0-2])[-.](0[1-9]|[12]\d|3[01])`)
	invoicePattern = regexp.MustCompile(`(?i)(számlasorszám|szamlasorszam|sorszám|sorszam)\s*[:\-]?\s*(\S+)`)
)

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logging.NewComponentLogger(logger, "pdf")}
}

// Extract reads the first page's text and derives category, date and
// invoice number. A file whose text cannot be extracted at all is an
// extraction miss.
func (e *Extractor) Extract(handle scanner.FileHandle) (classify.PDFInfo, error) {
	text, err := firstPageText(handle.Path)
	if err != nil {
		return classify.PDFInfo{}, services.Wrap(services.ErrExtractionMiss, "pdf", "extract",
			"unreadable document "+handle.Base(), err)
	}
	return Classify(text), nil
}

// Classify derives structured document metadata from extracted text. It is
// split out from Extract so classification rules can be exercised without
// real PDF fixtures.
func Classify(text string) classify.PDFInfo {
	info := classify.PDFInfo{
		Category: matchCategory(text),
		Date:     matchDate(text),
	}
	info.InvoiceNumber = matchInvoiceNumber(text)
	return info
}

func matchCategory(text string) classify.PDFCategory {
	folded := textutil.Fold(text)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(folded, keyword) {
				return rule.category
			}
		}
	}
	return classify.PDFUnknown
}

// matchDate returns the first date in the text as YYYY-MM-DD, normalizing
// dot separators, or the sentinel when none is present.
func matchDate(text string) string {
	raw := datePattern.FindString(text)
	if raw == "" {
		return classify.PDFDateSentinel
	}
	return strings.ReplaceAll(raw, ".", "-")
}

func matchInvoiceNumber(text string) string {
	groups := invoicePattern.FindStringSubmatch(text)
	if len(groups) < 3 {
		return ""
	}
	return strings.Trim(groups[2], ".,;")
}

// firstPageText extracts text from page one only. The underlying reader
// panics on some malformed cross-reference tables, so the call is fenced
// with a recover.
func firstPageText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if reader.NumPage() < 1 {
		return "", fmt.Errorf("document has no pages")
	}
	page := reader.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("first page unavailable")
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return content, nil
}
