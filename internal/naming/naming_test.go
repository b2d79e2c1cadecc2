package naming_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"butler/internal/classify"
	"butler/internal/naming"
	"butler/internal/services"
)

func TestForAudioArtistFolder(t *testing.T) {
	dest := naming.ForAudio("/out/MP3", classify.AudioInfo{Title: "Back in Black", Artist: "AC/DC"}, "track07.mp3")
	if dest.Dir != filepath.Join("/out/MP3", "AC_DC") {
		t.Fatalf("unexpected dir: %q", dest.Dir)
	}
	if dest.Name != "AC_DC - Back in Black.mp3" {
		t.Fatalf("unexpected name: %q", dest.Name)
	}
}

func TestForAudioUnknownArtistKeepsOriginalName(t *testing.T) {
	for _, artist := range []string{"", "Unknown Artist", "unknown artist", "  "} {
		dest := naming.ForAudio("/out/MP3", classify.AudioInfo{Title: "x", Artist: artist}, "mystery.mp3")
		if dest.Dir != filepath.Join("/out/MP3", "_unknown") {
			t.Fatalf("artist %q: unexpected dir %q", artist, dest.Dir)
		}
		if dest.Name != "mystery.mp3" {
			t.Fatalf("artist %q: unexpected name %q", artist, dest.Name)
		}
	}
}

func TestForImageDateFolder(t *testing.T) {
	info := classify.ImageInfo{Year: 2023, Month: 7, Day: 4}
	dest := naming.ForImage("/out/IMG", info, "IMG_0042.jpg")
	if dest.Dir != filepath.Join("/out/IMG", "2023", "2023_07_04 -") {
		t.Fatalf("unexpected dir: %q", dest.Dir)
	}
	if dest.Name != "IMG_0042.jpg" {
		t.Fatalf("unexpected name: %q", dest.Name)
	}
}

func TestForImageGPSSuffix(t *testing.T) {
	info := classify.ImageInfo{
		Year: 2023, Month: 7, Day: 4,
		HasGPS: true, Latitude: 40.446111, Longitude: -79.982222,
	}
	dest := naming.ForImage("/out/IMG", info, "a.jpg")
	want := filepath.Join("/out/IMG", "2023", "2023_07_04 - 40.44611_-79.98222")
	if dest.Dir != want {
		t.Fatalf("unexpected dir: %q want %q", dest.Dir, want)
	}
}

func TestForPDFInvoiceComposition(t *testing.T) {
	cases := []struct {
		name     string
		info     classify.PDFInfo
		original string
		want     string
	}{
		{
			name:     "date and stem",
			info:     classify.PDFInfo{Category: classify.PDFInvoice, Date: "2023-09-27"},
			original: "doc1.pdf",
			want:     "2023-09-27_doc1.pdf",
		},
		{
			name:     "sentinel date omitted",
			info:     classify.PDFInfo{Category: classify.PDFInvoice, Date: classify.PDFDateSentinel, InvoiceNumber: "INV-42"},
			original: "acme.pdf",
			want:     "acme_INV-42.pdf",
		},
		{
			name:     "invoice number already in stem",
			info:     classify.PDFInfo{Category: classify.PDFInvoice, Date: "2024-01-02", InvoiceNumber: "inv-42"},
			original: "acme_INV-42.pdf",
			want:     "2024-01-02_acme_INV-42.pdf",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dest := naming.ForPDF("/out/PDF", tc.info, tc.original)
			if dest.Dir != filepath.Join("/out/PDF", "invoice") {
				t.Fatalf("unexpected dir: %q", dest.Dir)
			}
			if dest.Name != tc.want {
				t.Fatalf("unexpected name: %q want %q", dest.Name, tc.want)
			}
		})
	}
}

func TestForPDFOtherCategoriesKeepName(t *testing.T) {
	info := classify.PDFInfo{Category: classify.PDFContract, Date: "2023-01-01"}
	dest := naming.ForPDF("/out/PDF", info, "lease.pdf")
	if dest.Dir != filepath.Join("/out/PDF", "contract") || dest.Name != "lease.pdf" {
		t.Fatalf("unexpected destination: %+v", dest)
	}
}

func TestResolvePassesThroughFreePath(t *testing.T) {
	dir := t.TempDir()
	dest := naming.Destination{Dir: dir, Name: "fresh.pdf"}
	got, err := naming.Resolve(dest, 100)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(dir, "fresh.pdf") {
		t.Fatalf("unexpected path: %q", got)
	}
}

func TestResolveAppendsCounterUntilFree(t *testing.T) {
	dir := t.TempDir()
	seed := []string{"report.pdf", "report(1).pdf", "report(2).pdf"}
	for _, name := range seed {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	got, err := naming.Resolve(naming.Destination{Dir: dir, Name: "report.pdf"}, 100)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(dir, "report(3).pdf") {
		t.Fatalf("unexpected path: %q", got)
	}
	for _, name := range seed {
		if got == filepath.Join(dir, name) {
			t.Fatalf("resolved path collides with existing %q", name)
		}
	}
}

func TestResolveExhaustsAttemptBound(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "a(1).txt", "a(2).txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	_, err := naming.Resolve(naming.Destination{Dir: dir, Name: "a.txt"}, 2)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if !errors.Is(err, services.ErrRelocation) {
		t.Fatalf("expected relocation marker, got %v", err)
	}
}
