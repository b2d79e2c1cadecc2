// Package audio extracts track metadata for audio files, preferring
// acoustic fingerprint identification and falling back to embedded tags.
package audio

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/dhowden/tag"

	"butler/internal/classify"
	"butler/internal/logging"
	"butler/internal/scanner"
	"butler/internal/services"
	"butler/internal/services/songid"
	"butler/internal/textutil"
)

// Recognizer identifies a track from its audio content. A clean no-match
// returns ok=false with a nil error.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (songid.Match, bool, error)
}

// Extractor resolves audio metadata through a fingerprint service with an
// embedded-tag fallback. A nil recognizer skips straight to tags.
type Extractor struct {
	recognizer Recognizer
	logger     *slog.Logger
}

func NewExtractor(recognizer Recognizer, logger *slog.Logger) *Extractor {
	return &Extractor{recognizer: recognizer, logger: logging.NewComponentLogger(logger, "audio")}
}

// placeholderTitle matches auto-generated track names that carry no real
// information ("Track 01", "audio_02", "Szám 3"). Matching runs on the
// diacritic-folded lowercase form.
var placeholderTitle = regexp.MustCompile(`^(szam|track|audio)[ _-]*\d+$`)

// Extract resolves title and artist for the file. Fingerprint results win
// outright; otherwise tags are consulted, placeholder titles are replaced
// with a name derived from the filename, and unknown-artist sentinels are
// folded away. A file that still lacks a usable title or artist is an
// extraction miss.
func (e *Extractor) Extract(ctx context.Context, handle scanner.FileHandle) (classify.AudioInfo, error) {
	if e.recognizer != nil {
		match, ok, err := e.recognizer.Recognize(ctx, handle.Path)
		if err != nil {
			// Identification failures degrade to the tag fallback.
			e.logger.Warn("fingerprint identification failed",
				logging.String(logging.FieldSource, handle.Path),
				logging.Error(err))
		} else if ok {
			return classify.AudioInfo{
				Title:  strings.TrimSpace(match.Title),
				Artist: strings.TrimSpace(match.Artist),
				Album:  strings.TrimSpace(match.Album),
			}, nil
		}
	}

	info := e.fromTags(handle)

	if info.Title == "" || IsPlaceholderTitle(info.Title) {
		info.Title = synthesizedTitle(handle.Stem())
	}
	if isUnknownArtist(info.Artist) {
		info.Artist = ""
	}
	if info.Title == "" || info.Artist == "" {
		return classify.AudioInfo{}, services.Wrap(services.ErrExtractionMiss, "audio", "extract",
			"no usable title or artist for "+handle.Base(), nil)
	}
	return info, nil
}

// fromTags reads embedded metadata. Unreadable or tagless files yield an
// empty result rather than an error; the caller decides what a miss means.
func (e *Extractor) fromTags(handle scanner.FileHandle) classify.AudioInfo {
	file, err := os.Open(handle.Path)
	if err != nil {
		return classify.AudioInfo{}
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return classify.AudioInfo{}
	}

	artist := strings.TrimSpace(meta.Artist())
	if isUnknownArtist(artist) {
		artist = strings.TrimSpace(meta.AlbumArtist())
	}
	return classify.AudioInfo{
		Title:  strings.TrimSpace(meta.Title()),
		Artist: artist,
		Album:  strings.TrimSpace(meta.Album()),
	}
}

// IsPlaceholderTitle reports whether the title is an auto-generated track
// name like "Track 01" or "szám_3".
func IsPlaceholderTitle(title string) bool {
	return placeholderTitle.MatchString(textutil.Fold(strings.TrimSpace(title)))
}

// isUnknownArtist treats empty strings and the unknown-artist sentinel
// (in any casing or diacritic form) as absent.
func isUnknownArtist(artist string) bool {
	folded := textutil.Fold(strings.TrimSpace(artist))
	return folded == "" || folded == "ismeretlen eloado" || folded == "unknown artist"
}

// synthesizedTitle derives a display title from the filename stem when no
// real title is available, marked so downstream consumers can tell it apart
// from tagged metadata.
func synthesizedTitle(stem string) string {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return ""
	}
	return "~" + stem + "~"
}
