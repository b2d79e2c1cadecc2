package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"butler/internal/scanner"
	"butler/internal/services"
	"butler/internal/services/songid"
	"butler/internal/testsupport"
)

type stubRecognizer struct {
	match songid.Match
	ok    bool
	err   error
}

func (s stubRecognizer) Recognize(context.Context, string) (songid.Match, bool, error) {
	return s.match, s.ok, s.err
}

func untaggedHandle(t *testing.T, name string) scanner.FileHandle {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	testsupport.WriteFile(t, path, "no embedded tags here")
	return scanner.FileHandle{Path: path, Ext: filepath.Ext(name)}
}

func TestIsPlaceholderTitle(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"Track01", true},
		{"audio_02", true},
		{"SZÁM 3", true},
		{"track-7", true},
		{"Track Star", false},
		{"Autobahn", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			if got := IsPlaceholderTitle(tc.title); got != tc.want {
				t.Fatalf("IsPlaceholderTitle(%q) = %v, want %v", tc.title, got, tc.want)
			}
		})
	}
}

func TestExtractUsesFingerprintMatch(t *testing.T) {
	recognizer := stubRecognizer{
		match: songid.Match{Title: "Take Five", Artist: "Dave Brubeck", Album: "Time Out"},
		ok:    true,
	}
	handle := untaggedHandle(t, "track01.mp3")

	info, err := NewExtractor(recognizer, nil).Extract(context.Background(), handle)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if info.Title != "Take Five" || info.Artist != "Dave Brubeck" || info.Album != "Time Out" {
		t.Fatalf("info = %+v", info)
	}
}

func TestExtractMissWithoutMatchOrTags(t *testing.T) {
	handle := untaggedHandle(t, "track02.mp3")

	_, err := NewExtractor(stubRecognizer{}, nil).Extract(context.Background(), handle)
	if !errors.Is(err, services.ErrExtractionMiss) {
		t.Fatalf("err = %v, want extraction miss", err)
	}
}

func TestExtractRecognizerErrorDegradesToMiss(t *testing.T) {
	recognizer := stubRecognizer{err: errors.New("service unavailable")}
	handle := untaggedHandle(t, "track03.mp3")

	_, err := NewExtractor(recognizer, nil).Extract(context.Background(), handle)
	if !errors.Is(err, services.ErrExtractionMiss) {
		t.Fatalf("err = %v, want extraction miss", err)
	}
}

func TestExtractNilRecognizerSkipsToTags(t *testing.T) {
	handle := untaggedHandle(t, "szam_3.wav")

	_, err := NewExtractor(nil, nil).Extract(context.Background(), handle)
	if !errors.Is(err, services.ErrExtractionMiss) {
		t.Fatalf("err = %v, want extraction miss", err)
	}
}
