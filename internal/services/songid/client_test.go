package songid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestRecognizeParsesMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("api_token"); got != "token123" {
			t.Fatalf("api_token = %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		w.Write([]byte(`{"status":"success","result":{"title":"Take Five","artist":"Dave Brubeck","album":"Time Out"}}`))
	}))
	defer server.Close()

	client := NewClient("token123", WithBaseURL(server.URL))
	match, ok, err := client.Recognize(context.Background(), writeSample(t))
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Title != "Take Five" || match.Artist != "Dave Brubeck" || match.Album != "Time Out" {
		t.Fatalf("unexpected match: %+v", match)
	}
}

func TestRecognizeAlbumFromSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","result":{"title":"So What","artist":"Miles Davis","sections":[{"metadata":[{"title":"Label","text":"Columbia"},{"title":"Album","text":"Kind of Blue"}]}]}}`))
	}))
	defer server.Close()

	client := NewClient("token123", WithBaseURL(server.URL))
	match, ok, err := client.Recognize(context.Background(), writeSample(t))
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Album != "Kind of Blue" {
		t.Fatalf("album = %q", match.Album)
	}
}

func TestRecognizeNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","result":null}`))
	}))
	defer server.Close()

	client := NewClient("token123", WithBaseURL(server.URL))
	_, ok, err := client.Recognize(context.Background(), writeSample(t))
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if ok {
		t.Fatal("expected no match")
	}
}

func TestRecognizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","error":{"error_code":901,"error_message":"limit reached"}}`))
	}))
	defer server.Close()

	client := NewClient("token123", WithBaseURL(server.URL))
	_, _, err := client.Recognize(context.Background(), writeSample(t))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRecognizeRequiresToken(t *testing.T) {
	client := NewClient("")
	if _, _, err := client.Recognize(context.Background(), writeSample(t)); err == nil {
		t.Fatal("expected error for missing token")
	}
}
