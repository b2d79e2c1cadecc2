package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"butler/internal/services"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(logger, "router").Info("file archived",
		String(FieldSource, "/in/a.pdf"),
		Int("attempts", 2),
	)

	line := buf.String()
	if !strings.Contains(line, " INFO router: file archived") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "source=/in/a.pdf") {
		t.Fatalf("missing source attr: %q", line)
	}
	if !strings.Contains(line, "attempts=2") {
		t.Fatalf("missing int attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.Warn("skip", String(FieldReason, "file locked by another process"))

	if !strings.Contains(buf.String(), `reason="file locked by another process"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithSource(ctx, "/in/track.mp3")
	WithContext(ctx, logger).Info("processing")

	line := buf.String()
	if !strings.Contains(line, "run_id=run-1") || !strings.Contains(line, "source=/in/track.mp3") {
		t.Fatalf("missing context fields: %q", line)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("bogus"); got != slog.LevelInfo {
		t.Fatalf("unexpected level: %v", got)
	}
	if got := parseLevel("ERROR"); got != slog.LevelError {
		t.Fatalf("unexpected level: %v", got)
	}
}
