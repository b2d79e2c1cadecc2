package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"butler/internal/config"
)

func TestLoadDefaultConfigUsesEnvTokenAndExpandsPaths(t *testing.T) {
	t.Setenv("AUDD_API_TOKEN", "test-token")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.InputDir != filepath.Join(tempHome, "butler", "input") {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "butler", "output") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.LogDir != filepath.Join(cfg.Paths.OutputDir, "logs") {
		t.Fatalf("expected log dir under output, got %q", cfg.Paths.LogDir)
	}
	if cfg.SongID.APIToken != "test-token" {
		t.Fatalf("expected songid token from env, got %q", cfg.SongID.APIToken)
	}
	if cfg.Scanner.MinimumAgeSeconds != 2*3600 {
		t.Fatalf("unexpected minimum age: %d", cfg.Scanner.MinimumAgeSeconds)
	}
	if got := cfg.Scanner.DeleteExtensions; len(got) != 3 || got[0] != ".torrent" {
		t.Fatalf("unexpected delete extensions: %v", got)
	}
	if cfg.Naming.MaxCollisionAttempts != 10000 {
		t.Fatalf("unexpected collision cap: %d", cfg.Naming.MaxCollisionAttempts)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.InputDir); !os.IsNotExist(err) {
		t.Fatalf("input dir must not be created implicitly: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "butler.toml")

	body := `
[paths]
input_dir = "` + filepath.Join(tempDir, "in") + `"
output_dir = "` + filepath.Join(tempDir, "out") + `"

[scanner]
minimum_age_seconds = 60
delete_extensions = ["tmp", ".CRDOWNLOAD"]

[songid]
enabled = false

[logging]
level = "debug"
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: exists=%v path=%q", exists, resolved)
	}
	if cfg.Scanner.MinimumAgeSeconds != 60 {
		t.Fatalf("unexpected minimum age: %d", cfg.Scanner.MinimumAgeSeconds)
	}
	want := []string{".tmp", ".crdownload"}
	if len(cfg.Scanner.DeleteExtensions) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Scanner.DeleteExtensions)
	}
	for i, ext := range want {
		if cfg.Scanner.DeleteExtensions[i] != ext {
			t.Fatalf("extension %d: got %q want %q", i, cfg.Scanner.DeleteExtensions[i], ext)
		}
	}
	if cfg.SongID.Enabled {
		t.Fatal("expected songid disabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsSharedInputOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.InputDir = "/tmp/same"
	cfg.Paths.OutputDir = "/tmp/same"
	cfg.SongID.Enabled = false
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for shared input/output")
	}
}

func TestValidateRequiresTokenWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.SongID.Enabled = true
	cfg.SongID.APIToken = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing api token")
	}
}

func TestWriteSampleReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("# stale"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(body), "# stale") {
		t.Fatal("sample did not replace existing contents")
	}
}
