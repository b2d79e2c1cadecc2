// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"butler/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The fingerprint service and office conversion are disabled so no test
// touches the network or external binaries.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "input")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "output", "logs")
	cfg.SongID.Enabled = false
	cfg.Office.ConvertEnabled = false
	cfg.Scanner.MinimumAgeSeconds = 3600

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMinimumAge overrides the scanner age gate in seconds.
func WithMinimumAge(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scanner.MinimumAgeSeconds = seconds
	}
}

// WithCollisionCap overrides the resolver attempt bound.
func WithCollisionCap(attempts int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Naming.MaxCollisionAttempts = attempts
	}
}
