package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Scanner contains configuration for drop-directory eligibility rules.
type Scanner struct {
	MinimumAgeSeconds int      `toml:"minimum_age_seconds"`
	DeleteExtensions  []string `toml:"delete_extensions"`
}

// SongID contains configuration for the remote acoustic-fingerprint service.
type SongID struct {
	Enabled        bool   `toml:"enabled"`
	APIToken       string `toml:"api_token"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Office contains configuration for legacy office-format conversion.
type Office struct {
	ConvertEnabled        bool   `toml:"convert_enabled"`
	ConvertBinary         string `toml:"convert_binary"`
	ConvertTimeoutSeconds int    `toml:"convert_timeout_seconds"`
}

// Naming contains configuration for collision resolution.
type Naming struct {
	MaxCollisionAttempts int `toml:"max_collision_attempts"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Butler.
//
// Configuration sections by subsystem:
//   - Paths: input drop directory, archive output root, log directory
//   - Scanner: minimum resting age and transient-extension denylist
//   - SongID: acoustic-fingerprint service credentials and timeout
//   - Office: legacy .doc/.xls conversion tool settings
//   - Naming: collision-resolution bounds
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Scanner Scanner `toml:"scanner"`
	SongID  SongID  `toml:"songid"`
	Office  Office  `toml:"office"`
	Naming  Naming  `toml:"naming"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/butler/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("butler.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to the given path,
// creating parent directories as needed. An existing file is replaced; callers
// that need to protect one check before calling.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the directories a batch run relies on. The input
// directory is deliberately not created: its absence means there is nothing to
// process and the run should report that instead of silently inventing it.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// PDFOutputDir returns the archive subtree for classified PDF documents.
func (c *Config) PDFOutputDir() string { return filepath.Join(c.Paths.OutputDir, "PDF") }

// AudioOutputDir returns the archive subtree for identified audio files.
func (c *Config) AudioOutputDir() string { return filepath.Join(c.Paths.OutputDir, "MP3") }

// ImageOutputDir returns the archive subtree for date-filed images.
func (c *Config) ImageOutputDir() string { return filepath.Join(c.Paths.OutputDir, "IMG") }

// ExecutableOutputDir returns the archive subtree for categorized executables.
func (c *Config) ExecutableOutputDir() string { return filepath.Join(c.Paths.OutputDir, "EXE") }

// OfficeOutputDir returns the flat archive folder for office documents.
func (c *Config) OfficeOutputDir() string { return filepath.Join(c.Paths.OutputDir, "OFFICE") }

// QuarantineDir returns the holding folder for unsupported or unclassified files.
func (c *Config) QuarantineDir() string { return filepath.Join(c.Paths.OutputDir, "_FAILED") }

// LockPath returns the lock file guarding the archive tree against concurrent runs.
func (c *Config) LockPath() string { return filepath.Join(c.Paths.OutputDir, ".butler.lock") }

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
