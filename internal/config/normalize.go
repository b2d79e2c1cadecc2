package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScanner()
	c.normalizeSongID()
	c.normalizeOffice()
	c.normalizeNaming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.OutputDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanner() {
	if c.Scanner.MinimumAgeSeconds < 0 {
		c.Scanner.MinimumAgeSeconds = 0
	}
	normalized := make([]string, 0, len(c.Scanner.DeleteExtensions))
	for _, ext := range c.Scanner.DeleteExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Scanner.DeleteExtensions = normalized
}

func (c *Config) normalizeSongID() {
	if c.SongID.APIToken == "" {
		if value, ok := os.LookupEnv("AUDD_API_TOKEN"); ok {
			c.SongID.APIToken = value
		}
	}
	c.SongID.BaseURL = strings.TrimRight(strings.TrimSpace(c.SongID.BaseURL), "/")
	if c.SongID.BaseURL == "" {
		c.SongID.BaseURL = defaultSongIDBaseURL
	}
	if c.SongID.TimeoutSeconds <= 0 {
		c.SongID.TimeoutSeconds = defaultSongIDTimeoutSeconds
	}
}

func (c *Config) normalizeOffice() {
	c.Office.ConvertBinary = strings.TrimSpace(c.Office.ConvertBinary)
	if c.Office.ConvertBinary == "" {
		c.Office.ConvertBinary = defaultConvertBinary
	}
	if c.Office.ConvertTimeoutSeconds <= 0 {
		c.Office.ConvertTimeoutSeconds = defaultConvertTimeout
	}
}

func (c *Config) normalizeNaming() {
	if c.Naming.MaxCollisionAttempts <= 0 {
		c.Naming.MaxCollisionAttempts = defaultMaxCollisionAttempts
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
