// Package officeconv converts legacy office documents to their modern
// container formats through an external office suite.
package officeconv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"butler/internal/logging"
	"butler/internal/services"
)

// modernFormats maps legacy extensions to their conversion targets. Any
// extension not listed passes through Convert untouched.
var modernFormats = map[string]string{
	".doc": "docx",
	".xls": "xlsx",
}

// Converter shells out to an office automation binary (soffice-compatible
// command line) to upgrade legacy formats. It is idempotent: already-modern
// files are returned unchanged.
type Converter struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

func New(binary string, timeout time.Duration, logger *slog.Logger) *Converter {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Converter{
		binary:  binary,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "officeconv"),
	}
}

// Convert upgrades a legacy document in place next to the original and
// returns the converted path, removing the legacy file on success. Modern
// formats are a no-op returning the input path.
func (c *Converter) Convert(ctx context.Context, path string) (string, error) {
	target, ok := modernFormats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return path, nil
	}
	if c.binary == "" {
		return "", services.Wrap(services.ErrConfiguration, "officeconv", "convert",
			"office conversion binary not configured", nil)
	}

	outDir := filepath.Dir(path)
	converted := strings.TrimSuffix(path, filepath.Ext(path)) + "." + target

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, "--headless", "--convert-to", target, "--outdir", outDir, path)
	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", services.Wrap(services.ErrTimeout, "officeconv", "convert",
			fmt.Sprintf("conversion of %s exceeded %s", filepath.Base(path), c.timeout), ctx.Err())
	}
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "officeconv", "convert",
			fmt.Sprintf("conversion of %s failed: %s", filepath.Base(path), strings.TrimSpace(string(output))), err)
	}
	if _, err := os.Stat(converted); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "officeconv", "convert",
			"converted output missing for "+filepath.Base(path), err)
	}

	if err := os.Remove(path); err != nil {
		c.logger.Warn("could not remove legacy original after conversion",
			logging.String(logging.FieldSource, path),
			logging.Error(err))
	}
	c.logger.Info("converted legacy document",
		logging.String(logging.FieldSource, path),
		logging.String(logging.FieldDestination, converted))
	return converted, nil
}
