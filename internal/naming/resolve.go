package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"butler/internal/services"
)

// Resolve turns a candidate destination into a path that does not exist at
// resolution time, appending "(1)", "(2)", … before the extension until an
// unused name is found. Existence is re-checked after every increment. The
// attempt bound guards against pathological collision patterns; exhausting it
// is reported as a relocation error so the file stays in place.
func Resolve(dest Destination, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	candidate := dest.Path()
	exists, err := pathExists(candidate)
	if err != nil {
		return "", services.Wrap(services.ErrRelocation, "naming", "resolve", "probe destination", err)
	}
	if !exists {
		return candidate, nil
	}

	ext := filepath.Ext(dest.Name)
	stem := strings.TrimSuffix(dest.Name, ext)
	for counter := 1; counter <= maxAttempts; counter++ {
		candidate = filepath.Join(dest.Dir, fmt.Sprintf("%s(%d)%s", stem, counter, ext))
		exists, err := pathExists(candidate)
		if err != nil {
			return "", services.Wrap(services.ErrRelocation, "naming", "resolve", "probe destination", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrRelocation, "naming", "resolve",
		fmt.Sprintf("no free name for %s after %d attempts", dest.Path(), maxAttempts), nil)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
