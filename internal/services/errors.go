package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExtractionMiss marks a classifier that could not determine the
	// metadata it needs. Non-fatal; the file goes to quarantine.
	ErrExtractionMiss = errors.New("extraction miss")
	// ErrUnsupported marks a file with no registered extractor.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrTransient marks a file that should be retried on the next run,
	// typically because another process holds it open.
	ErrTransient = errors.New("transient failure")
	// ErrExternalTool marks a failure in an external collaborator (fingerprint
	// service, office converter).
	ErrExternalTool = errors.New("external tool error")
	// ErrRelocation marks a failed move; the file stays in place.
	ErrRelocation = errors.New("relocation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrTimeout marks a bounded operation that ran out of time.
	ErrTimeout = errors.New("timeout")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later outcome classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Quarantines reports whether the error means the file should be moved to the
// quarantine folder. Everything else leaves the file in place for a later run.
func Quarantines(err error) bool {
	return errors.Is(err, ErrExtractionMiss) || errors.Is(err, ErrUnsupported)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
