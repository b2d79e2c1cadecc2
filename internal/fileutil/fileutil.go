// Package fileutil provides small filesystem helpers shared by the scanner
// and relocator.
package fileutil

import (
	"io"
	"os"
)

// IsLocked probes whether another process holds the file open for writing by
// attempting to open it read-write. A failed open is treated as locked; the
// caller retries the file on a later run.
func IsLocked(path string) bool {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return true
	}
	_ = f.Close()
	return false
}

// CopyFile streams src to dst, preserving the source file mode, syncing before
// close. Used as the cross-device fallback for atomic moves.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
