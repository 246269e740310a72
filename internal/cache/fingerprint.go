package cache

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Fingerprint returns the SHA-256 hex digest of the file's bytes. Two
// files with identical bytes share a fingerprint regardless of filename.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
