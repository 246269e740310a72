// Package cache persists one file's detected structural units under its
// content fingerprint, so unchanged PDFs are never re-extracted.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/moosang1125-png/dangwan/internal/plan"
)

// ErrWrite marks a failed cache write. Callers log it and keep the
// extraction result; a missing cache entry only costs re-extraction.
var ErrWrite = errors.New("cache write failed")

// Entry is one persisted extraction result. FileName and ExtractedAt are
// informational only; invalidation is purely content-hash-based.
type Entry struct {
	FileName    string                `json:"file_name"`
	ExtractedAt time.Time             `json:"extracted_at"`
	Units       []plan.StructuralUnit `json:"units"`
}

// Store is a directory of one JSON file per fingerprint.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+".json")
}

// Get returns the cached units for a fingerprint. Absence is a normal
// miss, reported via the bool, not an error.
func (s *Store) Get(fingerprint string) ([]plan.StructuralUnit, bool, error) {
	b, err := os.ReadFile(s.path(fingerprint))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry %s: %w", fingerprint, err)
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", fingerprint, err)
	}
	return e.Units, true, nil
}

// Put stores units under the fingerprint, overwriting any existing entry
// for that key. Failures wrap ErrWrite.
func (s *Store) Put(fingerprint, fileName string, units []plan.StructuralUnit) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	e := Entry{FileName: fileName, ExtractedAt: time.Now().UTC(), Units: units}
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(s.path(fingerprint), b, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
