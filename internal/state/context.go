// Package state owns the cross-invocation processing context: the next
// session number, the last chapter title seen, and the ordered history of
// processed files. The context is an explicit value with a
// load/mutate/save lifecycle; nothing here is ambient or global.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt marks persisted context state that exists but cannot be
// parsed. The caller decides whether to reset; it is never discarded
// silently.
var ErrCorrupt = errors.New("corrupt processing context")

// FileRecord identifies one processed file by content and name.
type FileRecord struct {
	Fingerprint string `json:"fingerprint"`
	FileName    string `json:"file_name"`
}

// Context is the persisted cross-invocation state.
type Context struct {
	NextSession int          `json:"next_session"`
	LastChapter string       `json:"last_chapter"`
	History     []FileRecord `json:"processed_files"`
}

// Seen reports whether a fingerprint is already in the history.
func (c *Context) Seen(fingerprint string) bool {
	for _, r := range c.History {
		if r.Fingerprint == fingerprint {
			return true
		}
	}
	return false
}

// Manager loads and saves the context at a fixed path.
type Manager struct {
	path string
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load returns the persisted context, or a fresh one when no state exists
// or reset is requested. Unparseable state wraps ErrCorrupt.
func (m *Manager) Load(reset bool) (*Context, error) {
	if reset {
		return fresh(), nil
	}
	b, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return fresh(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read context %s: %w", m.path, err)
	}
	var c Context
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, m.path, err)
	}
	if c.NextSession < 1 {
		return nil, fmt.Errorf("%w: %s: next_session %d", ErrCorrupt, m.path, c.NextSession)
	}
	return &c, nil
}

// Record commits one processed file into the context: advances the
// session counter by the sessions the file consumed, updates the last
// chapter title, and appends the file to history.
func (c *Context) Record(fingerprint, fileName, lastChapter string, sessionsUsed int) {
	c.NextSession += sessionsUsed
	if lastChapter != "" {
		c.LastChapter = lastChapter
	}
	c.History = append(c.History, FileRecord{Fingerprint: fingerprint, FileName: fileName})
}

// Save persists the context atomically: write to a temp file in the same
// directory, then rename over the target, so a crash mid-write never
// corrupts previously committed state.
func (m *Manager) Save(c *Context) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("save context: %w", err)
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("save context: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(m.path), ".context-*.json")
	if err != nil {
		return fmt.Errorf("save context: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("save context: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save context: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save context: %w", err)
	}
	return nil
}

func fresh() *Context {
	return &Context{NextSession: 1}
}
