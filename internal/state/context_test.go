package state

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_FreshWhenAbsent(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "document_context.json"))
	c, err := m.Load(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NextSession != 1 {
		t.Errorf("fresh context next session: %d, want 1", c.NextSession)
	}
	if c.LastChapter != "" || len(c.History) != 0 {
		t.Errorf("fresh context not empty: %+v", c)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_context.json")
	m := NewManager(path)

	c, _ := m.Load(false)
	c.Record("fp-1", "part1.pdf", "Algebra Part 1", 4)
	if err := m.Save(c); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := m.Load(false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.NextSession != 5 {
		t.Errorf("next session: %d, want 5", loaded.NextSession)
	}
	if loaded.LastChapter != "Algebra Part 1" {
		t.Errorf("last chapter: %q", loaded.LastChapter)
	}
	if len(loaded.History) != 1 || loaded.History[0].Fingerprint != "fp-1" || loaded.History[0].FileName != "part1.pdf" {
		t.Errorf("history: %+v", loaded.History)
	}
}

func TestLoad_ResetIgnoresPersistedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_context.json")
	m := NewManager(path)

	c, _ := m.Load(false)
	c.Record("fp-1", "a.pdf", "Chapter 9", 12)
	if err := m.Save(c); err != nil {
		t.Fatalf("save: %v", err)
	}

	reset, err := m.Load(true)
	if err != nil {
		t.Fatalf("load with reset: %v", err)
	}
	if reset.NextSession != 1 || reset.LastChapter != "" || len(reset.History) != 0 {
		t.Errorf("reset context not fresh: %+v", reset)
	}
}

func TestLoad_CorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_context.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := NewManager(path)
	_, err := m.Load(false)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestLoad_InvalidSessionCounterIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_context.json")
	if err := os.WriteFile(path, []byte(`{"next_session":0}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := NewManager(path)
	if _, err := m.Load(false); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestRecord_MonotonicAcrossFiles(t *testing.T) {
	c := &Context{NextSession: 1}
	c.Record("fp-a", "a.pdf", "Ch 1", 3)
	c.Record("fp-b", "b.pdf", "Ch 2", 2)
	if c.NextSession != 6 {
		t.Errorf("next session: %d, want 6", c.NextSession)
	}
	if c.LastChapter != "Ch 2" {
		t.Errorf("last chapter: %q", c.LastChapter)
	}
	if len(c.History) != 2 {
		t.Errorf("history length: %d", len(c.History))
	}
}

func TestRecord_EmptyChapterKeepsPrevious(t *testing.T) {
	c := &Context{NextSession: 1, LastChapter: "Ch 1"}
	c.Record("fp", "empty.pdf", "", 0)
	if c.LastChapter != "Ch 1" {
		t.Errorf("last chapter overwritten by empty title: %q", c.LastChapter)
	}
}

func TestSeen(t *testing.T) {
	c := &Context{History: []FileRecord{{Fingerprint: "fp-a", FileName: "a.pdf"}}}
	if !c.Seen("fp-a") {
		t.Error("expected fp-a to be seen")
	}
	if c.Seen("fp-b") {
		t.Error("fp-b must not be seen")
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "document_context.json"))
	c, _ := m.Load(false)
	if err := m.Save(c); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".context-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the context file, got %d entries", len(entries))
	}
}
