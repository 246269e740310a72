package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moosang1125-png/dangwan/internal/plan"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFingerprint_SameBytesSameName(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", []byte("identical bytes"))
	b := writeFile(t, dir, "b.pdf", []byte("identical bytes"))

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb, err := Fingerprint(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fa != fb {
		t.Errorf("identical bytes must share a fingerprint: %q vs %q", fa, fb)
	}
	if len(fa) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(fa))
	}
}

func TestFingerprint_SingleByteChange(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", []byte("textbook content"))
	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, dir, "a.pdf", []byte("textbook contenu"))
	fb, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fa == fb {
		t.Error("a single-byte change must change the fingerprint")
	}
}

func TestFingerprint_MissingFile(t *testing.T) {
	if _, err := Fingerprint(filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStore_MissIsNotAnError(t *testing.T) {
	s := NewStore(t.TempDir())
	units, ok, err := s.Get("deadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || units != nil {
		t.Errorf("expected clean miss, got ok=%v units=%v", ok, units)
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cache"))
	in := []plan.StructuralUnit{
		{Kind: plan.KindChapter, Text: "Chapter 1", StartPage: 1, EndPage: 3},
		{Kind: plan.KindGoal, Text: "학습 목표", StartPage: 1, EndPage: 1, Chapter: "Chapter 1"},
	}
	if err := s.Put("abc123", "book.pdf", in); err != nil {
		t.Fatalf("put: %v", err)
	}

	out, ok, err := s.Get("abc123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d units, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("unit %d: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Put("key", "book.pdf", []plan.StructuralUnit{{Kind: plan.KindChapter, Text: "old"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put("key", "book.pdf", []plan.StructuralUnit{{Kind: plan.KindChapter, Text: "new"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	out, ok, err := s.Get("key")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Text != "new" {
		t.Errorf("expected overwritten entry, got %+v", out)
	}
}
