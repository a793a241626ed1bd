package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get("run"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_SetGetDelete(t *testing.T) {
	m := NewMemory()
	if err := m.Set("meta", []byte(`{"totalRuns":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := m.Get("meta")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"totalRuns":1}` {
		t.Errorf("expected stored blob, got %q", got)
	}
	m.Delete("meta")
	if _, err := m.Get("meta"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemory_QuotaKeepsPreviousBlob(t *testing.T) {
	m := NewMemory()
	m.Quota = 8
	if err := m.Set("run", []byte("1234")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := m.Set("run", []byte("123456789")); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	got, _ := m.Get("run")
	if string(got) != "1234" {
		t.Errorf("expected previous blob to survive, got %q", got)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	m.Set("k", buf)
	buf[0] = 'x'
	got, _ := m.Get("k")
	if string(got) != "abc" {
		t.Errorf("expected backend to copy on Set, got %q", got)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "saves"))
	if _, err := f.Get("meta"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := f.Set("meta", []byte("{}")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := f.Get("meta")
	if err != nil || string(got) != "{}" {
		t.Errorf("expected {}, got %q (%v)", got, err)
	}
	if err := f.Delete("meta"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := f.Delete("meta"); err != nil {
		t.Errorf("expected deleting a missing key to succeed, got %v", err)
	}
}

func TestFile_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir)
	f.Set("run", []byte("a"))
	f.Set("run", []byte("b"))
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "run.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only run.json, got %v", names)
	}
}

func TestFile_RejectsPathKeys(t *testing.T) {
	f := NewFile(t.TempDir())
	for _, key := range []string{"", "../x", "a/b", "a.b"} {
		if err := f.Set(key, []byte("x")); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestError_UnwrapsAndFormats(t *testing.T) {
	err := Wrap(KindWrite, "run", ErrQuotaExceeded)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Error("expected wrapped error to match ErrQuotaExceeded")
	}
	var se *Error
	if !errors.As(err, &se) || se.Kind != KindWrite {
		t.Errorf("expected *Error with KindWrite, got %v", err)
	}
	if got := err.Error(); got != `write "run": storage quota exceeded` {
		t.Errorf("unexpected message %q", got)
	}
	if Wrap(KindRead, "run", nil) != nil {
		t.Error("expected Wrap(nil) to return nil")
	}
}
