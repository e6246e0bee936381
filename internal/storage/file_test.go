package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

func TestFile_MissingIsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "cart.json"))
	lines, err := f.Load()
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestFile_RoundTrip(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "cart.json"))
	in := []domain.CartLine{
		{ID: "a", Name: "Khachapuri", Price: 540, Quantity: 2},
		{ID: "b:size-1", Name: "Tom Yum", Price: 690, Quantity: 1, Weight: "400 г"},
	}
	if err := f.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := f.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("line %d mismatch: got %+v want %+v", i, out[i], in[i])
		}
	}
}

func TestFile_CorruptEntryErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewFile(path).Load(); err == nil {
		t.Fatalf("expected error for corrupt entry")
	}
}

func TestFile_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cart.json")
	if err := NewFile(path).Save(nil); err != nil {
		t.Fatalf("save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("cart file not written: %v", err)
	}
}
