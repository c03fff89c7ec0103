package history

import (
	"path/filepath"
	"testing"

	"github.com/fileconv/file-converter/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenAt(filepath.Join(t.TempDir(), DBFileName))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	results := []model.ConversionResult{
		model.Succeeded("/in/a.jpg", "/in/a.png"),
		model.Failed("/in/b.mp4", errFake("codec not found")),
		model.Succeeded("/in/c.wav", "/in/c.mp3"),
	}
	targets := []string{"png", "webm", "mp3"}

	for i, result := range results {
		if err := store.Record(result, targets[i]); err != nil {
			t.Fatalf("Failed to record result %d: %v", i, err)
		}
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	// Newest first.
	if entries[0].InputPath != "/in/c.wav" {
		t.Errorf("Expected newest entry first, got %s", entries[0].InputPath)
	}

	var failed *Entry
	for i := range entries {
		if !entries[i].Success {
			failed = &entries[i]
		}
	}
	if failed == nil {
		t.Fatal("Expected one failed entry")
	}
	if failed.Error != "codec not found" {
		t.Errorf("Failed entry should keep its diagnostic, got %q", failed.Error)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		result := model.Succeeded("/in/file.jpg", "/in/file.png")
		if err := store.Record(result, "png"); err != nil {
			t.Fatalf("Failed to record: %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected limit of 2 entries, got %d", len(entries))
	}
}

func TestRecentEmptyStore(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Expected no error for empty store, got: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
