package registry

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestManagerBookkeepingRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), BookkeepingFileName)

	m, err := NewManagerAt(path)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	m.entries["png"] = []string{`Software\Classes\SystemFileAssociations\.png\shell\FileConverterConvert`}
	m.entries["mp4"] = []string{`Software\Classes\SystemFileAssociations\.mp4\shell\FileConverterConvert`}
	if err := m.save(); err != nil {
		t.Fatalf("Failed to save bookkeeping: %v", err)
	}

	reloaded, err := NewManagerAt(path)
	if err != nil {
		t.Fatalf("Failed to reload manager: %v", err)
	}

	registered := reloaded.Registered()
	if len(registered) != 2 {
		t.Fatalf("Expected 2 registered extensions, got %d", len(registered))
	}
	if registered[0] != "mp4" || registered[1] != "png" {
		t.Errorf("Expected sorted extensions [mp4 png], got %v", registered)
	}
}

func TestManagerEmptyBookkeepingRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), BookkeepingFileName)

	m, err := NewManagerAt(path)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	m.entries["png"] = []string{"some-key"}
	if err := m.save(); err != nil {
		t.Fatalf("Failed to save bookkeeping: %v", err)
	}

	delete(m.entries, "png")
	if err := m.save(); err != nil {
		t.Fatalf("Failed to save empty bookkeeping: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Empty bookkeeping should remove the file")
	}
}

func TestManagerCorruptBookkeeping(t *testing.T) {
	path := filepath.Join(t.TempDir(), BookkeepingFileName)

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := NewManagerAt(path); err == nil {
		t.Error("Expected error for corrupt bookkeeping file, got nil")
	}
}

func TestAddExtensionUnsupported(t *testing.T) {
	m, err := NewManagerAt(filepath.Join(t.TempDir(), BookkeepingFileName))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := m.AddExtension(`C:\converter.exe`, "pdf"); err == nil {
		t.Error("Expected error for unsupported extension, got nil")
	}
}

func TestAddExtensionPlatformGate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("platform stub only applies off Windows")
	}

	m, err := NewManagerAt(filepath.Join(t.TempDir(), BookkeepingFileName))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	err = m.AddExtension("/usr/local/bin/file-converter", "png")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("Expected ErrUnsupportedPlatform, got: %v", err)
	}
}

func TestSetupAlreadyInstalled(t *testing.T) {
	m, err := NewManagerAt(filepath.Join(t.TempDir(), BookkeepingFileName))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	m.entries["png"] = []string{"some-key"}

	err = m.Setup(`C:\converter.exe`, false)
	if !errors.Is(err, ErrAlreadyInstalled) {
		t.Errorf("Expected ErrAlreadyInstalled without force, got: %v", err)
	}
}
