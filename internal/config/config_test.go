package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected no error on first load, got: %v", err)
	}

	if cfg.MaxGIFDuration != DefaultMaxGIFDuration {
		t.Errorf("Expected default GIF duration %v, got %v", DefaultMaxGIFDuration, cfg.MaxGIFDuration)
	}
	if cfg.DefaultImageTarget != "png" {
		t.Errorf("Expected default image target png, got %s", cfg.DefaultImageTarget)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("First load should create the config file: %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := Default()
	cfg.MaxGIFDuration = 30
	cfg.DefaultVideoTarget = "webm"
	cfg.WatchDirs = []string{"/watch/incoming"}
	cfg.FFmpegPath = "/opt/ffmpeg/bin/ffmpeg"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("Expected no error saving config, got: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected no error loading config, got: %v", err)
	}

	if loaded.MaxGIFDuration != 30 {
		t.Errorf("Expected GIF duration 30, got %v", loaded.MaxGIFDuration)
	}
	if loaded.DefaultVideoTarget != "webm" {
		t.Errorf("Expected video target webm, got %s", loaded.DefaultVideoTarget)
	}
	if len(loaded.WatchDirs) != 1 || loaded.WatchDirs[0] != "/watch/incoming" {
		t.Errorf("Watch dirs should round-trip, got %v", loaded.WatchDirs)
	}
	if loaded.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Tool path should round-trip, got %s", loaded.FFmpegPath)
	}
}

func TestLoadFromNormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	content := "max_gif_duration = -5.0\ndefault_image_target = \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config fixture: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.MaxGIFDuration != DefaultMaxGIFDuration {
		t.Errorf("Negative duration should reset to default, got %v", cfg.MaxGIFDuration)
	}
	if cfg.DefaultImageTarget != "png" {
		t.Errorf("Empty target should reset to default, got %s", cfg.DefaultImageTarget)
	}
}

func TestLoadFromRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	if err := os.WriteFile(path, []byte("max_gif_duration = [broken"), 0644); err != nil {
		t.Fatalf("Failed to write config fixture: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("Expected error for malformed config file, got nil")
	}
}
