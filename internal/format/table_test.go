package format

import (
	"testing"

	"github.com/fileconv/file-converter/internal/model"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		ext      string
		category model.Category
		ok       bool
	}{
		{"jpg", model.CategoryImage, true},
		{".jpeg", model.CategoryImage, true},
		{"PNG", model.CategoryImage, true},
		{".ICO", model.CategoryImage, true},
		{"mp3", model.CategoryAudio, true},
		{"flac", model.CategoryAudio, true},
		{"mp4", model.CategoryVideo, true},
		{".webm", model.CategoryVideo, true},
		{"gif", model.CategoryImage, true}, // gif source is an image
		{"txt", "", false},
		{"", "", false},
		{".docx", "", false},
	}

	for _, test := range tests {
		category, ok := Lookup(test.ext)
		if ok != test.ok || category != test.category {
			t.Errorf("Lookup(%q) = (%q, %v), expected (%q, %v)",
				test.ext, category, ok, test.category, test.ok)
		}
	}
}

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		category model.Category
		target   string
		allowed  bool
	}{
		{model.CategoryImage, "webp", true},
		{model.CategoryImage, "ico", true},
		{model.CategoryImage, "mp3", false},
		{model.CategoryAudio, "wav", true},
		{model.CategoryAudio, "png", false},
		{model.CategoryVideo, "mkv", true},
		{model.CategoryVideo, "gif", true}, // video additionally targets gif
		{model.CategoryVideo, "webp", false},
		{model.CategoryVideo, "mp3", false},
	}

	for _, test := range tests {
		if got := IsAllowed(test.category, test.target); got != test.allowed {
			t.Errorf("IsAllowed(%s, %s) = %v, expected %v",
				test.category, test.target, got, test.allowed)
		}
	}
}

func TestValidate(t *testing.T) {
	// Video cannot target the webp image format.
	if _, err := Validate(".mp4", "webp"); err == nil {
		t.Error("Expected error converting video to webp, got nil")
	}

	// Image to webp is fine.
	category, err := Validate(".jpg", "webp")
	if err != nil {
		t.Fatalf("Expected no error for jpg->webp, got: %v", err)
	}
	if category != model.CategoryImage {
		t.Errorf("Expected image category, got %s", category)
	}

	// Unknown extensions are rejected before any tool invocation.
	if _, err := Validate(".xyz", "png"); err == nil {
		t.Error("Expected error for unknown extension, got nil")
	}
}

func TestTargets(t *testing.T) {
	videoTargets := Targets(model.CategoryVideo)

	hasGIF := false
	for _, target := range videoTargets {
		if target == GIFTarget {
			hasGIF = true
		}
	}
	if !hasGIF {
		t.Error("Video targets should include gif")
	}

	imageTargets := Targets(model.CategoryImage)
	if len(imageTargets) != 8 {
		t.Errorf("Expected 8 image targets, got %d: %v", len(imageTargets), imageTargets)
	}
}

func TestDefaultTarget(t *testing.T) {
	tests := []struct {
		category model.Category
		expected string
	}{
		{model.CategoryImage, "png"},
		{model.CategoryAudio, "mp3"},
		{model.CategoryVideo, "mp4"},
	}

	for _, test := range tests {
		if got := DefaultTarget(test.category); got != test.expected {
			t.Errorf("DefaultTarget(%s) = %s, expected %s", test.category, got, test.expected)
		}
	}
}

func TestSourceExtensions(t *testing.T) {
	exts := SourceExtensions()
	if len(exts) != 21 {
		t.Errorf("Expected 21 supported source extensions, got %d", len(exts))
	}

	seen := make(map[string]bool)
	for _, ext := range exts {
		if seen[ext] {
			t.Errorf("Duplicate extension in source list: %s", ext)
		}
		seen[ext] = true
	}
}
