package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fileconv/file-converter/internal/model"
)

// Default target format per category, used when no target is given.
const (
	DefaultImageTarget = "png"
	DefaultAudioTarget = "mp3"
	DefaultVideoTarget = "mp4"
)

// GIF is a valid extra target for video sources only; it is already an image
// source format, so it appears in both tables.
const GIFTarget = "gif"

var imageFormats = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "bmp": true,
	"gif": true, "webp": true, "tiff": true, "ico": true,
}

var audioFormats = map[string]bool{
	"mp3": true, "wav": true, "ogg": true,
	"m4a": true, "flac": true, "aac": true,
}

var videoFormats = map[string]bool{
	"mp4": true, "avi": true, "mkv": true, "mov": true,
	"wmv": true, "flv": true, "webm": true,
}

// Normalize lowercases an extension and strips a leading dot, so ".JPG",
// "jpg" and "JPG" all resolve to the same table entry.
func Normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Lookup resolves an extension to its media category. The second return value
// is false for unsupported extensions.
func Lookup(ext string) (model.Category, bool) {
	ext = Normalize(ext)
	switch {
	case imageFormats[ext]:
		return model.CategoryImage, true
	case audioFormats[ext]:
		return model.CategoryAudio, true
	case videoFormats[ext]:
		return model.CategoryVideo, true
	default:
		return "", false
	}
}

// Targets returns the sorted set of target extensions a category may convert
// to. Video additionally targets gif.
func Targets(category model.Category) []string {
	var src map[string]bool
	switch category {
	case model.CategoryImage:
		src = imageFormats
	case model.CategoryAudio:
		src = audioFormats
	case model.CategoryVideo:
		src = videoFormats
	default:
		return nil
	}

	targets := make([]string, 0, len(src)+1)
	for ext := range src {
		targets = append(targets, ext)
	}
	if category == model.CategoryVideo {
		targets = append(targets, GIFTarget)
	}
	sort.Strings(targets)
	return targets
}

// IsAllowed reports whether a category may convert to the given target format.
func IsAllowed(category model.Category, target string) bool {
	target = Normalize(target)
	switch category {
	case model.CategoryImage:
		return imageFormats[target]
	case model.CategoryAudio:
		return audioFormats[target]
	case model.CategoryVideo:
		return videoFormats[target] || target == GIFTarget
	default:
		return false
	}
}

// DefaultTarget returns the default target format for a category.
func DefaultTarget(category model.Category) string {
	switch category {
	case model.CategoryImage:
		return DefaultImageTarget
	case model.CategoryAudio:
		return DefaultAudioTarget
	case model.CategoryVideo:
		return DefaultVideoTarget
	default:
		return ""
	}
}

// Validate resolves the category of an input extension and checks the target
// against it. This is the gate every request passes before any external tool
// is invoked.
func Validate(inputExt, target string) (model.Category, error) {
	category, ok := Lookup(inputExt)
	if !ok {
		return "", fmt.Errorf("unsupported file extension: %q", inputExt)
	}

	if !IsAllowed(category, target) {
		return category, fmt.Errorf("cannot convert %s file to .%s", category, Normalize(target))
	}

	return category, nil
}

// SourceExtensions returns the sorted list of all supported source extensions,
// used by the context-menu setup to enumerate registrations.
func SourceExtensions() []string {
	exts := make([]string, 0, len(imageFormats)+len(audioFormats)+len(videoFormats))
	for ext := range imageFormats {
		exts = append(exts, ext)
	}
	for ext := range audioFormats {
		exts = append(exts, ext)
	}
	for ext := range videoFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
