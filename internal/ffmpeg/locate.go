package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fileconv/file-converter/internal/platform"
)

// ErrNotFound is returned when the ffmpeg/ffprobe pair cannot be located.
// Missing binaries are a startup-time fatal condition, never a per-file error.
var ErrNotFound = errors.New("ffmpeg binaries not found")

// Executable base names
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

// Find locates ffmpeg and ffprobe and returns a Runner bound to them.
// Explicit path overrides win; otherwise binaries bundled next to the
// converter executable are preferred over the ones on PATH. Both binaries
// must resolve.
func Find(ffmpegOverride, ffprobeOverride string) (*Runner, error) {
	ffmpegBin, err := locate(ffmpegOverride, FFmpegCommand)
	if err != nil {
		return nil, err
	}

	ffprobeBin, err := locate(ffprobeOverride, FFprobeCommand)
	if err != nil {
		return nil, err
	}

	return &Runner{FFmpeg: ffmpegBin, FFprobe: ffprobeBin}, nil
}

func locate(override, base string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%w: configured path %s: %v", ErrNotFound, override, err)
		}
		return override, nil
	}

	// Bundled binary next to our own executable.
	bundled := filepath.Join(platform.ExecutableDir(), executableName(base))
	if _, err := os.Stat(bundled); err == nil {
		return bundled, nil
	}

	found, err := exec.LookPath(executableName(base))
	if err != nil {
		return "", fmt.Errorf("%w: %s not bundled and not on PATH", ErrNotFound, base)
	}
	return found, nil
}
