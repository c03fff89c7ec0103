package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe and logging constants
const (
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	FFmpegLogLevel      = "error"
)

// Runner invokes a located ffmpeg/ffprobe binary pair. One Convert call is
// one tool invocation: synchronous, atomic from the caller's point of view,
// never retried.
type Runner struct {
	FFmpeg  string
	FFprobe string
}

// Verify runs `ffmpeg -version` and returns its first output line. Used at
// startup to confirm the located binary actually executes.
func (r *Runner) Verify(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.FFmpeg, "-version")
	hideWindow(cmd)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg verification failed: %w", err)
	}

	lines := strings.SplitN(string(output), "\n", 2)
	return strings.TrimSpace(lines[0]), nil
}

// Convert runs one ffmpeg invocation: `-i input <extraArgs> -y -loglevel
// error -hide_banner output`. On a non-zero exit the captured stderr text is
// wrapped into the returned error verbatim.
func (r *Runner) Convert(ctx context.Context, inputPath, outputPath string, extraArgs []string) error {
	args := BuildConvertArgs(inputPath, outputPath, extraArgs)

	cmd := exec.CommandContext(ctx, r.FFmpeg, args...)
	hideWindow(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, diag)
	}

	return nil
}

// Duration returns the duration of a media file in seconds using ffprobe.
func (r *Runner) Duration(ctx context.Context, inputPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, r.FFprobe,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		inputPath,
	)
	hideWindow(cmd)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", durationStr, err)
	}

	return duration, nil
}

// BuildConvertArgs assembles the argument list for one conversion invocation.
// Extra args sit between the input and the trailing output options so they
// can carry additional inputs, filters and stream mappings.
func BuildConvertArgs(inputPath, outputPath string, extraArgs []string) []string {
	args := []string{"-i", inputPath}
	args = append(args, extraArgs...)
	args = append(args,
		"-y", // Overwrite output file
		"-loglevel", FFmpegLogLevel,
		"-hide_banner",
		outputPath,
	)
	return args
}
