package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeStubTool creates an executable shell script standing in for ffmpeg or
// ffprobe.
func writeStubTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tool scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write stub tool: %v", err)
	}
	return path
}

func TestBuildConvertArgs(t *testing.T) {
	args := BuildConvertArgs("/in.mp4", "/out.webm", []string{"-c:v", "libvpx-vp9"})

	expected := []string{
		"-i", "/in.mp4",
		"-c:v", "libvpx-vp9",
		"-y",
		"-loglevel", "error",
		"-hide_banner",
		"/out.webm",
	}

	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d: %v", len(expected), len(args), args)
	}

	for i, want := range expected {
		if args[i] != want {
			t.Errorf("Arg %d: expected %s, got %s", i, want, args[i])
		}
	}
}

func TestBuildConvertArgsNoExtra(t *testing.T) {
	args := BuildConvertArgs("/a.wav", "/a.mp3", nil)

	if args[0] != "-i" || args[1] != "/a.wav" {
		t.Errorf("Args should start with input: %v", args)
	}
	if args[len(args)-1] != "/a.mp3" {
		t.Errorf("Args should end with the output path: %v", args)
	}
}

func TestVerifyReturnsVersionLine(t *testing.T) {
	tool := writeStubTool(t, `echo "ffmpeg version 6.0"; echo "built with gcc"`)
	r := &Runner{FFmpeg: tool}

	version, err := r.Verify(context.Background())
	if err != nil {
		t.Fatalf("Expected no error verifying stub tool, got: %v", err)
	}
	if version != "ffmpeg version 6.0" {
		t.Errorf("Expected first output line, got %q", version)
	}
}

func TestVerifyFailsOnBrokenBinary(t *testing.T) {
	tool := writeStubTool(t, "exit 1")
	r := &Runner{FFmpeg: tool}

	if _, err := r.Verify(context.Background()); err == nil {
		t.Error("Expected error for a binary that cannot run, got nil")
	}
}

func TestDurationParsesProbeOutput(t *testing.T) {
	tool := writeStubTool(t, `echo "12.34"`)
	r := &Runner{FFprobe: tool}

	duration, err := r.Duration(context.Background(), "/in.mp4")
	if err != nil {
		t.Fatalf("Expected no error probing duration, got: %v", err)
	}
	if duration != 12.34 {
		t.Errorf("Expected duration 12.34, got %v", duration)
	}
}

func TestDurationRejectsGarbageOutput(t *testing.T) {
	tool := writeStubTool(t, `echo "N/A"`)
	r := &Runner{FFprobe: tool}

	if _, err := r.Duration(context.Background(), "/in.mp4"); err == nil {
		t.Error("Expected error for unparsable probe output, got nil")
	}
}

func TestFindMissingOverride(t *testing.T) {
	_, err := Find("/nonexistent/path/to/ffmpeg", "")
	if err == nil {
		t.Fatal("Expected error for nonexistent configured path, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}
