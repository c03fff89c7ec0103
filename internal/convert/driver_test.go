package convert

import (
	"context"
	"fmt"
	"testing"

	"github.com/fileconv/file-converter/internal/model"
)

// fakeInvoker records invocations and fails paths listed in failOn.
type fakeInvoker struct {
	calls  []fakeCall
	failOn map[string]bool
}

type fakeCall struct {
	category   model.Category
	inputPath  string
	outputPath string
	target     string
}

func (f *fakeInvoker) Invoke(_ context.Context, category model.Category, inputPath, outputPath, target string, _ model.Options) error {
	f.calls = append(f.calls, fakeCall{category, inputPath, outputPath, target})
	if f.failOn[inputPath] {
		return fmt.Errorf("simulated tool failure for %s", inputPath)
	}
	return nil
}

func TestDriverResultsMatchInputOrder(t *testing.T) {
	invoker := &fakeInvoker{}
	driver := NewDriver(invoker)

	requests := []model.ConversionRequest{
		{InputPath: "/photos/a.jpg", TargetFormat: "png"},
		{InputPath: "/photos/b.png", TargetFormat: "jpg"},
		{InputPath: "/photos/c.bmp", TargetFormat: "png"},
	}

	results := driver.Convert(context.Background(), requests)

	if len(results) != len(requests) {
		t.Fatalf("Expected %d results, got %d", len(requests), len(results))
	}
	for i, req := range requests {
		if results[i].InputPath != req.InputPath {
			t.Errorf("Result %d: expected input %s, got %s", i, req.InputPath, results[i].InputPath)
		}
		if !results[i].Success {
			t.Errorf("Result %d should succeed: %s", i, results[i].Error)
		}
	}
}

func TestDriverUnsupportedExtensionNeverInvokes(t *testing.T) {
	invoker := &fakeInvoker{}
	driver := NewDriver(invoker)

	results := driver.Convert(context.Background(), []model.ConversionRequest{
		{InputPath: "/docs/report.pdf", TargetFormat: "png"},
	})

	if len(invoker.calls) != 0 {
		t.Errorf("No tool should be invoked for unsupported input, got %d calls", len(invoker.calls))
	}
	if results[0].Success {
		t.Error("Unsupported input should produce a failed result")
	}
	if results[0].Error == "" {
		t.Error("Failed result should carry diagnostic text")
	}
}

func TestDriverCategoryMismatchFails(t *testing.T) {
	invoker := &fakeInvoker{}
	driver := NewDriver(invoker)

	results := driver.Convert(context.Background(), []model.ConversionRequest{
		{InputPath: "/media/song.mp3", TargetFormat: "png"},
	})

	if results[0].Success {
		t.Error("Audio to image conversion should fail validation")
	}
	if len(invoker.calls) != 0 {
		t.Error("Validation failure should not invoke the tool")
	}
}

func TestDriverOneFailureDoesNotStopBatch(t *testing.T) {
	invoker := &fakeInvoker{failOn: map[string]bool{"/in/b.wav": true}}
	driver := NewDriver(invoker)

	results := driver.Convert(context.Background(), []model.ConversionRequest{
		{InputPath: "/in/a.wav", TargetFormat: "mp3"},
		{InputPath: "/in/b.wav", TargetFormat: "mp3"},
		{InputPath: "/in/c.wav", TargetFormat: "mp3"},
	})

	if !results[0].Success || !results[2].Success {
		t.Error("Files surrounding the failed one should still convert")
	}
	if results[1].Success {
		t.Error("The failed file should produce a failed result")
	}
	if len(invoker.calls) != 3 {
		t.Errorf("All three files should be attempted, got %d calls", len(invoker.calls))
	}
}

func TestDriverSkipsSameFormat(t *testing.T) {
	invoker := &fakeInvoker{}
	driver := NewDriver(invoker)

	results := driver.Convert(context.Background(), []model.ConversionRequest{
		{InputPath: "/in/already.png", TargetFormat: "png"},
	})

	if !results[0].Success || !results[0].Skipped {
		t.Errorf("Same-format input should be skipped successfully: %+v", results[0])
	}
	if len(invoker.calls) != 0 {
		t.Error("Skipped input should not invoke the tool")
	}
}

func TestDriverDefaultTargetPerCategory(t *testing.T) {
	invoker := &fakeInvoker{}
	driver := NewDriver(invoker)

	driver.Convert(context.Background(), []model.ConversionRequest{
		{InputPath: "/in/a.jpg"},
		{InputPath: "/in/b.wav"},
		{InputPath: "/in/c.mkv"},
	})

	expected := []string{"png", "mp3", "mp4"}
	if len(invoker.calls) != len(expected) {
		t.Fatalf("Expected %d calls, got %d", len(expected), len(invoker.calls))
	}
	for i, target := range expected {
		if invoker.calls[i].target != target {
			t.Errorf("Call %d: expected default target %s, got %s", i, target, invoker.calls[i].target)
		}
	}
}

func TestDriverCanceledContextFailsRemaining(t *testing.T) {
	invoker := &fakeInvoker{}
	driver := NewDriver(invoker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := driver.Convert(ctx, []model.ConversionRequest{
		{InputPath: "/in/a.jpg", TargetFormat: "png"},
		{InputPath: "/in/b.jpg", TargetFormat: "png"},
	})

	if len(results) != 2 {
		t.Fatalf("Canceled batch should still yield one result per input, got %d", len(results))
	}
	for i, result := range results {
		if result.Success {
			t.Errorf("Result %d should fail after cancellation", i)
		}
	}
	if len(invoker.calls) != 0 {
		t.Error("No tool should be invoked after cancellation")
	}
}

func TestDriverMixedBatchToWebp(t *testing.T) {
	invoker := &fakeInvoker{}
	driver := NewDriver(invoker)

	results := driver.Convert(context.Background(), []model.ConversionRequest{
		{InputPath: "/in/a.jpg", TargetFormat: "webp"},
		{InputPath: "/in/b.mp4", TargetFormat: "webp"},
	})

	if !results[0].Success {
		t.Errorf("Image to webp should succeed: %s", results[0].Error)
	}
	if results[1].Success {
		t.Error("Video to webp should fail validation")
	}
	if len(invoker.calls) != 1 {
		t.Fatalf("Only the image should be invoked, got %d calls", len(invoker.calls))
	}
	if invoker.calls[0].category != model.CategoryImage {
		t.Errorf("Expected image category, got %s", invoker.calls[0].category)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		target   string
		expected string
	}{
		{"/photos/cat.jpg", "png", "/photos/cat.png"},
		{"/photos/archive.tar.png", "webp", "/photos/archive.tar.webp"},
		{"clip.mp4", "gif", "clip.gif"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.target); got != tt.expected {
			t.Errorf("OutputPath(%s, %s): expected %s, got %s", tt.input, tt.target, tt.expected, got)
		}
	}
}
