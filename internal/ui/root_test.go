package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"

	"github.com/fileconv/file-converter/internal/config"
	"github.com/fileconv/file-converter/internal/model"
)

// stubConverter satisfies convert.Converter without doing any work.
type stubConverter struct{}

func (stubConverter) SetUpdateCallback(func(*model.ConversionTask)) {}
func (stubConverter) StartBatch([]string, string, model.Options) ([]*model.ConversionTask, error) {
	return nil, nil
}
func (stubConverter) StopBatch(string) error { return nil }
func (stubConverter) GetTask(string) (*model.ConversionTask, bool) { return nil, false }
func (stubConverter) GetBatchTasks(string) []*model.ConversionTask { return nil }

func newTestRootUI(t *testing.T) *RootUI {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(func() { test.NewApp() })

	window := app.NewWindow("test")
	cfg := config.Default()
	return NewRootUI(window, app, stubConverter{}, &cfg)
}

func TestDroppedFilesAddedToSelection(t *testing.T) {
	ui := newTestRootUI(t)

	ui.onFilesDropped(fyne.Position{}, []fyne.URI{
		storage.NewFileURI("/drop/photo.jpg"),
		storage.NewFileURI("/drop/clip.mp4"),
	})

	if len(ui.selectedFiles) != 2 {
		t.Fatalf("Expected 2 selected files, got %v", ui.selectedFiles)
	}
	if ui.selectedFiles[0] != "/drop/photo.jpg" || ui.selectedFiles[1] != "/drop/clip.mp4" {
		t.Errorf("Dropped files should keep their order, got %v", ui.selectedFiles)
	}
}

func TestDroppedUnsupportedFilesSkipped(t *testing.T) {
	ui := newTestRootUI(t)

	ui.onFilesDropped(fyne.Position{}, []fyne.URI{
		storage.NewFileURI("/drop/notes.txt"),
		storage.NewFileURI("/drop/song.flac"),
	})

	if len(ui.selectedFiles) != 1 || ui.selectedFiles[0] != "/drop/song.flac" {
		t.Errorf("Only the supported file should be selected, got %v", ui.selectedFiles)
	}
}

func TestDroppedFilesConstrainFormatOptions(t *testing.T) {
	ui := newTestRootUI(t)

	ui.onFilesDropped(fyne.Position{}, []fyne.URI{
		storage.NewFileURI("/drop/a.wav"),
		storage.NewFileURI("/drop/b.ogg"),
	})

	if len(ui.formatSelect.Options) == 0 {
		t.Fatal("Uniform audio selection should offer audio targets")
	}
	for _, option := range ui.formatSelect.Options {
		if option == "png" || option == "mp4" {
			t.Errorf("Audio selection should not offer %s", option)
		}
	}
}
