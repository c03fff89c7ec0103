package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fileconv/file-converter/internal/config"
	"github.com/fileconv/file-converter/internal/convert"
	"github.com/fileconv/file-converter/internal/model"
)

// stubInvoker fails inputs listed in failOn and succeeds otherwise.
type stubInvoker struct {
	failOn  map[string]bool
	lastOpt model.Options
}

func (s *stubInvoker) Invoke(_ context.Context, _ model.Category, inputPath, _, _ string, opts model.Options) error {
	s.lastOpt = opts
	if s.failOn[inputPath] {
		return fmt.Errorf("tool exploded on %s", inputPath)
	}
	return nil
}

func newTestApp(invoker convert.Invoker) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		Config: config.Default(),
		Driver: convert.NewDriver(invoker),
		Out:    out,
	}, out
}

func TestRunConvertAllSucceed(t *testing.T) {
	app, out := newTestApp(&stubInvoker{})

	code := app.RunConvert(context.Background(), &Options{
		Files:  []string{"/in/a.jpg", "/in/b.wav"},
		Format: "",
	})

	if code != ExitOK {
		t.Errorf("Expected exit code %d, got %d", ExitOK, code)
	}
	if strings.Count(out.String(), "Converted") != 2 {
		t.Errorf("Expected two converted lines, got:\n%s", out.String())
	}
}

func TestRunConvertFailureSetsExitCode(t *testing.T) {
	app, out := newTestApp(&stubInvoker{failOn: map[string]bool{"/in/bad.wav": true}})

	code := app.RunConvert(context.Background(), &Options{
		Files:  []string{"/in/good.wav", "/in/bad.wav"},
		Format: "mp3",
	})

	if code != ExitError {
		t.Errorf("Expected exit code %d, got %d", ExitError, code)
	}
	if !strings.Contains(out.String(), "Converted /in/good.wav") {
		t.Errorf("Good file should still be reported converted:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Failed /in/bad.wav") {
		t.Errorf("Bad file should be reported failed:\n%s", out.String())
	}
}

func TestRunConvertUsesConfiguredGifDuration(t *testing.T) {
	invoker := &stubInvoker{}
	app, _ := newTestApp(invoker)
	app.Config.MaxGIFDuration = 42

	app.RunConvert(context.Background(), &Options{
		Files:  []string{"/in/clip.mp4"},
		Format: "gif",
	})

	if invoker.lastOpt.MaxGIFDuration != 42 {
		t.Errorf("Expected configured duration 42, got %v", invoker.lastOpt.MaxGIFDuration)
	}
}

func TestRunConvertFlagOverridesConfiguredGifDuration(t *testing.T) {
	invoker := &stubInvoker{}
	app, _ := newTestApp(invoker)
	app.Config.MaxGIFDuration = 42

	app.RunConvert(context.Background(), &Options{
		Files:          []string{"/in/clip.mp4"},
		Format:         "gif",
		MaxGIFDuration: 7,
	})

	if invoker.lastOpt.MaxGIFDuration != 7 {
		t.Errorf("Flag should override config, got %v", invoker.lastOpt.MaxGIFDuration)
	}
}

func TestRunConvertReportsSkipped(t *testing.T) {
	app, out := newTestApp(&stubInvoker{})

	code := app.RunConvert(context.Background(), &Options{
		Files:  []string{"/in/already.png"},
		Format: "png",
	})

	if code != ExitOK {
		t.Errorf("Skipped file should not fail the run, got exit %d", code)
	}
	if !strings.Contains(out.String(), "Skipped") {
		t.Errorf("Expected a skipped line:\n%s", out.String())
	}
}

func TestRunList(t *testing.T) {
	app, out := newTestApp(&stubInvoker{})

	if code := app.RunList(); code != ExitOK {
		t.Errorf("Expected exit %d, got %d", ExitOK, code)
	}

	for _, want := range []string{"image:", "audio:", "video:", "gif"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in listing:\n%s", want, out.String())
		}
	}
}

func TestRunHistoryDisabled(t *testing.T) {
	app, out := newTestApp(&stubInvoker{})

	if code := app.RunHistory(5); code != ExitOK {
		t.Errorf("Disabled history should exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("Expected disabled notice:\n%s", out.String())
	}
}
