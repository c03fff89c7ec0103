package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fileconv/file-converter/internal/config"
	"github.com/fileconv/file-converter/internal/convert"
	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/history"
	"github.com/fileconv/file-converter/internal/model"
	"github.com/fileconv/file-converter/internal/platform"
	"github.com/fileconv/file-converter/internal/registry"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
)

// App bundles the dependencies of the CLI modes.
type App struct {
	Config  config.Config
	Driver  *convert.Driver
	History *history.Store // nil when history is disabled
	Out     io.Writer
}

// RunConvert converts the listed files and prints one line per result. The
// exit code is zero only when every file converted (or was already in the
// requested format).
func (a *App) RunConvert(ctx context.Context, opts *Options) int {
	maxGIF := opts.MaxGIFDuration
	if maxGIF <= 0 {
		maxGIF = a.Config.MaxGIFDuration
	}

	requests := make([]model.ConversionRequest, 0, len(opts.Files))
	for _, path := range opts.Files {
		requests = append(requests, model.ConversionRequest{
			InputPath:    path,
			TargetFormat: opts.Format,
			Options:      model.Options{MaxGIFDuration: maxGIF},
		})
	}

	results := a.Driver.Convert(ctx, requests)

	exitCode := ExitOK
	for _, result := range results {
		a.printResult(result)
		a.recordResult(result, opts.Format)
		if !result.Success {
			exitCode = ExitError
		}
	}
	return exitCode
}

// RunSetup installs the Explorer context-menu entries.
func (a *App) RunSetup(force bool) int {
	exePath, err := platform.ExecutablePath()
	if err != nil {
		fmt.Fprintf(a.Out, "Error: %v\n", err)
		return ExitError
	}

	manager, err := registry.NewManager()
	if err != nil {
		fmt.Fprintf(a.Out, "Error: %v\n", err)
		return ExitError
	}

	if err := manager.Setup(exePath, force); err != nil {
		fmt.Fprintf(a.Out, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(a.Out, "Context menu entries installed for %d extensions\n", len(manager.Registered()))
	return ExitOK
}

// RunRemove removes the Explorer context-menu entries.
func (a *App) RunRemove() int {
	manager, err := registry.NewManager()
	if err != nil {
		fmt.Fprintf(a.Out, "Error: %v\n", err)
		return ExitError
	}

	if len(manager.Registered()) == 0 {
		fmt.Fprintln(a.Out, "No context menu entries installed")
		return ExitOK
	}

	if err := manager.RemoveAll(); err != nil {
		fmt.Fprintf(a.Out, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintln(a.Out, "Context menu entries removed")
	return ExitOK
}

// RunList prints the supported source formats and their targets per category.
func (a *App) RunList() int {
	categories := []model.Category{
		model.CategoryImage,
		model.CategoryAudio,
		model.CategoryVideo,
	}

	for _, category := range categories {
		fmt.Fprintf(a.Out, "%s:\n", category)
		fmt.Fprintf(a.Out, "  targets: %s\n", strings.Join(format.Targets(category), ", "))
	}
	return ExitOK
}

// RunHistory prints the most recent conversions, newest first.
func (a *App) RunHistory(limit int) int {
	if a.History == nil {
		fmt.Fprintln(a.Out, "History is disabled")
		return ExitOK
	}

	entries, err := a.History.Recent(limit)
	if err != nil {
		fmt.Fprintf(a.Out, "Error: %v\n", err)
		return ExitError
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.Out, "No conversions recorded")
		return ExitOK
	}

	for _, entry := range entries {
		status := "ok"
		detail := entry.OutputPath
		if !entry.Success {
			status = "failed"
			detail = entry.Error
		}
		fmt.Fprintf(a.Out, "%s  %-6s  %s -> %s\n",
			entry.ConvertedAt.Format("2006-01-02 15:04:05"), status, entry.InputPath, detail)
	}
	return ExitOK
}

// printResult writes one line per conversion outcome.
func (a *App) printResult(result model.ConversionResult) {
	switch {
	case result.Skipped:
		fmt.Fprintf(a.Out, "Skipped %s: already in the requested format\n", result.InputPath)
	case result.Success:
		fmt.Fprintf(a.Out, "Converted %s -> %s\n", result.InputPath, result.OutputPath)
	default:
		fmt.Fprintf(a.Out, "Failed %s: %s\n", result.InputPath, result.Error)
	}
}

// recordResult stores the outcome in history when enabled. Recording is best
// effort; a history failure never fails the conversion.
func (a *App) recordResult(result model.ConversionResult, target string) {
	if a.History == nil || result.Skipped {
		return
	}
	if err := a.History.Record(result, target); err != nil {
		fmt.Fprintf(a.Out, "Warning: failed to record history: %v\n", err)
	}
}
