package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"

	"github.com/fileconv/file-converter/internal/cli"
	"github.com/fileconv/file-converter/internal/config"
	"github.com/fileconv/file-converter/internal/convert"
	"github.com/fileconv/file-converter/internal/ffmpeg"
	"github.com/fileconv/file-converter/internal/history"
	"github.com/fileconv/file-converter/internal/model"
	"github.com/fileconv/file-converter/internal/platform"
	"github.com/fileconv/file-converter/internal/ui"
	"github.com/fileconv/file-converter/internal/watcher"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID       = "com.fileconv.file-converter"
	AppName     = "File Converter"
	LogFileName = "file-converter.log"

	WindowWidth  = 900
	WindowHeight = 600
)

func main() {
	opts, err := cli.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(cli.ExitError)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	closeLog := setupLogging(cfg, opts.NoLog)
	defer closeLog()

	log.Printf("%s v%s starting", AppName, version)

	switch {
	case opts.Setup:
		os.Exit(newApp(cfg, nil).RunSetup(opts.Force))
	case opts.Remove:
		os.Exit(newApp(cfg, nil).RunRemove())
	case opts.List:
		os.Exit(newApp(cfg, nil).RunList())
	case opts.History:
		store := openHistory(cfg)
		application := newApp(cfg, store)
		code := application.RunHistory(opts.HistoryLimit)
		closeHistory(store)
		os.Exit(code)
	case opts.Watch:
		os.Exit(runWatch(cfg))
	case len(opts.Files) > 0:
		os.Exit(runConvert(cfg, opts))
	default:
		runGUI(cfg)
	}
}

// runConvert handles the CLI conversion mode, including context-menu
// invocations.
func runConvert(cfg config.Config, opts *cli.Options) int {
	ctx, cancel := signalContext()
	defer cancel()

	runner, err := locateTools(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}

	store := openHistory(cfg)
	defer closeHistory(store)

	application := newApp(cfg, store)
	application.Driver = convert.NewDriver(convert.NewToolInvoker(runner))

	return application.RunConvert(ctx, opts)
}

// runWatch converts files appearing in the configured watch directories until
// interrupted.
func runWatch(cfg config.Config) int {
	if len(cfg.WatchDirs) == 0 {
		fmt.Fprintln(os.Stderr, "No watch directories configured; set watch_dirs in the config file")
		return cli.ExitError
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner, err := locateTools(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}

	store := openHistory(cfg)
	defer closeHistory(store)

	driver := convert.NewDriver(convert.NewToolInvoker(runner))
	targets := watcher.Targets{
		Image: cfg.DefaultImageTarget,
		Audio: cfg.DefaultAudioTarget,
		Video: cfg.DefaultVideoTarget,
	}
	opts := model.Options{MaxGIFDuration: cfg.MaxGIFDuration}

	w := watcher.New(driver, cfg.WatchDirs, targets, opts)
	if store != nil {
		w.OnResult = func(result model.ConversionResult, target string) {
			if err := store.Record(result, target); err != nil {
				log.Printf("Failed to record history: %v", err)
			}
		}
	}

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	return cli.ExitOK
}

// runGUI starts the Fyne desktop interface.
func runGUI(cfg config.Config) {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	runner, err := locateTools(context.Background(), cfg)
	if err != nil {
		// Without a working tool there is nothing to convert with; show
		// the reason instead of a dead main window.
		log.Printf("ffmpeg not usable: %v", err)
		myWindow.SetContent(widget.NewLabel(
			"ffmpeg is not available.\nInstall it or set ffmpeg_path in the config file."))
		myWindow.ShowAndRun()
		return
	}

	convertSvc := convert.NewService(convert.NewToolInvoker(runner))

	ui.NewRootUI(myWindow, myApp, convertSvc, &cfg)

	myWindow.ShowAndRun()
}

// locateTools finds the ffmpeg/ffprobe pair and confirms the ffmpeg binary
// actually runs. A located-but-broken binary is a startup failure, not a
// per-file one.
func locateTools(ctx context.Context, cfg config.Config) (*ffmpeg.Runner, error) {
	runner, err := ffmpeg.Find(cfg.FFmpegPath, cfg.FFprobePath)
	if err != nil {
		return nil, err
	}

	version, err := runner.Verify(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("Using %s", version)

	return runner, nil
}

// newApp builds the CLI app around the shared config and history store.
func newApp(cfg config.Config, store *history.Store) *cli.App {
	return &cli.App{
		Config:  cfg,
		History: store,
		Out:     os.Stdout,
	}
}

// openHistory opens the history store when enabled. Failures disable history
// for this run rather than aborting it.
func openHistory(cfg config.Config) *history.Store {
	if !cfg.HistoryEnabled {
		return nil
	}
	store, err := history.Open()
	if err != nil {
		log.Printf("History disabled: %v", err)
		return nil
	}
	return store
}

func closeHistory(store *history.Store) {
	if store != nil {
		store.Close()
	}
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// setupLogging mirrors log output into a file in the app data directory
// unless disabled by flag or config.
func setupLogging(cfg config.Config, noLog bool) func() {
	if noLog || !cfg.FileLogging {
		return func() {}
	}

	dir, err := platform.AppDataDir()
	if err != nil {
		log.Printf("File logging disabled: %v", err)
		return func() {}
	}

	file, err := os.OpenFile(filepath.Join(dir, LogFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("File logging disabled: %v", err)
		return func() {}
	}

	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return func() {
		log.SetOutput(os.Stderr)
		file.Close()
	}
}
