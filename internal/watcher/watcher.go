// Package watcher converts files dropped into watched directories. New files
// are picked up via filesystem notifications, debounced until writes settle,
// and converted to the configured default target of their category.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fileconv/file-converter/internal/convert"
	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/model"
)

// DefaultSettleDelay is how long a file must stay quiet after its last write
// before conversion starts. Copies into the watched directory arrive as many
// write events; converting too early reads a truncated file.
const DefaultSettleDelay = 2 * time.Second

// Targets selects the conversion target per media category.
type Targets struct {
	Image string
	Audio string
	Video string
}

// Watcher watches directories and converts files that appear in them.
type Watcher struct {
	driver      *convert.Driver
	dirs        []string
	targets     Targets
	opts        model.Options
	SettleDelay time.Duration

	// OnResult, when set, receives the outcome and target format of every
	// conversion.
	OnResult func(result model.ConversionResult, target string)

	mu       sync.Mutex
	pending  map[string]*time.Timer
	produced map[string]bool // outputs we created; never re-converted
}

// New creates a watcher over the given directories.
func New(driver *convert.Driver, dirs []string, targets Targets, opts model.Options) *Watcher {
	return &Watcher{
		driver:      driver,
		dirs:        dirs,
		targets:     targets,
		opts:        opts,
		SettleDelay: DefaultSettleDelay,
		pending:     make(map[string]*time.Timer),
		produced:    make(map[string]bool),
	}
}

// Run watches until the context is canceled. Watched directories are
// registered recursively; directories created later are picked up too.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := addRecursive(fsw, dir); err != nil {
			return err
		}
		log.Printf("Watching directory: %s", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v", err)
		}
	}
}

// handleEvent reacts to one filesystem event.
func (w *Watcher) handleEvent(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := addRecursive(fsw, event.Name); err != nil {
				log.Printf("Failed to watch new directory %s: %v", event.Name, err)
			}
		}
		return
	}

	if !w.shouldConvert(event.Name) {
		return
	}

	w.schedule(ctx, event.Name)
}

// shouldConvert filters out unsupported files and our own outputs.
func (w *Watcher) shouldConvert(path string) bool {
	ext := format.Normalize(filepath.Ext(path))
	category, ok := format.Lookup(ext)
	if !ok {
		return false
	}

	// Already in the target format; converting would be a no-op loop.
	if ext == w.targetFor(category) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.produced[path]
}

// schedule starts or resets the settle timer for a file.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.pending[path]; exists {
		timer.Reset(w.SettleDelay)
		return
	}

	w.pending[path] = time.AfterFunc(w.SettleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.convertFile(ctx, path)
	})
}

// convertFile converts one settled file and records its output as produced.
func (w *Watcher) convertFile(ctx context.Context, path string) {
	ext := format.Normalize(filepath.Ext(path))
	category, ok := format.Lookup(ext)
	if !ok {
		return
	}

	target := w.targetFor(category)

	w.mu.Lock()
	w.produced[convert.OutputPath(path, target)] = true
	w.mu.Unlock()

	results := w.driver.Convert(ctx, []model.ConversionRequest{
		{InputPath: path, TargetFormat: target, Options: w.opts},
	})

	result := results[0]
	if result.Success {
		log.Printf("Converted %s -> %s", result.InputPath, result.OutputPath)
	} else {
		log.Printf("Failed to convert %s: %s", result.InputPath, result.Error)
	}

	if w.OnResult != nil {
		w.OnResult(result, target)
	}
}

// targetFor returns the configured target for a category, falling back to
// the built-in defaults.
func (w *Watcher) targetFor(category model.Category) string {
	var target string
	switch category {
	case model.CategoryImage:
		target = w.targets.Image
	case model.CategoryAudio:
		target = w.targets.Audio
	case model.CategoryVideo:
		target = w.targets.Video
	}
	if target == "" {
		target = format.DefaultTarget(category)
	}
	return target
}

// addRecursive registers a directory and all its subdirectories.
func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}
