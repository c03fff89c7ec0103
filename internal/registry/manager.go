package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/model"
	"github.com/fileconv/file-converter/internal/platform"
)

// BookkeepingFileName is the JSON file tracking created registry keys,
// stored in the app data directory.
const BookkeepingFileName = "registry_entries.json"

// ErrUnsupportedPlatform is returned for context-menu operations on systems
// without a Windows registry.
var ErrUnsupportedPlatform = errors.New("context menu integration is only available on Windows")

// ErrAlreadyInstalled is returned by Setup when entries already exist and
// force was not requested.
var ErrAlreadyInstalled = errors.New("context menu entries already installed")

// Manager creates and removes context-menu registry entries.
type Manager struct {
	bookkeepingPath string
	entries         map[string][]string // extension -> created key paths
}

// NewManager creates a manager with bookkeeping in the app data directory.
func NewManager() (*Manager, error) {
	dir, err := platform.AppDataDir()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(filepath.Join(dir, BookkeepingFileName))
}

// NewManagerAt creates a manager with bookkeeping at an explicit path.
func NewManagerAt(bookkeepingPath string) (*Manager, error) {
	m := &Manager{
		bookkeepingPath: bookkeepingPath,
		entries:         make(map[string][]string),
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Setup registers context-menu entries for every supported source extension.
// The command target is the given executable path. With force, existing
// entries are removed and recreated.
func (m *Manager) Setup(exePath string, force bool) error {
	if len(m.entries) > 0 {
		if !force {
			return ErrAlreadyInstalled
		}
		if err := m.RemoveAll(); err != nil {
			return fmt.Errorf("failed to remove existing entries: %w", err)
		}
	}

	for _, ext := range format.SourceExtensions() {
		if err := m.AddExtension(exePath, ext); err != nil {
			return fmt.Errorf("failed to register .%s: %w", ext, err)
		}
	}

	return m.save()
}

// AddExtension registers the context-menu cascade for one extension. The
// submenu offers every target its category allows, except the extension
// itself.
func (m *Manager) AddExtension(exePath, ext string) error {
	ext = format.Normalize(ext)

	category, ok := format.Lookup(ext)
	if !ok {
		return fmt.Errorf("unsupported extension: %q", ext)
	}

	targets := menuTargets(category, ext)

	keys, err := createExtensionKeys(exePath, ext, targets)
	if err != nil {
		return err
	}

	m.entries[ext] = keys
	return m.save()
}

// RemoveExtension deletes the registry keys created for one extension.
func (m *Manager) RemoveExtension(ext string) error {
	ext = format.Normalize(ext)

	keys, exists := m.entries[ext]
	if !exists {
		return fmt.Errorf("no context-menu entries recorded for .%s", ext)
	}

	if err := deleteExtensionKeys(keys); err != nil {
		return err
	}

	delete(m.entries, ext)
	return m.save()
}

// RemoveAll deletes every registry key recorded in the bookkeeping file.
func (m *Manager) RemoveAll() error {
	for ext := range m.entries {
		if err := m.RemoveExtension(ext); err != nil {
			return err
		}
	}
	return m.save()
}

// Registered returns the sorted extensions with recorded entries.
func (m *Manager) Registered() []string {
	exts := make([]string, 0, len(m.entries))
	for ext := range m.entries {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// menuTargets returns the target formats offered in the submenu for an
// extension: everything its category allows minus the format itself.
func menuTargets(category model.Category, ext string) []string {
	all := format.Targets(category)
	targets := make([]string, 0, len(all))
	for _, target := range all {
		if target != ext {
			targets = append(targets, target)
		}
	}
	return targets
}

// load reads the bookkeeping file. A missing file means nothing installed.
func (m *Manager) load() error {
	data, err := os.ReadFile(m.bookkeepingPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read registry bookkeeping: %w", err)
	}

	if err := json.Unmarshal(data, &m.entries); err != nil {
		return fmt.Errorf("failed to parse registry bookkeeping: %w", err)
	}
	return nil
}

// save writes the bookkeeping file. An empty entry set removes the file.
func (m *Manager) save() error {
	if len(m.entries) == 0 {
		if err := os.Remove(m.bookkeepingPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove registry bookkeeping: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry bookkeeping: %w", err)
	}

	if err := os.WriteFile(m.bookkeepingPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry bookkeeping: %w", err)
	}
	return nil
}
