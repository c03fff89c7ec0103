// Package config loads and persists application settings as a TOML file in
// the per-user application data directory. A plain file keeps settings
// reachable from context-menu invocations, which run without any GUI toolkit
// initialized.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/platform"
)

// ConfigFileName is the settings file name inside the app data directory.
const ConfigFileName = "config.toml"

// Default values
const (
	DefaultMaxGIFDuration = 15.0
	DefaultLanguage       = "system"
	DefaultFileLogging    = true
	DefaultHistoryEnabled = true
)

// Config holds all persisted application settings.
type Config struct {
	// MaxGIFDuration caps, in seconds, how much of a video is encoded when
	// converting to GIF.
	MaxGIFDuration float64 `toml:"max_gif_duration"`

	// Default target format per media category, used when a conversion is
	// started without an explicit target.
	DefaultImageTarget string `toml:"default_image_target"`
	DefaultAudioTarget string `toml:"default_audio_target"`
	DefaultVideoTarget string `toml:"default_video_target"`

	// Explicit tool paths. Empty means "bundled binary, then PATH".
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`

	// Directories watched for new files to convert automatically.
	WatchDirs []string `toml:"watch_dirs"`

	FileLogging    bool   `toml:"file_logging"`
	HistoryEnabled bool   `toml:"history_enabled"`
	Language       string `toml:"language"`
}

// Default returns a config populated with default values.
func Default() Config {
	return Config{
		MaxGIFDuration:     DefaultMaxGIFDuration,
		DefaultImageTarget: format.DefaultImageTarget,
		DefaultAudioTarget: format.DefaultAudioTarget,
		DefaultVideoTarget: format.DefaultVideoTarget,
		FileLogging:        DefaultFileLogging,
		HistoryEnabled:     DefaultHistoryEnabled,
		Language:           DefaultLanguage,
	}
}

// Path returns the settings file path inside the app data directory.
func Path() (string, error) {
	dir, err := platform.AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the settings file, creating it with defaults on first run.
// Missing keys keep their default values.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveTo(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the settings to the default path.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the settings to an explicit path.
func SaveTo(path string, cfg Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// GetLanguageOptions returns available language options
func GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// normalize fills invalid values back in with defaults.
func (c *Config) normalize() {
	if c.MaxGIFDuration <= 0 {
		c.MaxGIFDuration = DefaultMaxGIFDuration
	}
	if c.DefaultImageTarget == "" {
		c.DefaultImageTarget = format.DefaultImageTarget
	}
	if c.DefaultAudioTarget == "" {
		c.DefaultAudioTarget = format.DefaultAudioTarget
	}
	if c.DefaultVideoTarget == "" {
		c.DefaultVideoTarget = format.DefaultVideoTarget
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
}
