package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/easel/demo"
	"github.com/agiangrant/easel/host"
	"github.com/agiangrant/easel/internal/logging"
)

// ConfigFile is the default configuration file name.
const ConfigFile = "easel.toml"

// ProjectConfig represents the easel.toml configuration file
type ProjectConfig struct {
	App     AppConfig     `toml:"app"`
	Window  WindowConfig  `toml:"window"`
	Canvas  CanvasConfig  `toml:"canvas"`
	Demo    DemoConfig    `toml:"demo"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

type AppConfig struct {
	Name  string `toml:"name"`
	Title string `toml:"title"`
}

// WindowConfig is the initial window size in dp
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// CanvasConfig is the drawing surface size in pixels
type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Size returns the canvas size.
func (c CanvasConfig) Size() host.Size {
	return host.Size{Width: c.Width, Height: c.Height}
}

type DemoConfig struct {
	Name string `toml:"name"`
	// Start playing without waiting for a click
	Autoplay bool `toml:"autoplay"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// Rotating log file, empty for console only
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Logging returns the logger configuration.
func (c LogConfig) Logging() logging.Config {
	return logging.Config{
		Level:      c.Level,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

type MetricsConfig struct {
	// Listen address for /metrics, empty to disable
	Addr string `toml:"addr"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		App: AppConfig{
			Name:  "easel",
			Title: "Easel",
		},
		Window: WindowConfig{
			Width:  640,
			Height: 480,
		},
		Canvas: CanvasConfig{
			Width:  300,
			Height: 150,
		},
		Demo: DemoConfig{
			Name:     demo.Default,
			Autoplay: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig loads the configuration from path.
// If the file doesn't exist, returns default config
func LoadConfig(path string) (ProjectConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for empty values
	if config.App.Title == "" {
		config.App.Title = config.App.Name
	}
	if config.Demo.Name == "" {
		config.Demo.Name = demo.Default
	}

	return config, nil
}

// SaveConfig saves the configuration to path
func SaveConfig(path string, config ProjectConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Validate reports the first invalid setting.
func (c ProjectConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if _, ok := demo.Lookup(c.Demo.Name); !ok {
		return fmt.Errorf("unknown demo %q (run 'easel demos' for a list)", c.Demo.Name)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
