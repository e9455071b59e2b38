// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/devmobasa/wayscriber/internal/logger"
)

// Config represents the application configuration
type Config struct {
	Drawing DrawingConfig `mapstructure:"drawing"`
	Board   BoardConfig   `mapstructure:"board"`
	Zoom    ZoomConfig    `mapstructure:"zoom"`
	Session SessionConfig `mapstructure:"session"`
	Capture CaptureConfig `mapstructure:"capture"`
	IPC     IPCConfig     `mapstructure:"ipc"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DrawingConfig contains pen and history settings
type DrawingConfig struct {
	DefaultTool      string  `mapstructure:"default_tool"`
	DefaultThickness float64 `mapstructure:"default_thickness"`
	DefaultColor     string  `mapstructure:"default_color"` // palette name or #rrggbb
	HistoryLimit     int     `mapstructure:"history_limit"`
	EraserSize       float64 `mapstructure:"eraser_size"`
	MarkerOpacity    float64 `mapstructure:"marker_opacity"`
	FontSize         float64 `mapstructure:"font_size"`
}

// BoardConfig contains board defaults
type BoardConfig struct {
	Default       string `mapstructure:"default"` // board id active on start
	AutoAdjustPen bool   `mapstructure:"auto_adjust_pen"`
}

// ZoomConfig bounds the zoom transform
type ZoomConfig struct {
	MinScale float64 `mapstructure:"min_scale"`
	MaxScale float64 `mapstructure:"max_scale"`
}

// SessionConfig controls persistence
type SessionConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Path              string `mapstructure:"path"` // empty: default under the state dir
	MaxFileSizeBytes  int64  `mapstructure:"max_file_size_bytes"`
	MaxShapesPerFrame int    `mapstructure:"max_shapes_per_frame"`
	HistoryRetention  int    `mapstructure:"history_retention"` // 0 persists no history
	SaveDebounceMS    int    `mapstructure:"save_debounce_ms"`
	Backup            bool   `mapstructure:"backup"`
}

// CaptureConfig controls the screenshot pipeline
type CaptureConfig struct {
	Directory        string `mapstructure:"directory"` // empty: XDG pictures dir
	FilenameTemplate string `mapstructure:"filename_template"`
	IncludeCursor    bool   `mapstructure:"include_cursor"`
	TimeoutMS        int    `mapstructure:"timeout_ms"`
}

// IPCConfig controls the control socket
type IPCConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	SocketPath string `mapstructure:"socket_path"` // empty: per-user default
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // overrides WAYSCRIBER_LOG_LEVEL
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Drawing: DrawingConfig{
			DefaultTool:      "pen",
			DefaultThickness: 4,
			DefaultColor:     "red",
			HistoryLimit:     100,
			EraserSize:       24,
			MarkerOpacity:    0.5,
			FontSize:         18,
		},
		Board: BoardConfig{
			Default:       "transparent",
			AutoAdjustPen: true,
		},
		Zoom: ZoomConfig{
			MinScale: 1.0,
			MaxScale: 4.0,
		},
		Session: SessionConfig{
			Enabled:           true,
			MaxFileSizeBytes:  10 << 20,
			MaxShapesPerFrame: 2000,
			HistoryRetention:  50,
			SaveDebounceMS:    2000,
			Backup:            true,
		},
		Capture: CaptureConfig{
			FilenameTemplate: "wayscriber-{date}-{time}-{n}.png",
			IncludeCursor:    false,
			TimeoutMS:        10000,
		},
		IPC: IPCConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("wayscriber")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wayscriber"))
		}
		viper.AddConfigPath(".")
	}

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("drawing.default_tool", DefaultConfig.Drawing.DefaultTool)
	viper.SetDefault("drawing.default_thickness", DefaultConfig.Drawing.DefaultThickness)
	viper.SetDefault("drawing.default_color", DefaultConfig.Drawing.DefaultColor)
	viper.SetDefault("drawing.history_limit", DefaultConfig.Drawing.HistoryLimit)
	viper.SetDefault("drawing.eraser_size", DefaultConfig.Drawing.EraserSize)
	viper.SetDefault("drawing.marker_opacity", DefaultConfig.Drawing.MarkerOpacity)
	viper.SetDefault("drawing.font_size", DefaultConfig.Drawing.FontSize)

	viper.SetDefault("board.default", DefaultConfig.Board.Default)
	viper.SetDefault("board.auto_adjust_pen", DefaultConfig.Board.AutoAdjustPen)

	viper.SetDefault("zoom.min_scale", DefaultConfig.Zoom.MinScale)
	viper.SetDefault("zoom.max_scale", DefaultConfig.Zoom.MaxScale)

	viper.SetDefault("session.enabled", DefaultConfig.Session.Enabled)
	viper.SetDefault("session.path", DefaultConfig.Session.Path)
	viper.SetDefault("session.max_file_size_bytes", DefaultConfig.Session.MaxFileSizeBytes)
	viper.SetDefault("session.max_shapes_per_frame", DefaultConfig.Session.MaxShapesPerFrame)
	viper.SetDefault("session.history_retention", DefaultConfig.Session.HistoryRetention)
	viper.SetDefault("session.save_debounce_ms", DefaultConfig.Session.SaveDebounceMS)
	viper.SetDefault("session.backup", DefaultConfig.Session.Backup)

	viper.SetDefault("capture.directory", DefaultConfig.Capture.Directory)
	viper.SetDefault("capture.filename_template", DefaultConfig.Capture.FilenameTemplate)
	viper.SetDefault("capture.include_cursor", DefaultConfig.Capture.IncludeCursor)
	viper.SetDefault("capture.timeout_ms", DefaultConfig.Capture.TimeoutMS)

	viper.SetDefault("ipc.enabled", DefaultConfig.IPC.Enabled)
	viper.SetDefault("ipc.socket_path", DefaultConfig.IPC.SocketPath)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	c.normalize()
	cfg = c

	if c.Logging.LogLevel != "" {
		logger.SetLevelName(c.Logging.LogLevel)
	}
	return nil
}

// normalize clamps values a hand-edited file may carry out of range.
func (c *Config) normalize() {
	if c.Zoom.MinScale < 1 {
		c.Zoom.MinScale = 1
	}
	if c.Zoom.MaxScale < c.Zoom.MinScale {
		c.Zoom.MaxScale = c.Zoom.MinScale
	}
	if c.Drawing.HistoryLimit < 0 {
		c.Drawing.HistoryLimit = 0
	}
	if c.Session.HistoryRetention < 0 {
		c.Session.HistoryRetention = 0
	}
	if c.Session.MaxShapesPerFrame < 0 {
		c.Session.MaxShapesPerFrame = 0
	}
	if c.Drawing.DefaultThickness <= 0 {
		c.Drawing.DefaultThickness = DefaultConfig.Drawing.DefaultThickness
	}
	if c.Capture.TimeoutMS <= 0 {
		c.Capture.TimeoutMS = DefaultConfig.Capture.TimeoutMS
	}
	if c.Capture.FilenameTemplate == "" {
		c.Capture.FilenameTemplate = DefaultConfig.Capture.FilenameTemplate
	}
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Watch re-reads the config file on change and hands the new config to
// onChange. Callbacks arrive on fsnotify's goroutine.
func Watch(onChange func(*Config)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Infof("config file changed: %s", e.Name)
		c := &Config{}
		if err := viper.Unmarshal(c); err != nil {
			logger.Errorf("reload config: %v", err)
			return
		}
		c.normalize()
		cfg = c
		if onChange != nil {
			onChange(c)
		}
	})
	viper.WatchConfig()
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "wayscriber.toml")
	}
	return filepath.Join(home, ".config", "wayscriber", "wayscriber.toml")
}

// SessionPath resolves the session file location.
func (c *Config) SessionPath() string {
	if c.Session.Path != "" {
		return c.Session.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "wayscriber-session.json")
	}
	return filepath.Join(home, ".local", "state", "wayscriber", "session.json")
}

// CaptureDirectory resolves where screenshots land.
func (c *Config) CaptureDirectory() string {
	if c.Capture.Directory != "" {
		return c.Capture.Directory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures")
}

// SaveDebounce returns the session debounce as a duration.
func (c *Config) SaveDebounce() time.Duration {
	return time.Duration(c.Session.SaveDebounceMS) * time.Millisecond
}

// CaptureTimeout returns the capture timeout as a duration.
func (c *Config) CaptureTimeout() time.Duration {
	return time.Duration(c.Capture.TimeoutMS) * time.Millisecond
}
