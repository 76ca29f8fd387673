package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/confetti/internal/config/loader"
	"github.com/dshills/confetti/internal/logging"
)

// Default values.
const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultDuration = 500 * time.Millisecond
	DefaultWidth    = "2em"
	DefaultLogLevel = "info"
	DefaultFileName = "confetti.toml"
)

// Config is the fully resolved configuration.
type Config struct {
	Confetti ConfettiConfig
	Logging  LoggingConfig
	Plugin   PluginConfig

	// Path is the file the configuration was read from, if any.
	Path string
}

// ConfettiConfig controls the glyph effect.
type ConfettiConfig struct {
	Enabled  bool
	Debounce time.Duration
	Duration time.Duration
	Width    string
	// Floating positions the glyph above the line instead of inline.
	Floating bool
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string
	// File receives log output; empty discards it while the screen is active.
	File string
}

// PluginConfig names the Lua script to run at startup.
type PluginConfig struct {
	Script string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Confetti: ConfettiConfig{
			Enabled:  true,
			Debounce: DefaultDebounce,
			Duration: DefaultDuration,
			Width:    DefaultWidth,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	path   string
	fs     loader.FileSystem
	env    loader.Loader
	useEnv bool
}

// WithPath sets the configuration file. Without it, DefaultPath is used.
func WithPath(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithFileSystem replaces the OS file system.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnvLoader replaces the environment loader.
func WithEnvLoader(l loader.Loader) Option {
	return func(o *loadOptions) {
		o.env = l
	}
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.useEnv = false
	}
}

// DefaultPath returns the user configuration file path,
// $XDG_CONFIG_HOME/confetti/confetti.toml or ~/.config/confetti/confetti.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "confetti", DefaultFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "confetti", DefaultFileName)
}

// Load resolves defaults, the configuration file and environment overrides.
// A missing file is not an error.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.OSFS{}, useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.path == "" {
		o.path = DefaultPath()
	}
	if o.env == nil {
		o.env = loader.NewEnvLoader()
	}

	merged := make(map[string]any)
	cfg := Default()

	if o.path != "" {
		data, err := loader.ForPath(o.fs, o.path).Load()
		if err != nil {
			return nil, err
		}
		// An empty file still counts: it is watched for edits.
		if _, err := o.fs.Stat(o.path); err == nil {
			cfg.Path = o.path
		}
		loader.DeepMerge(merged, data)
	}

	if o.useEnv {
		data, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		loader.DeepMerge(merged, data)
	}

	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply copies recognised settings from data over c. Unknown keys are ignored.
func (c *Config) apply(data map[string]any) error {
	var errs []error
	set := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	set(getBool(data, "confetti.enabled", &c.Confetti.Enabled))
	set(getDuration(data, "confetti.debounce", &c.Confetti.Debounce))
	set(getDuration(data, "confetti.duration", &c.Confetti.Duration))
	set(getString(data, "confetti.width", &c.Confetti.Width))
	set(getBool(data, "confetti.floating", &c.Confetti.Floating))
	set(getString(data, "logging.level", &c.Logging.Level))
	set(getString(data, "logging.file", &c.Logging.File))
	set(getString(data, "plugin.script", &c.Plugin.Script))

	return errors.Join(errs...)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Confetti.Debounce < 0 {
		errs = append(errs, &ValidationError{Path: "confetti.debounce", Value: c.Confetti.Debounce, Message: "must not be negative"})
	}
	if c.Confetti.Duration <= 0 {
		errs = append(errs, &ValidationError{Path: "confetti.duration", Value: c.Confetti.Duration, Message: "must be positive"})
	}
	if strings.TrimSpace(c.Confetti.Width) == "" {
		errs = append(errs, &ValidationError{Path: "confetti.width", Value: c.Confetti.Width, Message: "must not be empty"})
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"})
	}
	return errors.Join(errs...)
}

// ExpandPath resolves a leading "~/" against the home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
