package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Dialog  DialogConfig  `mapstructure:"dialog" yaml:"dialog"`
	Save    SaveConfig    `mapstructure:"save" yaml:"save"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Browser drivers.
const (
	DriverChromedp = "chromedp"
	DriverRod      = "rod"
)

// BrowserConfig selects and configures the browser the image lives in.
type BrowserConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	// DebuggerURL attaches to an already running browser. When empty a new
	// browser is launched from ExecPath (or the driver's default lookup).
	DebuggerURL       string        `mapstructure:"debugger_url" yaml:"debugger_url"`
	ExecPath          string        `mapstructure:"exec_path" yaml:"exec_path"`
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
}

// DialogConfig describes the native save dialog and how long to wait for it.
// Title, ControlClass and ButtonLabel must match the OS dialog exactly.
type DialogConfig struct {
	Title             string        `mapstructure:"title" yaml:"title"`
	ControlClass      string        `mapstructure:"control_class" yaml:"control_class"`
	ControlIndex      int           `mapstructure:"control_index" yaml:"control_index"`
	ButtonLabel       string        `mapstructure:"button_label" yaml:"button_label"`
	AttachTimeout     time.Duration `mapstructure:"attach_timeout" yaml:"attach_timeout"`
	PollInterval      time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	MaxPollInterval   time.Duration `mapstructure:"max_poll_interval" yaml:"max_poll_interval"`
	CompletionTimeout time.Duration `mapstructure:"completion_timeout" yaml:"completion_timeout"`
}

// SaveConfig holds defaults for the save command.
type SaveConfig struct {
	Overwrite     bool          `mapstructure:"overwrite" yaml:"overwrite"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout" yaml:"verify_timeout"`
}

// EnvPrefix is the prefix for environment overrides, e.g. WEBIMAGE_DIALOG_TITLE.
const EnvPrefix = "WEBIMAGE"

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load reads configuration from defaults, the optional file at path, and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "webimage")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	// The native save dialog only exists for a visible browser window.
	v.SetDefault("browser.driver", DriverChromedp)
	v.SetDefault("browser.debugger_url", "")
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.navigation_timeout", "30s")

	// -- Dialog --
	v.SetDefault("dialog.title", "Save Picture")
	v.SetDefault("dialog.control_class", "Edit")
	v.SetDefault("dialog.control_index", 0)
	v.SetDefault("dialog.button_label", "&Save")
	v.SetDefault("dialog.attach_timeout", "10s")
	v.SetDefault("dialog.poll_interval", "100ms")
	v.SetDefault("dialog.max_poll_interval", "1s")
	v.SetDefault("dialog.completion_timeout", "30s")

	// -- Save --
	v.SetDefault("save.overwrite", false)
	v.SetDefault("save.verify_timeout", "15s")
}

// Validate checks the configuration for values the automation cannot work with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Browser.Driver {
	case DriverChromedp, DriverRod:
	default:
		errs = append(errs, fmt.Errorf("browser.driver must be %q or %q, got %q", DriverChromedp, DriverRod, c.Browser.Driver))
	}
	if c.Browser.NavigationTimeout <= 0 {
		errs = append(errs, errors.New("browser.navigation_timeout must be positive"))
	}
	if err := c.Dialog.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks the dialog configuration.
func (d *DialogConfig) Validate() error {
	if d.Title == "" {
		return errors.New("dialog.title is required")
	}
	if d.ControlClass == "" {
		return errors.New("dialog.control_class is required")
	}
	if d.ControlIndex < 0 {
		return errors.New("dialog.control_index must not be negative")
	}
	if d.ButtonLabel == "" {
		return errors.New("dialog.button_label is required")
	}
	if d.AttachTimeout <= 0 || d.CompletionTimeout <= 0 {
		return errors.New("dialog.attach_timeout and dialog.completion_timeout must be positive")
	}
	if d.PollInterval <= 0 {
		return errors.New("dialog.poll_interval must be positive")
	}
	return nil
}
