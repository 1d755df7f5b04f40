package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultTitle       = "LISTA OBECNOŚCI I CZASU PRACY PRACOWNIKÓW"
	DefaultHolidaysURL = "https://calendar.google.com/calendar/ical/pl.polish%23holiday%40group.v.calendar.google.com/public/basic.ics"
	DefaultTimezone    = "Europe/Warsaw"

	FallbackNone    = ""
	FallbackBuiltin = "builtin"
	FallbackFile    = "file"
)

// DefaultExclusions lists feed entries that are observances, not days off
var DefaultExclusions = []string{
	"Walentynki",
	"Wielka Sobota",
	"Wielki Piątek",
	"Dzień Matki",
	"Dzień Ojca",
	"Wigilia Bożego Narodzenia",
	"Sylwester (święto)",
}

// Config represents application configuration
type Config struct {
	Roster       string         `mapstructure:"roster"`
	Template     string         `mapstructure:"template"`
	OutputDir    string         `mapstructure:"output_dir"`
	DefaultTitle string         `mapstructure:"default_title"`
	Holidays     HolidaysConfig `mapstructure:"holidays"`
	Output       OutputConfig   `mapstructure:"output"`
	Log          LogConfig      `mapstructure:"log"`
}

// HolidaysConfig represents the public holiday feed configuration
type HolidaysConfig struct {
	URL           string   `mapstructure:"url"`
	Timezone      string   `mapstructure:"timezone"`
	Timeout       string   `mapstructure:"timeout"`
	RetryAttempts int      `mapstructure:"retry_attempts"`
	RetryDelay    string   `mapstructure:"retry_delay"`
	Fallback      string   `mapstructure:"fallback"`      // "", "builtin" or "file"
	FallbackFile  string   `mapstructure:"fallback_file"` // Local .ics copy for "file" fallback
	Exclude       []string `mapstructure:"exclude"`
}

// OutputConfig represents document compiler and printer configuration
type OutputConfig struct {
	Compiler       string   `mapstructure:"compiler"`
	CompilerArgs   []string `mapstructure:"compiler_args"`
	Passes         int      `mapstructure:"passes"`
	PrintCommand   string   `mapstructure:"print_command"`
	PrintOptions   []string `mapstructure:"print_options"`
	CommandTimeout string   `mapstructure:"command_timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("roster", "employees.json")
	v.SetDefault("template", "")
	v.SetDefault("output_dir", "employees")
	v.SetDefault("default_title", DefaultTitle)

	v.SetDefault("holidays.url", DefaultHolidaysURL)
	v.SetDefault("holidays.timezone", DefaultTimezone)
	v.SetDefault("holidays.timeout", "10s")
	v.SetDefault("holidays.retry_attempts", 2)
	v.SetDefault("holidays.retry_delay", "1s")
	v.SetDefault("holidays.fallback", FallbackNone)
	v.SetDefault("holidays.fallback_file", "")
	v.SetDefault("holidays.exclude", DefaultExclusions)

	v.SetDefault("output.compiler", "pdflatex")
	v.SetDefault("output.compiler_args", []string{"-interaction=nonstopmode"})
	v.SetDefault("output.passes", 2)
	v.SetDefault("output.print_command", "lp")
	v.SetDefault("output.print_options", []string{
		"-o", "media=a4",
		"-o", "fit-to-page",
		"-o", "orientation-requested=4",
	})
	v.SetDefault("output.command_timeout", "0s")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. An empty configPath searches the default
// locations and falls back to built-in defaults when no file is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.attendance-sheets")
		v.AddConfigPath("/etc/attendance-sheets")
	}

	// Read environment variables: ATTENDANCE_HOLIDAYS_URL overrides holidays.url
	v.SetEnvPrefix("ATTENDANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Roster == "" {
		return fmt.Errorf("roster is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	// Validate Holidays config
	if c.Holidays.URL == "" {
		return fmt.Errorf("holidays.url is required")
	}
	if _, err := c.Holidays.Location(); err != nil {
		return fmt.Errorf("holidays.timezone: %w", err)
	}
	if c.Holidays.RetryAttempts < 1 {
		return fmt.Errorf("holidays.retry_attempts must be at least 1")
	}

	switch c.Holidays.Fallback {
	case FallbackNone, FallbackBuiltin:
	case FallbackFile:
		if c.Holidays.FallbackFile == "" {
			return fmt.Errorf("holidays.fallback_file is required for file fallback")
		}
	default:
		return fmt.Errorf("holidays.fallback must be '', 'builtin' or 'file', got '%s'", c.Holidays.Fallback)
	}

	// Validate Output config
	if c.Output.Compiler == "" {
		return fmt.Errorf("output.compiler is required")
	}
	if c.Output.Passes < 1 {
		return fmt.Errorf("output.passes must be at least 1")
	}
	if c.Output.PrintCommand == "" {
		return fmt.Errorf("output.print_command is required")
	}

	return nil
}

// Location returns the timezone holiday dates are converted to
func (c *HolidaysConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.LoadLocation(DefaultTimezone)
	}
	return time.LoadLocation(c.Timezone)
}

// GetTimeout returns the feed request timeout
func (c *HolidaysConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// GetRetryDelay returns the pause between feed fetch attempts
func (c *HolidaysConfig) GetRetryDelay() time.Duration {
	if c.RetryDelay == "" {
		return time.Second
	}
	duration, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		return time.Second
	}
	return duration
}

// GetCommandTimeout returns the per-invocation timeout for external commands.
// Zero means no timeout.
func (c *OutputConfig) GetCommandTimeout() time.Duration {
	if c.CommandTimeout == "" {
		return 0
	}
	duration, err := time.ParseDuration(c.CommandTimeout)
	if err != nil || duration < 0 {
		return 0
	}
	return duration
}

// ExpandEnvVars expands environment variables in path settings
func (c *Config) ExpandEnvVars() {
	c.Roster = os.ExpandEnv(c.Roster)
	c.Template = os.ExpandEnv(c.Template)
	c.OutputDir = os.ExpandEnv(c.OutputDir)
	c.Holidays.FallbackFile = os.ExpandEnv(c.Holidays.FallbackFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
