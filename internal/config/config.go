// Package config loads the settings of the logics command.
//
// Values are layered, lowest priority first: built-in defaults, a
// logics.yaml file, LOGICS_* environment variables and explicitly set
// command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultLogLevel   = "warn"
	DefaultOutput     = "table"
	DefaultTheory     = "classical"
	DefaultRangeLimit = 1000
	DefaultTimeout    = 30 * time.Second
	EnvPrefix         = "LOGICS_"
)

// OutputFormats lists the accepted values of Config.Output.
var OutputFormats = []string{"table", "json", "yaml"}

// Config holds the command settings.
type Config struct {
	LogLevel string `koanf:"log_level"`
	Output   string `koanf:"output"`

	// Theory is used for scenarios that name none.
	Theory string `koanf:"theory"`

	// Workers bounds concurrent formula evaluations. 0 means one per CPU.
	Workers int `koanf:"workers"`

	// RangeLimit truncates infinite domains to their first RangeLimit
	// elements. 0 leaves them unbounded.
	RangeLimit int `koanf:"range_limit"`

	// Timeout bounds each formula evaluation. 0 disables it.
	Timeout time.Duration `koanf:"timeout"`

	// FastPath keeps the short-circuiting clauses of theories that have them.
	FastPath bool `koanf:"fast_path"`

	Color bool `koanf:"color"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		Output:     DefaultOutput,
		Theory:     DefaultTheory,
		RangeLimit: DefaultRangeLimit,
		Timeout:    DefaultTimeout,
		FastPath:   true,
		Color:      true,
	}
}

func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"log_level":   d.LogLevel,
		"output":      d.Output,
		"theory":      d.Theory,
		"workers":     d.Workers,
		"range_limit": d.RangeLimit,
		"timeout":     d.Timeout.String(),
		"fast_path":   d.FastPath,
		"color":       d.Color,
	}
}

// findConfigFile returns explicit, or logics.yaml / logics.yml in the
// working directory, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"logics.yaml", "logics.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads the configuration. Only flags whose value was explicitly set
// override the other sources; flag names map to keys by replacing - with _.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// LOGICS_RANGE_LIMIT -> range_limit
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.Output, strings.Join(OutputFormats, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.RangeLimit < 0 {
		return fmt.Errorf("range_limit must not be negative, got %d", c.RangeLimit)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
