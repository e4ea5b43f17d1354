// Package config loads pokestats settings.
//
// Precedence (highest to lowest): flags > POKESTATS_* env vars >
// config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	envPrefix       = "POKESTATS_"
	DefaultFileName = "pokestats.yaml"
)

// Config holds every setting of the CLI and TUI.
type Config struct {
	Client        string        `koanf:"client" yaml:"client"`
	APIBase       string        `koanf:"api_base" yaml:"api_base"`
	APIToken      string        `koanf:"api_token" yaml:"api_token,omitempty"`
	StatsBase     string        `koanf:"stats_base" yaml:"stats_base"`
	ProxyURL      string        `koanf:"proxy_url" yaml:"proxy_url"`
	HTTPTimeout   time.Duration `koanf:"http_timeout" yaml:"http_timeout"` // 0 = no timeout
	Rating        int           `koanf:"rating" yaml:"rating"`             // 0 = highest cut-off of the format
	Month         string        `koanf:"month" yaml:"month"`               // empty = latest
	ToastDuration time.Duration `koanf:"toast_duration" yaml:"toast_duration"`
	Debounce      time.Duration `koanf:"debounce" yaml:"debounce"`
	Theme         string        `koanf:"theme" yaml:"theme"`
	LogLevel      string        `koanf:"log_level" yaml:"log_level"`
	LogFile       string        `koanf:"log_file" yaml:"log_file"`
	CacheDir      string        `koanf:"cache_dir" yaml:"cache_dir"`
	Concurrency   int           `koanf:"concurrency" yaml:"concurrency"`
}

func defaults() map[string]any {
	return map[string]any{
		"client":         "smogon",
		"api_base":       "http://127.0.0.1:5000/api",
		"api_token":      "",
		"stats_base":     "https://www.smogon.com/stats",
		"proxy_url":      "https://api.allorigins.win/raw?url=",
		"http_timeout":   time.Duration(0),
		"rating":         0,
		"month":          "",
		"toast_duration": 3 * time.Second,
		"debounce":       300 * time.Millisecond,
		"theme":          "classic",
		"log_level":      "warn",
		"log_file":       "",
		"cache_dir":      "stats",
		"concurrency":    4,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		// defaults are static; a failure here is a programming error
		panic(err)
	}
	return cfg
}

// Load builds the configuration. An explicit path must exist; with an
// empty path ./pokestats.yaml is used when present. Only flags that
// were set on the command line override lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	cfgFile, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	// POKESTATS_API_BASE -> api_base
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, nil
	}
	return "", nil
}

var validClients = map[string]bool{"rest": true, "smogon": true, "cache": true}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	var errs []error
	if !validClients[strings.ToLower(c.Client)] {
		errs = append(errs, fmt.Errorf("invalid client %q: must be rest, smogon or cache", c.Client))
	}
	if c.Rating < 0 {
		errs = append(errs, errors.New("rating must be non-negative"))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("http_timeout must be non-negative"))
	}
	if c.ToastDuration <= 0 {
		errs = append(errs, errors.New("toast_duration must be positive"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, errors.New("concurrency must be at least 1"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// YAML renders the configuration in the config file format.
func (c *Config) YAML() ([]byte, error) {
	b, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return b, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	b, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
