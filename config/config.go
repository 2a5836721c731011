// Package config loads the YAML run configuration and its environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/evdnx/tacore/indicator/core"
)

// Config is the top-level run configuration.
type Config struct {
	Backends BackendsConfig  `yaml:"backends"`
	Logging  LoggingConfig   `yaml:"logging"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Suite    []IndicatorSpec `yaml:"suite"`
}

// BackendsConfig controls the optimized backend.
type BackendsConfig struct {
	// TALib allows the TA-Lib backend when it is compiled in.
	TALib bool `yaml:"talib"`
	// PreferOptimized is the default preference of every suite entry.
	PreferOptimized bool `yaml:"prefer_optimized"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// IndicatorSpec is one entry of the suite. Keys other than kind, label and
// backend are the indicator's parameters.
type IndicatorSpec struct {
	Kind    string         `yaml:"kind"`
	Label   string         `yaml:"label,omitempty"`
	Backend string         `yaml:"backend,omitempty"` // optimized, algorithmic
	Params  map[string]any `yaml:",inline"`
}

// Decode fills v, a parameter struct, from the entry's parameters.
func (s IndicatorSpec) Decode(v any) error {
	if len(s.Params) == 0 {
		return nil
	}
	raw, err := yaml.Marshal(s.Params)
	if err != nil {
		return fmt.Errorf("encode %s params: %w", s.Kind, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s params: %v", core.ErrConfiguration, s.Kind, err)
	}
	return nil
}

// Default returns the configuration used for keys the file omits.
func Default() Config {
	return Config{
		Backends: BackendsConfig{TALib: true, PreferOptimized: true},
		Logging:  LoggingConfig{Level: "info"},
		Metrics:  MetricsConfig{Addr: ":9102"},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes. ${VAR} references are
// expanded from the environment first.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, "metrics.addr is required when metrics are enabled")
	}

	if len(c.Suite) == 0 {
		errs = append(errs, "suite must list at least one indicator")
	}
	labels := make(map[string]int, len(c.Suite))
	for i, s := range c.Suite {
		if strings.TrimSpace(s.Kind) == "" {
			errs = append(errs, fmt.Sprintf("suite[%d].kind is required", i))
		}
		switch s.Backend {
		case "", "optimized", "algorithmic":
		default:
			errs = append(errs, fmt.Sprintf("suite[%d].backend must be 'optimized' or 'algorithmic'", i))
		}
		if s.Label != "" {
			if j, dup := labels[s.Label]; dup {
				errs = append(errs, fmt.Sprintf("suite[%d].label %q duplicates suite[%d]", i, s.Label, j))
			}
			labels[s.Label] = i
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", core.ErrConfiguration, strings.Join(errs, "; "))
	}
	return nil
}

// ParseLevel maps a level name onto slog. The empty name means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging.level %q is not a level", s)
	}
	return l, nil
}

// Env holds the environment overrides.
type Env struct {
	LogLevel    string `envconfig:"TACORE_LOG_LEVEL"`
	TALib       *bool  `envconfig:"TACORE_TALIB"`
	MetricsAddr string `envconfig:"TACORE_METRICS_ADDR"`
}

// LoadEnv reads the overrides from the environment, after loading a .env
// file when one is present.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	return e, nil
}

// ApplyEnv overrides file settings with the non-empty environment values.
func (c *Config) ApplyEnv(e Env) {
	if e.LogLevel != "" {
		c.Logging.Level = e.LogLevel
	}
	if e.TALib != nil {
		c.Backends.TALib = *e.TALib
	}
	if e.MetricsAddr != "" {
		c.Metrics.Enabled = true
		c.Metrics.Addr = e.MetricsAddr
	}
}
