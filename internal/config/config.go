// Package config provides configuration loading for mcpm.
// It supports loading from a YAML file and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexshd/mcpm"
	"github.com/alexshd/mcpm/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config contains all mcpm configuration settings.
type Config struct {
	// Metric configures the coherence metric.
	Metric MetricConfig `json:"metric" yaml:"metric"`

	// Trust configures the trust spiral constants.
	Trust TrustConfig `json:"trust" yaml:"trust"`

	// Logging configures terminal logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// MetricConfig configures the coherence metric.
type MetricConfig struct {
	// Alpha is the coupling sensitivity in f(C) = exp(-α·||C − C*||²).
	Alpha float64 `json:"alpha" yaml:"alpha"`

	// CouplingOptimum overrides C*. Empty means I/φ.
	CouplingOptimum [][]float64 `json:"coupling_optimum,omitempty" yaml:"coupling_optimum,omitempty"`
}

// TrustConfig configures the trust spiral.
type TrustConfig struct {
	InitialTrust float64 `json:"initial_trust" yaml:"initial_trust"`
	Threshold    float64 `json:"threshold" yaml:"threshold"`
	JoyFactor    float64 `json:"joy_factor" yaml:"joy_factor"`
}

// LoggingConfig configures terminal logging.
type LoggingConfig struct {
	// Level: "debug", "info" (default), "warn" or "error".
	Level string `json:"level" yaml:"level"`

	// NoColor disables ANSI colors in logs and reports.
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// Default returns a Config with the standard constants.
func Default() *Config {
	trust := mcpm.DefaultTrustConfig()
	return &Config{
		Metric: MetricConfig{
			Alpha: 1.0,
		},
		Trust: TrustConfig{
			InitialTrust: trust.InitialTrust,
			Threshold:    trust.Threshold,
			JoyFactor:    trust.JoyFactor,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration in order: defaults -> path (if non-empty) ->
// environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Metric.Alpha < 0 {
		return fmt.Errorf("alpha must be non-negative, got %f", c.Metric.Alpha)
	}

	if len(c.Metric.CouplingOptimum) > 0 {
		if err := mcpm.Matrix(c.Metric.CouplingOptimum).Validate(); err != nil {
			return fmt.Errorf("coupling_optimum: %w", err)
		}
	}

	if c.Trust.InitialTrust < 0 {
		return fmt.Errorf("initial_trust must be non-negative, got %f", c.Trust.InitialTrust)
	}
	if c.Trust.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %f", c.Trust.Threshold)
	}
	if c.Trust.JoyFactor < 0 {
		return fmt.Errorf("joy_factor must be non-negative, got %f", c.Trust.JoyFactor)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error, or empty for default)", c.Logging.Level)
	}

	return nil
}

// MetricOptions converts the metric section to constructor options.
func (c *Config) MetricOptions() []mcpm.MetricOption {
	opts := []mcpm.MetricOption{mcpm.WithAlpha(c.Metric.Alpha)}
	if len(c.Metric.CouplingOptimum) > 0 {
		opts = append(opts, mcpm.WithCouplingOptimum(mcpm.Matrix(c.Metric.CouplingOptimum)))
	}
	return opts
}

// NewMetric builds the configured coherence metric.
func (c *Config) NewMetric() *mcpm.CoherenceMetric {
	return mcpm.NewCoherenceMetric(c.MetricOptions()...)
}

// TrustSpiralConfig converts the trust section to the library type.
func (c *Config) TrustSpiralConfig() mcpm.TrustConfig {
	return mcpm.TrustConfig{
		InitialTrust: c.Trust.InitialTrust,
		Threshold:    c.Trust.Threshold,
		JoyFactor:    c.Trust.JoyFactor,
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(c *Config) error {
	floats := []struct {
		env string
		dst *float64
	}{
		{"MCPM_ALPHA", &c.Metric.Alpha},
		{"MCPM_TRUST_INITIAL", &c.Trust.InitialTrust},
		{"MCPM_TRUST_THRESHOLD", &c.Trust.Threshold},
		{"MCPM_TRUST_JOY", &c.Trust.JoyFactor},
	}
	for _, f := range floats {
		v := strings.TrimSpace(os.Getenv(f.env))
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.env, err)
		}
		*f.dst = parsed
	}

	if v := os.Getenv("MCPM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Logging.NoColor = true
	}

	return nil
}
