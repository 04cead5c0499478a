package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/mcpm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcpm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	want := &Config{
		Metric:  MetricConfig{Alpha: 1.0},
		Trust:   TrustConfig{InitialTrust: 0.1, Threshold: 0.3, JoyFactor: 0.5},
		Logging: LoggingConfig{Level: "info"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
metric:
  alpha: 2.5
trust:
  initial_trust: 0.3
logging:
  level: debug
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Metric.Alpha)
	assert.Equal(t, 0.3, cfg.Trust.InitialTrust)
	assert.Equal(t, 0.3, cfg.Trust.Threshold, "unset keys keep defaults")
	assert.Equal(t, 0.5, cfg.Trust.JoyFactor)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_CouplingOptimum(t *testing.T) {
	path := writeConfig(t, `
metric:
  coupling_optimum:
    - [0.5, 0.1]
    - [0.1, 0.5]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	metric := cfg.NewMetric()
	f, err := metric.CouplingFunction(mcpm.Matrix{{0.5, 0.1}, {0.1, 0.5}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f, 1e-12)
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "reading config file")
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadFromFile(writeConfig(t, "metric: [unclosed"))
		assert.ErrorContains(t, err, "parsing config file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative alpha", func(c *Config) { c.Metric.Alpha = -1 }, "alpha"},
		{"non-square optimum", func(c *Config) { c.Metric.CouplingOptimum = [][]float64{{1, 2}} }, "coupling_optimum"},
		{"negative initial trust", func(c *Config) { c.Trust.InitialTrust = -0.1 }, "initial_trust"},
		{"negative threshold", func(c *Config) { c.Trust.Threshold = -0.1 }, "threshold"},
		{"negative joy", func(c *Config) { c.Trust.JoyFactor = -0.1 }, "joy_factor"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MCPM_ALPHA", "0.5")
	t.Setenv("MCPM_TRUST_INITIAL", "0.4")
	t.Setenv("MCPM_TRUST_THRESHOLD", "0.35")
	t.Setenv("MCPM_TRUST_JOY", "1.5")
	t.Setenv("MCPM_LOG_LEVEL", "warn")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Metric.Alpha)
	assert.Equal(t, mcpm.TrustConfig{InitialTrust: 0.4, Threshold: 0.35, JoyFactor: 1.5}, cfg.TrustSpiralConfig())
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.NoColor)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "metric:\n  alpha: 3\n")
	t.Setenv("MCPM_ALPHA", "0.25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Metric.Alpha)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("MCPM_ALPHA", "lots")

	_, err := Load("")
	assert.ErrorContains(t, err, "MCPM_ALPHA")
}

func TestLoad_InvalidAfterOverrides(t *testing.T) {
	t.Setenv("MCPM_ALPHA", "-2")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid config")
}
